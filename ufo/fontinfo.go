// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package ufo

import (
	"fmt"
	"os"

	"howett.net/plist"
)

// MetaInfo mirrors metainfo.plist.
type MetaInfo struct {
	Creator       string `plist:"creator"`
	FormatVersion int    `plist:"formatVersion"`
}

// FontInfo mirrors the keys of fontinfo.plist this toolchain consumes.
// Unknown keys are ignored on reading and are not written back, since
// the build never modifies font info.
type FontInfo struct {
	FamilyName   string `plist:"familyName"`
	StyleName    string `plist:"styleName"`
	VersionMajor int    `plist:"versionMajor"`
	VersionMinor int    `plist:"versionMinor"`

	Copyright string `plist:"copyright"`
	Trademark string `plist:"trademark"`

	UnitsPerEm  int     `plist:"unitsPerEm"`
	Ascender    float64 `plist:"ascender"`
	Descender   float64 `plist:"descender"` // negative
	CapHeight   float64 `plist:"capHeight"`
	XHeight     float64 `plist:"xHeight"`
	ItalicAngle float64 `plist:"italicAngle"`

	OpenTypeHeadCreated    string `plist:"openTypeHeadCreated"`
	OpenTypeHheaLineGap    int    `plist:"openTypeHheaLineGap"`
	OpenTypeOS2WeightClass int    `plist:"openTypeOS2WeightClass"`
	OpenTypeOS2WidthClass  int    `plist:"openTypeOS2WidthClass"`

	PostscriptFontName           string  `plist:"postscriptFontName"`
	PostscriptUnderlinePosition  float64 `plist:"postscriptUnderlinePosition"`
	PostscriptUnderlineThickness float64 `plist:"postscriptUnderlineThickness"`
}

// Version formats the font version as "major.minor".
func (info *FontInfo) Version() string {
	return fmt.Sprintf("%d.%d", info.VersionMajor, info.VersionMinor)
}

// FontName returns the PostScript font name, falling back to the
// family name with spaces removed.
func (info *FontInfo) FontName() string {
	if info.PostscriptFontName != "" {
		return info.PostscriptFontName
	}
	name := make([]rune, 0, len(info.FamilyName))
	for _, r := range info.FamilyName {
		if r != ' ' {
			name = append(name, r)
		}
	}
	return string(name)
}

func readPlist(fname string, v any) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

func writePlist(fname string, v any) error {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return os.WriteFile(fname, append(data, '\n'), 0o644)
}

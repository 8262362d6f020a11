// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package smufl

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// AnchorNames lists the glyph anchor names the SMuFL specification
// defines for the glyphsWithAnchors metadata section.  Anchors with
// other names are design aids and stay out of the exported metadata.
var AnchorNames = []string{
	"stemUpSE",
	"stemUpNW",
	"stemDownNW",
	"stemDownSW",
	"splitStemUpSE",
	"splitStemUpSW",
	"splitStemDownNE",
	"splitStemDownNW",
	"cutOutNE",
	"cutOutSE",
	"cutOutSW",
	"cutOutNW",
	"numeralTop",
	"numeralBottom",
	"graceNoteSlashSW",
	"graceNoteSlashNE",
	"graceNoteSlashNW",
	"graceNoteSlashSE",
	"repeatOffset",
	"noteheadOrigin",
	"opticalCenter",
}

var anchorNameSet = func() map[string]bool {
	m := make(map[string]bool, len(AnchorNames))
	for _, name := range AnchorNames {
		m[name] = true
	}
	return m
}()

// IsAnchorName reports whether name is a SMuFL-defined anchor name.
func IsAnchorName(name string) bool {
	return anchorNameSet[name]
}

// EngravingDefaults holds the recommended engraving dimensions of a
// font, in staff spaces.  The values are authored by the font's
// designer and passed through to the metadata file unmodified.
type EngravingDefaults map[string]float64

// LoadEngravingDefaults reads an engraving defaults file such as
// src/sebastian_defaults.json.
func LoadEngravingDefaults(fname string) (EngravingDefaults, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	var d EngravingDefaults
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%s: parsing engraving defaults: %w", fname, err)
	}
	return d, nil
}

// A Coord is an (x, y) pair in staff spaces.
type Coord [2]float64

// A BBox is a glyph bounding box in staff spaces, as two corner
// coordinates.
type BBox struct {
	NE Coord `json:"bBoxNE"`
	SW Coord `json:"bBoxSW"`
}

// An Alternate describes one stylistic alternate of a glyph.
type Alternate struct {
	Codepoint Codepoint `json:"codepoint"`
	Name      string    `json:"name"`
}

// Alternates is the value type of the glyphsWithAlternates section.
type Alternates struct {
	Alternates []Alternate `json:"alternates"`
}

// A Ligature names the glyphs a ligature glyph is composed of.
type Ligature struct {
	Codepoint       Codepoint `json:"codepoint"`
	ComponentGlyphs []string  `json:"componentGlyphs"`
}

// Metadata is the font metadata document described in the SMuFL
// specification.  Empty sections are omitted from the JSON output.
type Metadata struct {
	FontName             string                      `json:"fontName"`
	FontVersion          string                      `json:"fontVersion"`
	EngravingDefaults    EngravingDefaults           `json:"engravingDefaults,omitempty"`
	GlyphsWithAnchors    map[string]map[string]Coord `json:"glyphsWithAnchors,omitempty"`
	GlyphsWithAlternates map[string]Alternates       `json:"glyphsWithAlternates,omitempty"`
	GlyphBBoxes          map[string]BBox             `json:"glyphBBoxes,omitempty"`
	Ligatures            map[string]Ligature         `json:"ligatures,omitempty"`
}

// Spaces converts a length in font units to staff spaces, rounded to
// three decimals.  One staff space is a quarter of the em.
func Spaces(v float64, unitsPerEm int) float64 {
	return math.Round(v/(float64(unitsPerEm)/4)*1000) / 1000
}

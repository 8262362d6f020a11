// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Package sebastian ties the UFO sources of the Sebastian music
// notation font to the SMuFL naming scheme.  It renames glyphs to
// their canonical SMuFL names, compiles the OpenType font and exports
// the SMuFL metadata file.
package sebastian

import (
	"errors"
	"fmt"

	"github.com/fkretlow/sebastian/smufl"
	"github.com/fkretlow/sebastian/ufo"
)

// Mode selects whether a font may be written back to disk.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

// ErrReadOnly is returned by Save on fonts opened in ReadOnly mode.
var ErrReadOnly = errors.New("sebastian: font opened read-only")

// A Font is a UFO font source together with the SMuFL name table.
type Font struct {
	UFO   *ufo.Font
	Names *smufl.NameTable

	mode Mode
}

// Open reads the UFO source at path.
func Open(path string, names *smufl.NameTable, mode Mode) (*Font, error) {
	u, err := ufo.Open(path)
	if err != nil {
		return nil, err
	}
	return &Font{UFO: u, Names: names, mode: mode}, nil
}

// New wraps an in-memory UFO font.  The result is writable.
func New(u *ufo.Font, names *smufl.NameTable) *Font {
	return &Font{UFO: u, Names: names, mode: ReadWrite}
}

// SMuFLGlyphs returns the glyphs encoded in the SMuFL range, in font
// order.  A glyph's primary codepoint decides membership.
func (f *Font) SMuFLGlyphs() []*ufo.Glyph {
	var gg []*ufo.Glyph
	for _, g := range f.UFO.Glyphs() {
		r, ok := g.Rune()
		if ok && smufl.InRange(r) {
			gg = append(gg, g)
		}
	}
	return gg
}

// CanonicalName returns the SMuFL name for the glyph's primary
// codepoint.  Glyphs without a codepoint, or with a codepoint the name
// table does not know, keep their current name.
func (f *Font) CanonicalName(g *ufo.Glyph) string {
	r, ok := g.Rune()
	if !ok {
		return g.Name
	}
	if name, ok := f.Names.Name(r); ok {
		return name
	}
	return g.Name
}

// A Rename records one glyph rename.
type Rename struct {
	Old, New string
}

// RenameGlyphs renames every glyph in the SMuFL range to its canonical
// SMuFL name and returns the renames performed.  References to renamed
// glyphs in components, the glyph order and the feature file are
// updated along the way.  The changes are in memory until Save.
func (f *Font) RenameGlyphs() ([]Rename, error) {
	var renames []Rename
	for _, g := range f.SMuFLGlyphs() {
		canonical := f.CanonicalName(g)
		if canonical == g.Name {
			continue
		}
		old := g.Name
		if err := f.UFO.RenameGlyph(old, canonical); err != nil {
			return renames, fmt.Errorf("renaming %q: %w", old, err)
		}
		renames = append(renames, Rename{Old: old, New: canonical})
	}
	return renames, nil
}

// Save writes pending changes back to the UFO directory.
func (f *Font) Save() error {
	if f.mode != ReadWrite {
		return ErrReadOnly
	}
	return f.UFO.Save()
}

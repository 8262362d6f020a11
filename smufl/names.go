// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package smufl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// A NameTable maps SMuFL code points to their canonical glyph names.
//
// The table is loaded from the glyphnames.json file published with the
// SMuFL specification, available at
// https://github.com/w3c/smufl/tree/gh-pages/metadata.  The file is an
// external input and is not vendored with this repository.
type NameTable struct {
	byCodepoint map[rune]string
	byName      map[string]rune
}

type nameEntry struct {
	Codepoint          Codepoint `json:"codepoint"`
	AlternateCodepoint Codepoint `json:"alternateCodepoint,omitempty"`
	Description        string    `json:"description,omitempty"`
}

// LoadNames reads a glyphnames.json file from disk.
func LoadNames(fname string) (*NameTable, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	t, err := ReadNames(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

// ReadNames parses glyph name data in the format of the SMuFL
// specification's glyphnames.json file.
func ReadNames(r io.Reader) (*NameTable, error) {
	var raw map[string]nameEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("smufl: parsing glyph names: %w", err)
	}

	t := &NameTable{
		byCodepoint: make(map[rune]string, len(raw)),
		byName:      make(map[string]rune, len(raw)),
	}
	for name, entry := range raw {
		r, err := entry.Codepoint.Rune()
		if err != nil {
			return nil, fmt.Errorf("smufl: glyph %q: %w", name, err)
		}
		t.byCodepoint[r] = name
		t.byName[name] = r
	}
	return t, nil
}

// Name returns the canonical SMuFL name for the given code point.
func (t *NameTable) Name(r rune) (string, bool) {
	name, ok := t.byCodepoint[r]
	return name, ok
}

// Codepoint returns the code point assigned to a canonical glyph name.
func (t *NameTable) Codepoint(name string) (rune, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Len returns the number of named glyphs in the table.
func (t *NameTable) Len() int {
	return len(t.byCodepoint)
}

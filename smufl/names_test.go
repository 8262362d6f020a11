// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package smufl

import (
	"strings"
	"testing"
)

const testNames = `{
  "accidentalFlat": {
    "codepoint": "U+E260",
    "alternateCodepoint": "U+266D",
    "description": "Flat"
  },
  "noteheadBlack": {
    "codepoint": "U+E0A4",
    "alternateCodepoint": "U+1D158",
    "description": "Black notehead"
  }
}`

func TestReadNames(t *testing.T) {
	table, err := ReadNames(strings.NewReader(testNames))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	name, ok := table.Name(0xE0A4)
	if !ok || name != "noteheadBlack" {
		t.Errorf("Name(U+E0A4) = %q, %t, want noteheadBlack, true", name, ok)
	}
	if _, ok := table.Name(0xE001); ok {
		t.Error("Name(U+E001): unexpected hit")
	}

	r, ok := table.Codepoint("accidentalFlat")
	if !ok || r != 0xE260 {
		t.Errorf("Codepoint(accidentalFlat) = %U, %t, want U+E260, true", r, ok)
	}
	if _, ok := table.Codepoint("noSuchGlyph"); ok {
		t.Error("Codepoint(noSuchGlyph): unexpected hit")
	}
}

func TestReadNamesErrors(t *testing.T) {
	cases := []string{
		`{`,
		`{"bad": {"codepoint": "E050"}}`,
	}
	for _, body := range cases {
		if _, err := ReadNames(strings.NewReader(body)); err == nil {
			t.Errorf("ReadNames(%q): expected error", body)
		}
	}
}

// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package fea

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAlternates(t *testing.T) {
	const src = `
feature salt {
    sub noteheadBlack from [noteheadBlack.salt01 noteheadBlack.salt02];
    sub accidentalFlat from [flatAlt];
} salt;
`
	subs, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{
		"noteheadBlack":  {"noteheadBlack.salt01", "noteheadBlack.salt02"},
		"accidentalFlat": {"flatAlt"},
	}
	if d := cmp.Diff(want, subs.Alternates); d != "" {
		t.Errorf("Alternates (-want +got):\n%s", d)
	}
	if len(subs.Ligatures) != 0 {
		t.Errorf("unexpected ligatures: %v", subs.Ligatures)
	}
}

func TestParseLigatures(t *testing.T) {
	const src = `
feature liga {
    substitute accidentalFlat accidentalFlat by accidentalDoubleFlat;
    sub f l u g e l by flugelhorn;
} liga;
`
	subs, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Ligature{
		{
			Components: []string{"accidentalFlat", "accidentalFlat"},
			Result:     "accidentalDoubleFlat",
		},
		{
			Components: []string{"f", "l", "u", "g", "e", "l"},
			Result:     "flugelhorn",
		},
	}
	if d := cmp.Diff(want, subs.Ligatures); d != "" {
		t.Errorf("Ligatures (-want +got):\n%s", d)
	}
}

func TestParseIgnoredStatements(t *testing.T) {
	cases := []string{
		// single substitutions carry no metadata
		"sub a by b;",
		// class references are out of scope
		"sub @NOTEHEADS from [x y];",
		"sub @A @B by c;",
		// contextual rules are out of scope
		"sub a' lookup L b;",
		// multi-glyph replacement is not a ligature
		"sub a by b c;",
		// unrelated statements
		"languagesystem DFLT dflt;",
		"feature liga { } liga;",
	}
	for _, src := range cases {
		subs, err := ParseString(src)
		if err != nil {
			t.Errorf("ParseString(%q): %v", src, err)
			continue
		}
		if len(subs.Alternates) != 0 || len(subs.Ligatures) != 0 {
			t.Errorf("ParseString(%q): unexpected substitutions %+v", src, subs)
		}
	}
}

func TestParseComments(t *testing.T) {
	const src = `
# sub commentedOut from [x];
sub a from [b]; # trailing comment
`
	subs, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{"a": {"b"}}
	if d := cmp.Diff(want, subs.Alternates); d != "" {
		t.Errorf("Alternates (-want +got):\n%s", d)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"sub a b from [c];",
		"sub a from [];",
	}
	for _, src := range cases {
		if _, err := ParseString(src); err == nil {
			t.Errorf("ParseString(%q): expected error", src)
		}
	}
}

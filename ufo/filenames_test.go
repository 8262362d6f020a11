// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package ufo

import (
	"strings"
	"testing"
)

func TestGlifFileName(t *testing.T) {
	cases := []struct {
		glyphName string
		want      string
	}{
		{"a", "a.glif"},
		{"A", "A_.glif"},
		{"AE", "A_E_.glif"},
		{"Aacute", "A_acute.glif"},
		{"A.alt", "A_.alt.glif"},
		{"A.Alt", "A_.A_lt.glif"},
		{"T_H", "T__H_.glif"},
		{"t_h", "t_h.glif"},
		{".notdef", "_notdef.glif"},
		{"con", "_con.glif"},
		{"CON", "C_O_N_.glif"},
		{"con.alt", "_con.alt.glif"},
		{"alt.con", "alt.con.glif"},
		{"noteheadBlack", "noteheadB_lack.glif"},
		{"uniE0A4", "uniE_0A_4.glif"},
		{"a:b", "a_b.glif"},
	}
	for _, test := range cases {
		got := glifFileName(test.glyphName, nil)
		if got != test.want {
			t.Errorf("glifFileName(%q) = %q, want %q", test.glyphName, got, test.want)
		}
	}
}

func TestGlifFileNameLength(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := glifFileName(long, nil)
	if len(got) != maxFileNameLength {
		t.Errorf("len = %d, want %d", len(got), maxFileNameLength)
	}
	if !strings.HasSuffix(got, ".glif") {
		t.Errorf("missing extension: %q", got)
	}
}

func TestGlifFileNameClash(t *testing.T) {
	taken := map[string]bool{
		"a.glif":                true,
		"a000000000000001.glif": true,
	}
	got := glifFileName("a", func(name string) bool { return taken[name] })
	if got != "a000000000000002.glif" {
		t.Errorf("got %q, want a000000000000002.glif", got)
	}
}

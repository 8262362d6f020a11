// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package smufl

import (
	"fmt"
	"strconv"
	"strings"
)

// A Codepoint is a Unicode code point in the "U+E050" notation used
// throughout the SMuFL metadata files.
type Codepoint string

// The standard SMuFL glyph repertoire occupies the Basic Multilingual
// Plane's private use area from U+E000 to U+F3FF.  Code points up to
// U+F8FF are recommended for font-specific optional glyphs.
const (
	RangeStart       rune = 0xE000
	RangeEnd         rune = 0xF3FF
	OptionalRangeEnd rune = 0xF8FF
)

// InRange reports whether r lies in the standard SMuFL range.
func InRange(r rune) bool {
	return r >= RangeStart && r <= RangeEnd
}

// FormatCodepoint converts a rune to "U+XXXX" notation.
func FormatCodepoint(r rune) Codepoint {
	return Codepoint(fmt.Sprintf("U+%04X", r))
}

// Rune parses the code point back into a rune.
func (c Codepoint) Rune() (rune, error) {
	s := string(c)
	if !strings.HasPrefix(s, "U+") {
		return 0, fmt.Errorf("smufl: invalid codepoint %q", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("smufl: invalid codepoint %q", s)
	}
	return rune(v), nil
}

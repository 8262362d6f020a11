// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package ufo

import "strings"

// illegal characters per the UFO "user name to file name" algorithm
const illegalChars = "\" * + / : < > ? [ \\ ] |"

var reservedFileNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "clock$": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true,
	"lpt1": true, "lpt2": true, "lpt3": true,
}

const maxFileNameLength = 255

// glifFileName converts a glyph name to a .glif file name following the
// UFO 3 user-name-to-file-name algorithm.  exists reports whether a
// candidate name is already taken in the layer directory; clashes are
// resolved with a numeric suffix.
func glifFileName(glyphName string, exists func(string) bool) string {
	var b strings.Builder
	if strings.HasPrefix(glyphName, ".") {
		// an initial period would hide the file
		b.WriteByte('_')
		glyphName = glyphName[1:]
	}
	for _, r := range glyphName {
		switch {
		case r < 32 || r == 127 || strings.ContainsRune(illegalChars, r) && r != ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()

	// protect reserved DOS file names, including with suffixes
	lower := strings.ToLower(name)
	for reserved := range reservedFileNames {
		if lower == reserved || strings.HasPrefix(lower, reserved+".") {
			name = "_" + name
			break
		}
	}

	const ext = ".glif"
	if len(name) > maxFileNameLength-len(ext) {
		name = name[:maxFileNameLength-len(ext)]
	}

	candidate := name + ext
	if exists == nil || !exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		suffix := itoa15(i)
		trimmed := name
		if len(trimmed) > maxFileNameLength-len(ext)-len(suffix) {
			trimmed = trimmed[:maxFileNameLength-len(ext)-len(suffix)]
		}
		candidate = trimmed + suffix + ext
		if !exists(candidate) {
			return candidate
		}
	}
}

// itoa15 pads the clash counter to 15 digits as the UFO algorithm
// prescribes.
func itoa15(i int) string {
	s := ""
	for ; i > 0; i /= 10 {
		s = string(rune('0'+i%10)) + s
	}
	for len(s) < 15 {
		s = "0" + s
	}
	return s
}

// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package sebastian

import (
	"encoding/json"
	"io"

	"github.com/fkretlow/sebastian/otf"
	"github.com/fkretlow/sebastian/smufl"
)

// ExportFont compiles the UFO source and writes the OpenType font.
func (f *Font) ExportFont(w io.Writer) error {
	info, err := otf.Compile(f.UFO)
	if err != nil {
		return err
	}
	_, err = info.Write(w)
	return err
}

// ExportMetadata writes the SMuFL metadata document as indented JSON.
func (f *Font) ExportMetadata(w io.Writer, defaults smufl.EngravingDefaults) error {
	md, err := f.Metadata(defaults)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(md)
}

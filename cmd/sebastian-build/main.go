// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Sebastian-build compiles a UFO source into the OpenType font and the
// SMuFL metadata file.  The output directory is cleared and recreated
// on every run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fkretlow/sebastian"
	"github.com/fkretlow/sebastian/smufl"
)

func main() {
	glyphNames := flag.String("glyphnames", "", "SMuFL glyphnames.json file")
	defaultsFile := flag.String("defaults", "", "engraving defaults JSON file")
	outDir := flag.String("o", "build", "output directory")
	flag.Parse()

	if flag.NArg() != 1 || *glyphNames == "" {
		fmt.Printf("Usage: %s -glyphnames glyphnames.json [options] font.ufo\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	names, err := smufl.LoadNames(*glyphNames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading glyph names: %v\n", err)
		os.Exit(1)
	}

	var defaults smufl.EngravingDefaults
	if *defaultsFile != "" {
		defaults, err = smufl.LoadEngravingDefaults(*defaultsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading engraving defaults: %v\n", err)
			os.Exit(1)
		}
	}

	font, err := sebastian.Open(flag.Arg(0), names, sebastian.ReadOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening font: %v\n", err)
		os.Exit(1)
	}

	if err := os.RemoveAll(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	name := outputBaseName(font)

	otfName := filepath.Join(*outDir, name+".otf")
	if err := writeFile(otfName, font.ExportFont); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing font: %v\n", err)
		os.Exit(1)
	}

	jsonName := filepath.Join(*outDir, name+".json")
	err = writeFile(jsonName, func(w io.Writer) error {
		return font.ExportMetadata(w, defaults)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing metadata: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s and %s\n", otfName, jsonName)
}

// outputBaseName derives the base of the output file names from the
// PostScript font name, lowercased: sebastian.otf, sebastian.json.
func outputBaseName(font *sebastian.Font) string {
	return strings.ToLower(font.UFO.Info.FontName())
}

func writeFile(fname string, export func(io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

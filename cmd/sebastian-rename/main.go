// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Sebastian-rename renames the glyphs of a UFO source to their
// canonical SMuFL names, following the glyphs' codepoints.  Component
// references, the glyph order and the feature file are updated to
// match.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fkretlow/sebastian"
	"github.com/fkretlow/sebastian/smufl"
)

func main() {
	glyphNames := flag.String("glyphnames", "", "SMuFL glyphnames.json file")
	dryRun := flag.Bool("n", false, "show the renames without writing anything")
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

	mode := sebastian.ReadWrite
	if *dryRun {
		mode = sebastian.ReadOnly
	}
	font, err := sebastian.Open(flag.Arg(0), names, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening font: %v\n", err)
		os.Exit(1)
	}

	renames, err := font.RenameGlyphs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error renaming glyphs: %v\n", err)
		os.Exit(1)
	}
	for _, r := range renames {
		fmt.Printf("%s -> %s\n", r.Old, r.New)
	}
	if len(renames) == 0 {
		fmt.Println("All glyph names are canonical.")
		return
	}
	if *dryRun {
		return
	}

	if err := font.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving font: %v\n", err)
		os.Exit(1)
	}
}

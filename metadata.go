// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package sebastian

import (
	"github.com/fkretlow/sebastian/fea"
	"github.com/fkretlow/sebastian/smufl"
)

// Metadata assembles the SMuFL metadata document for the font.
// Engraving defaults are passed through as given; anchor positions and
// bounding boxes are converted to staff spaces.  Stylistic alternates
// and ligatures are recovered from the feature file.
func (f *Font) Metadata(defaults smufl.EngravingDefaults) (*smufl.Metadata, error) {
	upm := f.UFO.Info.UnitsPerEm
	if upm == 0 {
		upm = 1000
	}

	md := &smufl.Metadata{
		FontName:          f.UFO.Info.FontName(),
		FontVersion:       f.UFO.Info.Version(),
		EngravingDefaults: defaults,
	}

	glyphs := f.SMuFLGlyphs()

	anchors := make(map[string]map[string]smufl.Coord)
	bboxes := make(map[string]smufl.BBox, len(glyphs))
	for _, g := range glyphs {
		name := f.CanonicalName(g)

		for _, a := range g.Anchors {
			if !smufl.IsAnchorName(a.Name) {
				continue
			}
			if anchors[name] == nil {
				anchors[name] = make(map[string]smufl.Coord)
			}
			anchors[name][a.Name] = smufl.Coord{
				smufl.Spaces(a.X, upm),
				smufl.Spaces(a.Y, upm),
			}
		}

		bbox, _ := f.UFO.GlyphBounds(g)
		bboxes[name] = smufl.BBox{
			NE: smufl.Coord{smufl.Spaces(bbox.XMax, upm), smufl.Spaces(bbox.YMax, upm)},
			SW: smufl.Coord{smufl.Spaces(bbox.XMin, upm), smufl.Spaces(bbox.YMin, upm)},
		}
	}
	if len(anchors) > 0 {
		md.GlyphsWithAnchors = anchors
	}
	if len(bboxes) > 0 {
		md.GlyphBBoxes = bboxes
	}

	subs, err := fea.ParseString(f.UFO.Features)
	if err != nil {
		return nil, err
	}
	f.addAlternates(md, subs)
	f.addLigatures(md, subs)

	return md, nil
}

// addAlternates fills the glyphsWithAlternates section from alternate
// substitutions.  Only base glyphs encoded in the SMuFL range are
// listed; alternates missing from the font are skipped.
func (f *Font) addAlternates(md *smufl.Metadata, subs *fea.Substitutions) {
	out := make(map[string]smufl.Alternates)
	for base, altNames := range subs.Alternates {
		g, ok := f.UFO.Glyph(base)
		if !ok {
			continue
		}
		r, ok := g.Rune()
		if !ok || !smufl.InRange(r) {
			continue
		}

		var alts []smufl.Alternate
		for _, altName := range altNames {
			alt, ok := f.UFO.Glyph(altName)
			if !ok {
				continue
			}
			ar, ok := alt.Rune()
			if !ok {
				continue
			}
			alts = append(alts, smufl.Alternate{
				Codepoint: smufl.FormatCodepoint(ar),
				Name:      f.CanonicalName(alt),
			})
		}
		if len(alts) > 0 {
			out[f.CanonicalName(g)] = smufl.Alternates{Alternates: alts}
		}
	}
	if len(out) > 0 {
		md.GlyphsWithAlternates = out
	}
}

// addLigatures fills the ligatures section from ligature
// substitutions.  The ligature glyph must be encoded in the SMuFL
// range; components are listed under their canonical names.
func (f *Font) addLigatures(md *smufl.Metadata, subs *fea.Substitutions) {
	out := make(map[string]smufl.Ligature)
	for _, lig := range subs.Ligatures {
		g, ok := f.UFO.Glyph(lig.Result)
		if !ok {
			continue
		}
		r, ok := g.Rune()
		if !ok || !smufl.InRange(r) {
			continue
		}

		components := make([]string, 0, len(lig.Components))
		for _, compName := range lig.Components {
			if comp, ok := f.UFO.Glyph(compName); ok {
				components = append(components, f.CanonicalName(comp))
			} else {
				components = append(components, compName)
			}
		}
		out[f.CanonicalName(g)] = smufl.Ligature{
			Codepoint:       smufl.FormatCodepoint(r),
			ComponentGlyphs: components,
		}
	}
	if len(out) > 0 {
		md.Ligatures = out
	}
}

// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Package otf compiles a UFO font source into an OpenType font with
// CFF outlines.
package otf

import (
	"fmt"
	"math"
	"time"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/os2"

	"github.com/fkretlow/sebastian/ufo"
)

// headCreatedFormat is the date layout of openTypeHeadCreated.
const headCreatedFormat = "2006/01/02 15:04:05"

// Compile converts a UFO source into an OpenType font.  Glyph 0 is
// .notdef; a blank one is synthesized if the source has none.  All
// other glyphs keep the source's font order.
func Compile(f *ufo.Font) (*sfnt.Font, error) {
	upm := f.Info.UnitsPerEm
	if upm == 0 {
		upm = 1000
	}

	glyphs := orderGlyphs(f)

	var outGlyphs []*cff.Glyph
	for _, g := range glyphs {
		if g == nil { // synthesized .notdef
			outGlyphs = append(outGlyphs, cff.NewGlyph(".notdef", float64(upm/2)))
			continue
		}
		cg := cff.NewGlyph(g.Name, math.Round(g.Width))
		if err := appendOutline(cg, f, g, matrix.Identity, 0); err != nil {
			return nil, err
		}
		outGlyphs = append(outGlyphs, cg)
	}

	outlines := &cff.Outlines{
		Glyphs: outGlyphs,
		Private: []*type1.PrivateDict{
			{
				BlueValues: []funit.Int16{
					funit.Int16(f.Info.Descender) - 10,
					funit.Int16(f.Info.Descender),
					funit.Int16(f.Info.Ascender),
					funit.Int16(f.Info.Ascender) + 10,
				},
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: make([]glyph.ID, 256),
	}

	info := &sfnt.Font{
		FamilyName: f.Info.FamilyName,
		Width:      os2Width(f.Info.OpenTypeOS2WidthClass),
		Weight:     os2Weight(f.Info.OpenTypeOS2WeightClass),
		IsRegular:  f.Info.StyleName == "" || f.Info.StyleName == "Regular",

		Copyright: f.Info.Copyright,
		Trademark: f.Info.Trademark,
		PermUse:   os2.PermInstall,

		UnitsPerEm: uint16(upm),
		FontMatrix: matrix.Matrix{1 / float64(upm), 0, 0, 1 / float64(upm), 0, 0},

		Ascent:    funit.Int16(math.Round(f.Info.Ascender)),
		Descent:   funit.Int16(math.Round(f.Info.Descender)),
		LineGap:   funit.Int16(f.Info.OpenTypeHheaLineGap),
		CapHeight: funit.Int16(math.Round(f.Info.CapHeight)),
		XHeight:   funit.Int16(math.Round(f.Info.XHeight)),

		ItalicAngle:        f.Info.ItalicAngle,
		UnderlinePosition:  funit.Float64(f.Info.PostscriptUnderlinePosition),
		UnderlineThickness: funit.Float64(f.Info.PostscriptUnderlineThickness),

		ModificationTime: time.Now(),

		Outlines: outlines,
	}
	if v, err := head.VersionFromString(f.Info.Version()); err == nil {
		info.Version = v
	}
	if t, err := time.Parse(headCreatedFormat, f.Info.OpenTypeHeadCreated); err == nil {
		info.CreationTime = t
	}

	info.CMapTable = makeCmap(glyphs)

	return info, nil
}

// orderGlyphs returns the glyphs with .notdef moved to index 0.  A nil
// entry at index 0 stands for a synthesized .notdef.
func orderGlyphs(f *ufo.Font) []*ufo.Glyph {
	src := f.Glyphs()
	glyphs := make([]*ufo.Glyph, 0, len(src)+1)
	var notdef *ufo.Glyph
	for _, g := range src {
		if g.Name == ".notdef" {
			notdef = g
			continue
		}
		glyphs = append(glyphs, g)
	}
	return append([]*ufo.Glyph{notdef}, glyphs...)
}

// makeCmap builds a format 4 cmap from the glyphs' unicode values.
// Codepoints outside the BMP are ignored; the first glyph claiming a
// codepoint wins.
func makeCmap(glyphs []*ufo.Glyph) cmap.Table {
	subtable := cmap.Format4{}
	for i, g := range glyphs {
		if i == 0 || g == nil {
			continue
		}
		for _, r := range g.Unicodes {
			if r < 0 || r > 0xFFFF {
				continue
			}
			if _, ok := subtable[uint16(r)]; ok {
				continue
			}
			subtable[uint16(r)] = glyph.ID(i)
		}
	}
	data := subtable.Encode(0)
	return cmap.Table{
		{PlatformID: 0, EncodingID: 3}: data,
		{PlatformID: 3, EncodingID: 1}: data,
	}
}

const maxComponentDepth = 16

// appendOutline writes the glyph's contours to the charstring,
// flattening component references through their transforms.
func appendOutline(cg *cff.Glyph, f *ufo.Font, g *ufo.Glyph, m matrix.Matrix, depth int) error {
	if depth > maxComponentDepth {
		return fmt.Errorf("otf: glyph %q: component nesting too deep", g.Name)
	}
	for i := range g.Contours {
		if err := appendContour(cg, g, &g.Contours[i], m); err != nil {
			return err
		}
	}
	for _, c := range g.Components {
		base, ok := f.Glyph(c.Base)
		if !ok {
			return fmt.Errorf("otf: glyph %q: missing component base %q", g.Name, c.Base)
		}
		if err := appendOutline(cg, f, base, c.Transform.Mul(m), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func appendContour(cg *cff.Glyph, g *ufo.Glyph, c *ufo.Contour, m matrix.Matrix) error {
	for _, p := range c.Points {
		if p.Type == ufo.QCurve {
			return fmt.Errorf("otf: glyph %q: quadratic contours are not supported", g.Name)
		}
	}
	segs := c.Segments()
	if len(segs) == 0 {
		return nil
	}

	x, y := transform(m, segs[0].P0.X, segs[0].P0.Y)
	cg.MoveTo(x, y)
	for i, s := range segs {
		if !s.Curve {
			if i == len(segs)-1 && !c.Open() {
				// the closing line is implicit in the charstring
				break
			}
			x, y := transform(m, s.P3.X, s.P3.Y)
			cg.LineTo(x, y)
			continue
		}
		x1, y1 := transform(m, s.P1.X, s.P1.Y)
		x2, y2 := transform(m, s.P2.X, s.P2.Y)
		x3, y3 := transform(m, s.P3.X, s.P3.Y)
		cg.CurveTo(x1, y1, x2, y2, x3, y3)
	}
	return nil
}

func transform(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func os2Weight(class int) os2.Weight {
	if class == 0 {
		return os2.WeightNormal
	}
	return os2.Weight(class)
}

func os2Width(class int) os2.Width {
	if class == 0 {
		return os2.WidthNormal
	}
	return os2.Width(class)
}

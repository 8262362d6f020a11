// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package ufo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// A Glyph is one glyph of a UFO layer, read from a GLIF v2 file.
type Glyph struct {
	Name     string
	Width    float64 // advance width in font units
	Height   float64 // vertical advance, usually 0
	Unicodes []rune

	Anchors    []Anchor
	Contours   []Contour
	Components []Component

	// Note and Lib are carried through verbatim when the glyph is
	// written back.
	Note string
	Lib  []byte // inner XML of the <lib> element

	file string // file name within the layer directory
}

// An Anchor is a named attachment point.
type Anchor struct {
	Name string
	X, Y float64
}

// A Component places another glyph of the same layer, transformed by
// an affine matrix in PDF order (xScale, xyScale, yxScale, yScale,
// xOffset, yOffset).
type Component struct {
	Base      string
	Transform matrix.Matrix
}

// A Contour is a sequence of outline points.  A contour is open if its
// first point has type "move", closed otherwise.
type Contour struct {
	Points []Point
}

// Open reports whether the contour is an open path.
func (c *Contour) Open() bool {
	return len(c.Points) > 0 && c.Points[0].Type == Move
}

// PointType classifies an outline point.
type PointType string

// The point types of the GLIF format.  An empty type marks an
// off-curve control point.
const (
	OffCurve PointType = ""
	Move     PointType = "move"
	Line     PointType = "line"
	Curve    PointType = "curve"
	QCurve   PointType = "qcurve"
)

// A Point is a single outline point.
type Point struct {
	X, Y   float64
	Type   PointType
	Smooth bool
	Name   string
}

// OnCurve reports whether the point lies on the outline.
func (p Point) OnCurve() bool {
	return p.Type != OffCurve
}

// File returns the name of the .glif file the glyph was read from.
func (g *Glyph) File() string {
	return g.file
}

// Rune returns the glyph's primary code point.  The first <unicode>
// element of a GLIF file is the primary one.
func (g *Glyph) Rune() (rune, bool) {
	if len(g.Unicodes) == 0 {
		return 0, false
	}
	return g.Unicodes[0], true
}

// structures mirroring the GLIF XML schema

type glifXML struct {
	XMLName  xml.Name      `xml:"glyph"`
	Name     string        `xml:"name,attr"`
	Format   int           `xml:"format,attr"`
	Advance  *glifAdvance  `xml:"advance"`
	Unicodes []glifUnicode `xml:"unicode"`
	Anchors  []glifAnchor  `xml:"anchor"`
	Note     string        `xml:"note,omitempty"`
	Outline  *glifOutline  `xml:"outline"`
	Lib      *glifLib      `xml:"lib"`
}

type glifAdvance struct {
	Width  float64 `xml:"width,attr,omitempty"`
	Height float64 `xml:"height,attr,omitempty"`
}

type glifUnicode struct {
	Hex string `xml:"hex,attr"`
}

type glifAnchor struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Name string  `xml:"name,attr,omitempty"`
}

type glifOutline struct {
	Components []glifComponent `xml:"component"`
	Contours   []glifContour   `xml:"contour"`
}

type glifComponent struct {
	Base    string   `xml:"base,attr"`
	XScale  *float64 `xml:"xScale,attr,omitempty"`
	XYScale *float64 `xml:"xyScale,attr,omitempty"`
	YXScale *float64 `xml:"yxScale,attr,omitempty"`
	YScale  *float64 `xml:"yScale,attr,omitempty"`
	XOffset *float64 `xml:"xOffset,attr,omitempty"`
	YOffset *float64 `xml:"yOffset,attr,omitempty"`
}

type glifContour struct {
	Points []glifPoint `xml:"point"`
}

type glifPoint struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Type   string  `xml:"type,attr,omitempty"`
	Smooth string  `xml:"smooth,attr,omitempty"`
	Name   string  `xml:"name,attr,omitempty"`
}

type glifLib struct {
	InnerXML []byte `xml:",innerxml"`
}

// ParseGlif parses the contents of a .glif file.
func ParseGlif(data []byte) (*Glyph, error) {
	var raw glifXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ufo: parsing glif: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("ufo: glif without glyph name")
	}

	g := &Glyph{Name: raw.Name}
	if raw.Advance != nil {
		g.Width = raw.Advance.Width
		g.Height = raw.Advance.Height
	}
	for _, u := range raw.Unicodes {
		v, err := strconv.ParseUint(u.Hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("ufo: glyph %q: invalid unicode value %q", raw.Name, u.Hex)
		}
		g.Unicodes = append(g.Unicodes, rune(v))
	}
	for _, a := range raw.Anchors {
		g.Anchors = append(g.Anchors, Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}
	g.Note = strings.TrimSpace(raw.Note)
	if raw.Lib != nil {
		g.Lib = raw.Lib.InnerXML
	}
	if raw.Outline != nil {
		for _, c := range raw.Outline.Components {
			m := matrix.Identity
			for i, v := range []*float64{c.XScale, c.XYScale, c.YXScale, c.YScale, c.XOffset, c.YOffset} {
				if v != nil {
					m[i] = *v
				}
			}
			g.Components = append(g.Components, Component{Base: c.Base, Transform: m})
		}
		for _, c := range raw.Outline.Contours {
			contour := Contour{Points: make([]Point, 0, len(c.Points))}
			for _, p := range c.Points {
				contour.Points = append(contour.Points, Point{
					X:      p.X,
					Y:      p.Y,
					Type:   PointType(p.Type),
					Smooth: p.Smooth == "yes",
					Name:   p.Name,
				})
			}
			g.Contours = append(g.Contours, contour)
		}
	}
	return g, nil
}

// MarshalGlif serializes the glyph as a GLIF v2 file.
func (g *Glyph) MarshalGlif() ([]byte, error) {
	raw := glifXML{
		Name:   g.Name,
		Format: 2,
	}
	if g.Width != 0 || g.Height != 0 {
		raw.Advance = &glifAdvance{Width: g.Width, Height: g.Height}
	}
	for _, r := range g.Unicodes {
		raw.Unicodes = append(raw.Unicodes, glifUnicode{Hex: fmt.Sprintf("%04X", r)})
	}
	for _, a := range g.Anchors {
		raw.Anchors = append(raw.Anchors, glifAnchor{X: a.X, Y: a.Y, Name: a.Name})
	}
	raw.Note = g.Note

	outline := &glifOutline{}
	for _, c := range g.Components {
		comp := glifComponent{Base: c.Base}
		m := c.Transform
		dst := []**float64{&comp.XScale, &comp.XYScale, &comp.YXScale, &comp.YScale, &comp.XOffset, &comp.YOffset}
		for i := range m {
			if m[i] != matrix.Identity[i] {
				v := m[i]
				*dst[i] = &v
			}
		}
		outline.Components = append(outline.Components, comp)
	}
	for _, c := range g.Contours {
		contour := glifContour{}
		for _, p := range c.Points {
			gp := glifPoint{X: p.X, Y: p.Y, Type: string(p.Type), Name: p.Name}
			if p.Smooth {
				gp.Smooth = "yes"
			}
			contour.Points = append(contour.Points, gp)
		}
		outline.Contours = append(outline.Contours, contour)
	}
	if len(outline.Components) > 0 || len(outline.Contours) > 0 {
		raw.Outline = outline
	} else {
		// an empty <outline/> element is customary even for blank glyphs
		raw.Outline = &glifOutline{}
	}
	if len(g.Lib) > 0 {
		raw.Lib = &glifLib{InnerXML: g.Lib}
	}

	body, err := xml.MarshalIndent(&raw, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("ufo: serializing glyph %q: %w", g.Name, err)
	}
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

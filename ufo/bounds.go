// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package ufo

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// A Rect is an axis-aligned bounding box in font units.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

func (r *Rect) extendPoint(x, y float64, first *bool) {
	if *first {
		r.XMin, r.YMin, r.XMax, r.YMax = x, y, x, y
		*first = false
		return
	}
	r.XMin = math.Min(r.XMin, x)
	r.YMin = math.Min(r.YMin, y)
	r.XMax = math.Max(r.XMax, x)
	r.YMax = math.Max(r.YMax, y)
}

// GlyphBounds computes the exact outline bounding box of a glyph,
// including transformed components.  The second return value is false
// for glyphs without any outline.
func (f *Font) GlyphBounds(g *Glyph) (Rect, bool) {
	var bbox Rect
	first := true
	f.extendGlyphBounds(&bbox, &first, g, matrix.Identity, 0)
	return bbox, !first
}

// maxComponentDepth bounds component nesting so that reference cycles
// in malformed sources cannot recurse forever.
const maxComponentDepth = 16

func (f *Font) extendGlyphBounds(bbox *Rect, first *bool, g *Glyph, m matrix.Matrix, depth int) {
	if depth > maxComponentDepth {
		return
	}
	for i := range g.Contours {
		extendContourBounds(bbox, first, &g.Contours[i], m)
	}
	for _, c := range g.Components {
		base, ok := f.Glyph(c.Base)
		if !ok {
			continue
		}
		f.extendGlyphBounds(bbox, first, base, c.Transform.Mul(m), depth+1)
	}
}

func extendContourBounds(bbox *Rect, first *bool, c *Contour, m matrix.Matrix) {
	segs := c.Segments()
	for _, s := range segs {
		x0, y0 := apply(m, s.P0.X, s.P0.Y)
		x3, y3 := apply(m, s.P3.X, s.P3.Y)
		bbox.extendPoint(x0, y0, first)
		bbox.extendPoint(x3, y3, first)
		if !s.Curve {
			continue
		}
		x1, y1 := apply(m, s.P1.X, s.P1.Y)
		x2, y2 := apply(m, s.P2.X, s.P2.Y)
		extendCubicBounds(bbox, first, x0, x1, x2, x3, y0, y1, y2, y3)
	}
}

// apply transforms a point by an affine matrix in PDF order.
func apply(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// A Segment is either a straight line from P0 to P3 or a cubic
// Bézier with control points P1 and P2.
type Segment struct {
	Curve          bool
	P0, P1, P2, P3 Point
}

// Segments converts the contour's point list into line and curve
// segments.  Closed contours wrap around to their first on-curve
// point; open contours start at their "move" point.
func (c *Contour) Segments() []Segment {
	pts := c.Points
	n := len(pts)
	if n == 0 {
		return nil
	}
	if n == 1 {
		// a single point is an anchor-like mark with no extent
		return []Segment{{P0: pts[0], P3: pts[0]}}
	}

	open := c.Open()
	start := 0
	if !open {
		start = -1
		for i, p := range pts {
			if p.OnCurve() {
				start = i
				break
			}
		}
		if start < 0 {
			// all points off-curve: a TrueType-style implied contour,
			// not produced by cubic sources; use the control polygon
			var segs []Segment
			for i := 0; i < n; i++ {
				segs = append(segs, Segment{P0: pts[i], P3: pts[(i+1)%n]})
			}
			return segs
		}
	}

	var segs []Segment
	var off []Point
	prev := pts[start]
	count := n
	if open {
		count = n - 1
	}
	for i := 1; i <= count; i++ {
		p := pts[(start+i)%n]
		if !p.OnCurve() {
			off = append(off, p)
			continue
		}
		segs = append(segs, makeSegment(prev, off, p))
		off = off[:0]
		prev = p
	}
	if !open && len(off) > 0 {
		// trailing off-curve points curve back to the start
		segs = append(segs, makeSegment(prev, off, pts[start]))
	}
	return segs
}

func makeSegment(from Point, off []Point, to Point) Segment {
	switch len(off) {
	case 0:
		return Segment{P0: from, P3: to}
	case 1:
		// a lone control point; treat as a degenerate cubic
		return Segment{Curve: true, P0: from, P1: off[0], P2: off[0], P3: to}
	default:
		return Segment{Curve: true, P0: from, P1: off[0], P2: off[len(off)-1], P3: to}
	}
}

// extendCubicBounds grows the box by the extrema of a cubic Bézier.
// The end points are already included; only interior stationary points
// of the coordinate polynomials need checking.
func extendCubicBounds(bbox *Rect, first *bool, x0, x1, x2, x3, y0, y1, y2, y3 float64) {
	for _, t := range cubicExtrema(x0, x1, x2, x3) {
		x := cubicAt(x0, x1, x2, x3, t)
		y := cubicAt(y0, y1, y2, y3, t)
		bbox.extendPoint(x, y, first)
	}
	for _, t := range cubicExtrema(y0, y1, y2, y3) {
		x := cubicAt(x0, x1, x2, x3, t)
		y := cubicAt(y0, y1, y2, y3, t)
		bbox.extendPoint(x, y, first)
	}
}

func cubicAt(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

// cubicExtrema returns the parameters in (0, 1) where the derivative
// of the cubic with control values p0..p3 vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	// derivative: 3 [ (p1-p0) + 2 (p2-2p1+p0) t + (p3-3p2+3p1-p0) t^2 ]
	a := p3 - 3*p2 + 3*p1 - p0
	b := 2 * (p2 - 2*p1 + p0)
	c := p1 - p0

	var ts []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}

	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			add(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return ts
}

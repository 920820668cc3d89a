// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/raster/clip"
)

// edge is a clipped line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// xAt returns the x-coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser converts vector paths to pixel coverage values.
//
// Paths are transformed to device space, curves are flattened and all
// points are rounded to subpixel integer coordinates. A [clip.Clipper]
// restricts the resulting segments to Clip before their contribution to
// the pixel coverage is accumulated.
//
// The caller creates one instance and reuses it for multiple paths.
// Internal buffers grow as needed but never shrink.
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM is the current transformation matrix (user space to device space).
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip defines the output region in device coordinates.
	// Must be a non-empty rectangle with integer-aligned coordinates.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	// Must be > 0. Typical values are 0.25-1.0.
	Flatness float64

	// Width is the stroke line width in user-space units.
	Width float64

	// Cap is the line cap style for stroke endpoints.
	Cap graphics.LineCapStyle

	// Join is the line join style for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit is the miter limit for miter joins.
	// Must be >= 1.0.
	MiterLimit float64

	// Dash is the dash pattern in user-space units.
	// Nil means solid line.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers. Larger paths use the active edge list.
	smallPathThreshold int

	clipper *clip.Clipper

	// coverage accumulation
	cover       []float32 // cover change per pixel; reused as output
	area        []float32 // area within pixel
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool
	crossings   []float64 // y values where an edge crosses pixel boundaries

	hasEdges bool
	bbox     clip.Rectangle[int64] // edge bounding box in subpixel units

	// stroking
	points   []vec.Vec2 // flattened subpaths, contiguous
	subpaths []subpath
	dots     []vec.Vec2 // zero-length subpaths
	poly     []vec.Vec2 // polygon under construction
	dash     []vec.Vec2 // dash under construction
	head     []vec.Vec2 // first dash of a closed subpath
}

// NewRasteriser creates a new Rasteriser with the given clip rectangle
// and PDF default values for all other parameters.
func NewRasteriser(clipRect rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.clipper = clip.NewClipper(clip.SinkFunc(r.addEdge))
	r.Reset(clipRect)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept for reuse.
func (r *Rasteriser) Reset(clipRect rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clipRect
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
	r.smallPathThreshold = smallPathThreshold

	r.edges = r.edges[:0]
	r.points = r.points[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]
	r.poly = r.poly[:0]
	r.dash = r.dash[:0]
	r.head = r.head[:0]
}

// FillNonZero rasterises the path using the nonzero winding rule.
// Coverage is delivered row-by-row via the emit callback.
// The coverage slice passed to emit is only valid for the duration
// of the callback. Open subpaths are closed implicitly.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd rasterises the path using the even-odd fill rule.
// Coverage is delivered row-by-row via the emit callback.
// The coverage slice passed to emit is only valid for the duration
// of the callback. Open subpaths are closed implicitly.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillEvenOdd, emit)
}

// fillRule identifies which fill rule to apply.
type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasteriser) fill(p *path.Data, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.addPath(p)
	r.rasterise(rule, emit)
}

// rasterise converts the collected edges into coverage, choosing the
// buffer layout by the size of the bounding box.
func (r *Rasteriser) rasterise(rule fillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// beginEdges clears the edge list and installs Clip as the clip box.
func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.hasEdges = false
	r.clipper.SetClipBox(
		clip.FromFloat(r.Clip.LLx), clip.FromFloat(r.Clip.LLy),
		clip.FromFloat(r.Clip.URx), clip.FromFloat(r.Clip.URy))
}

// addPath walks the path and sends its outline through the clipper.
func (r *Rasteriser) addPath(p *path.Data) {
	var current vec.Vec2 // current point (user space)
	var start vec.Vec2   // subpath start (user space)
	open := false

	closeSubpath := func() {
		if open && current != start {
			r.lineTo(start)
		}
		current = start
		open = false
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			closeSubpath()
			current = p.Coords[coordIdx]
			start = current
			r.moveTo(current)
			coordIdx++

		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			r.lineTo(current)
			open = true
			coordIdx++

		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], r.lineTo)
			current = p.Coords[coordIdx+1]
			open = true
			coordIdx += 2

		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], r.lineTo)
			current = p.Coords[coordIdx+2]
			open = true
			coordIdx += 3

		case path.CmdClose:
			closeSubpath()
		}
	}
	closeSubpath()
}

// addPolygon sends a closed polygon through the clipper.
func (r *Rasteriser) addPolygon(pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	r.moveTo(pts[0])
	for _, p := range pts[1:] {
		r.lineTo(p)
	}
	r.lineTo(pts[0])
}

// moveTo starts a new polyline at the user-space point p.
func (r *Rasteriser) moveTo(p vec.Vec2) {
	x, y := r.toSubpixel(p)
	r.clipper.MoveTo(x, y)
}

// lineTo continues the polyline to the user-space point p.
func (r *Rasteriser) lineTo(p vec.Vec2) {
	x, y := r.toSubpixel(p)
	r.clipper.LineTo(x, y)
}

// toSubpixel maps a user-space point to subpixel device coordinates.
func (r *Rasteriser) toSubpixel(p vec.Vec2) (int64, int64) {
	dx := r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4]
	dy := r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5]
	return clip.FromFloat(dx), clip.FromFloat(dy)
}

// addEdge receives the clipped segments from the clipper.
func (r *Rasteriser) addEdge(x1, y1, x2, y2 int64) {
	if y1 == y2 {
		return // horizontal edges do not contribute
	}

	if r.hasEdges {
		r.bbox.Expand(x1, y1)
	} else {
		r.bbox = clip.Rectangle[int64]{X1: x1, Y1: y1, X2: x1, Y2: y1}
		r.hasEdges = true
	}
	r.bbox.Expand(x2, y2)

	e := edge{
		x0: clip.ToFloat(x1), y0: clip.ToFloat(y1),
		x1: clip.ToFloat(x2), y1: clip.ToFloat(y2),
	}
	e.dxdy = (e.x1 - e.x0) / (e.y1 - e.y0)
	r.edges = append(r.edges, e)
}

// edgeBounds returns the pixel bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasteriser) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if !r.hasEdges {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(r.bbox.X1>>clip.SubpixelShift), int(r.Clip.LLx))
	xMax = min(int(r.bbox.X2>>clip.SubpixelShift)+1, int(r.Clip.URx))
	yMin = max(int(r.bbox.Y1>>clip.SubpixelShift), int(r.Clip.LLy))
	yMax = min(int(r.bbox.Y2>>clip.SubpixelShift)+1, int(r.Clip.URy))

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier by line segments and
// calls lineTo for every vertex after p0. The segment count comes from the
// device-space size of the second difference (P0 - 2P1 + P2)/4.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, lineTo func(vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := r.transformLinear(e).Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		lineTo(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
	lineTo(p2)
}

// flattenCubic approximates a cubic Bézier by line segments, using Wang's
// formula for the segment count, and calls lineTo for every vertex
// after p0.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, lineTo func(vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		// n = ceil(sqrt(3m / 4ε))
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		lineTo(p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t)))
	}
	lineTo(p3)
}

// Default values for rasteriser parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF/PostScript default. Joins are
	// bevelled when the interior angle is below about 11.5 degrees.
	defaultMiterLimit = 10.0
)

// Numerical tolerances and thresholds.
const (
	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length of a stroke segment in
	// user space.
	zeroLengthThreshold = 1e-10

	// miterEpsilon absorbs rounding at the exact miter limit.
	miterEpsilon = 1e-10
)

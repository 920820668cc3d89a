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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// subpath is a flattened subpath, stored as r.points[start:end].
type subpath struct {
	start, end int
	closed     bool
}

// Stroke renders the path as a stroked outline using Width, Cap, Join,
// MiterLimit, Dash, and DashPhase. The emit callback receives coverage
// row-by-row; its slice argument is valid only during the call.
//
// The outline is built as a union of convex polygons, one per segment,
// join and cap, which are all given the same orientation and filled
// together with the nonzero winding rule.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	if !(r.Width > 0) {
		return
	}
	r.flattenStroke(p)
	if len(r.subpaths) == 0 && len(r.dots) == 0 {
		return
	}

	r.beginEdges()
	d := r.Width / 2

	for _, pt := range r.dots {
		r.addDot(pt, vec.Vec2{X: 1}, d)
	}

	dashed := r.dashPatternValid()
	for _, sp := range r.subpaths {
		pts := r.points[sp.start:sp.end]
		if dashed {
			r.strokeDashed(pts, sp.closed, d)
		} else {
			r.strokePolyline(pts, sp.closed, d)
		}
	}

	r.rasterise(fillNonZero, emit)
}

// flattenStroke walks the path in user space and fills r.points,
// r.subpaths and r.dots. Consecutive duplicate points are removed.
// For closed subpaths the closing segment is implicit.
func (r *Rasteriser) flattenStroke(p *path.Data) {
	r.points = r.points[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]

	start := 0
	inSubpath := false
	drawn := false // a drawing command was seen in this subpath

	finish := func(closed bool) {
		if !inSubpath {
			return
		}
		pts := r.points[start:]
		if closed && len(pts) > 1 && near(pts[0], pts[len(pts)-1]) {
			r.points = r.points[:len(r.points)-1]
			pts = pts[:len(pts)-1]
		}
		switch {
		case len(pts) > 1:
			r.subpaths = append(r.subpaths, subpath{start: start, end: len(r.points), closed: closed})
		case drawn || closed:
			r.dots = append(r.dots, pts[0])
			r.points = r.points[:start]
		default:
			r.points = r.points[:start] // lone MoveTo
		}
		start = len(r.points)
		inSubpath = false
		drawn = false
	}

	lineTo := func(pt vec.Vec2) {
		drawn = true
		if !near(r.points[len(r.points)-1], pt) {
			r.points = append(r.points, pt)
		}
	}

	var first vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			first = p.Coords[coordIdx]
			r.points = append(r.points, first)
			inSubpath = true
			coordIdx++

		case path.CmdLineTo:
			if inSubpath {
				lineTo(p.Coords[coordIdx])
			}
			coordIdx++

		case path.CmdQuadTo:
			if inSubpath {
				current := r.points[len(r.points)-1]
				r.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], lineTo)
			}
			coordIdx += 2

		case path.CmdCubeTo:
			if inSubpath {
				current := r.points[len(r.points)-1]
				r.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], lineTo)
			}
			coordIdx += 3

		case path.CmdClose:
			if inSubpath {
				finish(true)
				// drawing may continue from the subpath start
				r.points = append(r.points, first)
				inSubpath = true
			}
		}
	}
	finish(false)
}

// strokePolyline adds the outline of a polyline with at least two
// distinct consecutive points.
func (r *Rasteriser) strokePolyline(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	if n < 2 {
		return
	}
	nSeg := n - 1
	if closed {
		nSeg = n
	}

	for i := range nSeg {
		a, b := pts[i], pts[(i+1)%n]
		t := unit(b.Sub(a))
		off := normal(t).Mul(d)
		r.fillConvex(a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))

		if closed || i < nSeg-1 {
			t2 := unit(pts[(i+2)%n].Sub(b))
			r.addJoin(b, t, t2, d)
		}
	}

	if !closed {
		r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
		r.addCap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), d)
	}
}

// addJoin adds the join at vertex P between a segment with unit tangent
// t1 and the following segment with unit tangent t2.
func (r *Rasteriser) addJoin(P, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	dot := t1.X*t2.X + t1.Y*t2.Y
	if math.Abs(cross) < collinearityThreshold && dot > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addCircle(P, d)
		return
	}

	// the join is on the outer side of the turn
	s := d
	if cross > 0 {
		s = -d
	}
	o1 := normal(t1).Mul(s)
	o2 := normal(t2).Mul(s)

	if r.Join == graphics.LineJoinMiter && dot > cuspCosineThreshold {
		// the miter length relative to the line width is 1/sin(φ/2),
		// where sin(φ/2) = sqrt((1 + t1·t2) / 2)
		sinHalf := math.Sqrt((1 + dot) / 2)
		if 1/sinHalf <= r.MiterLimit+miterEpsilon {
			tip := P.Add(o1.Add(o2).Mul(1 / (1 + dot)))
			r.fillConvex(P, P.Add(o1), tip, P.Add(o2))
			return
		}
	}

	r.fillConvex(P, P.Add(o1), P.Add(o2))
}

// addCap adds the cap at an end point P of an open polyline.
// T is the unit tangent pointing away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(P, d)
	case graphics.LineCapSquare:
		off := normal(T).Mul(d)
		ext := T.Mul(d)
		r.fillConvex(P.Add(off), P.Add(off).Add(ext), P.Sub(off).Add(ext), P.Sub(off))
	}
}

// addDot adds the mark for a zero-length subpath or dash at P.
// Butt caps leave no mark. Square caps give a square aligned with T.
func (r *Rasteriser) addDot(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(P, d)
	case graphics.LineCapSquare:
		u := T.Mul(d)
		v := normal(T).Mul(d)
		r.fillConvex(P.Add(u).Add(v), P.Sub(u).Add(v), P.Sub(u).Sub(v), P.Add(u).Sub(v))
	}
}

// addCircle adds a regular polygon approximating the circle of the
// given radius around c. The vertex count keeps the device-space
// deviation below Flatness.
func (r *Rasteriser) addCircle(c vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())
	n := circleSegments(devRadius, r.Flatness)

	r.poly = r.poly[:0]
	for i := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		r.poly = append(r.poly, vec.Vec2{X: c.X + radius*cos, Y: c.Y + radius*sin})
	}
	r.addOriented()
}

// circleSegments returns the number of chords needed so that the sagitta
// r(1 - cos(θ/2)) of each chord does not exceed the flatness.
func circleSegments(devRadius, flatness float64) int {
	if devRadius <= flatness {
		return 4
	}
	step := 2 * math.Acos(1-flatness/devRadius)
	return max(int(math.Ceil(2*math.Pi/step)), 4)
}

// fillConvex adds the convex polygon with the given vertices.
func (r *Rasteriser) fillConvex(pts ...vec.Vec2) {
	r.poly = append(r.poly[:0], pts...)
	r.addOriented()
}

// addOriented sends r.poly through the clipper with positive orientation,
// so that overlapping stroke pieces never cancel. Polygons without
// area are skipped.
func (r *Rasteriser) addOriented() {
	pts := r.poly
	var a float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		a += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	if a == 0 {
		return
	}
	if a < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	r.addPolygon(pts)
}

// unit returns v scaled to length 1.
func unit(v vec.Vec2) vec.Vec2 {
	return v.Mul(1 / v.Length())
}

// normal returns v rotated by 90° counter-clockwise.
func normal(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

// near reports whether a and b are too close to form a stroke segment.
func near(a, b vec.Vec2) bool {
	return b.Sub(a).Length() < zeroLengthThreshold
}

const (
	// collinearityThreshold is the minimum |sin θ| between consecutive
	// segments for a join to be drawn.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects segments which double back on
	// themselves. Such corners get a bevel instead of a miter.
	cuspCosineThreshold = -0.9999
)

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

// Package clip implements the clipping stage of the rasteriser.
//
// A [Clipper] receives a polyline as a sequence of MoveTo and LineTo calls
// in subpixel device coordinates. If a clip box is set, only the parts of
// each segment inside the box are passed on to a [Sink]. Parts to the left
// or right of the box are replaced by vertical segments on the nearest box
// edge, so that every scanline inside the box sees the same winding
// changes as for the unclipped path. Parts above or below the box are
// dropped.
package clip

import (
	"context"
	"fmt"
	"log/slog"
)

// Sink receives the line segments which survive clipping.
// Coordinates are in subpixel units.
type Sink interface {
	Line(x1, y1, x2, y2 int64)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(x1, y1, x2, y2 int64)

// Line calls f(x1, y1, x2, y2).
func (f SinkFunc) Line(x1, y1, x2, y2 int64) {
	f(x1, y1, x2, y2)
}

// Clipper clips a polyline against an optional clip box.
//
// The pen position always holds the last point given to MoveTo or LineTo,
// not the clipped point, so that consecutive LineTo calls chain correctly.
//
// A Clipper is not safe for concurrent use. The sink must not call back
// into the Clipper.
type Clipper struct {
	sink Sink

	x, y int64      // pen position
	code RegionCode // region code of the pen position

	box    Rectangle[int64]
	hasBox bool
}

// NewClipper returns a Clipper which forwards segments to sink.
// No clip box is set initially.
func NewClipper(sink Sink) *Clipper {
	return &Clipper{sink: sink}
}

// SetClipBox installs the clip box, replacing any previous one.
// The corners may be given in any order. The region code of the current
// pen position is updated immediately.
func (c *Clipper) SetClipBox(x1, y1, x2, y2 int64) {
	c.box = NewRectangle(x1, y1, x2, y2)
	c.hasBox = true
	c.code = c.box.Classify(c.x, c.y)
}

// ResetClipBox removes the clip box. Subsequent segments are passed to
// the sink unchanged.
func (c *Clipper) ResetClipBox() {
	c.hasBox = false
	c.code = Inside
}

// ClipBox returns the current clip box. The second return value is false
// if no clip box is set.
func (c *Clipper) ClipBox() (Rectangle[int64], bool) {
	return c.box, c.hasBox
}

// Pen returns the current pen position.
func (c *Clipper) Pen() (x, y int64) {
	return c.x, c.y
}

// Code returns the region code of the current pen position.
// This is Inside if no clip box is set.
func (c *Clipper) Code() RegionCode {
	return c.code
}

// MoveTo moves the pen to (x, y) without emitting anything.
// Any int64 coordinates are accepted; crossings with the box edges are
// computed exactly over the full int64 range.
func (c *Clipper) MoveTo(x, y int64) {
	c.x, c.y = x, y
	c.code = Inside
	if c.hasBox {
		c.code = c.box.Classify(x, y)
	}

	if l := Logger(); tracing(l) {
		l.LogAttrs(context.Background(), slog.LevelDebug, "move",
			slog.Int64("x", x), slog.Int64("y", y),
			slog.String("code", c.code.String()))
	}
}

// LineTo clips the segment from the pen position to (x, y) and passes
// the pieces inside the box to the sink. Between zero and three segments
// are emitted: the visible part of the segment, and vertical pieces on the
// left and right edges of the box which stand in for the parts beside the
// box. The pen is then moved to (x, y). Like MoveTo, LineTo accepts the
// full int64 range.
func (c *Clipper) LineTo(x, y int64) {
	if !c.hasBox {
		c.emit(c.x, c.y, x, y)
		c.x, c.y = x, y
		return
	}

	f1 := c.code
	f2 := c.box.Classify(x, y)
	if v := f1.Vertical(); v != Inside && v == f2.Vertical() {
		// Entirely above or entirely below the box.
		if l := Logger(); tracing(l) {
			l.LogAttrs(context.Background(), slog.LevelDebug, "reject",
				slog.Int64("x1", c.x), slog.Int64("y1", c.y),
				slog.Int64("x2", x), slog.Int64("y2", y),
				slog.String("code", v.String()))
		}
	} else {
		pts, n := c.splitX(c.x, c.y, x, y, f1, f2)
		for i := 1; i < n; i++ {
			c.clipY(pts[i-1], pts[i])
		}
	}

	c.x, c.y = x, y
	c.code = f2
}

// vertex is a segment end point together with its region code.
type vertex struct {
	x, y int64
	code RegionCode
}

// splitX cuts the segment (x1,y1)-(x2,y2) at the left and right edges of
// the clip box. It returns the vertices of a polyline of up to three
// segments, in which all x-coordinates lie inside [X1, X2]. Pieces which
// were left or right of the box are moved onto the corresponding edge.
// Zero-length pieces created by the cuts are merged away.
func (c *Clipper) splitX(x1, y1, x2, y2 int64, f1, f2 RegionCode) (pts [4]vertex, n int) {
	h1, h2 := f1.Horizontal(), f2.Horizontal()

	pts[0] = vertex{x: c.onEdgeX(x1, h1), y: y1, code: f1}
	last := vertex{x: c.onEdgeX(x2, h2), y: y2, code: f2}
	if h1 == h2 {
		if h1 != Inside && y1 == y2 {
			// a horizontal segment beside the box
			return pts, 1
		}
		pts[1] = last
		return pts, 2
	}

	n = 1
	add := func(v vertex) {
		if prev := &pts[n-1]; prev.x == v.x && prev.y == v.y {
			*prev = v
			return
		}
		pts[n] = v
		n++
	}
	for _, h := range [2]RegionCode{h1, h2} {
		if h == Inside {
			continue
		}
		ex := c.edgeX(h)
		ey := intercept(ex, x1, y1, x2, y2)
		add(vertex{x: ex, y: ey, code: c.box.Classify(ex, ey)})
	}
	add(last)
	return pts, n
}

// clipY emits the part of the segment p-q which lies between the bottom
// and top edges of the clip box. The x-coordinates of p and q must
// already be inside the box.
func (c *Clipper) clipY(p, q vertex) {
	v1, v2 := p.code.Vertical(), q.code.Vertical()
	if v1 == Inside && v2 == Inside {
		c.emit(p.x, p.y, q.x, q.y)
		return
	}
	if v1 == v2 {
		return
	}

	x1, y1, x2, y2 := p.x, p.y, q.x, q.y
	if v1 != Inside {
		y1 = c.edgeY(v1)
		x1 = intercept(y1, p.y, p.x, q.y, q.x)
	}
	if v2 != Inside {
		y2 = c.edgeY(v2)
		x2 = intercept(y2, p.y, p.x, q.y, q.x)
	}
	if x1 == x2 && y1 == y2 {
		return
	}
	c.emit(x1, y1, x2, y2)
}

// edgeX returns the x-coordinate of the box edge on side h.
func (c *Clipper) edgeX(h RegionCode) int64 {
	switch h {
	case Left:
		return c.box.X1
	case Right:
		return c.box.X2
	}
	panic(fmt.Sprintf("clip: invalid horizontal region code %q", h))
}

// onEdgeX returns x if h is Inside, and the x-coordinate of the box edge
// on side h otherwise.
func (c *Clipper) onEdgeX(x int64, h RegionCode) int64 {
	if h == Inside {
		return x
	}
	return c.edgeX(h)
}

// edgeY returns the y-coordinate of the box edge on side v.
func (c *Clipper) edgeY(v RegionCode) int64 {
	switch v {
	case Bottom:
		return c.box.Y1
	case Top:
		return c.box.Y2
	}
	panic(fmt.Sprintf("clip: invalid vertical region code %q", v))
}

func (c *Clipper) emit(x1, y1, x2, y2 int64) {
	if l := Logger(); tracing(l) {
		l.LogAttrs(context.Background(), slog.LevelDebug, "line",
			slog.Int64("x1", x1), slog.Int64("y1", y1),
			slog.Int64("x2", x2), slog.Int64("y2", y2))
	}
	c.sink.Line(x1, y1, x2, y2)
}

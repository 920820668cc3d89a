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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "line_round",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapRound, graphics.LineJoinMiter),
	},
	{
		Name:   "line_square",
		Path:   horizontalLine(10, 32, 54),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapSquare, graphics.LineJoinMiter),
	},
	{
		Name:   "corner_miter",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "corner_round",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinRound),
	},
	{
		Name:   "corner_bevel",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinBevel),
	},
	{
		// the miter would be longer than the limit, so a bevel is drawn
		Name:   "sharp_corner_miter",
		Path:   corner(8, 28, 56, 32, 8, 36),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "closed_square",
		Path:   rectangle(16, 16, 48, 48),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "zero_length_round",
		Path:   (&path.Data{}).MoveTo(pt(32, 32)).LineTo(pt(32, 32)),
		Width:  64,
		Height: 64,
		Op:     solid(12, graphics.LineCapRound, graphics.LineJoinMiter),
	},
	{
		Name:   "zero_length_square",
		Path:   (&path.Data{}).MoveTo(pt(32, 32)).Close(),
		Width:  64,
		Height: 64,
		Op:     solid(12, graphics.LineCapSquare, graphics.LineJoinMiter),
	},
	{
		Name:   "line_nonuniform_ctm",
		Path:   horizontalLine(-10, 0, 10),
		Width:  64,
		Height: 64,
		Op:     solid(3, graphics.LineCapRound, graphics.LineJoinRound),
		CTM:    matrix.Scale(2, 4).Translate(32, 32),
	},
}

// solid returns an undashed stroke operation with the default miter limit.
func solid(width float64, capStyle graphics.LineCapStyle, join graphics.LineJoinStyle) Stroke {
	return Stroke{Width: width, Cap: capStyle, Join: join, MiterLimit: 10}
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x1, y)).LineTo(pt(x2, y))
}

// corner builds a path with two line segments meeting at (x2, y2).
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}

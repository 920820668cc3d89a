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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// clipCases exercise clip rectangles smaller than the canvas.
// Outside the clip rectangle the output must be empty.
var clipCases = []TestCase{
	{
		Name:   "triangle_clip_center",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Clip:   box(16, 16, 48, 48),
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "rectangle_beyond_canvas",
		Path:   rectangle(-100, 20, 164, 44),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "rectangle_left_of_clip",
		Path:   rectangle(-20, 8, 40, 56),
		Width:  64,
		Height: 64,
		Clip:   box(24, 0, 64, 64),
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "rectangle_outside_clip",
		Path:   rectangle(2, 2, 14, 14),
		Width:  64,
		Height: 64,
		Clip:   box(32, 32, 64, 64),
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "star_clip_corner",
		Path:   fivePointStar(32, 32, 30),
		Width:  64,
		Height: 64,
		Clip:   box(0, 0, 32, 32),
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "slanted_through_clip",
		Path:   (&path.Data{}).MoveTo(pt(-40, 70)).LineTo(pt(20, -30)).LineTo(pt(100, 20)).Close(),
		Width:  64,
		Height: 64,
		Clip:   box(8, 8, 56, 56),
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "circle_clip_strip",
		Path:   circle(32, 32, 28),
		Width:  64,
		Height: 64,
		Clip:   box(0, 24, 64, 40),
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "stroke_clip_band",
		Path:   (&path.Data{}).MoveTo(pt(4, 60)).LineTo(pt(32, 4)).LineTo(pt(60, 60)),
		Width:  64,
		Height: 64,
		Clip:   box(0, 20, 64, 44),
		Op: Stroke{
			Width:      6,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
	},
	{
		Name:   "large_clipped",
		Path:   rectangle(-100, 100, 612, 400),
		Width:  512,
		Height: 512,
		Clip:   box(64, 64, 448, 448),
		Op:     Fill{Rule: NonZero},
	},
}

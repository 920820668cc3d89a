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

import "seehuhn.de/go/pdf/graphics"

var dashCases = []TestCase{
	{
		Name:   "dash_equal",
		Path:   horizontalLine(5, 32, 59),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 0, 8, 4),
	},
	{
		// odd-length patterns repeat with on and off swapped
		Name:   "dash_three_element",
		Path:   horizontalLine(5, 32, 59),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 0, 5, 3, 8),
	},
	{
		Name:   "dash_phase_half",
		Path:   horizontalLine(5, 32, 59),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 4, 8, 4),
	},
	{
		Name:   "dash_phase_negative",
		Path:   horizontalLine(5, 32, 59),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, -3, 8, 4),
	},
	{
		Name:   "dash_zero_round",
		Path:   horizontalLine(8, 32, 56),
		Width:  64,
		Height: 64,
		Op:     dashed(6, graphics.LineCapRound, 0, 0, 8),
	},
	{
		Name:   "dash_zero_square",
		Path:   corner(8, 50, 32, 14, 56, 50),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapSquare, 0, 0, 9),
	},
	{
		Name:   "dash_corner_in_dash",
		Path:   corner(10, 50, 32, 14, 54, 50),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 36, 12, 6),
	},
	{
		Name:   "dash_closed_square",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 0, 14, 6),
	},
	{
		// the last dash continues through the start point
		Name:   "dash_closed_join",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Op:     dashed(4, graphics.LineCapButt, 5, 10, 6),
	},
}

// dashed returns a dashed stroke operation with miter joins.
func dashed(width float64, capStyle graphics.LineCapStyle, phase float64, pattern ...float64) Stroke {
	return Stroke{
		Width:      width,
		Cap:        capStyle,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       pattern,
		DashPhase:  phase,
	}
}

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

package clip

import "strings"

// RegionCode is a Cohen-Sutherland outcode. It records on which sides of
// a rectangle a point lies.
type RegionCode uint8

// The individual flags of a RegionCode.
const (
	Inside RegionCode = 0
	Left   RegionCode = 1
	Right  RegionCode = 2
	Bottom RegionCode = 4
	Top    RegionCode = 8
)

// Horizontal returns the Left/Right component of c.
func (c RegionCode) Horizontal() RegionCode {
	return c & (Left | Right)
}

// Vertical returns the Bottom/Top component of c.
func (c RegionCode) Vertical() RegionCode {
	return c & (Bottom | Top)
}

func (c RegionCode) String() string {
	if c == Inside {
		return "inside"
	}
	var parts []string
	if c&Left != 0 {
		parts = append(parts, "left")
	}
	if c&Right != 0 {
		parts = append(parts, "right")
	}
	if c&Bottom != 0 {
		parts = append(parts, "bottom")
	}
	if c&Top != 0 {
		parts = append(parts, "top")
	}
	return strings.Join(parts, "|")
}

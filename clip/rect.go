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

import "golang.org/x/exp/constraints"

// Number is the set of coordinate types a Rectangle can be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// Rectangle is an axis-aligned box with X1 <= X2 and Y1 <= Y2.
// All four sides belong to the rectangle.
type Rectangle[T Number] struct {
	X1, Y1 T // lower-left corner
	X2, Y2 T // upper-right corner
}

// NewRectangle returns the rectangle spanned by the two corners.
// The corners may be given in any order.
func NewRectangle[T Number](x1, y1, x2, y2 T) Rectangle[T] {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rectangle[T]{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Classify returns the region code of (x, y) relative to r.
func (r Rectangle[T]) Classify(x, y T) RegionCode {
	code := Inside
	if x < r.X1 {
		code |= Left
	} else if x > r.X2 {
		code |= Right
	}
	if y < r.Y1 {
		code |= Bottom
	} else if y > r.Y2 {
		code |= Top
	}
	return code
}

// Contains reports whether (x, y) lies inside r or on its boundary.
func (r Rectangle[T]) Contains(x, y T) bool {
	return r.Classify(x, y) == Inside
}

// Expand grows r so that (x, y) lies inside or on the boundary.
func (r *Rectangle[T]) Expand(x, y T) {
	r.X1 = min(r.X1, x)
	r.X2 = max(r.X2, x)
	r.Y1 = min(r.Y1, y)
	r.Y2 = max(r.Y2, y)
}

// ExpandRect grows r so that it covers s.
func (r *Rectangle[T]) ExpandRect(s Rectangle[T]) {
	r.Expand(s.X1, s.Y1)
	r.Expand(s.X2, s.Y2)
}

// Dx returns the width of r.
func (r Rectangle[T]) Dx() T { return r.X2 - r.X1 }

// Dy returns the height of r.
func (r Rectangle[T]) Dy() T { return r.Y2 - r.Y1 }

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

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Device coordinates are passed to the clipper as integers in units of
// 1/SubpixelScale pixel.
const (
	SubpixelShift = 8
	SubpixelScale = 1 << SubpixelShift
	SubpixelMask  = SubpixelScale - 1
)

// FromFloat converts a device coordinate in pixels to subpixel units,
// rounding halves away from zero. Values beyond the int64 range,
// including infinities, saturate to ±math.MaxInt64. NaN maps to 0.
func FromFloat(v float64) int64 {
	x := math.Round(v * SubpixelScale)
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 1<<63:
		return math.MaxInt64
	case x <= -(1 << 63):
		return -math.MaxInt64
	}
	return int64(x)
}

// ToFloat converts a subpixel coordinate back to pixels.
func ToFloat(v int64) float64 {
	return float64(v) / SubpixelScale
}

// FromInt26_6 converts a 26.6 fixed-point value to subpixel units.
func FromInt26_6(v fixed.Int26_6) int64 {
	return int64(v) << (SubpixelShift - 6)
}

// ToInt26_6 converts a subpixel coordinate to 26.6 fixed-point,
// rounding to the nearest representable value.
func ToInt26_6(v int64) fixed.Int26_6 {
	const shift = SubpixelShift - 6
	return fixed.Int26_6((v + 1<<(shift-1)) >> shift)
}

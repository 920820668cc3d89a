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
	"math/bits"
)

// MulDiv returns a*b/c rounded to the nearest integer, with halves
// rounded away from zero. The product is formed with 128 bits, so the
// result is exact whenever it fits into an int64; results which do not
// fit are saturated to math.MinInt64 or math.MaxInt64.
//
// If c is zero, MulDiv returns 0.
func MulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0) != (c < 0)

	q, ok := mulDivRound(abs64(a), abs64(b), abs64(c))
	if !ok {
		return saturate(neg)
	}
	if neg {
		if q > 1<<63 {
			return saturate(true)
		}
		return -int64(q)
	}
	if q > math.MaxInt64 {
		return saturate(false)
	}
	return int64(q)
}

// intercept returns the v-coordinate at position s of the line through
// (s0, v0) and (s1, v1), rounded to the nearest integer with halves
// rounded away from v0. The differences between the arguments are formed
// with 64-bit magnitudes and separate signs, so that no intermediate
// overflows for any int64 input. The position s must lie between s0 and
// s1. If s0 == s1, intercept returns v0.
func intercept(s, s0, v0, s1, v1 int64) int64 {
	ds, negS := diff64(s, s0)
	dv, negV := diff64(v1, v0)
	dd, negD := diff64(s1, s0)
	if dd == 0 {
		return v0
	}
	q, ok := mulDivRound(ds, dv, dd)
	if !ok || q > dv {
		panic("clip: interpolation point outside the segment")
	}
	// The result lies between v0 and v1, so the wrapping unsigned
	// arithmetic yields the exact int64 value.
	if negS != negV != negD {
		return int64(uint64(v0) - q)
	}
	return int64(uint64(v0) + q)
}

// mulDivRound returns a*b/c for c > 0, rounded to the nearest integer
// with halves rounded up. The second result is false if the quotient
// does not fit into 64 bits.
func mulDivRound(a, b, c uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, false
	}
	q, r := bits.Div64(hi, lo, c)
	if r >= c-r {
		if q == math.MaxUint64 {
			return 0, false
		}
		q++
	}
	return q, true
}

// diff64 returns |a-b| together with the sign of a-b. The magnitude
// always fits into a uint64.
func diff64(a, b int64) (uint64, bool) {
	if a < b {
		return uint64(b) - uint64(a), true
	}
	return uint64(a) - uint64(b), false
}

// abs64 returns |x| as an unsigned value. This is exact also for
// math.MinInt64.
func abs64(x int64) uint64 {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return u
}

func saturate(neg bool) int64 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}

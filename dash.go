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

	"seehuhn.de/go/geom/vec"
)

// dashPatternValid reports whether Dash can be used: it must be non-empty,
// without negative entries, and have a positive total length.
// Invalid patterns stroke a solid line.
func (r *Rasteriser) dashPatternValid() bool {
	if len(r.Dash) == 0 {
		return false
	}
	total := 0.0
	for _, v := range r.Dash {
		if v < 0 || math.IsNaN(v) {
			return false
		}
		total += v
	}
	return total > 0 && !math.IsInf(total, 0)
}

// dashState is a position within a dash pattern.
// Even entries are "on", odd entries are "off".
type dashState struct {
	pattern   []float64
	n         int // entries per period
	idx       int
	remaining float64 // length left in entry idx
}

// newDashState returns the state at distance phase from the start of
// the pattern. An odd-length pattern swaps on and off in every
// other repetition, so its period has twice as many entries.
func newDashState(pattern []float64, phase float64) dashState {
	s := dashState{pattern: pattern, n: len(pattern)}
	if s.n%2 == 1 {
		s.n *= 2
	}
	period := 0.0
	for i := range s.n {
		period += s.entry(i)
	}
	phase = math.Mod(phase, period)
	if phase < 0 {
		phase += period
	}
	for phase > 0 && phase >= s.entry(s.idx) {
		phase -= s.entry(s.idx)
		s.idx = (s.idx + 1) % s.n
	}
	s.remaining = s.entry(s.idx) - phase
	return s
}

func (s *dashState) entry(i int) float64 {
	return s.pattern[i%len(s.pattern)]
}

func (s *dashState) on() bool {
	return s.idx%2 == 0
}

func (s *dashState) advance() {
	s.idx = (s.idx + 1) % s.n
	s.remaining = s.entry(s.idx)
}

// strokeDashed splits a flattened subpath into dashes and strokes each of
// them as an open polyline. The pattern restarts at every subpath. On a
// closed subpath the last dash continues into the first one when the
// pattern is "on" at the start point.
func (r *Rasteriser) strokeDashed(pts []vec.Vec2, closed bool, d float64) {
	s := newDashState(r.Dash, r.DashPhase)
	startedOn := s.on()
	transitions := 0

	r.head = r.head[:0]
	r.dash = r.dash[:0]
	if s.on() {
		r.dash = append(r.dash, pts[0])
	}

	n := len(pts)
	nSeg := n - 1
	if closed {
		nSeg = n
	}
	var t vec.Vec2
	for i := range nSeg {
		a, b := pts[i], pts[(i+1)%n]
		length := b.Sub(a).Length()
		t = b.Sub(a).Mul(1 / length)

		pos := 0.0
		for s.remaining <= length-pos {
			pos += s.remaining
			q := a.Add(t.Mul(pos))
			if s.on() {
				r.dash = appendPoint(r.dash, q)
				if closed && startedOn && transitions == 0 {
					r.head = append(r.head[:0], r.dash...)
				} else {
					r.emitDash(t, d)
				}
			}
			transitions++
			s.advance()
			r.dash = r.dash[:0]
			if s.on() {
				r.dash = append(r.dash, q)
			}
		}
		s.remaining -= length - pos
		if s.on() {
			r.dash = appendPoint(r.dash, b)
		}
	}

	switch {
	case closed && startedOn && transitions == 0:
		// the whole subpath is a single dash
		r.strokePolyline(pts, true, d)
	case !s.on():
		if len(r.head) > 0 {
			r.dash = append(r.dash[:0], r.head...)
			r.emitDash(unit(pts[1].Sub(pts[0])), d)
		}
	case closed && startedOn:
		// head[0] is the subpath start, where the current dash ends
		for _, p := range r.head[1:] {
			r.dash = appendPoint(r.dash, p)
		}
		r.emitDash(t, d)
	default:
		r.emitDash(t, d)
	}
}

// emitDash strokes r.dash. A dash of zero length becomes a dot oriented
// along the tangent t of the underlying segment.
func (r *Rasteriser) emitDash(t vec.Vec2, d float64) {
	switch len(r.dash) {
	case 0:
	case 1:
		r.addDot(r.dash[0], t, d)
	default:
		r.strokePolyline(r.dash, false, d)
	}
}

// appendPoint appends p to buf unless it repeats the last point.
func appendPoint(buf []vec.Vec2, p vec.Vec2) []vec.Vec2 {
	if len(buf) > 0 && near(buf[len(buf)-1], p) {
		return buf
	}
	return append(buf, p)
}

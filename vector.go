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
	"golang.org/x/image/vector"

	"seehuhn.de/go/raster/clip"
)

// VectorSink draws clipped segments onto a [vector.Rasterizer].
// It implements [clip.Sink], so that a [clip.Clipper] can be used
// in front of the x/image rasteriser.
//
// Subpixel coordinates are converted to pixels and shifted by
// (-OffsetX, -OffsetY), the position of the Rasterizer's origin in
// device space.
type VectorSink struct {
	Dst              *vector.Rasterizer
	OffsetX, OffsetY int

	x, y   int64 // end of the last segment
	hasPen bool
}

// Line implements [clip.Sink].
func (s *VectorSink) Line(x1, y1, x2, y2 int64) {
	if !s.hasPen || x1 != s.x || y1 != s.y {
		s.Dst.MoveTo(s.coord(x1, y1))
	}
	s.Dst.LineTo(s.coord(x2, y2))
	s.x, s.y = x2, y2
	s.hasPen = true
}

// Reset forgets the pen position, for example after the Rasterizer
// has been reset.
func (s *VectorSink) Reset() {
	s.hasPen = false
}

func (s *VectorSink) coord(x, y int64) (float32, float32) {
	return float32(clip.ToFloat(x) - float64(s.OffsetX)),
		float32(clip.ToFloat(y) - float64(s.OffsetY))
}

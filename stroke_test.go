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
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeCoverage strokes p on a 64×64 canvas after applying setup.
func strokeCoverage(p *path.Data, setup func(r *Rasteriser)) []float32 {
	r := NewRasteriser(rect.Rect{URx: 64, URy: 64})
	setup(r)
	return collect(64, 64, func(emit func(y, xMin int, coverage []float32)) {
		r.Stroke(p, emit)
	})
}

func hline(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).MoveTo(vec.Vec2{X: x1, Y: y}).LineTo(vec.Vec2{X: x2, Y: y})
}

func total(cov []float32) float64 {
	var sum float64
	for _, c := range cov {
		sum += float64(c)
	}
	return sum
}

func TestStrokeBand(t *testing.T) {
	cases := []struct {
		name       string
		cap        graphics.LineCapStyle
		xMin, xMax int
	}{
		{"butt", graphics.LineCapButt, 10, 54},
		{"square", graphics.LineCapSquare, 6, 58},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cov := strokeCoverage(hline(10, 32, 54), func(r *Rasteriser) {
				r.Width = 8
				r.Cap = c.cap
			})
			for y := range 64 {
				for x := range 64 {
					got := cov[y*64+x]
					inside := x >= c.xMin && x < c.xMax && y >= 28 && y < 36
					if inside && got < 0.999 {
						t.Fatalf("pixel (%d,%d) inside: got %g", x, y, got)
					} else if !inside && got > 0.001 {
						t.Fatalf("pixel (%d,%d) outside: got %g", x, y, got)
					}
				}
			}
		})
	}
}

func TestRoundCap(t *testing.T) {
	cov := strokeCoverage(hline(10, 32, 54), func(r *Rasteriser) {
		r.Width = 8
		r.Cap = graphics.LineCapRound
	})
	if got := cov[32*64+7]; got < 0.99 {
		t.Errorf("pixel inside the cap: got %g", got)
	}
	if got := cov[32*64+4]; got != 0 {
		t.Errorf("pixel beyond the cap: got %g", got)
	}
	if got := cov[28*64+6]; got > 0.5 {
		t.Errorf("pixel at the cap corner: got %g", got)
	}

	// the caps add the area of one circle
	want := 44*8 + math.Pi*16
	if got := total(cov); math.Abs(got-want) > 0.02*want {
		t.Errorf("total coverage %.2f, want %.2f", got, want)
	}
}

func TestJoinStyles(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 50}).
		LineTo(vec.Vec2{X: 32, Y: 14}).
		LineTo(vec.Vec2{X: 54, Y: 50})

	area := map[graphics.LineJoinStyle]float64{}
	for _, join := range []graphics.LineJoinStyle{
		graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel,
	} {
		cov := strokeCoverage(p, func(r *Rasteriser) {
			r.Width = 6
			r.Join = join
		})
		area[join] = total(cov)
	}

	miter := area[graphics.LineJoinMiter]
	round := area[graphics.LineJoinRound]
	bevel := area[graphics.LineJoinBevel]
	if !(miter > round && round > bevel) {
		t.Errorf("want miter > round > bevel, got %.2f, %.2f, %.2f", miter, round, bevel)
	}
}

func TestMiterLimit(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 8, Y: 28}).
		LineTo(vec.Vec2{X: 56, Y: 32}).
		LineTo(vec.Vec2{X: 8, Y: 36})

	// the miter length ratio at this corner is about 12
	for _, c := range []struct {
		limit float64
		tip   bool
	}{
		{10, false},
		{20, true},
	} {
		cov := strokeCoverage(p, func(r *Rasteriser) {
			r.Width = 4
			r.MiterLimit = c.limit
		})
		got := cov[31*64+61]
		if c.tip && got < 0.5 {
			t.Errorf("limit %g: miter tip missing, coverage %g", c.limit, got)
		} else if !c.tip && got > 1e-4 {
			t.Errorf("limit %g: unexpected miter tip, coverage %g", c.limit, got)
		}
	}
}

func TestZeroLengthSubpath(t *testing.T) {
	dot := (&path.Data{}).MoveTo(vec.Vec2{X: 32, Y: 32}).LineTo(vec.Vec2{X: 32, Y: 32})

	cases := []struct {
		cap  graphics.LineCapStyle
		area float64
	}{
		{graphics.LineCapButt, 0},
		{graphics.LineCapRound, math.Pi * 36},
		{graphics.LineCapSquare, 144},
	}
	for _, c := range cases {
		t.Run(c.cap.String(), func(t *testing.T) {
			cov := strokeCoverage(dot, func(r *Rasteriser) {
				r.Width = 12
				r.Cap = c.cap
			})
			if got := total(cov); math.Abs(got-c.area) > 0.02*c.area+1e-6 {
				t.Errorf("total coverage %.2f, want %.2f", got, c.area)
			}
		})
	}
}

func TestLoneMoveToNotStroked(t *testing.T) {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 32, Y: 32})
	cov := strokeCoverage(p, func(r *Rasteriser) {
		r.Width = 12
		r.Cap = graphics.LineCapRound
	})
	if got := total(cov); got != 0 {
		t.Errorf("total coverage %g, want 0", got)
	}
}

func TestClosedStrokeHasNoCaps(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 16, Y: 16}).
		LineTo(vec.Vec2{X: 48, Y: 16}).
		LineTo(vec.Vec2{X: 48, Y: 48}).
		LineTo(vec.Vec2{X: 16, Y: 48}).
		Close()

	cov := strokeCoverage(square, func(r *Rasteriser) {
		r.Width = 4
		r.Cap = graphics.LineCapRound
	})

	// outer square of side 36 minus inner square of side 28
	want := 36.0*36 - 28*28
	if got := total(cov); math.Abs(got-want) > 0.5 {
		t.Errorf("total coverage %.2f, want %.2f", got, want)
	}
	if got := cov[14*64+14]; got < 0.999 {
		t.Errorf("mitered corner pixel: got %g", got)
	}
}

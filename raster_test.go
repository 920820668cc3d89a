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
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/raster/testcases"
)

// approaches forces each of the two buffer layouts.
var approaches = []struct {
	name      string
	threshold int
}{
	{"A", 1 << 30}, // 2D buffers
	{"B", 0},       // active edge list
}

func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			baseName := category + "_" + tc.Name
			for _, approach := range approaches {
				name := baseName + "_" + approach.name
				t.Run(name, func(t *testing.T) {
					refPath := filepath.Join("testdata", "reference", baseName+".png")
					checkReference(t, name, refPath, tc, approach.threshold)
				})
			}
		}
	}
}

// checkReference renders tc and compares the result with the PNG image
// at refPath. The test is skipped if the image does not exist.
func checkReference(t *testing.T, name, refPath string, tc testcases.TestCase, threshold int) {
	t.Helper()
	ref, err := loadGray(refPath)
	if errors.Is(err, fs.ErrNotExist) {
		t.Skip("no reference image, run \"go run ./testcases/genpdf\"")
	} else if err != nil {
		t.Fatalf("loading reference: %v", err)
	}

	w, h := tc.Width, tc.Height
	if len(ref) != w*h {
		t.Fatalf("reference has %d pixels, want %d", len(ref), w*h)
	}
	actual := make([]byte, w*h)
	renderExample(tc, actual, w, h, w, threshold)

	if err := compareImages(name, ref, actual, w, h); err != nil {
		t.Error(err)
	}
}

// TestExactReference runs the reference comparison for clip cases whose
// coverage is exactly 0 or 1 in every pixel. The reference images are
// written from the known covered region.
func TestExactReference(t *testing.T) {
	covered := map[string]image.Rectangle{
		"rectangle_beyond_canvas": image.Rect(0, 20, 64, 44),
		"rectangle_left_of_clip":  image.Rect(24, 8, 40, 56),
		"rectangle_outside_clip":  {},
		"large_clipped":           image.Rect(64, 100, 448, 400),
	}

	dir := t.TempDir()
	found := 0
	for _, tc := range testcases.All["clip"] {
		box, ok := covered[tc.Name]
		if !ok {
			continue
		}
		found++

		ref := image.NewGray(image.Rect(0, 0, tc.Width, tc.Height))
		for y := box.Min.Y; y < box.Max.Y; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				ref.SetGray(x, y, color.Gray{Y: 255})
			}
		}
		refPath := filepath.Join(dir, tc.Name+".png")
		if err := writePNG(refPath, ref); err != nil {
			t.Fatal(err)
		}

		for _, approach := range approaches {
			name := "clip_" + tc.Name + "_" + approach.name
			t.Run(name, func(t *testing.T) {
				checkReference(t, name, refPath, tc, approach.threshold)
			})
		}
	}
	if found != len(covered) {
		t.Errorf("found %d of %d clip cases", found, len(covered))
	}
}

func writePNG(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// renderExample is RenderExample with a configurable threshold between
// the two buffer layouts.
func renderExample(tc testcases.TestCase, buf []byte, width, height, stride int, threshold int) {
	r := NewRasteriser(canvasClip(tc, width, height))
	r.smallPathThreshold = threshold
	r.renderCase(tc, func(y, xMin int, coverage []float32) {
		row := buf[y*stride+xMin:]
		for i, c := range coverage {
			row[i] = byte(max(0, min(255, int(c*256))))
		}
	})
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

// compareImages accepts an image if at least 80% of the pixels are
// identical, 95% differ by less than 64 and 99% by less than 128.
func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h
	diffs := make([]int, total)
	for i := range total {
		diffs[i] = abs(int(expected[i]) - int(actual[i]))
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	var failures []string
	if p80 > 0 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want 0)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return errors.New(strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes actual output, difference and reference side by
// side to debug/<name>.png. Green marks missing coverage, red marks
// excess coverage.
func writeDiffImage(name string, expected, actual []byte, w, h int) error {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			a, e := actual[i], expected[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := int(e) - int(a)
			c := color.RGBA{A: 255}
			if diff > 0 {
				c.G = uint8(diff)
			} else {
				c.R = uint8(-diff)
			}
			img.Set(x+w, y, c)

			img.Set(x+2*w, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	return writePNG(filepath.Join("debug", name+".png"), img)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// collect runs paint and returns the emitted coverage as a
// width × height grid.
func collect(width, height int, paint func(emit func(y, xMin int, coverage []float32))) []float32 {
	out := make([]float32, width*height)
	paint(func(y, xMin int, coverage []float32) {
		copy(out[y*width+xMin:], coverage)
	})
	return out
}

// renderClipped renders tc with the given clip rectangle.
func renderClipped(tc testcases.TestCase, clipRect rect.Rect, threshold int) []float32 {
	r := NewRasteriser(clipRect)
	r.smallPathThreshold = threshold
	return collect(tc.Width, tc.Height, func(emit func(y, xMin int, coverage []float32)) {
		r.renderCase(tc, emit)
	})
}

// TestClipEquivalence checks that rendering with a smaller clip rectangle
// gives the full-canvas result inside the rectangle, and nothing outside.
func TestClipEquivalence(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				w, h := float64(tc.Width), float64(tc.Height)
				full := renderClipped(tc, rect.Rect{URx: w, URy: h}, smallPathThreshold)

				subs := []rect.Rect{
					{LLx: math.Floor(w / 4), LLy: math.Floor(h / 4), URx: math.Floor(3 * w / 4), URy: math.Floor(3 * h / 4)},
					{URx: math.Floor(w / 2), URy: h},
					{LLx: math.Floor(w / 3), URx: w, URy: math.Floor(h / 2)},
					{LLx: 5, LLy: 7, URx: 6, URy: 8},
				}
				for _, sub := range subs {
					part := renderClipped(tc, sub, smallPathThreshold)
					for y := range tc.Height {
						for x := range tc.Width {
							i := y*tc.Width + x
							inside := float64(x) >= sub.LLx && float64(x) < sub.URx &&
								float64(y) >= sub.LLy && float64(y) < sub.URy
							if inside && math.Abs(float64(part[i]-full[i])) > 1.0/64 {
								t.Fatalf("clip %v, pixel (%d,%d): got %.4f, want %.4f",
									sub, x, y, part[i], full[i])
							} else if !inside && part[i] != 0 {
								t.Fatalf("clip %v, pixel (%d,%d) outside: got %.4f",
									sub, x, y, part[i])
							}
						}
					}
				}
			})
		}
	}
}

// TestApproachesAgree checks that both buffer layouts give the same
// coverage.
func TestApproachesAgree(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				c := canvasClip(tc, tc.Width, tc.Height)
				a := renderClipped(tc, c, approaches[0].threshold)
				b := renderClipped(tc, c, approaches[1].threshold)
				for i := range a {
					if math.Abs(float64(a[i]-b[i])) > 1e-5 {
						t.Fatalf("pixel (%d,%d): A=%.6f, B=%.6f",
							i%tc.Width, i/tc.Width, a[i], b[i])
					}
				}
			})
		}
	}
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
	coverage := collect(10, 1, func(emit func(y, xMin int, coverage []float32)) {
		r.FillNonZero(trianglePath, emit)
	})

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		if math.Abs(float64(coverage[x]-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
		}
	}
}

// TestFillBeyondCanvas checks that a shape sticking out on both sides of
// the clip rectangle covers the full width of the rows it spans.
func TestFillBeyondCanvas(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: -100, Y: 20}).
		LineTo(vec.Vec2{X: 164, Y: 20}).
		LineTo(vec.Vec2{X: 164, Y: 44}).
		LineTo(vec.Vec2{X: -100, Y: 44}).
		Close()

	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 64, URy: 64})
			r.smallPathThreshold = approach.threshold
			cov := collect(64, 64, func(emit func(y, xMin int, coverage []float32)) {
				r.FillEvenOdd(p, emit)
			})
			for y := range 64 {
				want := float32(0)
				if y >= 20 && y < 44 {
					want = 1
				}
				for x := range 64 {
					if got := cov[y*64+x]; got != want {
						t.Fatalf("pixel (%d,%d): got %g, want %g", x, y, got, want)
					}
				}
			}
		})
	}
}

// TestFillFarCoordinates fills a band whose ends lie beyond the range of
// subpixel coordinates.
func TestFillFarCoordinates(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: -1e17, Y: 10}).
		LineTo(vec.Vec2{X: 1e17, Y: 10}).
		LineTo(vec.Vec2{X: 1e17, Y: 20}).
		LineTo(vec.Vec2{X: -1e17, Y: 20}).
		Close()

	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 32, URy: 32})
			r.smallPathThreshold = approach.threshold
			cov := collect(32, 32, func(emit func(y, xMin int, coverage []float32)) {
				r.FillNonZero(p, emit)
			})
			for y := range 32 {
				want := float32(0)
				if y >= 10 && y < 20 {
					want = 1
				}
				for x := range 32 {
					if got := cov[y*32+x]; got != want {
						t.Fatalf("pixel (%d,%d): got %g, want %g", x, y, got, want)
					}
				}
			}
		})
	}
}

// TestOpenSubpathFill checks that fills close open subpaths.
func TestOpenSubpathFill(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 54, Y: 10}).
		LineTo(vec.Vec2{X: 32, Y: 54})
	closed := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 54, Y: 10}).
		LineTo(vec.Vec2{X: 32, Y: 54}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 64, URy: 64})
	a := collect(64, 64, func(emit func(y, xMin int, coverage []float32)) {
		r.FillNonZero(open, emit)
	})
	b := collect(64, 64, func(emit func(y, xMin int, coverage []float32)) {
		r.FillNonZero(closed, emit)
	})
	if !slices.Equal(a, b) {
		t.Error("open and closed subpaths give different coverage")
	}
}

func TestRenderExampleRespectsClip(t *testing.T) {
	for _, tc := range testcases.All["clip"] {
		t.Run(tc.Name, func(t *testing.T) {
			w, h := tc.Width, tc.Height
			buf := make([]byte, w*h)
			RenderExample(tc, buf, w, h, w)

			c := canvasClip(tc, w, h)
			for y := range h {
				for x := range w {
					inside := float64(x) >= c.LLx && float64(x) < c.URx &&
						float64(y) >= c.LLy && float64(y) < c.URy
					if !inside && buf[y*w+x] != 0 {
						t.Fatalf("pixel (%d,%d) outside %v is %d", x, y, c, buf[y*w+x])
					}
				}
			}
		})
	}
}

// BenchmarkRasteriseAll measures steady-state performance by reusing a single
// Rasteriser across all test cases.
func BenchmarkRasteriseAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	r := NewRasteriser(rect.Rect{})
	emit := func(y, xMin int, coverage []float32) {}

	b.ResetTimer()
	for b.Loop() {
		for _, tc := range cases {
			r.Reset(canvasClip(tc, tc.Width, tc.Height))
			r.renderCase(tc, emit)
		}
	}
}

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

// Command genpdf writes the reference images used by the raster tests.
//
// Every test case becomes a single-page PDF whose clip rectangle is
// installed as a PDF clipping path. Ghostscript then renders the page to
// an 8-bit grayscale PNG with white meaning full coverage.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/raster/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "genpdf:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		return err
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			base := filepath.Join(refDir, category+"_"+tc.Name)
			if err := writePDF(tc, base+".pdf"); err != nil {
				return fmt.Errorf("%s: %w", base, err)
			}
			if err := ghostscript(base+".pdf", base+".png"); err != nil {
				return fmt.Errorf("%s: ghostscript: %w", base, err)
			}
		}
	}
	return nil
}

// writePDF draws one test case in white on a black page, so that the
// rendered gray level equals the coverage.
func writePDF(tc testcases.TestCase, fname string) error {
	w, h := float64(tc.Width), float64(tc.Height)
	page, err := document.CreateSinglePage(fname, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// test cases use a y-down device space
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	if c := tc.Clip; c != (rect.Rect{}) {
		page.Rectangle(c.LLx, c.LLy, c.URx-c.LLx, c.URy-c.LLy)
		page.ClipNonZero()
		page.EndPath()
	}
	if ctm := tc.Transform(); ctm != matrix.Identity {
		page.Transform(ctm)
	}

	page.SetFillColor(color.DeviceGray(1))
	page.SetStrokeColor(color.DeviceGray(1))
	stroke, isStroke := tc.Op.(testcases.Stroke)
	if isStroke {
		// line parameters must be set before the path is started
		page.SetLineWidth(stroke.Width)
		page.SetLineCap(stroke.Cap)
		page.SetLineJoin(stroke.Join)
		page.SetMiterLimit(stroke.MiterLimit)
		if len(stroke.Dash) > 0 {
			page.SetLineDash(stroke.Dash, stroke.DashPhase)
		}
	}

	// PDF has no quadratic segments
	for cmd, pts := range tc.Path.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}

	switch {
	case isStroke:
		page.Stroke()
	case tc.Op.(testcases.Fill).Rule == testcases.EvenOdd:
		page.FillEvenOdd()
	default:
		page.Fill()
	}
	return page.Close()
}

// ghostscript renders a PDF at 72 dpi, one pixel per point, using 4x
// anti-aliasing.
func ghostscript(pdfName, pngName string) error {
	cmd := exec.Command("gs", "-q",
		"-sDEVICE=pnggray", "-r72", "-dGraphicsAlphaBits=4",
		"-o", pngName, pdfName)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

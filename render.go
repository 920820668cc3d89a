// Package raster implements a 2D coverage rasteriser for the PDF/PostScript
// imaging model. Paths are clipped against a rectangle in fixed-point
// device coordinates by package [seehuhn.de/go/raster/clip] before their
// coverage is accumulated.
package raster

//go:generate go run ./testcases/export

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/raster/testcases"
)

// RenderExample renders a test case into a grayscale buffer.
// The buffer is pre-initialized with zeros, in row-major order.
// Each byte represents coverage from 0 (transparent) to 255 (opaque).
// Pixels outside the clip rectangle of the test case are not touched.
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) {
	r := NewRasteriser(canvasClip(tc, width, height))
	r.renderCase(tc, func(y, xMin int, coverage []float32) {
		row := buf[y*stride+xMin:]
		for i, c := range coverage {
			row[i] = byte(max(0, min(255, int(c*256))))
		}
	})
}

// canvasClip returns the clip rectangle of tc, restricted to the canvas.
func canvasClip(tc testcases.TestCase, width, height int) rect.Rect {
	c := tc.ClipRect()
	c.LLx = max(c.LLx, 0)
	c.LLy = max(c.LLy, 0)
	c.URx = max(min(c.URx, float64(width)), c.LLx)
	c.URy = max(min(c.URy, float64(height)), c.LLy)
	return c
}

// renderCase applies the parameters of tc to r and paints its path.
func (r *Rasteriser) renderCase(tc testcases.TestCase, emit func(y, xMin int, coverage []float32)) {
	r.CTM = tc.Transform()

	switch op := tc.Op.(type) {
	case testcases.Fill:
		if op.Rule == testcases.EvenOdd {
			r.FillEvenOdd(tc.Path, emit)
		} else {
			r.FillNonZero(tc.Path, emit)
		}
	case testcases.Stroke:
		r.Width = op.Width
		r.Cap = op.Cap
		r.Join = op.Join
		r.MiterLimit = op.MiterLimit
		r.Dash = op.Dash
		r.DashPhase = op.DashPhase
		r.Stroke(tc.Path, emit)
	}
}

// Command export writes the test case table to testdata/testcases.json,
// grouped by category, so that other rasterisers can be checked against
// the same inputs. Run it from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/raster/testcases"
)

type exportedCase struct {
	Name   string    `json:"name"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Clip   []float64 `json:"clip"` // LLx, LLy, URx, URy in device space
	CTM    []float64 `json:"ctm"`
	Path   []command `json:"path"`
	Fill   *fillOp   `json:"fill,omitempty"`
	Stroke *strokeOp `json:"stroke,omitempty"`
}

type fillOp struct {
	Rule string `json:"rule"`
}

type strokeOp struct {
	Width      float64   `json:"width"`
	Cap        string    `json:"cap"`
	Join       string    `json:"join"`
	MiterLimit float64   `json:"miter_limit"`
	Dash       []float64 `json:"dash,omitempty"`
	DashPhase  float64   `json:"dash_phase,omitempty"`
}

// command is one path command with its points flattened to x, y pairs.
type command struct {
	Op     string    `json:"op"`
	Coords []float64 `json:"coords,omitempty"`
}

var opNames = map[path.Command]string{
	path.CmdMoveTo: "M",
	path.CmdLineTo: "L",
	path.CmdQuadTo: "Q",
	path.CmdCubeTo: "C",
	path.CmdClose:  "Z",
}

func main() {
	out := make(map[string][]exportedCase, len(testcases.All))
	for category, cases := range testcases.All {
		for _, tc := range cases {
			out[category] = append(out[category], export(tc))
		}
	}

	if err := write("testdata/testcases.json", out); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

// write encodes v as indented JSON. Map keys come out sorted.
func write(fname string, v any) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", fname, err)
	}
	return f.Close()
}

func export(tc testcases.TestCase) exportedCase {
	c := tc.ClipRect()
	ctm := tc.Transform()
	ec := exportedCase{
		Name:   tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Clip:   []float64{c.LLx, c.LLy, c.URx, c.URy},
		CTM:    ctm[:],
	}
	for cmd, pts := range tc.Path.Iter() {
		pc := command{Op: opNames[cmd]}
		for _, pt := range pts {
			pc.Coords = append(pc.Coords, pt.X, pt.Y)
		}
		ec.Path = append(ec.Path, pc)
	}

	switch op := tc.Op.(type) {
	case testcases.Fill:
		rule := "nonzero"
		if op.Rule == testcases.EvenOdd {
			rule = "evenodd"
		}
		ec.Fill = &fillOp{Rule: rule}
	case testcases.Stroke:
		ec.Stroke = &strokeOp{
			Width:      op.Width,
			Cap:        op.Cap.String(),
			Join:       op.Join.String(),
			MiterLimit: op.MiterLimit,
			Dash:       op.Dash,
			DashPhase:  op.DashPhase,
		}
	}
	return ec
}

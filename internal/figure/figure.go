// Package figure draws pressure distributions and lift curves.
package figure

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"tunnelcli/internal/dataprocessing"
	"tunnelcli/internal/reduction"
)

// Figure size
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

// Formats accepted by Render
var Formats = []string{"png", "svg", "pdf"}

// CpFigure plots Cp against x/c for both surfaces. The Cp axis is inverted
// so suction peaks point up.
func CpFigure(res *reduction.Result, chord float64) (*plot.Plot, error) {
	if chord <= 0 {
		return nil, fmt.Errorf("chord must be positive, got %v", chord)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("NACA 0018 Pressure Coefficient, AoA = %g°, Re = %.0f",
		res.AoA, math.Round(res.Corrected.Reynolds))
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "Cp"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(dashedGrid())

	if err := plotutil.AddLinePoints(p,
		"Upper", surfaceXYs(res.Partition.Upper, chord),
		"Lower", surfaceXYs(res.Partition.Lower, chord),
	); err != nil {
		return nil, fmt.Errorf("plotting failed: %w", err)
	}
	p.Legend.Top = true
	return p, nil
}

// LiftCurveFigure plots c_l against AoA with the least-squares fit
func LiftCurveFigure(curve dataprocessing.LiftCurve) (*plot.Plot, error) {
	if len(curve.Points) == 0 {
		return nil, fmt.Errorf("lift curve has no points")
	}

	p := plot.New()
	p.Title.Text = "NACA 0018 Lift Curve"
	p.X.Label.Text = "AoA (deg)"
	p.Y.Label.Text = "c_l"
	p.Add(dashedGrid())

	pts := make(plotter.XYs, len(curve.Points))
	for i, pt := range curve.Points {
		pts[i].X, pts[i].Y = pt.AoA, pt.Lift
	}
	if err := plotutil.AddLinePoints(p, "Measured", pts); err != nil {
		return nil, fmt.Errorf("plotting failed: %w", err)
	}

	if curve.HasFit {
		fit := plotter.NewFunction(func(a float64) float64 {
			return curve.Intercept + curve.Slope*a
		})
		fit.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
		fit.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(fit)
		p.Legend.Add(fmt.Sprintf("fit %.3f/rad", curve.SlopePerRad), fit)
	}
	p.Legend.Top = true
	return p, nil
}

// Render encodes p in format ("png", "svg" or "pdf")
func Render(p *plot.Plot, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if !validFormat(format) {
		return nil, fmt.Errorf("unsupported plot format %q", format)
	}
	w, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s canvas: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func surfaceXYs(s reduction.Surface, chord float64) plotter.XYs {
	pts := make(plotter.XYs, len(s))
	for i, pt := range s {
		pts[i].X = pt.X / chord
		pts[i].Y = pt.Cp
	}
	return pts
}

func dashedGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	g.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	return g
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

package report

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/analysis"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/figure"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/interpolate"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/palette"
)

// DefaultSamples is the number of points drawn per smooth curve.
const DefaultSamples = 200

// stepStyle returns the line step style that draws kind exactly from its
// samples, and whether one exists.
func stepStyle(kind interpolate.Kind) (plotter.StepKind, bool) {
	switch kind {
	case interpolate.Zero, interpolate.Previous:
		return plotter.PostStep, true
	case interpolate.Next:
		return plotter.PreStep, true
	}
	return plotter.NoStep, false
}

// CreateCurvePanel plots the survival curves of one panel, one line per arm,
// colored by trial arm.
func CreateCurvePanel(curves []analysis.ArmCurve, title string, kind interpolate.Kind, samples int) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("no curves to plot")
	}
	if samples < 2 {
		samples = DefaultSamples
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Survival"
	p.Y.Min = 0
	p.Y.Max = 1.05
	p.Legend.Top = true
	p.Legend.Left = false

	step, isStep := stepStyle(kind)
	for _, c := range curves {
		f, err := interpolate.New(c.Times, c.Survival, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "arm %q", c.Arm)
		}

		var pts plotter.XYs
		if isStep {
			pts = make(plotter.XYs, len(c.Times))
			for i, t := range c.Times {
				pts[i] = plotter.XY{X: t, Y: f(t)}
			}
		} else {
			grid := floats.Span(make([]float64, samples), c.Times[0], c.Times[len(c.Times)-1])
			pts = make(plotter.XYs, len(grid))
			for i, t := range grid {
				pts[i] = plotter.XY{X: t, Y: f(t)}
			}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create line for %s", c.Arm)
		}
		line.StepStyle = step
		line.Color = palette.Lookup(c.Arm)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Arm, line)
	}
	return p, nil
}

// RenderCurveGrid lays out panels row by row, at most maxCols per row, on a
// figure sized by figure.SetFigsize.
func RenderCurveGrid(panels []*plot.Plot, scale float64, maxCols int, format string) ([]byte, figure.Size, error) {
	rows, cols := figure.GridShape(len(panels), maxCols)
	if rows == 0 {
		return nil, figure.Size{}, fmt.Errorf("no panels to render")
	}
	grid := make([][]*plot.Plot, rows)
	for i, p := range panels {
		grid[i/cols] = append(grid[i/cols], p)
	}

	layout := figure.Layout{Scale: scale, Rows: rows, Cols: cols}
	img, err := layout.Render(grid, format)
	if err != nil {
		return nil, figure.Size{}, err
	}
	return img, layout.Size(), nil
}

package figure

import (
	"bytes"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Layout is a subplot grid whose outer size is given by SetFigsize.
type Layout struct {
	Scale      float64
	Rows, Cols int
	Options    []Option
}

// Size returns the figure size of the layout.
func (l Layout) Size() Size {
	return SetFigsize(l.Scale, l.Rows, l.Cols, l.Options...)
}

// Tiles returns the tiling used to place subplots. The outer margin is split
// evenly between opposite sides.
func (l Layout) Tiles() draw.Tiles {
	o := newOptions(l.Options)
	inch := func(v float64) vg.Length { return vg.Length(v) * vg.Inch }
	half := inch(excessScale * l.Scale / 2)
	return draw.Tiles{
		Rows:      l.Rows,
		Cols:      l.Cols,
		PadTop:    half,
		PadBottom: half,
		PadLeft:   half,
		PadRight:  half,
		PadX:      inch(o.spacingWidthScale * l.Scale),
		PadY:      inch(o.spacingHeightScale * l.Scale),
	}
}

// Render draws plots into the grid and encodes the figure in format
// ("png", "svg", "pdf", "eps", "jpg", "tif"). plots is indexed [row][col];
// nil entries leave their tile empty.
func (l Layout) Render(plots [][]*plot.Plot, format string) ([]byte, error) {
	if l.Rows <= 0 || l.Cols <= 0 {
		return nil, errors.Errorf("invalid grid %dx%d", l.Rows, l.Cols)
	}
	if l.Scale <= 0 {
		return nil, errors.Errorf("invalid scale %g", l.Scale)
	}
	if len(plots) > l.Rows {
		return nil, errors.Errorf("%d plot rows do not fit in %d grid rows", len(plots), l.Rows)
	}
	grid := make([][]*plot.Plot, l.Rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, l.Cols)
		if r >= len(plots) {
			continue
		}
		if len(plots[r]) > l.Cols {
			return nil, errors.Errorf("row %d has %d plots for %d grid columns", r, len(plots[r]), l.Cols)
		}
		copy(grid[r], plots[r])
	}

	w, h := l.Size().Lengths()
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s canvas", format)
	}
	dc := draw.New(c)
	canvases := plot.Align(grid, l.Tiles(), dc)
	for r := range grid {
		for col, p := range grid[r] {
			if p != nil {
				p.Draw(canvases[r][col])
			}
		}
	}

	buf := new(bytes.Buffer)
	if _, err := c.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "failed to write figure to buffer")
	}
	return buf.Bytes(), nil
}

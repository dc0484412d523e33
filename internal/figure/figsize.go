// Package figure sizes and lays out grids of subplots. All lengths are in
// inches times a caller-chosen scale.
package figure

import (
	"gonum.org/v1/plot/vg"
)

const (
	DefaultSpacingWidthScale  = 0.2
	DefaultSpacingHeightScale = 0.2

	subplotScale = 2   // each subplot is 2*scale wide and high
	excessScale  = 0.3 // total outer margin per dimension
)

// Size is a figure width and height in inches.
type Size struct {
	Width, Height float64
}

type options struct {
	spacingWidthScale, spacingHeightScale float64
}

// Option tweaks SetFigsize.
type Option func(*options)

// WithSpacing sets the gaps between subplots as a fraction of scale.
func WithSpacing(widthScale, heightScale float64) Option {
	return func(o *options) {
		o.spacingWidthScale = widthScale
		o.spacingHeightScale = heightScale
	}
}

func newOptions(opts []Option) options {
	o := options{
		spacingWidthScale:  DefaultSpacingWidthScale,
		spacingHeightScale: DefaultSpacingHeightScale,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SetFigsize returns the size of a figure holding rows x cols subplots.
// rows and cols are not validated.
func SetFigsize(scale float64, rows, cols int, opts ...Option) Size {
	o := newOptions(opts)

	subplotAbsWidth := subplotScale * scale // both the width and height of each subplot
	subplotAbsSpacingWidth := o.spacingWidthScale * scale
	subplotAbsSpacingHeight := o.spacingHeightScale * scale
	subplotAbsExcessWidth := excessScale * scale
	subplotAbsExcessHeight := excessScale * scale

	figWidth := float64(cols)*subplotAbsWidth + float64(cols-1)*subplotAbsSpacingWidth + subplotAbsExcessWidth
	figHeight := float64(rows)*subplotAbsWidth + float64(rows-1)*subplotAbsSpacingHeight + subplotAbsExcessHeight
	return Size{Width: figWidth, Height: figHeight}
}

// Lengths converts the size to plot lengths.
func (s Size) Lengths() (w, h vg.Length) {
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

// GridShape returns the rows and columns needed for n subplots with at most
// maxCols per row.
func GridShape(n, maxCols int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = maxCols
	if cols <= 0 || cols > n {
		cols = n
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}

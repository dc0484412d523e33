// Package interpolate builds one-dimensional interpolation functions over
// table columns. Every function extrapolates instead of failing outside the
// sampled range.
package interpolate

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/dataset"
)

const (
	// DefaultX is the column used as x values.
	DefaultX = "Time"
	// DefaultY is the column used as y values.
	DefaultY = "Survival"
	// DefaultKind is the zero-order hold.
	DefaultKind = Zero
)

var (
	// ErrTooFewPoints is returned when a kind gets fewer samples than it needs.
	ErrTooFewPoints = errors.New("interpolate: too few points")
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("interpolate: x and y have different lengths")
	// ErrNotIncreasing is returned for unsorted or duplicated x values.
	ErrNotIncreasing = errors.New("interpolate: x values must be strictly increasing")
	// ErrNaN is returned when an x value is NaN.
	ErrNaN = errors.New("interpolate: x values contain NaN")
)

// Func maps an x value to an interpolated y value.
type Func func(x float64) float64

// fitPredictor is satisfied by the gonum interpolators.
type fitPredictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// Interpolate builds an interpolation function over columns x and y of t.
// Rows are used in table order; nothing is sorted.
func Interpolate(t *dataset.Table, x, y string, kind Kind) (Func, error) {
	xs, err := t.Float64s(x)
	if err != nil {
		return nil, err
	}
	ys, err := t.Float64s(y)
	if err != nil {
		return nil, err
	}
	return New(xs, ys, kind)
}

// New builds an interpolation function over the given samples.
// The samples are copied; later changes to xs or ys do not affect the result.
func New(xs, ys []float64, kind Kind) (Func, error) {
	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d != %d", len(xs), len(ys))
	}
	if need := kind.MinPoints(); len(xs) < need {
		return nil, errors.Wrapf(ErrTooFewPoints, "%s needs %d, got %d", kind, need, len(xs))
	}
	if floats.HasNaN(xs) {
		return nil, ErrNaN
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, errors.Wrapf(ErrNotIncreasing, "x[%d]=%g after x[%d]=%g", i, xs[i], i-1, xs[i-1])
		}
	}
	xs = append([]float64(nil), xs...)
	ys = append([]float64(nil), ys...)

	switch kind {
	case Zero, Previous:
		return previous(xs, ys), nil
	case Nearest:
		return nearest(xs, ys), nil
	case Next:
		return fit(&interp.PiecewiseConstant{}, xs, ys, kind)
	case Linear:
		return linear(xs, ys)
	case Cubic:
		return fit(&interp.NotAKnotCubic{}, xs, ys, kind)
	case Akima:
		return fit(&interp.AkimaSpline{}, xs, ys, kind)
	case Monotone:
		return fit(&interp.FritschButland{}, xs, ys, kind)
	}
	return nil, errors.Errorf("interpolate: unsupported kind %d", int(kind))
}

func fit(fp fitPredictor, xs, ys []float64, kind Kind) (Func, error) {
	if err := fp.Fit(xs, ys); err != nil {
		return nil, errors.Wrapf(err, "fitting %s interpolator", kind)
	}
	return fp.Predict, nil
}

// previous holds ys[i] on [xs[i], xs[i+1]) and the boundary values outside.
func previous(xs, ys []float64) Func {
	n := len(xs)
	return func(x float64) float64 {
		i := sort.SearchFloat64s(xs, x)
		if i < n && xs[i] == x {
			return ys[i]
		}
		if i == 0 {
			return ys[0]
		}
		return ys[i-1]
	}
}

func nearest(xs, ys []float64) Func {
	n := len(xs)
	return func(x float64) float64 {
		i := sort.SearchFloat64s(xs, x)
		switch {
		case i == 0:
			return ys[0]
		case i == n:
			return ys[n-1]
		case xs[i] == x:
			return ys[i]
		}
		if x-xs[i-1] <= xs[i]-x {
			return ys[i-1]
		}
		return ys[i]
	}
}

// linear extends the first and last segments beyond the sampled range.
func linear(xs, ys []float64) (Func, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, errors.Wrap(err, "fitting linear interpolator")
	}
	n := len(xs)
	first := (ys[1] - ys[0]) / (xs[1] - xs[0])
	last := (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
	return func(x float64) float64 {
		switch {
		case x < xs[0]:
			return ys[0] + (x-xs[0])*first
		case x > xs[n-1]:
			return ys[n-1] + (x-xs[n-1])*last
		}
		return pl.Predict(x)
	}, nil
}

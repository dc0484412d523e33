package interpolate

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/dataset"
)

func TestStepRoundTripAndExtrapolation(t *testing.T) {
	f, err := New([]float64{0, 1}, []float64{1, 0}, Zero)
	require.NoError(t, err)

	assert.Equal(t, 1.0, f(0))
	assert.Equal(t, 0.0, f(1))
	assert.Equal(t, 1.0, f(0.5))
	assert.Equal(t, 1.0, f(-1))
	assert.Equal(t, 0.0, f(2))
}

func TestKindsAtSamplePoints(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4, 6}
	ys := []float64{1, 0.9, 0.6, 0.45, 0.2}

	for _, name := range Kinds() {
		t.Run(name, func(t *testing.T) {
			kind, err := ParseKind(name)
			require.NoError(t, err)
			f, err := New(xs, ys, kind)
			require.NoError(t, err)
			for i, x := range xs {
				assert.InDelta(t, ys[i], f(x), 1e-12, "x=%g", x)
			}
			for _, x := range []float64{-10, -0.1, 6.1, 100} {
				assert.False(t, math.IsNaN(f(x)), "x=%g", x)
			}
		})
	}
}

func TestKindsAtSmallSizes(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4}
	ys := []float64{1, 0.8, 0.5, 0.3}

	for _, name := range Kinds() {
		kind, err := ParseKind(name)
		require.NoError(t, err)
		for n := 1; n <= len(xs); n++ {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				var (
					f   Func
					err error
				)
				require.NotPanics(t, func() { f, err = New(xs[:n], ys[:n], kind) })
				if n < kind.MinPoints() {
					assert.Equal(t, ErrTooFewPoints, errors.Cause(err))
					return
				}
				require.NoError(t, err)
				for i := 0; i < n; i++ {
					assert.InDelta(t, ys[i], f(xs[i]), 1e-12, "x=%g", xs[i])
				}
				require.NotPanics(t, func() { f(-1); f(10) })
			})
		}
	}
}

func TestCubicNeedsFourPoints(t *testing.T) {
	_, err := New([]float64{0, 1}, []float64{1, 0.5}, Cubic)
	assert.Equal(t, ErrTooFewPoints, errors.Cause(err))

	_, err = New([]float64{0, 1, 2}, []float64{1, 0.5, 0.2}, Cubic)
	assert.Equal(t, ErrTooFewPoints, errors.Cause(err))

	assert.Equal(t, 4, Cubic.MinPoints())
	assert.Equal(t, 2, Zero.MinPoints())
}

func TestBetweenSamples(t *testing.T) {
	xs := []float64{0, 2, 4}
	ys := []float64{1, 0.5, 0.25}

	cases := []struct {
		kind Kind
		x    float64
		want float64
	}{
		{Zero, 1.9, 1},
		{Previous, 3, 0.5},
		{Next, 0.1, 0.5},
		{Next, 2.5, 0.25},
		{Nearest, 1, 1},
		{Nearest, 1.1, 0.5},
		{Nearest, 3.5, 0.25},
		{Linear, 1, 0.75},
		{Linear, 3, 0.375},
		{Linear, -2, 1.5},
		{Linear, 6, 0},
		{Next, -1, 1},
		{Next, 9, 0.25},
		{Nearest, -5, 1},
		{Nearest, 5, 0.25},
	}
	for _, c := range cases {
		f, err := New(xs, ys, c.kind)
		require.NoError(t, err)
		assert.InDelta(t, c.want, f(c.x), 1e-12, "%s at %g", c.kind, c.x)
	}
}

func TestConstructionErrors(t *testing.T) {
	_, err := New([]float64{0}, []float64{1}, Zero)
	assert.Equal(t, ErrTooFewPoints, errors.Cause(err))

	_, err = New(nil, nil, Linear)
	assert.Equal(t, ErrTooFewPoints, errors.Cause(err))

	_, err = New([]float64{0, 1}, []float64{1}, Zero)
	assert.Equal(t, ErrLengthMismatch, errors.Cause(err))

	_, err = New([]float64{0, 0}, []float64{1, 0}, Zero)
	assert.Equal(t, ErrNotIncreasing, errors.Cause(err))

	_, err = New([]float64{1, 0, 2}, []float64{1, 0, 2}, Linear)
	assert.Equal(t, ErrNotIncreasing, errors.Cause(err))

	_, err = New([]float64{0, math.NaN()}, []float64{1, 0}, Zero)
	assert.Equal(t, ErrNaN, errors.Cause(err))

	_, err = New([]float64{0, 1}, []float64{1, 0}, Kind(99))
	assert.Error(t, err)
}

func TestInputsAreCopied(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{1, 0}
	f, err := New(xs, ys, Zero)
	require.NoError(t, err)
	ys[0] = 42
	assert.Equal(t, 1.0, f(0))
}

func TestInterpolateTable(t *testing.T) {
	table, err := dataset.ParseCSV(strings.NewReader("Time,Survival,Arm\n0,1,combo\n3,0.7,combo\n5,0.4,combo\n"))
	require.NoError(t, err)

	f, err := Interpolate(table, DefaultX, DefaultY, DefaultKind)
	require.NoError(t, err)
	assert.Equal(t, 0.7, f(4))
	assert.Equal(t, 0.4, f(50))

	_, err = Interpolate(table, "Months", DefaultY, DefaultKind)
	assert.Equal(t, dataset.ErrColumnNotFound, errors.Cause(err))

	_, err = Interpolate(table, DefaultX, "Arm", DefaultKind)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, Linear, k)
	assert.Equal(t, "linear", k.String())

	_, err = ParseKind("quintic")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Kind(-1).String())
}

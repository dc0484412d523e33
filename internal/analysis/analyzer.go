package analysis

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/dataset"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/interpolate"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/palette"
)

const (
	DefaultArmColumn = "Arm"
	medianSurvival   = 0.5
)

// SplitArms groups the Time/Survival rows of t by the value of armColumn, in
// order of first appearance. Without armColumn the whole table is one combo arm.
func SplitArms(t *dataset.Table, armColumn string) ([]ArmCurve, error) {
	if t == nil || t.Len() == 0 {
		return nil, errors.New("table is nil or empty, cannot split arms")
	}
	if !t.HasColumn(armColumn) {
		curve, err := armCurve(palette.Combo, t)
		if err != nil {
			return nil, err
		}
		return []ArmCurve{curve}, nil
	}

	_, order, err := dataset.CountBy(t, armColumn)
	if err != nil {
		return nil, err
	}
	curves := make([]ArmCurve, 0, len(order))
	for _, arm := range order {
		sub := t.Filter(func(r dataset.Row) bool { return r.Get(armColumn) == arm })
		curve, err := armCurve(arm, sub)
		if err != nil {
			return nil, err
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

func armCurve(arm string, t *dataset.Table) (ArmCurve, error) {
	times, err := t.Float64s(interpolate.DefaultX)
	if err != nil {
		return ArmCurve{}, errors.Wrapf(err, "arm %q", arm)
	}
	survival, err := t.Float64s(interpolate.DefaultY)
	if err != nil {
		return ArmCurve{}, errors.Wrapf(err, "arm %q", arm)
	}
	return ArmCurve{Arm: arm, Times: times, Survival: survival}, nil
}

// medianTime returns the first sample time at which survival is at or below
// one half.
func medianTime(c ArmCurve) float64 {
	for i, s := range c.Survival {
		if s <= medianSurvival {
			return c.Times[i]
		}
	}
	return math.NaN()
}

// SummarizeCurves computes per-arm statistics. Arms whose interpolator cannot
// be built are skipped and reported in AnalysisErrors.
func SummarizeCurves(curves []ArmCurve, kind interpolate.Kind, landmarks []float64) (*Results, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("no curves, cannot analyze")
	}

	results := NewResults()
	for _, c := range curves {
		f, err := interpolate.New(c.Times, c.Survival, kind)
		if err != nil {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Skipping arm '%s': %v", c.Arm, err))
			continue
		}

		summary := ArmSummary{
			Arm:        c.Arm,
			NumPoints:  len(c.Times),
			MaxTime:    floats.Max(c.Times),
			MedianTime: medianTime(c),
			Landmarks:  make([]LandmarkSurvival, 0, len(landmarks)),
		}
		for _, lt := range landmarks {
			summary.Landmarks = append(summary.Landmarks, LandmarkSurvival{Time: lt, Survival: f(lt)})
		}
		results.Summaries = append(results.Summaries, summary)
	}

	if len(results.Summaries) == 0 {
		results.AnalysisErrors = append(results.AnalysisErrors, "Analysis completed but produced no arm summaries.")
	}
	return results, nil
}

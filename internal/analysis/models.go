package analysis

// ArmCurve holds the survival samples of one trial arm in table order.
type ArmCurve struct {
	Arm      string
	Times    []float64
	Survival []float64
}

// LandmarkSurvival is the interpolated survival at a fixed time.
type LandmarkSurvival struct {
	Time     float64
	Survival float64
}

// ArmSummary holds the calculated statistics for a single arm.
type ArmSummary struct {
	Arm        string
	NumPoints  int
	MaxTime    float64 // last observed time
	MedianTime float64 // first time survival reaches 0.5, NaN if it never does
	Landmarks  []LandmarkSurvival
}

// Results holds all results from the analysis.
type Results struct {
	Summaries      []ArmSummary
	AnalysisErrors []string
}

func NewResults() *Results {
	return &Results{
		Summaries:      make([]ArmSummary, 0),
		AnalysisErrors: make([]string, 0),
	}
}

package interpolate

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind selects the interpolation method.
type Kind int

const (
	// Zero is a zero-order hold: the last known value is kept until the next sample.
	Zero Kind = iota
	// Previous is the same hold as Zero.
	Previous
	// Next takes the value of the next sample.
	Next
	// Nearest takes the value of the closest sample, ties going to the lower x.
	Nearest
	// Linear joins samples with straight lines.
	Linear
	// Cubic is a not-a-knot cubic spline.
	Cubic
	// Akima is an Akima spline.
	Akima
	// Monotone is a Fritsch-Butland monotone cubic.
	Monotone
)

var kindNames = []string{
	Zero:     "zero",
	Previous: "previous",
	Next:     "next",
	Nearest:  "nearest",
	Linear:   "linear",
	Cubic:    "cubic",
	Akima:    "akima",
	Monotone: "monotone",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MinPoints returns the number of samples needed to build kind. The
// not-a-knot cubic needs four; every other kind needs two.
func (k Kind) MinPoints() int {
	if k == Cubic {
		return 4
	}
	return 2
}

// Kinds lists every supported kind name.
func Kinds() []string {
	out := make([]string, len(kindNames))
	copy(out, kindNames)
	return out
}

// ParseKind converts a kind name to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown interpolation kind %q (want one of %s)", name, strings.Join(kindNames, ", "))
}

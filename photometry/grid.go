package photometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultOffsetMin    = -2.0
	DefaultOffsetMax    = 2.0
	DefaultOffsetPoints = 1500
)

// OffsetGrid is the set of candidate offsets tried for each merge: Points
// values evenly spaced over [Min, Max], both ends included.
type OffsetGrid struct {
	Min    float64
	Max    float64
	Points int
}

// DefaultOffsetGrid spans ±2 magnitudes with 1500 candidates.
func DefaultOffsetGrid() OffsetGrid {
	return OffsetGrid{Min: DefaultOffsetMin, Max: DefaultOffsetMax, Points: DefaultOffsetPoints}
}

func (g OffsetGrid) Validate() error {
	if math.IsNaN(g.Min) || math.IsInf(g.Min, 0) || math.IsNaN(g.Max) || math.IsInf(g.Max, 0) {
		return fmt.Errorf("%w: bounds [%v, %v] must be finite", ErrInvalidGrid, g.Min, g.Max)
	}
	if g.Min >= g.Max {
		return fmt.Errorf("%w: minimum %v must be below maximum %v", ErrInvalidGrid, g.Min, g.Max)
	}
	if g.Points < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidGrid, g.Points)
	}
	return nil
}

// Values returns the candidate offsets in ascending order. The grid must be
// valid.
func (g OffsetGrid) Values() []float64 {
	out := floats.Span(make([]float64, g.Points), g.Min, g.Max)

	// Keep rounding from pushing a candidate outside the interval.
	for i, v := range out {
		out[i] = math.Min(math.Max(v, g.Min), g.Max)
	}
	out[0], out[len(out)-1] = g.Min, g.Max

	return out
}

// Resolution is the spacing between neighbouring candidates.
func (g OffsetGrid) Resolution() float64 {
	return (g.Max - g.Min) / float64(g.Points-1)
}

func (g OffsetGrid) String() string {
	return fmt.Sprintf("[%g, %g] in %d steps of %.4g", g.Min, g.Max, g.Points, g.Resolution())
}

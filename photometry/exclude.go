package photometry

import (
	"math"
	"sort"
)

// DefaultExclusionTolerance is how close, in days, an observation must be to
// an excluded JD to be removed.
const DefaultExclusionTolerance = 0.001

// RemovePoints returns a new slice holding the observations whose JD is not
// within tolerance (inclusive) of any of the target JDs. Neither input is
// modified.
func RemovePoints(obs []Observation, targets []float64, tolerance float64) []Observation {
	if len(targets) == 0 {
		out := make([]Observation, len(obs))
		copy(out, obs)
		return out
	}

	sorted := make([]float64, len(targets))
	copy(sorted, targets)
	sort.Float64s(sorted)

	excluded := func(jd float64) bool {
		// The nearest targets on either side of jd are the only candidates.
		i := sort.SearchFloat64s(sorted, jd)
		if i < len(sorted) && math.Abs(sorted[i]-jd) <= tolerance {
			return true
		}
		if i > 0 && math.Abs(sorted[i-1]-jd) <= tolerance {
			return true
		}
		return false
	}

	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if excluded(o.JD) {
			continue
		}
		out = append(out, o)
	}

	return out
}

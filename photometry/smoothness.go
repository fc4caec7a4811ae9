package photometry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Smoothness scores a time-ordered magnitude sequence as sigma²/delta², where
// sigma² is the Bessel-corrected sample variance and delta² is the mean
// squared successive difference, both over N-1. Larger is smoother: the
// overall spread is large relative to the point-to-point jitter.
//
// The score is meaningless unless m is sorted by time.
//
// A sequence with no successive differences at all (delta² == 0, i.e. every
// value identical) scores +Inf. It is treated as perfectly smooth rather than
// producing NaN.
func Smoothness(m []float64) (float64, error) {
	n := len(m)
	if n < 2 {
		return 0, ErrTooFewPoints
	}

	sigmaSq := stat.Variance(m, nil)

	deltaSq := 0.0
	for j := 0; j < n-1; j++ {
		d := m[j+1] - m[j]
		deltaSq += d * d
	}
	deltaSq /= float64(n - 1)

	if deltaSq == 0 {
		return math.Inf(1), nil
	}

	return sigmaSq / deltaSq, nil
}

package photometry

import (
	"fmt"

	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
)

// GroupSummary describes one observer's contribution before any offset is
// applied.
type GroupSummary struct {
	Observer        string
	Observations    int
	FirstJD         float64
	LastJD          float64
	MeanMagnitude   float64
	MedianMagnitude float64
	StdDev          float64 // sample standard deviation of the magnitudes
	MAD             float64 // median absolute deviation of the magnitudes

	// PointToPointScatter is the standard deviation of the successive
	// magnitude differences in JD order. Zero with fewer than 3 points.
	PointToPointScatter float64
}

// Summarize computes a GroupSummary. Groups with no observations yield a
// summary holding only the observer code.
func Summarize(g ObserverGroup) GroupSummary {
	out := GroupSummary{Observer: g.Observer, Observations: g.Len()}
	if g.Len() == 0 {
		return out
	}

	s := SeriesFromGroup(g)
	out.FirstJD = s.JD[0]
	out.LastJD = s.JD[s.Len()-1]

	mags := stats.Float64Data(s.Magnitude)

	// Errors from stats are only possible on empty input, ruled out above.
	out.MeanMagnitude, _ = stats.Mean(mags)
	out.MedianMagnitude, _ = stats.Median(mags)
	out.MAD, _ = stats.MedianAbsoluteDeviation(mags)
	if len(mags) > 1 {
		out.StdDev, _ = stats.StandardDeviationSample(mags)
	}

	if s.Len() > 2 {
		steps := runningvariance.NewRunningStat()
		for i := 1; i < s.Len(); i++ {
			steps.Push(s.Magnitude[i] - s.Magnitude[i-1])
		}
		out.PointToPointScatter = steps.StandardDeviation()
	}

	return out
}

func (g GroupSummary) String() string {
	return fmt.Sprintf("%s: n=%d JD %.4f-%.4f mean=%.3f median=%.3f sd=%.3f mad=%.3f p2p=%.3f",
		g.Observer, g.Observations, g.FirstJD, g.LastJD, g.MeanMagnitude, g.MedianMagnitude, g.StdDev, g.MAD, g.PointToPointScatter)
}

package photometry

import (
	"fmt"
	"sort"
)

// RawRecord is one row of an observation table, before any cleaning.
// Magnitude is kept as text because non-detections carry a "<" prefix.
type RawRecord struct {
	JD           float64
	Magnitude    string
	Uncertainty  float64
	Band         string
	ObserverCode string
}

// Observation is a cleaned brightness measurement. Magnitude is always finite.
type Observation struct {
	JD          float64
	Magnitude   float64
	Uncertainty float64
	Observer    string
}

// ObserverGroup holds every observation contributed by one observer. The
// observations are not necessarily in JD order.
type ObserverGroup struct {
	Observer     string
	Observations []Observation
}

func (g ObserverGroup) Len() int {
	return len(g.Observations)
}

// OffsetLogEntry records the offset chosen for one group. The first (reference)
// group always has an offset of exactly 0.
type OffsetLogEntry struct {
	Observer     string
	Observations int
	Offset       float64
}

// Series is a light curve stored as parallel columns. Once produced by the
// optimizer or merger, the columns are jointly sorted by ascending JD.
type Series struct {
	Observers   []string
	JD          []float64
	Magnitude   []float64
	Uncertainty []float64
}

func (s Series) Len() int {
	return len(s.JD)
}

func (s Series) validate() error {
	n := len(s.JD)
	if len(s.Observers) != n || len(s.Magnitude) != n || len(s.Uncertainty) != n {
		return fmt.Errorf("%w: %d observers, %d JDs, %d magnitudes, %d uncertainties", ErrRaggedSeries, len(s.Observers), n, len(s.Magnitude), len(s.Uncertainty))
	}
	if n == 0 {
		return ErrEmptySeries
	}
	return nil
}

// IsTimeOrdered reports whether the JD column is non-decreasing.
func (s Series) IsTimeOrdered() bool {
	return sort.Float64sAreSorted(s.JD)
}

// Observations converts the series back into one Observation per point.
func (s Series) Observations() []Observation {
	out := make([]Observation, 0, s.Len())
	for i := range s.JD {
		out = append(out, Observation{
			JD:          s.JD[i],
			Magnitude:   s.Magnitude[i],
			Uncertainty: s.Uncertainty[i],
			Observer:    s.Observers[i],
		})
	}
	return out
}

// SeriesFromGroup converts a group into a series sorted by JD. Observations
// sharing a JD keep their original relative order.
func SeriesFromGroup(g ObserverGroup) Series {
	obs := make([]Observation, len(g.Observations))
	copy(obs, g.Observations)
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].JD < obs[j].JD })

	return seriesFromObservations(obs)
}

func seriesFromObservations(obs []Observation) Series {
	s := Series{
		Observers:   make([]string, 0, len(obs)),
		JD:          make([]float64, 0, len(obs)),
		Magnitude:   make([]float64, 0, len(obs)),
		Uncertainty: make([]float64, 0, len(obs)),
	}
	for _, o := range obs {
		s.Observers = append(s.Observers, o.Observer)
		s.JD = append(s.JD, o.JD)
		s.Magnitude = append(s.Magnitude, o.Magnitude)
		s.Uncertainty = append(s.Uncertainty, o.Uncertainty)
	}
	return s
}

package photometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NonDetectionMarker prefixes magnitudes that are upper limits ("fainter
// than") rather than measurements.
const NonDetectionMarker = '<'

// IsNonDetection reports whether a raw magnitude is an upper limit.
func IsNonDetection(magnitude string) bool {
	m := strings.TrimSpace(magnitude)
	return len(m) > 0 && m[0] == NonDetectionMarker
}

// ParseMagnitude parses a measured magnitude. Non-finite values are rejected
// along with anything strconv cannot read.
func ParseMagnitude(magnitude string) (float64, error) {
	mag, err := strconv.ParseFloat(strings.TrimSpace(magnitude), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		return 0, fmt.Errorf("magnitude %v is not finite", mag)
	}
	return mag, nil
}

// Clean drops non-detections and records outside band, and parses the
// remaining magnitudes. The output preserves the input order.
//
// Every magnitude that is not a non-detection is parsed, whatever its band, so
// a single corrupt value anywhere in the input aborts the run.
func Clean(records []RawRecord, band string) ([]Observation, error) {
	out := make([]Observation, 0, len(records))

	for i, rec := range records {
		if IsNonDetection(rec.Magnitude) {
			continue
		}

		mag, err := ParseMagnitude(rec.Magnitude)
		if err != nil {
			return nil, &MagnitudeError{Row: i, Observer: rec.ObserverCode, Value: rec.Magnitude, Err: err}
		}

		if rec.Band != band {
			continue
		}

		if math.IsNaN(rec.JD) || math.IsInf(rec.JD, 0) {
			return nil, fmt.Errorf("record %d (observer %q): JD %v is not finite", i, rec.ObserverCode, rec.JD)
		}

		out = append(out, Observation{
			JD:          rec.JD,
			Magnitude:   mag,
			Uncertainty: rec.Uncertainty,
			Observer:    rec.ObserverCode,
		})
	}

	return out, nil
}

// WithinJD keeps the observations with from <= JD <= until. A zero bound is
// open.
func WithinJD(obs []Observation, from, until float64) []Observation {
	if from == 0 && until == 0 {
		return obs
	}

	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if from != 0 && o.JD < from {
			continue
		}
		if until != 0 && o.JD > until {
			continue
		}
		out = append(out, o)
	}
	return out
}

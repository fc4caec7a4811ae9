package photometry

import "math"

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// variableStar is a slowly fading source with a small periodic wobble that
// every observer samples.
func variableStar(jd float64) float64 {
	return 0.05*(jd-100) + 0.02*math.Sin(1.7*jd)
}

func observe(observer string, jds []float64, zeroPoint float64) []Observation {
	out := make([]Observation, 0, len(jds))
	for _, jd := range jds {
		out = append(out, Observation{
			JD:          jd,
			Magnitude:   zeroPoint + variableStar(jd),
			Uncertainty: 0.01,
			Observer:    observer,
		})
	}
	return out
}

func toRaw(obs []Observation, band string) []RawRecord {
	out := make([]RawRecord, 0, len(obs))
	for _, o := range obs {
		out = append(out, RawRecord{
			JD:           o.JD,
			Magnitude:    formatMag(o.Magnitude),
			Uncertainty:  o.Uncertainty,
			Band:         band,
			ObserverCode: o.Observer,
		})
	}
	return out
}

func seriesOf(obs []Observation) Series {
	return SeriesFromGroup(ObserverGroup{Observations: obs})
}

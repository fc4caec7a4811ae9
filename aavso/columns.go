// Package aavso reads AAVSO-style observation tables into photometry records
// and writes composite light curves and offset logs back out.
package aavso

// Input column names. Other columns (Star Name, Comp Star 1, ...) are ignored.
const (
	ColJD           = "JD"
	ColMagnitude    = "Magnitude"
	ColUncertainty  = "Uncertainty"
	ColBand         = "Band"
	ColObserverCode = "Observer Code"
)

// Output column names.
const (
	ColObserver             = "Observer"
	ColNumberOfObservations = "Number of Observations"
	ColOffset               = "Offset"
)

// RequiredColumns lists the input columns every table must carry.
var RequiredColumns = []string{ColJD, ColMagnitude, ColUncertainty, ColBand, ColObserverCode}

type observationRow struct {
	JD           float64 `csv:"JD"`
	Magnitude    string  `csv:"Magnitude"`
	Uncertainty  string  `csv:"Uncertainty"`
	Band         string  `csv:"Band"`
	ObserverCode string  `csv:"Observer Code"`
}

type compositeRow struct {
	JD          float64 `csv:"JD"`
	Magnitude   float64 `csv:"Magnitude"`
	Uncertainty float64 `csv:"Uncertainty"`
	Observer    string  `csv:"Observer"`
}

type offsetRow struct {
	ObserverCode string  `csv:"Observer Code"`
	Observations int     `csv:"Number of Observations"`
	Offset       float64 `csv:"Offset"`
}

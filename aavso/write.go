package aavso

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/lightcurve/photometry"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteComposite writes one JD,Magnitude,Uncertainty,Observer row per point,
// in the order of s (ascending JD for a merged series).
func WriteComposite(w io.Writer, s photometry.Series) error {
	rows := make([]*compositeRow, 0, s.Len())
	for i := range s.JD {
		rows = append(rows, &compositeRow{
			JD:          s.JD[i],
			Magnitude:   s.Magnitude[i],
			Uncertainty: s.Uncertainty[i],
			Observer:    s.Observers[i],
		})
	}

	return marshal(w, &rows)
}

// WriteOffsetLog writes one Observer Code,Number of Observations,Offset row per
// merged group, in merge order.
func WriteOffsetLog(w io.Writer, entries []photometry.OffsetLogEntry) error {
	rows := make([]*offsetRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &offsetRow{
			ObserverCode: e.Observer,
			Observations: e.Observations,
			Offset:       e.Offset,
		})
	}

	return marshal(w, &rows)
}

func marshal(w io.Writer, rows interface{}) error {
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := gocsv.MarshalCSV(rows, cw); err != nil {
		return pfx.Err(err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

package aavso

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/lightcurve"
	"github.com/carbocation/lightcurve/photometry"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// MissingColumnsError reports required columns absent from a table header.
type MissingColumnsError struct {
	Missing []string
	Header  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s) %q; header was %q", e.Missing, e.Header)
}

// ReadFile opens path (local, gs://, http(s):// or "-" for stdin, optionally
// compressed) and reads its observation records.
func ReadFile(ctx context.Context, path string, client *storage.Client) ([]photometry.RawRecord, error) {
	rc, err := lightcurve.OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := ReadRecords(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords decodes a delimited observation table. The delimiter is sniffed
// from the leading lines.
func ReadRecords(r io.Reader) ([]photometry.RawRecord, error) {
	fileBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(bytes.TrimSpace(fileBytes)) == 0 {
		return nil, pfx.Err(fmt.Errorf("input is empty"))
	}

	delimiter := lightcurve.DetermineDelimiterBytes(fileBytes)

	header, err := newReader(bytes.NewReader(fileBytes), delimiter).Read()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	rows := []*observationRow{}
	if err := gocsv.UnmarshalCSV(newReader(bytes.NewReader(fileBytes), delimiter), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]photometry.RawRecord, 0, len(rows))
	for i, row := range rows {
		// AAVSO leaves the uncertainty blank for many visual estimates.
		uncertainty := 0.0
		if u := strings.TrimSpace(row.Uncertainty); u != "" {
			uncertainty, err = strconv.ParseFloat(u, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d (observer %q): malformed uncertainty %q: %w", i+1, row.ObserverCode, row.Uncertainty, err)
			}
		}

		out = append(out, photometry.RawRecord{
			JD:           row.JD,
			Magnitude:    row.Magnitude,
			Uncertainty:  uncertainty,
			Band:         strings.TrimSpace(row.Band),
			ObserverCode: strings.TrimSpace(row.ObserverCode),
		})
	}

	return out, nil
}

func newReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	return cr
}

func checkHeader(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}

	missing := make([]string, 0)
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing, Header: header}
	}
	return nil
}

// ReadJDList reads Julian Dates to exclude. It accepts either a bare list, one
// JD per line, or a delimited table with a JD column. Blank lines and lines
// starting with # are skipped.
func ReadJDList(r io.Reader) ([]float64, error) {
	fileBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	lines := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(fileBytes))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	// A bare list starts with a number; anything else is a header.
	if _, err := strconv.ParseFloat(lines[0], 64); err == nil {
		out := make([]float64, 0, len(lines))
		for i, line := range lines {
			jd, err := parseJD(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			out = append(out, jd)
		}
		return out, nil
	}

	delimiter := lightcurve.DetermineDelimiterBytes([]byte(strings.Join(lines, "\n")))
	entries, err := newReader(strings.NewReader(strings.Join(lines, "\n")), delimiter).ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	col := -1
	for i, name := range entries[0] {
		if strings.TrimSpace(name) == ColJD {
			col = i
		}
	}
	if col < 0 {
		return nil, &MissingColumnsError{Missing: []string{ColJD}, Header: entries[0]}
	}

	out := make([]float64, 0, len(entries)-1)
	for i, row := range entries[1:] {
		if col >= len(row) {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, col+1, len(row))
		}
		jd, err := parseJD(row[col])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, jd)
	}

	return out, nil
}

func parseJD(value string) (float64, error) {
	jd, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return 0, fmt.Errorf("JD %v is not finite", jd)
	}
	return jd, nil
}

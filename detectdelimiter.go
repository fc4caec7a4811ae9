package lightcurve

import (
	"bytes"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters are the separators a table may use. Anything else the detector
// proposes (decimal points, spaces inside "Observer Code") is ignored.
const Delimiters = ",\t;|"

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	b, err := io.ReadAll(r)
	if err != nil {
		return ','
	}
	return DetermineDelimiterBytes(b)
}

// DetermineDelimiterBytes sniffs the delimiter from the leading lines of an
// in-memory table. If the detector proposes nothing usable, the candidate
// appearing most often in the header wins, and ',' if none appears at all.
func DetermineDelimiterBytes(b []byte) rune {
	const sniffLines = 20

	end := len(b)
	lines := 0
	for i, c := range b {
		if c == '\n' {
			lines++
			if lines == sniffLines {
				end = i + 1
				break
			}
		}
	}

	d := detector.New()
	for _, candidate := range d.DetectDelimiter(bytes.NewReader(b[:end]), '"') {
		if len(candidate) > 0 && strings.ContainsRune(Delimiters, rune(candidate[0])) {
			return rune(candidate[0])
		}
	}

	header := string(b[:end])
	if nl := strings.IndexByte(header, '\n'); nl >= 0 {
		header = header[:nl]
	}

	best, bestCount := ',', 0
	for _, candidate := range Delimiters {
		if n := strings.Count(header, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}

	return best
}

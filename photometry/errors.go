package photometry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoObservations means nothing survived cleaning in the requested band.
	ErrNoObservations = errors.New("no observations in the requested band")

	// ErrNoGroups means no observer reached the minimum number of
	// observations, so there is nothing to merge.
	ErrNoGroups = errors.New("no observer groups to merge")

	ErrEmptySeries  = errors.New("series is empty")
	ErrRaggedSeries = errors.New("series columns have different lengths")
	ErrTooFewPoints = errors.New("smoothness needs at least 2 points")
	ErrInvalidGrid  = errors.New("invalid offset grid")
)

// MagnitudeError reports a magnitude that is neither a number nor a
// non-detection. It is always fatal: the input is corrupt.
type MagnitudeError struct {
	Row      int // zero-based index into the raw records
	Observer string
	Value    string
	Err      error
}

func (e *MagnitudeError) Error() string {
	return fmt.Sprintf("record %d (observer %q): malformed magnitude %q: %v", e.Row, e.Observer, e.Value, e.Err)
}

func (e *MagnitudeError) Unwrap() error {
	return e.Err
}

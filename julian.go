package lightcurve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// UnixEpochJD is the Julian Date of 1970-01-01T00:00:00Z.
const UnixEpochJD = 2440587.5

// TimeToJD converts t to a Julian Date.
func TimeToJD(t time.Time) float64 {
	return UnixEpochJD + float64(t.UnixNano())/float64(24*time.Hour)
}

// JDToTime converts a Julian Date to UTC time, to the nearest microsecond.
func JDToTime(jd float64) time.Time {
	us := math.Round((jd - UnixEpochJD) * float64(24*time.Hour/time.Microsecond))
	return time.Unix(0, 0).UTC().Add(time.Duration(us) * time.Microsecond)
}

// ParseJD accepts either a bare Julian Date ("2460000.5") or anything
// dateparse can read ("2024-06-17", "June 17 2024 03:00 UTC") and returns a
// Julian Date. Dates without a zone are taken as UTC. The empty string yields
// 0, which callers treat as "unbounded".
func ParseJD(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	if jd, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(jd) || math.IsInf(jd, 0) {
			return 0, fmt.Errorf("invalid julian date %q", value)
		}
		return jd, nil
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("could not interpret %q as a julian date or calendar date: %w", value, err)
	}

	return TimeToJD(t), nil
}

package photometry

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Params holds everything a run needs besides the records themselves.
type Params struct {
	Band            string
	MinObservations int
	Grid            OffsetGrid
	Workers         int

	// Optional JD window; zero bounds are open.
	From  float64
	Until float64

	// Exclude lists JDs whose observations are removed before grouping.
	Exclude          []float64
	ExcludeTolerance float64
}

// DefaultParams returns the standard parameters for band.
func DefaultParams(band string) Params {
	return Params{
		Band:             band,
		MinObservations:  DefaultMinObservations,
		Grid:             DefaultOffsetGrid(),
		ExcludeTolerance: DefaultExclusionTolerance,
	}
}

func (p Params) Validate() error {
	if p.Band == "" {
		return fmt.Errorf("a band is required")
	}
	if p.MinObservations < 1 {
		return fmt.Errorf("minimum observations per observer must be at least 1, got %d", p.MinObservations)
	}
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	if p.From != 0 && p.Until != 0 && p.From > p.Until {
		return fmt.Errorf("JD window is empty: from %v is after until %v", p.From, p.Until)
	}
	if p.ExcludeTolerance < 0 || math.IsNaN(p.ExcludeTolerance) {
		return fmt.Errorf("exclusion tolerance must be non-negative, got %v", p.ExcludeTolerance)
	}
	return nil
}

// Result is everything a run produces.
type Result struct {
	Composite Series
	Offsets   []OffsetLogEntry

	// Groups summarizes the merged groups in merge order.
	Groups []GroupSummary

	// Dropped lists observers with too few observations to be merged.
	Dropped []string
}

// Run cleans records, applies the JD window and exclusions, groups by
// observer and merges the groups into one composite light curve.
func Run(ctx context.Context, records []RawRecord, params Params, logger *log.Logger) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	obs, err := Clean(records, params.Band)
	if err != nil {
		return Result{}, fmt.Errorf("cleaning: %w", err)
	}
	logf(logger, "Kept %d of %d records in band %s", len(obs), len(records), params.Band)

	obs = WithinJD(obs, params.From, params.Until)

	if len(params.Exclude) > 0 {
		before := len(obs)
		obs = RemovePoints(obs, params.Exclude, params.ExcludeTolerance)
		logf(logger, "Excluded %d observations near %d listed JDs", before-len(obs), len(params.Exclude))
	}

	if len(obs) == 0 {
		return Result{}, fmt.Errorf("band %q: %w", params.Band, ErrNoObservations)
	}

	groups, dropped := groupWithDropped(obs, params.MinObservations)
	logf(logger, "%d observers have at least %d observations; %d were dropped", len(groups), params.MinObservations, len(dropped))
	if len(groups) == 0 {
		return Result{}, fmt.Errorf("band %q, %d observers, none with at least %d observations: %w", params.Band, len(dropped), params.MinObservations, ErrNoGroups)
	}

	merger := &Merger{
		Optimizer: &Optimizer{Grid: params.Grid, Workers: params.Workers},
		Logger:    logger,
	}
	composite, offsets, err := merger.Merge(ctx, groups)
	if err != nil {
		return Result{}, fmt.Errorf("band %q: %w", params.Band, err)
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, Summarize(g))
	}

	return Result{
		Composite: composite,
		Offsets:   offsets,
		Groups:    summaries,
		Dropped:   dropped,
	}, nil
}

func logf(logger *log.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}

package photometry

import (
	"context"
	"fmt"
	"log"
)

// Merger folds ranked observer groups into one composite light curve.
type Merger struct {
	Optimizer *Optimizer

	// Logger, if set, receives one line per merge.
	Logger *log.Logger
}

// Merge seeds the composite with groups[0] and then merges every remaining
// group, in order, at the offset the optimizer picks against the composite so
// far. It returns the composite and one log entry per group in merge order;
// the first entry always has offset 0.
func (m *Merger) Merge(ctx context.Context, groups []ObserverGroup) (Series, []OffsetLogEntry, error) {
	if len(groups) == 0 {
		return Series{}, nil, ErrNoGroups
	}

	opt := m.Optimizer
	if opt == nil {
		opt = NewOptimizer()
	}

	reference := SeriesFromGroup(groups[0])
	if err := reference.validate(); err != nil {
		return Series{}, nil, fmt.Errorf("seeding with observer %q: %w", groups[0].Observer, err)
	}

	offsets := make([]OffsetLogEntry, 0, len(groups))
	offsets = append(offsets, OffsetLogEntry{
		Observer:     groups[0].Observer,
		Observations: groups[0].Len(),
		Offset:       0.0,
	})
	m.logf("Seeded composite with %s (%d observations)", groups[0].Observer, groups[0].Len())

	for i, g := range groups[1:] {
		trial, err := opt.Search(ctx, reference, SeriesFromGroup(g))
		if err != nil {
			return Series{}, nil, fmt.Errorf("merge %d of %d (observer %q, %d observations): %w", i+2, len(groups), g.Observer, g.Len(), err)
		}

		offsets = append(offsets, OffsetLogEntry{
			Observer:     g.Observer,
			Observations: g.Len(),
			Offset:       trial.Offset,
		})
		m.logf("Merged %s (%d observations) at offset %+.4f, smoothness %.4f, composite now %d points", g.Observer, g.Len(), trial.Offset, trial.Score, trial.Merged.Len())

		reference = trial.Merged
	}

	return reference, offsets, nil
}

func (m *Merger) logf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Printf(format, args...)
	}
}

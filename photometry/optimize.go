package photometry

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
)

// gridChunk is how many candidate offsets one goroutine evaluates at a time.
const gridChunk = 64

// Optimizer searches a fixed grid of additive offsets for the one that makes
// a merged light curve smoothest.
type Optimizer struct {
	Grid OffsetGrid

	// Workers bounds the number of goroutines evaluating candidates. Zero or
	// less means runtime.NumCPU(). The result does not depend on it.
	Workers int
}

// NewOptimizer returns an Optimizer over the default ±2 mag, 1500 point grid.
func NewOptimizer() *Optimizer {
	return &Optimizer{Grid: DefaultOffsetGrid()}
}

// Trial is the outcome of one offset search.
type Trial struct {
	Merged Series
	Offset float64
	Score  float64
}

// Optimize shifts next by every candidate offset, merges it into reference by
// JD and scores the result with Smoothness. It returns the merge built with
// the best-scoring offset, and that offset. On exact ties the smallest
// candidate (the first in grid order) wins.
//
// reference should already be sorted by JD; next need not be.
func (o *Optimizer) Optimize(ctx context.Context, reference, next Series) (Series, float64, error) {
	trial, err := o.Search(ctx, reference, next)
	if err != nil {
		return Series{}, 0, err
	}
	return trial.Merged, trial.Offset, nil
}

// Search is Optimize, also reporting the winning score.
func (o *Optimizer) Search(ctx context.Context, reference, next Series) (Trial, error) {
	if err := reference.validate(); err != nil {
		return Trial{}, fmt.Errorf("reference series: %w", err)
	}
	if err := next.validate(); err != nil {
		return Trial{}, fmt.Errorf("new series: %w", err)
	}
	if err := o.Grid.Validate(); err != nil {
		return Trial{}, err
	}

	plan := newMergePlan(reference, next)
	offsets := o.Grid.Values()

	best, err := o.search(ctx, plan, offsets)
	if err != nil {
		return Trial{}, err
	}

	offset := offsets[best.index]
	return Trial{
		Merged: plan.apply(offset),
		Offset: offset,
		Score:  best.score,
	}, nil
}

type candidate struct {
	index int // into the offset grid; -1 if nothing scored
	score float64
}

// better reports whether c should replace the current best. Only strictly
// greater scores win, which keeps the first occurrence on ties, and NaN never
// wins.
func (c candidate) better(than candidate) bool {
	if c.index < 0 || math.IsNaN(c.score) {
		return false
	}
	return than.index < 0 || c.score > than.score
}

func (o *Optimizer) search(ctx context.Context, plan *mergePlan, offsets []float64) (candidate, error) {
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	nChunks := (len(offsets) + gridChunk - 1) / gridChunk
	results := make([]candidate, nChunks)
	errs := make([]error, nChunks)

	var pool sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for c := 0; c < nChunks; c++ {
		// Will block after `workers` simultaneous goroutines are running
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			pool.Wait()
			return candidate{index: -1}, fmt.Errorf("offset search interrupted: %w", ctx.Err())
		}

		pool.Add(1)
		go func(c int) {
			defer pool.Done()
			defer func() { <-semaphore }()

			lo := c * gridChunk
			hi := lo + gridChunk
			if hi > len(offsets) {
				hi = len(offsets)
			}
			results[c], errs[c] = plan.bestInRange(ctx, offsets, lo, hi)
		}(c)
	}
	pool.Wait()

	// Chunks are reduced in grid order so the first occurrence of the maximum
	// wins regardless of which goroutine finished first.
	best := candidate{index: -1}
	for c := range results {
		if errs[c] != nil {
			return candidate{index: -1}, errs[c]
		}
		if results[c].better(best) {
			best = results[c]
		}
	}

	if best.index < 0 {
		return best, fmt.Errorf("none of the %d candidate offsets produced a usable smoothness score", len(offsets))
	}

	return best, nil
}

// mergePlan is the concatenation reference+next together with the permutation
// that stably sorts it by JD. Adding a constant to next's magnitudes never
// changes the JD order, so the permutation is shared by every candidate.
type mergePlan struct {
	observers   []string
	jd          []float64
	magnitude   []float64
	uncertainty []float64
	shifted     []bool // true for points that came from next
	order       []int
}

func newMergePlan(reference, next Series) *mergePlan {
	n := reference.Len() + next.Len()
	p := &mergePlan{
		observers:   make([]string, 0, n),
		jd:          make([]float64, 0, n),
		magnitude:   make([]float64, 0, n),
		uncertainty: make([]float64, 0, n),
		shifted:     make([]bool, 0, n),
		order:       make([]int, n),
	}

	for _, s := range []Series{reference, next} {
		p.observers = append(p.observers, s.Observers...)
		p.jd = append(p.jd, s.JD...)
		p.magnitude = append(p.magnitude, s.Magnitude...)
		p.uncertainty = append(p.uncertainty, s.Uncertainty...)
	}
	for i := 0; i < n; i++ {
		p.shifted = append(p.shifted, i >= reference.Len())
		p.order[i] = i
	}

	// Ties on JD keep concatenation order: reference points first, then each
	// series' own relative order.
	sort.SliceStable(p.order, func(i, j int) bool {
		return p.jd[p.order[i]] < p.jd[p.order[j]]
	})

	return p
}

// magnitudes fills dst with the time-ordered merged magnitudes for offset.
func (p *mergePlan) magnitudes(dst []float64, offset float64) []float64 {
	dst = dst[:0]
	for _, idx := range p.order {
		m := p.magnitude[idx]
		if p.shifted[idx] {
			m += offset
		}
		dst = append(dst, m)
	}
	return dst
}

func (p *mergePlan) bestInRange(ctx context.Context, offsets []float64, lo, hi int) (candidate, error) {
	best := candidate{index: -1}
	buf := make([]float64, 0, len(p.order))

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return best, fmt.Errorf("offset search interrupted: %w", err)
		}

		buf = p.magnitudes(buf, offsets[i])
		score, err := Smoothness(buf)
		if err != nil {
			return best, err
		}

		if c := (candidate{index: i, score: score}); c.better(best) {
			best = c
		}
	}

	return best, nil
}

// apply builds the merged series for offset.
func (p *mergePlan) apply(offset float64) Series {
	out := Series{
		Observers:   make([]string, 0, len(p.order)),
		JD:          make([]float64, 0, len(p.order)),
		Magnitude:   p.magnitudes(make([]float64, 0, len(p.order)), offset),
		Uncertainty: make([]float64, 0, len(p.order)),
	}
	for _, idx := range p.order {
		out.Observers = append(out.Observers, p.observers[idx])
		out.JD = append(out.JD, p.jd[idx])
		out.Uncertainty = append(out.Uncertainty, p.uncertainty[idx])
	}
	return out
}

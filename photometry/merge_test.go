package photometry

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeNoGroups(t *testing.T) {
	if _, _, err := (&Merger{}).Merge(context.Background(), nil); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("Expected ErrNoGroups, got %v", err)
	}
}

func TestMergeSingleGroup(t *testing.T) {
	obs := []Observation{
		{JD: 3, Magnitude: 10.3, Observer: "A"},
		{JD: 1, Magnitude: 10.1, Observer: "A"},
		{JD: 2, Magnitude: 10.2, Observer: "A"},
	}

	composite, offsets, err := (&Merger{}).Merge(context.Background(), []ObserverGroup{{Observer: "A", Observations: obs}})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]OffsetLogEntry{{Observer: "A", Observations: 3, Offset: 0}}, offsets); diff != "" {
		t.Fatalf("Offset log mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10.1, 10.2, 10.3}, composite.Magnitude); diff != "" {
		t.Fatalf("Composite was not time-sorted (-expected +got):\n%s", diff)
	}
}

func TestMergeOrderAndLog(t *testing.T) {
	a, b := scenario()
	d := observe("D", linspace(102, 117, 11), 10.5)

	groups := Group(append(append(a, b...), d...), DefaultMinObservations)
	if diff := cmp.Diff([]string{"B", "A", "D"}, groupNames(groups)); diff != "" {
		t.Fatalf("Unexpected merge order (-expected +got):\n%s", diff)
	}

	var buf bytes.Buffer
	merger := &Merger{Optimizer: NewOptimizer(), Logger: log.New(&buf, "", 0)}
	composite, offsets, err := merger.Merge(context.Background(), groups)
	if err != nil {
		t.Fatal(err)
	}

	if len(offsets) != 3 {
		t.Fatalf("Expected 3 offset log entries, got %d", len(offsets))
	}
	for i, g := range groups {
		if offsets[i].Observer != g.Observer || offsets[i].Observations != g.Len() {
			t.Fatalf("Log entry %d is %+v, expected observer %s with %d observations", i, offsets[i], g.Observer, g.Len())
		}
	}
	if offsets[0].Offset != 0.0 {
		t.Fatalf("Reference offset must be exactly 0, got %v", offsets[0].Offset)
	}

	// B seeds the composite, so A is brought up to B's level.
	if math.Abs(offsets[1].Offset-0.3) > 0.01 {
		t.Fatalf("Expected A's offset near +0.3, got %v", offsets[1].Offset)
	}
	for _, entry := range offsets[1:] {
		if entry.Offset < -2 || entry.Offset > 2 {
			t.Fatalf("Offset %v for %s outside the search interval", entry.Offset, entry.Observer)
		}
	}

	if composite.Len() != 38 {
		t.Fatalf("Expected 38 composite points, got %d", composite.Len())
	}
	if !composite.IsTimeOrdered() {
		t.Fatalf("Composite is not sorted by JD")
	}

	if lines := strings.Count(buf.String(), "\n"); lines != 3 {
		t.Fatalf("Expected 3 log lines, got %d:\n%s", lines, buf.String())
	}
}

func TestMergeIdempotent(t *testing.T) {
	a, b := scenario()
	groups := Group(append(a, b...), DefaultMinObservations)

	composite1, offsets1, err := (&Merger{Optimizer: NewOptimizer()}).Merge(context.Background(), groups)
	if err != nil {
		t.Fatal(err)
	}
	composite2, offsets2, err := (&Merger{Optimizer: NewOptimizer()}).Merge(context.Background(), groups)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(composite1, composite2); diff != "" {
		t.Fatalf("Composite differs between runs:\n%s", diff)
	}
	if diff := cmp.Diff(offsets1, offsets2); diff != "" {
		t.Fatalf("Offset log differs between runs:\n%s", diff)
	}
}

func TestMergeReportsFailingObserver(t *testing.T) {
	a, b := scenario()
	groups := Group(append(a, b...), DefaultMinObservations)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := (&Merger{Optimizer: NewOptimizer()}).Merge(ctx, groups)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if !strings.Contains(err.Error(), `"A"`) {
		t.Fatalf("Expected the error to name observer A, got %v", err)
	}
}

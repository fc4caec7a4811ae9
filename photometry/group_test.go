package photometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeObs(observer string, n int) []Observation {
	out := make([]Observation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Observation{JD: float64(i), Magnitude: 10, Observer: observer})
	}
	return out
}

func groupNames(groups []ObserverGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Observer)
	}
	return out
}

func TestGroupThresholdAndRanking(t *testing.T) {
	var obs []Observation
	obs = append(obs, makeObs("SMALL", 9)...)
	obs = append(obs, makeObs("TEN", 10)...)
	obs = append(obs, makeObs("BIG", 25)...)
	obs = append(obs, makeObs("MID", 14)...)

	groups := Group(obs, DefaultMinObservations)

	if diff := cmp.Diff([]string{"BIG", "MID", "TEN"}, groupNames(groups)); diff != "" {
		t.Fatalf("Group order mismatch (-expected +got):\n%s", diff)
	}

	for i := 1; i < len(groups); i++ {
		if groups[i].Len() > groups[i-1].Len() {
			t.Fatalf("Groups not in non-increasing size order at %d: %d > %d", i, groups[i].Len(), groups[i-1].Len())
		}
	}

	for _, g := range groups {
		for _, o := range g.Observations {
			if o.Observer != g.Observer {
				t.Fatalf("Group %s contains an observation from %s", g.Observer, o.Observer)
			}
		}
	}
}

func TestGroupKeepsInputOrderWithinGroup(t *testing.T) {
	obs := make([]Observation, 0)
	for i := 0; i < 12; i++ {
		obs = append(obs, Observation{JD: float64(100 - i), Observer: "A"})
		obs = append(obs, Observation{JD: float64(i), Observer: "B"})
	}

	groups := Group(obs, DefaultMinObservations)
	for _, g := range groups {
		expected := make([]Observation, 0)
		for _, o := range obs {
			if o.Observer == g.Observer {
				expected = append(expected, o)
			}
		}
		if diff := cmp.Diff(expected, g.Observations); diff != "" {
			t.Fatalf("Group %s lost its input order (-expected +got):\n%s", g.Observer, diff)
		}
	}
}

func TestGroupTies(t *testing.T) {
	var obs []Observation
	obs = append(obs, makeObs("FIRST", 12)...)
	obs = append(obs, makeObs("SECOND", 12)...)
	obs = append(obs, makeObs("THIRD", 12)...)
	obs = append(obs, makeObs("LARGEST", 13)...)

	groups := Group(obs, DefaultMinObservations)
	if diff := cmp.Diff([]string{"LARGEST", "THIRD", "SECOND", "FIRST"}, groupNames(groups)); diff != "" {
		t.Fatalf("Tie order mismatch (-expected +got):\n%s", diff)
	}
}

func TestGroupDropped(t *testing.T) {
	var obs []Observation
	obs = append(obs, makeObs("C", 8)...)
	obs = append(obs, makeObs("A", 12)...)
	obs = append(obs, makeObs("D", 1)...)

	groups, dropped := groupWithDropped(obs, DefaultMinObservations)
	if diff := cmp.Diff([]string{"A"}, groupNames(groups)); diff != "" {
		t.Fatalf("Group mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"C", "D"}, dropped); diff != "" {
		t.Fatalf("Dropped mismatch (-expected +got):\n%s", diff)
	}
}

func TestGroupEmpty(t *testing.T) {
	if groups := Group(nil, DefaultMinObservations); len(groups) != 0 {
		t.Fatalf("Expected no groups, got %d", len(groups))
	}
}

package photometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRemovePoints(t *testing.T) {
	obs := []Observation{
		{JD: 100.0, Observer: "A"},
		{JD: 100.0005, Observer: "B"},
		{JD: 100.002, Observer: "C"},
		{JD: 200.0, Observer: "D"},
		{JD: 199.9996, Observer: "E"},
		{JD: 300.0, Observer: "F"},
	}
	original := make([]Observation, len(obs))
	copy(original, obs)

	got := RemovePoints(obs, []float64{200, 100}, DefaultExclusionTolerance)

	expected := []Observation{
		{JD: 100.002, Observer: "C"},
		{JD: 300.0, Observer: "F"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("RemovePoints mismatch (-expected +got):\n%s", diff)
	}

	if diff := cmp.Diff(original, obs); diff != "" {
		t.Fatalf("RemovePoints modified its input (-before +after):\n%s", diff)
	}
}

func TestRemovePointsNoTargets(t *testing.T) {
	obs := []Observation{{JD: 1}, {JD: 2}}
	got := RemovePoints(obs, nil, DefaultExclusionTolerance)
	if diff := cmp.Diff(obs, got); diff != "" {
		t.Fatalf("Expected every observation back (-expected +got):\n%s", diff)
	}

	got[0].JD = 99
	if obs[0].JD != 1 {
		t.Fatalf("RemovePoints returned a slice aliasing its input")
	}
}

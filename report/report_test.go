package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/timpalpant/brdynamics"
)

func TestHistogram(t *testing.T) {
	testCases := []struct {
		values   []int
		nBins    int
		expected []Bin
	}{
		{nil, 5, nil},
		{[]int{3}, 0, nil},
		{[]int{5, 5, 5}, 4, []Bin{{5, 5, 3}}},
		{
			[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			3,
			[]Bin{{1, 4, 4}, {5, 8, 4}, {9, 10, 2}},
		},
		{
			[]int{2, 2, 3, 7},
			10,
			[]Bin{{2, 2, 2}, {3, 3, 1}, {4, 4, 0}, {5, 5, 0}, {6, 6, 0}, {7, 7, 1}},
		},
	}

	for _, tc := range testCases {
		if bins := Histogram(tc.values, tc.nBins); !reflect.DeepEqual(bins, tc.expected) {
			t.Errorf("Histogram(%v, %d) = %v, expected %v", tc.values, tc.nBins, bins, tc.expected)
		}
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []brdynamics.GameOutcome{
		{Status: brdynamics.EquilibriumFound, Iterations: 2, Movements: 0},
		{Status: brdynamics.EquilibriumFound, Iterations: 4, Movements: 2},
		{Status: brdynamics.EquilibriumFound, Iterations: 9, Movements: 4},
		{Status: brdynamics.EquilibriumNotFound, Iterations: 11, Movements: 9},
	}

	s := Summarize(outcomes, 3, 5)
	if s.NumGames != 4 || s.NumPlayers != 3 {
		t.Errorf("unexpected summary header: %+v", s)
	}

	if s.FractionFound() != 0.75 {
		t.Errorf("expected 75%% found, got %v", s.FractionFound())
	}

	found := s.Get(brdynamics.EquilibriumFound)
	expected := Stats{Count: 3, Mean: 5, Median: 4, Min: 2, Max: 9}
	if found.Iterations != expected {
		t.Errorf("expected iteration stats %+v, got %+v", expected, found.Iterations)
	}

	notFound := s.Get(brdynamics.EquilibriumNotFound)
	if notFound.Count != 1 || notFound.Movements.Mean != 9 {
		t.Errorf("unexpected not-found summary: %+v", notFound)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 2, 10)
	if s.FractionFound() != 0 {
		t.Errorf("expected 0 fraction found, got %v", s.FractionFound())
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, s); err != nil {
		t.Fatal(err)
	}
}

func TestWriteText(t *testing.T) {
	outcomes := []brdynamics.GameOutcome{
		{Status: brdynamics.EquilibriumFound, Iterations: 2},
		{Status: brdynamics.EquilibriumFound, Iterations: 3, Movements: 1},
		{Status: brdynamics.EquilibriumNotFound, Iterations: 5, Movements: 4},
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, Summarize(outcomes, 2, 4)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"3 games with 2 players",
		"EquilibriumFound: 2 (66.7%)",
		"EquilibriumNotFound: 1 (33.3%)",
		"#",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

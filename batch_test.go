package brdynamics

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestRunBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	outcomes, err := RunBatch(rng, 250, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(outcomes) != 250 {
		t.Fatalf("expected 250 outcomes, got %d", len(outcomes))
	}

	for i, outcome := range outcomes {
		if outcome.Status != EquilibriumFound && outcome.Status != EquilibriumNotFound {
			t.Errorf("game %d: invalid status %q", i, outcome.Status)
		}

		if outcome.Iterations < 1 || outcome.Movements < 0 || outcome.Movements > outcome.Iterations {
			t.Errorf("game %d: invalid counts %v", i, outcome)
		}
	}
}

func TestRunBatch_Reproducible(t *testing.T) {
	first, err := RunBatch(rand.New(rand.NewSource(5)), 50, 4)
	if err != nil {
		t.Fatal(err)
	}

	second, err := RunBatch(rand.New(rand.NewSource(5)), 50, 4)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("batches with the same seed differ")
	}
}

func TestRunBatchParallel_MatchesSerial(t *testing.T) {
	serial, err := RunBatch(rand.New(rand.NewSource(77)), 300, 6)
	if err != nil {
		t.Fatal(err)
	}

	for _, nWorkers := range []int{0, 1, 3, 8} {
		parallel, err := RunBatchParallel(rand.New(rand.NewSource(77)), 300, 6, nWorkers)
		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(serial, parallel) {
			t.Errorf("parallel batch with %d workers differs from serial batch", nWorkers)
		}
	}
}

func TestRunBatch_InvalidArguments(t *testing.T) {
	testCases := []struct {
		nGames   int
		nPlayers int
		expected error
	}{
		{0, 3, ErrInvalidArgument},
		{-1, 3, ErrInvalidArgument},
		{10, 0, ErrInvalidArgument},
		{10, MaxPlayers + 1, ErrResourceLimit},
	}

	for _, tc := range testCases {
		if _, err := RunBatch(rand.New(rand.NewSource(1)), tc.nGames, tc.nPlayers); errors.Cause(err) != tc.expected {
			t.Errorf("RunBatch(%d, %d): got %v, expected %v", tc.nGames, tc.nPlayers, err, tc.expected)
		}

		if _, err := RunBatchParallel(rand.New(rand.NewSource(1)), tc.nGames, tc.nPlayers, 2); errors.Cause(err) != tc.expected {
			t.Errorf("RunBatchParallel(%d, %d): got %v, expected %v", tc.nGames, tc.nPlayers, err, tc.expected)
		}
	}
}

package cli

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

func TestSimulate(t *testing.T) {
	opts := simulateOpts{runs: 200, alternatives: 4, criteria: 3, seed: 7, concurrency: 4}

	var ticks atomic.Int64
	a, err := simulate(context.Background(), opts, func() { ticks.Add(1) })
	if err != nil {
		t.Fatalf("simulate() error: %v", err)
	}
	if ticks.Load() != 200 {
		t.Errorf("tick called %d times, want 200", ticks.Load())
	}

	total := a.None
	for _, w := range a.Wins {
		total += w
	}
	if total != a.Runs {
		t.Errorf("wins and misses sum to %d, want %d", total, a.Runs)
	}
	if a.Pareto > a.Runs {
		t.Errorf("pareto %d exceeds runs %d", a.Pareto, a.Runs)
	}

	// Concurrency does not change the outcome.
	opts.concurrency = 1
	b, err := simulate(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("simulate() error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ between concurrency levels: %+v vs %+v", a, b)
	}
}

func TestSimulateNoAlternatives(t *testing.T) {
	sim, err := simulate(context.Background(), simulateOpts{runs: 5, criteria: 2, seed: 1}, nil)
	if err != nil {
		t.Fatalf("simulate() error: %v", err)
	}
	if sim.None != 5 {
		t.Errorf("None = %d, want 5", sim.None)
	}
}

func TestSimulateInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts simulateOpts
		code perrors.Code
	}{
		{"negative runs", simulateOpts{runs: -1, alternatives: 3, criteria: 2}, perrors.ErrCodeInvalidInput},
		{"negative alternatives", simulateOpts{runs: 1, alternatives: -3, criteria: 2}, perrors.ErrCodeInvalidInput},
		{"no criteria", simulateOpts{runs: 1, alternatives: 3}, perrors.ErrCodeMissingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simulate(context.Background(), tt.opts, nil)
			if !perrors.Is(err, tt.code) {
				t.Errorf("simulate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := simulate(ctx, simulateOpts{runs: 100, alternatives: 3, criteria: 2, concurrency: 2}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("simulate() error = %v, want context.Canceled", err)
	}
}

func TestShare(t *testing.T) {
	if got := share(1, 4); got != "1 (25.0%)" {
		t.Errorf("share(1, 4) = %q", got)
	}
	if got := share(0, 0); got != "0" {
		t.Errorf("share(0, 0) = %q", got)
	}
}

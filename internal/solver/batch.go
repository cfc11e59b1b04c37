package solver

import (
	"context"
	"fmt"

	"github.com/qs-lab/qdyn/internal/signals"
)

// BatchOptions carries the list-valued inputs of a batch solve. Spans, Y0s,
// SignalSets and DissipatorSignalSets may each hold one entry (broadcast
// across the batch) or exactly N entries; N is the largest list length.
// The remaining options apply to every simulation.
type BatchOptions struct {
	Spans                [][2]float64
	Y0s                  [][]complex128
	SignalSets           []signals.List
	DissipatorSignalSets []signals.List

	Method    string
	TEval     []float64
	MaxDt     float64
	Tol       float64
	InitialDt float64
}

// SolveBatch runs one simulation per input set and returns the results in
// input order. Simulations are performed in a serial loop; a failure stops
// the batch and reports the failing index.
func (s *Solver) SolveBatch(ctx context.Context, opts BatchOptions) ([]*Result, error) {
	n, err := batchSize(opts)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		span := broadcast(opts.Spans, i)
		y0 := broadcast(opts.Y0s, i)

		callOpts := SolveOptions{
			Method:    opts.Method,
			TEval:     opts.TEval,
			MaxDt:     opts.MaxDt,
			Tol:       opts.Tol,
			InitialDt: opts.InitialDt,
		}
		if len(opts.SignalSets) > 0 {
			callOpts.Signals = broadcast(opts.SignalSets, i)
		}
		if len(opts.DissipatorSignalSets) > 0 {
			callOpts.DissipatorSignals = broadcast(opts.DissipatorSignalSets, i)
		}

		res, err := s.Solve(ctx, span, y0, callOpts)
		if err != nil {
			return results, fmt.Errorf("batch input %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// batchSize determines the batch length N and validates the broadcast
// rules, naming the offending argument on mismatch.
func batchSize(opts BatchOptions) (int, error) {
	if len(opts.Spans) == 0 || len(opts.Y0s) == 0 {
		return 0, ErrEmptyBatch
	}

	n := 1
	check := func(name string, l int) error {
		if l <= 1 {
			return nil
		}
		if n == 1 {
			n = l
			return nil
		}
		if l != n {
			return fmt.Errorf("%w: %s has %d entries, expected %d", ErrBatchLength, name, l, n)
		}
		return nil
	}

	if err := check("t_span", len(opts.Spans)); err != nil {
		return 0, err
	}
	if err := check("y0", len(opts.Y0s)); err != nil {
		return 0, err
	}
	if err := check("signals", len(opts.SignalSets)); err != nil {
		return 0, err
	}
	if err := check("dissipator signals", len(opts.DissipatorSignalSets)); err != nil {
		return 0, err
	}
	return n, nil
}

// broadcast indexes a list-valued argument, reusing a single entry across
// the whole batch.
func broadcast[T any](list []T, i int) T {
	if len(list) == 1 {
		return list[0]
	}
	return list[i]
}

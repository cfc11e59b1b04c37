package solve

import (
	"context"
	"math"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/ode"
)

// runFixed integrates with a fixed-step method, splitting each interval
// between evaluation points into uniform steps no larger than MaxDt.
func runFixed(ctx context.Context, stepper ode.Stepper, rhs ode.RHS, span [2]float64, y0 []complex128, teval []float64, opts Options) (*Result, error) {
	maxDt := opts.MaxDt
	if maxDt <= 0 {
		maxDt = (span[1] - span[0]) / 1000
	}

	res := &Result{}
	y := linalg.CloneVec(y0)
	t := span[0]

	for _, target := range teval {
		if target > t {
			n := int(math.Ceil((target - t) / maxDt))
			dt := (target - t) / float64(n)
			segStart := t
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return res, ctx.Err()
				default:
				}

				y = stepper.Step(rhs, t, y, dt)
				t = segStart + float64(i+1)*dt
				res.StepsTaken++

				if !linalg.IsValidVec(y) {
					return res, &StepError{Step: res.StepsTaken, Time: t, Wrapped: ErrInvalidState}
				}
			}
			t = target
		}
		res.Times = append(res.Times, target)
		res.States = append(res.States, linalg.CloneVec(y))
	}

	return res, nil
}

// runExpm propagates an LMDE with matrix exponentials of the generator
// evaluated at interval midpoints. MaxDt bounds the propagation step and
// must be set explicitly.
func runExpm(ctx context.Context, gen Generator, span [2]float64, y0 []complex128, teval []float64, opts Options) (*Result, error) {
	if opts.MaxDt <= 0 {
		return nil, ErrMaxDtRequired
	}

	res := &Result{}
	y := linalg.CloneVec(y0)
	t := span[0]

	for _, target := range teval {
		if target > t {
			n := int(math.Ceil((target - t) / opts.MaxDt))
			dt := (target - t) / float64(n)
			segStart := t
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return res, ctx.Err()
				default:
				}

				g := gen.Evaluate(t + dt/2)
				y = linalg.MatVec(linalg.Expm(linalg.Scale(complex(dt, 0), g)), y)
				t = segStart + float64(i+1)*dt
				res.StepsTaken++

				if !linalg.IsValidVec(y) {
					return res, &StepError{Step: res.StepsTaken, Time: t, Wrapped: ErrInvalidState}
				}
			}
			t = target
		}
		res.Times = append(res.Times, target)
		res.States = append(res.States, linalg.CloneVec(y))
	}

	return res, nil
}

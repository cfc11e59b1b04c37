package solve

import (
	"context"
	"math"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/ode"
)

// maxRejects bounds the number of consecutive step-size reductions before
// the solve is abandoned.
const maxRejects = 30

// runAdaptive integrates with an error-controlled stepper. A proposed step
// is rejected and retried whenever the controller shrinks the step size.
func runAdaptive(ctx context.Context, stepper ode.AdaptiveStepper, rhs ode.RHS, span [2]float64, y0 []complex128, teval []float64, opts Options) (*Result, error) {
	tol := opts.Tol
	if tol <= 0 {
		tol = defaultTol
	}
	dt := opts.InitialDt
	if dt <= 0 {
		dt = (span[1] - span[0]) / 100
	}
	minDt := (span[1] - span[0]) * 1e-14

	res := &Result{}
	y := linalg.CloneVec(y0)
	t := span[0]

	for _, target := range teval {
		for target-t > minDt {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}

			tryDt := math.Min(dt, target-t)

			var yNew []complex128
			var dtNext float64
			accepted := false
			for attempt := 0; attempt < maxRejects; attempt++ {
				var err error
				yNew, dtNext, err = stepper.StepAdaptive(rhs, t, y, tryDt, tol)
				if err != nil {
					return res, &StepError{Step: res.StepsTaken, Time: t, Wrapped: err}
				}
				if dtNext >= tryDt || tryDt <= minDt {
					accepted = true
					break
				}
				tryDt = dtNext
			}
			if !accepted {
				return res, &StepError{Step: res.StepsTaken, Time: t, Wrapped: ErrStepTooSmall}
			}

			y = yNew
			t += tryDt
			dt = dtNext
			res.StepsTaken++

			if !linalg.IsValidVec(y) {
				return res, &StepError{Step: res.StepsTaken, Time: t, Wrapped: ErrInvalidState}
			}
		}
		t = target
		res.Times = append(res.Times, target)
		res.States = append(res.States, linalg.CloneVec(y))
	}

	return res, nil
}

// Package solve provides front ends for solving ODEs and linear matrix
// differential equations (LMDEs) in standard form dy/dt = G(t)y.
//
// Methods are selected by registry name or by passing a stepper instance
// directly in Options.Stepper.
package solve

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/ode"
)

// Generator is the model contract needed by the LMDE front end. The model
// package's Hamiltonian and Lindblad types satisfy it.
type Generator interface {
	Evaluate(t float64) *mat.CDense
	RHS(t float64, y []complex128) []complex128
	Dim() int
}

// Options configures a solve call. The zero value selects the default
// adaptive method over the span endpoints.
type Options struct {
	// Method is a registry name ("euler", "rk4", "dp54", "expm"). Ignored
	// when Stepper is set.
	Method string

	// Stepper, when non-nil, is used directly in place of a named method.
	Stepper ode.Stepper

	// TEval lists the times at which the solution is recorded. All entries
	// must lie within the span and be increasing. Defaults to the span
	// endpoints.
	TEval []float64

	// MaxDt bounds the step size for fixed-step methods and the expm
	// propagator. Fixed-step methods default to span/1000; expm requires an
	// explicit value.
	MaxDt float64

	// Tol is the local error tolerance for adaptive methods.
	Tol float64

	// InitialDt seeds the adaptive step size. Defaults to span/100.
	InitialDt float64
}

// Result holds a solution sampled at the requested times.
type Result struct {
	Times      []float64
	States     [][]complex128
	StepsTaken int
}

// Final returns the state at the last recorded time.
func (r *Result) Final() []complex128 {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

const (
	defaultMethod = "dp54"
	defaultTol    = 1e-8
)

// ODE solves dy/dt = rhs(t, y) over span, recording the solution at the
// requested evaluation times.
func ODE(ctx context.Context, rhs ode.RHS, span [2]float64, y0 []complex128, opts Options) (*Result, error) {
	teval, err := checkProblem(span, y0, opts.TEval)
	if err != nil {
		return nil, err
	}

	stepper := opts.Stepper
	if stepper == nil {
		name := opts.Method
		if name == "" {
			name = defaultMethod
		}
		if name == methodExpm {
			return nil, fmt.Errorf("%w: %q requires a generator, use LMDE", ErrUnknownMethod, name)
		}
		stepper, err = NewStepper(name)
		if err != nil {
			return nil, err
		}
	}

	if adaptive, ok := stepper.(ode.AdaptiveStepper); ok {
		return runAdaptive(ctx, adaptive, rhs, span, y0, teval, opts)
	}
	return runFixed(ctx, stepper, rhs, span, y0, teval, opts)
}

// LMDE solves dy/dt = G(t)y over span. ODE methods are served by wrapping
// the generator as a right-hand side; the "expm" method propagates with
// matrix exponentials and is only available here.
func LMDE(ctx context.Context, gen Generator, span [2]float64, y0 []complex128, opts Options) (*Result, error) {
	if len(y0) != gen.Dim() {
		return nil, fmt.Errorf("%w: y0 has dimension %d, generator expects %d",
			ErrDimensionMismatch, len(y0), gen.Dim())
	}

	if opts.Stepper == nil && opts.Method == methodExpm {
		teval, err := checkProblem(span, y0, opts.TEval)
		if err != nil {
			return nil, err
		}
		return runExpm(ctx, gen, span, y0, teval, opts)
	}

	return ODE(ctx, gen.RHS, span, y0, opts)
}

// checkProblem validates the time span and evaluation times, returning the
// effective evaluation points.
func checkProblem(span [2]float64, y0 []complex128, teval []float64) ([]float64, error) {
	if span[1] <= span[0] {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidSpan, span[0], span[1])
	}
	if len(y0) == 0 {
		return nil, fmt.Errorf("%w: empty initial state", ErrInvalidState)
	}
	if !linalg.IsValidVec(y0) {
		return nil, fmt.Errorf("%w: initial state", ErrInvalidState)
	}

	if len(teval) == 0 {
		return []float64{span[0], span[1]}, nil
	}
	prev := span[0]
	for _, t := range teval {
		if t < span[0] || t > span[1] {
			return nil, fmt.Errorf("%w: t=%g outside [%g, %g]", ErrTEvalOutOfRange, t, span[0], span[1])
		}
		if t < prev {
			return nil, fmt.Errorf("%w: evaluation times must be increasing", ErrTEvalOutOfRange)
		}
		prev = t
	}
	return teval, nil
}

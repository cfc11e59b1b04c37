// Package solver provides the high-level simulation driver tying together
// models, signals, rotating frames and the numerical solve layer.
//
// Signals are supplied per Solve call rather than at construction, so a
// single Solver can be reused across pulse shapes. The rotating wave
// approximation is applied at construction and therefore takes its carrier
// frequencies from the configuration, not from any signal.
package solver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/model"
	"github.com/qs-lab/qdyn/internal/ode"
	"github.com/qs-lab/qdyn/internal/signals"
	"github.com/qs-lab/qdyn/internal/solve"
)

// Config specifies the physical model a Solver simulates.
type Config struct {
	// StaticHamiltonian is the constant Hamiltonian term.
	StaticHamiltonian *mat.CDense

	// HamiltonianOperators are the signal-driven Hamiltonian terms.
	HamiltonianOperators []*mat.CDense

	// StaticDissipators are Lindblad operators with fixed coefficient 1.
	StaticDissipators []*mat.CDense

	// DissipatorOperators are Lindblad operators with signal-driven
	// coefficients.
	DissipatorOperators []*mat.CDense

	// Frame is the rotating frame the simulation runs in. Nil means the
	// lab frame.
	Frame *model.RotatingFrame

	// RWACutoff enables the rotating wave approximation when positive:
	// matrix elements oscillating faster than the cutoff (in cycles per
	// unit time) are discarded at construction.
	RWACutoff float64

	// RWACarriers are the carrier frequencies assumed for each Hamiltonian
	// operator when applying the approximation. Required when RWACutoff is
	// set and operators are present, since no signals exist at
	// construction time.
	RWACarriers []float64
}

// SolveOptions configures a single Solve call.
type SolveOptions struct {
	// Signals are the Hamiltonian operator coefficients for this call.
	Signals signals.List

	// DissipatorSignals are the dissipator coefficients for this call;
	// nil selects the constant 1 defaults.
	DissipatorSignals signals.List

	// Method, Stepper, TEval, MaxDt, Tol and InitialDt are passed through
	// to the solve layer. Stepper takes precedence over Method.
	Method    string
	Stepper   ode.Stepper
	TEval     []float64
	MaxDt     float64
	Tol       float64
	InitialDt float64
}

// Result is a solution of one simulation.
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

// Solver drives simulations of a fixed model with per-call signals.
type Solver struct {
	ham   *model.Hamiltonian
	lind  *model.Lindblad
	frame *model.RotatingFrame
}

// New constructs a Solver from a model configuration.
func New(cfg Config) (*Solver, error) {
	hasHam := cfg.StaticHamiltonian != nil || len(cfg.HamiltonianOperators) > 0
	hasDiss := len(cfg.StaticDissipators) > 0 || len(cfg.DissipatorOperators) > 0
	if !hasHam && !hasDiss {
		return nil, ErrNoModel
	}

	var ham *model.Hamiltonian
	var err error
	if hasHam {
		ham, err = model.NewHamiltonian(cfg.StaticHamiltonian, cfg.HamiltonianOperators)
		if err != nil {
			return nil, err
		}
	}

	if cfg.RWACutoff > 0 {
		if ham == nil {
			return nil, fmt.Errorf("%w: no hamiltonian to approximate", ErrRWAWithoutHamiltonian)
		}
		if len(cfg.HamiltonianOperators) > 0 && len(cfg.RWACarriers) == 0 {
			return nil, ErrRWAWithoutCarriers
		}
		carriers := cfg.RWACarriers
		if carriers == nil {
			carriers = []float64{}
		}
		ham, err = model.RotatingWaveApproximation(ham, cfg.Frame, cfg.RWACutoff, carriers)
		if err != nil {
			return nil, err
		}
	}

	s := &Solver{ham: ham, frame: cfg.Frame}

	if hasDiss {
		s.lind, err = model.NewLindblad(ham, cfg.StaticDissipators, cfg.DissipatorOperators)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// OpenSystem reports whether the solver evolves density matrices.
func (s *Solver) OpenSystem() bool { return s.lind != nil }

// Dim returns the solver state dimension: the Hilbert space dimension for
// closed systems, its square for open systems.
func (s *Solver) Dim() int {
	if s.lind != nil {
		return s.lind.Dim()
	}
	return s.ham.Dim()
}

// HilbertDim returns the Hilbert space dimension.
func (s *Solver) HilbertDim() int {
	if s.lind != nil {
		return s.lind.HilbertDim()
	}
	return s.ham.Dim()
}

// Solve simulates over span from y0. For open systems y0 is the
// column-stacked density matrix. Signals bound by opts never persist past
// the call.
func (s *Solver) Solve(ctx context.Context, span [2]float64, y0 []complex128, opts SolveOptions) (*Result, error) {
	gen, frame, err := s.prepare(opts)
	if err != nil {
		return nil, err
	}
	defer s.clearSignals()

	y0Frame := frame.StateIntoFrame(span[0], y0)

	res, err := solve.LMDE(ctx, gen, span, y0Frame, solve.Options{
		Method:    opts.Method,
		Stepper:   opts.Stepper,
		TEval:     opts.TEval,
		MaxDt:     opts.MaxDt,
		Tol:       opts.Tol,
		InitialDt: opts.InitialDt,
	})
	if err != nil {
		return nil, err
	}

	out := &Result{Times: res.Times, StepsTaken: res.StepsTaken}
	out.States = make([][]complex128, len(res.States))
	for i, y := range res.States {
		out.States[i] = frame.StateOutOfFrame(res.Times[i], y)
	}
	return out, nil
}

// prepare binds the per-call signals and returns the generator and frame
// for the solve, already adapted to the state representation.
func (s *Solver) prepare(opts SolveOptions) (solve.Generator, *model.RotatingFrame, error) {
	if s.lind != nil {
		if err := s.lind.SetSignals(opts.Signals); err != nil {
			return nil, nil, err
		}
		if err := s.lind.SetDissipatorSignals(opts.DissipatorSignals); err != nil {
			return nil, nil, err
		}
		frame := s.frame.Vectorized()
		return model.InFrame(s.lind, frame), frame, nil
	}

	if opts.DissipatorSignals != nil {
		return nil, nil, fmt.Errorf("%w: closed system has no dissipators", model.ErrSignalCount)
	}
	if err := s.ham.SetSignals(opts.Signals); err != nil {
		return nil, nil, err
	}
	return model.InFrame(s.ham, s.frame), s.frame, nil
}

// clearSignals restores the solver to its unbound state so signals from
// one call never leak into the next.
func (s *Solver) clearSignals() {
	if s.lind != nil {
		_ = s.lind.SetSignals(nil)
		_ = s.lind.SetDissipatorSignals(nil)
		return
	}
	_ = s.ham.SetSignals(nil)
}

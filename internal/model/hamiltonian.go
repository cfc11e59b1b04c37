package model

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/signals"
)

const hermitianTol = 1e-10

// Hamiltonian models H(t) = H_static + sum_j s_j(t) H_j with the generator
// G(t) = -i H(t) driving the Schrodinger equation.
//
// After a rotating wave approximation the operators are stored as sideband
// pairs and evaluated with the complex signal values; see
// RotatingWaveApproximation.
type Hamiltonian struct {
	static    *mat.CDense
	operators []*mat.CDense
	// conjOps, when non-nil, holds the dagger partner of each operator and
	// switches evaluation to complex sideband coefficients.
	conjOps []*mat.CDense
	sigs    signals.List
	dim     int
}

// NewHamiltonian constructs a Hamiltonian model, validating that all terms
// are Hermitian and square with matching dimensions. Either static or
// operators may be nil, but not both.
func NewHamiltonian(static *mat.CDense, operators []*mat.CDense) (*Hamiltonian, error) {
	if static == nil && len(operators) == 0 {
		return nil, ErrEmptyModel
	}

	dim := 0
	check := func(op *mat.CDense, what string) error {
		r, c := op.Dims()
		if r != c {
			return fmt.Errorf("%w: %s is %dx%d", ErrDimensionMismatch, what, r, c)
		}
		if dim == 0 {
			dim = r
		} else if r != dim {
			return fmt.Errorf("%w: %s is %dx%d, expected %dx%d", ErrDimensionMismatch, what, r, c, dim, dim)
		}
		if !linalg.IsHermitian(op, hermitianTol) {
			return fmt.Errorf("%w: %s", ErrNotHermitian, what)
		}
		return nil
	}

	if static != nil {
		if err := check(static, "static hamiltonian"); err != nil {
			return nil, err
		}
	}
	for j, op := range operators {
		if err := check(op, fmt.Sprintf("hamiltonian operator %d", j)); err != nil {
			return nil, err
		}
	}

	return &Hamiltonian{static: static, operators: operators, dim: dim}, nil
}

// SetSignals binds coefficients to the Hamiltonian operators. The list
// length must equal the operator count.
func (h *Hamiltonian) SetSignals(sigs signals.List) error {
	if sigs != nil && len(sigs) != len(h.operators) {
		return fmt.Errorf("%w: %d signals for %d operators", ErrSignalCount, len(sigs), len(h.operators))
	}
	h.sigs = sigs
	return nil
}

// Signals returns the bound coefficient list.
func (h *Hamiltonian) Signals() signals.List { return h.sigs }

// NumOperators returns the number of signal-driven operators.
func (h *Hamiltonian) NumOperators() int { return len(h.operators) }

// Dim returns the Hilbert space dimension.
func (h *Hamiltonian) Dim() int { return h.dim }

// EvaluateH returns the Hamiltonian matrix H(t). Unbound operator
// coefficients contribute nothing.
func (h *Hamiltonian) EvaluateH(t float64) *mat.CDense {
	out := linalg.Zeros(h.dim)
	if h.static != nil {
		linalg.AddScaled(out, 1, h.static)
	}
	if h.sigs == nil {
		return out
	}
	if h.conjOps == nil {
		for j, op := range h.operators {
			linalg.AddScaled(out, complex(h.sigs[j].Value(t), 0), op)
		}
		return out
	}
	// RWA sideband evaluation: s(t)H_j was split into the slow halves of
	// (c/2)A_j + (conj(c)/2)A_j^dag.
	for j, op := range h.operators {
		c := 0.5 * h.sigs[j].ComplexValue(t)
		linalg.AddScaled(out, c, op)
		linalg.AddScaled(out, cmplx.Conj(c), h.conjOps[j])
	}
	return out
}

// Evaluate returns the generator G(t) = -i H(t).
func (h *Hamiltonian) Evaluate(t float64) *mat.CDense {
	return linalg.Scale(-1i, h.EvaluateH(t))
}

// RHS evaluates -i H(t) y.
func (h *Hamiltonian) RHS(t float64, y []complex128) []complex128 {
	return linalg.MatVec(h.Evaluate(t), y)
}

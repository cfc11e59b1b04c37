package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/signals"
)

// Lindblad models the master equation
//
//	d rho/dt = -i[H(t), rho] + sum_j g_j(t) (L_j rho L_j^dag - 1/2 {L_j^dag L_j, rho})
//
// in vectorized (column-stacking) form, so the generator acts on vec(rho)
// and the state dimension is n^2. Dissipator coefficients default to the
// constant 1 when no dissipator signals are bound.
type Lindblad struct {
	ham *Hamiltonian

	// Vectorized superoperator pieces, precomputed at construction.
	staticDiss []*mat.CDense
	dissOps    []*mat.CDense
	dissSigs   signals.List

	hilbertDim int
}

// NewLindblad constructs a Lindblad model from an optional Hamiltonian
// part and dissipator operator lists. staticDissipators carry the fixed
// coefficient 1; dissipators take time-dependent coefficients.
func NewLindblad(ham *Hamiltonian, staticDissipators, dissipators []*mat.CDense) (*Lindblad, error) {
	if ham == nil && len(staticDissipators) == 0 && len(dissipators) == 0 {
		return nil, ErrEmptyModel
	}

	dim := 0
	if ham != nil {
		dim = ham.Dim()
	}
	for _, l := range append(append([]*mat.CDense{}, staticDissipators...), dissipators...) {
		r, c := l.Dims()
		if r != c {
			return nil, fmt.Errorf("%w: dissipator is %dx%d", ErrDimensionMismatch, r, c)
		}
		if dim == 0 {
			dim = r
		} else if r != dim {
			return nil, fmt.Errorf("%w: dissipator is %dx%d, expected %dx%d", ErrDimensionMismatch, r, c, dim, dim)
		}
	}

	lm := &Lindblad{ham: ham, hilbertDim: dim}
	for _, l := range staticDissipators {
		lm.staticDiss = append(lm.staticDiss, dissipatorSuperOp(l))
	}
	for _, l := range dissipators {
		lm.dissOps = append(lm.dissOps, dissipatorSuperOp(l))
	}
	return lm, nil
}

// dissipatorSuperOp builds the vectorized dissipator
// conj(L) (x) L - 1/2 (I (x) L^dag L + (L^dag L)^T (x) I).
func dissipatorSuperOp(l *mat.CDense) *mat.CDense {
	n, _ := l.Dims()
	id := linalg.Identity(n)
	ldagl := linalg.MatMul(linalg.Dagger(l), l)

	conjL := linalg.Dagger(linalg.Transpose(l)) // entrywise conjugate
	out := linalg.Kron(conjL, l)
	linalg.AddScaled(out, -0.5, linalg.Kron(id, ldagl))
	linalg.AddScaled(out, -0.5, linalg.Kron(linalg.Transpose(ldagl), id))
	return out
}

// hamiltonianSuperOp builds -i (I (x) H - H^T (x) I) for vec(rho).
func hamiltonianSuperOp(h *mat.CDense) *mat.CDense {
	n, _ := h.Dims()
	id := linalg.Identity(n)
	out := linalg.Sub(linalg.Kron(id, h), linalg.Kron(linalg.Transpose(h), id))
	return linalg.Scale(-1i, out)
}

// HilbertDim returns the underlying Hilbert space dimension n; the
// generator state dimension is n^2.
func (l *Lindblad) HilbertDim() int { return l.hilbertDim }

// Dim returns the vectorized state dimension n^2.
func (l *Lindblad) Dim() int { return l.hilbertDim * l.hilbertDim }

// NumDissipators returns the number of signal-driven dissipators.
func (l *Lindblad) NumDissipators() int { return len(l.dissOps) }

// SetSignals binds Hamiltonian coefficients; returns an error when the
// model has no Hamiltonian part but signals are given.
func (l *Lindblad) SetSignals(sigs signals.List) error {
	if l.ham == nil {
		if sigs != nil {
			return fmt.Errorf("%w: no hamiltonian operators", ErrSignalCount)
		}
		return nil
	}
	return l.ham.SetSignals(sigs)
}

// Signals returns the bound Hamiltonian coefficients.
func (l *Lindblad) Signals() signals.List {
	if l.ham == nil {
		return nil
	}
	return l.ham.Signals()
}

// SetDissipatorSignals binds coefficients to the signal-driven
// dissipators. A nil list restores the default constant 1 coefficients.
func (l *Lindblad) SetDissipatorSignals(sigs signals.List) error {
	if sigs != nil && len(sigs) != len(l.dissOps) {
		return fmt.Errorf("%w: %d signals for %d dissipators", ErrSignalCount, len(sigs), len(l.dissOps))
	}
	l.dissSigs = sigs
	return nil
}

// Evaluate returns the vectorized generator at time t.
func (l *Lindblad) Evaluate(t float64) *mat.CDense {
	out := linalg.Zeros(l.Dim())
	if l.ham != nil {
		linalg.AddScaled(out, 1, hamiltonianSuperOp(l.ham.EvaluateH(t)))
	}
	for _, d := range l.staticDiss {
		linalg.AddScaled(out, 1, d)
	}
	dissSigs := l.dissSigs
	if dissSigs == nil {
		dissSigs = signals.Ones(len(l.dissOps))
	}
	for j, d := range l.dissOps {
		linalg.AddScaled(out, complex(dissSigs[j].Value(t), 0), d)
	}
	return out
}

// RHS evaluates the generator applied to vec(rho).
func (l *Lindblad) RHS(t float64, y []complex128) []complex128 {
	return linalg.MatVec(l.Evaluate(t), y)
}

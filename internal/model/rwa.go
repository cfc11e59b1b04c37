package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
)

// RotatingWaveApproximation transforms a Hamiltonian model in a diagonal
// rotating frame by discarding matrix elements that oscillate faster than
// cutoffFreq (in cycles per unit time).
//
// An entry (i, j) of operator H_k modulated by a carrier nu_k oscillates at
// the sideband frequencies nu_k + d_ij and -nu_k + d_ij, with d_ij the frame
// frequency difference. Each operator is split into its kept sidebands: the
// returned model stores the plus-sideband half A_k and its dagger partner,
// and evaluates H(t) as sum_k (c_k(t)/2) A_k + h.c. with c_k the complex
// signal value. The static term is masked with nu = 0.
//
// carriers supplies the carrier frequency assumed for each operator. It must
// match the operator count; it is required because signals are bound per
// solve call and may be absent when the approximation is applied.
func RotatingWaveApproximation(h *Hamiltonian, frame *RotatingFrame, cutoffFreq float64, carriers []float64) (*Hamiltonian, error) {
	if h.conjOps != nil {
		return nil, fmt.Errorf("model: rotating wave approximation already applied")
	}
	if len(carriers) != len(h.operators) {
		return nil, fmt.Errorf("%w: %d carriers for %d operators", ErrCarrierCount, len(carriers), len(h.operators))
	}

	n := h.dim
	out := &Hamiltonian{dim: n}

	if h.static != nil {
		out.static = maskOperator(h.static, frame, 0, cutoffFreq)
	}

	if len(h.operators) == 0 {
		return out, nil
	}

	out.operators = make([]*mat.CDense, len(h.operators))
	out.conjOps = make([]*mat.CDense, len(h.operators))
	for k, op := range h.operators {
		plus := maskOperator(op, frame, carriers[k], cutoffFreq)
		out.operators[k] = plus
		out.conjOps[k] = linalg.Dagger(plus)
	}
	return out, nil
}

// maskOperator zeroes entries whose sideband frequency nu + d_ij exceeds
// the cutoff in magnitude.
func maskOperator(op *mat.CDense, frame *RotatingFrame, nu, cutoff float64) *mat.CDense {
	n, _ := op.Dims()
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(nu+frame.FreqDiff(i, j)) <= cutoff {
				out.Set(i, j, op.At(i, j))
			}
		}
	}
	return out
}

package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/signals"
)

// Generator represents a linear matrix differential equation in standard
// form, dy/dt = G(t)y. Signals are bound per solve call rather than fixed at
// construction.
type Generator interface {
	// Evaluate returns the generator matrix G(t).
	Evaluate(t float64) *mat.CDense

	// RHS evaluates G(t)y.
	RHS(t float64, y []complex128) []complex128

	// Dim returns the dimension of the state the generator acts on.
	Dim() int

	// SetSignals binds time-dependent coefficients to the model's
	// operators. A nil list clears the binding.
	SetSignals(sigs signals.List) error

	// Signals returns the currently bound coefficient list.
	Signals() signals.List
}

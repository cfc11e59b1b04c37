// Package ode provides numerical steppers for ordinary differential
// equations on complex state vectors, dy/dt = f(t, y).
package ode

// RHS is the right-hand side function of an ODE.
type RHS func(t float64, y []complex128) []complex128

// Stepper advances a state vector by a single fixed step.
type Stepper interface {
	Step(rhs RHS, t float64, y []complex128, dt float64) []complex128
}

// AdaptiveStepper additionally supports error-controlled stepping. It
// returns the new state, a suggested next step size, and an error estimate
// failure if any.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(rhs RHS, t float64, y []complex128, dt, tol float64) ([]complex128, float64, error)
}

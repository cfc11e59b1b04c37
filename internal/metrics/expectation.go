package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Expectation tracks the expectation value of a Hermitian operator. For a
// state vector it computes <y|A|y>; for a column-stacked density matrix of
// matching dimension it computes Tr(A rho).
type Expectation struct {
	name string
	op   *mat.CDense
	dim  int
	last float64
}

func NewExpectation(name string, op *mat.CDense) *Expectation {
	n, _ := op.Dims()
	return &Expectation{name: name, op: op, dim: n}
}

func (e *Expectation) Name() string {
	return e.name
}

func (e *Expectation) Observe(t float64, y []complex128) {
	switch len(y) {
	case e.dim:
		e.last = stateExpectation(e.op, y)
	case e.dim * e.dim:
		e.last = traceExpectation(e.op, y)
	default:
		e.last = math.NaN()
	}
}

func (e *Expectation) Value() float64 {
	return e.last
}

func (e *Expectation) Reset() {
	e.last = 0
}

// stateExpectation computes <y|A|y>, real for Hermitian A.
func stateExpectation(a *mat.CDense, y []complex128) float64 {
	n := len(y)
	var sum complex128
	for i := 0; i < n; i++ {
		var row complex128
		for j := 0; j < n; j++ {
			row += a.At(i, j) * y[j]
		}
		ci := complex(real(y[i]), -imag(y[i]))
		sum += ci * row
	}
	return real(sum)
}

// traceExpectation computes Tr(A rho) with rho column-stacked, so
// rho(i,j) = y[j*n+i].
func traceExpectation(a *mat.CDense, y []complex128) float64 {
	n, _ := a.Dims()
	var sum complex128
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * y[i*n+j]
		}
	}
	return real(sum)
}

package metrics

import (
	"fmt"
	"math"
)

// Population tracks the occupation of a single level: |y_k|^2 for a state
// vector, rho(k,k) for a column-stacked density matrix.
type Population struct {
	name  string
	level int
	dim   int
	last  float64
}

func NewPopulation(level, dim int) *Population {
	return &Population{
		name:  fmt.Sprintf("population_%d", level),
		level: level,
		dim:   dim,
	}
}

func (p *Population) Name() string {
	return p.name
}

func (p *Population) Observe(t float64, y []complex128) {
	switch len(y) {
	case p.dim:
		v := y[p.level]
		p.last = real(v)*real(v) + imag(v)*imag(v)
	case p.dim * p.dim:
		p.last = real(y[p.level*p.dim+p.level])
	default:
		p.last = math.NaN()
	}
}

func (p *Population) Value() float64 {
	return p.last
}

func (p *Population) Reset() {
	p.last = 0
}

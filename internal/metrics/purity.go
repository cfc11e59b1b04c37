package metrics

import "math"

// Purity tracks Tr(rho^2) of a column-stacked density matrix. A pure state
// gives 1, the maximally mixed state 1/n.
type Purity struct {
	dim  int
	last float64
}

func NewPurity(dim int) *Purity {
	return &Purity{dim: dim}
}

func (p *Purity) Name() string {
	return "purity"
}

func (p *Purity) Observe(t float64, y []complex128) {
	n := p.dim
	if len(y) != n*n {
		p.last = math.NaN()
		return
	}
	var sum complex128
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += y[j*n+i] * y[i*n+j]
		}
	}
	p.last = real(sum)
}

func (p *Purity) Value() float64 {
	return p.last
}

func (p *Purity) Reset() {
	p.last = 0
}

package metrics

import "math"

// NormDrift tracks the largest deviation of the state vector norm from 1,
// a cheap check that a closed-system integration stays unitary.
type NormDrift struct {
	max float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{}
}

func (d *NormDrift) Name() string {
	return "norm_drift"
}

func (d *NormDrift) Observe(t float64, y []complex128) {
	var sum float64
	for _, v := range y {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	if dev := math.Abs(math.Sqrt(sum) - 1); dev > d.max {
		d.max = dev
	}
}

func (d *NormDrift) Value() float64 {
	return d.max
}

func (d *NormDrift) Reset() {
	d.max = 0
}

// TraceDrift tracks the largest deviation of Tr(rho) from 1 for
// column-stacked density matrices, the open-system analogue of NormDrift.
type TraceDrift struct {
	dim int
	max float64
}

func NewTraceDrift(dim int) *TraceDrift {
	return &TraceDrift{dim: dim}
}

func (d *TraceDrift) Name() string {
	return "trace_drift"
}

func (d *TraceDrift) Observe(t float64, y []complex128) {
	n := d.dim
	if len(y) != n*n {
		d.max = math.NaN()
		return
	}
	var tr complex128
	for i := 0; i < n; i++ {
		tr += y[i*n+i]
	}
	dev := math.Hypot(real(tr)-1, imag(tr))
	if dev > d.max {
		d.max = dev
	}
}

func (d *TraceDrift) Value() float64 {
	return d.max
}

func (d *TraceDrift) Reset() {
	d.max = 0
}

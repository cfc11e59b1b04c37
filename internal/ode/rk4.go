package ode

type RK4 struct {
	scratch []complex128
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make([]complex128, n)
	}
}

func (r *RK4) Step(rhs RHS, t float64, y []complex128, dt float64) []complex128 {
	n := len(y)
	r.ensureScratch(n)
	h := complex(dt, 0)

	k1 := rhs(t, y)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*k1[i]
	}
	k2 := rhs(t+dt*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*k2[i]
	}
	k3 := rhs(t+dt*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*k3[i]
	}
	k4 := rhs(t+dt, r.scratch)

	result := make([]complex128, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}

package ode

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(rhs RHS, t float64, y []complex128, dt float64) []complex128 {
	dy := rhs(t, y)
	result := make([]complex128, len(y))
	for i := range y {
		result[i] = y[i] + complex(dt, 0)*dy[i]
	}
	return result
}

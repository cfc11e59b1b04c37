package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Expm computes the matrix exponential of a square complex matrix using
// scaling and squaring with a truncated Taylor series. Accuracy is adequate
// for the short propagation steps used by the exponential solver, where the
// scaled norm is kept near or below one.
func Expm(a *mat.CDense) *mat.CDense {
	n, _ := a.Dims()

	// Scale so the entrywise norm is <= 0.5, square back afterwards.
	norm := MaxAbs(a) * float64(n)
	s := 0
	if norm > 0.5 {
		s = int(math.Ceil(math.Log2(norm / 0.5)))
	}
	scaled := Scale(complex(1/math.Pow(2, float64(s)), 0), a)

	out := Identity(n)
	term := Identity(n)
	for k := 1; k <= 20; k++ {
		term = MatMul(term, scaled)
		term = Scale(complex(1/float64(k), 0), term)
		AddScaled(out, 1, term)
		if MaxAbs(term) < 1e-16 {
			break
		}
	}

	for i := 0; i < s; i++ {
		out = MatMul(out, out)
	}
	return out
}

package linalg

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Identity returns the n x n identity matrix.
func Identity(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Zeros returns an n x n zero matrix.
func Zeros(n int) *mat.CDense {
	return mat.NewCDense(n, n, nil)
}

// Clone returns a deep copy of a.
func Clone(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j))
		}
	}
	return out
}

// MatVec computes A*y for a square matrix and a state vector.
func MatVec(a *mat.CDense, y []complex128) []complex128 {
	r, c := a.Dims()
	out := make([]complex128, r)
	for i := 0; i < r; i++ {
		var sum complex128
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * y[j]
		}
		out[i] = sum
	}
	return out
}

// MatMul computes A*B.
func MatMul(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	_, bc := b.Dims()
	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Add computes A+B.
func Add(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return out
}

// Sub computes A-B.
func Sub(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)-b.At(i, j))
		}
	}
	return out
}

// Scale computes s*A.
func Scale(s complex128, a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, s*a.At(i, j))
		}
	}
	return out
}

// AddScaled accumulates s*B into A in place.
func AddScaled(a *mat.CDense, s complex128, b *mat.CDense) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a.Set(i, j, a.At(i, j)+s*b.At(i, j))
		}
	}
}

// Dagger returns the conjugate transpose of a.
func Dagger(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// Commutator computes [A,B] = AB - BA.
func Commutator(a, b *mat.CDense) *mat.CDense {
	return Sub(MatMul(a, b), MatMul(b, a))
}

// AntiCommutator computes {A,B} = AB + BA.
func AntiCommutator(a, b *mat.CDense) *mat.CDense {
	return Add(MatMul(a, b), MatMul(b, a))
}

// Kron computes the Kronecker product of A (m x n) and B (p x q).
func Kron(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			s := a.At(i, j)
			if s == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, s*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Transpose returns the (non-conjugate) transpose of a.
func Transpose(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, a.At(i, j))
		}
	}
	return out
}

// Trace returns the trace of a square matrix.
func Trace(a *mat.CDense) complex128 {
	n, _ := a.Dims()
	var tr complex128
	for i := 0; i < n; i++ {
		tr += a.At(i, i)
	}
	return tr
}

// IsHermitian reports whether a equals its conjugate transpose within tol.
func IsHermitian(a *mat.CDense, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			if cmplx.Abs(a.At(i, j)-cmplx.Conj(a.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

// IsDiagonal reports whether off-diagonal entries of a are below tol.
func IsDiagonal(a *mat.CDense, tol float64) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i != j && cmplx.Abs(a.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// MaxAbs returns the largest entrywise magnitude of a.
func MaxAbs(a *mat.CDense) float64 {
	r, c := a.Dims()
	maxAbs := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			maxAbs = math.Max(maxAbs, cmplx.Abs(a.At(i, j)))
		}
	}
	return maxAbs
}

// Norm2 returns the Euclidean norm of a state vector.
func Norm2(y []complex128) float64 {
	sum := 0.0
	for _, v := range y {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// CloneVec returns a copy of y.
func CloneVec(y []complex128) []complex128 {
	c := make([]complex128, len(y))
	copy(c, y)
	return c
}

// IsValidVec reports whether y is free of NaN and Inf entries.
func IsValidVec(y []complex128) bool {
	for _, v := range y {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Vec column-stacks a square matrix into a vector of length n*n.
func Vec(a *mat.CDense) []complex128 {
	n, _ := a.Dims()
	out := make([]complex128, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			out[j*n+i] = a.At(i, j)
		}
	}
	return out
}

// Unvec reverses Vec, reshaping a length n*n vector into an n x n matrix.
func Unvec(y []complex128) *mat.CDense {
	n := int(math.Round(math.Sqrt(float64(len(y)))))
	out := mat.NewCDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			out.Set(i, j, y[j*n+i])
		}
	}
	return out
}

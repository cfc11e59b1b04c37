package linalg

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func pauliX() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
}

func pauliY() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{0, -1i, 1i, 0})
}

func pauliZ() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
}

func matClose(t *testing.T, got, want *mat.CDense, tol float64) {
	t.Helper()
	r, c := got.Dims()
	wr, wc := want.Dims()
	if r != wr || c != wc {
		t.Fatalf("dimension mismatch: got %dx%d, want %dx%d", r, c, wr, wc)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if cmplx.Abs(got.At(i, j)-want.At(i, j)) > tol {
				t.Errorf("entry (%d,%d): got %v, want %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestCommutatorPauli(t *testing.T) {
	// [X, Y] = 2iZ
	got := Commutator(pauliX(), pauliY())
	want := Scale(2i, pauliZ())
	matClose(t, got, want, 1e-12)
}

func TestAntiCommutatorPauli(t *testing.T) {
	// {X, X} = 2I
	got := AntiCommutator(pauliX(), pauliX())
	want := Scale(2, Identity(2))
	matClose(t, got, want, 1e-12)
}

func TestDagger(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1 + 2i, 3, 0, -1i})
	d := Dagger(a)
	if d.At(0, 0) != 1-2i || d.At(1, 0) != 3 || d.At(0, 1) != 0 || d.At(1, 1) != 1i {
		t.Errorf("dagger incorrect: %v", d)
	}
}

func TestIsHermitian(t *testing.T) {
	if !IsHermitian(pauliY(), 1e-12) {
		t.Error("pauli Y should be Hermitian")
	}
	a := mat.NewCDense(2, 2, []complex128{0, 1i, 1i, 0})
	if IsHermitian(a, 1e-12) {
		t.Error("matrix should not be Hermitian")
	}
}

func TestKronDims(t *testing.T) {
	k := Kron(pauliX(), Identity(2))
	r, c := k.Dims()
	if r != 4 || c != 4 {
		t.Fatalf("expected 4x4, got %dx%d", r, c)
	}
	// X (x) I has 1s on anti-diagonal blocks
	if k.At(0, 2) != 1 || k.At(1, 3) != 1 || k.At(2, 0) != 1 || k.At(3, 1) != 1 {
		t.Errorf("kron structure wrong: %v", k)
	}
}

func TestExpmNilpotent(t *testing.T) {
	// exp([[0,1],[0,0]]) = [[1,1],[0,1]]
	a := mat.NewCDense(2, 2, []complex128{0, 1, 0, 0})
	got := Expm(a)
	want := mat.NewCDense(2, 2, []complex128{1, 1, 0, 1})
	matClose(t, got, want, 1e-12)
}

func TestExpmDiagonal(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1i * math.Pi, 0, 0, -2})
	got := Expm(a)
	want := mat.NewCDense(2, 2, []complex128{cmplx.Exp(1i * math.Pi), 0, 0, cmplx.Exp(-2)})
	matClose(t, got, want, 1e-10)
}

func TestExpmRotation(t *testing.T) {
	// exp(-i theta/2 X) = cos(theta/2) I - i sin(theta/2) X
	theta := 1.3
	a := Scale(complex(0, -theta/2), pauliX())
	got := Expm(a)
	want := Add(
		Scale(complex(math.Cos(theta/2), 0), Identity(2)),
		Scale(complex(0, -math.Sin(theta/2)), pauliX()),
	)
	matClose(t, got, want, 1e-10)
}

func TestVecUnvecRoundTrip(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1, 2i, 3, 4 - 1i})
	got := Unvec(Vec(a))
	matClose(t, got, a, 0)
}

func TestVecColumnStacking(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1, 2, 3, 4})
	v := Vec(a)
	want := []complex128{1, 3, 2, 4}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("vec[%d]: got %v, want %v", i, v[i], want[i])
		}
	}
}

func TestMatVec(t *testing.T) {
	y := MatVec(pauliX(), []complex128{1, 0})
	if y[0] != 0 || y[1] != 1 {
		t.Errorf("X|0> should be |1>, got %v", y)
	}
}

func TestNorm2(t *testing.T) {
	n := Norm2([]complex128{3, 4i})
	if math.Abs(n-5) > 1e-12 {
		t.Errorf("expected norm 5, got %f", n)
	}
}

func TestTrace(t *testing.T) {
	if Trace(pauliZ()) != 0 {
		t.Error("trace of Z should be 0")
	}
	if Trace(Identity(3)) != 3 {
		t.Error("trace of I3 should be 3")
	}
}

func TestIsValidVec(t *testing.T) {
	if !IsValidVec([]complex128{1, 2i}) {
		t.Error("finite vector reported invalid")
	}
	if IsValidVec([]complex128{complex(math.NaN(), 0)}) {
		t.Error("NaN vector reported valid")
	}
}

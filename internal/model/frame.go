package model

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/signals"
)

// RotatingFrame represents a diagonal rotating frame with frame operator
// F = -i H_frame, H_frame diagonal with real entries. A nil *RotatingFrame
// is the identity frame and is valid for all operations.
type RotatingFrame struct {
	// freqs holds the diagonal of H_frame in angular frequency units, so
	// F_ii = -i * freqs[i].
	freqs []float64
}

// NewRotatingFrame builds a frame from the diagonal of the frame
// Hamiltonian, in angular frequency units.
func NewRotatingFrame(hDiag []float64) *RotatingFrame {
	freqs := make([]float64, len(hDiag))
	copy(freqs, hDiag)
	return &RotatingFrame{freqs: freqs}
}

// NewRotatingFrameFromOperator builds a frame from a Hermitian diagonal
// matrix. Non-diagonal operators are rejected; diagonalization of general
// frame operators is not supported.
func NewRotatingFrameFromOperator(op *mat.CDense) (*RotatingFrame, error) {
	n, c := op.Dims()
	if n != c {
		return nil, fmt.Errorf("%w: frame operator is %dx%d", ErrDimensionMismatch, n, c)
	}
	if !linalg.IsDiagonal(op, hermitianTol) {
		return nil, ErrFrameNotDiagonal
	}
	if !linalg.IsHermitian(op, hermitianTol) {
		return nil, fmt.Errorf("%w: frame operator", ErrNotHermitian)
	}
	freqs := make([]float64, n)
	for i := 0; i < n; i++ {
		freqs[i] = real(op.At(i, i))
	}
	return &RotatingFrame{freqs: freqs}, nil
}

// Dim returns the frame dimension, or 0 for the identity frame.
func (f *RotatingFrame) Dim() int {
	if f == nil {
		return 0
	}
	return len(f.freqs)
}

// phase returns exp(-i * freqs[i] * t), the diagonal of exp(F t).
func (f *RotatingFrame) phase(i int, t float64) complex128 {
	return cmplx.Exp(complex(0, -f.freqs[i]*t))
}

// StateIntoFrame maps y into the rotating frame: exp(-F t) y.
func (f *RotatingFrame) StateIntoFrame(t float64, y []complex128) []complex128 {
	if f == nil {
		return linalg.CloneVec(y)
	}
	out := make([]complex128, len(y))
	for i := range y {
		out[i] = y[i] / f.phase(i, t)
	}
	return out
}

// StateOutOfFrame maps y out of the rotating frame: exp(F t) y.
func (f *RotatingFrame) StateOutOfFrame(t float64, y []complex128) []complex128 {
	if f == nil {
		return linalg.CloneVec(y)
	}
	out := make([]complex128, len(y))
	for i := range y {
		out[i] = y[i] * f.phase(i, t)
	}
	return out
}

// OperatorIntoFrame conjugates an operator into the frame:
// exp(-F t) A exp(F t).
func (f *RotatingFrame) OperatorIntoFrame(t float64, a *mat.CDense) *mat.CDense {
	if f == nil {
		return linalg.Clone(a)
	}
	n, _ := a.Dims()
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, a.At(i, j)*f.phase(j, t)/f.phase(i, t))
		}
	}
	return out
}

// OperatorOutOfFrame inverts OperatorIntoFrame:
// exp(F t) A exp(-F t).
func (f *RotatingFrame) OperatorOutOfFrame(t float64, a *mat.CDense) *mat.CDense {
	if f == nil {
		return linalg.Clone(a)
	}
	n, _ := a.Dims()
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, a.At(i, j)*f.phase(i, t)/f.phase(j, t))
		}
	}
	return out
}

// GeneratorIntoFrame maps a generator into the frame:
// exp(-F t) G(t) exp(F t) - F.
func (f *RotatingFrame) GeneratorIntoFrame(t float64, g *mat.CDense) *mat.CDense {
	out := f.OperatorIntoFrame(t, g)
	if f == nil {
		return out
	}
	for i := range f.freqs {
		out.Set(i, i, out.At(i, i)-complex(0, -f.freqs[i]))
	}
	return out
}

// FreqDiff returns the frame oscillation frequency of entry (i, j) in
// cycles per unit time: (h_i - h_j) / 2 pi.
func (f *RotatingFrame) FreqDiff(i, j int) float64 {
	if f == nil {
		return 0
	}
	return (f.freqs[i] - f.freqs[j]) / (2 * math.Pi)
}

// Vectorized returns the frame induced on column-stacked density matrices:
// rho -> exp(-Ft) rho exp(Ft) acts diagonally on vec(rho) with frequencies
// h_i - h_j at index (j, i).
func (f *RotatingFrame) Vectorized() *RotatingFrame {
	if f == nil {
		return nil
	}
	n := len(f.freqs)
	freqs := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			freqs[j*n+i] = f.freqs[i] - f.freqs[j]
		}
	}
	return &RotatingFrame{freqs: freqs}
}

// Framed wraps a generator so it is evaluated in the rotating frame. The
// wrapped generator's signals remain reachable through the Generator
// interface.
type Framed struct {
	Gen   Generator
	Frame *RotatingFrame
}

// InFrame returns gen evaluated in frame. A nil frame returns gen
// unchanged.
func InFrame(gen Generator, frame *RotatingFrame) Generator {
	if frame == nil {
		return gen
	}
	return &Framed{Gen: gen, Frame: frame}
}

func (fg *Framed) Evaluate(t float64) *mat.CDense {
	return fg.Frame.GeneratorIntoFrame(t, fg.Gen.Evaluate(t))
}

func (fg *Framed) RHS(t float64, y []complex128) []complex128 {
	return linalg.MatVec(fg.Evaluate(t), y)
}

func (fg *Framed) Dim() int { return fg.Gen.Dim() }

func (fg *Framed) SetSignals(sigs signals.List) error { return fg.Gen.SetSignals(sigs) }

func (fg *Framed) Signals() signals.List { return fg.Gen.Signals() }

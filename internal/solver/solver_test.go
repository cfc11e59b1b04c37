package solver_test

import (
	"context"
	"math"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/qs-lab/qdyn/internal/linalg"
	"github.com/qs-lab/qdyn/internal/model"
	"github.com/qs-lab/qdyn/internal/signals"
	"github.com/qs-lab/qdyn/internal/solver"
)

func sigmaX() *mat.CDense { return mat.NewCDense(2, 2, []complex128{0, 1, 1, 0}) }
func sigmaZ() *mat.CDense { return mat.NewCDense(2, 2, []complex128{1, 0, 0, -1}) }

func sigmaMinus() *mat.CDense { return mat.NewCDense(2, 2, []complex128{0, 1, 0, 0}) }

// population returns |<level|psi>|^2.
func population(y []complex128, level int) float64 {
	return real(y[level])*real(y[level]) + imag(y[level])*imag(y[level])
}

var _ = Describe("Solver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("construction", func() {
		It("rejects an empty configuration", func() {
			_, err := solver.New(solver.Config{})
			Expect(err).To(MatchError(solver.ErrNoModel))
		})

		It("rejects RWA on driven operators without carrier frequencies", func() {
			_, err := solver.New(solver.Config{
				HamiltonianOperators: []*mat.CDense{sigmaX()},
				RWACutoff:            1.0,
			})
			Expect(err).To(MatchError(solver.ErrRWAWithoutCarriers))
		})

		It("rejects non-Hermitian Hamiltonian terms", func() {
			_, err := solver.New(solver.Config{StaticHamiltonian: sigmaMinus()})
			Expect(err).To(MatchError(model.ErrNotHermitian))
		})
	})

	Describe("closed-system solve", func() {
		It("reproduces free evolution phases", func() {
			s, err := solver.New(solver.Config{StaticHamiltonian: sigmaZ()})
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Solve(ctx, [2]float64{0, 1.5}, []complex128{1, 0}, solver.SolveOptions{})
			Expect(err).NotTo(HaveOccurred())

			// |0> picks up exp(-i t) under H = sigma_z
			want := cmplx.Exp(complex(0, -1.5))
			Expect(cmplx.Abs(res.Final()[0] - want)).To(BeNumerically("<", 1e-6))
		})

		It("preserves the state norm", func() {
			s, err := solver.New(solver.Config{StaticHamiltonian: sigmaZ()})
			Expect(err).NotTo(HaveOccurred())

			y0 := []complex128{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)}
			res, err := s.Solve(ctx, [2]float64{0, 10}, y0, solver.SolveOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(linalg.Norm2(res.Final())).To(BeNumerically("~", 1.0, 1e-6))
		})

		It("drives a resonant Rabi pi pulse under the RWA", func() {
			nu := 5.0
			omega := 0.2
			frame := model.NewRotatingFrame([]float64{math.Pi * nu, -math.Pi * nu})

			s, err := solver.New(solver.Config{
				StaticHamiltonian:    linalg.Scale(complex(math.Pi*nu, 0), sigmaZ()),
				HamiltonianOperators: []*mat.CDense{sigmaX()},
				Frame:                frame,
				RWACutoff:            nu / 2,
				RWACarriers:          []float64{nu},
			})
			Expect(err).NotTo(HaveOccurred())

			// pi pulse: effective Hamiltonian (omega/2) sigma_x for t = pi/omega
			tPi := math.Pi / omega
			res, err := s.Solve(ctx, [2]float64{0, tPi}, []complex128{1, 0}, solver.SolveOptions{
				Signals: signals.List{signals.NewSinusoidal(complex(omega, 0), nu, 0)},
				Tol:     1e-10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(population(res.Final(), 1)).To(BeNumerically("~", 1.0, 1e-4))
		})

		It("does not leak signals between calls", func() {
			s, err := solver.New(solver.Config{
				StaticHamiltonian:    sigmaZ(),
				HamiltonianOperators: []*mat.CDense{sigmaX()},
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Solve(ctx, [2]float64{0, 1}, []complex128{1, 0}, solver.SolveOptions{
				Signals: signals.List{signals.Constant(5)},
			})
			Expect(err).NotTo(HaveOccurred())

			// second call without signals must match pure static evolution
			res, err := s.Solve(ctx, [2]float64{0, 1}, []complex128{1, 0}, solver.SolveOptions{})
			Expect(err).NotTo(HaveOccurred())
			want := cmplx.Exp(complex(0, -1))
			Expect(cmplx.Abs(res.Final()[0] - want)).To(BeNumerically("<", 1e-6))
		})

		It("rejects a signal list of the wrong length", func() {
			s, err := solver.New(solver.Config{
				StaticHamiltonian:    sigmaZ(),
				HamiltonianOperators: []*mat.CDense{sigmaX()},
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Solve(ctx, [2]float64{0, 1}, []complex128{1, 0}, solver.SolveOptions{
				Signals: signals.List{signals.Constant(1), signals.Constant(2)},
			})
			Expect(err).To(MatchError(model.ErrSignalCount))
		})
	})

	Describe("open-system solve", func() {
		It("decays the excited population exponentially", func() {
			gamma := 0.4
			l := linalg.Scale(complex(math.Sqrt(gamma), 0), sigmaMinus())

			s, err := solver.New(solver.Config{
				StaticHamiltonian: sigmaZ(),
				StaticDissipators: []*mat.CDense{l},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.OpenSystem()).To(BeTrue())

			rho0 := mat.NewCDense(2, 2, []complex128{0, 0, 0, 1})
			res, err := s.Solve(ctx, [2]float64{0, 2}, linalg.Vec(rho0), solver.SolveOptions{Tol: 1e-10})
			Expect(err).NotTo(HaveOccurred())

			rho := linalg.Unvec(res.Final())
			Expect(real(rho.At(1, 1))).To(BeNumerically("~", math.Exp(-gamma*2), 1e-6))
			Expect(cmplx.Abs(linalg.Trace(rho))).To(BeNumerically("~", 1.0, 1e-8))
		})

		It("scales dissipation with dissipator signals", func() {
			l := sigmaMinus()
			s, err := solver.New(solver.Config{
				StaticHamiltonian:   sigmaZ(),
				DissipatorOperators: []*mat.CDense{l},
			})
			Expect(err).NotTo(HaveOccurred())

			rho0 := mat.NewCDense(2, 2, []complex128{0, 0, 0, 1})
			rate := 0.7
			res, err := s.Solve(ctx, [2]float64{0, 1}, linalg.Vec(rho0), solver.SolveOptions{
				DissipatorSignals: signals.List{signals.Constant(rate)},
				Tol:               1e-10,
			})
			Expect(err).NotTo(HaveOccurred())

			rho := linalg.Unvec(res.Final())
			Expect(real(rho.At(1, 1))).To(BeNumerically("~", math.Exp(-rate), 1e-6))
		})
	})

	Describe("batch solve", func() {
		var s *solver.Solver

		BeforeEach(func() {
			var err error
			s, err = solver.New(solver.Config{StaticHamiltonian: sigmaZ()})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns one result per input in order", func() {
			spans := [][2]float64{{0, 1}, {0, 2}, {0, 3}}
			results, err := s.SolveBatch(context.Background(), solver.BatchOptions{
				Spans: spans,
				Y0s:   [][]complex128{{1, 0}},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))

			for i, span := range spans {
				want := cmplx.Exp(complex(0, -span[1]))
				Expect(cmplx.Abs(results[i].Final()[0] - want)).To(BeNumerically("<", 1e-6))
			}
		})

		It("broadcasts scalar inputs across the batch", func() {
			results, err := s.SolveBatch(context.Background(), solver.BatchOptions{
				Spans: [][2]float64{{0, 1}},
				Y0s:   [][]complex128{{1, 0}, {0, 1}},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})

		It("matches individual solves", func() {
			batch, err := s.SolveBatch(context.Background(), solver.BatchOptions{
				Spans: [][2]float64{{0, 1}, {0, 1}},
				Y0s:   [][]complex128{{1, 0}, {0, 1}},
			})
			Expect(err).NotTo(HaveOccurred())

			for i, y0 := range [][]complex128{{1, 0}, {0, 1}} {
				single, err := s.Solve(context.Background(), [2]float64{0, 1}, y0, solver.SolveOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(cmplx.Abs(batch[i].Final()[0] - single.Final()[0])).To(BeNumerically("<", 1e-12))
				Expect(cmplx.Abs(batch[i].Final()[1] - single.Final()[1])).To(BeNumerically("<", 1e-12))
			}
		})

		It("rejects mismatched list lengths", func() {
			_, err := s.SolveBatch(context.Background(), solver.BatchOptions{
				Spans: [][2]float64{{0, 1}, {0, 2}},
				Y0s:   [][]complex128{{1, 0}, {0, 1}, {1, 0}},
			})
			Expect(err).To(MatchError(solver.ErrBatchLength))
			Expect(err.Error()).To(ContainSubstring("y0"))
		})

		It("rejects an empty batch", func() {
			_, err := s.SolveBatch(context.Background(), solver.BatchOptions{})
			Expect(err).To(MatchError(solver.ErrEmptyBatch))
		})
	})
})

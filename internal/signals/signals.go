// Package signals provides time-dependent coefficient functions that drive
// Hamiltonian and dissipator terms. A signal is a complex envelope modulated
// by a carrier: value(t) = Re[env(t) * exp(i(2*pi*nu*t + phi))].
package signals

import (
	"math"
	"math/cmplx"
)

// Signal is a time-dependent coefficient with a carrier frequency.
type Signal interface {
	// Envelope returns the complex envelope at time t, before carrier
	// modulation.
	Envelope(t float64) complex128

	// Value returns the real signal value at time t.
	Value(t float64) float64

	// ComplexValue returns env(t) * exp(i(2*pi*nu*t + phi)).
	ComplexValue(t float64) complex128

	// Carrier returns the carrier frequency nu in cycles per unit time.
	Carrier() float64

	// Phase returns the carrier phase phi in radians.
	Phase() float64
}

func modulate(env complex128, nu, phi, t float64) complex128 {
	return env * cmplx.Exp(complex(0, 2*math.Pi*nu*t+phi))
}

// Constant is a signal with a fixed real value and no carrier.
type Constant float64

func (c Constant) Envelope(t float64) complex128     { return complex(float64(c), 0) }
func (c Constant) Value(t float64) float64           { return float64(c) }
func (c Constant) ComplexValue(t float64) complex128 { return complex(float64(c), 0) }
func (c Constant) Carrier() float64                  { return 0 }
func (c Constant) Phase() float64                    { return 0 }

// Sinusoidal is a constant-envelope signal with a carrier frequency and
// phase: value(t) = Re[amp * exp(i(2*pi*nu*t + phi))].
type Sinusoidal struct {
	Amp  complex128
	Freq float64
	Phi  float64
}

func NewSinusoidal(amp complex128, freq, phase float64) *Sinusoidal {
	return &Sinusoidal{Amp: amp, Freq: freq, Phi: phase}
}

func (s *Sinusoidal) Envelope(t float64) complex128 { return s.Amp }

func (s *Sinusoidal) ComplexValue(t float64) complex128 {
	return modulate(s.Amp, s.Freq, s.Phi, t)
}

func (s *Sinusoidal) Value(t float64) float64 { return real(s.ComplexValue(t)) }
func (s *Sinusoidal) Carrier() float64        { return s.Freq }
func (s *Sinusoidal) Phase() float64          { return s.Phi }

// Gaussian is a gaussian pulse envelope centered at T0 with width Sigma,
// modulated by a carrier.
type Gaussian struct {
	Amp   complex128
	T0    float64
	Sigma float64
	Freq  float64
	Phi   float64
}

func NewGaussian(amp complex128, t0, sigma, freq, phase float64) *Gaussian {
	return &Gaussian{Amp: amp, T0: t0, Sigma: sigma, Freq: freq, Phi: phase}
}

func (g *Gaussian) Envelope(t float64) complex128 {
	d := (t - g.T0) / g.Sigma
	return g.Amp * complex(math.Exp(-0.5*d*d), 0)
}

func (g *Gaussian) ComplexValue(t float64) complex128 {
	return modulate(g.Envelope(t), g.Freq, g.Phi, t)
}

func (g *Gaussian) Value(t float64) float64 { return real(g.ComplexValue(t)) }
func (g *Gaussian) Carrier() float64        { return g.Freq }
func (g *Gaussian) Phase() float64          { return g.Phi }

// Square is a flat pulse envelope active on [Start, Start+Duration),
// modulated by a carrier.
type Square struct {
	Amp      complex128
	Start    float64
	Duration float64
	Freq     float64
	Phi      float64
}

func NewSquare(amp complex128, start, duration, freq, phase float64) *Square {
	return &Square{Amp: amp, Start: start, Duration: duration, Freq: freq, Phi: phase}
}

func (s *Square) Envelope(t float64) complex128 {
	if t < s.Start || t >= s.Start+s.Duration {
		return 0
	}
	return s.Amp
}

func (s *Square) ComplexValue(t float64) complex128 {
	return modulate(s.Envelope(t), s.Freq, s.Phi, t)
}

func (s *Square) Value(t float64) float64 { return real(s.ComplexValue(t)) }
func (s *Square) Carrier() float64        { return s.Freq }
func (s *Square) Phase() float64          { return s.Phi }

// Discrete is a piecewise-constant envelope defined by equally spaced
// samples, modulated by a carrier. Outside the sampled window the envelope
// is zero.
type Discrete struct {
	Samples []complex128
	Dt      float64
	Start   float64
	Freq    float64
	Phi     float64
}

func NewDiscrete(samples []complex128, dt, start, freq, phase float64) *Discrete {
	return &Discrete{Samples: samples, Dt: dt, Start: start, Freq: freq, Phi: phase}
}

func (d *Discrete) Envelope(t float64) complex128 {
	idx := int(math.Floor((t - d.Start) / d.Dt))
	if idx < 0 || idx >= len(d.Samples) {
		return 0
	}
	return d.Samples[idx]
}

func (d *Discrete) ComplexValue(t float64) complex128 {
	return modulate(d.Envelope(t), d.Freq, d.Phi, t)
}

func (d *Discrete) Value(t float64) float64 { return real(d.ComplexValue(t)) }
func (d *Discrete) Carrier() float64        { return d.Freq }
func (d *Discrete) Phase() float64          { return d.Phi }

// List is an ordered collection of signals evaluated together, one per
// model operator.
type List []Signal

// Values evaluates every signal in the list at time t.
func (l List) Values(t float64) []float64 {
	out := make([]float64, len(l))
	for i, s := range l {
		out[i] = s.Value(t)
	}
	return out
}

// ComplexValues evaluates every signal's complex value at time t.
func (l List) ComplexValues(t float64) []complex128 {
	out := make([]complex128, len(l))
	for i, s := range l {
		out[i] = s.ComplexValue(t)
	}
	return out
}

// Carriers returns the carrier frequency of each member.
func (l List) Carriers() []float64 {
	out := make([]float64, len(l))
	for i, s := range l {
		out[i] = s.Carrier()
	}
	return out
}

// Ones returns a list of n constant unit signals, the default dissipator
// coefficients.
func Ones(n int) List {
	l := make(List, n)
	for i := range l {
		l[i] = Constant(1)
	}
	return l
}

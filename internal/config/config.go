// Package config loads and saves simulation run configurations. Complex
// numbers are written as [re, im] pairs; a bare scalar is read as a real
// value.
package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/qs-lab/qdyn/internal/model"
	"github.com/qs-lab/qdyn/internal/signals"
	"github.com/qs-lab/qdyn/internal/solver"
)

const (
	DefaultMethod   = "dp54"
	DefaultDuration = 10.0
	DefaultTol      = 1e-8
)

var (
	ErrBadComplex    = errors.New("config: complex entries are scalars or [re, im] pairs")
	ErrBadOperator   = errors.New("config: operators must be square matrices")
	ErrUnknownSignal = errors.New("config: unknown signal type")
	ErrNoInitial     = errors.New("config: no initial state")
)

type Complex struct {
	Re, Im float64
}

func (c *Complex) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var re float64
		if err := value.Decode(&re); err != nil {
			return err
		}
		c.Re, c.Im = re, 0
		return nil
	case yaml.SequenceNode:
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("%w: got %d components", ErrBadComplex, len(pair))
		}
		c.Re, c.Im = pair[0], pair[1]
		return nil
	default:
		return ErrBadComplex
	}
}

func (c Complex) MarshalYAML() (interface{}, error) {
	return []float64{c.Re, c.Im}, nil
}

func (c Complex) Value() complex128 {
	return complex(c.Re, c.Im)
}

// Operator is a complex matrix written row by row.
type Operator [][]Complex

// Matrix converts the rows into a dense matrix, rejecting ragged or
// non-square input.
func (o Operator) Matrix() (*mat.CDense, error) {
	n := len(o)
	if n == 0 {
		return nil, ErrBadOperator
	}
	data := make([]complex128, 0, n*n)
	for _, row := range o {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row of length %d in %dx%d matrix", ErrBadOperator, len(row), n, n)
		}
		for _, entry := range row {
			data = append(data, entry.Value())
		}
	}
	return mat.NewCDense(n, n, data), nil
}

// SignalConfig describes one signal. Type selects the shape; fields not
// used by that shape are ignored.
type SignalConfig struct {
	Type     string    `yaml:"type"`
	Amp      Complex   `yaml:"amp"`
	Freq     float64   `yaml:"freq"`
	Phase    float64   `yaml:"phase"`
	T0       float64   `yaml:"t0"`
	Sigma    float64   `yaml:"sigma"`
	Start    float64   `yaml:"start"`
	Duration float64   `yaml:"duration"`
	Dt       float64   `yaml:"dt"`
	Samples  []Complex `yaml:"samples"`
}

// Build constructs the signal described by the configuration.
func (sc SignalConfig) Build() (signals.Signal, error) {
	switch sc.Type {
	case "constant":
		return signals.Constant(sc.Amp.Re), nil
	case "sinusoidal":
		return signals.NewSinusoidal(sc.Amp.Value(), sc.Freq, sc.Phase), nil
	case "gaussian":
		return signals.NewGaussian(sc.Amp.Value(), sc.T0, sc.Sigma, sc.Freq, sc.Phase), nil
	case "square":
		return signals.NewSquare(sc.Amp.Value(), sc.Start, sc.Duration, sc.Freq, sc.Phase), nil
	case "discrete":
		samples := make([]complex128, len(sc.Samples))
		for i, s := range sc.Samples {
			samples[i] = s.Value()
		}
		return signals.NewDiscrete(samples, sc.Dt, sc.Start, sc.Freq, sc.Phase), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, sc.Type)
	}
}

type Config struct {
	Name string `yaml:"name"`

	StaticHamiltonian    Operator   `yaml:"static_hamiltonian"`
	HamiltonianOperators []Operator `yaml:"hamiltonian_operators"`
	StaticDissipators    []Operator `yaml:"static_dissipators"`
	DissipatorOperators  []Operator `yaml:"dissipator_operators"`

	// Frame holds the diagonal of the frame operator. Empty means the lab
	// frame.
	Frame       []float64 `yaml:"frame"`
	RWACutoff   float64   `yaml:"rwa_cutoff"`
	RWACarriers []float64 `yaml:"rwa_carriers"`

	Signals           []SignalConfig `yaml:"signals"`
	DissipatorSignals []SignalConfig `yaml:"dissipator_signals"`

	Y0     []Complex  `yaml:"y0"`
	TSpan  [2]float64 `yaml:"t_span"`
	TEval  []float64  `yaml:"t_eval"`
	Method string     `yaml:"method"`
	MaxDt  float64    `yaml:"max_dt"`
	Tol    float64    `yaml:"tol"`
}

func DefaultConfig() *Config {
	return &Config{
		Method: DefaultMethod,
		TSpan:  [2]float64{0, DefaultDuration},
		Tol:    DefaultTol,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSolver assembles the solver described by the model sections.
func (c *Config) BuildSolver() (*solver.Solver, error) {
	scfg := solver.Config{
		RWACutoff:   c.RWACutoff,
		RWACarriers: c.RWACarriers,
	}

	var err error
	if len(c.StaticHamiltonian) > 0 {
		if scfg.StaticHamiltonian, err = c.StaticHamiltonian.Matrix(); err != nil {
			return nil, err
		}
	}
	if scfg.HamiltonianOperators, err = buildOperators(c.HamiltonianOperators); err != nil {
		return nil, err
	}
	if scfg.StaticDissipators, err = buildOperators(c.StaticDissipators); err != nil {
		return nil, err
	}
	if scfg.DissipatorOperators, err = buildOperators(c.DissipatorOperators); err != nil {
		return nil, err
	}
	if len(c.Frame) > 0 {
		scfg.Frame = model.NewRotatingFrame(c.Frame)
	}
	return solver.New(scfg)
}

// BuildOptions assembles the per-call solve options, including signals.
func (c *Config) BuildOptions() (solver.SolveOptions, error) {
	opts := solver.SolveOptions{
		Method: c.Method,
		TEval:  c.TEval,
		MaxDt:  c.MaxDt,
		Tol:    c.Tol,
	}
	var err error
	if opts.Signals, err = buildSignals(c.Signals); err != nil {
		return solver.SolveOptions{}, err
	}
	if opts.DissipatorSignals, err = buildSignals(c.DissipatorSignals); err != nil {
		return solver.SolveOptions{}, err
	}
	return opts, nil
}

// InitialState returns the configured y0.
func (c *Config) InitialState() ([]complex128, error) {
	if len(c.Y0) == 0 {
		return nil, ErrNoInitial
	}
	y0 := make([]complex128, len(c.Y0))
	for i, v := range c.Y0 {
		y0[i] = v.Value()
	}
	return y0, nil
}

func buildOperators(ops []Operator) ([]*mat.CDense, error) {
	if len(ops) == 0 {
		return nil, nil
	}
	out := make([]*mat.CDense, len(ops))
	for i, op := range ops {
		m, err := op.Matrix()
		if err != nil {
			return nil, fmt.Errorf("operator %d: %w", i, err)
		}
		out[i] = m
	}
	return out, nil
}

func buildSignals(cfgs []SignalConfig) (signals.List, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	out := make(signals.List, len(cfgs))
	for i, sc := range cfgs {
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("signal %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

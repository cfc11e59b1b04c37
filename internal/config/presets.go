package config

import "sort"

// Presets are ready-to-run configurations for common two-level systems.
var Presets = map[string]*Config{
	"free_qubit": {
		Name: "free_qubit",
		StaticHamiltonian: Operator{
			{{Re: 1}, {}},
			{{}, {Re: -1}},
		},
		Y0:     []Complex{{Re: 0.7071067811865476}, {Re: 0.7071067811865476}},
		TSpan:  [2]float64{0, 10},
		Method: DefaultMethod,
		Tol:    DefaultTol,
	},
	"driven_qubit": {
		Name: "driven_qubit",
		StaticHamiltonian: Operator{
			{{Re: 15.70796326794897}, {}},
			{{}, {Re: -15.70796326794897}},
		},
		HamiltonianOperators: []Operator{
			{
				{{}, {Re: 1}},
				{{Re: 1}, {}},
			},
		},
		Frame:       []float64{15.70796326794897, -15.70796326794897},
		RWACutoff:   2.5,
		RWACarriers: []float64{5},
		Signals: []SignalConfig{
			{Type: "sinusoidal", Amp: Complex{Re: 0.2}, Freq: 5},
		},
		Y0:     []Complex{{Re: 1}, {}},
		TSpan:  [2]float64{0, 15.70796326794897},
		Method: DefaultMethod,
		Tol:    1e-10,
	},
	"decaying_qubit": {
		Name: "decaying_qubit",
		StaticHamiltonian: Operator{
			{{Re: 1}, {}},
			{{}, {Re: -1}},
		},
		StaticDissipators: []Operator{
			{
				{{}, {Re: 0.31622776601683794}},
				{{}, {}},
			},
		},
		Y0:     []Complex{{}, {}, {}, {Re: 1}},
		TSpan:  [2]float64{0, 20},
		Method: DefaultMethod,
		Tol:    1e-10,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package metrics provides observables tracked over a simulation: operator
// expectation values, level populations, purity and conservation drift.
//
// A Metric observes states one at a time and reports a scalar. States may be
// state vectors or column-stacked density matrices; each metric documents
// which representations it accepts.
package metrics

// Metric accumulates a scalar observable over recorded states.
type Metric interface {
	Name() string
	Observe(t float64, y []complex128)
	Value() float64
	Reset()
}

// Profile resets m, feeds it every recorded state in order and returns the
// metric value after each observation.
func Profile(m Metric, times []float64, states [][]complex128) []float64 {
	m.Reset()
	out := make([]float64, len(states))
	for i, y := range states {
		m.Observe(times[i], y)
		out[i] = m.Value()
	}
	return out
}

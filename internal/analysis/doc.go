// Package analysis provides spectral tools for observable time series.
//
// The typical use is identifying oscillation frequencies of an expectation
// value trajectory, e.g. the Rabi frequency of a driven qubit:
//
//	freqs, power := analysis.Spectrum(values, dt)
//	f := analysis.DominantFrequency(values, dt)
package analysis

package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series by radix-2
// decimation. Input not a power of two in length is zero padded.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	padded := make([]float64, n)
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// transform.
func PowerSpectrum(data []float64) []float64 {
	transformed := FFT(data)
	ps := make([]float64, len(transformed)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(transformed[i])
	}
	return ps
}

// Spectrum returns the positive frequencies in cycles per unit time and the
// corresponding power for a series sampled at interval dt.
func Spectrum(data []float64, dt float64) ([]float64, []float64) {
	power := PowerSpectrum(data)
	n := 2 * len(power)
	freqs := make([]float64, len(power))
	for i := range freqs {
		freqs[i] = float64(i) / (float64(n) * dt)
	}
	return freqs, power
}

// DominantFrequency returns the nonzero frequency with the largest power,
// with the series mean removed first so the DC component never wins.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 2 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	freqs, power := Spectrum(centered, dt)
	best := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	if best >= len(freqs) {
		return 0
	}
	return freqs[best]
}

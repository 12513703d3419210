// Package analysis provides frequency analysis of probe time series.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a real-valued
// sample sequence. Input is zero-padded to the next power of two.
func PowerSpectrum(samples []float64) []float64 {
	n := 1
	for n < len(samples) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, samples)

	spec := fft.FFTReal(padded)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the peak frequency of a sample sequence recorded
// over the given total duration in seconds, ignoring the zero-frequency bin.
// Returns 0 for sequences too short to analyze.
func DominantFrequency(samples []float64, totalDuration float64) float64 {
	if len(samples) < 4 || totalDuration <= 0 {
		return 0
	}
	ps := PowerSpectrum(samples)
	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	// bin width accounts for the zero padding inside PowerSpectrum
	padded := 2 * len(ps)
	return float64(maxIdx) * float64(len(samples)) / (float64(padded) * totalDuration)
}

package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumSine(t *testing.T) {
	// 64 samples of 4 full cycles: energy concentrates in bin 4
	n := 64
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(samples)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 4 {
		t.Errorf("expected peak at bin 4, got %d", peak)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("expected padding to 128 samples (64 bins), got %d bins", len(ps))
	}
}

func TestDominantFrequency(t *testing.T) {
	// 0.25 Hz sine sampled at 1 Hz for 128 s
	n := 128
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 0.25 * float64(i))
	}

	freq := DominantFrequency(samples, float64(n))
	if math.Abs(freq-0.25) > 0.02 {
		t.Errorf("expected ~0.25 hz, got %g", freq)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency([]float64{1, 2}, 10); f != 0 {
		t.Errorf("short input should yield 0, got %g", f)
	}
	if f := DominantFrequency(make([]float64, 16), 0); f != 0 {
		t.Errorf("zero duration should yield 0, got %g", f)
	}
}

package dsp

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

// Biquad implements a second-order IIR filter (no heap allocations in Process).
// Coefficients are held until replaced, so callers only redesign on parameter changes.
type Biquad struct {
	// Coefficients
	b0, b1, b2 float32
	a1, a2     float32

	// State (previous samples)
	x1, x2 float32 // input history
	y1, y2 float32 // output history
}

// SetCoefficients replaces the coefficient set and keeps the filter history.
func (b *Biquad) SetCoefficients(c biquad.Coefficients) {
	b.b0 = float32(c.B0)
	b.b1 = float32(c.B1)
	b.b2 = float32(c.B2)
	b.a1 = float32(c.A1)
	b.a2 = float32(c.A2)
}

// Coefficients returns the current (normalized) coefficient set.
func (b *Biquad) Coefficients() biquad.Coefficients {
	return biquad.Coefficients{
		B0: float64(b.b0),
		B1: float64(b.b1),
		B2: float64(b.b2),
		A1: float64(b.a1),
		A2: float64(b.a2),
	}
}

// Process processes one sample through the biquad filter
func (b *Biquad) Process(input float32) float32 {
	// Direct Form I implementation
	output := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = FlushDenormals(output)

	return output
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// BandpassCoefficients designs an RBJ constant-peak-gain bandpass section.
// freq must lie below Nyquist and q must be positive; callers clamp.
func BandpassCoefficients(freq, sampleRate, q float64) biquad.Coefficients {
	w0 := 2.0 * math.Pi * freq / sampleRate
	alpha := math.Sin(w0) / (2.0 * q)
	a0 := 1.0 + alpha
	return biquad.Coefficients{
		B0: alpha / a0,
		B1: 0,
		B2: -alpha / a0,
		A1: -2.0 * math.Cos(w0) / a0,
		A2: (1.0 - alpha) / a0,
	}
}

// LowpassCoefficients designs an RBJ lowpass section.
func LowpassCoefficients(cutoff, sampleRate, q float64) biquad.Coefficients {
	w0 := 2.0 * math.Pi * cutoff / sampleRate
	alpha := math.Sin(w0) / (2.0 * q)
	cosw0 := math.Cos(w0)
	a0 := 1.0 + alpha

	return biquad.Coefficients{
		B0: (1.0 - cosw0) / 2.0 / a0,
		B1: (1.0 - cosw0) / a0,
		B2: (1.0 - cosw0) / 2.0 / a0,
		A1: -2.0 * cosw0 / a0,
		A2: (1.0 - alpha) / a0,
	}
}

// FlushDenormals zeroes subnormal values.
func FlushDenormals(x float32) float32 {
	return float32(dspcore.FlushDenormals(float64(x)))
}

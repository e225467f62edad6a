package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// DefaultFFTSize is the frame length used by Compare and Describe.
const DefaultFFTSize = 4096

// Spectrum is a frame-averaged magnitude spectrum.
type Spectrum struct {
	SampleRate int
	BinHz      float64
	Mag        []float64 // bins 0..fftSize/2
}

// AverageSpectrum averages Hann-windowed magnitude spectra over frames of
// fftSize with 50% overlap. Signals shorter than one frame are zero-padded.
func AverageSpectrum(x []float64, sampleRate, fftSize int) (Spectrum, error) {
	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return Spectrum{}, fmt.Errorf("fft size must be a power of two >= 16, got %d", fftSize)
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("fft plan: %w", err)
	}

	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}
	buf := make([]float64, fftSize)
	bins := make([]complex128, fftSize/2+1)
	s := Spectrum{
		SampleRate: sampleRate,
		BinHz:      float64(sampleRate) / float64(fftSize),
		Mag:        make([]float64, fftSize/2+1),
	}

	hop := fftSize / 2
	frames := 0
	for pos := 0; pos == 0 || pos+fftSize <= len(x); pos += hop {
		clear(buf)
		for i := 0; i < fftSize && pos+i < len(x); i++ {
			buf[i] = x[pos+i] * hann[i]
		}
		plan.Forward(bins, buf)
		for k := range s.Mag {
			s.Mag[k] += cmplx.Abs(bins[k])
		}
		frames++
	}
	for k := range s.Mag {
		s.Mag[k] /= float64(frames)
	}
	return s, nil
}

// Centroid is the magnitude-weighted mean frequency, DC excluded.
func (s Spectrum) Centroid() float64 {
	var num, den float64
	for k := 1; k < len(s.Mag); k++ {
		num += float64(k) * s.BinHz * s.Mag[k]
		den += s.Mag[k]
	}
	if den <= 1e-12 {
		return 0
	}
	return num / den
}

// Rolloff is the frequency below which frac of the spectral energy lies.
func (s Spectrum) Rolloff(frac float64) float64 {
	var total float64
	for k := 1; k < len(s.Mag); k++ {
		total += s.Mag[k] * s.Mag[k]
	}
	if total <= 1e-24 {
		return 0
	}
	var acc float64
	for k := 1; k < len(s.Mag); k++ {
		acc += s.Mag[k] * s.Mag[k]
		if acc >= frac*total {
			return float64(k) * s.BinHz
		}
	}
	return float64(len(s.Mag)-1) * s.BinHz
}

// Flatness is the ratio of geometric to arithmetic mean power: near 1 for
// white noise, near 0 for a pure tone.
func (s Spectrum) Flatness() float64 {
	if len(s.Mag) < 3 {
		return 0
	}
	var logSum, sum float64
	n := 0
	for k := 1; k < len(s.Mag); k++ {
		p := max(s.Mag[k]*s.Mag[k], 1e-24)
		logSum += math.Log(p)
		sum += p
		n++
	}
	mean := sum / float64(n)
	if mean <= 1e-24 {
		return 0
	}
	return math.Exp(logSum/float64(n)) / mean
}

// PeakHz returns the strongest bin frequency within [loHz, hiHz].
func (s Spectrum) PeakHz(loHz, hiHz float64) float64 {
	best, bestK := -1.0, 0
	for k := 1; k < len(s.Mag); k++ {
		f := float64(k) * s.BinHz
		if f < loHz || f > hiHz {
			continue
		}
		if s.Mag[k] > best {
			best, bestK = s.Mag[k], k
		}
	}
	return float64(bestK) * s.BinHz
}

// Features summarizes a rendered sound.
type Features struct {
	DurationS  float64 `json:"duration_s"`
	RMS        float64 `json:"rms"`
	Peak       float64 `json:"peak"`
	AttackS    float64 `json:"attack_s"`
	CentroidHz float64 `json:"centroid_hz"`
	RolloffHz  float64 `json:"rolloff_hz"`
	Flatness   float64 `json:"flatness"`
	PeakHz     float64 `json:"peak_hz"`
}

// Describe measures level, attack time and spectral shape of x.
func Describe(x []float64, sampleRate int) (Features, error) {
	if sampleRate <= 0 {
		return Features{}, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	f := Features{
		DurationS: float64(len(x)) / float64(sampleRate),
		RMS:       rms1(x),
	}
	for _, v := range x {
		f.Peak = max(f.Peak, math.Abs(v))
	}

	env := rmsEnvelope(x, envFrame, envHop)
	if len(env) > 0 {
		peakIdx := 0
		for i, v := range env {
			if v > env[peakIdx] {
				peakIdx = i
			}
		}
		f.AttackS = float64(peakIdx*envHop) / float64(sampleRate)
	}

	s, err := AverageSpectrum(x, sampleRate, DefaultFFTSize)
	if err != nil {
		return Features{}, err
	}
	f.CentroidHz = s.Centroid()
	f.RolloffHz = s.Rolloff(0.85)
	f.Flatness = s.Flatness()
	f.PeakHz = s.PeakHz(20, 0.5*float64(sampleRate))
	return f, nil
}

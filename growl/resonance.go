package growl

import "github.com/cwbudde/algo-growl/dsp"

const (
	NumFormants = 5

	MinFormantFreq = 50
	MaxFormantFreq = 10000
	MinFormantQ    = 1
	MaxFormantQ    = 20

	// maxFormantRatio keeps the design frequency below Nyquist at low sample rates.
	maxFormantRatio = 0.45
)

var (
	defaultFormantFreqs = [NumFormants]float32{200, 440, 800, 1500, 2500}
	defaultFormantQs    = [NumFormants]float32{8, 8, 6, 5, 4}
)

// FormantBand is one bandpass resonator. Its filter state is only touched
// by its own recursion.
type FormantBand struct {
	Frequency float32
	Q         float32
	filter    dsp.Biquad
}

func (b *FormantBand) design(sampleRate float32) {
	f := b.Frequency
	if limit := maxFormantRatio * sampleRate; f > limit {
		f = limit
	}
	b.filter.SetCoefficients(dsp.BandpassCoefficients(float64(f), float64(sampleRate), float64(b.Q)))
}

// ResonanceSystem is a parallel bank of five formant filters blended by a
// chest/throat split. The output is not clamped.
type ResonanceSystem struct {
	sampleRate float32
	chest      float32
	throat     float32
	bands      [NumFormants]FormantBand
}

// NewResonanceSystem uses the default lion-like formants, chest 0.6 and throat 0.4.
func NewResonanceSystem(sampleRate float32) *ResonanceSystem {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	r := &ResonanceSystem{
		sampleRate: sampleRate,
		chest:      0.6,
		throat:     0.4,
	}
	for i := range r.bands {
		r.bands[i].Frequency = defaultFormantFreqs[i]
		r.bands[i].Q = defaultFormantQs[i]
		r.bands[i].design(sampleRate)
	}
	return r
}

// SetSampleRate redesigns every band for the new rate.
func (r *ResonanceSystem) SetSampleRate(sampleRate float32) {
	if sampleRate <= 0 || sampleRate == r.sampleRate {
		return
	}
	r.sampleRate = sampleRate
	for i := range r.bands {
		r.bands[i].design(sampleRate)
	}
}

func (r *ResonanceSystem) SetChestResonance(mix float32) {
	r.chest = clampf(mix, 0, 1)
}

func (r *ResonanceSystem) SetThroatConstriction(c float32) {
	r.throat = clampf(c, 0, 1)
}

func (r *ResonanceSystem) ChestResonance() float32     { return r.chest }
func (r *ResonanceSystem) ThroatConstriction() float32 { return r.throat }

// SetFormantFrequency clamps to [50, 10000] Hz; an invalid index is ignored.
func (r *ResonanceSystem) SetFormantFrequency(index int, freq float32) {
	if index < 0 || index >= NumFormants {
		return
	}
	f := clampf(freq, MinFormantFreq, MaxFormantFreq)
	b := &r.bands[index]
	if f == b.Frequency {
		return
	}
	b.Frequency = f
	b.design(r.sampleRate)
}

// SetFormantQ clamps to [1, 20]; an invalid index is ignored.
func (r *ResonanceSystem) SetFormantQ(index int, q float32) {
	if index < 0 || index >= NumFormants {
		return
	}
	q = clampf(q, MinFormantQ, MaxFormantQ)
	b := &r.bands[index]
	if q == b.Q {
		return
	}
	b.Q = q
	b.design(r.sampleRate)
}

// Band returns a copy of band i, or the zero band for an invalid index.
func (r *ResonanceSystem) Band(index int) FormantBand {
	if index < 0 || index >= NumFormants {
		return FormantBand{}
	}
	return r.bands[index]
}

// Process filters one sample through all bands.
func (r *ResonanceSystem) Process(x float32) float32 {
	var sum float32
	for i := range r.bands {
		sum += r.bands[i].filter.Process(x)
	}
	avg := sum / NumFormants
	chest := avg * r.chest
	throat := avg * (1 - r.chest) * (1 + 0.5*r.throat)
	return chest + throat
}

// ProcessBlock filters src into dst; they may alias.
func (r *ResonanceSystem) ProcessBlock(dst, src []float32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = r.Process(src[i])
	}
}

// Reset clears filter memory; frequencies and Qs are kept.
func (r *ResonanceSystem) Reset() {
	for i := range r.bands {
		r.bands[i].filter.Reset()
	}
}

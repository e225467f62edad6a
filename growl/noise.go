package growl

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-growl/dsp"
)

// NoiseKind selects the colored-noise algorithm.
type NoiseKind int

const (
	NoiseWhite NoiseKind = iota
	NoisePink
	NoiseBrown
	NoiseBandpass
	NoisePinkMixed
	NoiseCustomMix
)

var noiseKindNames = [...]string{"White", "Pink", "Brown", "Bandpass", "PinkMixed", "CustomMix"}

func (k NoiseKind) String() string {
	if k < 0 || int(k) >= len(noiseKindNames) {
		return fmt.Sprintf("NoiseKind(%d)", int(k))
	}
	return noiseKindNames[k]
}

// ParseNoiseKind resolves a noise kind by name (case-insensitive).
func ParseNoiseKind(name string) (NoiseKind, error) {
	for i, n := range noiseKindNames {
		if strings.EqualFold(n, name) {
			return NoiseKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown noise kind %q", name)
}

// Seed offsets for the generators that need their own random stream.
const (
	pinkSeedOffset     uint32 = 0x9E3779B9
	brownSeedOffset    uint32 = 0x85EBCA6B
	bandpassSeedOffset uint32 = 0xC2B2AE35
)

type noiseSource interface {
	next() float32
}

type whiteNoise struct {
	rng dsp.XorShift32
}

func (w *whiteNoise) next() float32 { return w.rng.Bipolar() }

func (w *whiteNoise) reset() { w.rng.Reset() }

const pinkRegisters = 5

// pinkNoise is a Voss-McCartney approximation: register k is refreshed
// every 2^(k+1) samples, chosen by the trailing zeros of the counter.
type pinkNoise struct {
	rng     dsp.XorShift32
	reg     [pinkRegisters]float32
	counter uint32
}

func (p *pinkNoise) next() float32 {
	p.counter++
	k := bits.TrailingZeros32(p.counter)
	if k < pinkRegisters {
		p.reg[k] = 0.5*p.reg[k] + 0.5*p.rng.Bipolar()
	}
	sum := p.reg[0] + p.reg[1] + p.reg[2] + p.reg[3] + p.reg[4]
	return sum / pinkRegisters
}

func (p *pinkNoise) reset() {
	p.rng.Reset()
	p.reg = [pinkRegisters]float32{}
	p.counter = 0
}

type brownNoise struct {
	rng  dsp.XorShift32
	last float32
}

func (b *brownNoise) next() float32 {
	b.last = clampf((b.last+0.02*b.rng.Bipolar())/1.02, -1, 1)
	return b.last
}

func (b *brownNoise) reset() {
	b.rng.Reset()
	b.last = 0
}

// bandpassNoise runs white noise through y = 0.5x - 0.5x[n-2] + 0.95y[n-1].
type bandpassNoise struct {
	rng     dsp.XorShift32
	section biquad.Section
}

var bandpassNoiseCoefficients = biquad.Coefficients{B0: 0.5, B2: -0.5, A1: -0.95}

func (b *bandpassNoise) next() float32 {
	y := b.section.ProcessSample(float64(b.rng.Bipolar()))
	return clampf(float32(y), -1, 1)
}

func (b *bandpassNoise) reset() {
	b.rng.Reset()
	b.section.Reset()
}

type pinkMixedNoise struct {
	pink  *pinkNoise
	white *whiteNoise
}

func (m pinkMixedNoise) next() float32 {
	return m.pink.next()*0.7 + m.white.next()*0.3
}

type customMixNoise struct {
	white *whiteNoise
	pink  *pinkNoise
	brown *brownNoise
}

func (m customMixNoise) next() float32 {
	return m.white.next()*0.5 + m.pink.next()*0.3 + m.brown.next()*0.2
}

// NoiseGenerator produces one colored-noise sample per call. All base
// generators are owned by the instance and are reseeded by Reset.
type NoiseGenerator struct {
	kind   NoiseKind
	source noiseSource

	white    whiteNoise
	pink     pinkNoise
	brown    brownNoise
	bandpass bandpassNoise

	sources [len(noiseKindNames)]noiseSource
}

// NewNoiseGenerator returns a white-noise generator with the default seed.
func NewNoiseGenerator() *NoiseGenerator {
	return NewNoiseGeneratorWithSeed(dsp.DefaultSeed)
}

// NewNoiseGeneratorWithSeed derives every internal stream from seed, so
// generators with different seeds are decorrelated.
func NewNoiseGeneratorWithSeed(seed uint32) *NoiseGenerator {
	g := &NoiseGenerator{}
	g.white.rng = dsp.NewXorShift32(seed)
	g.pink.rng = dsp.NewXorShift32(seed ^ pinkSeedOffset)
	g.brown.rng = dsp.NewXorShift32(seed ^ brownSeedOffset)
	g.bandpass.rng = dsp.NewXorShift32(seed ^ bandpassSeedOffset)
	g.bandpass.section = *biquad.NewSection(bandpassNoiseCoefficients)

	g.sources = [...]noiseSource{
		NoiseWhite:     &g.white,
		NoisePink:      &g.pink,
		NoiseBrown:     &g.brown,
		NoiseBandpass:  &g.bandpass,
		NoisePinkMixed: pinkMixedNoise{pink: &g.pink, white: &g.white},
		NoiseCustomMix: customMixNoise{white: &g.white, pink: &g.pink, brown: &g.brown},
	}
	g.SetType(NoiseWhite)
	return g
}

// SetType switches the algorithm; generator state is kept.
func (g *NoiseGenerator) SetType(kind NoiseKind) {
	if kind < 0 || int(kind) >= len(g.sources) {
		kind = NoiseWhite
	}
	g.kind = kind
	g.source = g.sources[kind]
}

func (g *NoiseGenerator) Type() NoiseKind { return g.kind }

// Process returns the next sample.
func (g *NoiseGenerator) Process() float32 {
	return g.source.next()
}

// ProcessBlock fills out with consecutive samples.
func (g *NoiseGenerator) ProcessBlock(out []float32) {
	src := g.source
	for i := range out {
		out[i] = src.next()
	}
}

// Reset restores the seeds and clears all registers.
func (g *NoiseGenerator) Reset() {
	g.white.reset()
	g.pink.reset()
	g.brown.reset()
	g.bandpass.reset()
}

package growl

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// OscillatorKind selects the periodic waveform algorithm.
type OscillatorKind int

const (
	OscillatorDPW OscillatorKind = iota
	OscillatorPolyBLEP
	OscillatorWavetable
	OscillatorDetuned
)

var oscillatorKindNames = [...]string{"DPW", "PolyBLEP", "Wavetable", "Detuned"}

func (k OscillatorKind) String() string {
	if k < 0 || int(k) >= len(oscillatorKindNames) {
		return fmt.Sprintf("OscillatorKind(%d)", int(k))
	}
	return oscillatorKindNames[k]
}

// ParseOscillatorKind resolves an oscillator kind by name (case-insensitive).
func ParseOscillatorKind(name string) (OscillatorKind, error) {
	for i, n := range oscillatorKindNames {
		if strings.EqualFold(n, name) {
			return OscillatorKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown oscillator kind %q", name)
}

const (
	MinOscillatorFreq   = 20
	MaxOscillatorFreq   = 20000
	MaxDetuneCents      = 100
	MaxOscillatorVoices = 16

	defaultSampleRate = 48000
	wavetableSize     = 2048
	polyBLEPWidth     = 0.1
	detunePhaseStep   = 0.01
)

// wavetable holds one cycle of partials 1..4 (1, .5, .25, .125) normalized
// by their amplitude sum, plus one guard sample for interpolation.
var wavetable = buildWavetable()

func buildWavetable() [wavetableSize + 1]float32 {
	var t [wavetableSize + 1]float32
	for i := 0; i <= wavetableSize; i++ {
		w := 2 * math32.Pi * float32(i) / wavetableSize
		v := math32.Sin(w) + 0.5*math32.Sin(2*w) + 0.25*math32.Sin(3*w) + 0.125*math32.Sin(4*w)
		t[i] = v / 1.875
	}
	return t
}

type oscillatorFunc func(o *OscillatorBank) float32

var oscillatorFuncs = [...]oscillatorFunc{
	OscillatorDPW:       (*OscillatorBank).processDPW,
	OscillatorPolyBLEP:  (*OscillatorBank).processPolyBLEP,
	OscillatorWavetable: (*OscillatorBank).processWavetable,
	OscillatorDetuned:   (*OscillatorBank).processDetuned,
}

// OscillatorBank is a phase-accumulator oscillator with selectable algorithm.
type OscillatorBank struct {
	kind       OscillatorKind
	fn         oscillatorFunc
	sampleRate float32
	frequency  float32
	detune     float32
	numVoices  int

	phase float32
	inc   float32

	// DPW differentiator memory.
	dpwLast   float64
	dpwPrimed bool

	// Detuned bank: per-voice phase and increment.
	voicePhase [MaxOscillatorVoices]float32
	voiceInc   [MaxOscillatorVoices]float32
}

// NewOscillatorBank returns a 440 Hz DPW oscillator with four detune voices.
func NewOscillatorBank(sampleRate float32) *OscillatorBank {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	o := &OscillatorBank{
		sampleRate: sampleRate,
		frequency:  440,
		numVoices:  4,
	}
	o.SetType(OscillatorDPW)
	o.updateIncrements()
	return o
}

func (o *OscillatorBank) SetType(kind OscillatorKind) {
	if kind < 0 || int(kind) >= len(oscillatorFuncs) {
		kind = OscillatorDPW
	}
	o.kind = kind
	o.fn = oscillatorFuncs[kind]
}

func (o *OscillatorBank) Type() OscillatorKind { return o.kind }

// SetSampleRate changes the rate used for phase increments.
func (o *OscillatorBank) SetSampleRate(sampleRate float32) {
	if sampleRate <= 0 {
		return
	}
	o.sampleRate = sampleRate
	o.updateIncrements()
}

// SetFrequency clamps to [20, 20000] Hz.
func (o *OscillatorBank) SetFrequency(freq float32) {
	f := clampf(freq, MinOscillatorFreq, MaxOscillatorFreq)
	if f == o.frequency {
		return
	}
	o.frequency = f
	o.updateIncrements()
}

func (o *OscillatorBank) Frequency() float32 { return o.frequency }

// SetDetune clamps to ±100 cents.
func (o *OscillatorBank) SetDetune(cents float32) {
	d := clampf(cents, -MaxDetuneCents, MaxDetuneCents)
	if d == o.detune {
		return
	}
	o.detune = d
	o.updateIncrements()
}

// SetNumVoices clamps to [1, 16].
func (o *OscillatorBank) SetNumVoices(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxOscillatorVoices {
		n = MaxOscillatorVoices
	}
	if n == o.numVoices {
		return
	}
	o.numVoices = n
	o.updateIncrements()
}

func (o *OscillatorBank) NumVoices() int { return o.numVoices }

// Phase returns the main accumulator, always in [0, 1).
func (o *OscillatorBank) Phase() float32 { return o.phase }

func (o *OscillatorBank) updateIncrements() {
	o.inc = o.frequency / o.sampleRate
	half := float32(o.numVoices) * 0.5
	for i := 0; i < o.numVoices; i++ {
		cents := (float32(i) - half) * o.detune
		if cents == 0 {
			o.voiceInc[i] = o.inc
			continue
		}
		o.voiceInc[i] = o.inc * centsToRatio(cents)
	}
}

// Process returns one sample and advances the phase.
func (o *OscillatorBank) Process() float32 {
	return o.fn(o)
}

func (o *OscillatorBank) ProcessBlock(out []float32) {
	fn := o.fn
	for i := range out {
		out[i] = fn(o)
	}
}

// Reset zeroes phase only; type, frequency and detune are kept.
func (o *OscillatorBank) Reset() {
	o.phase = 0
	o.dpwLast = 0
	o.dpwPrimed = false
	o.voicePhase = [MaxOscillatorVoices]float32{}
}

func wrapPhase(p float32) float32 {
	if p >= 1 {
		p -= math32.Floor(p)
	}
	return p
}

func (o *OscillatorBank) advance() {
	o.phase = wrapPhase(o.phase + o.inc)
}

// processDPW differentiates the parabola saw² and rescales by 1/(4·Δφ),
// which recovers a saw with far less aliasing than the naive one. Away from
// the wrap the output is the saw half a sample late (saw - Δφ); the
// differences telescope over each cycle, so the mean stays zero.
func (o *OscillatorBank) processDPW() float32 {
	saw := 2*float64(o.phase) - 1
	p := saw * saw
	if !o.dpwPrimed {
		prev := saw - 2*float64(o.inc)
		o.dpwLast = prev * prev
		o.dpwPrimed = true
	}
	out := (p - o.dpwLast) / (4 * float64(o.inc))
	o.dpwLast = p
	o.advance()
	return clampf(float32(out), -1, 1)
}

func (o *OscillatorBank) processPolyBLEP() float32 {
	saw := 2*o.phase - 1
	if o.phase < polyBLEPWidth {
		x := o.phase / polyBLEPWidth
		saw += polyBLEPWidth * x * x * (3 - 2*x)
	}
	o.advance()
	return saw
}

func (o *OscillatorBank) processWavetable() float32 {
	pos := o.phase * wavetableSize
	i := int(pos)
	if i >= wavetableSize {
		i = wavetableSize - 1
	}
	frac := pos - float32(i)
	out := wavetable[i] + frac*(wavetable[i+1]-wavetable[i])
	o.advance()
	return out
}

func (o *OscillatorBank) processDetuned() float32 {
	var sum float32
	for i := 0; i < o.numVoices; i++ {
		t := wrapPhase(o.voicePhase[i] + float32(i)*detunePhaseStep)
		sum += 2*t - 1
		o.voicePhase[i] = wrapPhase(o.voicePhase[i] + o.voiceInc[i])
	}
	o.advance()
	return sum / float32(o.numVoices)
}

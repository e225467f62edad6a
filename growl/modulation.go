package growl

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/cwbudde/algo-growl/dsp"
)

const (
	NumLFOs = 4

	MinLFORate = 0.01
	MaxLFORate = 100

	EnvelopeAttack  = 0.01
	EnvelopeDecay   = 0.1
	EnvelopeSustain = 0.7
	EnvelopeRelease = 0.2
)

// LFOWaveform selects an LFO shape.
type LFOWaveform int

const (
	LFOSine LFOWaveform = iota
	LFOTriangle
	LFOSawUp
	LFOSawDown
	LFOSquare
	LFOSampleHold
	LFONoise
)

var lfoWaveformNames = [...]string{"Sine", "Triangle", "SawUp", "SawDown", "Square", "SampleHold", "Noise"}

func (w LFOWaveform) String() string {
	if w < 0 || int(w) >= len(lfoWaveformNames) {
		return fmt.Sprintf("LFOWaveform(%d)", int(w))
	}
	return lfoWaveformNames[w]
}

// ParseLFOWaveform resolves a waveform by name (case-insensitive).
func ParseLFOWaveform(name string) (LFOWaveform, error) {
	for i, n := range lfoWaveformNames {
		if strings.EqualFold(n, name) {
			return LFOWaveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lfo waveform %q", name)
}

// LFO is a block-rate low frequency oscillator. Output is bipolar, scaled by Depth.
type LFO struct {
	Rate     float32
	Waveform LFOWaveform
	Depth    float32

	phase  float32
	output float32
	held   float32
	rng    dsp.XorShift32
}

func (l LFO) Phase() float32  { return l.phase }
func (l LFO) Output() float32 { return l.output }

func (l *LFO) advance(inc float32) {
	next := l.phase + inc
	wrapped := next >= 1
	l.phase = wrapPhase(next)

	var v float32
	switch l.Waveform {
	case LFOTriangle:
		v = 1 - 4*math32.Abs(l.phase-0.5)
	case LFOSawUp:
		v = 2*l.phase - 1
	case LFOSawDown:
		v = 1 - 2*l.phase
	case LFOSquare:
		v = 1
		if l.phase >= 0.5 {
			v = -1
		}
	case LFOSampleHold:
		if wrapped {
			l.held = l.rng.Bipolar()
		}
		v = l.held
	case LFONoise:
		v = l.rng.Bipolar()
	default:
		v = math32.Sin(2 * math32.Pi * l.phase)
	}
	l.output = v * l.Depth
}

func (l *LFO) reset() {
	l.phase = 0
	l.output = 0
	l.held = 0
	l.rng.Reset()
}

// EnvelopeStage is the state of the shared amplitude envelope.
type EnvelopeStage int

const (
	StageAttack EnvelopeStage = iota
	StageDecay
	StageSustain
	StageRelease
	StageIdle
)

var envelopeStageNames = [...]string{"Attack", "Decay", "Sustain", "Release", "Idle"}

func (s EnvelopeStage) String() string {
	if s < 0 || int(s) >= len(envelopeStageNames) {
		return fmt.Sprintf("EnvelopeStage(%d)", int(s))
	}
	return envelopeStageNames[s]
}

// Envelope is a block-rate ADSR with fixed timing. Level stays in [0, 1].
type Envelope struct {
	stage EnvelopeStage
	level float32
}

func (e *Envelope) Stage() EnvelopeStage { return e.stage }
func (e *Envelope) Level() float32       { return e.level }

// Gated reports whether a note is holding the envelope open.
func (e *Envelope) Gated() bool {
	return e.stage == StageAttack || e.stage == StageDecay || e.stage == StageSustain
}

func (e *Envelope) noteOn()  { e.stage = StageAttack }
func (e *Envelope) noteOff() { e.stage = StageRelease }

func (e *Envelope) advance(seconds float32) {
	switch e.stage {
	case StageAttack:
		e.level += seconds / EnvelopeAttack
		if e.level >= 1 {
			e.level = 1
			e.stage = StageDecay
		}
	case StageDecay:
		e.level -= seconds / EnvelopeDecay * (1 - EnvelopeSustain)
		if e.level <= EnvelopeSustain {
			e.level = EnvelopeSustain
			e.stage = StageSustain
		}
	case StageSustain:
		e.level = EnvelopeSustain
	case StageRelease:
		e.level -= seconds / EnvelopeRelease * EnvelopeSustain
		if e.level <= 0 {
			e.level = 0
			e.stage = StageIdle
		}
	default:
		e.level = 0
	}
	e.level = clampf(e.level, 0, 1)
}

// ModulationSystem holds four LFOs and one envelope shared by every voice.
// It advances once per block.
type ModulationSystem struct {
	sampleRate float32
	blockSize  int
	lfos       [NumLFOs]LFO
	env        Envelope
}

func NewModulationSystem() *ModulationSystem {
	m := &ModulationSystem{sampleRate: defaultSampleRate}
	for i := range m.lfos {
		m.lfos[i] = LFO{Rate: 1, Depth: 0.5, rng: dsp.NewXorShift32(dsp.DefaultSeed + uint32(i)*0x2545F491)}
	}
	m.env.stage = StageIdle
	return m
}

// Prepare fixes the sample rate and nominal block size.
func (m *ModulationSystem) Prepare(sampleRate float32, blockSize int) {
	if sampleRate > 0 {
		m.sampleRate = sampleRate
	}
	m.blockSize = blockSize
}

func (m *ModulationSystem) SampleRate() float32 { return m.sampleRate }

// SetLFORate clamps to [0.01, 100] Hz; an invalid index is ignored.
func (m *ModulationSystem) SetLFORate(index int, hz float32) {
	if index < 0 || index >= NumLFOs {
		return
	}
	m.lfos[index].Rate = clampf(hz, MinLFORate, MaxLFORate)
}

// SetLFODepth clamps to [0, 1]; an invalid index is ignored.
func (m *ModulationSystem) SetLFODepth(index int, depth float32) {
	if index < 0 || index >= NumLFOs {
		return
	}
	m.lfos[index].Depth = clampf(depth, 0, 1)
}

func (m *ModulationSystem) SetLFOWaveform(index int, w LFOWaveform) {
	if index < 0 || index >= NumLFOs || w < 0 || int(w) >= len(lfoWaveformNames) {
		return
	}
	m.lfos[index].Waveform = w
}

// LFO returns a copy of LFO i, or the zero LFO for an invalid index.
func (m *ModulationSystem) LFO(index int) LFO {
	if index < 0 || index >= NumLFOs {
		return LFO{}
	}
	return m.lfos[index]
}

// LFOOutput returns 0 for an invalid index.
func (m *ModulationSystem) LFOOutput(index int) float32 {
	if index < 0 || index >= NumLFOs {
		return 0
	}
	return m.lfos[index].output
}

func (m *ModulationSystem) NoteOn()  { m.env.noteOn() }
func (m *ModulationSystem) NoteOff() { m.env.noteOff() }

func (m *ModulationSystem) EnvelopeOutput() float32      { return m.env.level }
func (m *ModulationSystem) EnvelopeStage() EnvelopeStage { return m.env.stage }
func (m *ModulationSystem) EnvelopeGated() bool          { return m.env.Gated() }

// Process advances every LFO and the envelope by numSamples.
func (m *ModulationSystem) Process(numSamples int) {
	if numSamples <= 0 {
		return
	}
	seconds := float32(numSamples) / m.sampleRate
	for i := range m.lfos {
		m.lfos[i].advance(m.lfos[i].Rate * seconds)
	}
	m.env.advance(seconds)
}

// Reset zeroes LFO phases and parks the envelope in Idle.
func (m *ModulationSystem) Reset() {
	for i := range m.lfos {
		m.lfos[i].reset()
	}
	m.env = Envelope{stage: StageIdle}
}

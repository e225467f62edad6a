package growl

import "github.com/cwbudde/algo-growl/dsp"

// MaxVoices is the fixed polyphony of a VoiceProcessor.
const MaxVoices = 16

const (
	// autoReleaseAge frees a voice once the shared envelope is no longer gated.
	autoReleaseAge = 2.0
	toneQ          = 0.7071
	voiceSeedStep  = 0x9E3779B9
)

type voiceState int

const (
	voiceInactive voiceState = iota
	voiceActive
	voiceReleasing
)

// Voice is a read-only snapshot of one pool slot.
type Voice struct {
	Active     bool
	Releasing  bool
	NoteNumber int
	Velocity   float32
	Age        float32 // seconds since note-on
}

// voice owns a complete source → resonance → distortion → tone chain.
type voice struct {
	state      voiceState
	note       int
	velocity   float32
	age        float32
	releaseAge float32
	baseFreq   float32

	noise *NoiseGenerator
	osc   *OscillatorBank
	res   *ResonanceSystem
	dist  *DistortionStage
	tone  dsp.Biquad
}

func newVoice(index int, sampleRate float32) *voice {
	return &voice{
		noise: NewNoiseGeneratorWithSeed(dsp.DefaultSeed + uint32(index)*voiceSeedStep),
		osc:   NewOscillatorBank(sampleRate),
		res:   NewResonanceSystem(sampleRate),
		dist:  NewDistortionStage(),
	}
}

func (v *voice) start(note int, velocity float32) {
	v.state = voiceActive
	v.note = note
	v.velocity = clampf(velocity, 0, 1)
	v.age = 0
	v.releaseAge = 0
	v.baseFreq = midiNoteToFreq(note)
	v.osc.Reset()
	v.res.Reset()
	v.tone.Reset()
}

// retrigger restarts a sounding voice in place; oscillator phase and
// filter memory run on.
func (v *voice) retrigger(velocity float32) {
	v.velocity = clampf(velocity, 0, 1)
	v.age = 0
	v.releaseAge = 0
}

func (v *voice) snapshot() Voice {
	return Voice{
		Active:     v.state != voiceInactive,
		Releasing:  v.state == voiceReleasing,
		NoteNumber: v.note,
		Velocity:   v.velocity,
		Age:        v.age,
	}
}

// render accumulates the voice into out.
func (v *voice) render(out []float32, mix *mixGains) {
	noise, osc, res, dist := v.noise, v.osc, v.res, v.dist
	gain := v.velocity
	for i := range out {
		src := mix.noise*noise.Process() + mix.osc*osc.Process()
		x := mix.wet*res.Process(src) + mix.dry*src
		x = v.tone.Process(dist.Process(x))
		out[i] += x * gain
	}
}

func (v *voice) reset() {
	v.state = voiceInactive
	v.age = 0
	v.releaseAge = 0
	v.noise.Reset()
	v.osc.Reset()
	v.res.Reset()
	v.dist.Reset()
	v.tone.Reset()
}

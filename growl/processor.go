package growl

import (
	"sync/atomic"

	"github.com/cwbudde/algo-growl/dsp"
)

const (
	vibratoLFO = 0
	flutterLFO = 1

	minToneCutoff = 200
	maxToneRatio  = 0.45
)

type mixGains struct {
	noise float32
	osc   float32
	wet   float32
	dry   float32
}

// VoiceProcessor owns the voice pool and renders mono blocks.
//
// NoteOn, NoteOff, Apply and ProcessBlock must be called from the audio
// thread. Schedule may be called from any goroutine; the scheduled set is
// applied at the start of the next block.
type VoiceProcessor struct {
	sampleRate float32
	blockSize  int

	voices     [MaxVoices]*voice
	modulation *ModulationSystem
	size       *SizeScaler

	params     AcousticParams
	mix        mixGains
	masterGain float32
	lastEnv    float32

	pending atomic.Pointer[AcousticParams]
}

// NewVoiceProcessor creates a processor prepared for sampleRate and blockSize
// with the default parameter set applied.
func NewVoiceProcessor(sampleRate float32, blockSize int) *VoiceProcessor {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	p := &VoiceProcessor{
		sampleRate: sampleRate,
		modulation: NewModulationSystem(),
		size:       NewSizeScaler(),
	}
	for i := range p.voices {
		p.voices[i] = newVoice(i, sampleRate)
	}
	p.Prepare(sampleRate, blockSize)
	p.Apply(NewDefaultParams())
	return p
}

// Prepare fixes the sample rate and block size and resets all state.
func (p *VoiceProcessor) Prepare(sampleRate float32, blockSize int) {
	if sampleRate > 0 {
		p.sampleRate = sampleRate
	}
	p.blockSize = blockSize
	p.modulation.Prepare(p.sampleRate, blockSize)
	for _, v := range p.voices {
		v.osc.SetSampleRate(p.sampleRate)
		v.res.SetSampleRate(p.sampleRate)
	}
	p.updateTone()
	p.Reset()
}

func (p *VoiceProcessor) SampleRate() float32 { return p.sampleRate }
func (p *VoiceProcessor) BlockSize() int       { return p.blockSize }

// Modulation exposes the shared LFO/envelope system.
func (p *VoiceProcessor) Modulation() *ModulationSystem { return p.modulation }

// Multipliers returns the size scaling currently in effect.
func (p *VoiceProcessor) Multipliers() ScalingMultipliers { return p.size.Multipliers() }

// Params returns a copy of the applied parameter set.
func (p *VoiceProcessor) Params() AcousticParams { return p.params }

// Schedule hands a parameter set to the audio thread. Only the most recent
// set scheduled before a block is applied.
func (p *VoiceProcessor) Schedule(params *AcousticParams) {
	if params == nil {
		return
	}
	p.pending.Store(params.Clone())
}

// Apply configures every voice from params. Call between blocks.
func (p *VoiceProcessor) Apply(params *AcousticParams) {
	if params == nil {
		return
	}
	p.params = *params
	ap := &p.params

	p.size.SetScalingLaw(ap.ScalingLaw)
	p.size.SetSizeFeet(ap.SizeFeet)
	m := p.size.Multipliers()

	resMix := clampf(ap.ResonanceMix, 0, 1)
	p.mix = mixGains{
		noise: clampf(ap.NoiseMix, 0, 1),
		osc:   clampf(ap.OscillatorMix, 0, 1),
		wet:   resMix,
		dry:   1 - resMix,
	}
	p.masterGain = dbToGain(clampf(ap.MasterGainDB, -60, 24))

	for _, v := range p.voices {
		v.noise.SetType(ap.Noise)
		v.osc.SetType(ap.Oscillator)
		v.osc.SetDetune(ap.OscillatorDetune)
		v.osc.SetNumVoices(ap.OscillatorVoices)
		for i, f := range ap.Formants {
			v.res.SetFormantFrequency(i, f.Frequency*m.Formant)
			v.res.SetFormantQ(i, f.Q*m.Resonance)
		}
		v.res.SetChestResonance(ap.ChestResonance)
		v.res.SetThroatConstriction(ap.ThroatResonance)
		v.dist.SetType(ap.Distortion)
		v.dist.SetDrive(ap.Drive)
		v.dist.SetWarmth(ap.Warmth)
		v.dist.SetAggression(ap.Aggression)
	}

	p.modulation.SetLFORate(vibratoLFO, ap.VibratoRate)
	p.modulation.SetLFODepth(vibratoLFO, 1)
	p.modulation.SetLFORate(flutterLFO, ap.FlutterRate)
	p.modulation.SetLFODepth(flutterLFO, ap.FlutterDepth)
	p.updateTone()
}

// toneCutoff maps tone 0..1 onto 500 Hz..16 kHz, scaled by brightness.
func (p *VoiceProcessor) toneCutoff() float32 {
	tone := clampf(p.params.Tone, 0, 1)
	cutoff := 500 * pow2Approx(tone*5) * p.size.BrightnessMultiplier()
	return clampf(cutoff, minToneCutoff, maxToneRatio*p.sampleRate)
}

func (p *VoiceProcessor) updateTone() {
	c := dsp.LowpassCoefficients(float64(p.toneCutoff()), float64(p.sampleRate), toneQ)
	for _, v := range p.voices {
		v.tone.SetCoefficients(c)
	}
}

// NoteOn retriggers the voice already holding note, else takes the first
// free slot. A full pool drops the note.
func (p *VoiceProcessor) NoteOn(note int, velocity float32) {
	for _, v := range p.voices {
		if v.state == voiceActive && v.note == note {
			v.retrigger(velocity)
			p.modulation.NoteOn()
			return
		}
	}
	for _, v := range p.voices {
		if v.state == voiceInactive {
			v.start(note, velocity)
			p.modulation.NoteOn()
			return
		}
	}
}

// NoteOff releases the first sounding voice playing note. No match is a no-op.
func (p *VoiceProcessor) NoteOff(note int) {
	for _, v := range p.voices {
		if v.state == voiceActive && v.note == note {
			v.state = voiceReleasing
			p.modulation.NoteOff()
			return
		}
	}
}

// AllNotesOff releases every sounding voice.
func (p *VoiceProcessor) AllNotesOff() {
	released := false
	for _, v := range p.voices {
		if v.state == voiceActive {
			v.state = voiceReleasing
			released = true
		}
	}
	if released {
		p.modulation.NoteOff()
	}
}

// ActiveVoices counts occupied slots, releasing ones included.
func (p *VoiceProcessor) ActiveVoices() int {
	n := 0
	for _, v := range p.voices {
		if v.state != voiceInactive {
			n++
		}
	}
	return n
}

// Voices returns a snapshot of every slot.
func (p *VoiceProcessor) Voices() [MaxVoices]Voice {
	var out [MaxVoices]Voice
	for i, v := range p.voices {
		out[i] = v.snapshot()
	}
	return out
}

// ProcessBlock overwrites out with the next len(out) samples.
func (p *VoiceProcessor) ProcessBlock(out []float32) {
	if next := p.pending.Swap(nil); next != nil {
		p.Apply(next)
	}

	clear(out)
	n := len(out)
	if n == 0 {
		return
	}

	vibrato := centsToRatio(p.params.VibratoCents * p.modulation.LFOOutput(vibratoLFO))
	pitch := p.size.PitchMultiplier()
	for _, v := range p.voices {
		if v.state == voiceInactive {
			continue
		}
		v.osc.SetFrequency(v.baseFreq * pitch * vibrato)
		v.render(out, &p.mix)
	}

	flutter := 1 + 0.5*p.modulation.LFOOutput(flutterLFO)
	gain := p.masterGain * flutter

	// ramp towards the envelope level at the end of this block
	p.modulation.Process(n)
	env0, env1 := p.lastEnv, p.modulation.EnvelopeOutput()
	step := (env1 - env0) / float32(n)
	for i := range out {
		env := env0 + step*float32(i+1)
		out[i] = clampf(out[i]*env*gain, -1, 1)
	}
	p.lastEnv = env1

	dt := float32(n) / p.sampleRate
	for _, v := range p.voices {
		if v.state == voiceInactive {
			continue
		}
		v.age += dt
		if v.state == voiceReleasing {
			v.releaseAge += dt
		}
	}

	gated := p.modulation.EnvelopeGated()
	idle := p.modulation.EnvelopeStage() == StageIdle
	for _, v := range p.voices {
		switch {
		case v.state == voiceInactive:
		case v.state == voiceReleasing && (idle || v.releaseAge >= EnvelopeRelease):
			v.state = voiceInactive
		case !gated && v.age > autoReleaseAge:
			v.state = voiceInactive
		}
	}
}

// Reset silences every voice and clears all DSP state.
func (p *VoiceProcessor) Reset() {
	for _, v := range p.voices {
		v.reset()
	}
	p.modulation.Reset()
	p.lastEnv = 0
}

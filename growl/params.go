package growl

// Formant is one (frequency, Q) pair of an acoustic parameter set.
type Formant struct {
	Frequency float32
	Q         float32
}

// AcousticParams is the full parameter set of one creature voice. The engine
// reads it but never keeps a reference to it.
type AcousticParams struct {
	AnimalName string
	PresetName string

	SizeFeet   float32
	ScalingLaw ScalingLaw

	Noise    NoiseKind
	NoiseMix float32

	Oscillator       OscillatorKind
	OscillatorDetune float32 // cents
	OscillatorMix    float32
	OscillatorVoices int

	Formants [NumFormants]Formant

	Distortion DistortionKind
	Drive      float32
	Tone       float32 // 0 = dark, 1 = bright
	Warmth     float32
	Aggression float32

	ChestResonance  float32
	ThroatResonance float32
	ResonanceMix    float32

	MasterGainDB float32

	// LFO 0 drives vibrato, LFO 1 drives amplitude flutter.
	VibratoRate  float32
	VibratoCents float32
	FlutterRate  float32
	FlutterDepth float32
}

// NewDefaultParams returns the init patch: a mid-sized pink-noise growl.
func NewDefaultParams() *AcousticParams {
	return &AcousticParams{
		AnimalName:       "Default",
		PresetName:       "Init",
		SizeFeet:         5,
		ScalingLaw:       ScalingAllometric,
		Noise:            NoisePink,
		NoiseMix:         0.5,
		Oscillator:       OscillatorDetuned,
		OscillatorDetune: 0,
		OscillatorMix:    0.5,
		OscillatorVoices: 4,
		Formants: [NumFormants]Formant{
			{Frequency: 800, Q: 10},
			{Frequency: 1150, Q: 12},
			{Frequency: 2900, Q: 15},
			{Frequency: 3900, Q: 15},
			{Frequency: 4950, Q: 20},
		},
		Distortion:      DistortionSoftClip,
		Drive:           1.5,
		Tone:            0.5,
		Warmth:          0.5,
		Aggression:      0.5,
		ChestResonance:  0.5,
		ThroatResonance: 0.5,
		ResonanceMix:    0.5,
		MasterGainDB:    0,
		VibratoRate:     5,
		VibratoCents:    0,
		FlutterRate:     7,
		FlutterDepth:    0,
	}
}

// Clone returns an independent copy.
func (p *AcousticParams) Clone() *AcousticParams {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

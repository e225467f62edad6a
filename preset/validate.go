package preset

import (
	"fmt"

	"github.com/cwbudde/algo-growl/growl"
)

type floatRange struct {
	name   string
	value  float32
	lo, hi float32
}

// Validate reports the first field of p outside its documented range.
// The engine clamps these values anyway; Validate is for preset authoring.
func Validate(p *growl.AcousticParams) error {
	if p == nil {
		return fmt.Errorf("%w: nil params", ErrInvalidPreset)
	}
	if _, err := growl.ParseNoiseKind(p.Noise.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	checks := []floatRange{
		{"size_feet", p.SizeFeet, growl.MinSizeFeet, growl.MaxSizeFeet},
		{"noise_mix", p.NoiseMix, 0, 1},
		{"oscillator_detune", p.OscillatorDetune, -growl.MaxDetuneCents, growl.MaxDetuneCents},
		{"oscillator_mix", p.OscillatorMix, 0, 1},
		{"drive", p.Drive, 0, growl.MaxDrive},
		{"tone", p.Tone, 0, 1},
		{"warmth", p.Warmth, 0, 1},
		{"aggression", p.Aggression, 0, 1},
		{"chest_resonance", p.ChestResonance, 0, 1},
		{"throat_resonance", p.ThroatResonance, 0, 1},
		{"resonance_mix", p.ResonanceMix, 0, 1},
		{"master_gain_db", p.MasterGainDB, -60, 24},
		{"vibrato_rate", p.VibratoRate, growl.MinLFORate, growl.MaxLFORate},
		{"vibrato_cents", p.VibratoCents, 0, 100},
		{"flutter_rate", p.FlutterRate, growl.MinLFORate, growl.MaxLFORate},
		{"flutter_depth", p.FlutterDepth, 0, 1},
	}
	for i, fm := range p.Formants {
		checks = append(checks,
			floatRange{fmt.Sprintf("formants[%d].frequency", i), fm.Frequency, growl.MinFormantFreq, growl.MaxFormantFreq},
			floatRange{fmt.Sprintf("formants[%d].q", i), fm.Q, growl.MinFormantQ, growl.MaxFormantQ},
		)
	}
	for _, c := range checks {
		if !(c.value >= c.lo && c.value <= c.hi) {
			return fmt.Errorf("%w: %s must be in [%g,%g], got %g", ErrInvalidPreset, c.name, c.lo, c.hi, c.value)
		}
	}

	if p.OscillatorVoices < 1 || p.OscillatorVoices > growl.MaxOscillatorVoices {
		return fmt.Errorf("%w: oscillator_voices must be in [1,%d], got %d", ErrInvalidPreset, growl.MaxOscillatorVoices, p.OscillatorVoices)
	}
	if _, err := growl.ParseScalingLaw(p.ScalingLaw.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if _, err := growl.ParseOscillatorKind(p.Oscillator.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if _, err := growl.ParseDistortionKind(p.Distortion.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return nil
}

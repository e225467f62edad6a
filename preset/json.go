package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-growl/growl"
)

// File is the JSON schema for creature presets. Every field is optional;
// missing fields keep the value of the params the file is applied to.
type File struct {
	AnimalName *string `json:"animal_name,omitempty"`
	PresetName *string `json:"preset_name,omitempty"`

	SizeFeet   *float32 `json:"size_feet,omitempty"`
	ScalingLaw *string  `json:"scaling_law,omitempty"`

	NoiseType *string  `json:"noise_type,omitempty"`
	NoiseMix  *float32 `json:"noise_mix,omitempty"`

	OscillatorType   *string  `json:"oscillator_type,omitempty"`
	OscillatorDetune *float32 `json:"oscillator_detune,omitempty"`
	OscillatorMix    *float32 `json:"oscillator_mix,omitempty"`
	OscillatorVoices *int     `json:"oscillator_voices,omitempty"`

	Formants []FormantSetting `json:"formants,omitempty"`

	DistortionType *string  `json:"distortion_type,omitempty"`
	Drive          *float32 `json:"drive,omitempty"`
	Tone           *float32 `json:"tone,omitempty"`
	Warmth         *float32 `json:"warmth,omitempty"`
	Aggression     *float32 `json:"aggression,omitempty"`

	ChestResonance  *float32 `json:"chest_resonance,omitempty"`
	ThroatResonance *float32 `json:"throat_resonance,omitempty"`
	ResonanceMix    *float32 `json:"resonance_mix,omitempty"`

	MasterGainDB *float32 `json:"master_gain_db,omitempty"`

	VibratoRate  *float32 `json:"vibrato_rate,omitempty"`
	VibratoCents *float32 `json:"vibrato_cents,omitempty"`
	FlutterRate  *float32 `json:"flutter_rate,omitempty"`
	FlutterDepth *float32 `json:"flutter_depth,omitempty"`
}

// FormantSetting is a partial formant override; entries map to formants 0..4.
type FormantSetting struct {
	Frequency *float32 `json:"frequency,omitempty"`
	Q         *float32 `json:"q,omitempty"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*growl.AcousticParams, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseJSON(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseJSON decodes a preset document on top of default params.
func ParseJSON(b []byte) (*growl.AcousticParams, error) {
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	p := growl.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveJSON writes p as an indented preset file, creating parent directories.
func SaveJSON(path string, p *growl.AcousticParams) error {
	if p == nil {
		return fmt.Errorf("nil params")
	}
	b, err := json.MarshalIndent(ToFile(p), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ToFile converts params into a fully populated File.
func ToFile(p *growl.AcousticParams) *File {
	str := func(s string) *string { return &s }
	num := func(v float32) *float32 { return &v }
	voices := p.OscillatorVoices

	f := &File{
		AnimalName:       str(p.AnimalName),
		PresetName:       str(p.PresetName),
		SizeFeet:         num(p.SizeFeet),
		ScalingLaw:       str(p.ScalingLaw.String()),
		NoiseType:        str(p.Noise.String()),
		NoiseMix:         num(p.NoiseMix),
		OscillatorType:   str(p.Oscillator.String()),
		OscillatorDetune: num(p.OscillatorDetune),
		OscillatorMix:    num(p.OscillatorMix),
		OscillatorVoices: &voices,
		DistortionType:   str(p.Distortion.String()),
		Drive:            num(p.Drive),
		Tone:             num(p.Tone),
		Warmth:           num(p.Warmth),
		Aggression:       num(p.Aggression),
		ChestResonance:   num(p.ChestResonance),
		ThroatResonance:  num(p.ThroatResonance),
		ResonanceMix:     num(p.ResonanceMix),
		MasterGainDB:     num(p.MasterGainDB),
		VibratoRate:      num(p.VibratoRate),
		VibratoCents:     num(p.VibratoCents),
		FlutterRate:      num(p.FlutterRate),
		FlutterDepth:     num(p.FlutterDepth),
	}
	f.Formants = make([]FormantSetting, len(p.Formants))
	for i, fm := range p.Formants {
		f.Formants[i] = FormantSetting{Frequency: num(fm.Frequency), Q: num(fm.Q)}
	}
	return f
}

// ApplyFile applies a parsed preset file onto an existing params object and
// validates the result. dst is only written when the result is valid.
func ApplyFile(dst *growl.AcousticParams, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}
	next, err := applied(*dst, f)
	if err != nil {
		return err
	}
	*dst = next
	return nil
}

func applied(p growl.AcousticParams, f *File) (growl.AcousticParams, error) {
	dst := &p
	if len(f.Formants) > growl.NumFormants {
		return p, fmt.Errorf("%w: %d formants given, at most %d", ErrInvalidPreset, len(f.Formants), growl.NumFormants)
	}

	if f.AnimalName != nil {
		dst.AnimalName = strings.TrimSpace(*f.AnimalName)
	}
	if f.PresetName != nil {
		dst.PresetName = strings.TrimSpace(*f.PresetName)
	}
	if f.ScalingLaw != nil {
		law, err := growl.ParseScalingLaw(*f.ScalingLaw)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
		}
		dst.ScalingLaw = law
	}
	if f.NoiseType != nil {
		kind, err := growl.ParseNoiseKind(*f.NoiseType)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
		}
		dst.Noise = kind
	}
	if f.OscillatorType != nil {
		kind, err := growl.ParseOscillatorKind(*f.OscillatorType)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
		}
		dst.Oscillator = kind
	}
	if f.DistortionType != nil {
		kind, err := growl.ParseDistortionKind(*f.DistortionType)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
		}
		dst.Distortion = kind
	}
	if f.OscillatorVoices != nil {
		dst.OscillatorVoices = *f.OscillatorVoices
	}

	setFloat(&dst.SizeFeet, f.SizeFeet)
	setFloat(&dst.NoiseMix, f.NoiseMix)
	setFloat(&dst.OscillatorDetune, f.OscillatorDetune)
	setFloat(&dst.OscillatorMix, f.OscillatorMix)
	setFloat(&dst.Drive, f.Drive)
	setFloat(&dst.Tone, f.Tone)
	setFloat(&dst.Warmth, f.Warmth)
	setFloat(&dst.Aggression, f.Aggression)
	setFloat(&dst.ChestResonance, f.ChestResonance)
	setFloat(&dst.ThroatResonance, f.ThroatResonance)
	setFloat(&dst.ResonanceMix, f.ResonanceMix)
	setFloat(&dst.MasterGainDB, f.MasterGainDB)
	setFloat(&dst.VibratoRate, f.VibratoRate)
	setFloat(&dst.VibratoCents, f.VibratoCents)
	setFloat(&dst.FlutterRate, f.FlutterRate)
	setFloat(&dst.FlutterDepth, f.FlutterDepth)

	for i, fm := range f.Formants {
		setFloat(&dst.Formants[i].Frequency, fm.Frequency)
		setFloat(&dst.Formants[i].Q, fm.Q)
	}
	return p, Validate(dst)
}

func setFloat(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}

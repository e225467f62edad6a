package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-growl/growl"
)

type knobDef struct {
	Name string
	Min  float64
	Max  float64
	Log  bool // normalized position maps onto a log scale
}

var allKnobs = []knobDef{
	{Name: "size_feet", Min: growl.MinSizeFeet, Max: 200, Log: true},
	{Name: "formant_scale", Min: 0.5, Max: 2, Log: true},
	{Name: "drive", Min: 0.2, Max: growl.MaxDrive},
	{Name: "noise_mix", Min: 0, Max: 1},
	{Name: "oscillator_mix", Min: 0, Max: 1},
	{Name: "resonance_mix", Min: 0, Max: 1},
	{Name: "chest_resonance", Min: 0, Max: 1},
	{Name: "throat_resonance", Min: 0, Max: 1},
	{Name: "tone", Min: 0, Max: 1},
	{Name: "warmth", Min: 0, Max: 1},
	{Name: "aggression", Min: 0, Max: 1},
}

// parseKnobs selects knobs by comma-separated name; "all" selects every knob.
func parseKnobs(raw string) ([]knobDef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return append([]knobDef(nil), allKnobs...), nil
	}
	byName := make(map[string]knobDef, len(allKnobs))
	names := make([]string, len(allKnobs))
	for i, k := range allKnobs {
		byName[k.Name] = k
		names[i] = k.Name
	}
	var defs []knobDef
	seen := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		k, ok := byName[s]
		if !ok {
			return nil, fmt.Errorf("unknown knob %q (valid: %s)", s, strings.Join(names, ", "))
		}
		seen[s] = true
		defs = append(defs, k)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no knobs specified")
	}
	return defs, nil
}

// fromNormalized maps optimizer positions in [0,1] onto knob values.
func fromNormalized(pos []float64, defs []knobDef) []float64 {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		x := 0.0
		if i < len(pos) {
			x = clamp(pos[i], 0, 1)
		}
		if d.Log && d.Min > 0 {
			vals[i] = d.Min * math.Pow(d.Max/d.Min, x)
			continue
		}
		vals[i] = d.Min + x*(d.Max-d.Min)
	}
	return vals
}

// knobValues reads the current knob values out of p.
func knobValues(p *growl.AcousticParams, defs []knobDef) []float64 {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		var v float64
		switch d.Name {
		case "size_feet":
			v = float64(p.SizeFeet)
		case "formant_scale":
			v = 1
		case "drive":
			v = float64(p.Drive)
		case "noise_mix":
			v = float64(p.NoiseMix)
		case "oscillator_mix":
			v = float64(p.OscillatorMix)
		case "resonance_mix":
			v = float64(p.ResonanceMix)
		case "chest_resonance":
			v = float64(p.ChestResonance)
		case "throat_resonance":
			v = float64(p.ThroatResonance)
		case "tone":
			v = float64(p.Tone)
		case "warmth":
			v = float64(p.Warmth)
		case "aggression":
			v = float64(p.Aggression)
		}
		vals[i] = clamp(v, d.Min, d.Max)
	}
	return vals
}

// applyKnobs returns a copy of base with the knob values applied.
func applyKnobs(base *growl.AcousticParams, defs []knobDef, vals []float64) *growl.AcousticParams {
	p := base.Clone()
	for i, d := range defs {
		v := float32(vals[i])
		switch d.Name {
		case "size_feet":
			p.SizeFeet = v
		case "formant_scale":
			for j := range p.Formants {
				f := p.Formants[j].Frequency * v
				p.Formants[j].Frequency = min(max(f, growl.MinFormantFreq), growl.MaxFormantFreq)
			}
		case "drive":
			p.Drive = v
		case "noise_mix":
			p.NoiseMix = v
		case "oscillator_mix":
			p.OscillatorMix = v
		case "resonance_mix":
			p.ResonanceMix = v
		case "chest_resonance":
			p.ChestResonance = v
		case "throat_resonance":
			p.ThroatResonance = v
		case "tone":
			p.Tone = v
		case "warmth":
			p.Warmth = v
		case "aggression":
			p.Aggression = v
		}
	}
	return p
}

func knobMap(defs []knobDef, vals []float64) map[string]float64 {
	m := make(map[string]float64, len(defs))
	for i, d := range defs {
		m[d.Name] = vals[i]
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

package space

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
)

// Config controls synthetic environment IR generation.
type Config struct {
	SampleRate int
	DurationS  float64
	Seed       int64

	PreDelayS    float64 // gap before the first reflection
	EarlyCount   int
	EarlyWindowS float64 // reflections land in [PreDelayS, PreDelayS+EarlyWindowS)
	EarlyLevel   float64
	LateLevel    float64
	DecayS       float64 // time constant of the diffuse tail
	Damping      float64 // 0 = bright tail, 1 = very dark tail
	DirectLevel  float64
	FadeOutS     float64

	NormalizePeak float64
}

var environments = map[string]Config{
	"den": {
		DurationS: 0.35, PreDelayS: 0.002, EarlyCount: 12, EarlyWindowS: 0.015,
		EarlyLevel: 0.5, LateLevel: 0.05, DecayS: 0.08, Damping: 0.7, DirectLevel: 1,
	},
	"cave": {
		DurationS: 2.5, PreDelayS: 0.012, EarlyCount: 28, EarlyWindowS: 0.08,
		EarlyLevel: 0.45, LateLevel: 0.12, DecayS: 0.9, Damping: 0.45, DirectLevel: 0.8,
	},
	"forest": {
		DurationS: 1.2, PreDelayS: 0.02, EarlyCount: 40, EarlyWindowS: 0.25,
		EarlyLevel: 0.2, LateLevel: 0.03, DecayS: 0.3, Damping: 0.85, DirectLevel: 1,
	},
	"canyon": {
		DurationS: 3, PreDelayS: 0.15, EarlyCount: 6, EarlyWindowS: 0.6,
		EarlyLevel: 0.6, LateLevel: 0.04, DecayS: 0.7, Damping: 0.6, DirectLevel: 1,
	},
}

// Environments lists the built-in environment names.
func Environments() []string {
	names := make([]string, 0, len(environments))
	for name := range environments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Environment returns the built-in config called name at sampleRate.
func Environment(name string, sampleRate int) (Config, error) {
	cfg, ok := environments[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, fmt.Errorf("unknown environment %q (want one of %s)", name, strings.Join(Environments(), ", "))
	}
	cfg.SampleRate = sampleRate
	cfg.Seed = 1
	cfg.FadeOutS = 0.01
	cfg.NormalizePeak = 0.9
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample rate too low: %d", c.SampleRate)
	}
	if c.DurationS <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if c.PreDelayS < 0 || c.EarlyWindowS < 0 {
		return fmt.Errorf("early timing must be >= 0")
	}
	if c.EarlyCount < 0 {
		return fmt.Errorf("early count must be >= 0")
	}
	if c.EarlyLevel < 0 || c.LateLevel < 0 || c.DirectLevel < 0 {
		return fmt.Errorf("levels must be >= 0")
	}
	if c.DecayS <= 0 {
		return fmt.Errorf("decay seconds must be > 0")
	}
	if c.Damping < 0 || c.Damping >= 1 {
		return fmt.Errorf("damping must be in [0,1)")
	}
	if c.NormalizePeak <= 0 {
		return fmt.Errorf("normalize peak must be > 0")
	}
	return nil
}

// Generate synthesizes a mono IR: a direct impulse, a cluster of early
// reflections and a damped exponential noise tail.
func Generate(cfg Config) ([]float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sr := float64(cfg.SampleRate)
	n := max(int(math.Round(cfg.DurationS*sr)), 1)
	buf := make([]float64, n)
	rng := rand.New(rand.NewSource(cfg.Seed))

	buf[0] += cfg.DirectLevel

	for i := 0; i < cfg.EarlyCount; i++ {
		t := cfg.PreDelayS + cfg.EarlyWindowS*rng.Float64()
		idx := int(t * sr)
		if idx <= 0 || idx >= n {
			continue
		}
		amp := cfg.EarlyLevel * (0.3 + 0.7*rng.Float64()) * math.Exp(-t/cfg.DecayS)
		if rng.Intn(2) == 0 {
			amp = -amp
		}
		buf[idx] += amp
	}

	if cfg.LateLevel > 0 {
		start := int(cfg.PreDelayS * sr)
		lp := 0.0
		for i := start; i < n; i++ {
			t := float64(i-start) / sr
			lp = cfg.Damping*lp + (1-cfg.Damping)*rng.NormFloat64()
			buf[i] += cfg.LateLevel * math.Exp(-t/cfg.DecayS) * lp
		}
	}

	highpassDC(buf, 0.995)
	applyFadeOut(buf, cfg.FadeOutS, cfg.SampleRate)

	peak := max(maxAbs(buf), 1e-12)
	s := cfg.NormalizePeak / peak
	out := make([]float32, n)
	for i, v := range buf {
		out[i] = float32(v * s)
	}
	return out, nil
}

func highpassDC(x []float64, r float64) {
	prevIn, prevOut := 0.0, 0.0
	for i := range x {
		y := x[i] - prevIn + r*prevOut
		prevIn = x[i]
		prevOut = y
		x[i] = y
	}
}

func applyFadeOut(buf []float64, fadeS float64, sampleRate int) {
	if fadeS <= 0 || len(buf) == 0 {
		return
	}
	fade := min(int(math.Round(fadeS*float64(sampleRate))), len(buf))
	start := len(buf) - fade
	for i := 0; i < fade; i++ {
		t := float64(i) / float64(fade)
		buf[start+i] *= 0.5 * (1 + math.Cos(t*math.Pi))
	}
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = max(m, math.Abs(v))
	}
	return m
}

package growl

import (
	"math"
	"testing"
)

var allOscillatorKinds = []OscillatorKind{
	OscillatorDPW, OscillatorPolyBLEP, OscillatorWavetable, OscillatorDetuned,
}

func TestOscillatorPhaseStaysWrapped(t *testing.T) {
	rates := []float32{8000, 22050, 44100, 48000, 96000}
	freqs := []float32{20, 440, 12345.6, 20000}
	for _, kind := range allOscillatorKinds {
		t.Run(kind.String(), func(t *testing.T) {
			for _, sr := range rates {
				for _, f := range freqs {
					o := NewOscillatorBank(sr)
					o.SetType(kind)
					o.SetFrequency(f)
					o.SetDetune(35)
					for i := 0; i < 10000; i++ {
						v := o.Process()
						p := o.Phase()
						if p < 0 || p >= 1 {
							t.Fatalf("sr=%v f=%v sample %d: phase %v left [0,1)", sr, f, i, p)
						}
						if !isFinite(v) {
							t.Fatalf("sr=%v f=%v sample %d: non-finite output", sr, f, i)
						}
					}
				}
			}
		})
	}
}

func TestOscillatorSetterClamps(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetFrequency(5)
	if o.Frequency() != MinOscillatorFreq {
		t.Fatalf("frequency clamp low: got %v", o.Frequency())
	}
	o.SetFrequency(50000)
	if o.Frequency() != MaxOscillatorFreq {
		t.Fatalf("frequency clamp high: got %v", o.Frequency())
	}
	o.SetNumVoices(0)
	if o.NumVoices() != 1 {
		t.Fatalf("voices clamp low: got %d", o.NumVoices())
	}
	o.SetNumVoices(40)
	if o.NumVoices() != MaxOscillatorVoices {
		t.Fatalf("voices clamp high: got %d", o.NumVoices())
	}
	o.SetDetune(500)
	if o.detune != MaxDetuneCents {
		t.Fatalf("detune clamp: got %v", o.detune)
	}
}

func TestOscillatorResetKeepsSettings(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorWavetable)
	o.SetFrequency(220)
	for i := 0; i < 333; i++ {
		o.Process()
	}
	o.Reset()
	if o.Phase() != 0 {
		t.Fatalf("expected zero phase after reset, got %v", o.Phase())
	}
	if o.Type() != OscillatorWavetable || o.Frequency() != 220 {
		t.Fatalf("reset changed settings: %s %v", o.Type(), o.Frequency())
	}
}

func TestWavetableShape(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorWavetable)
	o.SetFrequency(12000) // quarter cycle per sample

	want := []float64{0, 0.75 / 1.875, 0, -0.75 / 1.875}
	for i, w := range want {
		got := float64(o.Process())
		if math.Abs(got-w) > 1e-4 {
			t.Fatalf("sample %d: got %v want %v", i, got, w)
		}
	}
}

func TestPolyBLEPSoftensCycleStart(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorPolyBLEP)
	o.SetFrequency(480) // 100 samples per cycle
	if got := o.Process(); got != -1 {
		t.Fatalf("first sample should be the bare saw start, got %v", got)
	}
	for i := 1; i < 100; i++ {
		phase := float64(o.Phase())
		got := float64(o.Process())
		saw := 2*phase - 1
		if phase >= polyBLEPWidth && math.Abs(got-saw) > 1e-5 {
			t.Fatalf("sample %d outside correction window: got %v want %v", i, got, saw)
		}
		if phase < polyBLEPWidth && got < saw {
			t.Fatalf("sample %d: correction should lift the saw, got %v saw %v", i, got, saw)
		}
	}
}

func TestDPWApproximatesSaw(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorDPW)
	o.SetFrequency(100)

	const n = 4800
	var sum float64
	for i := 0; i < n; i++ {
		phase := float64(o.Phase())
		v := float64(o.Process())
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
		sum += v
		if phase > 0.05 && phase < 0.95 && math.Abs(v-(2*phase-1)) > 0.01 {
			t.Fatalf("sample %d: dpw=%v saw=%v", i, v, 2*phase-1)
		}
	}
	if math.Abs(sum/n) > 0.02 {
		t.Fatalf("expected near-zero mean, got %v", sum/n)
	}
}

func TestDPWHasNoDCOffsetAtHighFrequency(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorDPW)
	o.SetFrequency(9600)
	inc := 9600.0 / 48000.0

	const n = 4800
	var sum float64
	for i := 0; i < n; i++ {
		phase := float64(o.Phase())
		v := float64(o.Process())
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
		sum += v
		if phase > inc*1.01 {
			if want := 2*phase - 1 - inc; math.Abs(v-want) > 1e-3 {
				t.Fatalf("sample %d: dpw=%v want half-sample saw %v", i, v, want)
			}
		}
	}
	if mean := sum / n; math.Abs(mean) > 1e-3 {
		t.Fatalf("dc offset %v", mean)
	}
}

func TestDPWInstancesDoNotShareState(t *testing.T) {
	solo := NewOscillatorBank(48000)
	solo.SetFrequency(110)
	want := make([]float32, 512)
	solo.ProcessBlock(want)

	a := NewOscillatorBank(48000)
	b := NewOscillatorBank(48000)
	a.SetFrequency(110)
	b.SetFrequency(3000)
	for i := range want {
		got := a.Process()
		b.Process()
		if got != want[i] {
			t.Fatalf("sample %d: interleaved instance diverged: %v vs %v", i, got, want[i])
		}
	}
}

func TestDetunedSingleVoiceIsNaiveSaw(t *testing.T) {
	o := NewOscillatorBank(48000)
	o.SetType(OscillatorDetuned)
	o.SetNumVoices(1)
	o.SetFrequency(300)
	for i := 0; i < 1000; i++ {
		phase := o.Phase()
		if got, want := o.Process(), 2*phase-1; math.Abs(float64(got-want)) > 1e-4 {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}
}

func TestDetuneSpreadsVoices(t *testing.T) {
	render := func(detune float32) []float32 {
		o := NewOscillatorBank(48000)
		o.SetType(OscillatorDetuned)
		o.SetNumVoices(6)
		o.SetDetune(detune)
		o.SetFrequency(110)
		out := make([]float32, 48000)
		o.ProcessBlock(out)
		return out
	}
	flat := render(0)
	wide := render(40)
	var diff float64
	for i := range flat {
		diff += math.Abs(float64(flat[i] - wide[i]))
	}
	if diff/float64(len(flat)) < 0.05 {
		t.Fatalf("expected detune to change the waveform, mean diff %v", diff/float64(len(flat)))
	}
}

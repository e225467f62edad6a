package analysis

import (
	"math"
	"testing"
)

func makeSine(sr int, freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sr))
	}
	return out
}

func TestAverageSpectrumPeakAtToneFrequency(t *testing.T) {
	const sr = 48000
	s, err := AverageSpectrum(makeSine(sr, 1000, sr), sr, DefaultFFTSize)
	if err != nil {
		t.Fatalf("AverageSpectrum: %v", err)
	}
	if len(s.Mag) != DefaultFFTSize/2+1 {
		t.Fatalf("bins: got %d", len(s.Mag))
	}
	if got := s.PeakHz(20, 20000); math.Abs(got-1000) > s.BinHz {
		t.Fatalf("peak: got %.1f Hz want 1000", got)
	}
	if c := s.Centroid(); math.Abs(c-1000) > 150 {
		t.Fatalf("centroid: got %.1f Hz want near 1000", c)
	}
}

func TestAverageSpectrumShortSignalIsPadded(t *testing.T) {
	s, err := AverageSpectrum(makeSine(48000, 2000, 100), 48000, 1024)
	if err != nil {
		t.Fatalf("AverageSpectrum: %v", err)
	}
	if s.Centroid() <= 0 {
		t.Fatal("expected energy in padded frame")
	}
}

func TestAverageSpectrumRejectsBadSize(t *testing.T) {
	if _, err := AverageSpectrum(make([]float64, 10), 48000, 1000); err == nil {
		t.Fatal("expected error for non power of two")
	}
	if _, err := AverageSpectrum(make([]float64, 10), 0, 1024); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestFlatnessSeparatesNoiseFromTone(t *testing.T) {
	const sr = 48000
	noise, err := AverageSpectrum(randomSignal(sr, 3), sr, 2048)
	if err != nil {
		t.Fatalf("noise spectrum: %v", err)
	}
	tone, err := AverageSpectrum(makeSine(sr, 440, sr), sr, 2048)
	if err != nil {
		t.Fatalf("tone spectrum: %v", err)
	}
	if noise.Flatness() < 0.5 {
		t.Fatalf("white noise flatness too low: %f", noise.Flatness())
	}
	if tone.Flatness() > 0.1 {
		t.Fatalf("tone flatness too high: %f", tone.Flatness())
	}
	if noise.Rolloff(0.85) < 5*tone.Rolloff(0.85) {
		t.Fatalf("rolloff: noise=%.0f tone=%.0f", noise.Rolloff(0.85), tone.Rolloff(0.85))
	}
}

func TestDescribe(t *testing.T) {
	const sr = 48000
	x := makeSine(sr, 300, sr)
	for i := 0; i < sr/10; i++ {
		x[i] *= float64(i) / float64(sr/10)
	}
	f, err := Describe(x, sr)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if math.Abs(f.DurationS-1) > 1e-9 {
		t.Fatalf("duration: %f", f.DurationS)
	}
	if f.Peak > 0.5+1e-9 || f.Peak < 0.49 {
		t.Fatalf("peak: %f", f.Peak)
	}
	if f.AttackS < 0.08 {
		t.Fatalf("attack: got %f want >= 0.08", f.AttackS)
	}
	if math.Abs(f.PeakHz-300) > 12 {
		t.Fatalf("peak frequency: %f", f.PeakHz)
	}
}

func BenchmarkCompare(b *testing.B) {
	ref := makeDecaySine(48000, 220, 3, 1)
	cand := makeDecayNoise(48000, 3, 1, 9)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(ref, cand, 48000)
	}
}

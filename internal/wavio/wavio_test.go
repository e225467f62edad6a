package wavio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadMonoRoundTrip(t *testing.T) {
	const sr = 48000
	in := make([]float32, 4800)
	for i := range in {
		in[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/sr))
	}
	path := filepath.Join(t.TempDir(), "out", "tone.wav")
	if err := WriteMono(path, in, sr); err != nil {
		t.Fatalf("WriteMono: %v", err)
	}
	got, gotSR, err := ReadMono(path)
	if err != nil {
		t.Fatalf("ReadMono: %v", err)
	}
	if gotSR != sr {
		t.Fatalf("sample rate: got %d want %d", gotSR, sr)
	}
	if len(got) != len(in) {
		t.Fatalf("length: got %d want %d", len(got), len(in))
	}
	for i := range in {
		if d := math.Abs(got[i] - float64(in[i])); d > 1e-3 {
			t.Fatalf("sample %d: got %f want %f", i, got[i], in[i])
		}
	}
}

func TestReadMonoMissingFile(t *testing.T) {
	if _, _, err := ReadMono(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Fatal("expected error")
	}
}

func TestResample(t *testing.T) {
	in := make([]float64, 4410)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 100 * float64(i) / 44100)
	}
	same, err := Resample(in, 44100, 44100)
	if err != nil || &same[0] != &in[0] {
		t.Fatalf("equal rates should return input: err=%v", err)
	}
	out, err := Resample(in, 44100, 48000)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	want := len(in) * 48000 / 44100
	if d := len(out) - want; d < -64 || d > 64 {
		t.Fatalf("resampled length: got %d want about %d", len(out), want)
	}
	if _, err := Resample(in, 0, 48000); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestRMSAndPeak(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}
	data := []float32{1, -1, 1, -1}
	if got := RMS(data); math.Abs(got-1) > 1e-9 {
		t.Fatalf("RMS: got %f", got)
	}
	if got := Peak([]float32{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak: got %f", got)
	}
}

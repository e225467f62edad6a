package space

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-growl/internal/wavio"
)

func directConvolve(x, h []float32) []float32 {
	out := make([]float32, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}
	return out
}

func maxAbsDiff(a, b []float32) float64 {
	d := 0.0
	for i := range a {
		d = max(d, math.Abs(float64(a[i]-b[i])))
	}
	return d
}

func TestConvolverMatchesDirectConvolution(t *testing.T) {
	c := NewConvolver(48000)
	input := make([]float32, 1000)
	for i := range input {
		input[i] = float32(math.Sin(float64(i)*0.07)) * 0.8
	}
	ir := []float32{1.0, 0.3, -0.2, 0.1, 0.05}
	if err := c.SetIR(ir); err != nil {
		t.Fatalf("SetIR: %v", err)
	}

	got, err := c.Render(input)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := directConvolve(input, ir)
	if len(got) != len(want) {
		t.Fatalf("length: got %d want %d", len(got), len(want))
	}
	if d := maxAbsDiff(got, want); d > 1e-4 {
		t.Fatalf("mismatch too high: max diff=%g", d)
	}
}

func TestConvolverStreamingMatchesRender(t *testing.T) {
	ir := []float32{0.5, 0.25, 0.125}
	input := make([]float32, 300)
	for i := range input {
		input[i] = float32(i%7) * 0.1
	}

	whole := NewConvolver(48000)
	_ = whole.SetIR(ir)
	a, err := whole.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	chunked := NewConvolver(48000)
	_ = chunked.SetIR(ir)
	b := make([]float32, len(input))
	// odd chunk lengths, some shorter than the IR
	for start, k := 0, 1; start < len(input); start, k = start+k, k%5+1 {
		end := min(start+k, len(input))
		if err := chunked.ProcessTo(b[start:end], input[start:end]); err != nil {
			t.Fatalf("ProcessTo: %v", err)
		}
	}
	if d := maxAbsDiff(a, b); d > 1e-5 {
		t.Fatalf("chunked output differs: %g", d)
	}
	if d := maxAbsDiff(a, directConvolve(input, ir)[:len(input)]); d > 1e-4 {
		t.Fatalf("streaming output differs from direct convolution: %g", d)
	}
}

func TestConvolverMix(t *testing.T) {
	c := NewConvolver(48000)
	_ = c.SetIR([]float32{0, 1})
	c.SetMix(0)
	in := []float32{1, 0, 0, 0}
	out, _ := c.Process(in)
	if out[0] != 1 || out[1] != 0 {
		t.Fatalf("dry output should equal input: %v", out)
	}

	c.Reset()
	c.SetMix(2)
	if c.Mix() != 1 {
		t.Fatalf("mix not clamped: %v", c.Mix())
	}
	out, _ = c.Process(in)
	if math.Abs(float64(out[0])) > 1e-5 || math.Abs(float64(out[1]-1)) > 1e-5 {
		t.Fatalf("wet output should be delayed input: %v", out)
	}
}

func TestConvolverResetClearsTail(t *testing.T) {
	c := NewConvolver(48000)
	_ = c.SetIR([]float32{1, 0.5, 0.25})
	_, _ = c.Process([]float32{1, 0, 0, 0})
	c.Reset()
	after, _ := c.Process([]float32{0, 0, 0, 0})
	if rms := wavio.RMS(after); rms > 1e-7 {
		t.Fatalf("expected silence after reset, got rms=%g", rms)
	}
}

func TestConvolverLoadsWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ir.wav")
	if err := wavio.WriteMono(path, []float32{0.5, 0.25, 0.1, 0}, 96000); err != nil {
		t.Fatalf("WriteMono: %v", err)
	}
	c := NewConvolver(48000)
	if err := c.SetIRFromWAV(path); err != nil {
		t.Fatalf("SetIRFromWAV: %v", err)
	}
	in := make([]float32, 256)
	in[0] = 1
	out, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if peak := wavio.Peak(out); peak < 1e-4 {
		t.Fatalf("expected non-silent output, peak=%g", peak)
	}
}

func TestConvolverRejectsShortDst(t *testing.T) {
	c := NewConvolver(48000)
	if err := c.ProcessTo(make([]float32, 2), make([]float32, 4)); err == nil {
		t.Fatal("expected error for short dst")
	}
	if err := c.SetIR([]float32{1, float32(math.NaN())}); err == nil {
		t.Fatal("expected error for non-finite ir")
	}
}

func TestGenerateEnvironments(t *testing.T) {
	for _, name := range Environments() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Environment(name, 48000)
			if err != nil {
				t.Fatalf("Environment: %v", err)
			}
			ir, err := Generate(cfg)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if want := int(math.Round(cfg.DurationS * 48000)); len(ir) != want {
				t.Fatalf("length: got %d want %d", len(ir), want)
			}
			var peak float64
			for i, v := range ir {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("non-finite sample at %d", i)
				}
				peak = max(peak, math.Abs(float64(v)))
			}
			if math.Abs(peak-cfg.NormalizePeak) > 1e-3 {
				t.Fatalf("peak: got %f want %f", peak, cfg.NormalizePeak)
			}
			tail := ir[len(ir)-int(cfg.FadeOutS*48000)/4:]
			if wavio.Peak(tail) > 0.05 {
				t.Fatalf("tail not faded: %f", wavio.Peak(tail))
			}
		})
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg, _ := Environment("cave", 32000)
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, _ := Generate(cfg)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic output at %d", i)
		}
	}
	cfg.Seed = 2
	c, _ := Generate(cfg)
	if maxAbsDiff(a, c) == 0 {
		t.Fatal("different seeds produced identical output")
	}
}

func TestEnvironmentUnknown(t *testing.T) {
	if _, err := Environment("ocean", 48000); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg, _ := Environment("den", 48000)
	cfg.Damping = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for damping 1")
	}
	cfg, _ = Environment("den", 4000)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for low sample rate")
	}
}

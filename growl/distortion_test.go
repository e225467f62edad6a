package growl

import (
	"math"
	"testing"
)

var allDistortionKinds = []DistortionKind{
	DistortionSoftClip, DistortionHardClip, DistortionWaveshape, DistortionChebyshev,
	DistortionBitcrush, DistortionWavefolder, DistortionHarmonicBalancer,
}

func TestSoftClipStaysInsideOpenUnitInterval(t *testing.T) {
	settings := []struct{ warmth, aggression float32 }{
		{0, 0}, {0.5, 0.5}, {0, 1}, {1, 1},
	}
	for _, s := range settings {
		d := NewDistortionStage()
		d.SetType(DistortionSoftClip)
		d.SetWarmth(s.warmth)
		d.SetAggression(s.aggression)
		for drive := float32(0); drive <= 10; drive += 0.25 {
			d.SetDrive(drive)
			for x := float32(-0.99); x <= 0.99; x += 0.01 {
				y := d.Process(x)
				if y <= -1 || y >= 1 {
					t.Fatalf("warmth=%v aggression=%v drive=%v x=%v: y=%v", s.warmth, s.aggression, drive, x, y)
				}
			}
			for _, x := range []float32{-0.9999, 0.9999} {
				if y := softClip(x*drive, drive); y <= -1 || y >= 1 {
					t.Fatalf("drive=%v: shaper reached %v", drive, y)
				}
			}
		}
	}
}

func TestBitcrushSixteenBitError(t *testing.T) {
	const x = 0.33333
	got := bitcrush(x, 0)
	if err := math.Abs(float64(got) - x); err > 1.0/65536 {
		t.Fatalf("16-bit error %v exceeds 1/2^16", err)
	}
}

func TestBitcrushTwoBitLevels(t *testing.T) {
	d := NewDistortionStage()
	d.SetType(DistortionBitcrush)
	d.SetDrive(1)
	d.SetWarmth(0)
	d.SetAggression(0)

	levels := map[float32]bool{}
	for x := float32(-1); x <= 1; x += 0.001 {
		y := d.Process(x)
		if y < -1 || y > 1 {
			t.Fatalf("x=%v: level %v outside [-1,1]", x, y)
		}
		levels[y] = true
	}
	levels[d.Process(1)] = true
	if len(levels) != 4 {
		t.Fatalf("expected exactly 4 levels, got %d: %v", len(levels), levels)
	}
}

func TestShaperFormulas(t *testing.T) {
	cases := []struct {
		name  string
		fn    shaper
		x     float32
		drive float32
		want  float64
	}{
		{"hardclip", hardClip, 3, 1, 1},
		{"hardclip negative", hardClip, -3, 1, -1},
		{"waveshape", waveshape, 0.5, 1, 0.5 + 0.3*0.25 + 0.1*0.125},
		{"waveshape clamp", waveshape, 2, 1, 1},
		{"chebyshev zero", chebyshev, 0, 1, -0.3},
		{"chebyshev one", chebyshev, 1, 1, 1},
		{"wavefold below threshold", wavefold, 0.4, 2, 0.4},
		{"wavefold once", wavefold, 0.7, 2, 0.2},
		{"wavefold reflect", wavefold, 1.2, 2, 0.3},
		{"wavefold negative", wavefold, -0.7, 2, -0.2},
		{"wavefold no drive", wavefold, 0.8, 0, 0.8},
		{"harmonic balance", harmonicBalance, 0.5, 1, 0.5},
		{"softclip", softClip, 0.5, 1, math.Tanh(0.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := float64(tc.fn(tc.x, tc.drive))
			if math.Abs(got-tc.want) > 1e-5 {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestDistortionWarmthBlend(t *testing.T) {
	d := NewDistortionStage()
	d.SetType(DistortionHardClip)
	d.SetDrive(4)
	d.SetAggression(0)

	d.SetWarmth(1)
	if got := d.Process(0.6); got != 0.6 {
		t.Fatalf("full warmth should pass the input, got %v", got)
	}
	d.SetWarmth(0)
	if got := d.Process(0.6); got != 1 {
		t.Fatalf("zero warmth should pass the shaped signal, got %v", got)
	}
	d.SetWarmth(0.5)
	if got := d.Process(0.6); math.Abs(float64(got)-0.8) > 1e-6 {
		t.Fatalf("half warmth: got %v want 0.8", got)
	}
}

func TestDistortionAggressionLimits(t *testing.T) {
	for _, kind := range allDistortionKinds {
		d := NewDistortionStage()
		d.SetType(kind)
		d.SetDrive(10)
		d.SetAggression(1)
		for x := float32(-1); x <= 1; x += 0.05 {
			if y := d.Process(x); y < -1 || y > 1 || !isFinite(y) {
				t.Fatalf("%s x=%v: %v", kind, x, y)
			}
		}
	}
}

func TestDistortionSetterClamps(t *testing.T) {
	d := NewDistortionStage()
	if d.Drive() != 1 || d.Warmth() != 0.5 || d.Aggression() != 0.5 || d.Type() != DistortionSoftClip {
		t.Fatalf("unexpected defaults")
	}
	d.SetDrive(20)
	d.SetWarmth(-1)
	d.SetAggression(3)
	if d.Drive() != MaxDrive || d.Warmth() != 0 || d.Aggression() != 1 {
		t.Fatalf("clamps failed: %v %v %v", d.Drive(), d.Warmth(), d.Aggression())
	}
	d.SetType(DistortionKind(99))
	if d.Type() != DistortionSoftClip {
		t.Fatalf("unknown kind should fall back to soft clip")
	}
}

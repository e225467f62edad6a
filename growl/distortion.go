package growl

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// DistortionKind selects the shaping function.
type DistortionKind int

const (
	DistortionSoftClip DistortionKind = iota
	DistortionHardClip
	DistortionWaveshape
	DistortionChebyshev
	DistortionBitcrush
	DistortionWavefolder
	DistortionHarmonicBalancer
)

var distortionKindNames = [...]string{
	"SoftClip", "HardClip", "Waveshape", "Chebyshev", "Bitcrush", "Wavefolder", "HarmonicBalancer",
}

func (k DistortionKind) String() string {
	if k < 0 || int(k) >= len(distortionKindNames) {
		return fmt.Sprintf("DistortionKind(%d)", int(k))
	}
	return distortionKindNames[k]
}

// ParseDistortionKind resolves a distortion kind by name (case-insensitive).
func ParseDistortionKind(name string) (DistortionKind, error) {
	for i, n := range distortionKindNames {
		if strings.EqualFold(n, name) {
			return DistortionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown distortion kind %q", name)
}

const (
	MaxDrive = 10

	// largest float32 below 1; saturated output never reaches full scale
	unitLimit = 0.99999994
)

type shaper func(x, drive float32) float32

var shapers = [...]shaper{
	DistortionSoftClip:         softClip,
	DistortionHardClip:         hardClip,
	DistortionWaveshape:        waveshape,
	DistortionChebyshev:        chebyshev,
	DistortionBitcrush:         bitcrush,
	DistortionWavefolder:       wavefold,
	DistortionHarmonicBalancer: harmonicBalance,
}

func softClip(x, _ float32) float32 {
	return clampf(math32.Tanh(x), -unitLimit, unitLimit)
}

func hardClip(x, _ float32) float32 {
	return clampf(x, -1, 1)
}

func waveshape(x, _ float32) float32 {
	x2 := x * x
	return clampf(x+0.3*x2+0.1*x2*x, -1, 1)
}

// chebyshev mixes T1, T2 and T3; the result is intentionally unclamped.
func chebyshev(x, _ float32) float32 {
	x2 := x * x
	t2 := 2*x2 - 1
	t3 := 4*x2*x - 3*x
	return 0.5*x + 0.3*t2 + 0.2*t3
}

// bitcrushBits maps drive onto a resolution of 16 down to 2 bits.
func bitcrushBits(drive float32) float32 {
	return clampf(16-drive*14, 2, 16)
}

// bitcrush snaps x onto 2^bits cells spanning [-1, 1] and returns the
// cell centre, so the error is at most half a cell (1/2^bits).
func bitcrush(x, drive float32) float32 {
	levels := math32.Pow(2, bitcrushBits(drive))
	step := 2 / levels
	maxIdx := math32.Ceil(levels) - 1
	idx := clampf(math32.Floor((clampf(x, -1, 1)+1)/step), 0, maxIdx)
	return clampf(-1+(idx+0.5)*step, -1, 1)
}

// wavefold reflects |x| back below 1/drive, repeatedly.
func wavefold(x, drive float32) float32 {
	if drive <= 0 {
		return x
	}
	threshold := 1 / drive
	ax := math32.Abs(x)
	if ax < threshold {
		return x
	}
	folded := math32.Mod(ax-threshold, 2*threshold)
	if folded > threshold {
		folded = 2*threshold - folded
	}
	if x < 0 {
		return -folded
	}
	return folded
}

func harmonicBalance(x, _ float32) float32 {
	return 0.5 * (math32.Cos(math32.Pi*x) + math32.Sin(math32.Pi*x))
}

// DistortionStage is a stateless drive → shaper → warmth blend → aggression chain.
type DistortionStage struct {
	kind       DistortionKind
	shape      shaper
	drive      float32
	warmth     float32
	aggression float32
}

// NewDistortionStage returns a soft clipper with drive 1, warmth 0.5 and aggression 0.5.
func NewDistortionStage() *DistortionStage {
	d := &DistortionStage{drive: 1, warmth: 0.5, aggression: 0.5}
	d.SetType(DistortionSoftClip)
	return d
}

func (d *DistortionStage) SetType(kind DistortionKind) {
	if kind < 0 || int(kind) >= len(shapers) {
		kind = DistortionSoftClip
	}
	d.kind = kind
	d.shape = shapers[kind]
}

func (d *DistortionStage) Type() DistortionKind { return d.kind }

func (d *DistortionStage) SetDrive(drive float32)  { d.drive = clampf(drive, 0, MaxDrive) }
func (d *DistortionStage) SetWarmth(w float32)     { d.warmth = clampf(w, 0, 1) }
func (d *DistortionStage) SetAggression(a float32) { d.aggression = clampf(a, 0, 1) }

func (d *DistortionStage) Drive() float32      { return d.drive }
func (d *DistortionStage) Warmth() float32     { return d.warmth }
func (d *DistortionStage) Aggression() float32 { return d.aggression }

// Process shapes one sample.
func (d *DistortionStage) Process(x float32) float32 {
	out := d.shape(x*d.drive, d.drive)*(1-d.warmth) + x*d.warmth
	if d.aggression > 0 {
		out = clampf(out*(1+0.5*d.aggression), -unitLimit, unitLimit)
	}
	return out
}

// ProcessBlock shapes src into dst; they may alias.
func (d *DistortionStage) ProcessBlock(dst, src []float32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = d.Process(src[i])
	}
}

// Reset is a no-op; the stage holds no signal state.
func (d *DistortionStage) Reset() {}

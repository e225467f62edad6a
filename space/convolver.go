// Package space places a rendered voice in a synthetic or recorded
// environment by convolving it with an impulse response.
package space

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-growl/internal/wavio"
)

// Convolver is a block overlap-add mono convolver with a wet/dry mix.
// Blocks may have any length; the IR tail is carried between calls.
type Convolver struct {
	sampleRate int
	wet        float32

	ir      []float32
	tail    []float32 // len(ir)-1 samples still owed to later blocks
	scratch []float32
}

// NewConvolver returns a fully wet convolver with an identity IR.
func NewConvolver(sampleRate int) *Convolver {
	c := &Convolver{sampleRate: sampleRate, wet: 1}
	_ = c.SetIR([]float32{1})
	return c
}

func (c *Convolver) SampleRate() int { return c.sampleRate }

// IRLength is the length in samples of the loaded IR.
func (c *Convolver) IRLength() int { return len(c.ir) }

// SetMix sets the wet share in [0,1]; the dry share is 1-wet.
func (c *Convolver) SetMix(wet float32) {
	c.wet = min(max(wet, 0), 1)
}

func (c *Convolver) Mix() float32 { return c.wet }

// SetIR replaces the impulse response and clears the tail. An empty IR is
// the identity.
func (c *Convolver) SetIR(ir []float32) error {
	if len(ir) == 0 {
		ir = []float32{1}
	}
	for i, v := range ir {
		if !isFinite32(v) {
			return fmt.Errorf("space: non-finite ir sample at %d", i)
		}
	}
	c.ir = append(c.ir[:0], ir...)
	c.tail = make([]float32, len(ir)-1)
	return nil
}

// SetIRFromWAV loads a WAV IR, mixing channels down and resampling to the
// convolver rate.
func (c *Convolver) SetIRFromWAV(path string) error {
	ir, err := wavio.ReadMonoAt(path, c.sampleRate)
	if err != nil {
		return err
	}
	if len(ir) == 0 {
		return fmt.Errorf("space: empty impulse response: %s", path)
	}
	return c.SetIR(wavio.ToFloat32(ir))
}

// Process convolves input and returns a new slice of the same length.
func (c *Convolver) Process(input []float32) ([]float32, error) {
	output := make([]float32, len(input))
	if err := c.ProcessTo(output, input); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessTo writes len(input) samples into dst, which must be at least as
// long as input. On error dst and the tail are left untouched.
func (c *Convolver) ProcessTo(dst, input []float32) error {
	n := len(input)
	if n == 0 {
		return nil
	}
	if len(dst) < n {
		return fmt.Errorf("space: dst holds %d samples, need %d", len(dst), n)
	}
	need := n + len(c.ir) - 1
	if cap(c.scratch) < need {
		c.scratch = make([]float32, need)
	}
	conv := c.scratch[:need]
	if err := algofft.ConvolveReal(conv, input, c.ir); err != nil {
		return fmt.Errorf("space: convolve: %w", err)
	}
	for i, v := range c.tail {
		conv[i] += v
	}

	dry := 1 - c.wet
	for i := 0; i < n; i++ {
		dst[i] = dry*input[i] + c.wet*conv[i]
	}
	copy(c.tail, conv[n:])
	return nil
}

// Render convolves a finished signal and appends the IR tail. The
// streaming state is not touched.
func (c *Convolver) Render(input []float32) ([]float32, error) {
	if len(input) == 0 {
		return nil, nil
	}
	out := make([]float32, len(input)+len(c.ir)-1)
	if err := algofft.ConvolveReal(out, input, c.ir); err != nil {
		return nil, fmt.Errorf("space: convolve: %w", err)
	}
	dry := 1 - c.wet
	for i := range out {
		out[i] *= c.wet
		if i < len(input) {
			out[i] += dry * input[i]
		}
	}
	return out, nil
}

// Reset clears the overlap history.
func (c *Convolver) Reset() {
	clear(c.tail)
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

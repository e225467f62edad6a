package dsp

// DefaultSeed is the seed used by generators that are not given one.
const DefaultSeed uint32 = 123456789

// XorShift32 is a 32-bit xorshift generator (13/17/5). A zero seed is
// replaced by DefaultSeed since zero is a fixed point.
type XorShift32 struct {
	seed  uint32
	state uint32
}

// NewXorShift32 creates a generator with the given seed.
func NewXorShift32(seed uint32) XorShift32 {
	if seed == 0 {
		seed = DefaultSeed
	}
	return XorShift32{seed: seed, state: seed}
}

// Next advances the generator and returns the new state.
func (x *XorShift32) Next() uint32 {
	if x.state == 0 {
		x.Reset()
	}
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Bipolar returns a uniform value in [-1, 1].
func (x *XorShift32) Bipolar() float32 {
	s := x.Next()
	return float32(s&0x7FFFFFFF)/float32(0x7FFFFFFF)*2 - 1
}

// Reset restores the seed.
func (x *XorShift32) Reset() {
	if x.seed == 0 {
		x.seed = DefaultSeed
	}
	x.state = x.seed
}

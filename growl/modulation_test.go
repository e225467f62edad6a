package growl

import (
	"math"
	"testing"
)

func TestEnvelopeStageProgression(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 64)
	if m.EnvelopeStage() != StageIdle || m.EnvelopeOutput() != 0 {
		t.Fatalf("expected idle envelope at start")
	}

	m.NoteOn()
	prev := m.EnvelopeOutput()
	for guard := 0; m.EnvelopeStage() == StageAttack; guard++ {
		if guard > 1000 {
			t.Fatalf("attack never finished")
		}
		m.Process(64)
		lvl := m.EnvelopeOutput()
		if lvl < prev {
			t.Fatalf("attack not monotonic: %v after %v", lvl, prev)
		}
		prev = lvl
	}
	if prev != 1 {
		t.Fatalf("attack should peak at 1, got %v", prev)
	}

	for guard := 0; m.EnvelopeStage() == StageDecay; guard++ {
		if guard > 1000 {
			t.Fatalf("decay never finished")
		}
		m.Process(64)
		lvl := m.EnvelopeOutput()
		if lvl > prev || lvl < EnvelopeSustain {
			t.Fatalf("decay out of order: %v after %v", lvl, prev)
		}
		prev = lvl
	}
	if m.EnvelopeStage() != StageSustain {
		t.Fatalf("expected sustain, got %s", m.EnvelopeStage())
	}
	for i := 0; i < 200; i++ {
		m.Process(64)
		if m.EnvelopeOutput() != EnvelopeSustain {
			t.Fatalf("sustain drifted to %v", m.EnvelopeOutput())
		}
		if !m.EnvelopeGated() {
			t.Fatalf("sustain must be gated")
		}
	}

	m.NoteOff()
	prev = m.EnvelopeOutput()
	for guard := 0; m.EnvelopeStage() == StageRelease; guard++ {
		if guard > 1000 {
			t.Fatalf("release never finished")
		}
		if m.EnvelopeGated() {
			t.Fatalf("release must not be gated")
		}
		m.Process(64)
		lvl := m.EnvelopeOutput()
		if lvl > prev {
			t.Fatalf("release not monotonic: %v after %v", lvl, prev)
		}
		prev = lvl
	}
	for i := 0; i < 50; i++ {
		m.Process(64)
		if m.EnvelopeStage() != StageIdle || m.EnvelopeOutput() != 0 {
			t.Fatalf("expected idle at zero, got %s %v", m.EnvelopeStage(), m.EnvelopeOutput())
		}
	}
}

func TestEnvelopeAttackDuration(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 48)
	m.NoteOn()
	calls := 0
	for m.EnvelopeStage() == StageAttack {
		m.Process(48)
		calls++
	}
	// 10 ms attack at 1 ms per call
	if calls < 9 || calls > 11 {
		t.Fatalf("attack took %d calls, want ~10", calls)
	}
}

func TestLFOSineAndPhase(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 480)
	for i := 0; i < 25; i++ {
		m.Process(480)
	}
	// 1 Hz for 0.25 s at depth 0.5
	if got := m.LFOOutput(0); math.Abs(float64(got)-0.5) > 1e-3 {
		t.Fatalf("lfo output %v want 0.5", got)
	}

	m.SetLFORate(1, 100)
	for i := 0; i < 1000; i++ {
		m.Process(4799)
		p := m.LFO(1).Phase()
		if p < 0 || p >= 1 {
			t.Fatalf("lfo phase left [0,1): %v", p)
		}
	}
}

func TestLFOWaveformsAreDistinct(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 480)
	m.SetLFOWaveform(0, LFOTriangle)
	m.SetLFOWaveform(1, LFOSawUp)
	m.SetLFOWaveform(2, LFOSawDown)
	m.SetLFOWaveform(3, LFOSquare)
	for i := 0; i < 25; i++ {
		m.Process(480)
	}
	want := []float64{0, -0.25, 0.25, 0.5}
	for i, w := range want {
		if got := float64(m.LFOOutput(i)); math.Abs(got-w) > 1e-3 {
			t.Fatalf("lfo %d (%s): got %v want %v", i, m.LFO(i).Waveform, got, w)
		}
	}
}

func TestLFORandomWaveformsStayBounded(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 256)
	m.SetLFOWaveform(0, LFOSampleHold)
	m.SetLFOWaveform(1, LFONoise)
	m.SetLFORate(0, 20)
	m.SetLFODepth(0, 1)
	m.SetLFODepth(1, 1)
	distinct := map[float32]bool{}
	for i := 0; i < 2000; i++ {
		m.Process(256)
		for j := 0; j < 2; j++ {
			if v := m.LFOOutput(j); v < -1 || v > 1 {
				t.Fatalf("lfo %d out of range: %v", j, v)
			}
		}
		distinct[m.LFOOutput(0)] = true
	}
	if len(distinct) < 10 {
		t.Fatalf("sample and hold produced only %d values", len(distinct))
	}
}

func TestModulationInvalidIndexAndClamps(t *testing.T) {
	m := NewModulationSystem()
	m.SetLFORate(0, 1000)
	m.SetLFORate(1, 0)
	m.SetLFODepth(2, 3)
	if m.LFO(0).Rate != MaxLFORate || m.LFO(1).Rate != MinLFORate || m.LFO(2).Depth != 1 {
		t.Fatalf("clamps failed: %+v %+v %+v", m.LFO(0), m.LFO(1), m.LFO(2))
	}
	m.SetLFORate(4, 5)
	m.SetLFORate(-1, 5)
	m.SetLFOWaveform(7, LFOSquare)
	if m.LFOOutput(4) != 0 || m.LFOOutput(-1) != 0 {
		t.Fatalf("invalid index must read zero")
	}
}

func TestModulationResetParksEnvelope(t *testing.T) {
	m := NewModulationSystem()
	m.Prepare(48000, 64)
	m.NoteOn()
	for i := 0; i < 10; i++ {
		m.Process(64)
	}
	m.Reset()
	if m.EnvelopeStage() != StageIdle || m.EnvelopeOutput() != 0 || m.LFO(0).Phase() != 0 {
		t.Fatalf("reset left state behind")
	}
}

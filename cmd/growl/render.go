package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-growl/growl"
	"github.com/cwbudde/algo-growl/internal/wavio"
	"github.com/cwbudde/algo-growl/preset"
	"github.com/cwbudde/algo-growl/space"
)

type renderOptions struct {
	sampleRate int
	outputRate int
	blockSize  int
	notes      []int
	velocity   float64
	hold       float64
	tail       float64
	space      string
	irPath     string
	spaceMix   float64
	normalize  float64
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		sampleRate: 48000,
		blockSize:  256,
		notes:      []int{48},
		velocity:   1,
		hold:       1.5,
		tail:       0.5,
		spaceMix:   0.35,
	}
}

var (
	renderOpts   = defaultRenderOptions()
	renderPreset string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a preset to a WAV file",
	Long: `Render a factory preset (index, preset name or animal) or a preset JSON file.
All notes are struck together, held, released and followed by a tail.

Examples:
  growl render --preset "Dragon Roar" --notes 36,43 -o dragon.wav
  growl render --preset my.json --space cave --space-mix 0.5 -o cave.wav`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderPreset, "preset", "p", "0", "Preset index, name, animal or JSON file")
	f.StringVarP(&renderOutput, "output", "o", "growl.wav", "Output WAV path")
	addRenderFlags(renderCmd, &renderOpts)
}

func addRenderFlags(cmd *cobra.Command, o *renderOptions) {
	f := cmd.Flags()
	f.IntVar(&o.sampleRate, "sample-rate", o.sampleRate, "Engine sample rate in Hz")
	f.IntVar(&o.outputRate, "output-rate", 0, "Output sample rate (0 = engine rate)")
	f.IntVar(&o.blockSize, "block-size", o.blockSize, "Engine block size in samples")
	f.IntSliceVar(&o.notes, "notes", o.notes, "MIDI notes to play")
	f.Float64Var(&o.velocity, "velocity", o.velocity, "Note velocity 0..1")
	f.Float64Var(&o.hold, "hold", o.hold, "Seconds before note-off")
	f.Float64Var(&o.tail, "tail", o.tail, "Seconds rendered after note-off")
	f.StringVar(&o.space, "space", "", "Environment IR: "+strings.Join(space.Environments(), "|"))
	f.StringVar(&o.irPath, "ir", "", "Environment IR WAV file (overrides --space)")
	f.Float64Var(&o.spaceMix, "space-mix", o.spaceMix, "Wet share of the environment 0..1")
	f.Float64Var(&o.normalize, "normalize", 0, "Normalize output peak to this level (0 = off)")
}

func runRender(cmd *cobra.Command, args []string) error {
	params, err := resolvePreset(renderPreset)
	if err != nil {
		return err
	}
	logger.Debug("preset resolved", "ref", renderPreset, "animal", params.AnimalName, "name", params.PresetName)

	out, rate, err := renderToFile(params, renderOpts, renderOutput)
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%s): %d samples at %d Hz, peak %.3f -> %s\n",
		params.PresetName, params.AnimalName, len(out), rate, wavio.Peak(out), renderOutput)
	return nil
}

// resolvePreset loads ref as a JSON file when it names one, else looks it
// up in the factory bank.
func resolvePreset(ref string) (*growl.AcousticParams, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		return preset.LoadJSON(ref)
	}
	if st, err := os.Stat(ref); err == nil && !st.IsDir() {
		return preset.LoadJSON(ref)
	}
	p, err := preset.Lookup(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve preset: %w", err)
	}
	return p, nil
}

func renderToFile(params *growl.AcousticParams, o renderOptions, path string) ([]float32, int, error) {
	out, err := renderVoice(params, o)
	if err != nil {
		return nil, 0, err
	}
	out, err = applySpace(out, o)
	if err != nil {
		return nil, 0, err
	}
	out, rate, err := convertRate(out, o)
	if err != nil {
		return nil, 0, err
	}
	if o.normalize > 0 {
		normalizePeak(out, float32(o.normalize))
	}
	if err := wavio.WriteMono(path, out, rate); err != nil {
		return nil, 0, fmt.Errorf("write %s: %w", path, err)
	}
	return out, rate, nil
}

// renderVoice plays o.notes together through a fresh processor.
func renderVoice(params *growl.AcousticParams, o renderOptions) ([]float32, error) {
	if params == nil {
		return nil, errors.New("nil params")
	}
	if o.sampleRate < 8000 {
		return nil, fmt.Errorf("sample rate too low: %d", o.sampleRate)
	}
	if o.blockSize < 16 {
		o.blockSize = 16
	}
	if len(o.notes) == 0 {
		return nil, errors.New("no notes to render")
	}
	if len(o.notes) > growl.MaxVoices {
		return nil, fmt.Errorf("at most %d notes, got %d", growl.MaxVoices, len(o.notes))
	}

	p := growl.NewVoiceProcessor(float32(o.sampleRate), o.blockSize)
	p.Apply(params)
	for _, n := range o.notes {
		p.NoteOn(n, float32(o.velocity))
	}

	holdFrames := max(int(o.hold*float64(o.sampleRate)), 0)
	tailFrames := max(int(o.tail*float64(o.sampleRate)), 0)
	out := make([]float32, holdFrames+tailFrames)

	renderFrames(p, out[:holdFrames], o.blockSize)
	p.AllNotesOff()
	renderFrames(p, out[holdFrames:], o.blockSize)
	return out, nil
}

func renderFrames(p *growl.VoiceProcessor, out []float32, blockSize int) {
	for pos := 0; pos < len(out); pos += blockSize {
		p.ProcessBlock(out[pos:min(pos+blockSize, len(out))])
	}
}

func applySpace(in []float32, o renderOptions) ([]float32, error) {
	if o.irPath == "" && o.space == "" {
		return in, nil
	}
	c := space.NewConvolver(o.sampleRate)
	c.SetMix(float32(o.spaceMix))
	if o.irPath != "" {
		if err := c.SetIRFromWAV(o.irPath); err != nil {
			return nil, fmt.Errorf("load ir: %w", err)
		}
		logger.Debug("environment loaded", "path", o.irPath, "length", c.IRLength())
	} else {
		cfg, err := space.Environment(o.space, o.sampleRate)
		if err != nil {
			return nil, err
		}
		ir, err := space.Generate(cfg)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", o.space, err)
		}
		if err := c.SetIR(ir); err != nil {
			return nil, err
		}
		logger.Debug("environment generated", "space", o.space, "length", len(ir))
	}
	return c.Render(in)
}

func convertRate(in []float32, o renderOptions) ([]float32, int, error) {
	if o.outputRate <= 0 || o.outputRate == o.sampleRate {
		return in, o.sampleRate, nil
	}
	res, err := wavio.Resample(wavio.ToFloat64(in), o.sampleRate, o.outputRate)
	if err != nil {
		return nil, 0, fmt.Errorf("resample output: %w", err)
	}
	return wavio.ToFloat32(res), o.outputRate, nil
}

func normalizePeak(x []float32, target float32) {
	peak := wavio.Peak(x)
	if peak < 1e-9 {
		return
	}
	g := target / peak
	for i := range x {
		x[i] *= g
	}
}

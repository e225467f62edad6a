package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-growl/internal/wavio"
	"github.com/cwbudde/algo-growl/space"
)

var (
	irEnv        string
	irOutput     string
	irSampleRate int
	irSeed       int64
	irDuration   float64
)

var irCmd = &cobra.Command{
	Use:   "ir",
	Short: "Write a synthetic environment impulse response",
	Long: `Generate one of the built-in environment impulse responses and write it
to a mono WAV file usable with render --ir.

Example:
  growl ir --env canyon --seed 3 -o canyon.wav`,
	Args: cobra.NoArgs,
	RunE: runIR,
}

func init() {
	f := irCmd.Flags()
	f.StringVarP(&irEnv, "env", "e", "cave", "Environment name")
	f.StringVarP(&irOutput, "output", "o", "ir.wav", "Output WAV path")
	f.IntVar(&irSampleRate, "sample-rate", 48000, "Sample rate in Hz")
	f.Int64Var(&irSeed, "seed", 1, "Random seed")
	f.Float64Var(&irDuration, "duration", 0, "Override duration in seconds (0 = environment default)")
}

func runIR(cmd *cobra.Command, args []string) error {
	ir, err := generateIR(irEnv, irSampleRate, irSeed, irDuration)
	if err != nil {
		return err
	}
	if err := wavio.WriteMono(irOutput, ir, irSampleRate); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s IR (%d samples at %d Hz) -> %s\n", irEnv, len(ir), irSampleRate, irOutput)
	return nil
}

func generateIR(env string, sampleRate int, seed int64, duration float64) ([]float32, error) {
	cfg, err := space.Environment(env, sampleRate)
	if err != nil {
		return nil, err
	}
	cfg.Seed = seed
	if duration > 0 {
		cfg.DurationS = duration
	}
	return space.Generate(cfg)
}

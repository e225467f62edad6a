// Command growl renders, inspects and fits creature vocal presets offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var logLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "growl",
	Short: "Offline renderer and tooling for the creature vocal synth",
	Long: `growl renders factory or JSON presets of the creature vocal synth to WAV,
places them in synthetic environments and fits presets to reference recordings.

Examples:
  growl render --preset "Lion Roar" --notes 45 -o lion.wav
  growl presets list --category mythical
  growl fit --reference roar.wav --preset 0 -o fitted.json`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := InitLogger(logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(irCmd)
}

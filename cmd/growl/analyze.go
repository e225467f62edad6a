package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-growl/analysis"
	"github.com/cwbudde/algo-growl/internal/wavio"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <reference.wav> [candidate.wav]",
	Short: "Describe a recording or compare two recordings",
	Long: `With one file, print level, attack and spectral features. With two, also
print the distance metrics used by fit; the candidate is resampled to the
reference rate.

Example:
  growl analyze roar.wav growl.wav`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print as JSON")
}

type analyzeReport struct {
	Reference string             `json:"reference"`
	Candidate string             `json:"candidate,omitempty"`
	RefStats  analysis.Features  `json:"reference_features"`
	CandStats *analysis.Features `json:"candidate_features,omitempty"`
	Metrics   *analysis.Metrics  `json:"metrics,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ref, sr, err := wavio.ReadMono(args[0])
	if err != nil {
		return fmt.Errorf("read reference: %w", err)
	}
	rep := analyzeReport{Reference: args[0]}
	rep.RefStats, err = analysis.Describe(ref, sr)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		cand, err := wavio.ReadMonoAt(args[1], sr)
		if err != nil {
			return fmt.Errorf("read candidate: %w", err)
		}
		feats, err := analysis.Describe(cand, sr)
		if err != nil {
			return err
		}
		m := analysis.Compare(ref, cand, sr)
		rep.Candidate = args[1]
		rep.CandStats = &feats
		rep.Metrics = &m
	}

	w := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printFeatures(w, rep.Reference, rep.RefStats)
	if rep.CandStats != nil {
		printFeatures(w, rep.Candidate, *rep.CandStats)
		m := rep.Metrics
		fmt.Fprintf(w, "Distance: score=%.4f similarity=%.2f%% lag=%d\n", m.Score, m.Similarity*100, m.LagSamples)
		fmt.Fprintf(w, "  envelope %.2f dB  spectral %.2f dB  centroid ratio %.3f  decay diff %.2f dB/s\n",
			m.EnvelopeRMSEDB, m.SpectralRMSEDB, m.CentroidRatio, m.DecayDiffDBPerS)
	}
	return nil
}

func printFeatures(w io.Writer, name string, f analysis.Features) {
	fmt.Fprintf(w, "%s: %.2fs rms=%.4f peak=%.4f attack=%.3fs\n", name, f.DurationS, f.RMS, f.Peak, f.AttackS)
	fmt.Fprintf(w, "  centroid %.0f Hz  rolloff %.0f Hz  peak %.0f Hz  flatness %.3f\n",
		f.CentroidHz, f.RolloffHz, f.PeakHz, f.Flatness)
}

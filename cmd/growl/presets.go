package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-growl/preset"
)

var (
	presetsCategory string
	presetsJSON     bool
	presetsOutDir   string
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Inspect and export the factory presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List factory presets",
	Long: `List the factory bank, optionally filtered by category.

Examples:
  growl presets list
  growl presets list --category "big cats" --json`,
	Args: cobra.NoArgs,
	RunE: runPresetsList,
}

var presetsExportCmd = &cobra.Command{
	Use:   "export [preset...]",
	Short: "Write factory presets as JSON files",
	Long: `Write the named presets (index, name or animal), or every factory preset
when none are given, to one JSON file each.

Example:
  growl presets export --dir presets "Wolf Howl" 31`,
	RunE: runPresetsExport,
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsExportCmd)

	presetsListCmd.Flags().StringVarP(&presetsCategory, "category", "c", "", "Only list this category")
	presetsListCmd.Flags().BoolVar(&presetsJSON, "json", false, "Print as JSON")
	presetsExportCmd.Flags().StringVarP(&presetsOutDir, "dir", "d", "presets", "Output directory")
}

type presetEntry struct {
	Index    int     `json:"index"`
	Category string  `json:"category"`
	Animal   string  `json:"animal"`
	Name     string  `json:"name"`
	SizeFeet float32 `json:"size_feet"`
}

func listPresets(category string) ([]presetEntry, error) {
	indices := make([]int, preset.Count())
	for i := range indices {
		indices[i] = i
	}
	if category != "" {
		c, err := preset.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		indices = preset.FindByCategory(c)
	}

	out := make([]presetEntry, 0, len(indices))
	for _, i := range indices {
		p, err := preset.Get(i)
		if err != nil {
			return nil, err
		}
		c, _ := preset.CategoryOf(i)
		out = append(out, presetEntry{
			Index:    i,
			Category: c.String(),
			Animal:   p.AnimalName,
			Name:     p.PresetName,
			SizeFeet: p.SizeFeet,
		})
	}
	return out, nil
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	entries, err := listPresets(presetsCategory)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if presetsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCATEGORY\tANIMAL\tPRESET\tSIZE (ft)")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\n", e.Index, e.Category, e.Animal, e.Name, e.SizeFeet)
	}
	return tw.Flush()
}

func runPresetsExport(cmd *cobra.Command, args []string) error {
	refs := args
	if len(refs) == 0 {
		for i := 0; i < preset.Count(); i++ {
			refs = append(refs, fmt.Sprint(i))
		}
	}
	if err := os.MkdirAll(presetsOutDir, 0o755); err != nil {
		return err
	}
	for _, ref := range refs {
		p, err := preset.Lookup(ref)
		if err != nil {
			return err
		}
		path := filepath.Join(presetsOutDir, presetFileName(p.PresetName))
		if err := preset.SaveJSON(path, p); err != nil {
			return fmt.Errorf("export %q: %w", ref, err)
		}
		logger.Info("preset exported", "preset", p.PresetName, "path", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d presets to %s\n", len(refs), presetsOutDir)
	return nil
}

// presetFileName turns "Cyber-Tiger Roar" into "cyber_tiger_roar.json".
func presetFileName(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	if b.Len() == 0 {
		return "preset.json"
	}
	return b.String() + ".json"
}

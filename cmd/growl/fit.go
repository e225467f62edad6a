package main

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/mayfly"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-growl/analysis"
	"github.com/cwbudde/algo-growl/growl"
	"github.com/cwbudde/algo-growl/internal/wavio"
	"github.com/cwbudde/algo-growl/preset"
)

var (
	fitOpts       = defaultRenderOptions()
	fitReference  string
	fitPreset     string
	fitOutput     string
	fitReport     string
	fitRender     string
	fitKnobs      string
	fitVariant    string
	fitPop        int
	fitRoundEvals int
	fitMaxEvals   int
	fitTimeBudget float64
	fitWorkers    int
	fitSeed       int64
	fitTopK       int
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit preset knobs to a reference recording",
	Long: `Search size, formant scale, drive, mixes, resonance and tone so that a
render of the starting preset matches a reference recording, using the
Mayfly optimizer. The best preset is written as JSON.

Example:
  growl fit --reference lion.wav --preset "Lion Roar" --notes 40 \
    --hold 1.2 --tail 0.6 -o lion_fit.json --render lion_fit.wav`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	f := fitCmd.Flags()
	f.StringVarP(&fitReference, "reference", "r", "", "Reference WAV (required)")
	f.StringVarP(&fitPreset, "preset", "p", "0", "Starting preset index, name, animal or JSON file")
	f.StringVarP(&fitOutput, "output", "o", "fitted.json", "Output preset JSON path")
	f.StringVar(&fitReport, "report", "", "Report JSON path (default: <output>.report.json)")
	f.StringVar(&fitRender, "render", "", "Also render the best preset to this WAV path")
	f.StringVar(&fitKnobs, "knobs", "all", "Comma-separated knobs to optimize")
	f.StringVar(&fitVariant, "mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	f.IntVar(&fitPop, "mayfly-pop", 10, "Male and female population size per Mayfly run")
	f.IntVar(&fitRoundEvals, "mayfly-round-evals", 200, "Target eval budget per Mayfly round")
	f.IntVar(&fitMaxEvals, "max-evals", 600, "Maximum objective evaluations")
	f.Float64Var(&fitTimeBudget, "time-budget", 120, "Time budget in seconds")
	f.IntVar(&fitWorkers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	f.Int64Var(&fitSeed, "seed", 1, "Random seed")
	f.IntVar(&fitTopK, "top-k", 5, "Top candidates kept in the report")
	addRenderFlags(fitCmd, &fitOpts)
	_ = fitCmd.MarkFlagRequired("reference")
}

type topCandidate struct {
	Eval       int                `json:"eval"`
	Score      float64            `json:"score"`
	Similarity float64            `json:"similarity"`
	Knobs      map[string]float64 `json:"knobs"`
}

type fitConfig struct {
	reference   []float64
	base        *growl.AcousticParams
	defs        []knobDef
	render      renderOptions
	variant     string
	pop         int
	roundEvals  int
	maxEvals    int
	timeBudget  time.Duration
	workers     int
	seed        int64
	topK        int
	reportEvery int
}

type fitResult struct {
	best    []float64
	metrics analysis.Metrics
	params  *growl.AcousticParams
	top     []topCandidate
	evals   int
	elapsed time.Duration
}

type fitState struct {
	mu      sync.Mutex
	best    []float64
	metrics analysis.Metrics
	top     []topCandidate
}

type fitReportFile struct {
	ReferencePath  string             `json:"reference_path"`
	StartPreset    string             `json:"start_preset"`
	OutputPreset   string             `json:"output_preset"`
	SampleRate     int                `json:"sample_rate"`
	Notes          []int              `json:"notes"`
	HoldSeconds    float64            `json:"hold_seconds"`
	TailSeconds    float64            `json:"tail_seconds"`
	Evaluations    int                `json:"evaluations"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	MayflyVariant  string             `json:"mayfly_variant"`
	BestScore      float64            `json:"best_score"`
	BestSimilarity float64            `json:"best_similarity"`
	BestMetrics    analysis.Metrics   `json:"best_metrics"`
	BestKnobs      map[string]float64 `json:"best_knobs"`
	TopCandidates  []topCandidate     `json:"top_candidates,omitempty"`
}

func runFit(cmd *cobra.Command, args []string) error {
	if fitMaxEvals < 1 {
		return fmt.Errorf("max-evals must be >= 1")
	}
	if fitTimeBudget <= 0 {
		return fmt.Errorf("time-budget must be > 0")
	}
	defs, err := parseKnobs(fitKnobs)
	if err != nil {
		return fmt.Errorf("--knobs: %w", err)
	}
	base, err := resolvePreset(fitPreset)
	if err != nil {
		return err
	}
	ref, err := wavio.ReadMonoAt(fitReference, fitOpts.sampleRate)
	if err != nil {
		return fmt.Errorf("read reference: %w", err)
	}

	cfg := &fitConfig{
		reference:   ref,
		base:        base,
		defs:        defs,
		render:      fitOpts,
		variant:     strings.ToLower(fitVariant),
		pop:         max(fitPop, 2),
		roundEvals:  max(fitRoundEvals, 1),
		maxEvals:    fitMaxEvals,
		timeBudget:  time.Duration(fitTimeBudget * float64(time.Second)),
		workers:     fitWorkers,
		seed:        fitSeed,
		topK:        max(fitTopK, 1),
		reportEvery: 25,
	}
	logger.Info("fit started", "reference", fitReference, "preset", base.PresetName, "knobs", len(defs), "max_evals", cfg.maxEvals)

	res, err := runOptimization(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Best score=%.4f similarity=%.2f%% after %d evals (%.1fs)\n",
		res.metrics.Score, res.metrics.Similarity*100, res.evals, res.elapsed.Seconds())

	res.params.PresetName = strings.TrimSpace(res.params.PresetName + " (fit)")
	if err := preset.SaveJSON(fitOutput, res.params); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	reportPath := fitReport
	if reportPath == "" {
		reportPath = strings.TrimSuffix(fitOutput, ".json") + ".report.json"
	}
	rep := fitReportFile{
		ReferencePath:  fitReference,
		StartPreset:    fitPreset,
		OutputPreset:   fitOutput,
		SampleRate:     fitOpts.sampleRate,
		Notes:          fitOpts.notes,
		HoldSeconds:    fitOpts.hold,
		TailSeconds:    fitOpts.tail,
		Evaluations:    res.evals,
		ElapsedSeconds: res.elapsed.Seconds(),
		MayflyVariant:  cfg.variant,
		BestScore:      res.metrics.Score,
		BestSimilarity: res.metrics.Similarity,
		BestMetrics:    res.metrics,
		BestKnobs:      knobMap(defs, res.best),
		TopCandidates:  res.top,
	}
	if err := writeJSON(reportPath, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Wrote %s and %s\n", fitOutput, reportPath)

	if fitRender != "" {
		if _, _, err := renderToFile(res.params, fitOpts, fitRender); err != nil {
			return err
		}
		fmt.Printf("Rendered best preset -> %s\n", fitRender)
	}
	return nil
}

func runOptimization(cfg *fitConfig) (*fitResult, error) {
	start := time.Now()
	deadline := start.Add(cfg.timeBudget)

	initial := knobValues(cfg.base, cfg.defs)
	initialMetrics, err := evaluateKnobs(cfg, initial)
	if err != nil {
		return nil, fmt.Errorf("initial evaluation failed: %w", err)
	}
	fmt.Printf("Start score=%.4f similarity=%.2f%%\n", initialMetrics.Score, initialMetrics.Similarity*100)

	state := &fitState{
		best:    initial,
		metrics: initialMetrics,
		top:     updateTopCandidates(nil, cfg.topK, 1, initialMetrics, cfg.defs, initial),
	}

	var evals int64 = 1
	var rounds int64
	var improves int64

	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if time.Now().After(deadline) {
					return
				}
				remaining := cfg.maxEvals - int(atomic.LoadInt64(&evals))
				if remaining <= 0 {
					return
				}
				round := atomic.AddInt64(&rounds, 1)
				budget := min(cfg.roundEvals, remaining)
				iters := max(1, budget/(2*cfg.pop))

				mcfg, err := newMayflyConfig(cfg.variant, cfg.pop, len(cfg.defs), iters)
				if err != nil {
					logger.Error("mayfly setup failed", "round", round, "err", err)
					return
				}
				mcfg.Rand = rand.New(rand.NewSource(cfg.seed + round*7919))
				mcfg.ObjectiveFunc = func(pos []float64) float64 {
					if time.Now().After(deadline) {
						return currentBestScore(state) + 1.0
					}
					evalNum, ok := reserveEval(&evals, cfg.maxEvals)
					if !ok {
						return currentBestScore(state) + 1.0
					}

					vals := fromNormalized(pos, cfg.defs)
					m, err := evaluateKnobs(cfg, vals)
					if err != nil {
						logger.Debug("candidate failed", "eval", evalNum, "err", err)
						return currentBestScore(state) + 0.8
					}

					state.mu.Lock()
					state.top = updateTopCandidates(state.top, cfg.topK, int(evalNum), m, cfg.defs, vals)
					improved := m.Score < state.metrics.Score
					if improved {
						state.best = append([]float64(nil), vals...)
						state.metrics = m
					}
					best := state.metrics.Score
					state.mu.Unlock()

					if improved {
						n := atomic.AddInt64(&improves, 1)
						fmt.Printf("Improved #%d eval=%d score=%.4f sim=%.2f%%\n", n, evalNum, m.Score, m.Similarity*100)
					}
					if cfg.reportEvery > 0 && evalNum%int64(cfg.reportEvery) == 0 {
						logger.Info("progress", "eval", evalNum, "max", cfg.maxEvals, "elapsed", time.Since(start).Round(time.Millisecond), "best", best)
					}
					return m.Score
				}

				if _, err := runMayfly(mcfg); err != nil {
					logger.Warn("mayfly round failed", "round", round, "err", err)
				}
			}
		}()
	}
	wg.Wait()

	state.mu.Lock()
	defer state.mu.Unlock()
	return &fitResult{
		best:    state.best,
		metrics: state.metrics,
		params:  applyKnobs(cfg.base, cfg.defs, state.best),
		top:     state.top,
		evals:   int(atomic.LoadInt64(&evals)),
		elapsed: time.Since(start),
	}, nil
}

func evaluateKnobs(cfg *fitConfig, vals []float64) (analysis.Metrics, error) {
	params := applyKnobs(cfg.base, cfg.defs, vals)
	out, err := renderVoice(params, cfg.render)
	if err != nil {
		return analysis.Metrics{}, err
	}
	out, err = applySpace(out, cfg.render)
	if err != nil {
		return analysis.Metrics{}, err
	}
	return analysis.Compare(cfg.reference, wavio.ToFloat64(out), cfg.render.sampleRate), nil
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = max(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

func reserveEval(evals *int64, maxEvals int) (int64, bool) {
	for {
		cur := atomic.LoadInt64(evals)
		if cur >= int64(maxEvals) {
			return 0, false
		}
		if atomic.CompareAndSwapInt64(evals, cur, cur+1) {
			return cur + 1, true
		}
	}
}

func currentBestScore(state *fitState) float64 {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.metrics.Score
}

func updateTopCandidates(top []topCandidate, topK int, eval int, metrics analysis.Metrics, defs []knobDef, vals []float64) []topCandidate {
	top = append(top, topCandidate{
		Eval:       eval,
		Score:      metrics.Score,
		Similarity: metrics.Similarity,
		Knobs:      knobMap(defs, vals),
	})
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score == top[j].Score {
			return top[i].Eval < top[j].Eval
		}
		return top[i].Score < top[j].Score
	})
	if len(top) > topK {
		top = top[:topK]
	}
	return top
}

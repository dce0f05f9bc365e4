package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/walnuts/internal/analysis"
	"github.com/san-kum/walnuts/internal/automation"
	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/export"
	"github.com/san-kum/walnuts/internal/logging"
	"github.com/san-kum/walnuts/internal/metrics"
	"github.com/san-kum/walnuts/internal/storage"
	"github.com/san-kum/walnuts/internal/sweep"
	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/vec"
	"github.com/san-kum/walnuts/internal/viz"
	"github.com/san-kum/walnuts/internal/walnuts"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	dim                int
	dt                 float64
	maxError           float64
	maxHalvings        int
	maxDepth           int
	refineIrreversible bool
	transitions        int
	seed               int64

	configFile  string
	preset      string
	plot        bool
	save        bool
	metricsAddr string
	svgPath     string

	benchDims []int
	benchN    int

	sweepDts       []float64
	sweepMaxErrors []float64
	sweepWorkers   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walnuts",
		Short: "adaptive step size no-u-turn sampler",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".walnuts", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run summary",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [target]",
		Short: "benchmark transitions per second across dimensions",
		Args:  cobra.ExactArgs(1),
		RunE:  benchTarget,
	}
	benchCmd.Flags().IntSliceVar(&benchDims, "dims", []int{1, 2, 5, 10, 25}, "dimensions to benchmark")
	benchCmd.Flags().IntVar(&benchN, "n", 200, "transitions per dimension")
	benchCmd.Flags().Float64Var(&dt, "dt", walnuts.DefaultDt, "macro step size")
	benchCmd.Flags().Float64Var(&maxError, "max-error", walnuts.DefaultMaxError, "energy error tolerance")
	benchCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	presetsCmd := &cobra.Command{
		Use:   "presets [target]",
		Short: "list available presets for a target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := target.NewRegistry().Names()
			if len(args) > 0 {
				names = args
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for target: %s\n", name)
					continue
				}
				fmt.Fprintf(out, "presets for %s:\n", name)
				for _, p := range presets {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of sampling runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "list built-in targets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range target.NewRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	rootCmd.AddCommand(newSampleCmd(), newLiveCmd(), newSweepCmd(), batchCmd, listCmd, showCmd, exportCmd, benchCmd, presetsCmd, targetsCmd)
	return rootCmd
}

// addSamplerFlags binds the flags shared by sample and live.
func addSamplerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "target dimension")
	cmd.Flags().Float64Var(&dt, "dt", walnuts.DefaultDt, "macro step size")
	cmd.Flags().Float64Var(&maxError, "max-error", walnuts.DefaultMaxError, "energy error tolerance")
	cmd.Flags().IntVar(&maxHalvings, "max-halvings", walnuts.DefaultMaxHalvings, "step size halvings per macro step")
	cmd.Flags().IntVar(&maxDepth, "max-depth", walnuts.DefaultMaxDepth, "maximum tree depth")
	cmd.Flags().BoolVar(&refineIrreversible, "refine-irreversible", false, "keep halving after a reversibility failure")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newSampleCmd() *cobra.Command {
	sampleCmd := &cobra.Command{
		Use:   "sample [target]",
		Short: "draw samples from a target",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSample,
	}
	addSamplerFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&transitions, "n", config.DefaultTransitions, "number of transitions")
	sampleCmd.Flags().BoolVar(&plot, "plot", false, "plot trace and scatter")
	sampleCmd.Flags().BoolVar(&save, "save", false, "save run metadata")
	sampleCmd.Flags().StringVar(&svgPath, "svg", "", "write a scatter (or trace, in 1-D) plot to this SVG file")
	sampleCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return sampleCmd
}

func newLiveCmd() *cobra.Command {
	liveCmd := &cobra.Command{
		Use:   "live [target]",
		Short: "sample with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSamplerFlags(liveCmd)
	return liveCmd
}

func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep [target]",
		Short: "compare step sizes and error tolerances by ESS per gradient",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSamplerFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&transitions, "n", config.DefaultTransitions, "transitions per grid point")
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{0.1, 0.2, 0.4, 0.8}, "step sizes to try")
	sweepCmd.Flags().Float64SliceVar(&sweepMaxErrors, "max-errors", []float64{0.05, 0.1, 0.2}, "error tolerances to try")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")
	return sweepCmd
}

// resolveConfig applies the preset, then the config file, then explicitly
// set flags. A target argument replaces the configured target.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Target = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Target, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Target))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Target = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Dim = dim
		if len(cfg.Init) != dim {
			cfg.Init = nil
		}
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("max-error") {
		cfg.MaxError = maxError
	}
	if flags.Changed("max-halvings") {
		cfg.MaxHalvings = maxHalvings
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("refine-irreversible") {
		cfg.RefineIrreversible = refineIrreversible
	}
	if flags.Changed("n") {
		cfg.Transitions = transitions
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	return logging.FromFlags(cmd.ErrOrStderr(), logLevel, logFormat)
}

// newSampler builds the target and sampler described by cfg.
func newSampler(cfg *config.Config, logger *slog.Logger, observers ...walnuts.Observer) (*walnuts.Sampler, error) {
	tgt, err := target.NewRegistry().Get(cfg.Target, cfg.Dim, cfg.TargetParams)
	if err != nil {
		return nil, err
	}

	opts := []walnuts.Option{walnuts.WithLogger(logger)}
	if q0 := cfg.InitialPosition(); q0 != nil {
		opts = append(opts, walnuts.WithInitial(q0))
	}
	for _, o := range observers {
		opts = append(opts, walnuts.WithObserver(o))
	}
	return walnuts.New(tgt, cfg.SamplerConfig(), opts...)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPrometheus(reg, cfg.Target)
	if err != nil {
		return err
	}
	set := metrics.Set{metrics.NewAcceptance(), metrics.NewTreeDepth(), metrics.NewMoveRate()}

	s, err := newSampler(cfg, logger, prom, set)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "sampling %s: dim=%d, dt=%.4g, max_error=%.4g, n=%d\n",
		cfg.Target, cfg.Dim, cfg.Dt, cfg.MaxError, cfg.Transitions)

	start := time.Now()
	runErr := s.Run(ctx, cfg.Transitions)
	elapsed := time.Since(start)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "interrupted after %d transitions\n", s.Stats().Transitions)
	}

	chain := s.Chain()
	summaries, err := analysis.SummarizeAll(chain)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printSummaries(out, summaries); err != nil {
		return err
	}
	printStats(out, s.Stats(), elapsed)
	fmt.Fprintln(out)
	if err := printCounters(out, reg); err != nil {
		return err
	}

	if plot {
		plotChain(out, chain)
	}

	if svgPath != "" {
		if err := writeSVG(svgPath, chain); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nwrote: %s\n", svgPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(&storage.RunMetadata{
			Target:         cfg.Target,
			Timestamp:      start,
			ElapsedSeconds: elapsed.Seconds(),
			Config:         cfg,
			Stats:          s.Stats(),
			Summaries:      summaries,
			Metrics:        set.Values(),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nsaved: %s\n", runID)
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

func printSummaries(w io.Writer, summaries []analysis.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COORD\tMEAN\tSTD\tQ05\tQ50\tQ95\tESS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "q[%d]\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.1f\n",
			s.Coord, s.Mean, s.Std, s.Q05, s.Q50, s.Q95, s.ESS)
	}
	return tw.Flush()
}

func printStats(w io.Writer, st walnuts.Stats, elapsed time.Duration) {
	fmt.Fprintf(w, "\ntransitions:     %d (%.1f/s)\n", st.Transitions, float64(st.Transitions)/max(elapsed.Seconds(), 1e-9))
	fmt.Fprintf(w, "move rate:       %.3f\n", st.MoveRate())
	fmt.Fprintf(w, "mean depth:      %.2f\n", st.MeanDepth())
	fmt.Fprintf(w, "macro steps:     %d (%.2f%% rejected)\n", st.MacroSteps, 100*st.MacroStepRejectRate())
	fmt.Fprintf(w, "leapfrog steps:  %d\n", st.LeapfrogSteps)

	reasons := make([]string, 0, len(st.Stops))
	for r := range st.Stops {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "stop %-11s %d\n", r+":", st.Stops[walnuts.StopReason(r)])
	}
}

// printCounters prints every counter sample gathered from reg.
func printCounters(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLABELS\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Fprintf(tw, "%s\t%s\t%.0f\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return tw.Flush()
}

func plotChain(w io.Writer, chain []vec.Vector) {
	trace, err := analysis.Trace(chain, 0)
	if err != nil || len(trace) < 2 {
		return
	}
	graph := asciigraph.Plot(trace,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("trace q[0]"),
	)
	fmt.Fprintf(w, "\n%s\n", graph)

	if len(chain[0]) >= 2 {
		fmt.Fprintf(w, "\nq[0] vs q[1]\n%s\n", analysis.ScatterToASCII(analysis.Project(chain, 0, 1), 60, 20))
	}
}

func writeSVG(path string, chain []vec.Vector) error {
	var svg string
	if len(chain[0]) >= 2 {
		svg = export.ScatterToSVG(analysis.Project(chain, 0, 1), 600, 600, "#88c0d0")
	} else {
		trace, err := analysis.Trace(chain, 0)
		if err != nil {
			return err
		}
		svg = export.TraceToSVG(trace, 800, 300, "#88c0d0")
	}
	if svg == "" {
		return fmt.Errorf("nothing to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	// The live view owns the terminal.
	if !cmd.Flags().Changed("log-level") {
		logger = logging.Discard()
	}

	if len(args) == 0 {
		base, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}
		return viz.Run(viz.NewPicker(target.NewRegistry(), base))
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := newSampler(cfg, logger)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s, cfg.Target))
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	g := sweep.NewGridSearch(
		[]string{sweep.ParamDt, sweep.ParamMaxError},
		[][]float64{sweepDts, sweepMaxErrors},
	)
	if sweepWorkers > 0 {
		g.SetWorkers(sweepWorkers)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := target.NewRegistry()
	points, best, err := g.Search(ctx, func(ctx context.Context, params map[string]float64) (sweep.Result, error) {
		cfg, err := sweep.Apply(base, params)
		if err != nil {
			return sweep.Result{}, err
		}
		return sweep.Run(ctx, reg, cfg)
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tMAX_ERROR\tMOVE\tDEPTH\tREJECT\tGRADS\tMIN ESS\tESS/GRAD")
	for _, p := range sweep.Ranked(points) {
		st := p.Result.Stats
		fmt.Fprintf(w, "%.4g\t%.4g\t%.3f\t%.2f\t%.3f\t%d\t%.1f\t%.2e\n",
			p.Params[sweep.ParamDt],
			p.Params[sweep.ParamMaxError],
			st.MoveRate(),
			st.MeanDepth(),
			st.MacroStepRejectRate(),
			st.LeapfrogSteps,
			p.Result.MinESS,
			p.Result.ESSPerGrad,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, p := range points {
		if p.Err != nil {
			logger.Warn("grid point failed", "params", p.Params, "err", p.Err)
		}
	}
	if best < 0 {
		return fmt.Errorf("sweep: every grid point failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nbest: dt=%.4g max_error=%.4g\n",
		points[best].Params[sweep.ParamDt], points[best].Params[sweep.ParamMaxError])
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, runErr := automation.RunScenario(ctx, sc, target.NewRegistry(), st, logger)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tREP\tTARGET\tDIM\tSEED\tMOVE\tDEPTH\tMEAN q[0]\tESS q[0]\tRUN")
	for _, r := range results {
		var mean, ess float64
		if len(r.Summaries) > 0 {
			mean, ess = r.Summaries[0].Mean, r.Summaries[0].ESS
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%.3f\t%.2f\t%.4f\t%.1f\t%s\n",
			r.Step, r.Replicate, r.Config.Target, r.Config.Dim, r.Config.Seed,
			r.Stats.MoveRate(), r.Stats.MeanDepth(), mean, ess, r.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Step] {
			continue
		}
		seen[r.Step] = true
		if spread := automation.ReplicateSpread(results, r.Step); spread != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: replicate spread of means %.4f\n", r.Step, spread)
		}
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tTIME\tDIM\tN\tDT\tMOVE\tDEPTH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%.3f\t%.2f\n",
			run.ID,
			run.Target,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Dim,
			run.Stats.Transitions,
			run.Config.Dt,
			run.Stats.MoveRate(),
			run.Stats.MeanDepth(),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:     %s\n", meta.ID)
	fmt.Fprintf(out, "target:  %s (dim %d)\n", meta.Target, meta.Config.Dim)
	fmt.Fprintf(out, "time:    %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "config:  dt=%.4g max_error=%.4g max_depth=%d seed=%d\n\n",
		meta.Config.Dt, meta.Config.MaxError, meta.Config.MaxDepth, meta.Config.Seed)

	if err := printSummaries(out, meta.Summaries); err != nil {
		return err
	}
	printStats(out, meta.Stats, time.Duration(meta.ElapsedSeconds*float64(time.Second)))

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(out)
		for _, name := range names {
			fmt.Fprintf(out, "%-22s %.4f\n", name+":", meta.Metrics[name])
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchTarget(cmd *cobra.Command, args []string) error {
	name := args[0]
	if benchN < 1 {
		return fmt.Errorf("--n must be positive, got %d", benchN)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tTRANS/S\tGRAD/TRANS\tMEAN DEPTH\tMOVE\tESS/S")

	for _, d := range benchDims {
		cfg := config.DefaultConfig()
		cfg.Target = name
		cfg.Dim = d
		cfg.Dt = dt
		cfg.MaxError = maxError
		cfg.Seed = seed
		if err := cfg.Validate(); err != nil {
			return err
		}

		s, err := newSampler(cfg, logging.Discard())
		if err != nil {
			return err
		}

		start := time.Now()
		if err := s.Run(cmd.Context(), benchN); err != nil {
			return err
		}
		elapsed := max(time.Since(start).Seconds(), 1e-9)

		st := s.Stats()
		trace, err := analysis.Trace(s.Chain(), 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.2f\t%.3f\t%.1f\n",
			d,
			float64(st.Transitions)/elapsed,
			float64(st.LeapfrogSteps)/float64(st.Transitions),
			st.MeanDepth(),
			st.MoveRate(),
			analysis.ESS(trace)/elapsed,
		)
	}

	return w.Flush()
}

package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/qs-lab/qdyn/internal/analysis"
	"github.com/qs-lab/qdyn/internal/config"
	"github.com/qs-lab/qdyn/internal/export"
	"github.com/qs-lab/qdyn/internal/metrics"
	"github.com/qs-lab/qdyn/internal/signals"
	"github.com/qs-lab/qdyn/internal/solve"
	"github.com/qs-lab/qdyn/internal/solver"
	"github.com/qs-lab/qdyn/internal/storage"
	"github.com/qs-lab/qdyn/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	method     string
	duration   float64
	tol        float64
	maxDt      float64
	spansArg   string
	level      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qdyn",
		Short: "quantum dynamics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qdyn", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "run a batch of simulations over several end times",
		RunE:  runBatch,
	}
	addModelFlags(batchCmd)
	batchCmd.Flags().StringVar(&spansArg, "spans", "", "comma-separated end times")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot level populations of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export level populations to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a level population",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&level, "level", 0, "level to analyze")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solve methods on a configuration",
		RunE:  benchMethods,
	}
	addModelFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "compare solve methods on the same configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addModelFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live population view",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list available solve methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range solve.Methods() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, analyzeCmd, benchCmd, compareCmd, liveCmd,
		methodsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&method, "method", "", "solve method")
	cmd.Flags().Float64Var(&duration, "time", 0, "simulation end time")
	cmd.Flags().Float64Var(&tol, "tol", 0, "adaptive tolerance")
	cmd.Flags().Float64Var(&maxDt, "max-dt", 0, "maximum step size")
}

// loadRunConfig resolves the configuration from --config or --preset, with
// CLI flags overriding file values.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	default:
		return nil, fmt.Errorf("specify --config or --preset")
	}

	if cmd.Flags().Changed("time") {
		cfg.TSpan[1] = duration
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tol = tol
	}
	if cmd.Flags().Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	return cfg, nil
}

func buildRun(cmd *cobra.Command) (*config.Config, *solver.Solver, solver.SolveOptions, []complex128, error) {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return nil, nil, solver.SolveOptions{}, nil, err
	}
	s, err := cfg.BuildSolver()
	if err != nil {
		return nil, nil, solver.SolveOptions{}, nil, err
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return nil, nil, solver.SolveOptions{}, nil, err
	}
	y0, err := cfg.InitialState()
	if err != nil {
		return nil, nil, solver.SolveOptions{}, nil, err
	}
	return cfg, s, opts, y0, nil
}

// runMetrics summarizes a finished run: conservation drift and final
// populations.
func runMetrics(s *solver.Solver, res *solver.Result) map[string]float64 {
	out := make(map[string]float64)
	if len(res.States) == 0 {
		return out
	}

	n := s.HilbertDim()
	var drift metrics.Metric
	if s.OpenSystem() {
		drift = metrics.NewTraceDrift(n)
	} else {
		drift = metrics.NewNormDrift()
	}
	vals := metrics.Profile(drift, res.Times, res.States)
	out[drift.Name()] = vals[len(vals)-1]

	for lvl := 0; lvl < n; lvl++ {
		p := metrics.NewPopulation(lvl, n)
		p.Observe(res.Times[len(res.Times)-1], res.Final())
		out["final_"+p.Name()] = p.Value()
	}
	return out
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, s, opts, y0, err := buildRun(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = "run"
	}

	fmt.Printf("running %s...\n", name)
	start := time.Now()
	res, err := s.Solve(context.Background(), cfg.TSpan, y0, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	summary := runMetrics(s, res)
	runID, err := st.Save(name, opts.Method, cfg.TSpan, s.OpenSystem(), res, summary)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range summary {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, s, opts, y0, err := buildRun(cmd)
	if err != nil {
		return err
	}

	spans := [][2]float64{cfg.TSpan}
	if spansArg != "" {
		spans = spans[:0]
		for _, part := range strings.Split(spansArg, ",") {
			end, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return fmt.Errorf("bad span %q: %w", part, err)
			}
			spans = append(spans, [2]float64{cfg.TSpan[0], end})
		}
	}

	batch := solver.BatchOptions{
		Spans:  spans,
		Y0s:    [][]complex128{y0},
		Method: opts.Method,
		MaxDt:  opts.MaxDt,
		Tol:    opts.Tol,
	}
	if opts.Signals != nil {
		batch.SignalSets = []signals.List{opts.Signals}
	}
	if opts.DissipatorSignals != nil {
		batch.DissipatorSignalSets = []signals.List{opts.DissipatorSignals}
	}
	results, err := s.SolveBatch(context.Background(), batch)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T_END\tSTEPS\tFINAL POPULATIONS")
	n := s.HilbertDim()
	for i, res := range results {
		pops := make([]string, n)
		for lvl := 0; lvl < n; lvl++ {
			p := metrics.NewPopulation(lvl, n)
			p.Observe(spans[i][1], res.Final())
			pops[lvl] = fmt.Sprintf("%.4f", p.Value())
		}
		fmt.Fprintf(w, "%.3f\t%d\t%s\n", spans[i][1], res.StepsTaken, strings.Join(pops, " "))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSPAN\tMETHOD\tDIM\tOPEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.2f, %.2f]\t%s\t%d\t%v\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TSpan[0], run.TSpan[1],
			run.Method,
			run.Dim,
			run.OpenSystem,
		)
	}
	return w.Flush()
}

// hilbertDim recovers the Hilbert space dimension from stored metadata.
func hilbertDim(meta *storage.RunMetadata) int {
	if meta.OpenSystem {
		return int(math.Round(math.Sqrt(float64(meta.Dim))))
	}
	return meta.Dim
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	series := viz.Populations(states, hilbertDim(meta))
	fmt.Println(viz.PlotMany(series, "level populations"))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("re%d", i), fmt.Sprintf("im%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'g', 17, 64)}
		for _, v := range states[i] {
			row = append(row,
				strconv.FormatFloat(real(v), 'g', 17, 64),
				strconv.FormatFloat(imag(v), 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	res := &solver.Result{Times: times, States: states, StepsTaken: meta.Steps}
	return storage.ExportJSON(os.Stdout, meta.Name, meta.Method, meta.TSpan, res, meta.Metrics)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("no data to export")
	}

	series := viz.Populations(states, hilbertDim(meta))
	_, err = fmt.Fprintln(os.Stdout, export.SeriesToSVG(times, series, 800, 400))
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("no data")
	}

	n := hilbertDim(meta)
	if level < 0 || level >= n {
		return fmt.Errorf("level %d out of range for dimension %d", level, n)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("level: %d\n\n", level)

	data := viz.Populations(states, n)[level]
	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)

	power := analysis.PowerSpectrum(data)
	fmt.Println(viz.Plot(power[:len(power)/4], fmt.Sprintf("power spectrum (level %d)", level)))
	fmt.Println()

	freq := analysis.DominantFrequency(data, dt)
	fmt.Printf("dominant frequency: %.4f\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1/freq)
	}
	return nil
}

func benchMethods(cmd *cobra.Command, args []string) error {
	cfg, s, opts, y0, err := buildRun(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking over [%.2f, %.2f]\n\n", cfg.TSpan[0], cfg.TSpan[1])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPARAM\tSTEPS\tTIME\tSTEPS/SEC")

	bench := func(name, param string, o solver.SolveOptions) {
		start := time.Now()
		res, err := s.Solve(context.Background(), cfg.TSpan, y0, o)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\terror: %v\n", name, param, err)
			return
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.0f\n",
			name, param, res.StepsTaken, elapsed, float64(res.StepsTaken)/elapsed.Seconds())
	}

	span := cfg.TSpan[1] - cfg.TSpan[0]
	for _, dt := range []float64{span / 100, span / 1000, span / 10000} {
		for _, name := range []string{"euler", "rk4"} {
			o := opts
			o.Method = name
			o.MaxDt = dt
			bench(name, fmt.Sprintf("dt=%.2g", dt), o)
		}
	}
	for _, tolerance := range []float64{1e-6, 1e-8, 1e-10} {
		o := opts
		o.Method = "dp54"
		o.Tol = tolerance
		bench("dp54", fmt.Sprintf("tol=%.0e", tolerance), o)
	}
	return w.Flush()
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, s, opts, y0, err := buildRun(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods over [%.2f, %.2f]\n\n", cfg.TSpan[0], cfg.TSpan[1])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTEPS\tDRIFT\tTIME")

	for _, name := range args {
		o := opts
		o.Method = name
		if o.MaxDt == 0 {
			o.MaxDt = (cfg.TSpan[1] - cfg.TSpan[0]) / 1000
		}

		start := time.Now()
		res, err := s.Solve(context.Background(), cfg.TSpan, y0, o)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		summary := runMetrics(s, res)
		drift := summary["norm_drift"]
		if s.OpenSystem() {
			drift = summary["trace_drift"]
		}
		fmt.Fprintf(w, "%s\t%d\t%.2e\t%v\n", name, res.StepsTaken, drift, elapsed)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, s, opts, y0, err := buildRun(cmd)
	if err != nil {
		return err
	}

	frameDt := (cfg.TSpan[1] - cfg.TSpan[0]) / 300
	return viz.Live(s, opts, y0, cfg.TSpan[1], frameDt)
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/config"
	"github.com/san-kum/popsim/internal/export"
	"github.com/san-kum/popsim/internal/metrics"
	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
	"github.com/san-kum/popsim/internal/solver"
	"github.com/san-kum/popsim/internal/storage"
	"github.com/san-kum/popsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	paramFlags []string
	initFlags  []string
	configFile string
	preset     string
	method     string
	noSave     bool
	// phase plot axes
	xAxis int
	yAxis int
	// sweep bounds
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	// svg output
	outFile   string
	svgPhase  bool
	svgWidth  int
	svgHeight int
)

var registry = model.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "popsim",
		Short: "population dynamics simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", storage.DefaultDir(), "data directory")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE:  listModels,
	}

	equationsCmd := &cobra.Command{
		Use:   "equations [model]",
		Short: "show a model's equations and parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  showEquations,
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and save the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "parameter override name=value (repeatable)")
	runCmd.Flags().StringArrayVar(&initFlags, "init", nil, "initial condition override name=value (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&method, "method", "rk4", "integration method (rk4, euler)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	liveCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "parameter override name=value (repeatable)")
	liveCmd.Flags().StringArrayVar(&initFlags, "init", nil, "initial condition override name=value (repeatable)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [model]",
		Short: "analytical stability summary",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeModel,
	}
	analyzeCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "parameter override name=value (repeatable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase plane plot of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "variable index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "variable index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&svgPhase, "phase", false, "phase plot instead of time series")
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "variable index for x-axis (phase)")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "variable index for y-axis (phase)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model] [parameter]",
		Short: "sweep one parameter and report final states",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepParam,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "sweep lower bound")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2.0, "sweep upper bound")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 20, "number of sweep points")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "base parameter override name=value (repeatable)")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "compare integration methods on the same model",
		Args:  cobra.ExactArgs(1),
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(modelsCmd, equationsCmd, runCmd, liveCmd, analyzeCmd,
		listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		sweepCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves preset, config file, and flag overrides into one
// normalized configuration. Precedence, lowest to highest: model defaults,
// preset, config file, command-line flags.
func buildConfig(cmd *cobra.Command, def *model.Definition) (*config.Config, error) {
	cfg := config.FromDefinition(def)

	if preset != "" {
		p := config.GetPreset(def.Key, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(def.Key))
		}
		applyConfig(cfg, p)
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		applyConfig(cfg, fileCfg)
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	overrides, err := parseAssignments(paramFlags)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}
	initial, err := parseAssignments(initFlags)
	if err != nil {
		return nil, err
	}
	for k, v := range initial {
		cfg.Initial[k] = v
	}
	cfg.Normalize(def)
	return cfg, nil
}

func applyConfig(dst, src *config.Config) {
	if src.Dt != 0 {
		dst.Dt = src.Dt
	}
	if src.Duration != 0 {
		dst.Duration = src.Duration
	}
	for k, v := range src.Params {
		dst.Params[k] = v
	}
	for k, v := range src.Initial {
		dst.Initial[k] = v
	}
}

func parseAssignments(assignments []string) (map[string]float64, error) {
	out := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", a)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", a, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// collect drains a sequence, feeding every sample to the observers. On a
// step failure the samples produced so far are returned with the error.
func collect(seq *solver.Sequence, observed []metrics.Metric) (popdyn.Trajectory, error) {
	traj := make(popdyn.Trajectory, 0, seq.Steps()+1)
	for {
		sample, ok, err := seq.Next()
		if err != nil {
			return traj, err
		}
		if !ok {
			return traj, nil
		}
		for _, obs := range observed {
			obs.Observe(sample)
		}
		traj = append(traj, sample)
	}
}

func pickMethod(name string) (solver.Method, error) {
	switch name {
	case "rk4":
		return solver.NewRK4(), nil
	case "euler":
		return solver.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown method: %s (rk4, euler)", name)
	}
}

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tVARS\tDESCRIPTION")
	for _, key := range registry.Keys() {
		def, err := registry.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", def.Key, def.Name, def.Dimension(), def.Description)
	}
	return w.Flush()
}

func showEquations(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n%s\n\n", def.Name, def.Key, def.Description)
	fmt.Println("equations:")
	for i, eq := range def.Equations {
		fmt.Printf("  d%s/dt = %s\n", def.Variables[i], eq)
	}
	fmt.Println("\nparameters:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range def.Parameters {
		fmt.Fprintf(w, "  %s\t%s\tdefault %g\trange [%g, %g]\n", p.Name, p.Desc, p.Default, p.Min, p.Max)
	}
	w.Flush()
	fmt.Println("\ninitial conditions:")
	for _, ic := range def.Initial {
		fmt.Printf("  %s = %g (%s)\n", ic.Name, ic.Default, ic.Label)
	}
	if def.Equilibrium != "" {
		fmt.Printf("\nequilibrium: %s\n", def.Equilibrium)
	}
	if def.Analytical != "" {
		fmt.Printf("analytical solution: %s\n", def.Analytical)
	}
	if def.Conserved != "" {
		fmt.Printf("conserved quantity: %s\n", def.Conserved)
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, def)
	if err != nil {
		return err
	}

	sys, err := def.Bind(cfg.Params)
	if err != nil {
		return err
	}
	m, err := pickMethod(method)
	if err != nil {
		return err
	}
	x0 := def.InitialState(cfg.Initial)

	seq, err := solver.NewSequenceMethod(m, sys, 0, x0, cfg.Dt, cfg.Steps())
	if err != nil {
		return err
	}
	observed := metrics.ForModel(def, cfg.Params)

	fmt.Printf("running %s...\n", def.Key)
	start := time.Now()
	trajectory, runErr := collect(seq, observed)
	elapsed := time.Since(start)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "simulation stopped early: %v\n", runErr)
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("no samples produced")
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", len(trajectory))

	metricValues := make(map[string]float64, len(observed))
	fmt.Println("\nmetrics:")
	for _, obs := range observed {
		metricValues[obs.Name()] = obs.Value()
		fmt.Printf("  %s: %.6g\n", obs.Name(), obs.Value())
	}

	fmt.Println("\nstatistics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  VAR\tMIN\tMAX\tMEAN\tFINAL\tCYCLES")
	for _, s := range analysis.TrajectoryStats(trajectory, def.Variables) {
		fmt.Fprintf(w, "  %s\t%.4g\t%.4g\t%.4g\t%.4g\t%d\n", s.Name, s.Min, s.Max, s.Mean, s.Final, s.Cycles)
	}
	w.Flush()

	if !noSave {
		st := storage.NewStore(dataDir)
		runID, err := st.Save(def.Key, cfg.Dt, cfg.Duration, cfg.Params, def.Variables, trajectory, metricValues)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, def)
	if err != nil {
		return err
	}

	sys, err := def.Bind(cfg.Params)
	if err != nil {
		return err
	}
	seq, err := solver.NewSequence(sys, 0, def.InitialState(cfg.Initial), cfg.Dt, cfg.Steps())
	if err != nil {
		return err
	}

	m := viz.NewModel(def, seq, metrics.ForModel(def, cfg.Params))
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func analyzeModel(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	params := def.DefaultParams()
	overrides, err := parseAssignments(paramFlags)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		params[k] = v
	}

	rep := analysis.Stability(def, params)
	fmt.Printf("stability analysis: %s\n\n", def.Name)
	for _, line := range rep.Lines {
		fmt.Printf("  %s\n", line)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmodel: %s\nsamples: %d\n\n", meta.ID, meta.Model, len(traj))
	fmt.Println(viz.TimeSeriesChart(traj, meta.Variables, 80, 10))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	xLabel := varLabel(meta.Variables, xAxis)
	yLabel := varLabel(meta.Variables, yAxis)
	fmt.Printf("phase plane: %s (%s)\n\n", meta.ID, meta.Model)
	fmt.Println(viz.PhaseChart(traj, xAxis, yAxis, 60, 20, xLabel, yLabel))
	return nil
}

func varLabel(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("x[%d]", i)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, meta.Variables, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.BuildExport(*meta, traj).WriteJSON(os.Stdout)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	var svg string
	if svgPhase {
		svg = export.PhaseSVG(traj, xAxis, yAxis, svgWidth, svgHeight)
	} else {
		svg = export.TimeSeriesSVG(traj, meta.Variables, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	base := def.DefaultParams()
	overrides, err := parseAssignments(paramFlags)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		base[k] = v
	}

	steps := int(duration / dt)
	points, err := analysis.Sweep(def, base, def.DefaultInitial(), name, sweepMin, sweepMax, sweepPoints, dt, steps)
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s over [%g, %g] on %s\n\n", name, sweepMin, sweepMax, def.Key)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := name
	for _, v := range def.Variables {
		header += "\tfinal " + v
	}
	fmt.Fprintln(w, header)
	for _, p := range points {
		row := fmt.Sprintf("%.4g", p.Value)
		for _, v := range p.Final {
			row += fmt.Sprintf("\t%.4g", v)
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func compareMethods(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	params := def.DefaultParams()
	sys, err := def.Bind(params)
	if err != nil {
		return err
	}
	x0 := def.InitialState(nil)
	steps := int(duration / dt)

	fmt.Printf("comparing methods on %s (dt=%g, duration=%g)\n\n", def.Key, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tFINAL STATE\tTIME")
	for _, m := range []solver.Method{solver.NewRK4(), solver.NewEuler()} {
		seq, err := solver.NewSequenceMethod(m, sys, 0, x0, dt, steps)
		if err != nil {
			return err
		}
		start := time.Now()
		var last []float64
		for {
			sample, ok, err := seq.Next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			last = sample.X
		}
		elapsed := time.Since(start)

		finals := make([]string, len(last))
		for i, v := range last {
			finals[i] = fmt.Sprintf("%.6g", v)
		}
		fmt.Fprintf(w, "%s\t[%s]\t%v\n", m.Name(), strings.Join(finals, ", "), elapsed)
	}
	return w.Flush()
}

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/brownlab/internal/analysis"
	"github.com/san-kum/brownlab/internal/config"
	"github.com/san-kum/brownlab/internal/export"
	"github.com/san-kum/brownlab/internal/langevin"
	"github.com/san-kum/brownlab/internal/physics"
	"github.com/san-kum/brownlab/internal/storage"
	"github.com/san-kum/brownlab/internal/trajio"
	"github.com/san-kum/brownlab/internal/viz"
)

var (
	dataDir    string
	mass       float64
	radius     float64
	temp       float64
	viscosity  float64
	x0         float64
	y0         float64
	dt         float64
	duration   float64
	mode       string
	seed       int64
	windowMin  float64
	windowMax  float64
	configFile string
	preset     string
	method     string
	numRuns    int
	showPlot   bool
	plotXY     bool
	plotLinear bool
	frameSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brownlab",
		Short: "brownian motion simulation and MSD analysis lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brownlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a trajectory and fit its MSD scaling exponent",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "print log-log MSD plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [trajectory.csv]",
		Short: "fit the MSD scaling exponent of a measured trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeFile,
	}
	analyzeCmd.Flags().StringVar(&method, "method", "vacf", "MSD method (vacf|direct)")
	analyzeCmd.Flags().Float64Var(&windowMin, "fit-min", 0, "fit window lower bound (s)")
	analyzeCmd.Flags().Float64Var(&windowMax, "fit-max", 0, "fit window upper bound (s)")
	analyzeCmd.Flags().BoolVar(&showPlot, "plot", false, "print log-log MSD plot")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [trajectory.csv]",
		Short: "velocity power spectrum of a measured trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumFile,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "slope statistics over independent seeds",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of independent runs")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare overdamped and underdamped slopes on the same parameters",
		RunE:  compareModes,
	}
	addSimFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's log-log MSD with its fit",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotXY, "xy", false, "also plot x and y coordinates")
	plotCmd.Flags().BoolVar(&plotLinear, "linear", false, "also plot the raw MSD curve")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [output.svg]",
		Short: "export a stored run's trajectory path to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "simulate and watch the walk live",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 4, "simulation samples per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-10s %s, r=%.2e m, dt=%.0e s, %gs\n", name, p.Mode, p.Particle.Radius, p.Dt, p.Duration)
			}
		},
	}

	rootCmd.AddCommand(runCmd, analyzeCmd, spectrumCmd, ensembleCmd, compareCmd,
		listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass (kg)")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "particle radius (m)")
	cmd.Flags().Float64Var(&temp, "temperature", physics.RoomTemperature, "fluid temperature (K)")
	cmd.Flags().Float64Var(&viscosity, "viscosity", physics.WaterViscosity, "fluid viscosity (Pa·s)")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x position (m)")
	cmd.Flags().Float64Var(&y0, "y0", 0, "initial y position (m)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total simulated time (s)")
	cmd.Flags().StringVar(&mode, "mode", "overdamped", "dynamics (overdamped|underdamped)")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&windowMin, "fit-min", 0, "fit window lower bound (s)")
	cmd.Flags().Float64Var(&windowMax, "fit-max", 0, "fit window upper bound (s)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and CLI flags, flags
// winning, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Particle.Mass = mass
	}
	if cmd.Flags().Changed("radius") {
		cfg.Particle.Radius = radius
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Fluid.Temperature = temp
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Fluid.Viscosity = viscosity
	}
	if cmd.Flags().Changed("x0") {
		cfg.Origin.X0 = x0
	}
	if cmd.Flags().Changed("y0") {
		cfg.Origin.Y0 = y0
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fit-min") {
		cfg.Fit.WindowMin = windowMin
	}
	if cmd.Flags().Changed("fit-max") {
		cfg.Fit.WindowMax = windowMax
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// simulate runs the full pipeline for one config and seed: trajectory,
// direct MSD, log-log fit.
func simulate(cfg *config.Config, seed int64) (*langevin.Trajectory, []float64, analysis.Fit, error) {
	simMode, err := langevin.ParseMode(cfg.Mode)
	if err != nil {
		return nil, nil, analysis.Fit{}, err
	}

	sim, err := langevin.New(cfg.GetParticle(), cfg.GetFluid())
	if err != nil {
		return nil, nil, analysis.Fit{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	traj, err := sim.Run(context.Background(), simMode, cfg.GetSimConfig(), rng)
	if err != nil {
		return nil, nil, analysis.Fit{}, err
	}

	msd, err := analysis.FromTrajectory(traj)
	if err != nil {
		return nil, nil, analysis.Fit{}, err
	}

	min, max := cfg.FitWindow(traj.Times)
	fit, err := analysis.FitLogLogSlope(traj.Times, msd, min, max)
	if err != nil {
		return nil, nil, analysis.Fit{}, err
	}

	return traj, msd, fit, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := langevin.New(cfg.GetParticle(), cfg.GetFluid())
	if err != nil {
		return err
	}
	coeff := sim.Coefficients()

	fmt.Printf("running %s simulation...\n", cfg.Mode)
	start := time.Now()

	traj, msd, fit, err := simulate(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	min, max := cfg.FitWindow(traj.Times)
	runID, err := st.Save(storage.RunMetadata{
		Mode:      cfg.Mode,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Mass:      cfg.Particle.Mass,
		Radius:    cfg.Particle.Radius,
		Gamma:     coeff.Gamma,
		D:         coeff.D,
		Slope:     fit.Slope,
		Intercept: fit.Intercept,
		WindowMin: min,
		WindowMax: max,
	}, traj, msd)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", traj.Len())
	fmt.Printf("gamma: %.6e kg/s\n", coeff.Gamma)
	fmt.Printf("D: %.6e m²/s\n", coeff.D)
	if cfg.Mode == string(langevin.Underdamped) {
		fmt.Printf("relaxation time m/gamma: %.3e s (dt must stay well below this)\n",
			physics.RelaxationTime(cfg.GetParticle(), coeff))
	}
	fmt.Printf("fit window: (%g, %g) s\n", min, max)
	fmt.Printf("estimated slope of log-log MSD: %.4f\n", fit.Slope)

	if showPlot {
		fmt.Println()
		fmt.Println(viz.LogLogMSD(traj.Times, msd, fit))
	}

	return nil
}

func analyzeFile(cmd *cobra.Command, args []string) error {
	traj, err := trajio.Load(args[0])
	if err != nil {
		return err
	}

	var msd []float64
	switch method {
	case "vacf":
		msd, err = analysis.FromVACF(traj)
	case "direct":
		msd, err = analysis.FromTrajectory(traj)
	default:
		return fmt.Errorf("unknown method: %s (want vacf or direct)", method)
	}
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Fit = config.FitConfig{WindowMin: windowMin, WindowMax: windowMax}
	min, max := cfg.FitWindow(traj.Times)

	fit, err := analysis.FitLogLogSlope(traj.Times, msd, min, max)
	if err != nil {
		return err
	}

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("samples: %d\n", traj.Len())
	fmt.Printf("mean dt: %.6e s\n", traj.Dt())
	fmt.Printf("method: %s\n", method)
	fmt.Printf("fit window: (%g, %g) s\n", min, max)
	fmt.Printf("estimated slope of log-log MSD: %.4f\n", fit.Slope)

	if showPlot {
		fmt.Println()
		fmt.Println(viz.LogLogMSD(traj.Times, msd, fit))
	}

	return nil
}

func spectrumFile(cmd *cobra.Command, args []string) error {
	traj, err := trajio.Load(args[0])
	if err != nil {
		return err
	}

	freqs, power, err := analysis.VelocityPowerSpectrum(traj.X, traj.Times)
	if err != nil {
		return err
	}

	fmt.Printf("velocity power spectrum: %s\n\n", args[0])

	plotData := power[:len(power)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("velocity spectrum (x axis)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > plotData[maxIdx] {
			maxIdx = i
		}
	}
	fmt.Printf("dominant frequency: %.3f hz\n", freqs[maxIdx])

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 2 {
		return fmt.Errorf("need at least 2 runs, got %d", numRuns)
	}

	simMode, err := langevin.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	sim, err := langevin.New(cfg.GetParticle(), cfg.GetFluid())
	if err != nil {
		return err
	}

	fmt.Printf("running %d %s simulations (seeds %d..%d)...\n", numRuns, cfg.Mode, cfg.Seed, cfg.Seed+int64(numRuns)-1)

	trajs, err := langevin.NewEnsemble(sim, numRuns, cfg.Seed).
		Run(context.Background(), simMode, cfg.GetSimConfig())
	if err != nil {
		return err
	}

	slopes := make([]float64, 0, numRuns)
	var sum, sumSq float64
	for i, traj := range trajs {
		msd, err := analysis.FromTrajectory(traj)
		if err != nil {
			return err
		}
		min, max := cfg.FitWindow(traj.Times)
		fit, err := analysis.FitLogLogSlope(traj.Times, msd, min, max)
		if err != nil {
			return fmt.Errorf("seed %d: %w", cfg.Seed+int64(i), err)
		}
		slopes = append(slopes, fit.Slope)
		sum += fit.Slope
		sumSq += fit.Slope * fit.Slope
	}

	mean := sum / float64(len(slopes))
	sd := math.Sqrt(sumSq/float64(len(slopes)) - mean*mean)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSLOPE")
	for i, s := range slopes {
		fmt.Fprintf(w, "%d\t%.4f\n", cfg.Seed+int64(i), s)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean slope: %.4f\n", mean)
	fmt.Printf("std dev:    %.4f\n", sd)
	return nil
}

func compareModes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing dynamics (dt=%g, time=%gs, r=%.2e m, m=%.2e kg)\n\n",
		cfg.Dt, cfg.Duration, cfg.Particle.Radius, cfg.Particle.Mass)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tSLOPE\tTIME")

	for _, m := range []langevin.Mode{langevin.Overdamped, langevin.Underdamped} {
		cfg.Mode = string(m)

		start := time.Now()
		_, _, fit, err := simulate(cfg, cfg.Seed)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", m, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\t%v\n", m, fit.Slope, time.Since(start).Round(time.Millisecond))
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
	fmt.Fprintln(w, "ID\tMODE\tTIME\tSAMPLES\tDT\tRADIUS\tSLOPE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4gs\t%.2e\t%.4f\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Dt,
			run.Radius,
			run.Slope,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	times, msd, err := st.LoadMSD(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("slope: %.4f over window (%g, %g) s\n\n", meta.Slope, meta.WindowMin, meta.WindowMax)

	fit := analysis.Fit{Slope: meta.Slope, Intercept: meta.Intercept}
	fmt.Println(viz.LogLogMSD(times, msd, fit))

	if plotLinear {
		fmt.Println()
		fmt.Println(viz.MSDPlot(msd))
	}

	if plotXY {
		traj, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.TrajectoryPlot(traj.X, traj.Y))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	_, msd, err := st.LoadMSD(args[0])
	if err != nil {
		return err
	}

	fit, err := analysis.FitLogLogSlope(traj.Times, msd, meta.WindowMin, meta.WindowMax)
	if err != nil {
		// Windows can be unset for old runs; export without fit points.
		fit = analysis.Fit{Slope: meta.Slope, Intercept: meta.Intercept}
	}

	return storage.ExportJSONStdout(*meta, traj, msd, fit)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'g', 17, 64),
			strconv.FormatFloat(traj.X[i], 'g', 17, 64),
			strconv.FormatFloat(traj.Y[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectorySVG(traj, 800, 600)
	if svg == "" {
		return fmt.Errorf("trajectory too short to render")
	}

	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	simMode, err := langevin.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	sim, err := langevin.New(cfg.GetParticle(), cfg.GetFluid())
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	traj, err := sim.Run(context.Background(), simMode, cfg.GetSimConfig(), rng)
	if err != nil {
		return err
	}

	m := viz.NewModel(traj, simMode, frameSteps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

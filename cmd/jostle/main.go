package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/jostle/internal/analysis"
	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/config"
	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/export"
	"github.com/san-kum/jostle/internal/gui"
	"github.com/san-kum/jostle/internal/input"
	"github.com/san-kum/jostle/internal/metrics"
	"github.com/san-kum/jostle/internal/sim"
	"github.com/san-kum/jostle/internal/storage"
	"github.com/san-kum/jostle/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// World geometry
	radius       float64
	gridSize     int
	zeroDistance string
	// Input
	pattern       string
	eventsPerTick int
	ticks         int
	seed          int64
	// Frontends
	frameRate int
	theme     string
	// Run output
	progress int
	mapWidth int
	// svg
	svgScale float64
	outFile  string
	// ensemble
	numRuns int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jostle",
		Short: "grid-accelerated particle overlap resolver",
		RunE:  runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".jostle", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	addInputFlags(runCmd)
	runCmd.Flags().IntVar(&progress, "progress", 0, "print a status line every n ticks")
	runCmd.Flags().IntVar(&mapWidth, "map", 64, "density map width in characters (0 to disable)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view; mouse motion adds particles",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive window; mouse motion adds particles",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addWorldFlags(guiCmd)
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-tick series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render the final particles of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().Float64Var(&svgScale, "scale", 0.5, "pixels per world unit")
	svgCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATTERN\tTICKS\tEVENTS/TICK")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", name, cfg.Input.Pattern, cfg.Ticks, cfg.Input.EventsPerTick)
			}
			return w.Flush()
		},
	}

	benchCmd := newBenchCmd()

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one scenario under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addWorldFlags(ensembleCmd)
	addInputFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd, benchCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

const benchDefaultTicks = 100

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second for growing populations",
		Args:  cobra.NoArgs,
		RunE:  benchTicks,
	}
	addWorldFlags(cmd)
	cmd.Flags().IntVar(&ticks, "ticks", benchDefaultTicks, "ticks per population")
	return cmd
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&radius, "radius", dynamo.DefaultRadius, "particle radius")
	cmd.Flags().IntVar(&gridSize, "grid", dynamo.DefaultGridSize, "cells per grid side")
	cmd.Flags().StringVar(&zeroDistance, "zero-distance", collide.ZeroAxis.String(), "coincident pair policy (axis, skip)")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pattern, "pattern", config.DefaultPattern, "pointer pattern")
	cmd.Flags().IntVar(&eventsPerTick, "events", config.DefaultEventsPerTick, "pointer events per tick")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to run")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
}

// resolveConfig builds the run configuration: defaults, then the preset, then
// the config file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("grid") {
		cfg.GridSize = gridSize
	}
	if flags.Changed("zero-distance") {
		cfg.ZeroDistance = zeroDistance
	}
	if flags.Changed("pattern") {
		cfg.Input.Pattern = pattern
	}
	if flags.Changed("events") {
		cfg.Input.EventsPerTick = eventsPerTick
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// progressObserver prints a status line every n ticks.
type progressObserver struct {
	every int
}

func (p progressObserver) OnTick(w *dynamo.World, st collide.Stats, tick int) {
	if (tick+1)%p.every != 0 {
		return
	}
	fmt.Printf("  tick %d: %d particles, %d pairs, %d resolved\n", tick+1, w.ParticleCount(), st.PairsTested, st.Resolutions)
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	w, err := cfg.NewWorld()
	if err != nil {
		return nil, err
	}
	src, err := cfg.NewSource()
	if err != nil {
		return nil, err
	}
	s := sim.New(w, src)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s, nil
}

func simConfig(cfg *config.Config) sim.Config {
	sc := sim.DefaultConfig()
	sc.Ticks = cfg.Ticks
	sc.Seed = cfg.Seed
	return sc
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	if progress > 0 {
		s.AddObserver(progressObserver{every: progress})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d ticks...\n", cfg.Input.Pattern, cfg.Ticks)
	start := time.Now()

	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted: %v\n", err)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:        preset,
		Pattern:       cfg.Input.Pattern,
		Seed:          cfg.Seed,
		Ticks:         result.TicksTaken,
		Radius:        cfg.Radius,
		GridSize:      cfg.GridSize,
		EventsPerTick: cfg.Input.EventsPerTick,
		ZeroDistance:  cfg.ZeroDistance,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Printf("particles: %d\n", len(result.Final))
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	sum := analysis.Summarize(result.Final, cfg.Radius, cfg.GridSize)
	fmt.Printf("\noverlapping pairs: %d (max penetration %.3f, %d in border cells)\n", sum.Overlapping, sum.MaxPenetration, sum.Border)

	if mapWidth > 0 {
		fmt.Println()
		fmt.Print(analysis.DensityMap(result.Final, cfg.Geometry().Extent(), mapWidth, mapWidth/2))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	return viz.Run(w, cfg.FPS, cfg.Theme)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	gui.Run(w, cfg.FPS)
	return nil
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
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tTICKS\tPARTICLES\tRADIUS\tGRID\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\t%d\t%d\n",
			run.ID,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Particles,
			run.Radius,
			run.GridSize,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pattern: %s\n", meta.Pattern)
	fmt.Printf("ticks: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(storage.TickRecord) int
	}{
		{"population", func(r storage.TickRecord) int { return r.Population }},
		{"pairs tested", func(r storage.TickRecord) int { return r.PairsTested }},
		{"resolutions", func(r storage.TickRecord) int { return r.Resolutions }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = float64(s.value(r))
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	positions, err := st.LoadParticles(runID)
	if err != nil {
		return err
	}

	extent := dynamo.Geometry{Radius: meta.Radius, GridSize: meta.GridSize}.Extent()
	svg := export.ParticlesToSVG(positions, meta.Radius, extent, svgScale)

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// resolveBenchConfig is resolveConfig with the bench tick count: presets and
// config files describe a run, not a benchmark, so their ticks are ignored.
func resolveBenchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("ticks") {
		cfg.Ticks = benchDefaultTicks
	}
	return cfg, nil
}

func benchTicks(cmd *cobra.Command, args []string) error {
	cfg, err := resolveBenchConfig(cmd)
	if err != nil {
		return err
	}

	populations := []int{100, 500, 1000, 2000, 5000}
	// keep particles clear of the border ring
	spread := cfg.Geometry().Extent()/2 - 2*cfg.Geometry().Diameter()

	fmt.Printf("benchmarking radius %.1f, grid %d, %d ticks\n\n", cfg.Radius, cfg.GridSize, cfg.Ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTICKS\tTIME\tTICKS/SEC\tPAIRS/TICK")

	for _, n := range populations {
		world, err := cfg.NewWorld()
		if err != nil {
			return err
		}
		src := input.NewRandom(input.Params{Scale: spread, EventsPerTick: n, Seed: cfg.Seed})
		for _, p := range src.Next(0) {
			world.OnPointerMove(p.X, p.Y)
		}

		pairs := 0
		start := time.Now()
		for i := 0; i < cfg.Ticks; i++ {
			world.OnTick()
			pairs += world.LastStats().PairsTested
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\n",
			n, cfg.Ticks, elapsed, float64(cfg.Ticks)/elapsed.Seconds(), pairs/max(cfg.Ticks, 1))
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive: %d", numRuns)
	}

	factory := func(s int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Seed = s
		return newSimulator(c)
	}

	fmt.Printf("running %d x %s for %d ticks...\n", numRuns, cfg.Input.Pattern, cfg.Ticks)
	start := time.Now()
	results, err := sim.NewEnsemble(factory, numRuns, cfg.Seed).Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := make([]string, 0)
	for _, m := range metrics.Default() {
		names = append(names, m.Name())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tPARTICLES")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d", cfg.Seed+int64(i), len(r.Final))
		for _, name := range names {
			fmt.Fprintf(w, "\t%s", strconv.FormatFloat(r.Metrics[name], 'f', 3, 64))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

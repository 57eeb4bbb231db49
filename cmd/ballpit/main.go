package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/storage"
	"github.com/san-kum/ballpit/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string

	// world overrides, applied only when the flag is given
	numBodies  int
	seed       int64
	fps        int
	frames     int
	width      float64
	height     float64
	gravity    bool
	trails     bool
	collisions bool
	pairMode   string
	archetype  string
	theme      string

	label       string
	exportOut   string
	snapshotOut string
	scenarioOut string
	metric      string
	writeSVG    bool
	menu        bool
	minBodies   int
	maxBodies   int
	numSteps    int
	numRuns     int
)

var logCloser *os.File

func main() {
	log.SetPrefix("ballpit: ")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ballpit",
		Short:         "bouncing ball playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == "" {
				return nil
			}
			f, err := tea.LogToFile(logFile, "ballpit")
			if err != nil {
				return err
			}
			logCloser = f
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballpit", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write log output to this file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the world in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, name)
		},
	}
	addWorldFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the world in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if menu {
				return gui.RunInteractive(cfg)
			}
			return gui.Run(cfg, name)
		},
	}
	addWorldFlags(guiCmd)
	guiCmd.Flags().BoolVar(&menu, "menu", false, "open on the preset menu")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its metrics",
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "run label (default: preset or config name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metric, "metric", "", "plot only this metric")
	plotCmd.Flags().BoolVar(&writeSVG, "svg", false, "also write <run>_<metric>.svg files")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate some frames and write the last one as SVG",
		RunE:  snapshot,
	}
	addWorldFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot.svg", "output file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVarP(&scenarioOut, "out", "o", "", "write the final frame as SVG")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "sweep body counts and time the simulation",
		RunE:  bench,
	}
	addWorldFlags(benchCmd)
	benchCmd.Flags().IntVar(&minBodies, "min", 10, "fewest bodies")
	benchCmd.Flags().IntVar(&maxBodies, "max", 100, "most bodies")
	benchCmd.Flags().IntVar(&numSteps, "steps", 4, "sweep points")
	benchCmd.Flags().IntVar(&numRuns, "runs", 0, "also run an ensemble of this many seeds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, plotCmd, exportCmd, snapshotCmd, scenarioCmd, benchCmd, presetsCmd)
	return rootCmd
}

func addWorldFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.IntVar(&numBodies, "bodies", def.InitialBodies, "random bodies at start")
	f.Int64Var(&seed, "seed", 0, "random seed (0: time based)")
	f.IntVar(&fps, "fps", def.FPS, "frame rate")
	f.IntVar(&frames, "frames", def.Frames, "frames for headless runs")
	f.Float64Var(&width, "width", def.Viewport.Width, "viewport width")
	f.Float64Var(&height, "height", def.Viewport.Height, "viewport height")
	f.BoolVar(&gravity, "gravity", def.Gravity, "apply gravity")
	f.BoolVar(&trails, "trails", def.Trails, "draw trails")
	f.BoolVar(&collisions, "collisions", def.Collisions, "resolve ball overlaps")
	f.StringVar(&pairMode, "pair-mode", def.PairMode, "pair resolution: double or single")
	f.StringVar(&archetype, "archetype", def.Archetype, "type spawned by clicks")
	f.StringVar(&theme, "theme", def.Theme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly. It returns the config and a label for it.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "custom"
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = c
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.InitialBodies = numBodies
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("trails") {
		cfg.Trails = trails
	}
	if flags.Changed("collisions") {
		cfg.Collisions = collisions
	}
	if flags.Changed("pair-mode") {
		cfg.PairMode = pairMode
	}
	if flags.Changed("archetype") {
		cfg.Archetype = archetype
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if label != "" {
		name = label
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("running %s for %d frames...\n", name, cfg.Frames)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  bodies: %d  seed: %d\n", result.Frames, result.Bodies, result.Seed)
	fmt.Println("\nmetrics:")
	for _, n := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tFRAMES\tBODIES\tSEED\tPAIRS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%.0fms\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Seed,
			run.PairMode,
			run.ElapsedMs,
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
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("label: %s\n", meta.Label)
	fmt.Printf("frames: %d\n\n", len(series.Frames))

	plotted := 0
	for _, name := range series.Names {
		if metric != "" && name != metric {
			continue
		}
		data := series.Values[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++

		if writeSVG {
			path := fmt.Sprintf("%s_%s.svg", runID, name)
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, 800, 300, "#48dbfb")), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	if plotted == 0 {
		return fmt.Errorf("no metric %q in run %s (have %v)", metric, runID, series.Names)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut != "" {
		if err := st.ExportJSONFile(exportOut, args[0]); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", args[0], exportOut)
		return nil
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()
	if err := w.Run(ctx, cfg.Frames); err != nil {
		return err
	}

	svg := export.WorldToSVG(w, string(viz.GetTheme(cfg.Theme).Background))
	if err := os.WriteFile(snapshotOut, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (frame %d, %d bodies)\n", snapshotOut, w.Frame(), w.BodyCount())
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	report, err := automation.RunScenario(ctx, sc)
	if report != nil {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nSTEP\tACTION\tFRAME\tBODIES\tKINETIC\tCONTACTS")
		for _, s := range report.Steps {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.1f\t%.0f\n",
				s.Index, s.Action, s.Frame, s.Bodies, s.Metrics["kinetic_energy"], s.Metrics["contacts"])
		}
		w.Flush()
	}
	if err != nil {
		return err
	}

	if scenarioOut != "" {
		svg := export.WorldToSVG(report.World, string(viz.GetTheme(sc.Config.Theme).Background))
		if err := os.WriteFile(scenarioOut, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", scenarioOut)
	}
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	sweep := &automation.Sweep{
		Base:      cfg,
		Archetype: "",
		MinBodies: minBodies,
		MaxBodies: maxBodies,
		NumSteps:  numSteps,
	}
	if cmd.Flags().Changed("archetype") {
		sweep.Archetype = cfg.Archetype
	}

	fmt.Printf("benchmarking %d frames per point\n\n", cfg.Frames)
	results, err := automation.RunSweep(ctx, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tTIME\tFRAME\tFRAMES/SEC\tKINETIC\tCONTACTS\tSETTLED")
	for _, r := range results {
		perSec := 0.0
		if r.Elapsed > 0 {
			perSec = float64(cfg.Frames) / r.Elapsed.Seconds()
		}
		fmt.Fprintf(w, "%d\t%v\t%v\t%.0f\t%.1f\t%.0f\t%.2f\n",
			r.Bodies, r.Elapsed, r.FrameTime, perSec, r.KineticEnergy, r.Contacts, r.Settled)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if numRuns <= 0 {
		return nil
	}
	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = 1
	}
	fmt.Printf("\nensemble of %d runs from seed %d\n\n", numRuns, seedStart)
	runs, err := experiment.RunEnsemble(ctx, cfg, numRuns, seedStart)
	if err != nil {
		return err
	}
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBODIES\tKINETIC\tCONTACTS\tSETTLED")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%.0f\t%.2f\n",
			r.Seed, r.Bodies, r.Metrics["kinetic_energy"], r.Metrics["contacts"], r.Metrics["settled"])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tGRAVITY\tTRAILS\tPAIRS\tCLICK\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		groups := make([]string, 0, len(p.Bodies)+1)
		for _, g := range p.Bodies {
			groups = append(groups, fmt.Sprintf("%d %s", g.Count, g.Archetype))
		}
		if p.InitialBodies > 0 {
			groups = append(groups, fmt.Sprintf("%d random", p.InitialBodies))
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\t%s\t%s\n",
			name, strings.Join(groups, ", "), p.Gravity, p.Trails, p.PairMode, p.Archetype, p.Theme)
	}
	return w.Flush()
}

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/convect/internal/analysis"
	"github.com/mkarlsen/convect/internal/config"
	"github.com/mkarlsen/convect/internal/heatmap"
	"github.com/mkarlsen/convect/internal/metrics"
	"github.com/mkarlsen/convect/internal/ocean"
	"github.com/mkarlsen/convect/internal/series"
	"github.com/mkarlsen/convect/internal/store"
	"github.com/mkarlsen/convect/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	// run overrides
	stopTime float64
	dt       float64
	interval float64
	flux     float64
	seed     int64

	// render / playback
	fieldName string
	fmin      float64
	fmax      float64
	duration  float64
	fps       int
	cellSize  int
	outPath   string
	atTime    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "convect",
		Short: "ocean convection simulation driver and heatmap animator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".convect", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [engine]",
		Short: "run a convection simulation and record snapshot series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&stopTime, "stop", 0, "simulation stop time (s)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "engine timestep (s)")
	runCmd.Flags().Float64Var(&interval, "interval", 0, "snapshot interval (s)")
	runCmd.Flags().Float64Var(&flux, "flux", 0, "surface heat flux (W/m^2, negative cools)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a heatmap animation from a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  renderAnimation,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().StringVar(&outPath, "out", "convection.gif", "output gif path")

	frameCmd := &cobra.Command{
		Use:   "frame [run_id]",
		Short: "render a single frame as png or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  renderFrame,
	}
	addRenderFlags(frameCmd)
	frameCmd.Flags().Float64Var(&atTime, "at", 0, "playback position in seconds")
	frameCmd.Flags().StringVar(&outPath, "out", "frame.png", "output path (.png or .svg)")

	profileCmd := &cobra.Command{
		Use:   "profile [run_id]",
		Short: "plot the horizontal-mean depth profile of the final snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProfile,
	}
	profileCmd.Flags().StringVar(&fieldName, "field", "T", "field name")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a surface probe",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&fieldName, "field", "w", "field name")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run summary to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-snapshot field means to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "play a stored series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}
	addRenderFlags(playCmd)

	rootCmd.AddCommand(runCmd, listCmd, renderCmd, frameCmd, profileCmd,
		analyzeCmd, exportJSONCmd, exportCSVCmd, presetsCmd, playCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fieldName, "field", "T", "field name")
	cmd.Flags().Float64Var(&fmin, "fmin", config.DefaultFMin, "color range minimum")
	cmd.Flags().Float64Var(&fmax, "fmax", config.DefaultFMax, "color range maximum")
	cmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "animation duration (s)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&cellSize, "cell", config.DefaultCellSize, "pixels per grid cell")
}

func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("stop") {
		cfg.StopTime = stopTime
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("interval") {
		cfg.OutputInterval = interval
	}
	if cmd.Flags().Changed("flux") {
		cfg.SurfaceFlux = flux
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	engineName := config.DefaultEngine
	if len(args) > 0 {
		engineName = args[0]
	}

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	params := cfg.Params()

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := ocean.NewRegistry().Engine(engineName)
	if err != nil {
		return err
	}

	drv := ocean.NewDriver(eng, params)
	drv.AddMetric(metrics.NewMixedLayerDepth("T", 0.02, params.Lz))
	drv.AddMetric(metrics.NewExtrema("w"))
	drv.AddMetric(metrics.NewTracerVariance("T"))

	fmt.Printf("running %s convection simulation...\n", engineName)
	start := time.Now()

	result, err := drv.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(engineName, params, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n", len(result.Times))
	fmt.Println("\ndiagnostics:")
	for name, val := range result.Diagnostics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tTIME\tGRID\tSTOP\tINTERVAL\tFIELDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%dx%d\t%.0fs\t%.0fs\t%s\n",
			run.ID,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx, run.Ny, run.Nz,
			run.Params.StopTime,
			run.Params.OutputInterval,
			strings.Join(run.Fields(), ","),
		)
	}
	return w.Flush()
}

func renderAnimation(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ser, err := st.LoadSeries(args[0], fieldName)
	if err != nil {
		return err
	}

	opts := heatmap.Options{Min: fmin, Max: fmax, CellSize: cellSize}
	anim := heatmap.NewAnimator(fps)
	frames := int(duration * float64(fps))

	for fi := 0; fi < frames; fi++ {
		elapsed := float64(fi) / float64(fps)
		idx, err := ser.FrameAt(elapsed, duration)
		if err != nil {
			return err
		}
		img, err := heatmap.Render(ser.Snapshot(idx).Slice2D(), opts)
		if err != nil {
			return err
		}
		anim.Append(img)
	}

	if err := anim.WriteFile(outPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, %d fps)\n", outPath, anim.FrameCount(), fps)
	return nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ser, err := st.LoadSeries(args[0], fieldName)
	if err != nil {
		return err
	}

	idx, err := ser.FrameAt(atTime, duration)
	if err != nil {
		return err
	}
	grid := ser.Snapshot(idx).Slice2D()
	opts := heatmap.Options{Min: fmin, Max: fmax, CellSize: cellSize}

	if strings.HasSuffix(outPath, ".svg") {
		svg, err := heatmap.FrameSVG(grid, opts, float64(cellSize))
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
	} else {
		img, err := heatmap.Render(grid, opts)
		if err != nil {
			return err
		}
		if err := heatmap.WritePNG(outPath, img); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %s (frame %d, t=%.0fs)\n", outPath, idx, ser.Time(idx))
	return nil
}

func plotProfile(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ser, err := st.LoadSeries(args[0], fieldName)
	if err != nil {
		return err
	}

	final := ser.Snapshot(ser.Len() - 1)
	prof := final.HorizontalMean()

	// reverse so the surface is on the left of the plot
	data := make([]float64, len(prof))
	for i := range prof {
		data[i] = prof[len(prof)-1-i]
	}

	fmt.Printf("field: %s\n", fieldName)
	fmt.Printf("final time: %.0fs\n\n", ser.Last())
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("horizontal-mean %s, surface to bottom", fieldName)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ser, err := st.LoadSeries(args[0], fieldName)
	if err != nil {
		return err
	}
	if ser.Len() < 4 {
		return fmt.Errorf("too few snapshots for analysis: %d", ser.Len())
	}

	// surface probe at mid-width
	first := ser.Snapshot(0)
	probe := make([]float64, ser.Len())
	for i := range probe {
		probe[i] = ser.Snapshot(i).At(first.Nx/2, first.Ny/2, first.Nz-1)
	}

	ps := analysis.PowerSpectrum(probe)
	plotData := ps
	if len(plotData) > 4 {
		plotData = ps[:len(ps)/2]
	}

	fmt.Printf("probe spectrum: %s (%s)\n\n", args[0], fieldName)
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("power spectrum, surface probe"),
	)
	fmt.Println(graph)

	freq := analysis.DominantFrequency(probe, ser.Last())
	fmt.Printf("\ndominant frequency: %.6f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.1f s\n", 1.0/freq)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fields := make(map[string]*series.Series, len(meta.Fields()))
	for _, name := range meta.Fields() {
		ser, err := st.LoadSeries(meta.ID, name)
		if err != nil {
			return err
		}
		fields[name] = ser
	}
	return store.ExportJSON(os.Stdout, meta, fields)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	names := meta.Fields()
	means := make(map[string][]float64, len(names))
	var times []float64
	for _, name := range names {
		ser, err := st.LoadSeries(meta.ID, name)
		if err != nil {
			return err
		}
		if times == nil {
			times = ser.Times()
		}
		col := make([]float64, ser.Len())
		for i := range col {
			sum := 0.0
			vals := ser.Snapshot(i).Values()
			for _, v := range vals {
				sum += v
			}
			col[i] = sum / float64(len(vals))
		}
		means[name] = col
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 2, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(means[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func playRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ser, err := st.LoadSeries(args[0], fieldName)
	if err != nil {
		return err
	}

	opts := heatmap.Options{Min: fmin, Max: fmax, CellSize: cellSize}
	m := viz.NewModel(ser, opts, duration, fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

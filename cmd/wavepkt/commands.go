package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/wavepkt/internal/api"
	"github.com/san-kum/wavepkt/internal/config"
	"github.com/san-kum/wavepkt/internal/export"
	"github.com/san-kum/wavepkt/internal/metrics"
	"github.com/san-kum/wavepkt/internal/packet"
	"github.com/san-kum/wavepkt/internal/sim"
	"github.com/san-kum/wavepkt/internal/storage"
	"github.com/san-kum/wavepkt/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := buildPacket(cfg)
	if err != nil {
		return err
	}
	conv, err := cfg.AxisConvention()
	if err != nil {
		return err
	}

	m, err := viz.NewModel(p, viz.Options{Mode: cfg.Mode, Axis: conv, FPS: cfg.FPS, Step: cfg.Step, Theme: themeName})
	if err != nil {
		return err
	}

	logger.Info("live view starting", zap.String("law", cfg.Law), zap.Int("components", cfg.Components), zap.Int64("seed", cfg.Seed))
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Cell size of the braille snapshot, matching the live view.
const (
	brailleWidth  = 80
	brailleHeight = 24
)

func runFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("frames") || configFile == "" {
		cfg.Frames = runFrameCount
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}

	p, err := buildPacket(cfg)
	if err != nil {
		return err
	}
	frameStep, err := cfg.FrameStep()
	if err != nil {
		return err
	}

	if saveConfigPath != "" {
		if err := config.Save(saveConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("config saved", zap.String("path", saveConfigPath))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(p)
	for _, m := range metrics.Standard(spectrumAxis(cfg, p)) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running %s with %d components...\n", cfg.Law, cfg.Components)
	logger.Info("run starting", zap.String("law", cfg.Law), zap.Int("components", cfg.Components),
		zap.Float64("c", p.C()), zap.Int64("seed", cfg.Seed), zap.Float64("step", frameStep), zap.Int("frames", cfg.Frames))
	start := time.Now()

	result, err := s.Run(ctx, sim.Config{Step: frameStep, Frames: cfg.Frames, Spectrum: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.Recipe{
		Law:        cfg.Law,
		Components: cfg.Components,
		C:          p.C(),
		B:          cfg.B,
		Seed:       cfg.Seed,
		Step:       frameStep,
		Frames:     cfg.Frames,
		Axis:       cfg.Axis,
	}, result)
	if err != nil {
		return err
	}
	logger.Info("run finished", zap.String("run_id", runID), zap.Duration("elapsed", elapsed))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesTaken)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

// spectrumAxis returns the bin frequencies for cfg's axis convention, or nil
// when the convention cannot be evaluated for this packet.
func spectrumAxis(cfg *config.Config, p *packet.Packet) []float64 {
	conv, err := cfg.AxisConvention()
	if err != nil {
		return nil
	}
	freqs, err := p.SpectrumAxis(conv)
	if err != nil {
		logger.Warn("spectral centroid disabled", zap.Error(err))
		return nil
	}
	return freqs
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func plotWave(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := buildPacket(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("law: %s  (%s)\n", cfg.Law, p.Law().Relation())
	fmt.Printf("components: %d  c: %g  seed: %d  t: %g\n\n", p.Len(), p.C(), cfg.Seed, atTime)

	wave := p.Wave(atTime)
	fmt.Println(asciigraph.Plot(wave,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("displacement vs position"),
	))
	fmt.Println()

	if plotWithSpectrum {
		return printSpectrum(cfg, p, atTime)
	}
	return nil
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := buildPacket(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("spectrum: %s  components: %d  t: %g\n\n", cfg.Law, p.Len(), atTime)
	return printSpectrum(cfg, p, atTime)
}

func printSpectrum(cfg *config.Config, p *packet.Packet, t float64) error {
	power, err := p.Spectrum(t)
	if err != nil {
		return err
	}
	conv, err := cfg.AxisConvention()
	if err != nil {
		return err
	}
	freqs, err := p.SpectrumAxis(conv)
	if err != nil {
		return err
	}

	lo, hi := packet.PositiveBins(len(power))
	if hi <= lo {
		fmt.Println("no positive-frequency bins to plot")
		return nil
	}
	fmt.Println(asciigraph.Plot(power[lo:hi],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("normalized power (positive bins, DC omitted)"),
	))
	fmt.Println()

	idx := lo + floats.MaxIdx(power[lo:hi])
	fmt.Printf("dominant bin: %d\n", idx)
	fmt.Printf("dominant frequency (%s axis): %.6g\n", conv, math.Abs(freqs[idx]))
	return nil
}

func writeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := buildPacket(cfg)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s  n=%d  c=%g  seed=%d  t=%g", cfg.Law, p.Len(), p.C(), cfg.Seed, atTime)
	var svg string
	switch what {
	case "wave":
		svg = export.SeriesToSVG(p.Positions(), p.Wave(atTime), export.SeriesOptions{
			Title: title, Stroke: "#ff00ff", Baseline: true,
		})
	case "spectrum":
		power, err := p.Spectrum(atTime)
		if err != nil {
			return err
		}
		conv, err := cfg.AxisConvention()
		if err != nil {
			return err
		}
		freqs, err := p.SpectrumAxis(conv)
		if err != nil {
			return err
		}
		lo, hi := packet.PositiveBins(len(power))
		xs := make([]float64, 0, hi-lo)
		for _, f := range freqs[lo:hi] {
			xs = append(xs, math.Abs(f))
		}
		svg = export.SeriesToSVG(xs, power[lo:hi], export.SeriesOptions{Title: title})
	case "braille":
		svg = export.CanvasToSVG(viz.WaveCanvas(p.Wave(atTime), 0, brailleWidth, brailleHeight), 4)
	default:
		return fmt.Errorf("unknown snapshot kind %q (want wave, spectrum or braille)", what)
	}
	if svg == "" {
		return fmt.Errorf("not enough points to draw")
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func frameAt(cmd *cobra.Command) (*export.Frame, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	p, err := buildPacket(cfg)
	if err != nil {
		return nil, err
	}

	f := &export.Frame{
		Law:        cfg.Law,
		Components: p.Len(),
		C:          p.C(),
		Seed:       cfg.Seed,
		Time:       atTime,
		Positions:  p.Positions(),
		Wave:       p.Wave(atTime),
	}
	if !exportSpectrum {
		return f, nil
	}

	if f.Spectrum, err = packet.NormalizedPowerSpectrum(f.Wave); err != nil {
		return nil, err
	}
	conv, err := cfg.AxisConvention()
	if err != nil {
		return nil, err
	}
	if f.Frequencies, err = p.SpectrumAxis(conv); err != nil {
		return nil, err
	}
	return f, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	f, err := frameAt(cmd)
	if err != nil {
		return err
	}
	return writeCompressed(func(w io.Writer) error { return export.WriteCSV(w, f) })
}

func exportJSON(cmd *cobra.Command, args []string) error {
	f, err := frameAt(cmd)
	if err != nil {
		return err
	}
	return writeCompressed(func(w io.Writer) error { return export.WriteJSON(w, f) })
}

func writeCompressed(write func(io.Writer) error) error {
	w, err := export.NewWriter(os.Stdout, export.Compression(compression))
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func listLaws(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRELATION\tSPAN\tDEFAULT C")
	for _, l := range packet.Laws() {
		defC := "-"
		if l.UsesC() {
			defC = fmt.Sprintf("%g", l.DefaultC())
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", l, l.Relation(), l.Span(), defC)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	laws := make([]string, 0, len(config.Presets))
	if len(args) == 1 {
		laws = append(laws, args[0])
	} else {
		for _, l := range packet.Laws() {
			laws = append(laws, l.String())
		}
	}

	for _, law := range laws {
		presets := config.ListPresets(law)
		if len(presets) == 0 {
			fmt.Printf("no presets for law: %s\n", law)
			continue
		}
		fmt.Printf("presets for %s:\n", law)
		for _, name := range presets {
			p := config.GetPreset(law, name)
			fmt.Printf("  %-8s components=%d c=%g\n", name, p.Components, p.Velocity())
		}
	}
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
	fmt.Fprintln(w, "ID\tLAW\tTIME\tN\tC\tSEED\tFRAMES\tSTEP")

	for _, run := range runs {
		r := run.Recipe
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\t%d\t%g\n",
			run.ID,
			r.Law,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			r.Components,
			r.C,
			r.Seed,
			run.FramesTaken,
			r.Step,
		)
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	frameStep, err := cfg.FrameStep()
	if err != nil {
		return err
	}
	pc, err := cfg.PacketConfig()
	if err != nil {
		return err
	}

	// The position axis depends only on the grid, so every seed shares it.
	var axisVals []float64
	if cfg.Axis == packet.AxisPosition.String() {
		grid := packet.PositionGrid(pc.Law, gridSize(pc))
		if len(grid) > 1 {
			axisVals, _ = packet.SpectrumAxis(len(grid), grid[1]-grid[0])
		}
	}

	build := func(seed int64) (sim.Evaluator, error) {
		p, err := packet.New(pc, packet.NewSource(seed))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		return p, nil
	}
	metricSet := func() []sim.Metric { return metrics.Standard(axisVals) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running %d seeds of %s from seed %d...\n", numRuns, cfg.Law, cfg.Seed)
	start := time.Now()
	results, err := sim.NewEnsemble(build, metricSet, numRuns, cfg.Seed).
		Run(ctx, sim.Config{Step: frameStep, Frames: ensembleFrameCount, Spectrum: true})
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", zap.Int("runs", numRuns), zap.Duration("elapsed", time.Since(start)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, s := range sim.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n", s.Name, s.Mean, s.Min, s.Max)
	}
	return w.Flush()
}

func gridSize(pc packet.Config) int {
	if pc.Positions > 0 {
		return pc.Positions
	}
	return pc.Components
}

func benchLaw(cmd *cobra.Command, args []string) error {
	law, err := packet.ParseLaw(lawID)
	if err != nil {
		return err
	}
	if benchFrameCount <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchFrameCount)
	}

	fmt.Printf("benchmarking %s\n", law)
	fmt.Printf("%s\n\n", hostSummary())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSTEP\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range packet.ComponentCounts() {
		cfg := packet.DefaultConfig()
		cfg.Law = law
		cfg.Components = int(n)
		cfg.C = law.DefaultC()

		p, err := packet.New(cfg, packet.NewSource(seed))
		if err != nil {
			return err
		}
		frameStep, err := law.FrameStep(n)
		if err != nil {
			return err
		}

		s := sim.New(p)
		start := time.Now()
		result, err := s.Run(context.Background(), sim.Config{Step: frameStep, Frames: benchFrameCount, Spectrum: true})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%g\t%d\t%v\t%.1f\n",
			n, frameStep, result.FramesTaken, elapsed.Round(time.Microsecond), float64(result.FramesTaken)/elapsed.Seconds())
	}

	return w.Flush()
}

func serveHTTP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving on %s\n", addr)
	fmt.Println("  GET /health")
	fmt.Println("  GET /v1/laws")
	fmt.Println("  GET /v1/packets/wave?" + strings.Join([]string{"law", "components", "c", "seed", "t"}, "=&") + "=")
	fmt.Println("  GET /v1/packets/spectrum?...&axis=")
	return api.Serve(ctx, addr, logger)
}

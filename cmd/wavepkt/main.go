package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavepkt/internal/config"
	"github.com/san-kum/wavepkt/internal/export"
	"github.com/san-kum/wavepkt/internal/logging"
	"github.com/san-kum/wavepkt/internal/packet"
	"github.com/san-kum/wavepkt/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	logger    = zap.NewNop()

	// packet recipe
	lawID      string
	components int
	velocity   float64
	bParam     float64
	seed       int64
	positions  int
	configFile string
	preset     string

	// rendering
	mode      string
	axis      string
	frameRate int
	step      float64
	themeName string
	atTime    float64
	outPath   string
	what      string

	// per-command defaults differ, so each gets its own variable
	runFrameCount      int
	ensembleFrameCount int
	benchFrameCount    int
	plotWithSpectrum   bool
	exportSpectrum     bool

	compression    string
	saveConfigPath string

	numRuns int
	addr    string
)

// main registers the wavepkt commands and runs the live view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "wavepkt",
		Short:         "dispersive wave packet lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logging.Options{Level: logLevel, Format: logFormat})
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: runLive,
	}
	addPacketFlags(rootCmd)
	addLiveFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavepkt", "run journal directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatConsole, "log format (console, json)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate a packet in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPacketFlags(liveCmd)
	addLiveFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run frames headless and journal the recipe",
		Args:  cobra.NoArgs,
		RunE:  runFrames,
	}
	addPacketFlags(runCmd)
	runCmd.Flags().IntVar(&runFrameCount, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().Float64Var(&step, "step", 0, "time per frame (0 uses the law's table)")
	runCmd.Flags().StringVar(&saveConfigPath, "save-config", "", "write the resolved config to this yaml file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the wave at one instant",
		Args:  cobra.NoArgs,
		RunE:  plotWave,
	}
	addPacketFlags(plotCmd)
	plotCmd.Flags().Float64Var(&atTime, "time", 0, "simulated time")
	plotCmd.Flags().BoolVar(&plotWithSpectrum, "spectrum", false, "also plot the spectrum")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "plot the normalized power spectrum at one instant",
		Args:  cobra.NoArgs,
		RunE:  plotSpectrum,
	}
	addPacketFlags(spectrumCmd)
	spectrumCmd.Flags().Float64Var(&atTime, "time", 0, "simulated time")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write an SVG of the wave or spectrum",
		Args:  cobra.NoArgs,
		RunE:  writeSnapshot,
	}
	addPacketFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&atTime, "time", 0, "simulated time")
	snapshotCmd.Flags().StringVar(&outPath, "out", "packet.svg", "output file")
	snapshotCmd.Flags().StringVar(&what, "what", "wave", "wave, spectrum or braille")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "write one frame to stdout as CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	addPacketFlags(exportCSVCmd)
	exportCSVCmd.Flags().Float64Var(&atTime, "time", 0, "simulated time")
	exportCSVCmd.Flags().BoolVar(&exportSpectrum, "spectrum", true, "include the spectrum")
	exportCSVCmd.Flags().StringVar(&compression, "compress", string(export.CompressNone), "output codec (none, gzip, zstd, snappy, brotli, lz4)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "write one frame to stdout as JSON",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	addPacketFlags(exportJSONCmd)
	exportJSONCmd.Flags().Float64Var(&atTime, "time", 0, "simulated time")
	exportJSONCmd.Flags().BoolVar(&exportSpectrum, "spectrum", true, "include the spectrum")
	exportJSONCmd.Flags().StringVar(&compression, "compress", string(export.CompressNone), "output codec (none, gzip, zstd, snappy, brotli, lz4)")

	lawsCmd := &cobra.Command{
		Use:   "laws",
		Short: "list dispersion laws",
		Args:  cobra.NoArgs,
		RunE:  listLaws,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [law]",
		Short: "list presets, optionally for one law",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list journaled runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run consecutive seeds in parallel and summarize metrics",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addPacketFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&ensembleFrameCount, "frames", 200, "frames per run")
	ensembleCmd.Flags().Float64Var(&step, "step", 0, "time per frame (0 uses the law's table)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frame evaluation per component count",
		Args:  cobra.NoArgs,
		RunE:  benchLaw,
	}
	benchCmd.Flags().StringVar(&lawID, "law", config.DefaultLaw, "dispersion law")
	benchCmd.Flags().IntVar(&benchFrameCount, "frames", 20, "frames per count")
	benchCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve packet frames over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serveHTTP,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, spectrumCmd, snapshotCmd, exportCSVCmd, exportJSONCmd,
		lawsCmd, presetsCmd, listCmd, ensembleCmd, benchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPacketFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lawID, "law", config.DefaultLaw, "dispersion law (see 'wavepkt laws')")
	cmd.Flags().IntVar(&components, "components", config.DefaultComponents, "number of components")
	cmd.Flags().Float64Var(&velocity, "c", 0, "velocity constant (default: the law's)")
	cmd.Flags().Float64Var(&bParam, "b", packet.B, "sbck2 stiffness")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&positions, "positions", 0, "grid size (default: one per component)")
	cmd.Flags().StringVar(&axis, "axis", config.DefaultAxis, "spectrum axis (position, legacy)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset for --law")
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "wave, spectrum or all")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Float64Var(&step, "step", 0, "time per frame (0 uses the law's table)")
	cmd.Flags().StringVar(&themeName, "theme", viz.ThemeNames()[0], "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// resolveConfig layers a preset, then the config file, then any flags the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(lawID, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, lawID, config.ListPresets(lawID))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("law") {
		cfg.Law = lawID
	}
	if flags.Changed("components") {
		cfg.Components = components
	}
	if flags.Changed("c") {
		cfg.SetVelocity(velocity)
	}
	if flags.Changed("b") {
		cfg.B = bParam
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("positions") {
		cfg.Positions = positions
	}
	if flags.Changed("axis") {
		cfg.Axis = axis
	}
	if flags.Lookup("mode") != nil && flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("step") != nil && flags.Changed("step") {
		cfg.Step = step
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildPacket(cfg *config.Config) (*packet.Packet, error) {
	pc, err := cfg.PacketConfig()
	if err != nil {
		return nil, err
	}
	return packet.New(pc, packet.NewSource(cfg.Seed))
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/folio/internal/config"
	"github.com/san-kum/folio/internal/content"
	"github.com/san-kum/folio/internal/export"
	"github.com/san-kum/folio/internal/interact"
	"github.com/san-kum/folio/internal/record"
	"github.com/san-kum/folio/internal/tui"
	"github.com/san-kum/folio/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

var (
	dataDir     string
	configFile  string
	logFile     string
	debug       bool
	preset      string
	contentPath string
	theme       string
	frameRate   int
	svgOut      string
	svgWidth    int
	svgHeight   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "folio",
		Short:        "animated portfolio for the terminal",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "data directory (default "+config.DefaultDataDir+")")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logFile, "log", "", "log file path")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&preset, "preset", "", "interaction preset")
	pf.StringVar(&contentPath, "content", "", "profile content file (yaml)")
	pf.StringVar(&theme, "theme", "", "colour theme")
	pf.IntVar(&frameRate, "fps", 0, "frames per second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the portfolio",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded sessions",
		RunE:  listSessions,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [session_id|script.yaml]",
		Short: "replay a session headless",
		Args:  cobra.ExactArgs(1),
		RunE:  replaySession,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [session_id|script.yaml]",
		Short: "replay and write the final frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default <id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 1200, "image width in px")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height in px")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [session_id|script.yaml]",
		Short: "replay and print the final snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list interaction presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTILT\tDECAY\tTICK\tTRAIL\tFADE\tMODE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%dms\t%d\t%.3f\t%s\n",
					name, p.Tilt, p.Decay, p.TickMs, p.MaxTrail, p.FadeStep, p.DecayMode)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				th := viz.GetTheme(name)
				fmt.Printf("%-12s %s\n", name, viz.GradientText("████████", th.Primary, th.Accent))
			}
		},
	}

	contentCmd := &cobra.Command{
		Use:   "content [path]",
		Short: "print and validate the profile content",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showContent,
	}

	rootCmd.AddCommand(runCmd, listCmd, replayCmd, exportSVGCmd, exportJSONCmd, presetsCmd, themesCmd, contentCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the config file, the preset and explicit flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("content") {
		cfg.ContentPath = contentPath
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setupLogging(cfg)
	return cfg, nil
}

// setupLogging routes slog to a rotating file. Without a log file the output
// is dropped so it cannot tear the full-screen view.
func setupLogging(cfg *config.Config) {
	path := cfg.LogFile
	if path == "" && cfg.Debug {
		path = filepath.Join(cfg.DataDir, "folio.log")
	}
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadProfile(cfg *config.Config) (*content.Profile, error) {
	if cfg.ContentPath == "" {
		return content.Default(), nil
	}
	p, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		slog.Warn("content has problems", "path", cfg.ContentPath, "error", err)
	}
	return p, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	slog.Info("starting", "theme", cfg.Theme, "preset", preset, "decay", cfg.Interaction.DecayMode)
	return tui.Run(tui.Options{
		Config:  cfg,
		Profile: profile,
		Preset:  preset,
		Store:   record.New(filepath.Join(cfg.DataDir, "sessions")),
	})
}

func listSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := record.New(filepath.Join(cfg.DataDir, "sessions"))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECORDED\tPRESET\tDECAY\tEVENTS\tDRAGS\tLENGTH")
	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			humanize.Time(run.Timestamp),
			p,
			run.DecayMode,
			humanize.Comma(int64(run.Events)),
			run.Drags,
			run.Duration.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

type session struct {
	id     string
	preset string
	decay  string
	events []record.Event
}

func isScript(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".yaml" || ext == ".yml"
}

// loadSession resolves a recorded session id or a script file. The session's
// own preset and decay mode win over the config unless --preset is given.
func loadSession(cfg *config.Config, arg string) (*session, error) {
	if isScript(arg) {
		sc, err := record.LoadScript(arg)
		if err != nil {
			return nil, err
		}
		events, err := sc.Events()
		if err != nil {
			return nil, err
		}
		id := sc.Name
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		return &session{id: id, preset: sc.Preset, events: events}, nil
	}

	st := record.New(filepath.Join(cfg.DataDir, "sessions"))
	meta, err := st.Load(arg)
	if err != nil {
		return nil, err
	}
	events, err := st.LoadEvents(arg)
	if err != nil {
		return nil, err
	}
	return &session{id: meta.ID, preset: meta.Preset, decay: meta.DecayMode, events: events}, nil
}

func replayFor(cmd *cobra.Command, arg string) (*config.Config, *session, *record.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := loadSession(cfg, arg)
	if err != nil {
		return nil, nil, nil, err
	}
	if preset == "" {
		if s.preset != "" && !cfg.Apply(s.preset) {
			slog.Warn("session preset unknown, using config", "preset", s.preset)
		}
		if s.decay != "" {
			cfg.Interaction.DecayMode = s.decay
		}
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := record.Replay(context.Background(), s.events, params)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, s, res, nil
}

func replaySession(cmd *cobra.Command, args []string) error {
	cfg, s, res, err := replayFor(cmd, args[0])
	if err != nil {
		return err
	}

	card := res.Final.Card
	fmt.Printf("session: %s\n", s.id)
	fmt.Printf("decay: %s\n", cfg.Interaction.DecayMode)
	fmt.Printf("events: %s  presses: %d  engaged: %d\n", humanize.Comma(int64(len(s.events))), res.Presses, res.Engaged)
	fmt.Printf("card: position %s  rotation %s  dragging %v\n", card.Position, card.Rotation, card.Dragging)
	fmt.Printf("trail: final %d  peak %d\n", len(res.Final.Trail), res.MaxTrail)
	fmt.Println(viz.Separator(80))

	if len(res.TrailLens) < 2 {
		return nil
	}
	graph := asciigraph.Plot(res.TrailLens,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("trail length per event"),
	)
	fmt.Println(graph)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, s, res, err := replayFor(cmd, args[0])
	if err != nil {
		return err
	}
	params, _ := cfg.Params()

	bd := viz.NewBackdrop(cfg.Backdrop.Particles, cfg.Backdrop.Seed)
	if n := len(s.events); n > 0 {
		bd.Step(s.events[n-1].At.Seconds())
	}
	cols := max(1, int(float64(svgWidth)/cfg.Cell.Width))
	rows := max(1, int(float64(svgHeight)/cfg.Cell.Height))

	svg := export.SceneToSVG(export.Scene{
		Snapshot: res.Final,
		CardSize: params.CardSize,
		Theme:    viz.GetTheme(cfg.Theme),
		Width:    svgWidth,
		Height:   svgHeight,
		Path:     res.Path,
		Dots:     bd.Dots(cols, rows),
	})

	out := svgOut
	if out == "" {
		out = s.id + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", out, humanize.Bytes(uint64(len(svg))))
	return nil
}

type snapshotExport struct {
	ID       string            `json:"id"`
	Preset   string            `json:"preset,omitempty"`
	Decay    string            `json:"decay_mode"`
	Events   int               `json:"events"`
	Presses  int               `json:"presses"`
	Engaged  int               `json:"engaged"`
	MaxTrail int               `json:"max_trail"`
	Snapshot interact.Snapshot `json:"snapshot"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, s, res, err := replayFor(cmd, args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshotExport{
		ID:       s.id,
		Preset:   s.preset,
		Decay:    cfg.Interaction.DecayMode,
		Events:   len(s.events),
		Presses:  res.Presses,
		Engaged:  res.Engaged,
		MaxTrail: res.MaxTrail,
		Snapshot: res.Final,
	})
}

func showContent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.ContentPath = args[0]
	}
	p := content.Default()
	if cfg.ContentPath != "" {
		if p, err = content.Load(cfg.ContentPath); err != nil {
			return err
		}
	}
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	if err := p.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "ok: %d skills, %d contacts\n", len(p.Skills), len(p.Contacts))
	return nil
}

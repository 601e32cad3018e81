package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/webtopd/webtop/browser"
	"github.com/webtopd/webtop/config"
	"github.com/webtopd/webtop/engine"
	"github.com/webtopd/webtop/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Config holds CLI configuration.
type Config struct {
	URL         string
	Interval    time.Duration
	HistorySize int
	JSONMode    bool
	MDMode      bool
	WatchMode   bool
	WatchCount  int
	Section     string
	RecordPath  string
	ReplayPath  string
	MonitorMode bool
	DataDir     string
	Headed      bool
	Metrics     bool
	MetricsAddr string
}

// validSections lists sections available for -watch and -section.
var validSections = []string{"overview", "vitals", "resources", "warnings"}

func printUsage() {
	fmt.Fprintf(os.Stderr, `webtop v%s — Core Web Vitals console for web pages

Usage:
  webtop [OPTIONS] URL

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -watch            CLI output mode — prints to terminal with auto-refresh
  -json             Single JSON snapshot to stdout, then exit
  -md               Single Markdown report to stdout, then exit
  -monitor          Background sampler (no TUI, writes summaries to datadir)
  -version          Print version and exit

Options:
  -interval N       Sampling interval in seconds (default: 1)
  -history N        Samples to keep in ring buffer (default: 300, ~5 min at 1s)
  -section NAME     Section to display in -watch mode (default: overview)
                    Sections: overview, vitals, resources, warnings
  -count N          Number of iterations for -watch mode (0 = infinite, default: 0)
  -datadir PATH     Data directory for monitor mode (default: ~/.webtop/)
  -record FILE      Run TUI while recording samples to FILE
  -replay FILE      Replay a recorded file through the TUI (no browser)
  -headed           Run the browser with a visible window
  -metrics          Expose Prometheus metrics while running
  -metrics-addr A   Listen address for -metrics (default: 127.0.0.1:9190)

Examples:
  webtop https://example.com                 Interactive TUI, 1s refresh
  webtop -interval 5 https://example.com     Interactive TUI, 5s refresh
  webtop -watch https://example.com          CLI mode, overview section
  webtop -watch -section vitals -count 10 https://example.com
  webtop -json https://example.com | jq '.vitals.lcp'
  webtop -md https://example.com > report.md
  webtop -record session.wlog https://example.com
  webtop -replay session.wlog
  webtop -monitor -metrics https://example.com &
  webtop -version
`, Version)
}

// Run parses flags and starts the application.
func Run() error {
	userCfg := config.Load()

	var cfg Config
	var intervalSec int
	var showVersion bool

	flag.IntVar(&intervalSec, "interval", userCfg.IntervalSec, "Sampling interval in seconds")
	flag.IntVar(&cfg.HistorySize, "history", userCfg.HistorySize, "Number of samples to keep in history")
	flag.BoolVar(&cfg.JSONMode, "json", false, "Output a single JSON snapshot and exit")
	flag.BoolVar(&cfg.MDMode, "md", false, "Output a single Markdown report and exit")
	flag.BoolVar(&cfg.WatchMode, "watch", false, "CLI output mode (no TUI, prints to terminal)")
	flag.IntVar(&cfg.WatchCount, "count", 0, "Number of iterations for -watch (0=infinite)")
	flag.StringVar(&cfg.Section, "section", userCfg.Section, "Section for -watch mode (overview,vitals,resources,warnings)")
	flag.BoolVar(&cfg.MonitorMode, "monitor", false, "Run as background sampler (no TUI)")
	flag.StringVar(&cfg.DataDir, "datadir", "", "Data directory for monitor mode (default: ~/.webtop/)")
	flag.StringVar(&cfg.RecordPath, "record", "", "Record samples to file for later replay")
	flag.StringVar(&cfg.ReplayPath, "replay", "", "Replay samples from a recorded file")
	flag.BoolVar(&cfg.Headed, "headed", !userCfg.Browser.Headless, "Run the browser with a visible window")
	flag.BoolVar(&cfg.Metrics, "metrics", userCfg.Prometheus.Enabled, "Expose Prometheus metrics")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", userCfg.Prometheus.Addr, "Listen address for -metrics")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("webtop v%s\n", Version)
		return nil
	}

	if intervalSec < 1 {
		intervalSec = 1
	}
	cfg.Interval = time.Duration(intervalSec) * time.Second

	// Validate section
	if cfg.WatchMode {
		valid := false
		for _, s := range validSections {
			if cfg.Section == s {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Fprintf(os.Stderr, "Error: unknown section %q\n", cfg.Section)
			fmt.Fprintf(os.Stderr, "Valid sections: %s\n\n", strings.Join(validSections, ", "))
			printUsage()
			os.Exit(1)
		}
	}

	// Resolve default data directory
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		cfg.DataDir = filepath.Join(home, ".webtop")
	}

	// -replay needs no URL or browser
	if cfg.ReplayPath != "" {
		return runReplay(cfg)
	}

	cfg.URL = flag.Arg(0)
	if cfg.URL == "" {
		printUsage()
		os.Exit(1)
	}
	if !strings.Contains(cfg.URL, "://") {
		cfg.URL = "https://" + cfg.URL
	}

	opts := browser.DefaultOptions()
	opts.Headless = !cfg.Headed
	if userCfg.Browser.UserAgent != "" {
		opts.UserAgent = userCfg.Browser.UserAgent
	}
	if userCfg.Browser.WindowWidth > 0 && userCfg.Browser.WindowHeight > 0 {
		opts.WindowWidth = userCfg.Browser.WindowWidth
		opts.WindowHeight = userCfg.Browser.WindowHeight
	}
	if userCfg.Browser.TimeoutSec > 0 {
		opts.Timeout = time.Duration(userCfg.Browser.TimeoutSec) * time.Second
	}

	session, err := browser.NewSession(cfg.URL, opts)
	if err != nil {
		return err
	}
	defer session.Close()

	eng := engine.NewEngine(session, cfg.HistorySize)
	eng.Start()

	var exporter *engine.MetricsExporter
	if cfg.Metrics {
		exporter = engine.NewMetricsExporter(cfg.MetricsAddr)
	}

	if cfg.MonitorMode {
		return engine.RunMonitor(eng, engine.MonitorConfig{
			DataDir:  cfg.DataDir,
			Interval: cfg.Interval,
			Exporter: exporter,
		})
	}

	var ticker engine.Ticker = eng
	if exporter != nil {
		exporter.Serve()
		defer exporter.Close()
		ticker = engine.NewInstrumentedTicker(ticker, exporter)
	}

	if cfg.JSONMode {
		return runJSON(ticker)
	}
	if cfg.MDMode {
		return runMarkdown(ticker)
	}
	if cfg.WatchMode {
		return runWatch(ticker, cfg)
	}
	if cfg.RecordPath != "" {
		return runRecord(eng, exporter, cfg)
	}

	// Normal TUI mode
	m := ui.NewModel(ticker, cfg.Interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// settleTicks lets the page deliver buffered entries before a one-shot
// report.
func settleTicks(ticker engine.Ticker, interval time.Duration) {
	ticker.Tick()
	time.Sleep(interval)
	ticker.Base().InvalidateCache()
}

// runJSON outputs a single snapshot as JSON and exits.
func runJSON(ticker engine.Ticker) error {
	settleTicks(ticker, time.Second)
	vitals, snap := ticker.Tick()

	data := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"vitals":    vitals,
		"health":    vitals.Health().String(),
		"snapshot":  snap,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// runMarkdown outputs a markdown report to stdout.
func runMarkdown(ticker engine.Ticker) error {
	settleTicks(ticker, time.Second)
	vitals, snap := ticker.Tick()

	fmt.Println(ui.RenderMarkdown(vitals, snap))
	return nil
}

// runRecord runs the TUI while also recording samples to a file.
func runRecord(eng *engine.Engine, exporter *engine.MetricsExporter, cfg Config) error {
	f, err := os.Create(cfg.RecordPath)
	if err != nil {
		return fmt.Errorf("cannot create record file: %w", err)
	}
	defer f.Close()

	var ticker engine.Ticker = engine.NewRecorder(eng, f)
	if exporter != nil {
		exporter.Serve()
		defer exporter.Close()
		ticker = engine.NewInstrumentedTicker(ticker, exporter)
	}

	m := ui.NewModel(ticker, cfg.Interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// runReplay replays a recorded file through the TUI.
func runReplay(cfg Config) error {
	f, err := os.Open(cfg.ReplayPath)
	if err != nil {
		return fmt.Errorf("cannot open replay file: %w", err)
	}
	defer f.Close()

	player, err := engine.NewPlayer(f, cfg.HistorySize)
	if err != nil {
		return fmt.Errorf("cannot parse replay file: %w", err)
	}

	m := ui.NewModel(player, cfg.Interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

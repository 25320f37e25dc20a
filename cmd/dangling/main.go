// # cmd/dangling/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dangling/internal/config"
	"dangling/internal/observability"
)

var (
	configPath = flag.String("config", "./dangling.toml", "Path to config file")
	exclude    = flag.String("exclude", "", "Comma-separated extra directory patterns to exclude")
	fix        = flag.Bool("fix", false, "Run ruff auto-fix before analysis")
	watch      = flag.Bool("watch", false, "Keep running and re-analyze on file changes")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode (implies -watch)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("dangling v%s\n", VERSION)
		os.Exit(0)
	}

	setupLogging(*verbose, *ui)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.Path = flag.Arg(0)
	}
	if *exclude != "" {
		for _, pattern := range strings.Split(*exclude, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				cfg.Exclude.Dirs = append(cfg.Exclude.Dirs, pattern)
			}
		}
	}
	if *fix {
		cfg.AutoFix = true
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	result, err := app.RunOnce(context.Background())
	if err != nil {
		slog.Error("analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*ui {
		fmt.Print(result.Report())
	}

	if !*watch && !*ui {
		if len(result.Issues) > 0 {
			os.Exit(1)
		}
		return
	}

	if cfg.Metrics.Listen != "" {
		observability.NewServer(cfg.Metrics.Listen).Start()
	}

	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("UI failed", "error", err)
			os.Exit(1)
		}
		return
	}

	select {}
}

// loadConfig falls back to built-in defaults when the default config file is
// absent; an explicitly given path must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == "./dangling.toml" {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogging(verbose, uiMode bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if uiMode {
		// In UI mode, avoid stderr logs corrupting the TUI.
		logPath := filepath.Join(os.TempDir(), "dangling.log")
		if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			output = f
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

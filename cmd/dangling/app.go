// # cmd/dangling/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"dangling/internal/analyzer"
	"dangling/internal/config"
	"dangling/internal/history"
	"dangling/internal/issues"
	"dangling/internal/observability"
	"dangling/internal/resolver"
	"dangling/internal/util"
	"dangling/internal/watcher"
)

type App struct {
	Config   *config.Config
	Analyzer *analyzer.Analyzer

	historyStore  *history.Store
	rescanLimiter *util.Limiter
	teaProgram    *tea.Program
	quiet         bool // Suppress stdout reports (UI mode)

	mu         sync.Mutex
	lastResult *analyzer.Result
}

func NewApp(cfg *config.Config) (*App, error) {
	a, err := analyzer.New(cfg.Path, analyzer.Options{
		ExcludeDirs:  cfg.Exclude.Dirs,
		ExcludeFiles: cfg.Exclude.Files,
		Prober:       resolver.NewInterpreterProber(cfg.Python),
		AutoFix:      cfg.AutoFix,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Analyzer: a,
		// At most one rescan per second; editor save bursts ride on the
		// watcher debounce, this guards against pathological churn.
		rescanLimiter: util.NewLimiter(1, 2),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		app.historyStore = store
	}

	return app, nil
}

func (a *App) RunOnce(ctx context.Context) (*analyzer.Result, error) {
	result, err := a.Analyzer.Run(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.lastResult = result
	a.mu.Unlock()

	a.recordRun(result)

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{result: result})
	}

	return result, nil
}

func (a *App) recordRun(result *analyzer.Result) {
	if a.historyStore == nil {
		return
	}

	undefined := 0
	external := 0
	for _, found := range result.Issues {
		switch found.Type {
		case issues.Undefined:
			undefined++
		case issues.External:
			external++
		}
	}

	err := a.historyStore.SaveRun(history.Run{
		Root:           result.Root,
		FilesAnalyzed:  result.FilesAnalyzed,
		FilesSkipped:   result.FilesSkipped,
		UndefinedCount: undefined,
		ExternalCount:  external,
		Duration:       result.Duration,
	})
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
	}
}

// HandleChanges re-runs the full analysis after a debounced batch of file
// events. The two-phase pipeline has no incremental mode: an edited file can
// change what every other file's imports resolve to.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))

	if !a.rescanLimiter.Allow(1) {
		slog.Debug("rescan throttled")
		return
	}
	observability.RescansTotal.Inc()

	result, err := a.RunOnce(context.Background())
	if err != nil {
		slog.Error("rescan failed", "error", err)
		return
	}

	if !a.quiet {
		fmt.Print(result.Report())
	}
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Runs until the process exits; no Close on this path.
	return w.Watch([]string{a.Analyzer.Root()})
}

func (a *App) RunUI() error {
	a.quiet = true
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		a.mu.Lock()
		last := a.lastResult
		a.mu.Unlock()
		if last != nil {
			p.Send(updateMsg{result: last})
		}
	}()

	_, err := p.Run()
	return err
}

func (a *App) Close() {
	if a.historyStore != nil {
		if err := a.historyStore.Close(); err != nil {
			slog.Warn("failed to close run history", "error", err)
		}
	}
}

// # internal/analyzer/analyzer.go
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"dangling/internal/index"
	"dangling/internal/issues"
	"dangling/internal/observability"
	"dangling/internal/parser"
	"dangling/internal/resolver"
)

// Analyzer runs the full pipeline: scan, extract, index, resolve. Extraction
// and resolution fan out across files; between them sits one hard barrier,
// because an import may legally reference a module discovered later in
// traversal order.
type Analyzer struct {
	root         string
	rootIsFile   bool
	excludeDirs  []string
	excludeFiles []string
	codeParser   *parser.Parser
	prober       resolver.Prober
	autoFix      bool
}

type Options struct {
	ExcludeDirs  []string
	ExcludeFiles []string
	Prober       resolver.Prober
	AutoFix      bool
}

// Result is what one run produced. Issues are ordered by module path, then
// by discovery order within a file, so two runs over an unchanged tree are
// byte-identical when reported.
type Result struct {
	Root          string
	FilesAnalyzed int
	FilesSkipped  int
	Issues        []issues.Issue
	Duration      time.Duration
}

func (r *Result) Report() string {
	return issues.FormatReport(r.Root, r.FilesAnalyzed, r.Issues)
}

// New validates the root path up front: a missing root is the only fatal
// condition, surfaced before any analysis begins.
func New(root string, opts Options) (*Analyzer, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", absRoot)
	}

	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})

	prober := opts.Prober
	if prober == nil {
		prober = NewInterpreterProberDefault()
	}

	return &Analyzer{
		root:         absRoot,
		rootIsFile:   !info.IsDir(),
		excludeDirs:  opts.ExcludeDirs,
		excludeFiles: opts.ExcludeFiles,
		codeParser:   p,
		prober:       prober,
		autoFix:      opts.AutoFix,
	}, nil
}

func NewInterpreterProberDefault() resolver.Prober {
	return resolver.NewInterpreterProber("")
}

func (a *Analyzer) Root() string { return a.root }

// AnalyzeFile extracts one file standalone, without touching the rest of
// the project.
func (a *Analyzer) AnalyzeFile(path string) (*parser.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := a.codeParser.ParseFile(path, content)
	if err != nil {
		return nil, err
	}
	file.Module = index.ModulePath(a.projectRoot(), path)
	return file, nil
}

// Run performs one complete analysis. Nothing raised from extraction or
// resolution terminates the run; every failure degrades to a skipped file
// or an emitted issue.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	if _, err := os.Stat(a.root); err != nil {
		return nil, fmt.Errorf("path not found: %s", a.root)
	}

	if a.autoFix {
		RuffFix(ctx, a.root)
	}

	var paths []string
	if a.rootIsFile {
		paths = []string{a.root}
	} else {
		var err error
		paths, err = ScanDirectories([]string{a.root}, a.excludeDirs, a.excludeFiles)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", a.root, err)
		}
	}

	files, skipped := a.extractAll(ctx, paths)

	// Barrier: the index must be complete before any import is resolved.
	project := index.Build(a.projectRoot(), files)

	collector := issues.NewCollector()
	a.resolveAll(ctx, project, collector)

	result := &Result{
		Root:          a.root,
		FilesAnalyzed: len(files),
		FilesSkipped:  skipped,
		Issues:        collector.Issues(),
		Duration:      time.Since(start),
	}

	observability.AnalysisDuration.Observe(result.Duration.Seconds())
	observability.FilesAnalyzed.Set(float64(result.FilesAnalyzed))
	observability.FilesSkipped.Set(float64(result.FilesSkipped))
	observability.IssuesFound.WithLabelValues(string(issues.Undefined)).
		Set(float64(collector.CountByType(issues.Undefined)))
	observability.IssuesFound.WithLabelValues(string(issues.External)).
		Set(float64(collector.CountByType(issues.External)))

	return result, nil
}

// extractAll parses every file, in parallel. Order of the returned slice
// follows the input paths; a file that fails to parse leaves a gap and a
// warning, never an issue.
func (a *Analyzer) extractAll(ctx context.Context, paths []string) ([]*parser.File, int) {
	parsed := make([]*parser.File, len(paths))
	var skipped atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}
			parseStart := time.Now()
			content, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("skipping unreadable file", "path", path, "error", err)
				skipped.Add(1)
				return nil
			}
			file, err := a.codeParser.ParseFile(path, content)
			if err != nil {
				slog.Warn("skipping file that failed to parse", "path", path, "error", err)
				skipped.Add(1)
				return nil
			}
			observability.ParsingDuration.Observe(time.Since(parseStart).Seconds())
			parsed[i] = file
			return nil
		})
	}
	_ = g.Wait()

	files := make([]*parser.File, 0, len(parsed))
	for _, f := range parsed {
		if f != nil {
			files = append(files, f)
		}
	}
	return files, int(skipped.Load())
}

// resolveAll validates every module against the completed index, in
// parallel, then concatenates per-module sublists in sorted module order.
func (a *Analyzer) resolveAll(ctx context.Context, project *index.Project, collector *issues.Collector) {
	mods := project.Modules()
	batches := make([][]issues.Issue, len(mods))
	res := resolver.New(project, a.prober)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, mod := range mods {
		g.Go(func() error {
			batches[i] = res.Validate(ctx, mod)
			return nil
		})
	}
	_ = g.Wait()

	for _, batch := range batches {
		collector.Add(batch...)
	}
}

// projectRoot is the directory dotted paths are derived from: the root
// itself, or its parent when a single file was given.
func (a *Analyzer) projectRoot() string {
	if a.rootIsFile {
		return filepath.Dir(a.root)
	}
	return a.root
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dangling_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dangling_analysis_seconds",
		Help:    "Time spent on a full analysis run.",
		Buckets: prometheus.DefBuckets,
	})

	FilesAnalyzed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dangling_files_analyzed",
		Help: "Number of files analyzed in the latest run.",
	})

	FilesSkipped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dangling_files_skipped",
		Help: "Number of files skipped in the latest run due to parse failures.",
	})

	IssuesFound = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dangling_issues_found",
		Help: "Number of import issues found in the latest run, by type.",
	}, []string{"type"})

	ProbeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dangling_probe_calls_total",
		Help: "Total number of installed-package introspection subprocesses spawned.",
	}, []string{"kind"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dangling_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dangling_rescans_total",
		Help: "Total number of watch-mode rescans performed.",
	})
)

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Run is one completed analysis, recorded so regressions in issue counts
// can be tracked over time.
type Run struct {
	ID             string
	Timestamp      time.Time
	Root           string
	FilesAnalyzed  int
	FilesSkipped   int
	UndefinedCount int
	ExternalCount  int
	Duration       time.Duration
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO runs (
  run_id, schema_version, ts_utc, root, files_analyzed, files_skipped,
  undefined_count, external_count, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID,
		SchemaVersion,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.Root,
		run.FilesAnalyzed,
		run.FilesSkipped,
		run.UndefinedCount,
		run.ExternalCount,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// LoadRuns returns runs for a root since the given time, oldest first.
func (s *Store) LoadRuns(root string, since time.Time) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
SELECT run_id, ts_utc, root, files_analyzed, files_skipped,
       undefined_count, external_count, duration_ms
FROM runs
WHERE root = ? AND ts_utc >= ?
ORDER BY ts_utc ASC
`, root, since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("load runs for %q: %w", root, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run        Run
			ts         string
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &ts, &run.Root, &run.FilesAnalyzed, &run.FilesSkipped,
			&run.UndefinedCount, &run.ExternalCount, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", ts, err)
		}
		run.Timestamp = parsed
		run.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, run)
	}
	return out, rows.Err()
}

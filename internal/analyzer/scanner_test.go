// # internal/analyzer/scanner_test.go
package analyzer

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	slices.Sort(out)
	return out
}

func TestScanPythonFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":       "",
		"app/utils.py":  "",
		"readme.md":     "",
		"script.sh":     "",
		"data/notes.txt": "",
	})

	got, err := ScanDirectories([]string{root}, nil, nil)
	if err != nil {
		t.Fatalf("ScanDirectories: %v", err)
	}

	want := []string{"app/utils.py", "main.py"}
	if !slices.Equal(relPaths(t, root, got), want) {
		t.Errorf("expected %v, got %v", want, relPaths(t, root, got))
	}
}

func TestScanExcludesDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":                    "",
		"__pycache__/main.cpython-312.pyc.py": "",
		"migrations/0001_initial.py": "",
		"app/views.py":               "",
		"pkg.egg-info/setup.py":      "",
	})

	got, err := ScanDirectories([]string{root},
		[]string{"__pycache__", "migrations", "*.egg-info"}, nil)
	if err != nil {
		t.Fatalf("ScanDirectories: %v", err)
	}

	want := []string{"app/views.py", "main.py"}
	if !slices.Equal(relPaths(t, root, got), want) {
		t.Errorf("expected %v, got %v", want, relPaths(t, root, got))
	}
}

func TestScanExcludesFilePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":         "",
		"proto_pb2.py":    "",
		"other_pb2.py":    "",
		"app/handlers.py": "",
	})

	got, err := ScanDirectories([]string{root}, nil, []string{"*_pb2.py"})
	if err != nil {
		t.Fatalf("ScanDirectories: %v", err)
	}

	want := []string{"app/handlers.py", "main.py"}
	if !slices.Equal(relPaths(t, root, got), want) {
		t.Errorf("expected %v, got %v", want, relPaths(t, root, got))
	}
}

func TestScanSkipsVirtualEnvBySentinel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py": "",
		// Named nothing like a venv, but carries the sentinel.
		"tooling/pyvenv.cfg":                      "home = /usr/bin\n",
		"tooling/lib/site-packages/requests.py":   "",
		"tooling/lib/site-packages/urllib3/x.py":  "",
	})

	got, err := ScanDirectories([]string{root}, nil, nil)
	if err != nil {
		t.Fatalf("ScanDirectories: %v", err)
	}

	want := []string{"main.py"}
	if !slices.Equal(relPaths(t, root, got), want) {
		t.Errorf("expected %v, got %v", want, relPaths(t, root, got))
	}
}

func TestScanRootMatchingExclusionStillScanned(t *testing.T) {
	// A root directory whose own name matches an exclusion pattern is
	// scanned anyway; only descendants are filtered.
	parent := t.TempDir()
	root := filepath.Join(parent, "build")
	writeTree(t, parent, map[string]string{
		"build/main.py":       "",
		"build/build/skip.py": "",
	})

	got, err := ScanDirectories([]string{root}, []string{"build"}, nil)
	if err != nil {
		t.Fatalf("ScanDirectories: %v", err)
	}

	want := []string{"main.py"}
	if !slices.Equal(relPaths(t, root, got), want) {
		t.Errorf("expected %v, got %v", want, relPaths(t, root, got))
	}
}

func TestScanInvalidPattern(t *testing.T) {
	if _, err := ScanDirectories([]string{t.TempDir()}, []string{"[unclosed"}, nil); err == nil {
		t.Error("expected error for invalid dir pattern")
	}
	if _, err := ScanDirectories([]string{t.TempDir()}, nil, []string{"[unclosed"}); err == nil {
		t.Error("expected error for invalid file pattern")
	}
}

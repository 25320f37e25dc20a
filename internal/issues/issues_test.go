// # internal/issues/issues_test.go
package issues

import (
	"strings"
	"testing"
)

func TestIssueString(t *testing.T) {
	issue := Issue{
		Type:    Undefined,
		File:    "app/utils.py",
		Message: "'app.models' does not define 'User'",
		Line:    3,
	}
	want := "[UNDEFINED] app/utils.py: 'app.models' does not define 'User'"
	if got := issue.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCollectorPreservesOrder(t *testing.T) {
	c := NewCollector()
	c.Add(Issue{Type: Undefined, File: "a.py", Message: "first"})
	c.Add(
		Issue{Type: External, File: "b.py", Message: "second"},
		Issue{Type: Undefined, File: "c.py", Message: "third"},
	)

	got := c.Issues()
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(got))
	}
	for i, msg := range []string{"first", "second", "third"} {
		if got[i].Message != msg {
			t.Errorf("position %d: expected %q, got %q", i, msg, got[i].Message)
		}
	}
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.Add(Issue{Type: Undefined}, Issue{Type: External}, Issue{Type: Undefined})

	if c.Len() != 3 {
		t.Errorf("expected Len 3, got %d", c.Len())
	}
	if n := c.CountByType(Undefined); n != 2 {
		t.Errorf("expected 2 UNDEFINED, got %d", n)
	}
	if n := c.CountByType(External); n != 1 {
		t.Errorf("expected 1 EXTERNAL, got %d", n)
	}
}

func TestCollectorIssuesReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Add(Issue{Message: "original"})

	got := c.Issues()
	got[0].Message = "mutated"

	if c.Issues()[0].Message != "original" {
		t.Error("mutating the returned slice must not affect the collector")
	}
}

func TestFormatReportEmpty(t *testing.T) {
	want := "No import issues found in /src/proj\n"
	if got := FormatReport("/src/proj", 12, nil); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatReportWithIssues(t *testing.T) {
	found := []Issue{
		{Type: Undefined, File: "app/a.py", Message: "module 'app.b' not found in project"},
		{Type: External, File: "app/c.py", Message: "Module not found: 'requestz'"},
	}

	got := FormatReport("/src/proj", 7, found)

	for _, part := range []string{
		"Import Analysis Report: /src/proj",
		strings.Repeat("=", 60),
		"Files analyzed: 7",
		"Issues found: 2",
		strings.Repeat("-", 60),
		"[UNDEFINED] app/a.py: module 'app.b' not found in project",
		"[EXTERNAL] app/c.py: Module not found: 'requestz'",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("report missing %q:\n%s", part, got)
		}
	}

	// Lines appear in discovery order.
	if strings.Index(got, "app/a.py") > strings.Index(got, "app/c.py") {
		t.Error("issues rendered out of discovery order")
	}

	// Byte-for-byte stable across calls.
	if again := FormatReport("/src/proj", 7, found); again != got {
		t.Error("report not deterministic across calls")
	}
}

// # internal/issues/issues.go
package issues

import (
	"fmt"
	"strings"
	"sync"
)

type Type string

const (
	// Undefined: the target module is part of the project but does not
	// export the requested name, or cannot be located within the project.
	Undefined Type = "UNDEFINED"
	// External: the target is not part of the project and the installed
	// package is missing or lacks the requested attribute.
	External Type = "EXTERNAL"
)

// Issue is one resolver finding. Never mutated after creation.
type Issue struct {
	Type    Type
	File    string
	Message string
	Line    int
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Type, i.File, i.Message)
}

// Collector accumulates issues in discovery order. A new run starts from a
// fresh collector; nothing carries over between runs.
type Collector struct {
	mu     sync.Mutex
	issues []Issue
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(batch ...Issue) {
	if len(batch) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, batch...)
}

// Issues returns a copy, so callers cannot mutate the collected sequence.
func (c *Collector) Issues() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

func (c *Collector) CountByType(t Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, i := range c.issues {
		if i.Type == t {
			n++
		}
	}
	return n
}

// FormatReport renders the fixed-format summary: header with the root path,
// file and issue counts, then one line per issue in discovery order.
func FormatReport(root string, filesAnalyzed int, found []Issue) string {
	if len(found) == 0 {
		return fmt.Sprintf("No import issues found in %s\n", root)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nImport Analysis Report: %s\n", root)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Files analyzed: %d\n", filesAnalyzed)
	fmt.Fprintf(&b, "Issues found: %d\n", len(found))
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, i := range found {
		b.WriteString(i.String() + "\n")
	}
	return b.String()
}

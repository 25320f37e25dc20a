// # internal/resolver/introspect.go
package resolver

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"dangling/internal/observability"
)

// Prober answers whether an installed package exists and whether it carries
// a given attribute. Kept narrow so environments that refuse to load
// arbitrary packages can swap in a static manifest.
type Prober interface {
	ModuleExists(ctx context.Context, module string) bool
	AttributeExists(ctx context.Context, module, name string) bool
}

const (
	findSpecScript = `import importlib.util, sys
try:
    spec = importlib.util.find_spec(sys.argv[1])
except Exception:
    spec = None
sys.exit(0 if spec is not None else 1)
`
	attrScript = `import importlib, importlib.util, sys
mod, attr = sys.argv[1], sys.argv[2]
try:
    m = importlib.import_module(mod)
except Exception:
    sys.exit(1)
if hasattr(m, attr):
    sys.exit(0)
try:
    spec = importlib.util.find_spec(mod + "." + attr)
except Exception:
    spec = None
sys.exit(0 if spec is not None else 1)
`
)

// InterpreterProber asks a Python interpreter whether modules and attributes
// exist. Every subprocess failure, including a missing interpreter or a
// package that blows up on import, degrades to "not found" so a broken
// environment can never abort a run.
type InterpreterProber struct {
	Python  string
	Timeout time.Duration

	warnOnce sync.Once
}

func NewInterpreterProber(python string) *InterpreterProber {
	if python == "" {
		python = "python3"
	}
	return &InterpreterProber{Python: python, Timeout: 10 * time.Second}
}

func (p *InterpreterProber) ModuleExists(ctx context.Context, module string) bool {
	if pythonStdlib[module] {
		return true
	}
	observability.ProbeCallsTotal.WithLabelValues("module").Inc()
	return p.run(ctx, findSpecScript, module)
}

func (p *InterpreterProber) AttributeExists(ctx context.Context, module, name string) bool {
	observability.ProbeCallsTotal.WithLabelValues("attribute").Inc()
	return p.run(ctx, attrScript, module, name)
}

func (p *InterpreterProber) run(ctx context.Context, script string, args ...string) bool {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Python, append([]string{"-c", script}, args...)...)
	err := cmd.Run()
	if err == nil {
		return true
	}
	if _, ok := err.(*exec.ExitError); !ok {
		p.warnOnce.Do(func() {
			slog.Warn("python interpreter unavailable, external imports will be reported as missing",
				"python", p.Python, "error", err)
		})
	}
	return false
}

// StaticProber resolves against a fixed manifest of module -> attribute
// names. Used by tests and by callers that must not load installed packages.
type StaticProber struct {
	Modules map[string][]string
}

func (p *StaticProber) ModuleExists(_ context.Context, module string) bool {
	if pythonStdlib[module] {
		return true
	}
	_, ok := p.Modules[module]
	return ok
}

func (p *StaticProber) AttributeExists(_ context.Context, module, name string) bool {
	attrs, ok := p.Modules[module]
	if !ok {
		// Stdlib module with no manifest entry: attributes cannot be
		// verified statically, so give it the benefit of the doubt.
		return pythonStdlib[module]
	}
	for _, attr := range attrs {
		if attr == name {
			return true
		}
	}
	return false
}

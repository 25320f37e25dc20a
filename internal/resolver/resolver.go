// # internal/resolver/resolver.go
package resolver

import (
	"context"
	"fmt"
	"strings"

	"dangling/internal/index"
	"dangling/internal/issues"
	"dangling/internal/parser"
)

// Resolver validates imports against a completed project index, falling back
// to installed-package introspection for anything outside the project.
// Local classification always wins: a module path that exists both in the
// project and as an installed package is treated as local, matching Python's
// own precedence inside a project tree.
type Resolver struct {
	project *index.Project
	prober  Prober
}

func New(project *index.Project, prober Prober) *Resolver {
	return &Resolver{project: project, prober: prober}
}

// Validate checks every import of one module. Safe to call concurrently for
// different modules once the index is built.
func (r *Resolver) Validate(ctx context.Context, mod *index.Module) []issues.Issue {
	var found []issues.Issue
	for _, imp := range mod.Imports {
		if issue := r.check(ctx, mod, imp); issue != nil {
			found = append(found, *issue)
		}
	}
	return found
}

func (r *Resolver) check(ctx context.Context, mod *index.Module, imp parser.Import) *issues.Issue {
	target := imp.Module
	if imp.RelativeDepth > 0 {
		resolved, ok := ResolveRelative(mod.Path, mod.IsPackage, imp.RelativeDepth, imp.Module)
		if !ok {
			return &issues.Issue{
				Type: issues.Undefined,
				File: mod.FilePath,
				Message: fmt.Sprintf("relative import (depth %d) from '%s' escapes the project",
					imp.RelativeDepth, mod.Path),
				Line: imp.Line,
			}
		}
		target = resolved
	}

	if imp.RelativeDepth > 0 && imp.Module == "" && imp.Name != "" {
		return r.checkSibling(mod, imp, target)
	}
	if imp.Name == "" {
		return r.checkModule(ctx, mod, imp, target)
	}
	return r.checkName(ctx, mod, imp, target)
}

// checkSibling validates `from . import helper`: the name resolves to a
// module next to the importing package (app.utils importing app.helper),
// or to an export of the package itself.
func (r *Resolver) checkSibling(mod *index.Module, imp parser.Import, base string) *issues.Issue {
	joined := imp.Name
	if base != "" {
		joined = base + "." + imp.Name
	}
	if r.project.Has(joined) {
		return nil
	}
	if record, ok := r.project.Lookup(base); ok && record.Defines(imp.Name) {
		return nil
	}
	return r.localMiss(mod, imp, joined)
}

// checkModule validates a whole-module import: `import x.y` or
// `from . import *`-style records with no individual name.
func (r *Resolver) checkModule(ctx context.Context, mod *index.Module, imp parser.Import, target string) *issues.Issue {
	if target == "" {
		// `from . import *` resolved to the importing package itself.
		return nil
	}
	if r.project.Has(target) {
		return nil
	}
	if imp.RelativeDepth > 0 || r.withinProject(target) {
		return r.localMiss(mod, imp, target)
	}
	if r.prober.ModuleExists(ctx, target) {
		return nil
	}
	return &issues.Issue{
		Type:    issues.External,
		File:    mod.FilePath,
		Message: fmt.Sprintf("Module not found: '%s'", target),
		Line:    imp.Line,
	}
}

// checkName validates `from <target> import <name>`. The name may be either
// a symbol exported by the target module or a submodule of it.
func (r *Resolver) checkName(ctx context.Context, mod *index.Module, imp parser.Import, target string) *issues.Issue {
	if r.project.Has(target + "." + imp.Name) {
		return nil
	}

	if record, ok := r.project.Lookup(target); ok {
		if record.Defines(imp.Name) {
			return nil
		}
		return &issues.Issue{
			Type:    issues.Undefined,
			File:    mod.FilePath,
			Message: fmt.Sprintf("'%s' does not define '%s'", target, imp.Name),
			Line:    imp.Line,
		}
	}

	if imp.RelativeDepth > 0 || r.withinProject(target) {
		return r.localMiss(mod, imp, target+"."+imp.Name)
	}

	if !r.prober.ModuleExists(ctx, target) {
		return &issues.Issue{
			Type:    issues.External,
			File:    mod.FilePath,
			Message: fmt.Sprintf("Module not found: '%s'", target),
			Line:    imp.Line,
		}
	}
	if !r.prober.AttributeExists(ctx, target, imp.Name) {
		return &issues.Issue{
			Type:    issues.External,
			File:    mod.FilePath,
			Message: fmt.Sprintf("Module '%s' has no attribute '%s'", target, imp.Name),
			Line:    imp.Line,
		}
	}
	return nil
}

func (r *Resolver) localMiss(mod *index.Module, imp parser.Import, target string) *issues.Issue {
	return &issues.Issue{
		Type:    issues.Undefined,
		File:    mod.FilePath,
		Message: fmt.Sprintf("module '%s' not found in project", target),
		Line:    imp.Line,
	}
}

// withinProject reports whether an absolute dotted path falls under a
// top-level package of the project, so a miss is a local miss rather than
// an external-package lookup.
func (r *Resolver) withinProject(target string) bool {
	head, _, _ := strings.Cut(target, ".")
	return r.project.Has(head)
}

// ResolveRelative rewrites a leading-dot import to an absolute dotted path
// using the importing module's own location. Depth 1 resolves against the
// module's own package; each further dot walks up one enclosing package.
// Reports false when the depth exceeds the available nesting.
func ResolveRelative(fromModule string, fromIsPackage bool, depth int, target string) (string, bool) {
	parts := strings.Split(fromModule, ".")
	if !fromIsPackage {
		// Drop the module itself; relative imports resolve against its package.
		parts = parts[:len(parts)-1]
	}

	up := depth - 1
	if up > len(parts) {
		return "", false
	}
	base := strings.Join(parts[:len(parts)-up], ".")

	if target == "" {
		return base, true
	}
	if base == "" {
		return target, true
	}
	return base + "." + target, true
}

// # internal/index/index.go
package index

import (
	"log/slog"
	"sort"

	"dangling/internal/parser"
)

// Module is one indexed file: its imports in source order and the set of
// names it exports. Owned by the Project once built; not mutated afterwards.
type Module struct {
	Path      string // Dotted module path
	FilePath  string
	IsPackage bool // True for __init__.py files
	Imports   []parser.Import
	Exports   map[string]parser.Export // Redefinition overwrites, last wins
}

func (m *Module) Defines(name string) bool {
	_, ok := m.Exports[name]
	return ok
}

// Project maps dotted module paths to their records. Built once per run and
// read-only during validation, so resolution may start only after Build
// returns.
type Project struct {
	Root    string
	modules map[string]*Module
}

// Build consolidates extracted files into a project index. Two files mapping
// to the same dotted path is a known source of resolution inaccuracy: the
// last writer wins, with a warning rather than an error.
func Build(root string, files []*parser.File) *Project {
	p := &Project{
		Root:    root,
		modules: make(map[string]*Module, len(files)),
	}

	for _, f := range files {
		dotted := f.Module
		if dotted == "" {
			dotted = ModulePath(root, f.Path)
		}
		if dotted == "" {
			slog.Warn("file outside project root, not indexed", "path", f.Path)
			continue
		}

		if prev, ok := p.modules[dotted]; ok {
			slog.Warn("duplicate module path, keeping last",
				"module", dotted, "previous", prev.FilePath, "path", f.Path)
		}

		mod := &Module{
			Path:      dotted,
			FilePath:  f.Path,
			IsPackage: IsPackagePath(f.Path),
			Imports:   f.Imports,
			Exports:   make(map[string]parser.Export, len(f.Exports)),
		}
		for _, exp := range f.Exports {
			mod.Exports[exp.Name] = exp
		}
		p.modules[dotted] = mod
	}

	return p
}

func (p *Project) Lookup(dotted string) (*Module, bool) {
	m, ok := p.modules[dotted]
	return m, ok
}

func (p *Project) Has(dotted string) bool {
	_, ok := p.modules[dotted]
	return ok
}

func (p *Project) Len() int {
	return len(p.modules)
}

// Modules returns all records sorted by dotted path, so callers iterating
// the index produce deterministic output.
func (p *Project) Modules() []*Module {
	out := make([]*Module, 0, len(p.modules))
	for _, m := range p.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

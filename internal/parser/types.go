// # internal/parser/types.go
package parser

import (
	"time"
)

type File struct {
	Path     string
	Module   string // Dotted module path, set by the indexer
	Imports  []Import
	Exports  []Export
	ParsedAt time.Time
}

// Import is one imported name. `from x import a, b` yields two records,
// `import x` yields a single record with an empty Name.
type Import struct {
	Module        string // Dotted target, may be empty for `from . import x`
	Name          string // Imported symbol, empty for whole-module imports
	Alias         string
	RelativeDepth int // Leading-dot count, 0 for absolute imports
	Line          int
}

// Export is a module-scope definition visible to importers.
type Export struct {
	Name string
	Kind ExportKind
	Line int
}

type ExportKind int

const (
	KindFunction ExportKind = iota
	KindClass
	KindVariable
)

func (k ExportKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

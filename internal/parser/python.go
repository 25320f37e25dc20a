// # internal/parser/python.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor turns a parsed syntax tree into imports and module-scope
// exports. Imports are collected everywhere, including inside function and
// class bodies; exports only at module scope.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		ParsedAt: time.Now(),
	}

	e.walk(root, source, file, true)

	return file, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, file *File, moduleScope bool) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
		return
	case "import_from_statement", "future_import_statement":
		e.extractFromImport(node, source, file)
		return
	case "function_definition":
		if moduleScope {
			e.addDefinition(node, source, file, KindFunction)
		}
		// Nested imports are still validated, so keep walking the body.
		moduleScope = false
	case "class_definition":
		if moduleScope {
			e.addDefinition(node, source, file, KindClass)
		}
		moduleScope = false
	case "assignment":
		if moduleScope {
			e.extractAssignment(node, source, file)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file, moduleScope)
	}
}

// extractImport handles `import a.b` and `import a.b as c`, one record per
// module, with no imported name.
func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			module := e.getText(child, source)
			file.Imports = append(file.Imports, Import{
				Module: module,
				Line:   e.line(child),
			})
		case "aliased_import":
			var module, alias string
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					if module == "" {
						module = e.getText(sub, source)
					} else {
						alias = e.getText(sub, source)
					}
				}
			}
			file.Imports = append(file.Imports, Import{
				Module: module,
				Alias:  alias,
				Line:   e.line(child),
			})
		}
	}
}

// extractFromImport handles `from X import a, b`, `from . import a` and
// `from ..pkg import a as b`, one record per imported name. A star import
// yields a single record with no name.
func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	var module string
	depth := 0
	star := false
	seenImport := false

	if node.Kind() == "future_import_statement" {
		module = "__future__"
		seenImport = true
	}

	type namedImport struct {
		name  string
		alias string
		line  int
	}
	var names []namedImport

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			text := e.getText(child, source)
			trimmed := strings.TrimLeft(text, ".")
			depth = len(text) - len(trimmed)
			module = trimmed

		case "import":
			seenImport = true

		case "wildcard_import":
			star = true

		case "dotted_name", "identifier":
			if seenImport {
				names = append(names, namedImport{
					name: e.getText(child, source),
					line: e.line(child),
				})
			} else if depth == 0 {
				module = e.getText(child, source)
			}

		case "aliased_import":
			var name, alias string
			line := e.line(child)
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					if name == "" {
						name = e.getText(sub, source)
					} else {
						alias = e.getText(sub, source)
					}
				}
			}
			if name != "" {
				names = append(names, namedImport{name: name, alias: alias, line: line})
			}
		}
	}

	if star || len(names) == 0 {
		file.Imports = append(file.Imports, Import{
			Module:        module,
			RelativeDepth: depth,
			Line:          e.line(node),
		})
		return
	}

	for _, n := range names {
		file.Imports = append(file.Imports, Import{
			Module:        module,
			Name:          n.name,
			Alias:         n.alias,
			RelativeDepth: depth,
			Line:          n.line,
		})
	}
}

func (e *PythonExtractor) addDefinition(node *sitter.Node, source []byte, file *File, kind ExportKind) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	file.Exports = append(file.Exports, Export{
		Name: e.getText(name, source),
		Kind: kind,
		Line: e.line(node),
	})
}

// extractAssignment records module-level assignment targets, including tuple
// unpacking. Attribute and subscript targets do not bind module names.
func (e *PythonExtractor) extractAssignment(node *sitter.Node, source []byte, file *File) {
	// A bare annotation (`x: int` with no value) binds nothing.
	if node.ChildByFieldName("right") == nil {
		return
	}
	left := node.ChildByFieldName("left")
	if left != nil {
		e.collectTargets(left, source, file)
	}
}

func (e *PythonExtractor) collectTargets(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "identifier":
		file.Exports = append(file.Exports, Export{
			Name: e.getText(node, source),
			Kind: KindVariable,
			Line: e.line(node),
		})
		return
	case "attribute", "subscript":
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectTargets(node.Child(i), source, file)
	}
}

func (e *PythonExtractor) line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func (e *PythonExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

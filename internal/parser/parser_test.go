// # internal/parser/parser_test.go
package parser

import (
	"errors"
	"testing"
)

func TestParseFileRejectsUnsupportedPath(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	p.RegisterExtractor("python", &PythonExtractor{})

	_, err := p.ParseFile("notes.txt", []byte("hello"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	if p.IsSupportedPath("notes.txt") {
		t.Error("expected notes.txt to be unsupported")
	}
	if !p.IsSupportedPath("pkg/mod.py") {
		t.Error("expected pkg/mod.py to be supported")
	}
}

func TestParseFileReportsSyntaxErrors(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	p.RegisterExtractor("python", &PythonExtractor{})

	_, err := p.ParseFile("broken.py", []byte("def broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected error for malformed source")
	}
}

func TestParseFileEmpty(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	p.RegisterExtractor("python", &PythonExtractor{})

	file, err := p.ParseFile("empty.py", []byte(""))
	if err != nil {
		t.Fatalf("empty file must parse: %v", err)
	}
	if len(file.Imports) != 0 || len(file.Exports) != 0 {
		t.Errorf("expected no imports or exports, got %+v", file)
	}
}

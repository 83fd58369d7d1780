package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"dsense/internal/ast"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

func extractSample(t *testing.T) (*ast.Tree, *symbols.Result) {
	t.Helper()
	tree := ast.NewTree(ast.Hints{}, source.NewInterner())
	mod := tree.NewModule(source.Span{File: 1, End: 60})

	tree.PushDecl(mod, tree.Decls.NewModuleDecl(
		source.Span{File: 1, End: 9},
		[]source.StringID{tree.Strings.Intern("m")},
	))
	tree.PushDecl(mod, tree.Decls.NewImportDecl(source.Span{File: 1, Start: 10, End: 28}, []ast.ImportTarget{
		{Chain: []source.StringID{tree.Strings.Intern("std"), tree.Strings.Intern("stdio")}},
	}))

	intType := tree.Types.NewPath(source.Span{}, []ast.TypeSegment{
		{Name: tree.Strings.Intern("int")},
	})
	member := tree.Decls.NewVariableDecl(source.Span{File: 1, Start: 40, End: 48}, ast.VariableDecl{
		Type: intType,
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("x"), NameSpan: source.Span{File: 1, Start: 44, End: 45}},
		},
	})
	tree.PushDecl(mod, tree.Decls.NewAggregate(ast.DeclClass, source.Span{File: 1, Start: 30, End: 58}, ast.AggregateDecl{
		Name:     tree.Strings.Intern("C"),
		NameSpan: source.Span{File: 1, Start: 36, End: 37},
		Body:     source.Span{File: 1, Start: 38, End: 58},
		Members:  []ast.DeclID{member},
	}))

	res := symbols.ExtractModule(tree, ast.ModuleID(1), symbols.Options{File: 1})
	return tree, res
}

func TestBuildOutline(t *testing.T) {
	tree, res := extractSample(t)
	out, err := BuildOutline(res, tree, nil, "m.d")
	if err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}
	if out.SymbolCount != res.SymbolCount {
		t.Fatalf("symbol count = %d, want %d", out.SymbolCount, res.SymbolCount)
	}
	if len(out.Symbols) != res.SymbolCount {
		t.Fatalf("symbols = %d, want %d", len(out.Symbols), res.SymbolCount)
	}

	byName := map[string]SymbolJSON{}
	for _, sym := range out.Symbols {
		byName[sym.Name] = sym
	}
	if byName["C"].Kind != "class" {
		t.Fatalf("C kind = %q, want class", byName["C"].Kind)
	}
	if byName["x"].Type != "int" {
		t.Fatalf("x type = %q, want int", byName["x"].Type)
	}
	if byName["x"].Parent == 0 {
		t.Fatal("x has no parent in outline")
	}

	// Scope dump carries the import and the implicit this.
	foundImport, foundThis := false, false
	for _, scope := range out.Scopes {
		for _, imp := range scope.Imports {
			if imp.Path == "std.stdio" {
				foundImport = true
			}
		}
		for _, local := range scope.Locals {
			if local == "this" {
				foundThis = true
			}
		}
	}
	if !foundImport || !foundThis {
		t.Fatalf("scope dump missing import/this (import=%v this=%v)", foundImport, foundThis)
	}
}

func TestJSONEncodes(t *testing.T) {
	tree, res := extractSample(t)
	out, err := BuildOutline(res, tree, nil, "m.d")
	if err != nil {
		t.Fatalf("BuildOutline: %v", err)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, []*OutlineOutput{out}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded struct {
		Modules []OutlineOutput `json:"modules"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Modules) != 1 || decoded.Modules[0].File != "m.d" {
		t.Fatalf("decoded modules = %+v", decoded.Modules)
	}
}

func TestPrettyOutline(t *testing.T) {
	tree, res := extractSample(t)

	var buf bytes.Buffer
	Pretty(&buf, res, tree, nil, PrettyOpts{Scopes: true})
	text := buf.String()

	for _, want := range []string{"module m", "class C", "variable x", "import std.stdio", "local this"} {
		if !strings.Contains(text, want) {
			t.Fatalf("outline missing %q:\n%s", want, text)
		}
	}
	// Nesting: the class line is indented under the module line.
	if !strings.Contains(text, "\n  class C") {
		t.Fatalf("class not indented under module:\n%s", text)
	}
}

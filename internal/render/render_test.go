package render

import (
	"testing"

	"dsense/internal/ast"
	"dsense/internal/source"
)

func newTree() *ast.Tree {
	return ast.NewTree(ast.Hints{}, nil)
}

func pathType(tree *ast.Tree, names ...string) ast.TypeID {
	segs := make([]ast.TypeSegment, 0, len(names))
	for _, n := range names {
		segs = append(segs, ast.TypeSegment{Name: tree.Strings.Intern(n)})
	}
	return tree.Types.NewPath(source.Span{}, segs)
}

func TestTypePath(t *testing.T) {
	tree := newTree()
	id := pathType(tree, "std", "stdio", "File")
	if got := (Printer{}).Type(tree, id); got != "std.stdio.File" {
		t.Fatalf("unexpected path text: %q", got)
	}
}

func TestTypeSuffixes(t *testing.T) {
	tree := newTree()
	intType := pathType(tree, "int")

	cases := []struct {
		id   ast.TypeID
		want string
	}{
		{tree.Types.NewPointer(source.Span{}, intType), "int*"},
		{tree.Types.NewArray(source.Span{}, intType), "int[]"},
		{tree.Types.NewStaticArray(source.Span{}, intType, tree.Strings.Intern("4")), "int[4]"},
		{tree.Types.NewAssoc(source.Span{}, intType, pathType(tree, "string")), "int[string]"},
		{tree.Types.NewQualified(source.Span{}, ast.QualConst, tree.Types.NewArray(source.Span{}, pathType(tree, "char"))), "const(char[])"},
	}
	for _, tc := range cases {
		if got := (Printer{}).Type(tree, tc.id); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestTypeTemplateArgs(t *testing.T) {
	tree := newTree()
	widget := pathType(tree, "Widget")
	id := tree.Types.NewPath(source.Span{}, []ast.TypeSegment{{
		Name:         tree.Strings.Intern("Rebindable"),
		TemplateArgs: []ast.TypeID{widget},
	}})
	if got := (Printer{}).Type(tree, id); got != "Rebindable!(Widget)" {
		t.Fatalf("unexpected template text: %q", got)
	}
}

func TestParams(t *testing.T) {
	tree := newTree()
	intType := pathType(tree, "int")
	p1 := tree.Decls.NewParam(ast.Param{Name: tree.Strings.Intern("y"), Type: intType})
	list := tree.Decls.NewParamList(source.Span{}, []ast.ParamID{p1}, false)
	if got := (Printer{}).Params(tree, list); got != "(int y)" {
		t.Fatalf("unexpected params text: %q", got)
	}
}

func TestParamsVariadic(t *testing.T) {
	tree := newTree()
	list := tree.Decls.NewParamList(source.Span{}, nil, true)
	if got := (Printer{}).Params(tree, list); got != "(...)" {
		t.Fatalf("unexpected variadic text: %q", got)
	}
}

func TestTemplateParams(t *testing.T) {
	tree := newTree()
	tp1 := tree.Decls.NewTemplateParam(ast.TemplateParam{Form: ast.TemplateParamType, Name: tree.Strings.Intern("T")})
	tp2 := tree.Decls.NewTemplateParam(ast.TemplateParam{Form: ast.TemplateParamAlias, Name: tree.Strings.Intern("pred")})
	tp3 := tree.Decls.NewTemplateParam(ast.TemplateParam{
		Form: ast.TemplateParamValue,
		Name: tree.Strings.Intern("n"),
		Type: pathType(tree, "int"),
	})
	got := (Printer{}).TemplateParams(tree, []ast.TemplateParamID{tp1, tp2, tp3})
	if got != "(T, alias pred, int n)" {
		t.Fatalf("unexpected template params text: %q", got)
	}
	if out := (Printer{}).TemplateParams(tree, nil); out != "" {
		t.Fatalf("expected empty text for no template params, got %q", out)
	}
}

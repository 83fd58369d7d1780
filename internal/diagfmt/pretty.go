package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"dsense/internal/ast"
	"dsense/internal/render"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

// PrettyOpts controls the human-readable outline.
type PrettyOpts struct {
	// Color enables ANSI styling.
	Color bool
	// Scopes appends the scope tree after the symbol tree.
	Scopes bool
}

var (
	kindColor    = color.New(color.FgCyan)
	nameColor    = color.New(color.Bold)
	tipColor     = color.New(color.Faint)
	offsetColor  = color.New(color.FgYellow)
	importColor  = color.New(color.FgGreen)
	problemColor = color.New(color.FgRed, color.Bold)
)

// Pretty writes an indented outline of one extracted module:
//
//	module m
//	  class C @16
//	    variable x @24
//	    function f @32  void f(int y)
func Pretty(w io.Writer, res *symbols.Result, tree *ast.Tree, r render.TextRenderer, opts PrettyOpts) {
	if res == nil || res.Table == nil {
		return
	}
	if r == nil {
		r = render.Printer{}
	}
	p := prettyPrinter{
		w:     w,
		table: res.Table,
		tree:  tree,
		r:     r,
		opts:  opts,
	}
	p.symbol(res.RootSymbol, 0)
	if opts.Scopes {
		fmt.Fprintln(w)
		p.scope(res.RootScope, 0)
	}
}

type prettyPrinter struct {
	w     io.Writer
	table *symbols.Table
	tree  *ast.Tree
	r     render.TextRenderer
	opts  PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, text string) string {
	if !p.opts.Color {
		return text
	}
	return c.Sprint(text)
}

func (p *prettyPrinter) symbol(id symbols.SymbolID, depth int) {
	sym := p.table.Symbols.Get(id)
	if sym == nil {
		fmt.Fprintf(p.w, "%s%s\n", indent(depth), p.paint(problemColor, "<dangling symbol>"))
		return
	}

	name := ""
	if sym.Name != source.NoStringID {
		name, _ = p.table.Strings.Lookup(sym.Name)
	}
	if name == "" {
		name = "(unnamed)"
	}

	line := indent(depth) + p.paint(kindColor, sym.Kind.String()) + " " + p.paint(nameColor, name)
	if depth > 0 || sym.Offset > 0 {
		line += " " + p.paint(offsetColor, fmt.Sprintf("@%d", sym.Offset))
	}
	if sym.CallTip != "" {
		line += "  " + p.paint(tipColor, sym.CallTip)
	} else if p.tree != nil && sym.Type.IsValid() {
		line += "  " + p.paint(tipColor, p.r.Type(p.tree, sym.Type))
	}
	if len(sym.Shape) > 0 {
		line += "  " + p.paint(tipColor, "~ "+strings.Join(lookupAll(p.table.Strings, sym.Shape), " "))
	}
	fmt.Fprintln(p.w, line)

	for _, child := range sym.Children {
		p.symbol(child, depth+1)
	}
}

func (p *prettyPrinter) scope(id symbols.ScopeID, depth int) {
	scope := p.table.Scopes.Get(id)
	if scope == nil {
		return
	}
	fmt.Fprintf(p.w, "%sscope %s\n", indent(depth),
		p.paint(offsetColor, fmt.Sprintf("[%d, %d)", scope.Span.Start, scope.Span.End)))
	for _, local := range scope.Locals {
		name, _ := p.table.Strings.Lookup(local.Name)
		fmt.Fprintf(p.w, "%slocal %s\n", indent(depth+1), p.paint(nameColor, name))
	}
	for _, imp := range scope.Imports {
		path, _ := p.table.Strings.Lookup(imp.Path)
		label := "import " + path
		if imp.Public {
			label = "public " + label
		}
		fmt.Fprintf(p.w, "%s%s\n", indent(depth+1), p.paint(importColor, label))
	}
	for _, child := range scope.Children {
		p.scope(child, depth+1)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

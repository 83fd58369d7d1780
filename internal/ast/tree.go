package ast

import (
	"dsense/internal/source"
)

// Hints suggests arena capacities for one parsed file.
type Hints struct{ Modules, Decls, Stmts, Exprs, Types uint }

// Tree aggregates the arenas holding one or more parsed modules. It is
// produced by the parser (an external collaborator) and outlives the
// extraction pass, which only borrows node IDs from it.
type Tree struct {
	Modules *Modules
	Decls   *Decls
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *Types
	Strings *source.Interner
}

// NewTree creates an empty tree. If strings is nil a fresh interner is
// allocated.
func NewTree(hints Hints, strings *source.Interner) *Tree {
	if hints.Modules == 0 {
		hints.Modules = 1 << 2
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{
		Modules: NewModules(hints.Modules),
		Decls:   NewDecls(hints.Decls),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Types),
		Strings: strings,
	}
}

// NewModule allocates a module root.
func (t *Tree) NewModule(span source.Span) ModuleID {
	return t.Modules.New(span)
}

// PushDecl appends a declaration to a module's top level.
func (t *Tree) PushDecl(module ModuleID, decl DeclID) {
	m := t.Modules.Get(module)
	if m == nil {
		return
	}
	m.Decls = append(m.Decls, decl)
}

package ast

import (
	"dsense/internal/source"
)

// ImportDecl covers one import declaration, which may name several modules:
// `import std.stdio, std.range;`. Binding-style imports
// (`import std.stdio : writeln, fln = formattedWrite;`) carry Binds on their
// target; the D grammar allows binds on a single-module declaration only.
type ImportDecl struct {
	Targets []ImportTarget
}

// ImportTarget is one imported module within a declaration.
type ImportTarget struct {
	Chain []source.StringID // identifier chain, e.g. std, stdio
	Binds []ImportBind
}

// ImportBind is one selective bind; Alias is NoStringID when unaliased.
type ImportBind struct {
	Alias source.StringID
	Name  source.StringID
}

// NewImportDecl creates an import declaration node.
func (d *Decls) NewImportDecl(span source.Span, targets []ImportTarget) DeclID {
	copied := make([]ImportTarget, len(targets))
	for i, t := range targets {
		copied[i] = ImportTarget{
			Chain: append([]source.StringID(nil), t.Chain...),
			Binds: append([]ImportBind(nil), t.Binds...),
		}
	}
	payload := d.Imports.Allocate(ImportDecl{Targets: copied})
	return d.new(DeclImport, span, PayloadID(payload))
}

// Import returns the import payload for id, or nil/false.
func (d *Decls) Import(id DeclID) (*ImportDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclImport {
		return nil, false
	}
	return d.Imports.Get(uint32(decl.Payload)), true
}

package ast

import (
	"dsense/internal/source"
)

// AliasDecl declares one or more alias names.
type AliasDecl struct {
	Doc         source.StringID
	Declarators []AliasDeclarator
}

// AliasDeclarator is one alias name and the type it stands for.
type AliasDeclarator struct {
	Name     source.StringID
	NameSpan source.Span
	Target   TypeID
}

// AliasThisDecl is an `alias <name> this;` declaration inside an aggregate.
type AliasThisDecl struct {
	Name source.StringID
}

// NewAliasDecl creates an alias declaration node.
func (d *Decls) NewAliasDecl(span source.Span, a AliasDecl) DeclID {
	payload := d.Aliases.Allocate(AliasDecl{
		Doc:         a.Doc,
		Declarators: append([]AliasDeclarator(nil), a.Declarators...),
	})
	return d.new(DeclAlias, span, PayloadID(payload))
}

// Alias returns the alias payload for id, or nil/false.
func (d *Decls) Alias(id DeclID) (*AliasDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclAlias {
		return nil, false
	}
	return d.Aliases.Get(uint32(decl.Payload)), true
}

// NewAliasThisDecl creates an alias-this declaration node.
func (d *Decls) NewAliasThisDecl(span source.Span, name source.StringID) DeclID {
	payload := d.AliasThises.Allocate(AliasThisDecl{Name: name})
	return d.new(DeclAliasThis, span, PayloadID(payload))
}

// AliasThis returns the alias-this payload for id, or nil/false.
func (d *Decls) AliasThis(id DeclID) (*AliasThisDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclAliasThis {
		return nil, false
	}
	return d.AliasThises.Get(uint32(decl.Payload)), true
}

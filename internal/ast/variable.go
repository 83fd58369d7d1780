package ast

import (
	"dsense/internal/source"
)

// VariableDecl declares one or more names sharing a written type and doc
// comment. Type is NoTypeID for inferred (`auto`, `const x = ...`) forms.
type VariableDecl struct {
	Type        TypeID
	Doc         source.StringID
	Declarators []Declarator
}

// Declarator is one declared name; Value is its initializer, if any.
type Declarator struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

// NewVariableDecl creates a variable declaration node.
func (d *Decls) NewVariableDecl(span source.Span, v VariableDecl) DeclID {
	payload := d.Variables.Allocate(VariableDecl{
		Type:        v.Type,
		Doc:         v.Doc,
		Declarators: append([]Declarator(nil), v.Declarators...),
	})
	return d.new(DeclVariable, span, PayloadID(payload))
}

// Variable returns the variable payload for id, or nil/false.
func (d *Decls) Variable(id DeclID) (*VariableDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclVariable {
		return nil, false
	}
	return d.Variables.Get(uint32(decl.Payload)), true
}

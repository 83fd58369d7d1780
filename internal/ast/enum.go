package ast

import (
	"dsense/internal/source"
)

// EnumDecl is a named or anonymous enum; an anonymous enum carries NoStringID
// as its name and its members splice into the enclosing declaration.
type EnumDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Doc      source.StringID
	Base     TypeID
	Body     source.Span
	Members  []DeclID // DeclEnumMember nodes
}

// EnumMemberDecl is one enum member; Type is set when the member declares its
// own type (anonymous-enum members may).
type EnumMemberDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Doc      source.StringID
	Type     TypeID
	Value    ExprID
}

// NewEnumDecl creates an enum declaration node.
func (d *Decls) NewEnumDecl(span source.Span, e EnumDecl) DeclID {
	payload := d.Enums.Allocate(EnumDecl{
		Name:     e.Name,
		NameSpan: e.NameSpan,
		Doc:      e.Doc,
		Base:     e.Base,
		Body:     e.Body,
		Members:  append([]DeclID(nil), e.Members...),
	})
	return d.new(DeclEnum, span, PayloadID(payload))
}

// Enum returns the enum payload for id, or nil/false.
func (d *Decls) Enum(id DeclID) (*EnumDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclEnum {
		return nil, false
	}
	return d.Enums.Get(uint32(decl.Payload)), true
}

// NewEnumMemberDecl creates an enum member node.
func (d *Decls) NewEnumMemberDecl(span source.Span, m EnumMemberDecl) DeclID {
	payload := d.EnumMembers.Allocate(m)
	return d.new(DeclEnumMember, span, PayloadID(payload))
}

// EnumMember returns the enum member payload for id, or nil/false.
func (d *Decls) EnumMember(id DeclID) (*EnumMemberDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclEnumMember {
		return nil, false
	}
	return d.EnumMembers.Get(uint32(decl.Payload)), true
}

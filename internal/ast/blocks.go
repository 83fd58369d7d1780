package ast

import (
	"dsense/internal/source"
)

// UnittestDecl is a `unittest { ... }` block.
type UnittestDecl struct {
	Body StmtID
}

// CondKind discriminates conditional-compilation forms.
type CondKind uint8

const (
	CondVersion CondKind = iota
	CondDebug
)

// ConditionalDecl is a version/debug block. Condition is the identifier
// written in the parentheses (NoStringID for a bare `debug`). The Else list
// is carried for fidelity to the source but is never descended into.
type ConditionalDecl struct {
	Cond      CondKind
	Condition source.StringID
	Then      []DeclID
	Else      []DeclID
}

// AttrGroupDecl groups declarations under shared attributes; Protection is
// ProtectionNone when the attributes carry no visibility.
type AttrGroupDecl struct {
	Protection Protection
	Decls      []DeclID
}

// MixinDecl is a template mixin instantiation, `mixin Foo!(x) bar;`. Target
// is the referenced type chain; typeof-based targets are not reducible.
type MixinDecl struct {
	Target TypeID
}

// StatementDecl wraps a statement appearing at declaration position, e.g. a
// bare block inside a function body declaration list.
type StatementDecl struct {
	Stmt StmtID
}

// NewUnittestDecl creates a unittest block node.
func (d *Decls) NewUnittestDecl(span source.Span, body StmtID) DeclID {
	payload := d.Unittests.Allocate(UnittestDecl{Body: body})
	return d.new(DeclUnittest, span, PayloadID(payload))
}

// Unittest returns the unittest payload for id, or nil/false.
func (d *Decls) Unittest(id DeclID) (*UnittestDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclUnittest {
		return nil, false
	}
	return d.Unittests.Get(uint32(decl.Payload)), true
}

// NewConditionalDecl creates a conditional-compilation block node.
func (d *Decls) NewConditionalDecl(span source.Span, c ConditionalDecl) DeclID {
	payload := d.Conditionals.Allocate(ConditionalDecl{
		Cond:      c.Cond,
		Condition: c.Condition,
		Then:      append([]DeclID(nil), c.Then...),
		Else:      append([]DeclID(nil), c.Else...),
	})
	return d.new(DeclConditional, span, PayloadID(payload))
}

// Conditional returns the conditional payload for id, or nil/false.
func (d *Decls) Conditional(id DeclID) (*ConditionalDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclConditional {
		return nil, false
	}
	return d.Conditionals.Get(uint32(decl.Payload)), true
}

// NewAttrGroupDecl creates an attribute group node.
func (d *Decls) NewAttrGroupDecl(span source.Span, prot Protection, decls []DeclID) DeclID {
	payload := d.AttrGroups.Allocate(AttrGroupDecl{
		Protection: prot,
		Decls:      append([]DeclID(nil), decls...),
	})
	return d.new(DeclAttrGroup, span, PayloadID(payload))
}

// AttrGroup returns the attribute group payload for id, or nil/false.
func (d *Decls) AttrGroup(id DeclID) (*AttrGroupDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclAttrGroup {
		return nil, false
	}
	return d.AttrGroups.Get(uint32(decl.Payload)), true
}

// NewMixinDecl creates a template mixin instantiation node.
func (d *Decls) NewMixinDecl(span source.Span, target TypeID) DeclID {
	payload := d.Mixins.Allocate(MixinDecl{Target: target})
	return d.new(DeclMixin, span, PayloadID(payload))
}

// Mixin returns the mixin payload for id, or nil/false.
func (d *Decls) Mixin(id DeclID) (*MixinDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclMixin {
		return nil, false
	}
	return d.Mixins.Get(uint32(decl.Payload)), true
}

// NewStatementDecl wraps a statement as a declaration.
func (d *Decls) NewStatementDecl(span source.Span, stmt StmtID) DeclID {
	payload := d.Statements.Allocate(StatementDecl{Stmt: stmt})
	return d.new(DeclStatement, span, PayloadID(payload))
}

// Statement returns the statement wrapper payload for id, or nil/false.
func (d *Decls) Statement(id DeclID) (*StatementDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclStatement {
		return nil, false
	}
	return d.Statements.Get(uint32(decl.Payload)), true
}

package ast

import (
	"dsense/internal/source"
)

// ExprKind discriminates the expression forms initializer-shape capture can
// see. The parser may flatten anything richer into ExprOpaque.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprMember
	ExprIndex
	ExprCall
	ExprUnary
	ExprParen
	ExprOpaque
)

// LitKind tags literal expressions by their lexical class; the value itself
// is never recorded.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
)

// Expr is the kind-tagged head of every expression node.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitData struct {
	Kind LitKind
}

type ExprMemberData struct {
	Target ExprID
	Name   source.StringID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprUnaryData struct {
	Operand ExprID
}

type ExprParenData struct {
	Inner ExprID
}

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLitData]
	Members  *Arena[ExprMemberData]
	Indices  *Arena[ExprIndexData]
	Calls    *Arena[ExprCallData]
	Unaries  *Arena[ExprUnaryData]
	Parens   *Arena[ExprParenData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLitData](capHint / 2),
		Members:  NewArena[ExprMemberData](capHint / 2),
		Indices:  NewArena[ExprIndexData](capHint / 4),
		Calls:    NewArena[ExprCallData](capHint / 4),
		Unaries:  NewArena[ExprUnaryData](capHint / 4),
		Parens:   NewArena[ExprParenData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression head for id, or nil.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates an identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier payload for id, or nil/false.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLit creates a literal expression tagged with its lexical class.
func (e *Exprs) NewLit(span source.Span, kind LitKind) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Kind: kind})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the literal payload for id, or nil/false.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewMember creates a member-access expression, target.name.
func (e *Exprs) NewMember(span source.Span, target ExprID, name source.StringID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Name: name})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member payload for id, or nil/false.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewIndex creates an indexing expression, target[index].
func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the index payload for id, or nil/false.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewCall creates a call expression.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target: target,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call payload for id, or nil/false.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewUnary creates a prefix-operator expression.
func (e *Exprs) NewUnary(span source.Span, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary payload for id, or nil/false.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewParen creates a parenthesized expression.
func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, PayloadID(payload))
}

// Paren returns the paren payload for id, or nil/false.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewOpaque creates a placeholder for an expression form the pass never
// inspects.
func (e *Exprs) NewOpaque(span source.Span) ExprID {
	return e.new(ExprOpaque, span, NoPayloadID)
}

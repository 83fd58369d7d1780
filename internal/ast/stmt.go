package ast

import (
	"dsense/internal/source"
)

// StmtKind discriminates statement forms.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtForeach
	StmtWith
	StmtIf
	StmtWhile
	StmtFor
	StmtDoWhile
	StmtExpr
	StmtDecl
)

// Stmt is the kind-tagged head of every statement node.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// BlockStmt is a `{ ... }` statement list.
type BlockStmt struct {
	Stmts []StmtID
}

// ForeachBinding is one loop variable; Type is NoTypeID when inferred.
type ForeachBinding struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

// ForeachStmt covers foreach and foreach_reverse.
type ForeachStmt struct {
	Bindings []ForeachBinding
	Sequence ExprID
	Body     StmtID
}

// WithStmt is a `with (expr) { ... }` statement.
type WithStmt struct {
	Subject ExprID
	Body    StmtID
}

// IfStmt keeps only what the extraction pass descends into.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

type ForStmt struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type DoWhileStmt struct {
	Body StmtID
	Cond ExprID
}

type ExprStmt struct {
	Expr ExprID
}

// DeclStmt wraps a declaration appearing at statement position.
type DeclStmt struct {
	Decl DeclID
}

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Foreachs *Arena[ForeachStmt]
	Withs    *Arena[WithStmt]
	Ifs      *Arena[IfStmt]
	Whiles   *Arena[WhileStmt]
	Fors     *Arena[ForStmt]
	DoWhiles *Arena[DoWhileStmt]
	Exprs    *Arena[ExprStmt]
	Decls    *Arena[DeclStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](capHint / 2),
		Foreachs: NewArena[ForeachStmt](capHint / 8),
		Withs:    NewArena[WithStmt](capHint / 8),
		Ifs:      NewArena[IfStmt](capHint / 4),
		Whiles:   NewArena[WhileStmt](capHint / 8),
		Fors:     NewArena[ForStmt](capHint / 8),
		DoWhiles: NewArena[DoWhileStmt](capHint / 8),
		Exprs:    NewArena[ExprStmt](capHint / 2),
		Decls:    NewArena[DeclStmt](capHint / 2),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement head for id, or nil.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block payload for id, or nil.
func (s *Stmts) Block(id StmtID) *BlockStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil
	}
	return s.Blocks.Get(uint32(stmt.Payload))
}

// NewForeach creates a foreach statement.
func (s *Stmts) NewForeach(span source.Span, bindings []ForeachBinding, sequence ExprID, body StmtID) StmtID {
	payload := s.Foreachs.Allocate(ForeachStmt{
		Bindings: append([]ForeachBinding(nil), bindings...),
		Sequence: sequence,
		Body:     body,
	})
	return s.new(StmtForeach, span, PayloadID(payload))
}

// Foreach returns the foreach payload for id, or nil.
func (s *Stmts) Foreach(id StmtID) *ForeachStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtForeach {
		return nil
	}
	return s.Foreachs.Get(uint32(stmt.Payload))
}

// NewWith creates a with statement.
func (s *Stmts) NewWith(span source.Span, subject ExprID, body StmtID) StmtID {
	payload := s.Withs.Allocate(WithStmt{Subject: subject, Body: body})
	return s.new(StmtWith, span, PayloadID(payload))
}

// With returns the with payload for id, or nil.
func (s *Stmts) With(id StmtID) *WithStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWith {
		return nil
	}
	return s.Withs.Get(uint32(stmt.Payload))
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if payload for id, or nil.
func (s *Stmts) If(id StmtID) *IfStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil
	}
	return s.Ifs.Get(uint32(stmt.Payload))
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while payload for id, or nil.
func (s *Stmts) While(id StmtID) *WhileStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil
	}
	return s.Whiles.Get(uint32(stmt.Payload))
}

// NewFor creates a classic for statement.
func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(ForStmt{Init: init, Cond: cond, Post: post, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for payload for id, or nil.
func (s *Stmts) For(id StmtID) *ForStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil
	}
	return s.Fors.Get(uint32(stmt.Payload))
}

// NewDoWhile creates a do-while statement.
func (s *Stmts) NewDoWhile(span source.Span, body StmtID, cond ExprID) StmtID {
	payload := s.DoWhiles.Allocate(DoWhileStmt{Body: body, Cond: cond})
	return s.new(StmtDoWhile, span, PayloadID(payload))
}

// DoWhile returns the do-while payload for id, or nil.
func (s *Stmts) DoWhile(id StmtID) *DoWhileStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtDoWhile {
		return nil
	}
	return s.DoWhiles.Get(uint32(stmt.Payload))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression statement payload for id, or nil.
func (s *Stmts) Expr(id StmtID) *ExprStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(stmt.Payload))
}

// NewDecl wraps a declaration as a statement.
func (s *Stmts) NewDecl(span source.Span, decl DeclID) StmtID {
	payload := s.Decls.Allocate(DeclStmt{Decl: decl})
	return s.new(StmtDecl, span, PayloadID(payload))
}

// Decl returns the declaration statement payload for id, or nil.
func (s *Stmts) Decl(id StmtID) *DeclStmt {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtDecl {
		return nil
	}
	return s.Decls.Get(uint32(stmt.Payload))
}

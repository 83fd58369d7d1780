package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// visitStmt dispatches one statement. Statements never create symbols
// themselves except through the declarations and bindings they contain.
func (ex *extractor) visitStmt(id ast.StmtID) {
	stmt := ex.tree.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		ex.visitBlock(id, stmt)
	case ast.StmtForeach:
		ex.visitForeach(id, stmt)
	case ast.StmtWith:
		ex.visitWith(id, stmt)
	case ast.StmtIf:
		if s := ex.tree.Stmts.If(id); s != nil {
			ex.visitStmt(s.Then)
			ex.visitStmt(s.Else)
		}
	case ast.StmtWhile:
		if s := ex.tree.Stmts.While(id); s != nil {
			ex.visitStmt(s.Body)
		}
	case ast.StmtFor:
		ex.visitFor(id, stmt)
	case ast.StmtDoWhile:
		if s := ex.tree.Stmts.DoWhile(id); s != nil {
			ex.visitStmt(s.Body)
		}
	case ast.StmtDecl:
		if s := ex.tree.Stmts.Decl(id); s != nil {
			ex.visitDecl(s.Decl)
		}
	}
}

func (ex *extractor) visitBlock(id ast.StmtID, stmt *ast.Stmt) {
	block := ex.tree.Stmts.Block(id)
	if block == nil {
		return
	}
	prevScope := ex.currentScope
	defer func() { ex.currentScope = prevScope }()
	ex.currentScope = ex.newScope(stmt.Span)
	for _, child := range block.Stmts {
		ex.visitStmt(child)
	}
}

// visitForeach opens a scope that starts at the foreach keyword, not at the
// body: the loop bindings must be visible inside the parenthesized header.
func (ex *extractor) visitForeach(id ast.StmtID, stmt *ast.Stmt) {
	fe := ex.tree.Stmts.Foreach(id)
	if fe == nil {
		return
	}
	end := stmt.Span.End
	if body := ex.tree.Stmts.Get(fe.Body); body != nil && body.Span.End > end {
		end = body.Span.End
	}

	prevScope := ex.currentScope
	defer func() { ex.currentScope = prevScope }()
	ex.currentScope = ex.newScope(source.Span{File: ex.file, Start: stmt.Span.Start, End: end})

	single := len(fe.Bindings) == 1
	for _, b := range fe.Bindings {
		if b.Name == source.NoStringID {
			continue
		}
		symID := ex.newSymbol(b.Name, CompletionVariableName, b.NameSpan.Start, source.NoStringID, b.Type)
		// Only the single-binding form gets an element shape: with two
		// bindings the first is an index or key and the guess would be
		// wrong more often than right.
		if single && !b.Type.IsValid() && fe.Sequence.IsValid() {
			shape := captureShape(ex.tree, fe.Sequence, true)
			if sym := ex.table.Symbols.Get(symID); sym != nil {
				sym.Shape = shape
			}
		}
	}
	ex.visitStmt(fe.Body)
}

// visitWith introduces the reserved __withSym symbol carrying the subject
// expression's shape, and moves both cursors so members declared in the body
// hang off it.
func (ex *extractor) visitWith(id ast.StmtID, stmt *ast.Stmt) {
	w := ex.tree.Stmts.With(id)
	if w == nil {
		return
	}
	span := stmt.Span
	if body := ex.tree.Stmts.Get(w.Body); body != nil {
		span = body.Span
	}

	symID := ex.newSymbol(ex.tree.Strings.Intern(withSymbolName), CompletionWithSymbol, span.Start, source.NoStringID, ast.NoTypeID)
	if w.Subject.IsValid() {
		shape := captureShape(ex.tree, w.Subject, false)
		if sym := ex.table.Symbols.Get(symID); sym != nil {
			sym.Shape = shape
		}
	}

	prevSymbol, prevScope := ex.currentSymbol, ex.currentScope
	defer func() {
		ex.currentSymbol, ex.currentScope = prevSymbol, prevScope
	}()
	ex.currentSymbol = symID
	ex.currentScope = ex.newScope(span)

	if scope := ex.table.Scopes.Get(ex.currentScope); scope != nil {
		if sym := ex.table.Symbols.Get(symID); sym != nil {
			scope.Locals = append(scope.Locals, Local{Completion: sym.Completion})
		}
	}
	ex.visitStmt(w.Body)
}

// visitFor opens a scope over the whole statement so init declarations stay
// visible in the condition, post expression, and body.
func (ex *extractor) visitFor(id ast.StmtID, stmt *ast.Stmt) {
	s := ex.tree.Stmts.For(id)
	if s == nil {
		return
	}
	prevScope := ex.currentScope
	defer func() { ex.currentScope = prevScope }()
	ex.currentScope = ex.newScope(stmt.Span)
	ex.visitStmt(s.Init)
	ex.visitStmt(s.Body)
}

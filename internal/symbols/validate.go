package symbols

import (
	"fmt"
)

// Validate checks the structural invariants the extraction pass promises:
// both trees are parent/child consistent, scope ranges nest inside their
// parents, and every symbol carries a representable kind. It is meant for
// tests and debug builds; a failure indicates a bug in the pass, never bad
// input.
func (t *Table) Validate() error {
	scopes := t.Scopes.Data()
	for i := range scopes {
		id := ScopeID(i + 1)
		scope := &scopes[i]
		if scope.Span.End < scope.Span.Start {
			return fmt.Errorf("scope %d: inverted range [%d, %d)", id, scope.Span.Start, scope.Span.End)
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil {
				return fmt.Errorf("scope %d: dangling parent %d", id, scope.Parent)
			}
			if scope.Span.Start < parent.Span.Start || scope.Span.End > parent.Span.End {
				return fmt.Errorf("scope %d: range [%d, %d) escapes parent %d [%d, %d)",
					id, scope.Span.Start, scope.Span.End,
					scope.Parent, parent.Span.Start, parent.Span.End)
			}
			if !containsScope(parent.Children, id) {
				return fmt.Errorf("scope %d: missing from parent %d child list", id, scope.Parent)
			}
		}
		for _, child := range scope.Children {
			c := t.Scopes.Get(child)
			if c == nil {
				return fmt.Errorf("scope %d: dangling child %d", id, child)
			}
			if c.Parent != id {
				return fmt.Errorf("scope %d: child %d points back at %d", id, child, c.Parent)
			}
		}
	}

	symbols := t.Symbols.Data()
	for i := range symbols {
		id := SymbolID(i + 1)
		sym := &symbols[i]
		if sym.Kind == CompletionInvalid {
			return fmt.Errorf("symbol %d: invalid kind", id)
		}
		if sym.Parent.IsValid() {
			parent := t.Symbols.Get(sym.Parent)
			if parent == nil {
				return fmt.Errorf("symbol %d: dangling parent %d", id, sym.Parent)
			}
			if countSymbol(parent.Children, id) != 1 {
				return fmt.Errorf("symbol %d: appears %d times in parent %d child list",
					id, countSymbol(parent.Children, id), sym.Parent)
			}
		}
		for _, child := range sym.Children {
			c := t.Symbols.Get(child)
			if c == nil {
				return fmt.Errorf("symbol %d: dangling child %d", id, child)
			}
			if c.Parent != id {
				return fmt.Errorf("symbol %d: child %d points back at %d", id, child, c.Parent)
			}
		}
	}
	return nil
}

func containsScope(ids []ScopeID, want ScopeID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func countSymbol(ids []SymbolID, want SymbolID) int {
	n := 0
	for _, id := range ids {
		if id == want {
			n++
		}
	}
	return n
}

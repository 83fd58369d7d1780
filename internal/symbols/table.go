package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"dsense/internal/source"
)

// Hints provide optional capacity suggestions for the pass arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the pass-scoped arenas and the shared interner. One table
// backs exactly one extraction; a fresh table means fresh arenas, which is
// what makes concurrent per-file extraction safe.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints. If strings is
// nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Result is what one extraction hands back to later passes.
type Result struct {
	Table      *Table
	RootScope  ScopeID
	RootSymbol SymbolID
	// SymbolCount is a diagnostic metric only.
	SymbolCount int
}

package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// Scope is a half-open byte range within which declared names are visible.
// Scopes nest independently of the symbol tree: a block opens a scope without
// a symbol, a variable declaration creates a symbol without a scope.
type Scope struct {
	Span     source.Span
	Parent   ScopeID
	Children []ScopeID
	// Locals are completion records owned by the scope itself, e.g. the
	// implicit `this` inside an aggregate body.
	Locals  []Local
	Imports []ImportRecord
}

// Local binds a scope-owned completion record to the declaration that
// contributed it, so later passes can chase the type without this pass
// resolving anything.
type Local struct {
	Completion
	Decl ast.DeclID
}

// ImportRecord is one recorded import target.
type ImportRecord struct {
	// Path is the dot-joined module path, e.g. "std.stdio".
	Path source.StringID
	// Chain is the ordered identifier chain the path was joined from.
	Chain []source.StringID
	// Binds lists selective binds; an empty Local means unaliased.
	Binds []ImportBind
	// Public reflects the ambient protection at the import statement.
	Public bool
}

// ImportBind is one (local-name, origin-name) pair of a binding-style import.
type ImportBind struct {
	Local  source.StringID
	Origin source.StringID
}

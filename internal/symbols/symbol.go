package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// Symbol is a build-time node of the symbol tree. It owns its completion
// record and its children; Parent is a non-owning back-reference. Type is a
// borrowed reference into the syntax tree, which outlives the pass.
//
// Children order is declaration order, and declaration order is member
// order, so it is never re-sorted.
type Symbol struct {
	Completion
	Type     ast.TypeID
	Parent   SymbolID
	Children []SymbolID
	// Bases holds base-class/interface name paths that reduced to a plain
	// identifier/template chain; irreducible base expressions are dropped.
	Bases [][]source.StringID
	// Mixins holds mixin-template reference chains recorded on this symbol.
	Mixins [][]source.StringID
	// AliasThis lists alias-this target names declared in this aggregate.
	AliasThis []source.StringID
	// Shape is the initializer token sequence for inferred-type
	// declarations; nil when the type was written explicitly.
	Shape []source.StringID
}

package symbols

import (
	"strings"

	"dsense/internal/ast"
	"dsense/internal/render"
	"dsense/internal/source"
)

// withSymbolName is the reserved name for the synthetic with-statement
// target symbol.
const withSymbolName = "__withSym"

// Options configures one extraction.
type Options struct {
	// File tags every emitted location fact.
	File source.FileID
	// Renderer is the node-to-text service; nil selects render.Printer.
	Renderer render.TextRenderer
	// Versions is the recognized conditional-compilation identifier set;
	// nil selects DefaultVersions.
	Versions []string
	// Hints sizes the pass arenas.
	Hints Hints
}

// ExtractModule runs the symbol-extraction pass over one parsed module. It
// performs a single depth-first traversal building the symbol tree and the
// scope tree together, deferring type inference by capturing initializer
// shapes. A nil tree or an invalid module ID is a contract violation and
// panics; structurally absent sub-nodes are skipped.
//
// Each call owns a fresh Table, so callers may extract many files
// concurrently by giving each its own tree and invocation.
func ExtractModule(tree *ast.Tree, module ast.ModuleID, opts Options) *Result {
	if tree == nil {
		panic("symbols.ExtractModule: nil tree")
	}
	root := tree.Modules.Get(module)
	if root == nil {
		panic("symbols.ExtractModule: invalid module ID")
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.Printer{}
	}
	versions := opts.Versions
	if versions == nil {
		versions = DefaultVersions
	}

	table := NewTable(opts.Hints, tree.Strings)
	ex := &extractor{
		tree:     tree,
		file:     opts.File,
		table:    table,
		renderer: renderer,
		versions: versionSet(versions),
	}

	rootSymbol := table.Symbols.New(&Symbol{
		Completion: Completion{
			Kind: CompletionModule,
			File: opts.File,
		},
	})
	rootScope := table.Scopes.New(NoScopeID, root.Span)

	ex.rootSymbol = rootSymbol
	ex.currentSymbol = rootSymbol
	ex.currentScope = rootScope
	for _, declID := range root.Decls {
		ex.visitDecl(declID)
	}

	return &Result{
		Table:       table,
		RootScope:   rootScope,
		RootSymbol:  rootSymbol,
		SymbolCount: table.Symbols.Len(),
	}
}

// extractor holds the traversal state: the two cursors always point at the
// innermost active symbol and scope, protection is the ambient visibility.
// One extractor processes exactly one module; the save/restore protocol
// assumes an un-interleaved call stack.
type extractor struct {
	tree     *ast.Tree
	file     source.FileID
	table    *Table
	renderer render.TextRenderer
	versions map[string]struct{}

	rootSymbol    SymbolID
	currentSymbol SymbolID
	currentScope  ScopeID
	protection    ast.Protection

	// synthetic varargs types, allocated lazily into the tree's type arena
	argPtrType    ast.TypeID
	argumentsType ast.TypeID
}

// newSymbol allocates a symbol, links it under the current symbol, and
// threads ambient protection, doc, and location metadata.
func (ex *extractor) newSymbol(name source.StringID, kind CompletionKind, offset uint32, doc source.StringID, typ ast.TypeID) SymbolID {
	id := ex.table.Symbols.New(&Symbol{
		Completion: Completion{
			Name:       name,
			Kind:       kind,
			File:       ex.file,
			Offset:     offset,
			Doc:        doc,
			Protection: ex.protection,
			Parts:      seedParts(kind),
		},
		Type:   typ,
		Parent: ex.currentSymbol,
	})
	if parent := ex.table.Symbols.Get(ex.currentSymbol); parent != nil {
		parent.Children = append(parent.Children, id)
	}
	return id
}

// newScope allocates a scope nested under the current scope.
func (ex *extractor) newScope(span source.Span) ScopeID {
	return ex.table.Scopes.New(ex.currentScope, span)
}

// reduceTypeChain flattens a type into its identifier/template chain. Only
// plain path types reduce; anything else (typeof, pointers, arrays) reports
// false and the caller drops the fact silently.
func reduceTypeChain(tree *ast.Tree, id ast.TypeID) ([]source.StringID, bool) {
	path, ok := tree.Types.Path(id)
	if !ok || path == nil || len(path.Segments) == 0 {
		return nil, false
	}
	chain := make([]source.StringID, 0, len(path.Segments))
	for _, seg := range path.Segments {
		chain = append(chain, seg.Name)
	}
	return chain, true
}

func joinChain(strs *source.Interner, chain []source.StringID) string {
	parts := make([]string, 0, len(chain))
	for _, id := range chain {
		parts = append(parts, strs.MustLookup(id))
	}
	return strings.Join(parts, ".")
}

// argPtr returns the predetermined `void*` type for the synthetic _argptr
// parameter, allocating it on first use.
func (ex *extractor) argPtr() ast.TypeID {
	if !ex.argPtrType.IsValid() {
		void := ex.tree.Types.NewPath(source.Span{}, []ast.TypeSegment{
			{Name: ex.tree.Strings.Intern("void")},
		})
		ex.argPtrType = ex.tree.Types.NewPointer(source.Span{}, void)
	}
	return ex.argPtrType
}

// arguments returns the predetermined `TypeInfo[]` type for the synthetic
// _arguments parameter, allocating it on first use.
func (ex *extractor) arguments() ast.TypeID {
	if !ex.argumentsType.IsValid() {
		typeInfo := ex.tree.Types.NewPath(source.Span{}, []ast.TypeSegment{
			{Name: ex.tree.Strings.Intern("TypeInfo")},
		})
		ex.argumentsType = ex.tree.Types.NewArray(source.Span{}, typeInfo)
	}
	return ex.argumentsType
}

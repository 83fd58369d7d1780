// Package astio moves parsed syntax trees across the process boundary. The
// parser is an external collaborator; it hands trees over as msgpack-encoded
// snapshots (.dast files) that this package decodes back into live arenas.
package astio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"dsense/internal/ast"
	"dsense/internal/source"
)

// Current schema version - increment when Snapshot format changes
const schemaVersion uint16 = 1

// Ext is the conventional snapshot file extension.
const Ext = ".dast"

// ErrSchema reports a snapshot written with an incompatible schema version.
var ErrSchema = errors.New("astio: incompatible snapshot schema")

// Snapshot is the wire form of one parsed file: the interner table plus the
// raw arena storage of every node kind. IDs inside the payloads stay valid
// because arenas are restored wholesale, in order.
type Snapshot struct {
	Schema uint16

	// Path is the source file the tree was parsed from.
	Path string

	Strings []string

	Modules []ast.Module

	Decls          []ast.Decl
	DeclModules    []ast.ModuleDecl
	DeclImports    []ast.ImportDecl
	DeclAggregates []ast.AggregateDecl
	DeclFunctions  []ast.FunctionDecl
	ParamLists     []ast.ParamList
	Params         []ast.Param
	TemplateParams []ast.TemplateParam
	DeclVariables  []ast.VariableDecl
	DeclAliases    []ast.AliasDecl
	DeclAliasThis  []ast.AliasThisDecl
	DeclEnums      []ast.EnumDecl
	DeclEnumMems   []ast.EnumMemberDecl
	DeclUnittests  []ast.UnittestDecl
	DeclConds      []ast.ConditionalDecl
	DeclAttrGroups []ast.AttrGroupDecl
	DeclMixins     []ast.MixinDecl
	DeclStatements []ast.StatementDecl

	Stmts         []ast.Stmt
	StmtBlocks    []ast.BlockStmt
	StmtForeachs  []ast.ForeachStmt
	StmtWiths     []ast.WithStmt
	StmtIfs       []ast.IfStmt
	StmtWhiles    []ast.WhileStmt
	StmtFors      []ast.ForStmt
	StmtDoWhiles  []ast.DoWhileStmt
	StmtExprs     []ast.ExprStmt
	StmtDeclWraps []ast.DeclStmt

	Exprs       []ast.Expr
	ExprIdents  []ast.ExprIdentData
	ExprLits    []ast.ExprLitData
	ExprMembers []ast.ExprMemberData
	ExprIndices []ast.ExprIndexData
	ExprCalls   []ast.ExprCallData
	ExprUnaries []ast.ExprUnaryData
	ExprParens  []ast.ExprParenData

	Types            []ast.Type
	TypePaths        []ast.TypePathData
	TypePointers     []ast.TypePointerData
	TypeArrays       []ast.TypeArrayData
	TypeStaticArrays []ast.TypeStaticArrayData
	TypeAssocs       []ast.TypeAssocData
	TypeQualifieds   []ast.TypeQualifiedData
	TypeTypeofs      []ast.TypeTypeofData
}

// Capture flattens a live tree into a snapshot. The snapshot aliases the
// tree's arena storage; it is valid until the tree next mutates.
func Capture(tree *ast.Tree, path string) *Snapshot {
	return &Snapshot{
		Schema: schemaVersion,
		Path:   path,

		Strings: tree.Strings.Snapshot(),

		Modules: tree.Modules.Arena.Slice(),

		Decls:          tree.Decls.Arena.Slice(),
		DeclModules:    tree.Decls.Modules.Slice(),
		DeclImports:    tree.Decls.Imports.Slice(),
		DeclAggregates: tree.Decls.Aggregates.Slice(),
		DeclFunctions:  tree.Decls.Functions.Slice(),
		ParamLists:     tree.Decls.ParamLists.Slice(),
		Params:         tree.Decls.Params.Slice(),
		TemplateParams: tree.Decls.TemplateParams.Slice(),
		DeclVariables:  tree.Decls.Variables.Slice(),
		DeclAliases:    tree.Decls.Aliases.Slice(),
		DeclAliasThis:  tree.Decls.AliasThises.Slice(),
		DeclEnums:      tree.Decls.Enums.Slice(),
		DeclEnumMems:   tree.Decls.EnumMembers.Slice(),
		DeclUnittests:  tree.Decls.Unittests.Slice(),
		DeclConds:      tree.Decls.Conditionals.Slice(),
		DeclAttrGroups: tree.Decls.AttrGroups.Slice(),
		DeclMixins:     tree.Decls.Mixins.Slice(),
		DeclStatements: tree.Decls.Statements.Slice(),

		Stmts:         tree.Stmts.Arena.Slice(),
		StmtBlocks:    tree.Stmts.Blocks.Slice(),
		StmtForeachs:  tree.Stmts.Foreachs.Slice(),
		StmtWiths:     tree.Stmts.Withs.Slice(),
		StmtIfs:       tree.Stmts.Ifs.Slice(),
		StmtWhiles:    tree.Stmts.Whiles.Slice(),
		StmtFors:      tree.Stmts.Fors.Slice(),
		StmtDoWhiles:  tree.Stmts.DoWhiles.Slice(),
		StmtExprs:     tree.Stmts.Exprs.Slice(),
		StmtDeclWraps: tree.Stmts.Decls.Slice(),

		Exprs:       tree.Exprs.Arena.Slice(),
		ExprIdents:  tree.Exprs.Idents.Slice(),
		ExprLits:    tree.Exprs.Literals.Slice(),
		ExprMembers: tree.Exprs.Members.Slice(),
		ExprIndices: tree.Exprs.Indices.Slice(),
		ExprCalls:   tree.Exprs.Calls.Slice(),
		ExprUnaries: tree.Exprs.Unaries.Slice(),
		ExprParens:  tree.Exprs.Parens.Slice(),

		Types:            tree.Types.Arena.Slice(),
		TypePaths:        tree.Types.Paths.Slice(),
		TypePointers:     tree.Types.Pointers.Slice(),
		TypeArrays:       tree.Types.Arrays.Slice(),
		TypeStaticArrays: tree.Types.StaticArrays.Slice(),
		TypeAssocs:       tree.Types.Assocs.Slice(),
		TypeQualifieds:   tree.Types.Qualifieds.Slice(),
		TypeTypeofs:      tree.Types.Typeofs.Slice(),
	}
}

// Restore rebuilds a live tree from a snapshot.
func (s *Snapshot) Restore() (*ast.Tree, error) {
	if s.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, s.Schema, schemaVersion)
	}
	strings := source.RestoreInterner(s.Strings)
	if strings == nil {
		return nil, errors.New("astio: snapshot has a corrupt string table")
	}
	tree := ast.NewTree(ast.Hints{}, strings)

	tree.Modules.Arena.Restore(s.Modules)

	tree.Decls.Arena.Restore(s.Decls)
	tree.Decls.Modules.Restore(s.DeclModules)
	tree.Decls.Imports.Restore(s.DeclImports)
	tree.Decls.Aggregates.Restore(s.DeclAggregates)
	tree.Decls.Functions.Restore(s.DeclFunctions)
	tree.Decls.ParamLists.Restore(s.ParamLists)
	tree.Decls.Params.Restore(s.Params)
	tree.Decls.TemplateParams.Restore(s.TemplateParams)
	tree.Decls.Variables.Restore(s.DeclVariables)
	tree.Decls.Aliases.Restore(s.DeclAliases)
	tree.Decls.AliasThises.Restore(s.DeclAliasThis)
	tree.Decls.Enums.Restore(s.DeclEnums)
	tree.Decls.EnumMembers.Restore(s.DeclEnumMems)
	tree.Decls.Unittests.Restore(s.DeclUnittests)
	tree.Decls.Conditionals.Restore(s.DeclConds)
	tree.Decls.AttrGroups.Restore(s.DeclAttrGroups)
	tree.Decls.Mixins.Restore(s.DeclMixins)
	tree.Decls.Statements.Restore(s.DeclStatements)

	tree.Stmts.Arena.Restore(s.Stmts)
	tree.Stmts.Blocks.Restore(s.StmtBlocks)
	tree.Stmts.Foreachs.Restore(s.StmtForeachs)
	tree.Stmts.Withs.Restore(s.StmtWiths)
	tree.Stmts.Ifs.Restore(s.StmtIfs)
	tree.Stmts.Whiles.Restore(s.StmtWhiles)
	tree.Stmts.Fors.Restore(s.StmtFors)
	tree.Stmts.DoWhiles.Restore(s.StmtDoWhiles)
	tree.Stmts.Exprs.Restore(s.StmtExprs)
	tree.Stmts.Decls.Restore(s.StmtDeclWraps)

	tree.Exprs.Arena.Restore(s.Exprs)
	tree.Exprs.Idents.Restore(s.ExprIdents)
	tree.Exprs.Literals.Restore(s.ExprLits)
	tree.Exprs.Members.Restore(s.ExprMembers)
	tree.Exprs.Indices.Restore(s.ExprIndices)
	tree.Exprs.Calls.Restore(s.ExprCalls)
	tree.Exprs.Unaries.Restore(s.ExprUnaries)
	tree.Exprs.Parens.Restore(s.ExprParens)

	tree.Types.Arena.Restore(s.Types)
	tree.Types.Paths.Restore(s.TypePaths)
	tree.Types.Pointers.Restore(s.TypePointers)
	tree.Types.Arrays.Restore(s.TypeArrays)
	tree.Types.StaticArrays.Restore(s.TypeStaticArrays)
	tree.Types.Assocs.Restore(s.TypeAssocs)
	tree.Types.Qualifieds.Restore(s.TypeQualifieds)
	tree.Types.Typeofs.Restore(s.TypeTypeofs)

	return tree, nil
}

// Encode writes the snapshot to w in msgpack.
func Encode(w io.Writer, s *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Decode reads one snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("astio: decode snapshot: %w", err)
	}
	return &s, nil
}

// ReadFile loads and restores a snapshot file.
func ReadFile(path string) (*ast.Tree, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	snap, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	tree, err := snap.Restore()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return tree, snap.Path, nil
}

// WriteFile captures tree and writes it next to path atomically: the
// snapshot lands in a temp file first and is renamed into place.
func WriteFile(path string, tree *ast.Tree, sourcePath string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := Encode(f, Capture(tree, sourcePath)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

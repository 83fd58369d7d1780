package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// recordImports flattens one import declaration into ImportRecord entries on
// the current scope. A single declaration may carry several targets
// (`import std.stdio, std.array;`); each becomes its own record. Selective
// binds keep both the local name and the origin name so later passes can
// narrow lookup. Public visibility is inherited from the ambient protection.
func (ex *extractor) recordImports(id ast.DeclID) {
	imp, ok := ex.tree.Decls.Import(id)
	if !ok || imp == nil {
		return
	}
	public := ex.protection == ast.ProtectionPublic || ex.protection == ast.ProtectionExport

	for _, target := range imp.Targets {
		if len(target.Chain) == 0 {
			continue
		}
		record := ImportRecord{
			Path:   ex.tree.Strings.Intern(joinChain(ex.tree.Strings, target.Chain)),
			Chain:  append([]source.StringID(nil), target.Chain...),
			Public: public,
		}
		// An unaliased bind keeps an empty local name; consumers fall
		// back to the origin name themselves.
		for _, bind := range target.Binds {
			record.Binds = append(record.Binds, ImportBind{
				Local:  bind.Alias,
				Origin: bind.Name,
			})
		}
		if scope := ex.table.Scopes.Get(ex.currentScope); scope != nil {
			scope.Imports = append(scope.Imports, record)
		}
	}
}

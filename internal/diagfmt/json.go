// Package diagfmt renders extraction results for people and tools: an
// indented pretty outline for terminals and a flat JSON dump for editors and
// tests.
package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"dsense/internal/ast"
	"dsense/internal/render"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

// SymbolJSON is one symbol in the flat JSON outline.
type SymbolJSON struct {
	ID         uint32   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Kind       string   `json:"kind"`
	Parent     uint32   `json:"parent,omitempty"`
	Offset     uint32   `json:"offset"`
	Type       string   `json:"type,omitempty"`
	CallTip    string   `json:"call_tip,omitempty"`
	Doc        string   `json:"doc,omitempty"`
	Protection string   `json:"protection,omitempty"`
	Shape      []string `json:"shape,omitempty"`
	Bases      []string `json:"bases,omitempty"`
	Mixins     []string `json:"mixins,omitempty"`
	AliasThis  []string `json:"alias_this,omitempty"`
	Parts      []string `json:"parts,omitempty"`
}

// ScopeJSON is one scope in the flat JSON outline.
type ScopeJSON struct {
	ID      uint32       `json:"id"`
	Parent  uint32       `json:"parent,omitempty"`
	Start   uint32       `json:"start"`
	End     uint32       `json:"end"`
	Locals  []string     `json:"locals,omitempty"`
	Imports []ImportJSON `json:"imports,omitempty"`
}

// ImportJSON is one recorded import.
type ImportJSON struct {
	Path   string   `json:"path"`
	Binds  []string `json:"binds,omitempty"`
	Public bool     `json:"public,omitempty"`
}

// OutlineOutput is the root JSON structure for one extracted module.
type OutlineOutput struct {
	File        string       `json:"file,omitempty"`
	Root        uint32       `json:"root"`
	SymbolCount int          `json:"symbol_count"`
	Symbols     []SymbolJSON `json:"symbols"`
	Scopes      []ScopeJSON  `json:"scopes"`
}

// BuildOutline flattens one extraction result. Written types are rendered
// back to display text through the same renderer the pass used.
func BuildOutline(res *symbols.Result, tree *ast.Tree, r render.TextRenderer, file string) (*OutlineOutput, error) {
	if res == nil || res.Table == nil {
		return nil, nil
	}
	if r == nil {
		r = render.Printer{}
	}
	table := res.Table
	strings := table.Strings

	out := &OutlineOutput{
		File:        file,
		Root:        uint32(res.RootSymbol),
		SymbolCount: res.SymbolCount,
		Symbols:     make([]SymbolJSON, 0, table.Symbols.Len()),
		Scopes:      make([]ScopeJSON, 0, table.Scopes.Len()),
	}

	for idx, sym := range table.Symbols.Data() {
		id, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			return nil, fmt.Errorf("outline: symbol id overflow: %w", err)
		}
		entry := SymbolJSON{
			ID:        id,
			Name:      lookup(strings, sym.Name),
			Kind:      sym.Kind.String(),
			Parent:    uint32(sym.Parent),
			Offset:    sym.Offset,
			CallTip:   sym.CallTip,
			Doc:       lookup(strings, sym.Doc),
			Shape:     lookupAll(strings, sym.Shape),
			AliasThis: lookupAll(strings, sym.AliasThis),
		}
		if sym.Protection != ast.ProtectionNone {
			entry.Protection = sym.Protection.String()
		}
		if tree != nil && sym.Type.IsValid() {
			entry.Type = r.Type(tree, sym.Type)
		}
		for _, chain := range sym.Bases {
			entry.Bases = append(entry.Bases, joinLookup(strings, chain))
		}
		for _, chain := range sym.Mixins {
			entry.Mixins = append(entry.Mixins, joinLookup(strings, chain))
		}
		for _, part := range sym.Parts {
			entry.Parts = append(entry.Parts, part.Name)
		}
		out.Symbols = append(out.Symbols, entry)
	}

	for idx, scope := range table.Scopes.Data() {
		id, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			return nil, fmt.Errorf("outline: scope id overflow: %w", err)
		}
		entry := ScopeJSON{
			ID:     id,
			Parent: uint32(scope.Parent),
			Start:  scope.Span.Start,
			End:    scope.Span.End,
		}
		for _, local := range scope.Locals {
			entry.Locals = append(entry.Locals, lookup(strings, local.Name))
		}
		for _, imp := range scope.Imports {
			record := ImportJSON{
				Path:   lookup(strings, imp.Path),
				Public: imp.Public,
			}
			for _, bind := range imp.Binds {
				text := lookup(strings, bind.Origin)
				if bind.Local != source.NoStringID {
					text = lookup(strings, bind.Local) + "=" + text
				}
				record.Binds = append(record.Binds, text)
			}
			entry.Imports = append(entry.Imports, record)
		}
		out.Scopes = append(out.Scopes, entry)
	}
	return out, nil
}

// JSON writes the outlines for a set of modules as one JSON document.
func JSON(w io.Writer, outlines []*OutlineOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Modules []*OutlineOutput `json:"modules"`
	}{Modules: outlines})
}

func lookup(strings *source.Interner, id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := strings.Lookup(id)
	return s
}

func lookupAll(strings *source.Interner, ids []source.StringID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, lookup(strings, id))
	}
	return out
}

func joinLookup(strings *source.Interner, chain []source.StringID) string {
	text := ""
	for i, id := range chain {
		if i > 0 {
			text += "."
		}
		text += lookup(strings, id)
	}
	return text
}

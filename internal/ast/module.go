package ast

import (
	"dsense/internal/source"
)

// Module is the root node for one parsed file.
type Module struct {
	Span  source.Span
	Decls []DeclID
}

// Modules stores parsed module roots.
type Modules struct {
	Arena *Arena[Module]
}

func NewModules(capHint uint) *Modules {
	return &Modules{
		Arena: NewArena[Module](capHint),
	}
}

func (m *Modules) New(span source.Span) ModuleID {
	return ModuleID(m.Arena.Allocate(Module{
		Span:  span,
		Decls: make([]DeclID, 0),
	}))
}

func (m *Modules) Get(id ModuleID) *Module {
	return m.Arena.Get(uint32(id))
}

// ModuleDecl is the `module a.b.c;` declaration. It does not open anything;
// it only names the file's module.
type ModuleDecl struct {
	Path []source.StringID
}

// NewModuleDecl creates a module declaration node.
func (d *Decls) NewModuleDecl(span source.Span, path []source.StringID) DeclID {
	payload := d.Modules.Allocate(ModuleDecl{
		Path: append([]source.StringID(nil), path...),
	})
	return d.new(DeclModule, span, PayloadID(payload))
}

// Module returns the module declaration payload for id, or nil/false.
func (d *Decls) Module(id DeclID) (*ModuleDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclModule {
		return nil, false
	}
	return d.Modules.Get(uint32(decl.Payload)), true
}

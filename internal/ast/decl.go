package ast

import (
	"dsense/internal/source"
)

// DeclKind discriminates declaration forms.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclModule
	DeclImport
	DeclClass
	DeclStruct
	DeclInterface
	DeclUnion
	DeclTemplate
	DeclMixinTemplate
	DeclFunction
	DeclConstructor
	DeclDestructor
	DeclVariable
	DeclAlias
	DeclAliasThis
	DeclEnum
	DeclEnumMember
	DeclUnittest
	DeclConditional
	DeclAttrGroup
	DeclMixin
	DeclStatement
)

func (k DeclKind) String() string {
	switch k {
	case DeclModule:
		return "module"
	case DeclImport:
		return "import"
	case DeclClass:
		return "class"
	case DeclStruct:
		return "struct"
	case DeclInterface:
		return "interface"
	case DeclUnion:
		return "union"
	case DeclTemplate:
		return "template"
	case DeclMixinTemplate:
		return "mixin template"
	case DeclFunction:
		return "function"
	case DeclConstructor:
		return "constructor"
	case DeclDestructor:
		return "destructor"
	case DeclVariable:
		return "variable"
	case DeclAlias:
		return "alias"
	case DeclAliasThis:
		return "alias this"
	case DeclEnum:
		return "enum"
	case DeclEnumMember:
		return "enum member"
	case DeclUnittest:
		return "unittest"
	case DeclConditional:
		return "conditional"
	case DeclAttrGroup:
		return "attribute group"
	case DeclMixin:
		return "mixin"
	case DeclStatement:
		return "statement"
	default:
		return "invalid"
	}
}

// Decl is the kind-tagged head of every declaration node. The payload lives
// in a per-kind arena inside Decls.
type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

// Decls manages allocation of declarations and their payloads.
type Decls struct {
	Arena          *Arena[Decl]
	Modules        *Arena[ModuleDecl]
	Imports        *Arena[ImportDecl]
	Aggregates     *Arena[AggregateDecl]
	Functions      *Arena[FunctionDecl]
	ParamLists     *Arena[ParamList]
	Params         *Arena[Param]
	TemplateParams *Arena[TemplateParam]
	Variables      *Arena[VariableDecl]
	Aliases        *Arena[AliasDecl]
	AliasThises    *Arena[AliasThisDecl]
	Enums          *Arena[EnumDecl]
	EnumMembers    *Arena[EnumMemberDecl]
	Unittests      *Arena[UnittestDecl]
	Conditionals   *Arena[ConditionalDecl]
	AttrGroups     *Arena[AttrGroupDecl]
	Mixins         *Arena[MixinDecl]
	Statements     *Arena[StatementDecl]
}

// NewDecls creates per-kind arenas preallocated to capHint; zero selects a
// default capacity.
func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:          NewArena[Decl](capHint),
		Modules:        NewArena[ModuleDecl](4),
		Imports:        NewArena[ImportDecl](capHint / 4),
		Aggregates:     NewArena[AggregateDecl](capHint / 4),
		Functions:      NewArena[FunctionDecl](capHint / 2),
		ParamLists:     NewArena[ParamList](capHint / 2),
		Params:         NewArena[Param](capHint),
		TemplateParams: NewArena[TemplateParam](capHint / 4),
		Variables:      NewArena[VariableDecl](capHint),
		Aliases:        NewArena[AliasDecl](capHint / 4),
		AliasThises:    NewArena[AliasThisDecl](4),
		Enums:          NewArena[EnumDecl](capHint / 4),
		EnumMembers:    NewArena[EnumMemberDecl](capHint / 2),
		Unittests:      NewArena[UnittestDecl](capHint / 4),
		Conditionals:   NewArena[ConditionalDecl](capHint / 4),
		AttrGroups:     NewArena[AttrGroupDecl](capHint / 4),
		Mixins:         NewArena[MixinDecl](capHint / 4),
		Statements:     NewArena[StatementDecl](capHint / 2),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload PayloadID) DeclID {
	return DeclID(d.Arena.Allocate(Decl{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the declaration head for id, or nil.
func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

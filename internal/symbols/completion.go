package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// CompletionKind classifies a completion record for consumers.
type CompletionKind uint8

const (
	CompletionInvalid CompletionKind = iota
	CompletionModule
	CompletionClass
	CompletionInterface
	CompletionStruct
	CompletionUnion
	CompletionTemplateName
	CompletionFunctionName
	CompletionVariableName
	CompletionEnumName
	CompletionEnumMember
	CompletionAliasName
	CompletionDummy
	CompletionWithSymbol
	CompletionKeyword
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionModule:
		return "module"
	case CompletionClass:
		return "class"
	case CompletionInterface:
		return "interface"
	case CompletionStruct:
		return "struct"
	case CompletionUnion:
		return "union"
	case CompletionTemplateName:
		return "template"
	case CompletionFunctionName:
		return "function"
	case CompletionVariableName:
		return "variable"
	case CompletionEnumName:
		return "enum"
	case CompletionEnumMember:
		return "enum member"
	case CompletionAliasName:
		return "alias"
	case CompletionDummy:
		return "dummy"
	case CompletionWithSymbol:
		return "with"
	case CompletionKeyword:
		return "keyword"
	default:
		return "invalid"
	}
}

// Completion is the externally visible symbol fact consumed by later passes.
type Completion struct {
	Name       source.StringID
	Kind       CompletionKind
	File       source.FileID
	Offset     uint32
	Doc        source.StringID
	CallTip    string
	Protection ast.Protection
	Parts      []Part
}

// Part is a pre-seeded implicit member contributed by the language's default
// object model for class and aggregate kinds.
type Part struct {
	Name string
	Kind CompletionKind
}

package ast

import (
	"dsense/internal/source"
)

// TypeKind discriminates written type forms.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypePath
	TypePointer
	TypeArray
	TypeStaticArray
	TypeAssoc
	TypeQualified
	TypeTypeof
)

// TypeQual is a D type qualifier keyword.
type TypeQual uint8

const (
	QualConst TypeQual = iota
	QualImmutable
	QualShared
	QualInout
)

func (q TypeQual) String() string {
	switch q {
	case QualImmutable:
		return "immutable"
	case QualShared:
		return "shared"
	case QualInout:
		return "inout"
	default:
		return "const"
	}
}

// Type is the kind-tagged head of every written type node. The extraction
// pass borrows TypeIDs without interpreting them; only rendering and
// chain-reduction inspect payloads.
type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// TypeSegment is one identifier of a type path, optionally with template
// arguments (`Rebindable!(const Widget)`).
type TypeSegment struct {
	Name         source.StringID
	TemplateArgs []TypeID
}

type TypePathData struct {
	Segments []TypeSegment
}

type TypePointerData struct {
	Inner TypeID
}

type TypeArrayData struct {
	Elem TypeID
}

type TypeStaticArrayData struct {
	Elem   TypeID
	Length source.StringID // the length expression as written
}

type TypeAssocData struct {
	Value TypeID
	Key   TypeID
}

type TypeQualifiedData struct {
	Qual  TypeQual
	Inner TypeID
}

// TypeTypeofData is an opaque `typeof(...)` type; Text preserves the source
// text for display, nothing more.
type TypeTypeofData struct {
	Text source.StringID
}

// Types manages allocation of written type nodes.
type Types struct {
	Arena        *Arena[Type]
	Paths        *Arena[TypePathData]
	Pointers     *Arena[TypePointerData]
	Arrays       *Arena[TypeArrayData]
	StaticArrays *Arena[TypeStaticArrayData]
	Assocs       *Arena[TypeAssocData]
	Qualifieds   *Arena[TypeQualifiedData]
	Typeofs      *Arena[TypeTypeofData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Types{
		Arena:        NewArena[Type](capHint),
		Paths:        NewArena[TypePathData](capHint),
		Pointers:     NewArena[TypePointerData](capHint / 4),
		Arrays:       NewArena[TypeArrayData](capHint / 4),
		StaticArrays: NewArena[TypeStaticArrayData](capHint / 8),
		Assocs:       NewArena[TypeAssocData](capHint / 8),
		Qualifieds:   NewArena[TypeQualifiedData](capHint / 4),
		Typeofs:      NewArena[TypeTypeofData](capHint / 8),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the type head for id, or nil.
func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

// NewPath creates an identifier/template-chain type.
func (t *Types) NewPath(span source.Span, segments []TypeSegment) TypeID {
	copied := make([]TypeSegment, len(segments))
	for i, seg := range segments {
		copied[i] = TypeSegment{
			Name:         seg.Name,
			TemplateArgs: append([]TypeID(nil), seg.TemplateArgs...),
		}
	}
	payload := t.Paths.Allocate(TypePathData{Segments: copied})
	return t.new(TypePath, span, PayloadID(payload))
}

// Path returns the path payload for id, or nil/false.
func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypePath {
		return nil, false
	}
	return t.Paths.Get(uint32(typ.Payload)), true
}

// NewPointer creates a pointer type.
func (t *Types) NewPointer(span source.Span, inner TypeID) TypeID {
	payload := t.Pointers.Allocate(TypePointerData{Inner: inner})
	return t.new(TypePointer, span, PayloadID(payload))
}

// Pointer returns the pointer payload for id, or nil/false.
func (t *Types) Pointer(id TypeID) (*TypePointerData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypePointer {
		return nil, false
	}
	return t.Pointers.Get(uint32(typ.Payload)), true
}

// NewArray creates a dynamic array type.
func (t *Types) NewArray(span source.Span, elem TypeID) TypeID {
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem})
	return t.new(TypeArray, span, PayloadID(payload))
}

// Array returns the dynamic array payload for id, or nil/false.
func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(typ.Payload)), true
}

// NewStaticArray creates a fixed-length array type.
func (t *Types) NewStaticArray(span source.Span, elem TypeID, length source.StringID) TypeID {
	payload := t.StaticArrays.Allocate(TypeStaticArrayData{Elem: elem, Length: length})
	return t.new(TypeStaticArray, span, PayloadID(payload))
}

// StaticArray returns the static array payload for id, or nil/false.
func (t *Types) StaticArray(id TypeID) (*TypeStaticArrayData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeStaticArray {
		return nil, false
	}
	return t.StaticArrays.Get(uint32(typ.Payload)), true
}

// NewAssoc creates an associative array type, Value[Key].
func (t *Types) NewAssoc(span source.Span, value, key TypeID) TypeID {
	payload := t.Assocs.Allocate(TypeAssocData{Value: value, Key: key})
	return t.new(TypeAssoc, span, PayloadID(payload))
}

// Assoc returns the associative array payload for id, or nil/false.
func (t *Types) Assoc(id TypeID) (*TypeAssocData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeAssoc {
		return nil, false
	}
	return t.Assocs.Get(uint32(typ.Payload)), true
}

// NewQualified wraps a type in a qualifier, e.g. const(T).
func (t *Types) NewQualified(span source.Span, qual TypeQual, inner TypeID) TypeID {
	payload := t.Qualifieds.Allocate(TypeQualifiedData{Qual: qual, Inner: inner})
	return t.new(TypeQualified, span, PayloadID(payload))
}

// Qualified returns the qualifier payload for id, or nil/false.
func (t *Types) Qualified(id TypeID) (*TypeQualifiedData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeQualified {
		return nil, false
	}
	return t.Qualifieds.Get(uint32(typ.Payload)), true
}

// NewTypeof creates an opaque typeof(...) type.
func (t *Types) NewTypeof(span source.Span, text source.StringID) TypeID {
	payload := t.Typeofs.Allocate(TypeTypeofData{Text: text})
	return t.new(TypeTypeof, span, PayloadID(payload))
}

// Typeof returns the typeof payload for id, or nil/false.
func (t *Types) Typeof(id TypeID) (*TypeTypeofData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeTypeof {
		return nil, false
	}
	return t.Typeofs.Get(uint32(typ.Payload)), true
}

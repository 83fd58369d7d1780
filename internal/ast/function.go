package ast

import (
	"dsense/internal/source"
)

// FunctionDecl is the shared payload for functions, constructors, and
// destructors. Constructors and destructors have no written name or return
// type. Any of Body, InBody, OutBody may be absent.
type FunctionDecl struct {
	Name           source.StringID
	NameSpan       source.Span
	Doc            source.StringID
	ReturnType     TypeID
	TemplateParams []TemplateParamID
	Params         ParamListID
	Body           StmtID
	InBody         StmtID
	OutBody        StmtID
}

// NewFunction creates a function-like declaration of the given kind.
func (d *Decls) NewFunction(kind DeclKind, span source.Span, fn FunctionDecl) DeclID {
	if kind != DeclFunction && kind != DeclConstructor && kind != DeclDestructor {
		panic("ast: NewFunction called with kind " + kind.String())
	}
	payload := d.Functions.Allocate(FunctionDecl{
		Name:           fn.Name,
		NameSpan:       fn.NameSpan,
		Doc:            fn.Doc,
		ReturnType:     fn.ReturnType,
		TemplateParams: append([]TemplateParamID(nil), fn.TemplateParams...),
		Params:         fn.Params,
		Body:           fn.Body,
		InBody:         fn.InBody,
		OutBody:        fn.OutBody,
	})
	return d.new(kind, span, PayloadID(payload))
}

// Function returns the function payload for id, or nil/false.
func (d *Decls) Function(id DeclID) (*FunctionDecl, bool) {
	decl := d.Get(id)
	if decl == nil || (decl.Kind != DeclFunction && decl.Kind != DeclConstructor && decl.Kind != DeclDestructor) {
		return nil, false
	}
	return d.Functions.Get(uint32(decl.Payload)), true
}

// ParamList is a value-parameter list; Variadic marks a trailing `...`.
type ParamList struct {
	Params   []ParamID
	Variadic bool
	Span     source.Span
}

// Param is one value parameter.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Default  ExprID
}

// NewParamList allocates a parameter list.
func (d *Decls) NewParamList(span source.Span, params []ParamID, variadic bool) ParamListID {
	return ParamListID(d.ParamLists.Allocate(ParamList{
		Params:   append([]ParamID(nil), params...),
		Variadic: variadic,
		Span:     span,
	}))
}

// NewParam allocates one value parameter.
func (d *Decls) NewParam(p Param) ParamID {
	return ParamID(d.Params.Allocate(p))
}

// ParamListOf returns the parameter list for id, or nil.
func (d *Decls) ParamListOf(id ParamListID) *ParamList {
	if !id.IsValid() {
		return nil
	}
	return d.ParamLists.Get(uint32(id))
}

// Param returns one value parameter, or nil.
func (d *Decls) Param(id ParamID) *Param {
	if !id.IsValid() {
		return nil
	}
	return d.Params.Get(uint32(id))
}

// TemplateParamForm discriminates template parameter flavors.
type TemplateParamForm uint8

const (
	TemplateParamType TemplateParamForm = iota
	TemplateParamValue
	TemplateParamAlias
	TemplateParamTuple
)

// TemplateParam is one template parameter; Type is set for the value form.
type TemplateParam struct {
	Form     TemplateParamForm
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

// NewTemplateParam allocates one template parameter.
func (d *Decls) NewTemplateParam(p TemplateParam) TemplateParamID {
	return TemplateParamID(d.TemplateParams.Allocate(p))
}

// TemplateParamOf returns one template parameter, or nil.
func (d *Decls) TemplateParamOf(id TemplateParamID) *TemplateParam {
	if !id.IsValid() {
		return nil
	}
	return d.TemplateParams.Get(uint32(id))
}

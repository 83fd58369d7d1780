package ast

import (
	"dsense/internal/source"
)

// AggregateDecl is the shared payload for class, struct, interface, union,
// template, and mixin-template declarations. An anonymous union carries
// NoStringID as its name.
type AggregateDecl struct {
	Name           source.StringID
	NameSpan       source.Span
	Doc            source.StringID
	TemplateParams []TemplateParamID
	Bases          []TypeID // base-class / base-interface list, classes and interfaces only
	Body           source.Span
	Members        []DeclID
}

var aggregateKinds = map[DeclKind]bool{
	DeclClass:         true,
	DeclStruct:        true,
	DeclInterface:     true,
	DeclUnion:         true,
	DeclTemplate:      true,
	DeclMixinTemplate: true,
}

// IsAggregate reports whether kind uses the AggregateDecl payload.
func (k DeclKind) IsAggregate() bool { return aggregateKinds[k] }

// NewAggregate creates an aggregate declaration of the given kind.
func (d *Decls) NewAggregate(kind DeclKind, span source.Span, agg AggregateDecl) DeclID {
	if !kind.IsAggregate() {
		panic("ast: NewAggregate called with non-aggregate kind " + kind.String())
	}
	payload := d.Aggregates.Allocate(AggregateDecl{
		Name:           agg.Name,
		NameSpan:       agg.NameSpan,
		Doc:            agg.Doc,
		TemplateParams: append([]TemplateParamID(nil), agg.TemplateParams...),
		Bases:          append([]TypeID(nil), agg.Bases...),
		Body:           agg.Body,
		Members:        append([]DeclID(nil), agg.Members...),
	})
	return d.new(kind, span, PayloadID(payload))
}

// Aggregate returns the aggregate payload for id, or nil/false.
func (d *Decls) Aggregate(id DeclID) (*AggregateDecl, bool) {
	decl := d.Get(id)
	if decl == nil || !decl.Kind.IsAggregate() {
		return nil, false
	}
	return d.Aggregates.Get(uint32(decl.Payload)), true
}

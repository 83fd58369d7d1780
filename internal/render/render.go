// Package render turns syntax-tree fragments back into display text. The
// extraction pass treats it as an external service behind the TextRenderer
// interface; Printer is the default implementation.
package render

import (
	"strings"

	"dsense/internal/ast"
)

// TextRenderer renders tree fragments for call tips and outlines.
type TextRenderer interface {
	// Type renders a written type, e.g. "const(char)[]".
	Type(tree *ast.Tree, id ast.TypeID) string
	// Params renders a value-parameter list with parentheses, e.g. "(int y)".
	Params(tree *ast.Tree, id ast.ParamListID) string
	// TemplateParams renders a template-parameter list with parentheses,
	// e.g. "(T, alias pred)". Empty input renders as "".
	TemplateParams(tree *ast.Tree, ids []ast.TemplateParamID) string
}

// Printer renders fragments using D surface syntax.
type Printer struct{}

// Type implements TextRenderer.
func (Printer) Type(tree *ast.Tree, id ast.TypeID) string {
	return typeText(tree, id)
}

func typeText(tree *ast.Tree, id ast.TypeID) string {
	if tree == nil || !id.IsValid() {
		return ""
	}
	typ := tree.Types.Get(id)
	if typ == nil {
		return ""
	}
	switch typ.Kind {
	case ast.TypePath:
		path, ok := tree.Types.Path(id)
		if !ok || path == nil {
			return ""
		}
		segments := make([]string, 0, len(path.Segments))
		for _, seg := range path.Segments {
			name := tree.Strings.MustLookup(seg.Name)
			if len(seg.TemplateArgs) > 0 {
				args := make([]string, 0, len(seg.TemplateArgs))
				for _, arg := range seg.TemplateArgs {
					args = append(args, typeText(tree, arg))
				}
				name += "!(" + strings.Join(args, ", ") + ")"
			}
			segments = append(segments, name)
		}
		return strings.Join(segments, ".")
	case ast.TypePointer:
		if ptr, ok := tree.Types.Pointer(id); ok && ptr != nil {
			return typeText(tree, ptr.Inner) + "*"
		}
	case ast.TypeArray:
		if arr, ok := tree.Types.Array(id); ok && arr != nil {
			return typeText(tree, arr.Elem) + "[]"
		}
	case ast.TypeStaticArray:
		if arr, ok := tree.Types.StaticArray(id); ok && arr != nil {
			return typeText(tree, arr.Elem) + "[" + tree.Strings.MustLookup(arr.Length) + "]"
		}
	case ast.TypeAssoc:
		if aa, ok := tree.Types.Assoc(id); ok && aa != nil {
			return typeText(tree, aa.Value) + "[" + typeText(tree, aa.Key) + "]"
		}
	case ast.TypeQualified:
		if q, ok := tree.Types.Qualified(id); ok && q != nil {
			return q.Qual.String() + "(" + typeText(tree, q.Inner) + ")"
		}
	case ast.TypeTypeof:
		if to, ok := tree.Types.Typeof(id); ok && to != nil {
			return "typeof(" + tree.Strings.MustLookup(to.Text) + ")"
		}
	}
	return ""
}

// Params implements TextRenderer.
func (p Printer) Params(tree *ast.Tree, id ast.ParamListID) string {
	if tree == nil {
		return "()"
	}
	list := tree.Decls.ParamListOf(id)
	if list == nil {
		return "()"
	}
	parts := make([]string, 0, len(list.Params)+1)
	for _, pid := range list.Params {
		param := tree.Decls.Param(pid)
		if param == nil {
			continue
		}
		text := typeText(tree, param.Type)
		if param.Name != 0 {
			name := tree.Strings.MustLookup(param.Name)
			if text == "" {
				text = name
			} else {
				text += " " + name
			}
		}
		parts = append(parts, text)
	}
	if list.Variadic {
		parts = append(parts, "...")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TemplateParams implements TextRenderer.
func (p Printer) TemplateParams(tree *ast.Tree, ids []ast.TemplateParamID) string {
	if tree == nil || len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		tp := tree.Decls.TemplateParamOf(id)
		if tp == nil {
			continue
		}
		name := tree.Strings.MustLookup(tp.Name)
		switch tp.Form {
		case ast.TemplateParamAlias:
			parts = append(parts, "alias "+name)
		case ast.TemplateParamValue:
			text := typeText(tree, tp.Type)
			if text == "" {
				parts = append(parts, name)
			} else {
				parts = append(parts, text+" "+name)
			}
		case ast.TemplateParamTuple:
			parts = append(parts, name+"...")
		default:
			parts = append(parts, name)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

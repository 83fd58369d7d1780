package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/render"
)

// formatCallTip renders return type + name + template parameters + value
// parameters into display text, e.g. "void f(int y)" or
// "T max(T)(T a, T b)". Text rendering is delegated to the renderer.
func formatCallTip(r render.TextRenderer, tree *ast.Tree, returnType ast.TypeID, name string, templateParams []ast.TemplateParamID, params ast.ParamListID) string {
	text := name + r.TemplateParams(tree, templateParams) + r.Params(tree, params)
	if ret := r.Type(tree, returnType); ret != "" {
		return ret + " " + text
	}
	return text
}

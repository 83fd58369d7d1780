package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// visitDecl dispatches one declaration. Unknown or malformed nodes are
// skipped: the pass promises a symbol for everything it understands, not an
// error for everything it does not.
func (ex *extractor) visitDecl(id ast.DeclID) {
	decl := ex.tree.Decls.Get(id)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclModule:
		ex.visitModuleDecl(id)
	case ast.DeclImport:
		ex.recordImports(id)
	case ast.DeclClass, ast.DeclStruct, ast.DeclInterface, ast.DeclUnion,
		ast.DeclTemplate, ast.DeclMixinTemplate:
		ex.visitAggregate(id, decl)
	case ast.DeclFunction, ast.DeclConstructor, ast.DeclDestructor:
		ex.visitFunction(id, decl)
	case ast.DeclVariable:
		ex.visitVariable(id)
	case ast.DeclAlias:
		ex.visitAlias(id)
	case ast.DeclAliasThis:
		ex.visitAliasThis(id)
	case ast.DeclEnum:
		ex.visitEnum(id, decl)
	case ast.DeclEnumMember:
		ex.visitEnumMember(id)
	case ast.DeclUnittest:
		ex.visitUnittest(id, decl)
	case ast.DeclConditional:
		ex.visitConditional(id)
	case ast.DeclAttrGroup:
		ex.visitAttrGroup(id)
	case ast.DeclMixin:
		ex.visitMixin(id)
	case ast.DeclStatement:
		if st, ok := ex.tree.Decls.Statement(id); ok && st != nil {
			ex.visitStmt(st.Stmt)
		}
	}
}

// visitModuleDecl renames the pass root after the declared module path. The
// root symbol keeps its position in both trees; only its name changes.
func (ex *extractor) visitModuleDecl(id ast.DeclID) {
	mod, ok := ex.tree.Decls.Module(id)
	if !ok || mod == nil || len(mod.Path) == 0 {
		return
	}
	if root := ex.table.Symbols.Get(ex.rootSymbol); root != nil {
		root.Name = mod.Path[len(mod.Path)-1]
	}
}

func completionKindForAggregate(kind ast.DeclKind) CompletionKind {
	switch kind {
	case ast.DeclClass:
		return CompletionClass
	case ast.DeclStruct:
		return CompletionStruct
	case ast.DeclInterface:
		return CompletionInterface
	case ast.DeclUnion:
		return CompletionUnion
	default:
		return CompletionTemplateName
	}
}

func (ex *extractor) visitAggregate(id ast.DeclID, decl *ast.Decl) {
	agg, ok := ex.tree.Decls.Aggregate(id)
	if !ok || agg == nil {
		return
	}

	// An anonymous union contributes no symbol and no scope: its members
	// splice directly into the surrounding aggregate.
	if decl.Kind == ast.DeclUnion && agg.Name == source.NoStringID {
		for _, member := range agg.Members {
			ex.visitDecl(member)
		}
		return
	}

	symID := ex.newSymbol(agg.Name, completionKindForAggregate(decl.Kind), agg.NameSpan.Start, agg.Doc, ast.NoTypeID)
	if sym := ex.table.Symbols.Get(symID); sym != nil {
		for _, base := range agg.Bases {
			if chain, ok := reduceTypeChain(ex.tree, base); ok {
				sym.Bases = append(sym.Bases, chain)
			}
		}
	}

	prevSymbol, prevScope := ex.currentSymbol, ex.currentScope
	defer func() {
		ex.currentSymbol, ex.currentScope = prevSymbol, prevScope
	}()
	ex.currentSymbol = symID
	ex.addTemplateParams(agg.TemplateParams)

	scopeID := ex.newScope(agg.Body)
	ex.currentScope = scopeID

	// Inside the body `this` resolves to the aggregate itself.
	if decl.Kind != ast.DeclTemplate && decl.Kind != ast.DeclMixinTemplate {
		if scope := ex.table.Scopes.Get(scopeID); scope != nil {
			scope.Locals = append(scope.Locals, Local{
				Completion: Completion{
					Name:       ex.tree.Strings.Intern("this"),
					Kind:       CompletionVariableName,
					File:       ex.file,
					Offset:     agg.Body.Start,
					Protection: ex.protection,
				},
				Decl: id,
			})
		}
	}

	for _, member := range agg.Members {
		ex.visitDecl(member)
	}
}

// addTemplateParams emits one child symbol per template parameter under the
// current symbol. Value parameters keep their declared type; the other forms
// stand for types or aliases and carry none.
func (ex *extractor) addTemplateParams(params []ast.TemplateParamID) {
	for _, paramID := range params {
		param := ex.tree.Decls.TemplateParamOf(paramID)
		if param == nil || param.Name == source.NoStringID {
			continue
		}
		kind := CompletionTemplateName
		typ := ast.NoTypeID
		switch param.Form {
		case ast.TemplateParamValue:
			kind = CompletionVariableName
			typ = param.Type
		case ast.TemplateParamAlias:
			kind = CompletionAliasName
		case ast.TemplateParamTuple:
			kind = CompletionVariableName
		}
		ex.newSymbol(param.Name, kind, param.NameSpan.Start, source.NoStringID, typ)
	}
}

// addParams emits one child symbol per value parameter, plus the two
// synthetic variadic parameters when the list ends with `...`.
func (ex *extractor) addParams(listID ast.ParamListID) {
	list := ex.tree.Decls.ParamListOf(listID)
	if list == nil {
		return
	}
	for _, paramID := range list.Params {
		param := ex.tree.Decls.Param(paramID)
		if param == nil || param.Name == source.NoStringID {
			continue
		}
		ex.newSymbol(param.Name, CompletionVariableName, param.NameSpan.Start, source.NoStringID, param.Type)
	}
	if list.Variadic {
		offset := list.Span.End
		ex.newSymbol(ex.tree.Strings.Intern("_argptr"), CompletionVariableName, offset, source.NoStringID, ex.argPtr())
		ex.newSymbol(ex.tree.Strings.Intern("_arguments"), CompletionVariableName, offset, source.NoStringID, ex.arguments())
	}
}

func (ex *extractor) visitFunction(id ast.DeclID, decl *ast.Decl) {
	fn, ok := ex.tree.Decls.Function(id)
	if !ok || fn == nil {
		return
	}

	name := fn.Name
	nameSpan := fn.NameSpan
	switch decl.Kind {
	case ast.DeclConstructor:
		name = ex.tree.Strings.Intern("this")
	case ast.DeclDestructor:
		name = ex.tree.Strings.Intern("~this")
	}
	if name == source.NoStringID {
		return
	}
	if nameSpan.Empty() {
		nameSpan = source.Span{File: decl.Span.File, Start: decl.Span.Start, End: decl.Span.Start}
	}

	symID := ex.newSymbol(name, CompletionFunctionName, nameSpan.Start, fn.Doc, fn.ReturnType)

	prevSymbol, prevScope := ex.currentSymbol, ex.currentScope
	defer func() {
		ex.currentSymbol, ex.currentScope = prevSymbol, prevScope
	}()
	ex.currentSymbol = symID

	ex.addTemplateParams(fn.TemplateParams)
	ex.addParams(fn.Params)

	tip := formatCallTip(ex.renderer, ex.tree, fn.ReturnType,
		ex.tree.Strings.MustLookup(name), fn.TemplateParams, fn.Params)
	if sym := ex.table.Symbols.Get(symID); sym != nil {
		sym.CallTip = tip
	}

	// The function scope runs from the end of the name to the end of the
	// furthest body, so parameters are visible in contracts and the body
	// alike.
	end := nameSpan.End
	hasBody := false
	for _, bodyID := range []ast.StmtID{fn.InBody, fn.OutBody, fn.Body} {
		stmt := ex.tree.Stmts.Get(bodyID)
		if stmt == nil {
			continue
		}
		hasBody = true
		if stmt.Span.End > end {
			end = stmt.Span.End
		}
	}
	if !hasBody {
		return
	}

	ex.currentScope = ex.newScope(source.Span{File: ex.file, Start: nameSpan.End, End: end})
	ex.visitStmt(fn.InBody)
	ex.visitStmt(fn.OutBody)
	ex.visitStmt(fn.Body)
}

func (ex *extractor) visitVariable(id ast.DeclID) {
	v, ok := ex.tree.Decls.Variable(id)
	if !ok || v == nil {
		return
	}
	for _, d := range v.Declarators {
		if d.Name == source.NoStringID {
			continue
		}
		symID := ex.newSymbol(d.Name, CompletionVariableName, d.NameSpan.Start, v.Doc, v.Type)
		if !v.Type.IsValid() && d.Value.IsValid() {
			shape := captureShape(ex.tree, d.Value, false)
			if sym := ex.table.Symbols.Get(symID); sym != nil {
				sym.Shape = shape
			}
		}
	}
}

func (ex *extractor) visitAlias(id ast.DeclID) {
	a, ok := ex.tree.Decls.Alias(id)
	if !ok || a == nil {
		return
	}
	for _, d := range a.Declarators {
		if d.Name == source.NoStringID {
			continue
		}
		ex.newSymbol(d.Name, CompletionAliasName, d.NameSpan.Start, a.Doc, d.Target)
	}
}

// visitAliasThis records the forwarded member name on the enclosing symbol;
// resolution happens in a later pass.
func (ex *extractor) visitAliasThis(id ast.DeclID) {
	at, ok := ex.tree.Decls.AliasThis(id)
	if !ok || at == nil || at.Name == source.NoStringID {
		return
	}
	if sym := ex.table.Symbols.Get(ex.currentSymbol); sym != nil {
		sym.AliasThis = append(sym.AliasThis, at.Name)
	}
}

func (ex *extractor) visitEnum(id ast.DeclID, decl *ast.Decl) {
	e, ok := ex.tree.Decls.Enum(id)
	if !ok || e == nil {
		return
	}

	// An anonymous enum splices members into the parent; named members of
	// each still become symbols via visitEnumMember.
	if e.Name == source.NoStringID {
		for _, member := range e.Members {
			ex.visitDecl(member)
		}
		return
	}

	symID := ex.newSymbol(e.Name, CompletionEnumName, e.NameSpan.Start, e.Doc, e.Base)

	prevSymbol, prevScope := ex.currentSymbol, ex.currentScope
	defer func() {
		ex.currentSymbol, ex.currentScope = prevSymbol, prevScope
	}()
	ex.currentSymbol = symID
	ex.currentScope = ex.newScope(e.Body)

	for _, member := range e.Members {
		ex.visitDecl(member)
	}
}

func (ex *extractor) visitEnumMember(id ast.DeclID) {
	m, ok := ex.tree.Decls.EnumMember(id)
	if !ok || m == nil || m.Name == source.NoStringID {
		return
	}
	ex.newSymbol(m.Name, CompletionEnumMember, m.NameSpan.Start, m.Doc, m.Type)
}

// visitUnittest wraps the block's declarations in an unnamed dummy symbol so
// locals inside it never leak into aggregate member lists. Only the symbol
// cursor moves; the block statement opens its own scope as usual.
func (ex *extractor) visitUnittest(id ast.DeclID, decl *ast.Decl) {
	ut, ok := ex.tree.Decls.Unittest(id)
	if !ok || ut == nil {
		return
	}
	symID := ex.newSymbol(source.NoStringID, CompletionDummy, decl.Span.Start, source.NoStringID, ast.NoTypeID)

	prevSymbol := ex.currentSymbol
	defer func() { ex.currentSymbol = prevSymbol }()
	ex.currentSymbol = symID
	ex.visitStmt(ut.Body)
}

// visitConditional descends into the taken branch only. A version block is
// taken when its identifier is in the recognized set; debug blocks are taken
// unconditionally, matching how completion treats debug builds. The else
// branch is never visited.
func (ex *extractor) visitConditional(id ast.DeclID) {
	c, ok := ex.tree.Decls.Conditional(id)
	if !ok || c == nil {
		return
	}
	if c.Cond == ast.CondVersion {
		name, ok := ex.tree.Strings.Lookup(c.Condition)
		if !ok {
			return
		}
		if _, recognized := ex.versions[name]; !recognized {
			return
		}
	}
	for _, declID := range c.Then {
		ex.visitDecl(declID)
	}
}

// visitAttrGroup overrides ambient protection for the grouped declarations
// when the group carries a visibility attribute, restoring it afterwards.
func (ex *extractor) visitAttrGroup(id ast.DeclID) {
	g, ok := ex.tree.Decls.AttrGroup(id)
	if !ok || g == nil {
		return
	}
	prev := ex.protection
	defer func() { ex.protection = prev }()
	if g.Protection != ast.ProtectionNone {
		ex.protection = g.Protection
	}
	for _, declID := range g.Decls {
		ex.visitDecl(declID)
	}
}

// visitMixin records the mixed-in template's name chain on the enclosing
// symbol for later expansion. Targets that do not reduce to a plain chain
// (typeof-based mixins) are dropped.
func (ex *extractor) visitMixin(id ast.DeclID) {
	m, ok := ex.tree.Decls.Mixin(id)
	if !ok || m == nil {
		return
	}
	chain, ok := reduceTypeChain(ex.tree, m.Target)
	if !ok {
		return
	}
	if sym := ex.table.Symbols.Get(ex.currentSymbol); sym != nil {
		sym.Mixins = append(sym.Mixins, chain)
	}
}

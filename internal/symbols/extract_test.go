package symbols

import (
	"testing"

	"dsense/internal/ast"
	"dsense/internal/source"
)

func newTestTree() *ast.Tree {
	return ast.NewTree(ast.Hints{}, source.NewInterner())
}

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func pathType(tree *ast.Tree, names ...string) ast.TypeID {
	segments := make([]ast.TypeSegment, 0, len(names))
	for _, n := range names {
		segments = append(segments, ast.TypeSegment{Name: tree.Strings.Intern(n)})
	}
	return tree.Types.NewPath(source.Span{}, segments)
}

func childNames(t *testing.T, table *Table, id SymbolID) []string {
	t.Helper()
	sym := table.Symbols.Get(id)
	if sym == nil {
		t.Fatalf("symbol %d not found", id)
	}
	names := make([]string, 0, len(sym.Children))
	for _, child := range sym.Children {
		c := table.Symbols.Get(child)
		if c == nil {
			t.Fatalf("dangling child %d of symbol %d", child, id)
		}
		if c.Name == source.NoStringID {
			names = append(names, "")
			continue
		}
		names = append(names, table.Strings.MustLookup(c.Name))
	}
	return names
}

func findChild(t *testing.T, table *Table, parent SymbolID, name string) *Symbol {
	t.Helper()
	p := table.Symbols.Get(parent)
	if p == nil {
		t.Fatalf("symbol %d not found", parent)
	}
	for _, child := range p.Children {
		c := table.Symbols.Get(child)
		if c == nil || c.Name == source.NoStringID {
			continue
		}
		if table.Strings.MustLookup(c.Name) == name {
			return c
		}
	}
	t.Fatalf("no child %q under symbol %d (have %v)", name, parent, childNames(t, table, parent))
	return nil
}

func shapeText(t *testing.T, table *Table, shape []source.StringID) []string {
	t.Helper()
	out := make([]string, 0, len(shape))
	for _, id := range shape {
		out = append(out, table.Strings.MustLookup(id))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// module m; class C { int x; void f(int y) {} }
func TestExtractModuleClassMembers(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 45))

	tree.PushDecl(mod, tree.Decls.NewModuleDecl(sp(0, 9), []source.StringID{tree.Strings.Intern("m")}))

	intX := tree.Decls.NewVariableDecl(sp(20, 26), ast.VariableDecl{
		Type: pathType(tree, "int"),
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("x"), NameSpan: sp(24, 25)},
		},
	})

	paramY := tree.Decls.NewParam(ast.Param{
		Name:     tree.Strings.Intern("y"),
		NameSpan: sp(38, 39),
		Type:     pathType(tree, "int"),
	})
	body := tree.Stmts.NewBlock(sp(41, 43), nil)
	fnF := tree.Decls.NewFunction(ast.DeclFunction, sp(27, 43), ast.FunctionDecl{
		Name:       tree.Strings.Intern("f"),
		NameSpan:   sp(32, 33),
		ReturnType: pathType(tree, "void"),
		Params:     tree.Decls.NewParamList(sp(33, 40), []ast.ParamID{paramY}, false),
		Body:       body,
	})

	classC := tree.Decls.NewAggregate(ast.DeclClass, sp(10, 45), ast.AggregateDecl{
		Name:     tree.Strings.Intern("C"),
		NameSpan: sp(16, 17),
		Body:     sp(18, 45),
		Members:  []ast.DeclID{intX, fnF},
	})
	tree.PushDecl(mod, classC)

	res := ExtractModule(tree, mod, Options{File: 1})
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	root := res.Table.Symbols.Get(res.RootSymbol)
	if root.Kind != CompletionModule {
		t.Fatalf("root kind = %v, want module", root.Kind)
	}
	if got := res.Table.Strings.MustLookup(root.Name); got != "m" {
		t.Fatalf("root name = %q, want m", got)
	}

	c := findChild(t, res.Table, res.RootSymbol, "C")
	if c.Kind != CompletionClass {
		t.Fatalf("C kind = %v, want class", c.Kind)
	}

	x := findChild(t, res.Table, rootChildID(t, res.Table, res.RootSymbol, "C"), "x")
	if x.Kind != CompletionVariableName {
		t.Fatalf("x kind = %v, want variable", x.Kind)
	}
	f := findChild(t, res.Table, rootChildID(t, res.Table, res.RootSymbol, "C"), "f")
	if f.Kind != CompletionFunctionName {
		t.Fatalf("f kind = %v, want function", f.Kind)
	}
	if f.CallTip != "void f(int y)" {
		t.Fatalf("call tip = %q, want %q", f.CallTip, "void f(int y)")
	}

	// The class body scope injects an implicit `this`.
	rootScope := res.Table.Scopes.Get(res.RootScope)
	if len(rootScope.Children) != 1 {
		t.Fatalf("root scope children = %d, want 1", len(rootScope.Children))
	}
	bodyScope := res.Table.Scopes.Get(rootScope.Children[0])
	if len(bodyScope.Locals) != 1 {
		t.Fatalf("body scope locals = %d, want 1", len(bodyScope.Locals))
	}
	local := bodyScope.Locals[0]
	if got := res.Table.Strings.MustLookup(local.Name); got != "this" {
		t.Fatalf("local name = %q, want this", got)
	}
	if local.Decl != classC {
		t.Fatalf("this local bound to decl %d, want %d", local.Decl, classC)
	}

	// Class parts include the default object members on top of the
	// aggregate set.
	wantParts := map[string]bool{"init": true, "toString": true, "opEquals": true}
	for _, part := range c.Parts {
		delete(wantParts, part.Name)
	}
	if len(wantParts) != 0 {
		t.Fatalf("class parts missing %v", wantParts)
	}
}

func rootChildID(t *testing.T, table *Table, root SymbolID, name string) SymbolID {
	t.Helper()
	p := table.Symbols.Get(root)
	for _, child := range p.Children {
		c := table.Symbols.Get(child)
		if c != nil && c.Name != source.NoStringID && table.Strings.MustLookup(c.Name) == name {
			return child
		}
	}
	t.Fatalf("no child %q under root", name)
	return NoSymbolID
}

// auto a = foo.bar[0];
func TestExtractInferredVariableShape(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 20))

	foo := tree.Exprs.NewIdent(sp(9, 12), tree.Strings.Intern("foo"))
	bar := tree.Exprs.NewMember(sp(9, 16), foo, tree.Strings.Intern("bar"))
	zero := tree.Exprs.NewLit(sp(17, 18), ast.LitInt)
	init := tree.Exprs.NewIndex(sp(9, 19), bar, zero)

	tree.PushDecl(mod, tree.Decls.NewVariableDecl(sp(0, 20), ast.VariableDecl{
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("a"), NameSpan: sp(5, 6), Value: init},
		},
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	a := findChild(t, res.Table, res.RootSymbol, "a")
	if a.Type.IsValid() {
		t.Fatalf("a has type %d, want unset", a.Type)
	}
	got := shapeText(t, res.Table, a.Shape)
	want := []string{"foo", "bar", ShapeIndex}
	if !equalStrings(got, want) {
		t.Fatalf("shape = %v, want %v", got, want)
	}
}

// struct S { unittest { int secret; } }
func TestExtractUnittestDummyHidesLocals(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 40))

	secret := tree.Decls.NewVariableDecl(sp(22, 33), ast.VariableDecl{
		Type: pathType(tree, "int"),
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("secret"), NameSpan: sp(26, 32)},
		},
	})
	block := tree.Stmts.NewBlock(sp(20, 35), []ast.StmtID{
		tree.Stmts.NewDecl(sp(22, 33), secret),
	})
	ut := tree.Decls.NewUnittestDecl(sp(11, 35), block)

	structS := tree.Decls.NewAggregate(ast.DeclStruct, sp(0, 38), ast.AggregateDecl{
		Name:     tree.Strings.Intern("S"),
		NameSpan: sp(7, 8),
		Body:     sp(9, 38),
		Members:  []ast.DeclID{ut},
	})
	tree.PushDecl(mod, structS)

	res := ExtractModule(tree, mod, Options{File: 1})
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	sID := rootChildID(t, res.Table, res.RootSymbol, "S")
	names := childNames(t, res.Table, sID)
	dummies := 0
	for _, name := range names {
		if name == "secret" {
			t.Fatalf("secret leaked into S children: %v", names)
		}
		if name == "" {
			dummies++
		}
	}
	if dummies != 1 {
		t.Fatalf("unnamed dummy children = %d, want 1 (children %v)", dummies, names)
	}

	s := res.Table.Symbols.Get(sID)
	for _, child := range s.Children {
		c := res.Table.Symbols.Get(child)
		if c.Kind != CompletionDummy {
			continue
		}
		inner := childNames(t, res.Table, child)
		if !equalStrings(inner, []string{"secret"}) {
			t.Fatalf("dummy children = %v, want [secret]", inner)
		}
	}
}

// import std.stdio : writeln;  (default ambient protection)
func TestExtractSelectiveImport(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 28))

	tree.PushDecl(mod, tree.Decls.NewImportDecl(sp(0, 28), []ast.ImportTarget{
		{
			Chain: []source.StringID{tree.Strings.Intern("std"), tree.Strings.Intern("stdio")},
			Binds: []ast.ImportBind{{Name: tree.Strings.Intern("writeln")}},
		},
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	rootScope := res.Table.Scopes.Get(res.RootScope)
	if len(rootScope.Imports) != 1 {
		t.Fatalf("imports = %d, want 1", len(rootScope.Imports))
	}
	record := rootScope.Imports[0]
	if got := res.Table.Strings.MustLookup(record.Path); got != "std.stdio" {
		t.Fatalf("path = %q, want std.stdio", got)
	}
	if record.Public {
		t.Fatal("import is public under default protection")
	}
	if len(record.Binds) != 1 {
		t.Fatalf("binds = %d, want 1", len(record.Binds))
	}
	bind := record.Binds[0]
	if bind.Local != source.NoStringID {
		t.Fatalf("unaliased bind local = %d, want empty", bind.Local)
	}
	if got := res.Table.Strings.MustLookup(bind.Origin); got != "writeln" {
		t.Fatalf("bind origin = %q, want writeln", got)
	}
}

// import std.stdio, std.array;
func TestExtractMultiTargetImport(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 30))

	tree.PushDecl(mod, tree.Decls.NewImportDecl(sp(0, 27), []ast.ImportTarget{
		{Chain: []source.StringID{tree.Strings.Intern("std"), tree.Strings.Intern("stdio")}},
		{Chain: []source.StringID{tree.Strings.Intern("std"), tree.Strings.Intern("array")}},
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	rootScope := res.Table.Scopes.Get(res.RootScope)
	if len(rootScope.Imports) != 2 {
		t.Fatalf("imports = %d, want 2", len(rootScope.Imports))
	}
	wantPaths := []string{"std.stdio", "std.array"}
	for i, want := range wantPaths {
		if got := res.Table.Strings.MustLookup(rootScope.Imports[i].Path); got != want {
			t.Fatalf("import %d path = %q, want %q", i, got, want)
		}
		if len(rootScope.Imports[i].Chain) != 2 {
			t.Fatalf("import %d chain length = %d, want 2", i, len(rootScope.Imports[i].Chain))
		}
	}
}

// public: import std.array;
func TestExtractPublicImport(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 30))

	imp := tree.Decls.NewImportDecl(sp(8, 25), []ast.ImportTarget{
		{Chain: []source.StringID{tree.Strings.Intern("std"), tree.Strings.Intern("array")}},
	})
	tree.PushDecl(mod, tree.Decls.NewAttrGroupDecl(sp(0, 25), ast.ProtectionPublic, []ast.DeclID{imp}))

	res := ExtractModule(tree, mod, Options{File: 1})
	rootScope := res.Table.Scopes.Get(res.RootScope)
	if len(rootScope.Imports) != 1 {
		t.Fatalf("imports = %d, want 1", len(rootScope.Imports))
	}
	if !rootScope.Imports[0].Public {
		t.Fatal("import under public attribute group is not public")
	}
}

// foreach (v; list) { }
func TestExtractForeachBindingShape(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 50))

	list := tree.Exprs.NewIdent(sp(25, 29), tree.Strings.Intern("list"))
	body := tree.Stmts.NewBlock(sp(31, 34), nil)
	loop := tree.Stmts.NewForeach(sp(13, 34), []ast.ForeachBinding{
		{Name: tree.Strings.Intern("v"), NameSpan: sp(22, 23)},
	}, list, body)

	fnBody := tree.Stmts.NewBlock(sp(11, 36), []ast.StmtID{loop})
	tree.PushDecl(mod, tree.Decls.NewFunction(ast.DeclFunction, sp(0, 36), ast.FunctionDecl{
		Name:     tree.Strings.Intern("run"),
		NameSpan: sp(5, 8),
		Body:     fnBody,
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	run := rootChildID(t, res.Table, res.RootSymbol, "run")
	v := findChild(t, res.Table, run, "v")
	got := shapeText(t, res.Table, v.Shape)
	want := []string{"list", ShapeLoopBinding}
	if !equalStrings(got, want) {
		t.Fatalf("shape = %v, want %v", got, want)
	}
}

// foreach (k, v; assoc) { }: multi-binding loops record no shape.
func TestExtractForeachMultiBindingNoShape(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 50))

	assoc := tree.Exprs.NewIdent(sp(28, 33), tree.Strings.Intern("assoc"))
	body := tree.Stmts.NewBlock(sp(35, 38), nil)
	loop := tree.Stmts.NewForeach(sp(13, 38), []ast.ForeachBinding{
		{Name: tree.Strings.Intern("k"), NameSpan: sp(22, 23)},
		{Name: tree.Strings.Intern("v"), NameSpan: sp(25, 26)},
	}, assoc, body)

	fnBody := tree.Stmts.NewBlock(sp(11, 40), []ast.StmtID{loop})
	tree.PushDecl(mod, tree.Decls.NewFunction(ast.DeclFunction, sp(0, 40), ast.FunctionDecl{
		Name:     tree.Strings.Intern("run"),
		NameSpan: sp(5, 8),
		Body:     fnBody,
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	run := rootChildID(t, res.Table, res.RootSymbol, "run")
	for _, name := range []string{"k", "v"} {
		sym := findChild(t, res.Table, run, name)
		if sym.Shape != nil {
			t.Fatalf("%s shape = %v, want none", name, shapeText(t, res.Table, sym.Shape))
		}
	}
}

func TestExtractAnonymousUnionSplices(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 60))

	varA := tree.Decls.NewVariableDecl(sp(20, 28), ast.VariableDecl{
		Type: pathType(tree, "int"),
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("a"), NameSpan: sp(24, 25)},
		},
	})
	anon := tree.Decls.NewAggregate(ast.DeclUnion, sp(12, 30), ast.AggregateDecl{
		Body:    sp(18, 30),
		Members: []ast.DeclID{varA},
	})
	structS := tree.Decls.NewAggregate(ast.DeclStruct, sp(0, 35), ast.AggregateDecl{
		Name:     tree.Strings.Intern("S"),
		NameSpan: sp(7, 8),
		Body:     sp(9, 35),
		Members:  []ast.DeclID{anon},
	})
	tree.PushDecl(mod, structS)

	res := ExtractModule(tree, mod, Options{File: 1})
	sID := rootChildID(t, res.Table, res.RootSymbol, "S")
	names := childNames(t, res.Table, sID)
	if !equalStrings(names, []string{"a"}) {
		t.Fatalf("S children = %v, want [a]", names)
	}
}

func TestExtractConditionalPruning(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 80))

	mkVar := func(name string, at uint32) ast.DeclID {
		return tree.Decls.NewVariableDecl(sp(at, at+10), ast.VariableDecl{
			Type: pathType(tree, "int"),
			Declarators: []ast.Declarator{
				{Name: tree.Strings.Intern(name), NameSpan: sp(at + 4, at + 5)},
			},
		})
	}

	tree.PushDecl(mod, tree.Decls.NewConditionalDecl(sp(0, 20), ast.ConditionalDecl{
		Cond:      ast.CondVersion,
		Condition: tree.Strings.Intern("linux"),
		Then:      []ast.DeclID{mkVar("whenLinux", 10)},
		Else:      []ast.DeclID{mkVar("never", 30)},
	}))
	tree.PushDecl(mod, tree.Decls.NewConditionalDecl(sp(40, 60), ast.ConditionalDecl{
		Cond:      ast.CondVersion,
		Condition: tree.Strings.Intern("NoSuchPlatform"),
		Then:      []ast.DeclID{mkVar("skipped", 50)},
	}))
	tree.PushDecl(mod, tree.Decls.NewConditionalDecl(sp(60, 80), ast.ConditionalDecl{
		Cond: ast.CondDebug,
		Then: []ast.DeclID{mkVar("whenDebug", 70)},
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	names := childNames(t, res.Table, res.RootSymbol)
	if !equalStrings(names, []string{"whenLinux", "whenDebug"}) {
		t.Fatalf("children = %v, want [whenLinux whenDebug]", names)
	}
}

func TestExtractProtectionRestoredAfterGroup(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 60))

	inner := tree.Decls.NewVariableDecl(sp(10, 20), ast.VariableDecl{
		Type: pathType(tree, "int"),
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("hidden"), NameSpan: sp(14, 20)},
		},
	})
	tree.PushDecl(mod, tree.Decls.NewAttrGroupDecl(sp(0, 25), ast.ProtectionPrivate, []ast.DeclID{inner}))

	after := tree.Decls.NewVariableDecl(sp(30, 40), ast.VariableDecl{
		Type: pathType(tree, "int"),
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("plain"), NameSpan: sp(34, 39)},
		},
	})
	tree.PushDecl(mod, after)

	res := ExtractModule(tree, mod, Options{File: 1})
	hidden := findChild(t, res.Table, res.RootSymbol, "hidden")
	if hidden.Protection != ast.ProtectionPrivate {
		t.Fatalf("hidden protection = %v, want private", hidden.Protection)
	}
	plain := findChild(t, res.Table, res.RootSymbol, "plain")
	if plain.Protection != ast.ProtectionNone {
		t.Fatalf("plain protection = %v, want none (restored)", plain.Protection)
	}
}

func TestExtractWithStatementSymbol(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 60))

	cfg := tree.Exprs.NewIdent(sp(15, 18), tree.Strings.Intern("cfg"))
	subject := tree.Exprs.NewMember(sp(15, 25), cfg, tree.Strings.Intern("limits"))
	body := tree.Stmts.NewBlock(sp(27, 40), nil)
	with := tree.Stmts.NewWith(sp(10, 40), subject, body)

	fnBody := tree.Stmts.NewBlock(sp(9, 45), []ast.StmtID{with})
	tree.PushDecl(mod, tree.Decls.NewFunction(ast.DeclFunction, sp(0, 45), ast.FunctionDecl{
		Name:     tree.Strings.Intern("run"),
		NameSpan: sp(5, 8),
		Body:     fnBody,
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	run := rootChildID(t, res.Table, res.RootSymbol, "run")
	ws := findChild(t, res.Table, run, withSymbolName)
	if ws.Kind != CompletionWithSymbol {
		t.Fatalf("with symbol kind = %v", ws.Kind)
	}
	got := shapeText(t, res.Table, ws.Shape)
	want := []string{"cfg", "limits"}
	if !equalStrings(got, want) {
		t.Fatalf("with shape = %v, want %v", got, want)
	}
}

func TestExtractVariadicSynthetics(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 40))

	params := tree.Decls.NewParamList(sp(10, 20), nil, true)
	tree.PushDecl(mod, tree.Decls.NewFunction(ast.DeclFunction, sp(0, 30), ast.FunctionDecl{
		Name:       tree.Strings.Intern("log"),
		NameSpan:   sp(5, 8),
		ReturnType: pathType(tree, "void"),
		Params:     params,
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	log := rootChildID(t, res.Table, res.RootSymbol, "log")
	argptr := findChild(t, res.Table, log, "_argptr")
	arguments := findChild(t, res.Table, log, "_arguments")
	if !argptr.Type.IsValid() || !arguments.Type.IsValid() {
		t.Fatal("synthetic variadic parameters must carry predetermined types")
	}
	if got := tree.Types.Get(argptr.Type); got == nil || got.Kind != ast.TypePointer {
		t.Fatalf("_argptr type kind = %v, want pointer", got)
	}
	if got := tree.Types.Get(arguments.Type); got == nil || got.Kind != ast.TypeArray {
		t.Fatalf("_arguments type kind = %v, want array", got)
	}
}

func TestExtractEnumMembers(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 50))

	red := tree.Decls.NewEnumMemberDecl(sp(18, 21), ast.EnumMemberDecl{
		Name: tree.Strings.Intern("red"), NameSpan: sp(18, 21),
	})
	green := tree.Decls.NewEnumMemberDecl(sp(23, 28), ast.EnumMemberDecl{
		Name: tree.Strings.Intern("green"), NameSpan: sp(23, 28),
	})
	tree.PushDecl(mod, tree.Decls.NewEnumDecl(sp(0, 30), ast.EnumDecl{
		Name:     tree.Strings.Intern("Color"),
		NameSpan: sp(5, 10),
		Body:     sp(16, 30),
		Members:  []ast.DeclID{red, green},
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	colorID := rootChildID(t, res.Table, res.RootSymbol, "Color")
	color := res.Table.Symbols.Get(colorID)
	if color.Kind != CompletionEnumName {
		t.Fatalf("Color kind = %v, want enum", color.Kind)
	}
	names := childNames(t, res.Table, colorID)
	if !equalStrings(names, []string{"red", "green"}) {
		t.Fatalf("members = %v, want [red green]", names)
	}
	wantParts := map[string]bool{"min": true, "max": true, "init": true}
	for _, part := range color.Parts {
		delete(wantParts, part.Name)
	}
	if len(wantParts) != 0 {
		t.Fatalf("enum parts missing %v", wantParts)
	}
}

func TestExtractBasesAliasThisMixins(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 90))

	aliasThis := tree.Decls.NewAliasThisDecl(sp(30, 45), tree.Strings.Intern("payload"))
	mixin := tree.Decls.NewMixinDecl(sp(46, 60), pathType(tree, "Signals"))

	classC := tree.Decls.NewAggregate(ast.DeclClass, sp(0, 80), ast.AggregateDecl{
		Name:     tree.Strings.Intern("C"),
		NameSpan: sp(6, 7),
		Bases: []ast.TypeID{
			pathType(tree, "Base"),
			pathType(tree, "io", "Closeable"),
		},
		Body:    sp(25, 80),
		Members: []ast.DeclID{aliasThis, mixin},
	})
	tree.PushDecl(mod, classC)

	res := ExtractModule(tree, mod, Options{File: 1})
	c := findChild(t, res.Table, res.RootSymbol, "C")
	if len(c.Bases) != 2 {
		t.Fatalf("bases = %d, want 2", len(c.Bases))
	}
	if got := res.Table.Strings.MustLookup(c.Bases[0][0]); got != "Base" {
		t.Fatalf("first base = %q, want Base", got)
	}
	if len(c.Bases[1]) != 2 {
		t.Fatalf("second base chain length = %d, want 2", len(c.Bases[1]))
	}
	if len(c.AliasThis) != 1 || res.Table.Strings.MustLookup(c.AliasThis[0]) != "payload" {
		t.Fatalf("alias this = %v, want [payload]", c.AliasThis)
	}
	if len(c.Mixins) != 1 || res.Table.Strings.MustLookup(c.Mixins[0][0]) != "Signals" {
		t.Fatalf("mixins = %v, want [[Signals]]", c.Mixins)
	}
}

func TestExtractScopeNesting(t *testing.T) {
	tree := newTestTree()
	mod := tree.NewModule(sp(0, 100))

	inner := tree.Stmts.NewBlock(sp(40, 60), nil)
	outer := tree.Stmts.NewBlock(sp(20, 80), []ast.StmtID{inner})
	tree.PushDecl(mod, tree.Decls.NewFunction(ast.DeclFunction, sp(0, 90), ast.FunctionDecl{
		Name:     tree.Strings.Intern("run"),
		NameSpan: sp(5, 8),
		Body:     outer,
	}))

	res := ExtractModule(tree, mod, Options{File: 1})
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// module > function > outer block > inner block
	if got := res.Table.Scopes.Len(); got != 4 {
		t.Fatalf("scopes = %d, want 4", got)
	}
	for _, scope := range res.Table.Scopes.Data() {
		if !scope.Parent.IsValid() {
			continue
		}
		parent := res.Table.Scopes.Get(scope.Parent)
		if scope.Span.Start < parent.Span.Start || scope.Span.End > parent.Span.End {
			t.Fatalf("scope [%d,%d) escapes parent [%d,%d)",
				scope.Span.Start, scope.Span.End, parent.Span.Start, parent.Span.End)
		}
	}
}

func TestExtractNilTreePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("ExtractModule accepted a nil tree")
		}
	}()
	ExtractModule(nil, ast.ModuleID(1), Options{})
}

func TestExtractDeterministic(t *testing.T) {
	build := func() *Result {
		tree := newTestTree()
		mod := tree.NewModule(sp(0, 45))
		tree.PushDecl(mod, tree.Decls.NewModuleDecl(sp(0, 9), []source.StringID{tree.Strings.Intern("m")}))
		tree.PushDecl(mod, tree.Decls.NewVariableDecl(sp(10, 20), ast.VariableDecl{
			Type: pathType(tree, "int"),
			Declarators: []ast.Declarator{
				{Name: tree.Strings.Intern("x"), NameSpan: sp(14, 15)},
			},
		}))
		return ExtractModule(tree, mod, Options{File: 1})
	}
	first, second := build(), build()
	if first.SymbolCount != second.SymbolCount {
		t.Fatalf("symbol counts differ: %d vs %d", first.SymbolCount, second.SymbolCount)
	}
	if got, want := childNames(t, first.Table, first.RootSymbol), childNames(t, second.Table, second.RootSymbol); !equalStrings(got, want) {
		t.Fatalf("children differ: %v vs %v", got, want)
	}
}

package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"dsense/internal/ast"
	"dsense/internal/astio"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

func writeSnapshot(t *testing.T, dir, name, moduleName string) string {
	t.Helper()
	tree := ast.NewTree(ast.Hints{}, source.NewInterner())
	mod := tree.NewModule(source.Span{File: 1, End: 40})
	tree.PushDecl(mod, tree.Decls.NewModuleDecl(
		source.Span{File: 1, End: 9},
		[]source.StringID{tree.Strings.Intern(moduleName)},
	))
	intType := tree.Types.NewPath(source.Span{}, []ast.TypeSegment{
		{Name: tree.Strings.Intern("int")},
	})
	tree.PushDecl(mod, tree.Decls.NewVariableDecl(source.Span{File: 1, Start: 10, End: 20}, ast.VariableDecl{
		Type: intType,
		Declarators: []ast.Declarator{
			{Name: tree.Strings.Intern("x"), NameSpan: source.Span{File: 1, Start: 14, End: 15}},
		},
	}))

	path := filepath.Join(dir, name+astio.Ext)
	if err := astio.WriteFile(path, tree, moduleName+".d"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func rootName(t *testing.T, res *symbols.Result) string {
	t.Helper()
	root := res.Table.Symbols.Get(res.RootSymbol)
	if root == nil {
		t.Fatal("missing root symbol")
	}
	return res.Table.Strings.MustLookup(root.Name)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "app", "app")

	fileSet := source.NewFileSet()
	result, err := ExtractFile(path, fileSet, Options{Timings: true})
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if result.SourcePath != "app.d" {
		t.Fatalf("source path = %q, want app.d", result.SourcePath)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("modules = %d, want 1", len(result.Modules))
	}
	if got := rootName(t, result.Modules[0]); got != "app" {
		t.Fatalf("root = %q, want app", got)
	}
	if result.SymbolCount() != 2 {
		t.Fatalf("symbols = %d, want 2", result.SymbolCount())
	}
	if len(result.Timing.Phases) == 0 {
		t.Fatal("timings requested but none collected")
	}
	if fileSet.Len() != 1 {
		t.Fatalf("file set size = %d, want 1", fileSet.Len())
	}
}

func TestExtractFileMissing(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "absent.dast"), nil, Options{}); err == nil {
		t.Fatal("ExtractFile accepted a missing snapshot")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestExtractDir(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "alpha", "alpha")
	writeSnapshot(t, dir, "beta", "beta")
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeSnapshot(t, sub, "gamma", "gamma")

	fileSet, results, err := ExtractDir(context.Background(), dir, DirOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("ExtractDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// Sorted path order: alpha, beta, nested/gamma.
	wantRoots := []string{"alpha", "beta", "gamma"}
	for i, want := range wantRoots {
		if results[i].Err != nil {
			t.Fatalf("result %d: %v", i, results[i].Err)
		}
		if got := rootName(t, results[i].Modules[0]); got != want {
			t.Fatalf("result %d root = %q, want %q", i, got, want)
		}
	}
	if fileSet.Len() != 3 {
		t.Fatalf("file set size = %d, want 3", fileSet.Len())
	}
}

func TestExtractDirBadSnapshotDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "good", "good")
	if err := os.WriteFile(filepath.Join(dir, "broken"+astio.Ext), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sink := &recordingSink{}
	_, results, err := ExtractDir(context.Background(), dir, DirOptions{Progress: sink})
	if err != nil {
		t.Fatalf("ExtractDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// broken sorts before good
	if results[0].Err == nil {
		t.Fatal("broken snapshot did not report an error")
	}
	if results[1].Err != nil {
		t.Fatalf("good snapshot failed: %v", results[1].Err)
	}

	sawError, sawDone := false, false
	events := sink.snapshot()
	for _, evt := range events {
		if evt.Status == StatusError {
			sawError = true
		}
		if evt.Status == StatusDone {
			sawDone = true
		}
	}
	if !sawError || !sawDone {
		t.Fatalf("events missing error/done: %+v", events)
	}
}

func TestExtractDirEmpty(t *testing.T) {
	fileSet, results, err := ExtractDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("ExtractDir: %v", err)
	}
	if len(results) != 0 || fileSet.Len() != 0 {
		t.Fatalf("expected empty run, got %d results", len(results))
	}
}

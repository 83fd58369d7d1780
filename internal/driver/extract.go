// Package driver runs the extraction pipeline over parser snapshots: decode
// a .dast file, extract every module inside it, and hand the results to
// rendering or later passes.
package driver

import (
	"fmt"

	"dsense/internal/ast"
	"dsense/internal/astio"
	"dsense/internal/observ"
	"dsense/internal/render"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

// Options configures extraction for one run.
type Options struct {
	// Renderer is shared by every file; nil selects render.Printer.
	Renderer render.TextRenderer
	// Versions is the recognized conditional-compilation set; nil selects
	// the predefined defaults.
	Versions []string
	// Timings enables per-phase timing collection.
	Timings bool
}

// FileResult is the outcome of extracting one snapshot file.
type FileResult struct {
	// Path is the snapshot file path.
	Path string
	// SourcePath is the original source file recorded in the snapshot.
	SourcePath string
	FileID     source.FileID
	Tree       *ast.Tree
	// Modules holds one extraction result per module root in the snapshot,
	// in arena order.
	Modules []*symbols.Result
	Timing  observ.Report
	Err     error
}

// SymbolCount sums the diagnostic symbol counters across modules.
func (r *FileResult) SymbolCount() int {
	total := 0
	for _, m := range r.Modules {
		total += m.SymbolCount
	}
	return total
}

// ExtractFile decodes one snapshot and extracts all of its modules. The
// fileSet registers the snapshot's source path and the returned result is
// tagged with the assigned FileID.
func ExtractFile(path string, fileSet *source.FileSet, opts Options) (*FileResult, error) {
	if fileSet == nil {
		fileSet = source.NewFileSet()
	}

	timer := observ.NewTimer()
	decode := timer.Begin(string(StageDecode))
	tree, sourcePath, err := astio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	timer.End(decode, sourcePath)

	if sourcePath == "" {
		sourcePath = path
	}
	fileID := fileSet.Add(sourcePath)
	return extractTree(path, sourcePath, fileID, tree, timer, opts)
}

func extractTree(path, sourcePath string, fileID source.FileID, tree *ast.Tree, timer *observ.Timer, opts Options) (*FileResult, error) {
	result := &FileResult{
		Path:       path,
		SourcePath: sourcePath,
		FileID:     fileID,
		Tree:       tree,
	}

	extract := timer.Begin(string(StageExtract))
	moduleCount := tree.Modules.Arena.Len()
	for i := uint32(1); i <= moduleCount; i++ {
		result.Modules = append(result.Modules, symbols.ExtractModule(tree, ast.ModuleID(i), symbols.Options{
			File:     fileID,
			Renderer: opts.Renderer,
			Versions: opts.Versions,
		}))
	}
	timer.End(extract, fmt.Sprintf("%d modules, %d symbols", moduleCount, result.SymbolCount()))

	if opts.Timings {
		result.Timing = timer.Report()
	}
	return result, nil
}

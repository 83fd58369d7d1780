package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dsense/internal/astio"
	"dsense/internal/observ"
	"dsense/internal/source"
)

// DirOptions configures a directory-wide extraction run.
type DirOptions struct {
	Options
	// Jobs caps concurrent per-file extractions; 0 means one per CPU.
	Jobs int
	// Progress receives per-file events; nil disables reporting.
	Progress ProgressSink
}

// ListSnapshotFiles returns the sorted list of *.dast files under dir.
func ListSnapshotFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, astio.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sorted for a deterministic run order.
	sort.Strings(files)
	return files, nil
}

// ExtractDir extracts every snapshot under dir in parallel. Each file gets its
// own tree and table, so workers share nothing but the read-only FileSet
// prepared up front. Results are indexed by file, in sorted path order;
// per-file failures land in FileResult.Err rather than aborting the run.
func ExtractDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListSnapshotFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Decode serially: the FileSet hands out IDs and is not safe for
	// concurrent registration.
	type decoded struct {
		result *FileResult
		err    error
	}
	prepared := make([]decoded, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusQueued})
		result, err := decodeOne(path, fileSet)
		prepared[i] = decoded{result: result, err: err}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if prepared[i].err != nil {
				results[i] = FileResult{Path: path, Err: prepared[i].err}
				emit(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusError, Err: prepared[i].err})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageExtract, Status: StatusWorking})
			started := time.Now()

			pre := prepared[i].result
			timer := observ.NewTimer()
			result, err := extractTree(pre.Path, pre.SourcePath, pre.FileID, pre.Tree, timer, opts.Options)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				emit(opts.Progress, Event{File: path, Stage: StageExtract, Status: StatusError, Err: err})
				return nil
			}
			// Index i is unique per goroutine, no mutex needed.
			results[i] = *result
			emit(opts.Progress, Event{File: path, Stage: StageExtract, Status: StatusDone, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func decodeOne(path string, fileSet *source.FileSet) (*FileResult, error) {
	tree, sourcePath, err := astio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if sourcePath == "" {
		sourcePath = path
	}
	return &FileResult{
		Path:       path,
		SourcePath: sourcePath,
		FileID:     fileSet.Add(sourcePath),
		Tree:       tree,
	}, nil
}

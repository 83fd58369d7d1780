package source

import (
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet registers source files reported by the parser and hands out IDs.
// Index 0 is reserved for NoFileID.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 1),
		index: make(map[string]FileID),
	}
}

// Add registers a path and returns its ID. Registering the same path twice
// returns the existing ID.
func (fs *FileSet) Add(path string) FileID {
	normalized := filepath.ToSlash(path)
	if id, ok := fs.index[normalized]; ok {
		return id
	}
	value, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(value)
	fs.files = append(fs.files, File{ID: id, Path: normalized})
	fs.index[normalized] = id
	return id
}

// Get returns the file metadata for id, or nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if !id.IsValid() || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Lookup returns the ID registered for path, if any.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[filepath.ToSlash(path)]
	return id, ok
}

// Len counts registered files, excluding the sentinel.
func (fs *FileSet) Len() int { return len(fs.files) - 1 }

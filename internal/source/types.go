package source

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// NoFileID marks the absence of a file reference.
const NoFileID FileID = 0

// IsValid reports whether the file ID refers to a registered file.
func (id FileID) IsValid() bool { return id != NoFileID }

// File captures metadata for a single source file. The extraction pass never
// reads file contents; the parser reports paths and byte offsets, and this
// record only tags emitted location facts.
type File struct {
	ID   FileID
	Path string
}

// Stem returns the file name without directory or extension, used as the
// default name of a module that carries no module declaration.
func (f *File) Stem() string {
	base := f.Path
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' || base[i] == '\\' {
			base = base[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

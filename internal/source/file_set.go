package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ErrNoSuchFile is returned (wrapped) when a FileID is not known to a FileSet.
type ErrNoSuchFile struct{ ID FileID }

func (e ErrNoSuchFile) Error() string {
	return fmt.Sprintf("source: no such file: %d", e.ID)
}

// FileSet owns the bytes of every loaded source file, answers byte-offset
// <-> line/column queries, and tracks the base directory used to shorten
// paths in diagnostic output.
type FileSet struct {
	files   []File
	index   map[string]FileID // normalized path -> most recent id
	baseDir string
}

// NewFileSet creates an empty FileSet. Index 0 is reserved so NoFileID is
// never mistaken for a loaded file.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 1),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet with a preset base directory.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the base directory used to shorten relative paths.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the current base directory, defaulting to the process's
// working directory when none has been set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores a file from already-normalized bytes and returns a fresh
// FileID. A new FileID is minted even if path was added before.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(n)
	norm := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    norm,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
		lineIdx: buildLineIndex(content),
	})
	fs.index[norm] = id
	return id
}

// Load reads a file from disk, normalizing CRLF line endings and stripping a
// leading UTF-8 BOM, then stores it via Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return NoFileID, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if !utf8.Valid(content) {
		flags |= FileBadEncoding
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds a file that did not come from disk (test fixture, stdin,
// or a generated source), tagging it FileVirtual.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the File for id. It panics on an out-of-range id, matching
// the front-end's single-threaded, append-only FileSet contract: every
// FileID handed to a caller was minted by this same FileSet.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// file resolves id with bounds checking, used by the spec-level accessors
// below that return an error instead of panicking.
func (fs *FileSet) file(id FileID) (*File, error) {
	if !id.IsValid() || int(id) >= len(fs.files) {
		return nil, ErrNoSuchFile{ID: id}
	}
	return &fs.files[id], nil
}

// GetLatest returns the most recently added FileID for path, if any.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the File most recently added under path, if any.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Resolve converts a span's start and end byte offsets into line/column
// positions within its file.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return toLineCol(f.lineIdx, span.Start), toLineCol(f.lineIdx, span.End)
}

// LineCount returns the number of lines in file id.
func (fs *FileSet) LineCount(id FileID) (int, error) {
	f, err := fs.file(id)
	if err != nil {
		return 0, err
	}
	return len(f.lineIdx) + 1, nil
}

// LineCol converts a single byte offset into a 1-based line/column pair.
func (fs *FileSet) LineCol(id FileID, pos uint32) (LineCol, error) {
	f, err := fs.file(id)
	if err != nil {
		return LineCol{}, err
	}
	return toLineCol(f.lineIdx, pos), nil
}

// Slice returns the source text covered by span.
func (fs *FileSet) Slice(span Span) (string, error) {
	f, err := fs.file(span.File)
	if err != nil {
		return "", err
	}
	end := span.End
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	if span.Start > end {
		return "", nil
	}
	return string(f.Content[span.Start:end]), nil
}

// Path returns the stored path for id.
func (fs *FileSet) Path(id FileID) (string, error) {
	f, err := fs.file(id)
	if err != nil {
		return "", err
	}
	return f.Path, nil
}

// Line returns the raw text of the given 1-based line number, without the
// trailing newline. Returns "" if the line does not exist.
func (fs *FileSet) Line(id FileID, line uint32) (string, error) {
	f, err := fs.file(id)
	if err != nil {
		return "", err
	}
	return f.GetLine(line), nil
}

// GetLine returns the 1-based line's text without its trailing newline, or
// "" if the line does not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.lineIdx))
	if err != nil {
		panic(fmt.Errorf("source: line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.lineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if (lineNum - 1) < lenLineIdx {
		end = f.lineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path according to mode ("absolute", "relative",
// "basename", or "auto"); baseDir anchors the "relative" mode.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)
	default:
		return f.Path
	}
}

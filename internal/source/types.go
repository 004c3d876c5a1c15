// Package source owns file contents and source positions for the front-end:
// the FileSet, Span, and the process-wide Symbol interner.
package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

// NoFileID marks the absence of a file reference; index 0 of every FileSet
// is reserved so a zero FileID is never a loaded file.
const NoFileID FileID = 0

// IsValid reports whether the FileID refers to a loaded file.
func (id FileID) IsValid() bool { return id != NoFileID }

const (
	// FileVirtual indicates the file was added from memory (test, stdin,
	// or another generated source) rather than loaded from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileBadEncoding marks a file whose bytes are not valid UTF-8. The
	// lexer still runs over the raw bytes (so a caller still gets a token
	// stream), but a driver should surface BadEncoding once per file.
	FileBadEncoding
)

// LineCol is a human-readable, 1-based position within a file.
type LineCol struct {
	Line uint32
	Col  uint32
}

// File holds the normalized bytes of one source file plus the line index
// used to answer line/column queries.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
	lineIdx []uint32 // byte offset of each '\n', ascending
}

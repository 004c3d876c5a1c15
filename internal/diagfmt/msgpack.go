package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/source"
)

// Msgpack formats diagnostics as MessagePack: the same structure produced by
// JSON, encoded compactly for tools that consume binary diagnostic streams
// (e.g. a language server piping output over a socket) instead of text.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}

	return msgpack.NewEncoder(w).Encode(output)
}

package diagfmt

import (
	"io"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/source"
)

// Sarif accepts the inputs of a SARIF (v2.1.0) run but writes nothing to w;
// no SARIF output is produced.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) {
	_ = w
	_ = bag
	_ = fs
	_ = meta
}

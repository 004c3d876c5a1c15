package lexer

import "github.com/jacylang/jacy/internal/diag"

// ReporterAdapter adapts a diag.Bag for use by a Lexer's Options.Reporter.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards diagnostics into the
// adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return &diag.BagReporter{Bag: r.Bag}
}

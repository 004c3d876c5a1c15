package diag

import "fmt"

// InvariantPanic is raised when a stage detects its own bug (an invariant
// the stage maintains no longer holds) rather than a user error. Nothing in
// this module recovers it: the panic propagates out of the stage and the
// driver, and it is never converted into a diagnostic.
type InvariantPanic struct {
	Stage string
	Detail string
	Span   fmt.Stringer
}

func (p InvariantPanic) Error() string {
	if p.Span != nil {
		return fmt.Sprintf("%s: invariant violated at %s: %s", p.Stage, p.Span, p.Detail)
	}
	return fmt.Sprintf("%s: invariant violated: %s", p.Stage, p.Detail)
}

// Bug panics with an InvariantPanic. Stages call this only for conditions
// that can never happen if the stage itself is correct (e.g. a NodeId
// minted by this same stage missing from its own arena).
func Bug(stage, detail string, span fmt.Stringer) {
	panic(InvariantPanic{Stage: stage, Detail: detail, Span: span})
}

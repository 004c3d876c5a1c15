package ast

import "github.com/jacylang/jacy/internal/source"

// Attr describes a user attribute of the form `@name(args...)`.
type Attr struct {
	Name source.Symbol
	Args []ExprID
	Span source.Span
}

// Package sema assigns concrete types to literal expressions and exposes a
// shared type interner for HIR lowering to use.
//
// Full semantic analysis — generic instantiation, overload and magic-method
// resolution, implicit conversions, borrow checking — is out of scope here:
// Result's corresponding fields are simply left unset, and every HIR lowering
// site that consults them already guards on "missing" meaning "no special
// handling applies". Check only computes the minimal inputs HIR actually
// reads unconditionally: a type interner and literal expression types.
package sema

import (
	"context"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/source"
	"github.com/jacylang/jacy/internal/symbols"
	"github.com/jacylang/jacy/internal/types"
)

// ImplicitConversionKind classifies an implicit value conversion HIR must
// insert at a call, return, or assignment site.
type ImplicitConversionKind uint8

const (
	// ImplicitConversionSome wraps a value in an optional's Some tag.
	ImplicitConversionSome ImplicitConversionKind = iota
	// ImplicitConversionSuccess wraps a value in a result's Success tag.
	ImplicitConversionSuccess
	// ImplicitConversionTagUnion upcasts a value to a wider tag union.
	ImplicitConversionTagUnion
	// ImplicitConversionTo routes a value through a user-defined `to` conversion.
	ImplicitConversionTo
)

// ImplicitConversion describes a single implicit-conversion site.
type ImplicitConversion struct {
	Kind   ImplicitConversionKind
	Target types.TypeID
}

// IsOperandKind classifies the right-hand operand of an `is` expression.
type IsOperandKind uint8

const (
	// IsOperandType means the right-hand side names a type.
	IsOperandType IsOperandKind = iota
	// IsOperandTag means the right-hand side names a tag variant.
	IsOperandTag
)

// IsOperand describes the resolved right-hand operand of an `is` expression.
type IsOperand struct {
	Kind IsOperandKind
	Type types.TypeID
	Tag  source.Symbol
}

// HeirOperand describes the resolved operand types of a `heir` expression.
type HeirOperand struct {
	Left  types.TypeID
	Right types.TypeID
}

// Options configures Check.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Result
	Types    *types.Interner
}

// Result captures the inputs HIR lowering consumes from semantic analysis.
// Maps left nil mean "nothing resolved here" — lowering treats that exactly
// like an explicit miss.
type Result struct {
	TypeInterner *types.Interner
	ExprTypes    map[ast.ExprID]types.TypeID
	BindingTypes map[symbols.SymbolID]types.TypeID

	ImplicitConversions map[ast.ExprID]ImplicitConversion
	ToSymbols           map[ast.ExprID]symbols.SymbolID
	MagicBinarySymbols  map[ast.ExprID]symbols.SymbolID
	MagicUnarySymbols   map[ast.ExprID]symbols.SymbolID
	IndexSymbols        map[ast.ExprID]symbols.SymbolID
	IndexSetSymbols     map[ast.ExprID]symbols.SymbolID
	CloneSymbols        map[ast.ExprID]symbols.SymbolID
	IsOperands          map[ast.ExprID]IsOperand
	HeirOperands        map[ast.ExprID]HeirOperand
	BlockingCaptures    map[ast.ExprID][]symbols.SymbolID
	ItemScopes          map[ast.ItemID]symbols.ScopeID
	ExprScopes          map[ast.ExprID]symbols.ScopeID
}

// Check computes literal expression types over every expression in builder's
// arena and returns a Result wired with a type interner for HIR to use.
// fileID is accepted for symmetry with ParseFile/ResolveFile/Lower, since a
// future version may want to scope analysis to one file; today expression
// literal typing is file-independent.
func Check(_ context.Context, builder *ast.Builder, _ ast.FileID, opts Options) Result {
	interner := opts.Types
	if interner == nil {
		interner = types.NewInterner()
	}

	res := Result{
		TypeInterner: interner,
		ItemScopes:   itemScopes(opts.Symbols),
		ExprScopes:   exprScopes(opts.Symbols),
	}

	if builder == nil || builder.Exprs == nil {
		return res
	}

	builtins := interner.Builtins()
	n := builder.Exprs.Literals.Len()
	if n == 0 {
		return res
	}
	res.ExprTypes = make(map[ast.ExprID]types.TypeID, n)

	total := builder.Exprs.Arena.Len()
	for i := uint32(1); i <= total; i++ {
		expr := builder.Exprs.Arena.Get(i)
		if expr == nil || expr.Kind != ast.ExprLit {
			continue
		}
		lit := builder.Exprs.Literals.Get(uint32(expr.Payload))
		if lit == nil {
			continue
		}
		exprID := ast.ExprID(i)
		switch lit.Kind {
		case ast.ExprLitInt:
			res.ExprTypes[exprID] = builtins.Int
		case ast.ExprLitUint:
			res.ExprTypes[exprID] = builtins.Uint
		case ast.ExprLitFloat:
			res.ExprTypes[exprID] = builtins.Float
		case ast.ExprLitString:
			res.ExprTypes[exprID] = builtins.String
		case ast.ExprLitTrue, ast.ExprLitFalse:
			res.ExprTypes[exprID] = builtins.Bool
		case ast.ExprLitNothing:
			res.ExprTypes[exprID] = builtins.Nothing
		}
	}

	return res
}

// itemScopes maps each item ID to the scope the resolver entered for it
// (a function's parameter/body scope), by scanning the resolved scope table
// for ScopeOwnerItem entries. Returns nil when no symbol table is available.
func itemScopes(symRes *symbols.Result) map[ast.ItemID]symbols.ScopeID {
	if symRes == nil || symRes.Table == nil || symRes.Table.Scopes == nil {
		return nil
	}
	scopes := symRes.Table.Scopes
	n := scopes.Len()
	if n <= 0 {
		return nil
	}
	out := make(map[ast.ItemID]symbols.ScopeID, n)
	for i := 1; i <= n; i++ {
		scope := scopes.Get(symbols.ScopeID(i))
		if scope == nil || scope.Owner.Kind != symbols.ScopeOwnerItem {
			continue
		}
		if !scope.Owner.Item.IsValid() {
			continue
		}
		if _, exists := out[scope.Owner.Item]; !exists {
			out[scope.Owner.Item] = symbols.ScopeID(i)
		}
	}
	return out
}

// exprScopes maps each expression ID to the scope the resolver entered for
// it (a lambda's parameter/body scope), mirroring itemScopes for the one
// expression kind — ExprLambda — that owns its own scope rather than
// borrowing its enclosing item's.
func exprScopes(symRes *symbols.Result) map[ast.ExprID]symbols.ScopeID {
	if symRes == nil || symRes.Table == nil || symRes.Table.Scopes == nil {
		return nil
	}
	scopes := symRes.Table.Scopes
	n := scopes.Len()
	if n <= 0 {
		return nil
	}
	out := make(map[ast.ExprID]symbols.ScopeID, n)
	for i := 1; i <= n; i++ {
		scope := scopes.Get(symbols.ScopeID(i))
		if scope == nil || scope.Owner.Kind != symbols.ScopeOwnerExpr {
			continue
		}
		if !scope.Owner.Expr.IsValid() {
			continue
		}
		if _, exists := out[scope.Owner.Expr]; !exists {
			out[scope.Owner.Expr] = symbols.ScopeID(i)
		}
	}
	return out
}

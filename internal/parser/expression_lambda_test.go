package parser

import (
	"testing"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
)

func TestLambdaExpressions(t *testing.T) {
	t.Run("no_params", func(t *testing.T) {
		letItem, arenas := parseExprTestInput(t, "let f = fn() { 1; };")
		if letItem.Value == ast.NoExprID {
			t.Fatal("expected expression value")
		}

		expr := arenas.Exprs.Get(letItem.Value)
		if expr == nil || expr.Kind != ast.ExprLambda {
			t.Fatalf("expected lambda expression, got %v", expr)
		}

		data, ok := arenas.Exprs.Lambda(letItem.Value)
		if !ok || data == nil {
			t.Fatal("lambda payload missing")
		}
		if data.ParamsCount != 0 {
			t.Fatalf("expected 0 params, got %d", data.ParamsCount)
		}
		if !data.Body.IsValid() {
			t.Fatal("expected lambda body")
		}
	})

	t.Run("typed_params_and_return", func(t *testing.T) {
		letItem, arenas := parseExprTestInput(t, "let add = fn(x: int, y: int) -> int { x + y; };")
		if letItem.Value == ast.NoExprID {
			t.Fatal("expected expression value")
		}

		data, ok := arenas.Exprs.Lambda(letItem.Value)
		if !ok || data == nil {
			t.Fatal("lambda payload missing")
		}
		if data.ParamsCount != 2 {
			t.Fatalf("expected 2 params, got %d", data.ParamsCount)
		}
		if data.ReturnType == ast.NoTypeID {
			t.Fatal("expected explicit return type")
		}

		paramIDs := arenas.Items.GetFnParamIDRange(data.ParamsStart, data.ParamsCount)
		if len(paramIDs) != 2 {
			t.Fatalf("expected 2 param ids, got %d", len(paramIDs))
		}
		first := arenas.Items.FnParam(paramIDs[0])
		if first == nil || first.Name == 0 {
			t.Fatal("expected first param to have a name")
		}
	})

	t.Run("used_as_call_argument", func(t *testing.T) {
		letItem, arenas := parseExprTestInput(t, "let result = apply(fn(v: int) { v; });")
		if letItem.Value == ast.NoExprID {
			t.Fatal("expected expression value")
		}

		call := arenas.Exprs.Get(letItem.Value)
		if call == nil || call.Kind != ast.ExprCall {
			t.Fatalf("expected call expression, got %v", call)
		}

		callData, ok := arenas.Exprs.Call(letItem.Value)
		if !ok || len(callData.Args) != 1 {
			t.Fatal("expected one call argument")
		}

		arg := arenas.Exprs.Get(callData.Args[0].Value)
		if arg == nil || arg.Kind != ast.ExprLambda {
			t.Fatalf("expected lambda argument, got %v", arg)
		}
	})
}

func TestLambdaExpressionErrors(t *testing.T) {
	t.Run("missingOpenParen", func(t *testing.T) {
		_, _, bag := parseSource(t, "let f = fn { 1; };")
		if !bag.HasErrors() {
			t.Fatal("expected diagnostics, got none")
		}

		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.SynUnexpectedToken {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected SynUnexpectedToken diagnostic, got %+v", bag.Items())
		}
	})

	t.Run("arrowWithoutType", func(t *testing.T) {
		_, _, bag := parseSource(t, "let f = fn() -> { 1; };")
		if !bag.HasErrors() {
			t.Fatal("expected diagnostics, got none")
		}

		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.SynUnexpectedToken {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected SynUnexpectedToken diagnostic, got %+v", bag.Items())
		}
	})
}

package parser

import (
	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/fix"
	"github.com/jacylang/jacy/internal/token"
)

// parseLambdaExpr parses an anonymous function expression:
//
//	fn (params) -> Type? { body }
//
// Lambdas share their parameter-list and return-type grammar with a named
// fn item; they only drop the name and generics, since a closure captures
// its enclosing scope instead of being instantiated by name.
func (p *Parser) parseLambdaExpr() (ast.ExprID, bool) {
	fnTok := p.advance() // eat 'fn'
	startSpan := fnTok.Span

	openTok, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn' in lambda expression")
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon)
		return ast.NoExprID, false
	}

	params, paramCommas, paramsTrailing, closeSpan, paramsOK := p.parseFnParams()
	if !paramsOK {
		return ast.NoExprID, false
	}
	paramsSpan := openTok.Span.Cover(closeSpan)

	var returnType ast.TypeID
	var returnSpan = p.lastSpan.ZeroideToEnd()
	if p.at(token.Arrow) {
		arrowTok := p.advance()
		if p.at(token.LBrace) {
			p.emitDiagnostic(
				diag.SynUnexpectedToken,
				diag.SevError,
				arrowTok.Span,
				"expected type after '->' in lambda expression",
				func(b *diag.ReportBuilder) {
					if b == nil {
						return
					}
					fixID := fix.MakeFixID(diag.SynUnexpectedToken, arrowTok.Span)
					suggestion := fix.DeleteSpan(
						"remove '->' to simplify the lambda expression",
						arrowTok.Span,
						"",
						fix.WithID(fixID),
					)
					b.WithFixSuggestion(suggestion)
					b.WithNote(arrowTok.Span, "remove '->' to simplify the lambda expression")
				},
			)
			p.resyncUntil(token.LBrace, token.Semicolon)
			return ast.NoExprID, false
		}
		typeID, typeOK := p.parseTypePrefix()
		if !typeOK {
			p.resyncUntil(token.LBrace, token.Semicolon)
			return ast.NoExprID, false
		}
		returnType = typeID
		returnSpan = arrowTok.Span.Cover(p.arenas.Types.Get(typeID).Span)
	}
	if returnType == ast.NoTypeID {
		returnType = p.makeNothingType(returnSpan)
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after lambda parameter list")
		return ast.NoExprID, false
	}
	bodyID, bodyOK := p.parseBlock()
	if !bodyOK {
		return ast.NoExprID, false
	}

	paramsStart, paramsCount := p.arenas.Items.AllocateFnParams(params)
	finalSpan := startSpan
	if stmt := p.arenas.Stmts.Get(bodyID); stmt != nil {
		finalSpan = finalSpan.Cover(stmt.Span)
	}

	return p.arenas.Exprs.NewLambda(
		finalSpan,
		paramsStart,
		paramsCount,
		paramCommas,
		paramsTrailing,
		paramsSpan,
		returnSpan,
		returnType,
		bodyID,
	), true
}

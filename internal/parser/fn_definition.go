package parser

import (
	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/fix"
	"github.com/jacylang/jacy/internal/source"
	"github.com/jacylang/jacy/internal/token"
)

// fnSignature is the common shape shared by a top-level `fn`, a function
// nested in an extern block, and a contract's `fn` requirement. The three
// callers differ only in what they do with fnSignature.body afterward.
type fnSignature struct {
	name             source.Symbol
	nameSpan         source.Span
	generics         []source.Symbol
	genericCommas    []source.Span
	genericsTrailing bool
	genericsSpan     source.Span
	typeParams       []ast.TypeParamSpec
	params           []ast.FnParam
	paramCommas      []source.Span
	paramsTrailing   bool
	fnKwSpan         source.Span
	paramsSpan       source.Span
	returnSpan       source.Span
	semicolonSpan    source.Span
	returnType       ast.TypeID
	body             ast.StmtID
	flags            ast.FnModifier
	span             source.Span
}

// parseFnDefinition parses everything from `fn` through a block body or a
// terminating ';': name, generics, parameter list, optional return type,
// and the body. prefixSpan covers any attribute/modifier tokens already
// consumed before the `fn` keyword.
func (p *Parser) parseFnDefinition(prefixSpan source.Span, mods fnModifiers) (fnSignature, bool) {
	sig := fnSignature{flags: mods.flags}

	fnTok := p.advance() // eat 'fn'
	sig.fnKwSpan = fnTok.Span
	startSpan := fnTok.Span
	if prefixSpan.End > prefixSpan.Start {
		startSpan = prefixSpan.Cover(startSpan)
	}
	if mods.hasSpan {
		startSpan = mods.span.Cover(startSpan)
	}

	nameID, ok := p.parseIdent()
	if !ok {
		return sig, false
	}
	sig.name = nameID
	sig.nameSpan = p.lastSpan

	typeParams, generics, genericCommas, genericsTrailing, genericsSpan, ok := p.parseFnGenerics()
	if !ok {
		return sig, false
	}
	sig.typeParams = typeParams
	sig.generics = generics
	sig.genericCommas = genericCommas
	sig.genericsTrailing = genericsTrailing
	sig.genericsSpan = genericsSpan

	openTok, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon)
		return sig, false
	}

	params, paramCommas, paramsTrailing, closeSpan, paramsOK := p.parseFnParams()
	if !paramsOK {
		return sig, false
	}
	sig.params = params
	sig.paramCommas = paramCommas
	sig.paramsTrailing = paramsTrailing
	sig.paramsSpan = openTok.Span.Cover(closeSpan)

	if p.at(token.Arrow) {
		arrowTok := p.advance()
		if p.at(token.LBrace) {
			p.emitDiagnostic(
				diag.SynUnexpectedToken,
				diag.SevError,
				arrowTok.Span,
				"expected type after '->' in function signature",
				func(b *diag.ReportBuilder) {
					if b == nil {
						return
					}
					fixID := fix.MakeFixID(diag.SynUnexpectedToken, arrowTok.Span)
					suggestion := fix.DeleteSpan(
						"remove '->' to simplify the function signature",
						arrowTok.Span,
						"",
						fix.WithID(fixID),
					)
					b.WithFixSuggestion(suggestion)
					b.WithNote(arrowTok.Span, "remove '->' to simplify the function signature")
				},
			)
			p.resyncUntil(token.LBrace, token.Semicolon)
			return sig, false
		}
		returnType, typeOK := p.parseTypePrefix()
		if !typeOK {
			p.resyncUntil(token.LBrace, token.Semicolon)
			return sig, false
		}
		sig.returnType = returnType
		sig.returnSpan = arrowTok.Span.Cover(p.arenas.Types.Get(returnType).Span)
	}

	if sig.returnType == ast.NoTypeID {
		sig.returnType = p.makeNothingType(p.lastSpan.ZeroideToEnd())
	}

	if p.at(token.LBrace) {
		bodyStmtID, bodyOK := p.parseBlock()
		if !bodyOK {
			return sig, false
		}
		sig.body = bodyStmtID
	} else if p.at(token.Semicolon) {
		semiTok := p.advance()
		sig.semicolonSpan = semiTok.Span
	} else {
		semiTok, semiOK := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after function signature", func(b *diag.ReportBuilder) {
			if b == nil {
				return
			}
			insertSpan := p.lastSpan.ZeroideToEnd()
			fixID := fix.MakeFixID(diag.SynExpectSemicolon, insertSpan)
			suggestion := fix.InsertText(
				"insert ';' after function signature",
				insertSpan,
				";",
				"",
				fix.WithID(fixID),
				fix.WithKind(diag.FixKindRefactor),
				fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
			)
			b.WithFixSuggestion(suggestion)
			b.WithNote(insertSpan, "insert ';' after function signature")
		})
		if !semiOK {
			return sig, false
		}
		sig.semicolonSpan = semiTok.Span
	}

	sig.span = startSpan.Cover(p.lastSpan)
	return sig, true
}

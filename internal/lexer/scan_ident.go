package lexer

import "github.com/jacylang/jacy/internal/token"

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cur.mark()
	lx.cur.bump() // ident-start byte already checked by caller
	for isIdentCont(lx.cur.peek()) {
		lx.cur.bump()
	}
	span := lx.cur.spanFrom(start)
	text := string(lx.file.Content[span.Start:span.End])

	if text == "nothing" {
		return token.Token{Kind: token.NothingLit, Span: span, Lexeme: lx.in.Intern(text), Text: text}
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: span, Lexeme: lx.in.Intern(text), Text: text}
	}
	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: span, Lexeme: lx.in.Intern(text), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Lexeme: lx.in.Intern(text), Text: text}
}

package lexer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/token"
)

// scanString recognizes a double-quoted literal, with backslash escapes
// \n \r \t \\ \' \" \0 \xHH. The literal's raw lexeme (including quotes) is
// interned under its NFC-normalized form, so two string literals that spell
// the same text with different Unicode decompositions intern to the same
// Symbol; Text keeps the exact source bytes for diagnostics and the
// lexer round-trip invariant. Escape decoding is left to the AST builder,
// matching how numeric values are deferred.
func (lx *Lexer) scanString() token.Token {
	start := lx.cur.mark()
	lx.cur.bump() // opening quote
	lx.scanStringBody(start, false)
	span := lx.cur.spanFrom(start)
	lexeme := string(lx.file.Content[span.Start:span.End])
	return token.Token{Kind: token.StringLit, Span: span, Lexeme: lx.in.Intern(norm.NFC.String(lexeme)), Text: lexeme}
}

// scanFString recognizes an `f"..."` formatted string literal as a single
// token: the parser re-lexes the `{expr}` interpolations itself via a
// sub-lexer over this token's byte range.
func (lx *Lexer) scanFString() token.Token {
	start := lx.cur.mark()
	lx.cur.bump() // 'f'
	lx.cur.bump() // opening quote
	lx.scanStringBody(start, true)
	span := lx.cur.spanFrom(start)
	lexeme := string(lx.file.Content[span.Start:span.End])
	return token.Token{Kind: token.FStringLit, Span: span, Lexeme: lx.in.Intern(norm.NFC.String(lexeme)), Text: lexeme}
}

// scanStringBody consumes bytes up to and including the closing quote,
// reporting and bailing out on an unterminated literal. start marks the
// token's opening quote (or 'f' prefix), used only for error spans.
// interpolates is true for formatted strings, where `{expr}` blocks (and
// the `{{`/`}}` escapes) are skipped rather than treated as plain bytes.
func (lx *Lexer) scanStringBody(start mark, interpolates bool) {
	for {
		if lx.cur.eof() {
			lx.report(diag.LexUnterminatedString, lx.cur.spanFrom(start), "unterminated string literal")
			return
		}
		ch := lx.cur.peek()
		if ch == '"' {
			lx.cur.bump()
			return
		}
		if ch == '\n' {
			lx.report(diag.LexUnterminatedString, lx.cur.spanFrom(start), "unterminated string literal")
			return
		}
		if ch == '\\' {
			escStart := lx.cur.mark()
			lx.cur.bump()
			lx.scanEscape(escStart)
			continue
		}
		if interpolates && ch == '{' && lx.cur.peekAt(1) == '{' {
			lx.cur.bump()
			lx.cur.bump()
			continue
		}
		if interpolates && ch == '{' {
			lx.skipInterpolation()
			continue
		}
		lx.cur.bump()
	}
}

// skipInterpolation skips over a balanced `{...}` interpolation block
// inside a formatted string, without interpreting its contents: the parser
// re-lexes this range with its own sub-lexer once the whole fstring token
// has been produced.
func (lx *Lexer) skipInterpolation() {
	lx.cur.bump() // '{'
	depth := 1
	for depth > 0 {
		if lx.cur.eof() {
			return
		}
		switch lx.cur.peek() {
		case '{':
			depth++
			lx.cur.bump()
		case '}':
			depth--
			lx.cur.bump()
		case '"':
			nestedStart := lx.cur.mark()
			lx.cur.bump()
			lx.scanStringBody(nestedStart, false)
		default:
			lx.cur.bump()
		}
	}
}

var validEscapes = map[byte]bool{
	'n': true, 'r': true, 't': true, '\\': true, '\'': true, '"': true, '0': true, 'x': true,
}

func (lx *Lexer) scanEscape(escStart mark) {
	if lx.cur.eof() {
		lx.report(diag.LexBadEscape, lx.cur.spanFrom(escStart), "unterminated escape sequence")
		return
	}
	ch := lx.cur.bump()
	if !validEscapes[ch] {
		lx.report(diag.LexBadEscape, lx.cur.spanFrom(escStart), "unknown escape sequence")
		return
	}
	if ch == 'x' {
		for i := 0; i < 2; i++ {
			if !isHexDigit(lx.cur.peek()) {
				lx.report(diag.LexBadEscape, lx.cur.spanFrom(escStart), "expected two hex digits after \\x")
				return
			}
			lx.cur.bump()
		}
	}
}

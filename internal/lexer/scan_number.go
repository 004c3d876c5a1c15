package lexer

import (
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/token"
)

// unsignedSuffixes are the suffix spellings that make an integer literal
// UintLit instead of IntLit; every other valid int suffix (or no suffix at
// all) is IntLit. The base (dec/bin/oct/hex) is preserved only in Text.
var unsignedSuffixes = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "uint": true,
}

var validIntSuffixes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"int": true, "uint": true,
}

var validFloatSuffixes = map[string]bool{"f32": true, "f64": true}

// scanNumber recognizes integer literals with an optional base prefix
// (0b/0o/0x or decimal) and float literals (d*.d+ with an optional exponent,
// or d+ followed by an exponent, such as 1e5), each with
// an optional type suffix. Only the lexeme is recorded here — numeric value
// parsing is deferred to the AST builder.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.mark()

	if lx.cur.peek() == '0' {
		switch lx.cur.peekAt(1) {
		case 'b', 'B':
			lx.cur.bump()
			lx.cur.bump()
			lx.consumeDigits(isBinDigit)
			return lx.finishInt(start)
		case 'o', 'O':
			lx.cur.bump()
			lx.cur.bump()
			lx.consumeDigits(isOctDigit)
			return lx.finishInt(start)
		case 'x', 'X':
			lx.cur.bump()
			lx.cur.bump()
			lx.consumeDigits(isHexDigit)
			return lx.finishInt(start)
		}
	}

	// decimal integer part (also handles a leading '.' call from Lexer.scan,
	// which only dispatches here when a digit follows the dot)
	if lx.cur.peek() != '.' {
		lx.consumeDigits(isDecDigit)
	}

	isFloat := false
	if lx.cur.peek() == '.' && isDecDigit(lx.cur.peekAt(1)) {
		isFloat = true
		lx.cur.bump()
		lx.consumeDigits(isDecDigit)
	}

	if lx.cur.peek() == 'e' || lx.cur.peek() == 'E' {
		save := lx.cur.off
		lx.cur.bump()
		if lx.cur.peek() == '+' || lx.cur.peek() == '-' {
			lx.cur.bump()
		}
		if isDecDigit(lx.cur.peek()) {
			isFloat = true
			lx.consumeDigits(isDecDigit)
		} else {
			lx.cur.off = save // not an exponent after all
		}
	}

	if isFloat {
		return lx.finishNumber(start, token.FloatLit, validFloatSuffixes)
	}
	return lx.finishInt(start)
}

func (lx *Lexer) consumeDigits(pred func(byte) bool) {
	for pred(lx.cur.peek()) || lx.cur.peek() == '_' {
		lx.cur.bump()
	}
}

func isBinDigit(b byte) bool { return b == '0' || b == '1' }
func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }

// finishInt reads an optional suffix and decides IntLit vs UintLit from it.
func (lx *Lexer) finishInt(start mark) token.Token {
	suffix := lx.peekSuffixText()
	kind := token.IntLit
	if unsignedSuffixes[suffix] {
		kind = token.UintLit
	}
	return lx.finishNumber(start, kind, validIntSuffixes)
}

// peekSuffixText reports the identifier run immediately following the
// digits, without consuming it, so the caller can decide the token Kind
// before finishNumber consumes and validates it.
func (lx *Lexer) peekSuffixText() string {
	if !isIdentStart(lx.cur.peek()) {
		return ""
	}
	save := lx.cur.off
	start := lx.cur.mark()
	for isIdentCont(lx.cur.peek()) {
		lx.cur.bump()
	}
	span := lx.cur.spanFrom(start)
	text := string(lx.file.Content[span.Start:span.End])
	lx.cur.off = save
	return text
}

func (lx *Lexer) finishNumber(start mark, kind token.Kind, validSuffixes map[string]bool) token.Token {
	litSpan := lx.cur.spanFrom(start)
	lexeme := string(lx.file.Content[litSpan.Start:litSpan.End])

	var suffix string
	if isIdentStart(lx.cur.peek()) {
		suffixStart := lx.cur.mark()
		for isIdentCont(lx.cur.peek()) {
			lx.cur.bump()
		}
		suffixSpan := lx.cur.spanFrom(suffixStart)
		suffix = string(lx.file.Content[suffixSpan.Start:suffixSpan.End])
		if !validSuffixes[suffix] {
			lx.report(diag.LexBadSuffix, suffixSpan, "invalid literal suffix '"+suffix+"'")
		}
	}

	span := lx.cur.spanFrom(start)
	tok := token.Token{
		Kind:   kind,
		Span:   span,
		Lexeme: lx.in.Intern(lexeme),
		Text:   string(lx.file.Content[span.Start:span.End]),
	}
	if suffix != "" {
		tok.Suffix = lx.in.Intern(suffix)
	}
	return tok
}

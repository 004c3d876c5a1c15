package lexer

import (
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/token"
)

// scanOperator recognizes punctuation and operators by longest match.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cur.mark()
	b0 := lx.cur.bump()
	b1 := lx.cur.peek()
	b2 := lx.cur.peekAt(1)

	three := func(k token.Kind) token.Token {
		lx.cur.bump()
		lx.cur.bump()
		return lx.op(start, k)
	}
	two := func(k token.Kind) token.Token {
		lx.cur.bump()
		return lx.op(start, k)
	}
	one := func(k token.Kind) token.Token { return lx.op(start, k) }

	switch b0 {
	case '+':
		if b1 == '=' {
			return two(token.PlusAssign)
		}
		return one(token.Plus)
	case '-':
		switch {
		case b1 == '=':
			return two(token.MinusAssign)
		case b1 == '>':
			return two(token.Arrow)
		}
		return one(token.Minus)
	case '*':
		if b1 == '=' {
			return two(token.StarAssign)
		}
		return one(token.Star)
	case '/':
		if b1 == '=' {
			return two(token.SlashAssign)
		}
		return one(token.Slash)
	case '%':
		if b1 == '=' {
			return two(token.PercentAssign)
		}
		return one(token.Percent)
	case '&':
		switch {
		case b1 == '&':
			return two(token.AndAnd)
		case b1 == '=':
			return two(token.AmpAssign)
		}
		return one(token.Amp)
	case '|':
		switch {
		case b1 == '|':
			return two(token.OrOr)
		case b1 == '=':
			return two(token.PipeAssign)
		}
		return one(token.Pipe)
	case '^':
		if b1 == '=' {
			return two(token.CaretAssign)
		}
		return one(token.Caret)
	case '~':
		return one(token.Tilde)
	case '!':
		if b1 == '=' {
			return two(token.BangEq)
		}
		return one(token.Bang)
	case '=':
		switch {
		case b1 == '=':
			return two(token.EqEq)
		case b1 == '>':
			return two(token.FatArrow)
		}
		return one(token.Assign)
	case '<':
		switch {
		case b1 == '=' && b2 == '>':
			return three(token.Spaceship)
		case b1 == '=':
			return two(token.LtEq)
		case b1 == '<' && b2 == '=':
			return three(token.ShlAssign)
		case b1 == '<':
			return two(token.Shl)
		}
		return one(token.Lt)
	case '>':
		switch {
		case b1 == '=':
			return two(token.GtEq)
		case b1 == '>' && b2 == '=':
			return three(token.ShrAssign)
		case b1 == '>':
			return two(token.Shr)
		}
		return one(token.Gt)
	case '.':
		switch {
		case b1 == '.' && b2 == '=':
			return three(token.DotDotEq)
		case b1 == '.' && b2 == '.':
			return three(token.DotDotDot)
		case b1 == '.':
			return two(token.DotDot)
		}
		return one(token.Dot)
	case ':':
		switch {
		case b1 == ':':
			return two(token.ColonColon)
		case b1 == '=':
			return two(token.ColonAssign)
		}
		return one(token.Colon)
	case ';':
		return one(token.Semicolon)
	case ',':
		return one(token.Comma)
	case '?':
		if b1 == '?' {
			return two(token.QuestionQuestion)
		}
		return one(token.Question)
	case '@':
		return one(token.At)
	case '#':
		return one(token.Hash)
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	default:
		sp := lx.cur.spanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

func (lx *Lexer) op(start mark, k token.Kind) token.Token {
	sp := lx.cur.spanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/source"
	"github.com/jacylang/jacy/internal/token"
)

// maxTokenLength bounds a single token in bytes, to avoid pathological
// input (an unterminated literal spanning the whole file) producing one
// enormous token instead of a diagnostic.
const maxTokenLength = 64 * 1024

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter
}

// Lexer scans one file's content into a stream of Tokens, one at a time,
// with a single token of lookahead for the parser's Peek.
type Lexer struct {
	file *source.File
	in   *source.Interner
	cur  cursor
	opts Options
	look *token.Token
	hold []token.Trivia
}

// New creates a Lexer for file's content. Lexeme/Suffix symbols are
// interned into a private interner scoped to this Lexer: callers that need
// the token text in the shared, process-wide interner re-intern from
// Token.Text themselves (the parser does this for every identifier it
// keeps), so a Lexer never needs to be handed the shared interner.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		in:   source.NewInterner(),
		cur:  newCursor(file),
		opts: opts,
	}
}

// SetRange restricts scanning to the byte range [start, end) of the same
// file, discarding any buffered lookahead. Used to re-lex an interpolated
// expression nested inside a formatted string literal.
func (lx *Lexer) SetRange(start, end uint32) {
	lx.cur.off = start
	lx.cur.limit = end
	lx.look = nil
	lx.hold = nil
}

// Next returns the next significant token, consuming it.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// EmptySpan returns a zero-length span at the lexer's current position
// (after any buffered lookahead token, if present).
func (lx *Lexer) EmptySpan() source.Span {
	if lx.look != nil {
		return source.NewSpan(lx.file.ID, lx.look.Span.Start, lx.look.Span.Start)
	}
	return source.NewSpan(lx.file.ID, lx.cur.off, lx.cur.off)
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, span, msg, nil, nil)
}

// scan collects leading trivia and produces the next significant token.
func (lx *Lexer) scan() token.Token {
	leading := lx.collectTrivia()

	if lx.cur.eof() {
		tok := token.Token{Kind: token.EOF, Span: lx.cur.spanFrom(lx.cur.mark())}
		tok.Leading = leading
		return tok
	}

	ch := lx.cur.peek()
	var tok token.Token
	switch {
	case ch == 'f' && lx.cur.peekAt(1) == '"':
		tok = lx.scanFString()
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case isDecDigit(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDecDigit(lx.cur.peekAt(1)):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperator()
	}
	lx.enforceTokenLength(&tok)
	tok.Leading = leading
	return tok
}

func (lx *Lexer) enforceTokenLength(tok *token.Token) {
	length := tok.Span.End - tok.Span.Start
	if length <= maxTokenLength {
		return
	}
	msg := fmt.Sprintf("token length %d exceeds limit %d", length, maxTokenLength)
	lx.report(diag.LexTokenTooLong, tok.Span, msg)
	tok.Kind = token.Invalid
	if off, err := safecast.Conv[uint32](len(lx.file.Content)); err == nil {
		lx.cur.off = off
	}
}

// collectTrivia consumes runs of whitespace and line/block comments,
// recording each as a Trivia entry so doc comments and layout-sensitive
// directives (pragmas) can see what separated two tokens.
func (lx *Lexer) collectTrivia() []token.Trivia {
	var trivia []token.Trivia
	for {
		switch lx.cur.peek() {
		case ' ', '\t', '\r':
			start := lx.cur.mark()
			for lx.cur.peek() == ' ' || lx.cur.peek() == '\t' || lx.cur.peek() == '\r' {
				lx.cur.bump()
			}
			trivia = append(trivia, lx.mkTrivia(token.TriviaSpace, start))
		case '\n':
			start := lx.cur.mark()
			lx.cur.bump()
			trivia = append(trivia, lx.mkTrivia(token.TriviaNewline, start))
		case '/':
			switch lx.cur.peekAt(1) {
			case '/':
				trivia = append(trivia, lx.scanLineComment())
			case '*':
				trivia = append(trivia, lx.scanBlockComment())
			default:
				return trivia
			}
		default:
			return trivia
		}
	}
}

func (lx *Lexer) mkTrivia(kind token.TriviaKind, start mark) token.Trivia {
	span := lx.cur.spanFrom(start)
	return token.Trivia{Kind: kind, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
}

func (lx *Lexer) scanLineComment() token.Trivia {
	start := lx.cur.mark()
	lx.cur.bump()
	lx.cur.bump()
	doc := lx.cur.peek() == '/' && lx.cur.peekAt(1) != '/'
	for !lx.cur.eof() && lx.cur.peek() != '\n' {
		lx.cur.bump()
	}
	kind := token.TriviaLineComment
	if doc {
		kind = token.TriviaDocLine
	}
	return lx.mkTrivia(kind, start)
}

func (lx *Lexer) scanBlockComment() token.Trivia {
	start := lx.cur.mark()
	lx.cur.bump() // '/'
	lx.cur.bump() // '*'
	depth := 1
	for depth > 0 {
		if lx.cur.eof() {
			lx.report(diag.LexUnterminatedBlockComment, lx.cur.spanFrom(start), "unterminated block comment")
			break
		}
		switch {
		case lx.cur.peek() == '/' && lx.cur.peekAt(1) == '*':
			lx.cur.bump()
			lx.cur.bump()
			depth++
		case lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/':
			lx.cur.bump()
			lx.cur.bump()
			depth--
		default:
			lx.cur.bump()
		}
	}
	return lx.mkTrivia(token.TriviaBlockComment, start)
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDecDigit(b)
}

func isDecDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDecDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

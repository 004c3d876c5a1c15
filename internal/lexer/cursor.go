// Package lexer turns one source file's bytes into a flat Token stream,
// longest-match, with inline recovery: a malformed lexeme produces one
// diagnostic and an Invalid token, never an abort.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jacylang/jacy/internal/source"
)

// cursor is a byte-offset scanner over one file's content.
type cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

func newCursor(f *source.File) cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file content length overflow: %w", err))
	}
	return cursor{file: f, limit: limit}
}

func (c *cursor) eof() bool { return c.off >= c.limit }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

type mark uint32

func (c *cursor) mark() mark { return mark(c.off) }

func (c *cursor) spanFrom(m mark) source.Span {
	return source.NewSpan(c.file.ID, uint32(m), c.off)
}

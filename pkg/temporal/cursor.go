package temporal

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Cursor is the read position over a buffer holding one or more
// concatenated literals. Each Next* call consumes exactly one literal and
// leaves the cursor at the start of the following one. A failed call
// restores the position it started from.
//
// A Cursor is owned by a single consumer and must not be shared between
// goroutines.
type Cursor struct {
	src string
	lex *lexer.PeekingLexer
	err error
}

// NewCursor returns a cursor at the start of s.
func NewCursor(s string) *Cursor {
	c := &Cursor{src: s}
	lex, err := literalLexer.LexString("", s)
	if err == nil {
		c.lex, err = lexer.Upgrade(lex)
	}
	c.err = err
	return c
}

// Pos is the byte offset of the next unread token.
func (c *Cursor) Pos() int {
	if c.err != nil {
		return 0
	}
	return min(c.lex.Peek().Pos.Offset, len(c.src))
}

// HasNext reports whether anything other than whitespace remains.
func (c *Cursor) HasNext() bool {
	return c.err != nil || !c.lex.Peek().EOF()
}

// Remaining returns the unread part of the buffer.
func (c *Cursor) Remaining() string { return c.src[c.Pos():] }

// parse runs p at the cursor and hands the tree to build. The cursor is
// rewound to its checkpoint when either step fails.
func parse[G, T any](c *Cursor, p *participle.Parser[G], build func(*G) (T, error)) (T, error) {
	var zero T
	if c.err != nil {
		return zero, c.errorAt(0, c.err.Error())
	}
	cp := c.lex.MakeCheckpoint()
	tree, err := p.ParseFromLexer(c.lex, participle.AllowTrailing(true))
	if err != nil {
		c.lex.LoadCheckpoint(cp)
		return zero, c.syntaxError(err)
	}
	v, err := build(tree)
	if err != nil {
		c.lex.LoadCheckpoint(cp)
		return zero, err
	}
	return v, nil
}

func (c *Cursor) syntaxError(err error) *LiteralError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return c.errorAt(perr.Position().Offset, perr.Message())
	}
	return c.errorAt(c.Pos(), err.Error())
}

// errorAt describes what was expected and a short excerpt of what follows pos.
func (c *Cursor) errorAt(pos int, expected string) *LiteralError {
	found := c.src[min(max(pos, 0), len(c.src)):]
	if len(found) > 24 {
		found = found[:24] + "..."
	}
	return &LiteralError{Expected: expected, Found: found, Pos: pos}
}

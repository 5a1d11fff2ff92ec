package parse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ratherlargerobot/marwood"
	"github.com/ratherlargerobot/marwood/cell"
	"github.com/ratherlargerobot/marwood/lex"
)

// ErrIncomplete signals that the token stream ended in the middle of an
// expression. More input may complete it.
var ErrIncomplete = errors.New("unexpected end of input")

// SyntaxError is the error for input that can never become a valid
// expression, no matter what follows.
type SyntaxError struct {
	Message string
	Span    marwood.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}

// Cursor is a peekable position in a token slice. The parser consumes
// tokens through it; callers inspect it afterwards to learn how much of
// the input was read.
type Cursor struct {
	toks []lex.Token
	pos  int
}

// NewCursor wraps a scanned token slice.
func NewCursor(toks []lex.Token) *Cursor {
	return &Cursor{toks: toks}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (lex.Token, bool) {
	if c.pos >= len(c.toks) {
		return lex.Token{}, false
	}
	return c.toks[c.pos], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (lex.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// HasNext returns true if tokens remain.
func (c *Cursor) HasNext() bool {
	return c.pos < len(c.toks)
}

// Remaining returns the portion of text starting at the span of the first
// unconsumed token, or "" if the cursor is exhausted.
func (c *Cursor) Remaining(text string) string {
	tok, ok := c.Peek()
	if !ok {
		return ""
	}
	return text[tok.Span().From():]
}

// Parse reads one expression from the cursor.
func Parse(cur *Cursor) (*cell.Cell, error) {
	tok, ok := cur.Next()
	if !ok {
		return nil, ErrIncomplete
	}
	switch tok.TokType() {
	case lex.LeftParen:
		return parseList(cur, lex.RightParen)
	case lex.LeftBrack:
		return parseList(cur, lex.RightBrack)
	case lex.Quote:
		quoted, err := Parse(cur)
		if err != nil {
			return nil, err
		}
		return cell.List(cell.Symbol("quote"), quoted), nil
	case lex.Num:
		n, err := strconv.ParseInt(tok.Lexeme(), 10, 64)
		if err != nil {
			return nil, &SyntaxError{Message: fmt.Sprintf("invalid number %q", tok.Lexeme()), Span: tok.Span()}
		}
		return cell.Number(n), nil
	case lex.Bool:
		return cell.Bool(tok.Lexeme() == "#t"), nil
	case lex.Sym:
		return cell.Symbol(tok.Lexeme()), nil
	case lex.Dot:
		return nil, &SyntaxError{Message: "unexpected '.'", Span: tok.Span()}
	case lex.RightParen, lex.RightBrack:
		return nil, &SyntaxError{Message: fmt.Sprintf("unexpected %q", tok.Lexeme()), Span: tok.Span()}
	}
	return nil, &SyntaxError{Message: fmt.Sprintf("unexpected token %q", tok.Lexeme()), Span: tok.Span()}
}

// parseList reads list elements up to the matching closer. A '.' before
// the final element produces an improper list.
func parseList(cur *Cursor, closing marwood.TokType) (*cell.Cell, error) {
	var elems []*cell.Cell
	for {
		tok, ok := cur.Peek()
		if !ok {
			return nil, ErrIncomplete
		}
		switch tok.TokType() {
		case closing:
			cur.Next()
			return cell.List(elems...), nil
		case lex.RightParen, lex.RightBrack:
			return nil, &SyntaxError{Message: fmt.Sprintf("mismatched %q", tok.Lexeme()), Span: tok.Span()}
		case lex.Dot:
			cur.Next()
			if len(elems) == 0 {
				return nil, &SyntaxError{Message: "unexpected '.'", Span: tok.Span()}
			}
			tail, err := Parse(cur)
			if err != nil {
				return nil, err
			}
			end, ok := cur.Next()
			if !ok {
				return nil, ErrIncomplete
			}
			if end.TokType() != closing {
				return nil, &SyntaxError{Message: fmt.Sprintf("expected list end, found %q", end.Lexeme()), Span: end.Span()}
			}
			tracer().Debugf("improper list of %d element(s)", len(elems))
			return cell.ImproperList(elems, tail), nil
		default:
			elem, err := Parse(cur)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
	}
}

// One is a convenience that scans text, parses a single expression and
// returns it together with the unconsumed remainder of the text.
func One(text string) (*cell.Cell, string, error) {
	tokens, err := lex.Scan(text)
	if err != nil {
		return nil, "", err
	}
	cur := NewCursor(tokens)
	ast, err := Parse(cur)
	if err != nil {
		return nil, "", err
	}
	return ast, cur.Remaining(text), nil
}

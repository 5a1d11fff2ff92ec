package marwood

import "fmt"

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. The lexer defines the concrete
// token categories; this base package only fixes the contract between the
// scanner and the reader.
type TokType int

// Tokens represent input tokens. They are produced by the scanner and
// reflect terminals of the surface language.
//
// An example would be a token for a fixed integer:
//
//	TokType = lex.Num      // identifier for this kind of tokens
//	Lexeme  = "42"         // lexeme as it appeared in the input stream
//	Span    = 67…69        // byte positions in the input stream
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. Every token
// tracks which input positions it covers; the REPL uses the span of the
// first unconsumed token to carry trailing text into the next prompt.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

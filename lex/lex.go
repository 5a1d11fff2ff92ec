package lex

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"fmt"
	"sync"

	"github.com/ratherlargerobot/marwood"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "[", "]", "'", "."}

// Token categories. Single-char lexemes use their rune value as category.
const (
	EOF  marwood.TokType = -1
	Num  marwood.TokType = -2
	Bool marwood.TokType = -3
	Sym  marwood.TokType = -4

	LeftParen  marwood.TokType = '('
	RightParen marwood.TokType = ')'
	LeftBrack  marwood.TokType = '['
	RightBrack marwood.TokType = ']'
	Quote      marwood.TokType = '\''
	Dot        marwood.TokType = '.'
)

// Symbols may contain arithmetic glyphs and the like, so '+', '-5?' and
// '...' are all identifiers. Numbers take precedence over symbols for
// lexemes such as '-5'.
const symbolPattern = `\.\.\.|[a-zA-Z\+\-\*/%!\?=<>_&\^~][a-zA-Z0-9\+\-\*/%!\?=<>_&\^~\.]*`

var lexer *lexmachine.Lexer
var lexerErr error

var initOnce sync.Once // monitors one-time initialization
func initLexer() {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`;[^\n]*\n?`), skip) // skip comments
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`#t|#f`), makeToken(Bool))
		lexer.Add([]byte(`[\+\-]?[0-9]+`), makeToken(Num))
		lexer.Add([]byte(symbolPattern), makeToken(Sym))
		for _, lit := range literals {
			lexer.Add([]byte(`\`+lit), makeToken(marwood.TokType(lit[0])))
		}
		lexerErr = lexer.Compile()
	})
}

// Token is the scanner's token type.
type Token struct {
	toktype marwood.TokType
	lexeme  string
	span    marwood.Span
}

func (t Token) TokType() marwood.TokType {
	return t.toktype
}

func (t Token) Lexeme() string {
	return t.lexeme
}

func (t Token) Span() marwood.Span {
	return t.span
}

func (t Token) String() string {
	return fmt.Sprintf("%q%s", t.lexeme, t.span)
}

// Error is a scan error at a given input position.
type Error struct {
	Message string
	Pos     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// Scan tokenizes the entire input. Comments and whitespace are skipped.
// An input consisting only of skippable text yields an empty token slice.
func Scan(input string) ([]Token, error) {
	initLexer()
	if lexerErr != nil {
		tracer().Errorf("error compiling DFA: %v", lexerErr)
		return nil, lexerErr
	}
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok, err, eof := s.Next()
		if eof {
			return tokens, nil
		}
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, &Error{Message: "unrecognized input", Pos: ui.FailTC}
			}
			return nil, err
		}
		if tok == nil {
			continue
		}
		tokens = append(tokens, tok.(Token))
	}
}

func makeToken(t marwood.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{
			toktype: t,
			lexeme:  string(m.Bytes),
			span:    marwood.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))},
		}, nil
	}
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

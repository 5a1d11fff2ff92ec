package parse

import (
	"errors"
	"testing"

	"github.com/ratherlargerobot/marwood/cell"
	"github.com/ratherlargerobot/marwood/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, text string) *cell.Cell {
	t.Helper()
	toks, err := lex.Scan(text)
	require.NoError(t, err)
	ast, err := Parse(NewCursor(toks))
	require.NoError(t, err)
	return ast
}

func TestParseAtoms(t *testing.T) {
	assert.Equal(t, "42", parseText(t, "42").String())
	assert.Equal(t, "-7", parseText(t, "-7").String())
	assert.Equal(t, "#t", parseText(t, "#t").String())
	assert.Equal(t, "foo", parseText(t, "foo").String())
	assert.Equal(t, cell.NilType, parseText(t, "()").Type())
}

func TestParseList(t *testing.T) {
	ast := parseText(t, "(a (b c) 3)")
	assert.Equal(t, "(a (b c) 3)", ast.String())
	assert.True(t, ast.IsList())
}

func TestParseBracketList(t *testing.T) {
	assert.Equal(t, "((_ x) (car x))", parseText(t, "[(_ x) (car x)]").String())
}

func TestParseDottedPair(t *testing.T) {
	ast := parseText(t, "(a . b)")
	assert.Equal(t, "(a . b)", ast.String())
	assert.True(t, ast.IsImproperList())
	assert.Equal(t, "(1 2 . 3)", parseText(t, "(1 2 . 3)").String())
}

func TestParseQuoteSugar(t *testing.T) {
	assert.Equal(t, "(quote x)", parseText(t, "'x").String())
	assert.Equal(t, "(quote (a b))", parseText(t, "'(a b)").String())
	assert.Equal(t, "(quote (quote x))", parseText(t, "''x").String())
}

func TestParseIncomplete(t *testing.T) {
	for _, text := range []string{"(a (b", "(", "'", "(a . b", "(a ."} {
		toks, err := lex.Scan(text)
		require.NoError(t, err)
		_, err = Parse(NewCursor(toks))
		assert.True(t, errors.Is(err, ErrIncomplete), "expected incomplete for %q, got %v", text, err)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, text := range []string{")", "(a . b c)", "(a]", "(. a)", "."} {
		toks, err := lex.Scan(text)
		require.NoError(t, err)
		_, err = Parse(NewCursor(toks))
		var synErr *SyntaxError
		assert.True(t, errors.As(err, &synErr), "expected syntax error for %q, got %v", text, err)
	}
}

func TestCursorRemaining(t *testing.T) {
	text := "(quote a) (quote b)"
	toks, err := lex.Scan(text)
	require.NoError(t, err)
	cur := NewCursor(toks)
	ast, err := Parse(cur)
	require.NoError(t, err)
	assert.Equal(t, "(quote a)", ast.String())
	assert.Equal(t, "(quote b)", cur.Remaining(text))
	ast, err = Parse(cur)
	require.NoError(t, err)
	assert.Equal(t, "(quote b)", ast.String())
	assert.Equal(t, "", cur.Remaining(text))
}

func TestOne(t *testing.T) {
	ast, remaining, err := One("'(1 2) trailing")
	require.NoError(t, err)
	assert.Equal(t, "(quote (1 2))", ast.String())
	assert.Equal(t, "trailing", remaining)
}

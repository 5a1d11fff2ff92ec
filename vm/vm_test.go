package vm

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/ratherlargerobot/marwood/cell"
	"github.com/ratherlargerobot/marwood/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalText(t *testing.T) {
	vm := New()
	result, remaining, err := vm.EvalText("(quote a) (quote b)")
	require.NoError(t, err)
	assert.Equal(t, "a", result.String())
	assert.Equal(t, "(quote b)", remaining)
	result, remaining, err = vm.EvalText(remaining)
	require.NoError(t, err)
	assert.Equal(t, "b", result.String())
	assert.Equal(t, "", remaining)
}

func TestEvalTextIncomplete(t *testing.T) {
	vm := New()
	_, _, err := vm.EvalText("(car (quote (a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parse.ErrIncomplete))
}

func TestDefineSyntaxEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marwood.vm")
	defer teardown()
	//
	vm := New()
	result, err := vm.Eval(parseText(t, `
		(define-syntax second
			(syntax-rules ()
				[(_ x) (car (cdr x))]))`))
	require.NoError(t, err)
	assert.Equal(t, cell.VoidType, result.Type())
	assert.Equal(t, "2", evalText(t, vm, "(second '(1 2 3))").String())
}

func TestMacroExpandsIntoMacroUse(t *testing.T) {
	vm := New()
	_, err := vm.Eval(parseText(t, `
		(define-syntax third
			(syntax-rules ()
				[(_ x) (second (cdr x))]))`))
	require.NoError(t, err)
	_, err = vm.Eval(parseText(t, `
		(define-syntax second
			(syntax-rules ()
				[(_ x) (car (cdr x))]))`))
	require.NoError(t, err)
	assert.Equal(t, "3", evalText(t, vm, "(third '(1 2 3))").String())
}

func TestPreludeMacros(t *testing.T) {
	vm := New()
	assert.Equal(t, "2", evalText(t, vm, "(cadr '(1 2 3))").String())
	assert.Equal(t, "1", evalText(t, vm, "(caar '((1 2) 3))").String())
	assert.Equal(t, "(3)", evalText(t, vm, "(cddr '(1 2 3))").String())
	assert.Equal(t, "9", evalText(t, vm, "(first '(9 8))").String())
	assert.Equal(t, "(8)", evalText(t, vm, "(rest '(9 8))").String())
	assert.Equal(t, "3", evalText(t, vm, "(caddr '(1 2 3))").String())
}

func TestMisplacedKeywords(t *testing.T) {
	vm := New()
	_, err := vm.Eval(parseText(t, "cadr"))
	require.Error(t, err)
	assert.True(t, IsKind(err, MisplacedMacroKeyword))
	_, err = vm.Eval(parseText(t, "car"))
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidSyntactic))
}

func TestBadUseOfMacroReportsKeyword(t *testing.T) {
	vm := New()
	_, err := vm.Eval(parseText(t, "(cadr)"))
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidSyntax))
	assert.Contains(t, err.Error(), "cadr")
}

func TestCompileMemo(t *testing.T) {
	vm := New()
	memoSize := len(vm.memo)
	evalText(t, vm, "(car '(1 2))")
	evalText(t, vm, "(car '(1 2))")
	assert.Equal(t, memoSize+1, len(vm.memo), "expected one memo entry for repeated evals")
	evalText(t, vm, "(cdr '(1 2))")
	assert.Equal(t, memoSize+2, len(vm.memo))
}

func TestDefineSyntaxInvalidatesMemo(t *testing.T) {
	vm := New()
	_, err := vm.Eval(parseText(t, `
		(define-syntax id
			(syntax-rules ()
				[(_ x) (quote first-version)]))`))
	require.NoError(t, err)
	assert.Equal(t, "first-version", evalText(t, vm, "(id 1)").String())
	_, err = vm.Eval(parseText(t, `
		(define-syntax id
			(syntax-rules ()
				[(_ x) (quote second-version)]))`))
	require.NoError(t, err)
	assert.Equal(t, "second-version", evalText(t, vm, "(id 1)").String())
}

func TestGcKeepsRootsAndFreesGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marwood.vm")
	defer teardown()
	//
	vm := New()
	evalText(t, vm, "(quote (1 2 3))")
	freeBefore := vm.heap.FreeCount()
	vm.Gc()
	assert.GreaterOrEqual(t, vm.heap.FreeCount(), freeBefore)
	// memoized programs and interned symbols survive; evaluation still works
	assert.Equal(t, "(1 2 3)", evalText(t, vm, "(quote (1 2 3))").String())
	assert.Equal(t, "2", evalText(t, vm, "(cadr '(1 2 3))").String())
	vm.Gc()
	vm.Gc()
	assert.Equal(t, "3", evalText(t, vm, "(caddr '(1 2 3))").String())
}

func TestGlobals(t *testing.T) {
	vm := New()
	vm.DefineGlobal("answer", cell.Number(42))
	value, ok := vm.Global("answer")
	require.True(t, ok)
	assert.Equal(t, "42", value.String())
	_, ok = vm.Global("missing")
	assert.False(t, ok)
	vm.Gc()
	value, ok = vm.Global("answer")
	require.True(t, ok)
	assert.Equal(t, "42", value.String())
}

func TestHeapAccessor(t *testing.T) {
	vm := New()
	require.NotNil(t, vm.Heap())
	assert.Greater(t, vm.Heap().FreeCount(), 0)
}

package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListConstruction(t *testing.T) {
	l := List(Symbol("a"), Number(1), Number(2))
	assert.Equal(t, "(a 1 2)", l.String())
	assert.True(t, l.IsList())
	assert.False(t, l.IsImproperList())
	car, ok := l.Car()
	assert.True(t, ok)
	assert.Equal(t, "a", car.String())
}

func TestEmptyList(t *testing.T) {
	l := List()
	assert.Equal(t, NilType, l.Type())
	assert.Equal(t, "()", l.String())
	_, ok := l.Car()
	assert.False(t, ok)
}

func TestImproperList(t *testing.T) {
	l := ImproperList([]*Cell{Symbol("a")}, Symbol("b"))
	assert.Equal(t, "(a . b)", l.String())
	assert.False(t, l.IsList())
	assert.True(t, l.IsImproperList())

	l = ImproperList([]*Cell{Number(1), Number(2)}, Number(3))
	assert.Equal(t, "(1 2 . 3)", l.String())
}

func TestEqual(t *testing.T) {
	assert.True(t, List(Symbol("a"), Number(1)).Equal(List(Symbol("a"), Number(1))))
	assert.False(t, List(Symbol("a"), Number(1)).Equal(List(Symbol("a"), Number(2))))
	assert.False(t, Symbol("a").Equal(Number(1)))
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(Bool(false)))
	assert.True(t, Nil().Equal(Nil()))
	assert.False(t, List(Symbol("a")).Equal(ImproperList([]*Cell{Symbol("a")}, Symbol("b"))))
}

func TestIter(t *testing.T) {
	l := List(Number(1), Number(2), Number(3))
	it := l.Iter()
	assert.Equal(t, 3, it.Len())
	e, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, "1", e.String())
	peeked, ok := it.Peek()
	assert.True(t, ok)
	assert.Equal(t, "2", peeked.String())
	assert.Equal(t, 2, it.Len())
	it.Next()
	it.Next()
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestIterImproperYieldsTerminalAtom(t *testing.T) {
	l := ImproperList([]*Cell{Symbol("a")}, Symbol("b"))
	it := l.Iter()
	assert.Equal(t, 2, it.Len())
	e, _ := it.Next()
	assert.Equal(t, "a", e.String())
	e, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, "b", e.String())
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestIterAtomYieldsNothing(t *testing.T) {
	it := Number(42).Iter()
	_, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Len())
}

func TestCollectVec(t *testing.T) {
	v := List(Symbol("a"), Symbol("b"), Symbol("c")).CollectVec()
	assert.Len(t, v, 3)
	assert.Equal(t, "b", v[1].String())
	assert.Nil(t, Nil().CollectVec())
	v = Symbol("x").CollectVec()
	assert.Len(t, v, 1)
}

func TestNestedString(t *testing.T) {
	l := List(Symbol("+"), List(Number(1), Number(2)), Bool(false))
	assert.Equal(t, "(+ (1 2) #f)", l.String())
}

func TestAtoms(t *testing.T) {
	assert.Equal(t, "#<void>", Void().String())
	assert.Equal(t, "#<undefined>", Undefined().String())
	assert.Equal(t, "#t", Bool(true).String())
	n, ok := Number(-7).Num()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), n)
	name, ok := Symbol("foo").Name()
	assert.True(t, ok)
	assert.Equal(t, "foo", name)
	_, ok = Number(1).Name()
	assert.False(t, ok)
}

package cell

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"bytes"
	"fmt"
	"strconv"
)

// Type is a type specifier for a cell.
type Type int

//go:generate stringer -type Type
const (
	UndefinedType Type = iota
	VoidType
	NilType
	BoolType
	NumberType
	SymbolType
	PairType
)

// Cell is the surface AST value produced by the reader and consumed by the
// compiler and the macro transformer. Cells are immutable after construction;
// pairs chain into proper lists (cdr spine ending in nil) or improper lists
// (ending in a non-pair atom).
type Cell struct {
	typ  Type
	num  int64
	text string
	car  *Cell
	cdr  *Cell
}

var (
	undefinedCell = &Cell{typ: UndefinedType}
	voidCell      = &Cell{typ: VoidType}
	nilCell       = &Cell{typ: NilType}
	trueCell      = &Cell{typ: BoolType, num: 1}
	falseCell     = &Cell{typ: BoolType}
)

// Undefined returns the undefined cell.
func Undefined() *Cell { return undefinedCell }

// Void returns the void cell. The REPL suppresses output for void results.
func Void() *Cell { return voidCell }

// Nil returns the empty list cell.
func Nil() *Cell { return nilCell }

// Bool returns the cell for a boolean value.
func Bool(b bool) *Cell {
	if b {
		return trueCell
	}
	return falseCell
}

// Number returns a fixed integer cell.
func Number(n int64) *Cell {
	return &Cell{typ: NumberType, num: n}
}

// Symbol returns a symbol cell for the given identifier.
func Symbol(s string) *Cell {
	return &Cell{typ: SymbolType, text: s}
}

// Cons returns a pair of car and cdr.
func Cons(car *Cell, cdr *Cell) *Cell {
	return &Cell{typ: PairType, car: car, cdr: cdr}
}

// List builds a proper list from the given elements. An empty argument
// list yields nil.
func List(elems ...*Cell) *Cell {
	list := nilCell
	for i := len(elems) - 1; i >= 0; i-- {
		list = Cons(elems[i], list)
	}
	return list
}

// ImproperList builds a list of elems whose final cdr is tail instead
// of nil. It needs at least one element to hang the tail on.
func ImproperList(elems []*Cell, tail *Cell) *Cell {
	if len(elems) == 0 {
		return tail
	}
	list := Cons(elems[len(elems)-1], tail)
	for i := len(elems) - 2; i >= 0; i-- {
		list = Cons(elems[i], list)
	}
	return list
}

// Type returns a cell's type.
func (c *Cell) Type() Type {
	return c.typ
}

// IsSymbol returns true if the cell is a symbol.
func (c *Cell) IsSymbol() bool {
	return c.typ == SymbolType
}

// IsSymbolNamed returns true if the cell is the symbol name.
func (c *Cell) IsSymbolNamed(name string) bool {
	return c.typ == SymbolType && c.text == name
}

// IsPair returns true if the cell is a pair.
func (c *Cell) IsPair() bool {
	return c.typ == PairType
}

// IsNil returns true if the cell is the empty list.
func (c *Cell) IsNil() bool {
	return c.typ == NilType
}

// IsList returns true if the cell heads a proper list, i.e. its cdr
// spine ends in nil.
func (c *Cell) IsList() bool {
	for c.typ == PairType {
		c = c.cdr
	}
	return c.typ == NilType
}

// IsImproperList returns true if the cell heads an improper list, i.e. its
// cdr spine ends in an atom other than nil.
func (c *Cell) IsImproperList() bool {
	if c.typ != PairType {
		return false
	}
	return !c.IsList()
}

// Car returns the car of a pair, or false if the cell is not a pair.
func (c *Cell) Car() (*Cell, bool) {
	if c.typ != PairType {
		return nil, false
	}
	return c.car, true
}

// Cdr returns the cdr of a pair, or false if the cell is not a pair.
func (c *Cell) Cdr() (*Cell, bool) {
	if c.typ != PairType {
		return nil, false
	}
	return c.cdr, true
}

// Num returns the value of a number cell.
func (c *Cell) Num() (int64, bool) {
	if c.typ != NumberType {
		return 0, false
	}
	return c.num, true
}

// Name returns the identifier of a symbol cell.
func (c *Cell) Name() (string, bool) {
	if c.typ != SymbolType {
		return "", false
	}
	return c.text, true
}

// IsTrue returns the value of a boolean cell. Everything that is not
// the false cell counts as true.
func (c *Cell) IsTrue() bool {
	return !(c.typ == BoolType && c.num == 0)
}

// Equal compares two cells structurally.
func (c *Cell) Equal(other *Cell) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil || c.typ != other.typ {
		return false
	}
	switch c.typ {
	case NumberType, BoolType:
		return c.num == other.num
	case SymbolType:
		return c.text == other.text
	case PairType:
		return c.car.Equal(other.car) && c.cdr.Equal(other.cdr)
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// Iter walks the elements of a list. A proper list yields its elements in
// order; an improper list additionally yields the terminal non-pair atom.
// Atoms and nil yield nothing.
type Iter struct {
	cur *Cell
}

// Iter returns an iterator over the list elements of c.
func (c *Cell) Iter() *Iter {
	if c == nil || c.typ != PairType {
		return &Iter{cur: nil}
	}
	return &Iter{cur: c}
}

// Next yields the next list element, or false when the list is exhausted.
func (it *Iter) Next() (*Cell, bool) {
	if it.cur == nil || it.cur.typ == NilType {
		return nil, false
	}
	if it.cur.typ != PairType {
		// terminal atom of an improper list
		last := it.cur
		it.cur = nil
		return last, true
	}
	elem := it.cur.car
	it.cur = it.cur.cdr
	return elem, true
}

// Peek returns the next list element without consuming it.
func (it *Iter) Peek() (*Cell, bool) {
	save := it.cur
	elem, ok := it.Next()
	it.cur = save
	return elem, ok
}

// Len returns the number of elements still to be yielded, including the
// peeked one. The ellipsis bookkeeping in the macro transformer counts
// remaining pattern and expression elements with this.
func (it *Iter) Len() int {
	save := it.cur
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		n++
	}
	it.cur = save
	return n
}

// CollectVec returns a flat slice of the cells of a list, in list order.
// An atom collects to a single-element slice.
func (c *Cell) CollectVec() []*Cell {
	if c.typ != PairType {
		if c.typ == NilType {
			return nil
		}
		return []*Cell{c}
	}
	var v []*Cell
	it := c.Iter()
	for {
		elem, ok := it.Next()
		if !ok {
			return v
		}
		v = append(v, elem)
	}
}

// --- Printing --------------------------------------------------------------

// String writes a cell in external representation.
func (c *Cell) String() string {
	if c == nil {
		return "()"
	}
	switch c.typ {
	case UndefinedType:
		return "#<undefined>"
	case VoidType:
		return "#<void>"
	case NilType:
		return "()"
	case BoolType:
		if c.num != 0 {
			return "#t"
		}
		return "#f"
	case NumberType:
		return strconv.FormatInt(c.num, 10)
	case SymbolType:
		return c.text
	case PairType:
		var b bytes.Buffer
		b.WriteString("(")
		cur := c
		first := true
		for cur.typ == PairType {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(cur.car.String())
			cur = cur.cdr
		}
		if cur.typ != NilType {
			b.WriteString(" . ")
			b.WriteString(cur.String())
		}
		b.WriteString(")")
		return b.String()
	}
	return fmt.Sprintf("#<%d>", c.typ)
}

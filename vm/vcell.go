package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"fmt"
	"strconv"

	"github.com/ratherlargerobot/marwood/cell"
)

// VCellType is a type specifier for heap-resident values.
type VCellType int

const (
	UndefinedType VCellType = iota
	VoidType
	NilType
	BoolType
	FixedNumType
	SymbolType
	PairType
	PtrType
	OpCodeType
	LambdaType
	AccType
	EnvSlotType
)

// VCell is a heap-resident tagged value — the in-memory representation the
// VM computes over. A Ptr never points to another Ptr, and a Pair's
// children are raw slot indices whose contents are non-Ptr vcells. The
// heap's Put enforces both invariants.
type VCell struct {
	typ    VCellType
	num    int64
	b      bool
	sym    string
	car    int
	cdr    int
	ptr    int
	op     OpCode
	lambda []VCell
}

// Undefined returns the undefined vcell, the content of free heap slots.
func Undefined() VCell { return VCell{typ: UndefinedType} }

// Void returns the void vcell.
func Void() VCell { return VCell{typ: VoidType} }

// Nil returns the empty-list vcell.
func Nil() VCell { return VCell{typ: NilType} }

// Bool returns a boolean vcell.
func Bool(b bool) VCell { return VCell{typ: BoolType, b: b} }

// FixedNum returns a fixed integer vcell.
func FixedNum(n int64) VCell { return VCell{typ: FixedNumType, num: n} }

// Symbol returns a symbol vcell. Symbols are interned by the heap; a
// symbol slot is the unique home of its string.
func Symbol(s string) VCell { return VCell{typ: SymbolType, sym: s} }

// Pair returns a pair vcell of two raw slot indices.
func Pair(car int, cdr int) VCell { return VCell{typ: PairType, car: car, cdr: cdr} }

// Ptr returns a heap pointer vcell carrying a slot index.
func Ptr(p int) VCell { return VCell{typ: PtrType, ptr: p} }

// Op returns an opcode vcell.
func Op(op OpCode) VCell { return VCell{typ: OpCodeType, op: op} }

// Lambda returns a vcell holding a compiled opcode sequence as a single
// heap value. The instruction pointer addresses programs through it.
func Lambda(program []VCell) VCell { return VCell{typ: LambdaType, lambda: program} }

// Acc is the VM-only sentinel referring to the accumulator register.
func Acc() VCell { return VCell{typ: AccType} }

// EnvSlot is the VM-only sentinel referring to an environment slot.
func EnvSlot(i int) VCell { return VCell{typ: EnvSlotType, ptr: i} }

// Type returns the vcell's type.
func (v VCell) Type() VCellType {
	return v.typ
}

// IsPtr returns true if the vcell is a heap pointer.
func (v VCell) IsPtr() bool {
	return v.typ == PtrType
}

// AsPtr returns the slot index of a Ptr vcell.
func (v VCell) AsPtr() (int, bool) {
	if v.typ != PtrType {
		return 0, false
	}
	return v.ptr, true
}

// AsPair returns the car and cdr slot indices of a pair vcell.
func (v VCell) AsPair() (int, int, bool) {
	if v.typ != PairType {
		return 0, 0, false
	}
	return v.car, v.cdr, true
}

// AsFixedNum returns the value of a fixed integer vcell.
func (v VCell) AsFixedNum() (int64, bool) {
	if v.typ != FixedNumType {
		return 0, false
	}
	return v.num, true
}

// AsSymbol returns the string of a symbol vcell.
func (v VCell) AsSymbol() (string, bool) {
	if v.typ != SymbolType {
		return "", false
	}
	return v.sym, true
}

// AsOpCode returns the opcode of an opcode vcell.
func (v VCell) AsOpCode() (OpCode, bool) {
	if v.typ != OpCodeType {
		return 0, false
	}
	return v.op, true
}

// AsLambda returns the opcode sequence of a lambda vcell.
func (v VCell) AsLambda() ([]VCell, bool) {
	if v.typ != LambdaType {
		return nil, false
	}
	return v.lambda, true
}

// Equal compares two vcells. Lambda vcells compare element-wise.
func (v VCell) Equal(other VCell) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case BoolType:
		return v.b == other.b
	case FixedNumType:
		return v.num == other.num
	case SymbolType:
		return v.sym == other.sym
	case PairType:
		return v.car == other.car && v.cdr == other.cdr
	case PtrType, EnvSlotType:
		return v.ptr == other.ptr
	case OpCodeType:
		return v.op == other.op
	case LambdaType:
		if len(v.lambda) != len(other.lambda) {
			return false
		}
		for i := range v.lambda {
			if !v.lambda[i].Equal(other.lambda[i]) {
				return false
			}
		}
		return true
	}
	return true
}

func (v VCell) String() string {
	switch v.typ {
	case UndefinedType:
		return "#<undefined>"
	case VoidType:
		return "#<void>"
	case NilType:
		return "()"
	case BoolType:
		if v.b {
			return "#t"
		}
		return "#f"
	case FixedNumType:
		return strconv.FormatInt(v.num, 10)
	case SymbolType:
		return v.sym
	case PairType:
		return fmt.Sprintf("#<pair %d %d>", v.car, v.cdr)
	case PtrType:
		return fmt.Sprintf("[%d]", v.ptr)
	case OpCodeType:
		return v.op.String()
	case LambdaType:
		return fmt.Sprintf("#<lambda %d>", len(v.lambda))
	case AccType:
		return "%acc"
	case EnvSlotType:
		return fmt.Sprintf("env[%d]", v.ptr)
	}
	return fmt.Sprintf("#<vcell %d>", v.typ)
}

// fromCellAtom maps an atomic surface cell to its vcell representation.
// Pairs are materialized slot-wise by the heap and have no direct mapping.
func fromCellAtom(c *cell.Cell) (VCell, bool) {
	switch c.Type() {
	case cell.UndefinedType:
		return Undefined(), true
	case cell.VoidType:
		return Void(), true
	case cell.NilType:
		return Nil(), true
	case cell.BoolType:
		return Bool(c.IsTrue()), true
	case cell.NumberType:
		n, _ := c.Num()
		return FixedNum(n), true
	case cell.SymbolType:
		s, _ := c.Name()
		return Symbol(s), true
	}
	return Undefined(), false
}

package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"bytes"
	"strings"

	"github.com/ratherlargerobot/marwood/cell"
)

// carOf returns the car of c, or an ExpectedPair error naming the datum.
func carOf(c *cell.Cell) (*cell.Cell, error) {
	car, ok := c.Car()
	if !ok {
		return nil, errExpectedPair(c.String())
	}
	return car, nil
}

// cdrOf returns the cdr of c, or an ExpectedPair error naming the datum.
func cdrOf(c *cell.Cell) (*cell.Cell, error) {
	cdr, ok := c.Cdr()
	if !ok {
		return nil, errExpectedPair(c.String())
	}
	return cdr, nil
}

// Compile translates a cell into an opcode sequence terminated by Halt.
// Operand slots immediately follow their opcode.
func (vm *Vm) Compile(c *cell.Cell) ([]VCell, error) {
	var bc []VCell
	if err := vm.compileExpression(&bc, c); err != nil {
		return nil, err
	}
	bc = append(bc, Op(OpHalt))
	return bc, nil
}

func (vm *Vm) compileExpression(bc *[]VCell, c *cell.Cell) error {
	switch {
	case c.IsPair():
		car, _ := c.Car()
		cdr, _ := c.Cdr()
		name, ok := car.Name()
		if !ok {
			return errInvalidProcedure(car.String())
		}
		switch name {
		case "quote":
			return vm.compileQuote(bc, cdr)
		case "car":
			return vm.compileUnary(bc, OpCar, "car", cdr)
		case "cdr":
			return vm.compileUnary(bc, OpCdr, "cdr", cdr)
		default:
			return errUnknownProcedure(car.String())
		}
	case c.Type() == cell.NumberType:
		return vm.compileDatum(bc, c)
	case c.IsNil():
		return errUnquotedNil()
	case c.IsSymbol():
		name, _ := c.Name()
		return errVariableNotBound(name)
	default:
		return errUnknownProcedure(c.String())
	}
}

// compileUnary compiles a one-argument form such as (car arg): the argument
// expression first, then the opcode.
func (vm *Vm) compileUnary(bc *[]VCell, op OpCode, name string, args *cell.Cell) error {
	arg, err := carOf(args)
	if err != nil {
		return err
	}
	if rest, _ := args.Cdr(); !rest.IsNil() {
		return errInvalidNumArgs(name)
	}
	if err := vm.compileExpression(bc, arg); err != nil {
		return err
	}
	*bc = append(*bc, Op(op))
	return nil
}

// compileQuote compiles (quote datum): the datum is materialized on the
// heap and its Ptr becomes the operand.
func (vm *Vm) compileQuote(bc *[]VCell, args *cell.Cell) error {
	datum, err := carOf(args)
	if err != nil {
		return err
	}
	if rest, _ := args.Cdr(); !rest.IsNil() {
		return errInvalidNumArgs("quote")
	}
	return vm.compileDatum(bc, datum)
}

func (vm *Vm) compileDatum(bc *[]VCell, datum *cell.Cell) error {
	*bc = append(*bc, Op(OpQuote))
	*bc = append(*bc, vm.heap.PutCell(datum))
	return nil
}

// --- Decompiler ------------------------------------------------------------

// Instruction is one decompiled instruction: a mnemonic and its rendered
// operands.
type Instruction struct {
	Mnemonic string
	Operands []string
}

// Decompile walks an opcode sequence and emits one Instruction per opcode.
// Quote consumes the following slot as its operand; an unknown slot in
// opcode position yields UNKNOWN.
func Decompile(program []VCell) []Instruction {
	var result []Instruction
	for i := 0; i < len(program); i++ {
		op, ok := program[i].AsOpCode()
		if !ok {
			result = append(result, Instruction{Mnemonic: "UNKNOWN"})
			continue
		}
		inst := Instruction{Mnemonic: op.String()}
		for n := 0; n < op.operands() && i+1 < len(program); n++ {
			i++
			inst.Operands = append(inst.Operands, program[i].String())
		}
		result = append(result, inst)
	}
	return result
}

// DecompileText renders a program one instruction per line.
func DecompileText(program []VCell) string {
	var b bytes.Buffer
	for _, it := range Decompile(program) {
		b.WriteString(it.Mnemonic)
		b.WriteString(" ")
		b.WriteString(strings.Join(it.Operands, ","))
		b.WriteString("\n")
	}
	return b.String()
}

package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"github.com/ratherlargerobot/marwood/cell"
)

// instructionPointer addresses the current program: the heap slot holding
// the lambda and the offset of the next slot within it.
type instructionPointer struct {
	lambda int
	ofs    int
}

// fetch reads the next slot of the current program and advances the
// instruction pointer.
func (vm *Vm) fetch() (VCell, error) {
	prog, ok := vm.heap.slot(vm.ip.lambda)
	if !ok {
		return Undefined(), errInvalidBytecode()
	}
	code, ok := prog.AsLambda()
	if !ok {
		return Undefined(), errInvalidBytecode()
	}
	if vm.ip.ofs >= len(code) {
		return Undefined(), errInvalidBytecode()
	}
	v := code[vm.ip.ofs]
	vm.ip.ofs++
	return v, nil
}

// run executes the current program until Halt and reifies the accumulator
// into a surface cell.
func (vm *Vm) run() (*cell.Cell, error) {
	for {
		opcell, err := vm.fetch()
		if err != nil {
			return nil, err
		}
		op, ok := opcell.AsOpCode()
		if !ok {
			return nil, errInvalidBytecode()
		}
		tracer().Debugf("exec %v acc=%v", op, vm.acc)
		switch op {
		case OpQuote:
			operand, err := vm.fetch()
			if err != nil {
				return nil, err
			}
			vm.acc = operand
		case OpCar:
			car, _, err := vm.derefPair()
			if err != nil {
				return nil, err
			}
			vm.acc = Ptr(car)
		case OpCdr:
			_, cdr, err := vm.derefPair()
			if err != nil {
				return nil, err
			}
			vm.acc = Ptr(cdr)
		case OpHalt:
			return vm.heap.GetAsCell(vm.acc), nil
		default:
			return nil, errInvalidBytecode()
		}
	}
}

// derefPair dereferences the accumulator, which must hold a pointer to a
// pair slot.
func (vm *Vm) derefPair() (int, int, error) {
	ptr, ok := vm.acc.AsPtr()
	if !ok {
		return 0, 0, errExpectedPair(vm.acc.String())
	}
	target := vm.heap.GetAtIndex(ptr)
	car, cdr, ok := target.AsPair()
	if !ok {
		return 0, 0, errExpectedPair(vm.datumString(target))
	}
	return car, cdr, nil
}

// datumString renders a vcell for an error message, reifying it when the
// heap can represent it as a cell.
func (vm *Vm) datumString(v VCell) string {
	switch v.Type() {
	case OpCodeType, LambdaType, AccType, EnvSlotType:
		return v.String()
	}
	return vm.heap.GetAsCell(v).String()
}

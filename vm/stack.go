package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// Stack is the VM's value stack. It grows upward; the base pointer
// addresses frames by absolute index.
type Stack struct {
	list *arraylist.List
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{list: arraylist.New()}
}

// Push pushes a vcell.
func (s *Stack) Push(v VCell) {
	s.list.Add(v)
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (VCell, error) {
	top := s.list.Size() - 1
	if top < 0 {
		return Undefined(), errExpectedStackValue()
	}
	v, _ := s.list.Get(top)
	s.list.Remove(top)
	return v.(VCell), nil
}

// Get returns the vcell at an absolute stack index.
func (s *Stack) Get(index int) (VCell, error) {
	v, ok := s.list.Get(index)
	if !ok {
		return Undefined(), errInvalidStackIndex(index)
	}
	return v.(VCell), nil
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return s.list.Size()
}

// Each visits every stack slot from bottom to top.
func (s *Stack) Each(f func(VCell)) {
	s.list.Each(func(_ int, value interface{}) {
		f(value.(VCell))
	})
}

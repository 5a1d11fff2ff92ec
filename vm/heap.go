package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/ratherlargerobot/marwood/cell"
)

// Heap is a slab of vcells with explicit allocation and a precise
// mark-and-sweep collector. Parallel to the slab it keeps the per-slot
// gc state, a LIFO free list and the symbol intern table.
type Heap struct {
	chunkSize int
	heap      []VCell
	freeList  *arraystack.Stack
	heapMap   *GcMap
	strMap    map[string]int
}

// NewHeap constructs a heap of the given chunk size, allocating an initial
// chunk of free vcells.
func NewHeap(chunkSize int) *Heap {
	h := &Heap{
		chunkSize: chunkSize,
		heap:      make([]VCell, chunkSize),
		freeList:  arraystack.New(),
		heapMap:   NewGcMap(chunkSize),
		strMap:    make(map[string]int),
	}
	for i := chunkSize - 1; i >= 0; i-- {
		h.freeList.Push(i)
	}
	return h
}

// Alloc returns the next free slot from the free list. Callers ensure a
// free slot exists by triggering collection when needed; exhausting the
// free list without collecting is fatal.
func (h *Heap) Alloc() int {
	v, ok := h.freeList.Pop()
	if !ok {
		panic("heap: free list exhausted — collection required")
	}
	ptr := v.(int)
	h.heapMap.Set(ptr, StateAllocated)
	return ptr
}

// Free reclaims a slot, overwriting its value with Undefined and adding it
// back to the free list. Freeing a symbol slot also removes its interned
// string.
func (h *Heap) Free(ptr int) {
	h.heapMap.Set(ptr, StateFree)
	if sym, ok := h.heap[ptr].AsSymbol(); ok {
		delete(h.strMap, sym)
	}
	h.heap[ptr] = Undefined()
	h.freeList.Push(ptr)
}

// FreeCount returns the current length of the free list.
func (h *Heap) FreeCount() int {
	return h.freeList.Size()
}

// Put places the given value on the next available free slot and returns a
// Ptr to it. Symbols are interned: putting an already-interned symbol
// yields the canonical pointer. Putting a Ptr would double box and is a
// programmer error.
func (h *Heap) Put(v VCell) VCell {
	switch v.typ {
	case PtrType:
		panic(fmt.Sprintf("heap: put on %v would double box", v))
	case SymbolType:
		if ptr, ok := h.strMap[v.sym]; ok {
			return Ptr(ptr)
		}
		ptr := h.Alloc()
		h.heap[ptr] = v
		h.strMap[v.sym] = ptr
		return Ptr(ptr)
	default:
		ptr := h.Alloc()
		h.heap[ptr] = v
		return Ptr(ptr)
	}
}

// PutCell materializes the given surface cell on the heap, returning a Ptr
// to the root of the allocated structure. Pairs allocate recursively; the
// children of a pair slot are stored as raw slot indices, never as Ptrs.
func (h *Heap) PutCell(ast *cell.Cell) VCell {
	if car, ok := ast.Car(); ok {
		cdr, _ := ast.Cdr()
		carPtr, carOk := h.PutCell(car).AsPtr()
		cdrPtr, cdrOk := h.PutCell(cdr).AsPtr()
		if !carOk || !cdrOk {
			panic(fmt.Sprintf("heap: expected ptr materializing %v", ast))
		}
		return h.Put(Pair(carPtr, cdrPtr))
	}
	v, ok := fromCellAtom(ast)
	if !ok {
		panic(fmt.Sprintf("heap: cannot materialize %v", ast))
	}
	return h.Put(v)
}

// GetAtIndex returns the vcell at ptr.
func (h *Heap) GetAtIndex(ptr int) VCell {
	if ptr < 0 || ptr >= len(h.heap) {
		panic("heap index out of bounds")
	}
	return h.heap[ptr]
}

// SetAtIndex overwrites the vcell at ptr.
func (h *Heap) SetAtIndex(ptr int, v VCell) {
	if ptr < 0 || ptr >= len(h.heap) {
		panic("heap index out of bounds")
	}
	h.heap[ptr] = v
}

// slot is a checked variant of GetAtIndex for the VM's fetch path.
func (h *Heap) slot(ptr int) (VCell, bool) {
	if ptr < 0 || ptr >= len(h.heap) {
		return Undefined(), false
	}
	return h.heap[ptr], true
}

// Get dereferences a Ptr vcell. Calling it on anything else is a
// programmer error.
func (h *Heap) Get(v VCell) VCell {
	ptr, ok := v.AsPtr()
	if !ok {
		panic(fmt.Sprintf("heap: get on non-reference value %v", v))
	}
	return h.GetAtIndex(ptr)
}

// GetAsCell reifies a heap vcell graph back into a surface cell by copying
// the recursive structure out of the heap. Internal values used by
// bytecode are not reifiable and panic.
func (h *Heap) GetAsCell(v VCell) *cell.Cell {
	switch v.typ {
	case UndefinedType:
		return cell.Undefined()
	case VoidType:
		return cell.Void()
	case NilType:
		return cell.Nil()
	case BoolType:
		return cell.Bool(v.b)
	case FixedNumType:
		return cell.Number(v.num)
	case SymbolType:
		return cell.Symbol(v.sym)
	case PairType:
		return cell.Cons(h.GetAsCell(Ptr(v.car)), h.GetAsCell(Ptr(v.cdr)))
	case PtrType:
		return h.GetAsCell(h.GetAtIndex(v.ptr))
	}
	panic(fmt.Sprintf("heap: unexpected conversion of internal value %v to cell", v))
}

// Mark flags the given root slot in the gc map and recursively marks its
// children. Already-marked slots terminate the walk, which makes cyclic
// structures safe; the cdr spine iterates instead of recursing.
func (h *Heap) Mark(root int) {
	ptr := root
	for {
		v, ok := h.slot(ptr)
		if !ok {
			return
		}
		if h.heapMap.IsMarked(ptr) {
			return
		}
		h.heapMap.Mark(ptr)
		tracer().Debugf("mark %d => %v", ptr, v)
		switch v.typ {
		case PairType:
			h.Mark(v.car)
			ptr = v.cdr
		case PtrType:
			ptr = v.ptr
		case LambdaType:
			// keep a program's quoted operands alive
			for _, it := range v.lambda {
				if p, isPtr := it.AsPtr(); isPtr {
					h.Mark(p)
				}
			}
			return
		default:
			return
		}
	}
}

// Sweep walks the gc map once, freeing every slot still flagged allocated
// and downgrading marked slots to allocated for the next cycle.
func (h *Heap) Sweep() {
	before := h.freeList.Size()
	for it := 0; it < len(h.heap); it++ {
		state, _ := h.heapMap.Get(it)
		switch state {
		case StateAllocated:
			tracer().Debugf("free %d => %v", it, h.heap[it])
			h.Free(it)
		case StateUsed:
			h.heapMap.Set(it, StateAllocated)
		}
	}
	tracer().Debugf("freed %d vcell(s)", h.freeList.Size()-before)
}

// eachSymbol visits every interned symbol slot.
func (h *Heap) eachSymbol(f func(slot int)) {
	for _, slot := range h.strMap {
		f(slot)
	}
}

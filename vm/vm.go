package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	_ "embed"
	"math"

	"github.com/cnf/structhash"
	"github.com/ratherlargerobot/marwood/cell"
	"github.com/ratherlargerobot/marwood/lex"
	"github.com/ratherlargerobot/marwood/parse"
)

// HeapSize is the slot count of a Vm's initial heap chunk.
const HeapSize = 1024

// noFrame is the register sentinel while no frame or program is active.
const noFrame = math.MaxInt

//go:embed prelude.scm
var preludeSource string

// Vm is a marwood virtual machine: the heap and global environment, the
// value stack, the machine registers, and the macro transformers defined
// so far. A Vm is single-threaded; two Vms may run in parallel provided
// they share no state.
type Vm struct {
	heap    *Heap
	globenv *GlobalEnvironment
	stack   *Stack

	// Registers
	acc VCell
	ep  int
	ip  instructionPointer
	bp  int

	transforms map[string]*Transform

	// Compiled-program memo. Keyed by structhash of the printed source and
	// the macro epoch; bumping the epoch on define-syntax keeps stale
	// expansions out.
	memo       map[string]int
	macroEpoch int
}

// New returns a new Vm with built-ins loaded and the prelude evaluated.
func New() *Vm {
	vm := &Vm{
		heap:       NewHeap(HeapSize),
		globenv:    NewGlobalEnvironment(),
		stack:      NewStack(),
		acc:        Undefined(),
		ep:         noFrame,
		ip:         instructionPointer{lambda: noFrame},
		transforms: make(map[string]*Transform),
		memo:       make(map[string]int),
	}
	vm.loadBuiltins()
	vm.loadPrelude()
	return vm
}

// syntacticKeywords are the special forms known to the compiler.
var syntacticKeywords = []string{"quote", "car", "cdr", "define-syntax"}

// loadBuiltins interns the syntactic keywords and binds them to themselves,
// so keyword symbols survive collection.
func (vm *Vm) loadBuiltins() {
	for _, keyword := range syntacticKeywords {
		ptr := vm.heap.Put(Symbol(keyword))
		slot, _ := ptr.AsPtr()
		vm.globenv.Define(slot, slot)
	}
}

// loadPrelude evaluates the bundled prelude source.
func (vm *Vm) loadPrelude() {
	tokens, err := lex.Scan(preludeSource)
	if err != nil {
		panic("invalid prelude: " + err.Error())
	}
	cur := parse.NewCursor(tokens)
	for cur.HasNext() {
		ast, err := parse.Parse(cur)
		if err != nil {
			panic("invalid prelude: " + err.Error())
		}
		if _, err := vm.Eval(ast); err != nil {
			panic("invalid prelude: " + err.Error())
		}
	}
}

// isSyntacticKeyword returns true if name is a special form known to the
// compiler.
func (vm *Vm) isSyntacticKeyword(name string) bool {
	for _, kw := range syntacticKeywords {
		if kw == name {
			return true
		}
	}
	return false
}

// Eval compiles the expression contained within c, evaluates it, and
// returns the result. Macro definitions register a transformer and yield
// void; expressions headed by a defined keyword are expanded first.
func (vm *Vm) Eval(c *cell.Cell) (*cell.Cell, error) {
	if name, ok := c.Name(); ok {
		// a bare syntactic or macro keyword is not a value
		if _, isMacro := vm.transforms[name]; isMacro {
			return nil, errMisplacedMacroKeyword(name)
		}
		if vm.isSyntacticKeyword(name) {
			return nil, errInvalidSyntactic(name)
		}
	}
	if head, ok := c.Car(); ok {
		if name, isSym := head.Name(); isSym {
			if name == "define-syntax" {
				return vm.evalDefineSyntax(c)
			}
			if t, isMacro := vm.transforms[name]; isMacro {
				expanded, err := t.Transform(c)
				if err != nil {
					return nil, err
				}
				tracer().Debugf("%v expands to %v", c, expanded)
				return vm.Eval(expanded)
			}
		}
	}
	lambda, err := vm.compileMemo(c)
	if err != nil {
		return nil, err
	}
	vm.ip = instructionPointer{lambda: lambda}
	return vm.run()
}

// evalDefineSyntax builds a transformer and registers it under its
// keyword. Redefinition replaces the previous transformer.
func (vm *Vm) evalDefineSyntax(c *cell.Cell) (*cell.Cell, error) {
	t, err := NewTransform(c)
	if err != nil {
		return nil, err
	}
	keyword, _ := t.Keyword().Name()
	vm.transforms[keyword] = t
	vm.macroEpoch++
	kwPtr := vm.heap.Put(Symbol(keyword))
	slot, _ := kwPtr.AsPtr()
	vm.globenv.Define(slot, slot)
	tracer().Infof("defined syntax %s (%d rule(s))", keyword, len(t.rules))
	return cell.Void(), nil
}

// compileMemo compiles c, placing the program on the heap, and memoizes
// the resulting lambda slot for structurally identical expressions.
func (vm *Vm) compileMemo(c *cell.Cell) (int, error) {
	hash, err := structhash.Hash(struct {
		Expr  string
		Epoch int
	}{ // put it in an anonymous struct
		Expr:  c.String(),
		Epoch: vm.macroEpoch,
	}, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	if slot, hit := vm.memo[hash]; hit {
		tracer().Debugf("compile memo hit for %v", c)
		return slot, nil
	}
	bc, err := vm.Compile(c)
	if err != nil {
		return 0, err
	}
	tracer().Debugf("entry:\n%s", DecompileText(bc))
	ptr := vm.heap.Put(Lambda(bc))
	slot, _ := ptr.AsPtr()
	vm.memo[hash] = slot
	return slot, nil
}

// EvalText parses one expression from the input text, evaluates it, and
// returns the result together with any text that was not consumed.
func (vm *Vm) EvalText(text string) (*cell.Cell, string, error) {
	tokens, err := lex.Scan(text)
	if err != nil {
		return nil, "", err
	}
	cur := parse.NewCursor(tokens)
	ast, err := parse.Parse(cur)
	if err != nil {
		return nil, "", err
	}
	result, err := vm.Eval(ast)
	return result, cur.Remaining(text), err
}

// Global returns the value bound to a global symbol, reified to a cell.
func (vm *Vm) Global(name string) (*cell.Cell, bool) {
	slot, interned := vm.heap.strMap[name]
	if !interned {
		return nil, false
	}
	val, bound := vm.globenv.Resolve(slot)
	if !bound {
		return nil, false
	}
	return vm.heap.GetAsCell(Ptr(val)), true
}

// DefineGlobal binds a global symbol to a value.
func (vm *Vm) DefineGlobal(name string, value *cell.Cell) {
	symSlot, _ := vm.heap.Put(Symbol(name)).AsPtr()
	valSlot, _ := vm.heap.PutCell(value).AsPtr()
	vm.globenv.Define(symSlot, valSlot)
}

// Gc marks every root — the accumulator, the stack, the global
// environment, the interned symbols, the current program and the memoized
// programs — and sweeps.
func (vm *Vm) Gc() {
	if p, ok := vm.acc.AsPtr(); ok {
		vm.heap.Mark(p)
	}
	vm.stack.Each(func(v VCell) {
		if p, ok := v.AsPtr(); ok {
			vm.heap.Mark(p)
		}
	})
	vm.globenv.Each(func(sym int, val int) {
		vm.heap.Mark(sym)
		vm.heap.Mark(val)
	})
	vm.heap.eachSymbol(func(slot int) {
		vm.heap.Mark(slot)
	})
	if vm.ip.lambda != noFrame {
		vm.heap.Mark(vm.ip.lambda)
	}
	for _, slot := range vm.memo {
		vm.heap.Mark(slot)
	}
	vm.heap.Sweep()
}

// Heap exposes the Vm's heap to embedders that manage collection manually.
func (vm *Vm) Heap() *Heap {
	return vm.heap
}

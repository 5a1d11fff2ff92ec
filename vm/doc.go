/*
Package vm is marwood's runtime substrate.

It contains the value heap — a slab of tagged vcells with explicit
allocation, symbol interning and a precise mark-and-sweep collector —
together with the bytecode compiler, the execution loop and the
syntax-rules macro transformer.

A Vm owns its heap, stack, globals and registers exclusively. It is not
safe for concurrent use; run one Vm per goroutine if parallel evaluation
is needed. Garbage collection is caller-driven: the runtime never collects
mid-operation, and Vm.Gc marks every root before sweeping.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/
package vm

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marwood.vm'.
func tracer() tracing.Trace {
	return tracing.Select("marwood.vm")
}

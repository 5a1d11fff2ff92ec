/*
Package parse reads marwood expressions from a token stream.

The reader produces one Cell per call and distinguishes three outcomes:
success, incomplete (a prefix of a valid expression, e.g. with lists still
open, signalled by ErrIncomplete — REPLs use this for multi-line editing),
and a syntax error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marwood.parse'.
func tracer() tracing.Trace {
	return tracing.Select("marwood.parse")
}

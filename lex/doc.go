/*
Package lex tokenizes marwood surface text.

The scanner is built on a lexmachine DFA. Every token carries the byte span
it covers in the input, which lets the REPL hand unconsumed trailing text
back to the next prompt.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/
package lex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marwood.lex'.
func tracer() tracing.Trace {
	return tracing.Select("marwood.lex")
}

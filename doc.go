/*
Package marwood is an embeddable interpreter for a Scheme-family language.

Marwood covers lexing, parsing, a syntax-rules macro transformer, a bytecode
compiler, a register/stack virtual machine, and a mark-and-sweep heap with
symbol interning. Package structure is as follows:

■ cell: Package cell implements the immutable surface AST — atoms, pairs and
lists as produced by the reader and consumed by the compiler and the macro
transformer.

■ lex: Package lex tokenizes Scheme surface text, attaching byte-offset spans
to every token.

■ parse: Package parse reads one expression at a time from a token stream,
distinguishing incomplete input from syntax errors.

■ vm: Package vm is the runtime substrate: the value heap with its garbage
collector, the bytecode compiler, the execution loop, and the syntax-rules
transformer.

The base package contains the token and span types shared by the scanner
(lex) and the reader (parse).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/
package marwood

/*
Package cell implements the immutable surface AST of marwood: atoms, pairs
and lists as produced by the reader and consumed by the compiler and the
macro transformer.

Cells are value-semantic and compare structurally. The heap in package vm
materializes cells into heap-resident values and reifies results back.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/
package cell

package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures. Every operation returns either
// its success value or a kinded error; errors abort the current top-level
// eval but leave the Vm reusable.
type ErrorKind int

const (
	ExpectedType ErrorKind = iota
	ExpectedPair
	ExpectedStackValue
	InvalidArgs
	InvalidNumArgs
	InvalidBytecode
	InvalidDefineSyntax
	InvalidProcedure
	InvalidStackIndex
	InvalidSyntactic
	InvalidSyntax
	MisplacedMacroKeyword
	UnknownProcedure
	VariableNotBound
	UnquotedNil
)

// Error is a kinded evaluation error. Messages are single-line and include
// the offending datum textually.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a vm error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func errExpectedPair(datum string) *Error {
	return newError(ExpectedPair, "expected pair, but found %s", datum)
}

func errExpectedStackValue() *Error {
	return newError(ExpectedStackValue, "expected stack value")
}

func errInvalidNumArgs(procedure string) *Error {
	return newError(InvalidNumArgs, "invalid number of arguments for %s", procedure)
}

func errInvalidBytecode() *Error {
	return newError(InvalidBytecode, "invalid bytecode")
}

func errInvalidDefineSyntax(detail string) *Error {
	return newError(InvalidDefineSyntax, "invalid define syntax: '%s'", detail)
}

func errInvalidProcedure(datum string) *Error {
	return newError(InvalidProcedure, "call of non-procedure: %s", datum)
}

func errInvalidStackIndex(index int) *Error {
	return newError(InvalidStackIndex, "invalid stack index: %d", index)
}

func errInvalidSyntactic(keyword string) *Error {
	return newError(InvalidSyntactic, "invalid use of syntactic keyword %s", keyword)
}

func errInvalidSyntax(datum string) *Error {
	return newError(InvalidSyntax, "invalid syntax: %s", datum)
}

func errMisplacedMacroKeyword(keyword string) *Error {
	return newError(MisplacedMacroKeyword, "misplaced macro keyword %s", keyword)
}

func errUnknownProcedure(datum string) *Error {
	return newError(UnknownProcedure, "unknown procedure %s", datum)
}

func errVariableNotBound(name string) *Error {
	return newError(VariableNotBound, "variable %s not bound", name)
}

func errUnquotedNil() *Error {
	return newError(UnquotedNil, "invalid syntax: () must be quoted")
}

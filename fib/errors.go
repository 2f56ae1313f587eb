/*
Copyright (C) 2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package fib

import (
	"fmt"
	"strings"
)

// TypeError is raised when an operation gets a value of the wrong kind.
type TypeError struct {
	Op  string
	Got ValueKind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s is not defined for %s", e.Op, e.Got)
}

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return "undefined variable '" + e.Name + "'"
}

type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("stack overflow: maximum call depth of %d exceeded", e.Limit)
}

// MalformedNodeError reports an AST that violates the node shape contract.
// The parser never produces one.
type MalformedNodeError struct {
	Kind   Kind
	Reason string
}

func (e *MalformedNodeError) Error() string {
	return "malformed " + e.Kind.String() + " node: " + e.Reason
}

// IOError wraps a failing write of a builtin or a failing source read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "i/o error: " + e.Err.Error()
	}
	return "can't open the source file " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RuntimeError is what the evaluator panics with; Run turns it back into an error.
type RuntimeError struct {
	Line int
	Col  int
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Err.Error())
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// ParseError is one diagnostic of the parser.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Diagnostics is the error returned by Parse.
type Diagnostics []ParseError

func (d Diagnostics) Error() string {
	lines := make([]string, len(d))
	for i, e := range d {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// AtEOF reports whether parsing stopped because the input ended early.
// The REPL uses it to ask for a continuation line.
func (d Diagnostics) AtEOF() bool {
	for _, e := range d {
		if e.Msg == msgUnexpectedEOF {
			return true
		}
	}
	return false
}

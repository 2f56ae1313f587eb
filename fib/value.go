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
	"io"
	"strconv"
)

type ValueKind uint8

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindClosure
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindClosure:
		return "function"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Value is the runtime value. The zero Value is nil.
// Bools live in i (0 or 1), closures in fn.
type Value struct {
	kind ValueKind
	i    int64
	fn   *Closure
}

// NativeFunc implements a builtin. It finds its argument in frame under the
// declared parameter name.
type NativeFunc func(out io.Writer, frame *Env) (Value, error)

// Closure is a function value: parameter name, body and the scope it was
// defined in. Builtins have Native set instead of Body.
type Closure struct {
	Name   string
	Param  string
	Body   *Node
	En     *Env
	Native NativeFunc
	out    io.Writer // bound by NewRootEnv for builtins
}

func NewNil() Value {
	return Value{}
}

func NewBool(b bool) Value {
	if b {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

func NewInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func NewClosure(c *Closure) Value {
	return Value{kind: KindClosure, fn: c}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// AsBool accepts bools and integers (nonzero is true).
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBool, KindInt:
		return v.i != 0, nil
	}
	return false, &TypeError{"conversion to bool", v.kind}
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, &TypeError{"arithmetic", v.kind}
	}
	return v.i, nil
}

func (v Value) AsClosure() (*Closure, error) {
	if v.kind != KindClosure {
		return nil, &TypeError{"call", v.kind}
	}
	return v.fn, nil
}

// Less orders bools and integers among themselves; nil is never less than
// anything. Every other pairing is a type error.
func (v Value) Less(other Value) (bool, error) {
	switch v.kind {
	case KindNil:
		return false, nil
	case KindBool, KindInt:
		if other.kind != v.kind {
			return false, &TypeError{"comparison with " + v.kind.String(), other.kind}
		}
		return v.i < other.i, nil
	}
	return false, &TypeError{"comparison", v.kind}
}

// String is the display form written by puts.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.i != 0 {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindClosure:
		return "[function]"
	}
	return fmt.Sprintf("<value %d>", v.kind)
}

// Equal compares by kind and payload; closures compare by identity.
func Equal(a, b Value) bool {
	return a.kind == b.kind && a.i == b.i && a.fn == b.fn
}

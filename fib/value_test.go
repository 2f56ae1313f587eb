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
	"errors"
	"testing"
)

func TestValueAsBool(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
		err  bool
	}{
		{NewBool(true), true, false},
		{NewBool(false), false, false},
		{NewInt(0), false, false},
		{NewInt(-3), true, false},
		{NewNil(), false, true},
		{NewClosure(&Closure{Name: "f"}), false, true},
	}
	for _, c := range cases {
		got, err := c.v.AsBool()
		if (err != nil) != c.err {
			t.Fatalf("%s: error %v", c.v, err)
		}
		if got != c.want {
			t.Fatalf("%s: AsBool() = %v", c.v, got)
		}
	}
}

func TestValueAsInt(t *testing.T) {
	if i, err := NewInt(42).AsInt(); err != nil || i != 42 {
		t.Fatalf("AsInt() = %d, %v", i, err)
	}
	for _, v := range []Value{NewNil(), NewBool(true), NewClosure(&Closure{})} {
		var te *TypeError
		if _, err := v.AsInt(); !errors.As(err, &te) || te.Got != v.Kind() {
			t.Fatalf("%s: expected TypeError, got %v", v, err)
		}
	}
}

func TestValueLess(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
		err  bool
	}{
		{NewInt(1), NewInt(2), true, false},
		{NewInt(2), NewInt(2), false, false},
		{NewInt(-5), NewInt(-6), false, false},
		{NewBool(false), NewBool(true), true, false},
		{NewBool(true), NewBool(false), false, false},
		{NewNil(), NewInt(1), false, false},
		{NewNil(), NewNil(), false, false},
		{NewNil(), NewClosure(&Closure{}), false, false},
		{NewInt(1), NewBool(true), false, true},
		{NewBool(true), NewInt(1), false, true},
		{NewInt(1), NewNil(), false, true},
		{NewClosure(&Closure{}), NewInt(1), false, true},
	}
	for _, c := range cases {
		got, err := c.a.Less(c.b)
		if (err != nil) != c.err {
			t.Fatalf("%s < %s: error %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Fatalf("%s < %s = %v", c.a, c.b, got)
		}
	}
}

func TestValueString(t *testing.T) {
	cases := map[string]Value{
		"nil":                  NewNil(),
		"true":                 NewBool(true),
		"false":                NewBool(false),
		"0":                    NewInt(0),
		"-17":                  NewInt(-17),
		"9223372036854775807":  NewInt(9223372036854775807),
		"-9223372036854775808": NewInt(-9223372036854775808),
		"[function]":           NewClosure(&Closure{Name: "f"}),
	}
	for want, v := range cases {
		if v.String() != want {
			t.Fatalf("String() = %q, want %q", v.String(), want)
		}
	}
	var zero Value
	if !zero.IsNil() {
		t.Fatalf("zero Value is %s", zero.Kind())
	}
}

func TestValueEqual(t *testing.T) {
	c := &Closure{}
	if !Equal(NewClosure(c), NewClosure(c)) {
		t.Fatalf("same closure not equal")
	}
	if Equal(NewClosure(c), NewClosure(&Closure{})) {
		t.Fatalf("different closures equal")
	}
	if Equal(NewInt(1), NewBool(true)) {
		t.Fatalf("1 equals true")
	}
	if !Equal(NewInt(7), NewInt(7)) || !Equal(NewNil(), Value{}) {
		t.Fatalf("scalar equality broken")
	}
}

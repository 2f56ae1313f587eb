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

func TestEnvLookup(t *testing.T) {
	root := NewEnv(nil)
	root.Define("a", NewInt(1))
	root.Define("b", NewInt(2))
	child := root.Child()
	child.Define("b", NewInt(20))
	grandchild := child.Child()

	if v, err := grandchild.Lookup("a"); err != nil || v.String() != "1" {
		t.Fatalf("a = %s, %v", v, err)
	}
	if v, err := grandchild.Lookup("b"); err != nil || v.String() != "20" {
		t.Fatalf("b = %s, %v (inner binding must shadow)", v, err)
	}
	if v, _ := root.Lookup("b"); v.String() != "2" {
		t.Fatalf("child definition leaked into parent: b = %s", v)
	}
	if grandchild.FindRead("b") != child {
		t.Fatalf("FindRead returned the wrong frame")
	}
	if grandchild.FindRead("zzz") != nil {
		t.Fatalf("FindRead found an unbound name")
	}

	_, err := grandchild.Lookup("zzz")
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "zzz" {
		t.Fatalf("expected UndefinedVariableError for zzz, got %v", err)
	}
}

func TestEnvDefineReplaces(t *testing.T) {
	en := NewEnv(nil)
	en.Define("x", NewInt(1))
	en.Define("x", NewBool(false))
	if v, _ := en.Lookup("x"); v.String() != "false" {
		t.Fatalf("x = %s", v)
	}
	// a nil value is still a binding
	en.Define("n", NewNil())
	if en.FindRead("n") != en {
		t.Fatalf("nil binding not found")
	}
}

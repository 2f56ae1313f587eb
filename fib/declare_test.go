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
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestHelp(t *testing.T) {
	var b bytes.Buffer
	if err := Help(&b, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "-- Output --") || !strings.Contains(b.String(), "  puts: ") {
		t.Fatalf("builtin list incomplete:\n%s", b.String())
	}

	b.Reset()
	if err := Help(&b, "puts"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "Help for: puts\n") || !strings.Contains(b.String(), " - arg (any): ") {
		t.Fatalf("help for puts:\n%s", b.String())
	}

	if err := Help(&b, "nonexistent"); err == nil {
		t.Fatalf("help for unknown builtin succeeded")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestPutsWriteError(t *testing.T) {
	ast, _ := Parse("puts(1)")
	in := &Interpreter{}
	_, err := in.Run(context.Background(), ast, NewRootEnv(failingWriter{}))
	var ioe *IOError
	if !errors.As(err, &ioe) || !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected IOError, got %v", err)
	}
}

func TestDeclareBuiltin(t *testing.T) {
	DeclareTitle("Test")
	Declare(&Declaration{
		"twice", "doubles an integer",
		DeclarationParameter{"x", "integer", "number to double"},
		"integer",
		func(out io.Writer, frame *Env) (Value, error) {
			v, err := frame.Lookup("x")
			if err != nil {
				return Value{}, err
			}
			i, err := v.AsInt()
			if err != nil {
				return Value{}, err
			}
			return NewInt(2 * i), nil
		},
	})
	out, v, err := evalString(t, "twice(twice(5))", true, 0)
	if err != nil || out != "" || v.String() != "20" {
		t.Fatalf("twice(twice(5)) = %s %q %v", v, out, err)
	}
	// errors of builtins carry the call site
	_, _, err = evalString(t, "\ntwice(1 < 2)", true, 0)
	var te *TypeError
	if !errors.As(err, &te) || !strings.HasPrefix(err.Error(), "2:1: ") {
		t.Fatalf("expected positioned TypeError, got %v", err)
	}
}

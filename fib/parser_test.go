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
	"regexp"
	"strings"
	"testing"
)

func dumpString(n *Node) string {
	var b strings.Builder
	Dump(&b, n)
	return b.String()
}

func TestParseRawShape(t *testing.T) {
	ast, err := Parse("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	want := `+ Statements
  + Ternary
    + Condition
      + Infix
        + Call
          - Number (1)
        - Operator (+)
        + Call
          - Number (2)
`
	if got := dumpString(ast); got != want {
		t.Fatalf("raw tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseOptimizedShape(t *testing.T) {
	ast, err := DefaultSettings.Prepare("def f(n) n < 2 ? n : f(n - 1)\nf(3)")
	if err != nil {
		t.Fatal(err)
	}
	want := `+ Statements
  + Definition
    - Identifier (f)
    - Identifier (n)
    + Ternary
      + Condition
        - Identifier (n)
        - Operator (<)
        - Number (2)
      - Identifier (n)
      + Call
        - Identifier (f)
        + Infix
          - Identifier (n)
          - Operator (-)
          - Number (1)
  + Call
    - Identifier (f)
    - Number (3)
`
	if got := dumpString(ast); got != want {
		t.Fatalf("optimized tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseFor(t *testing.T) {
	ast, err := DefaultSettings.Prepare("for i from 1 to 10 puts(i)")
	if err != nil {
		t.Fatal(err)
	}
	want := `+ Statements
  + For
    - Identifier (i)
    - Number (1)
    - Number (10)
    + Call
      - Identifier (puts)
      - Identifier (i)
`
	if got := dumpString(ast); got != want {
		t.Fatalf("for tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParsePositions(t *testing.T) {
	ast, err := DefaultSettings.Prepare("puts(1)\n\n   for i from 1 to 2 i")
	if err != nil {
		t.Fatal(err)
	}
	loop := ast.Nodes[1]
	if loop.Kind != For || loop.Line != 3 || loop.Col != 4 {
		t.Fatalf("for at %d:%d (%s)", loop.Line, loop.Col, loop.Kind)
	}
	if body := loop.Nodes[3]; body.Line != 3 || body.Col != 22 {
		t.Fatalf("body at %d:%d", body.Line, body.Col)
	}
}

func TestParseKeywords(t *testing.T) {
	for _, src := range []string{"for", "def", "from", "to", "def for(x) x", "def f(to) to", "puts(from)"} {
		if _, err := Parse(src); err == nil {
			t.Fatalf("%q: keyword accepted as identifier", src)
		}
	}
	// words that merely start with a keyword are identifiers
	for _, src := range []string{"define", "fortune + 1", "tox", "fromage", "def defx(todo) todo", "d", "f", "t", "de", "fo", "fro"} {
		if _, err := Parse(src); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src   string
		msg   string
		atEOF bool
	}{
		{"1 +", "1:4: syntax error, unexpected end of input", true},
		{"def f(", "1:7: syntax error, unexpected end of input", true},
		{"puts(1", "1:7: syntax error, unexpected end of input", true},
		{"1 +\n+ 2", "2:1: syntax error, unexpected '+'", false},
		{"puts(1))", "1:8: syntax error, unexpected ')'", false},
		{"for x from a to 3 x", "1:12: syntax error, unexpected 'a'", false},
		{"1 ? 2", "1:6: syntax error, unexpected end of input", true},
	}
	for _, c := range cases {
		_, err := Parse(c.src)
		var diags Diagnostics
		if !errors.As(err, &diags) {
			t.Fatalf("%q: expected Diagnostics, got %v", c.src, err)
		}
		if err.Error() != c.msg {
			t.Fatalf("%q: got %q, want %q", c.src, err.Error(), c.msg)
		}
		if diags.AtEOF() != c.atEOF {
			t.Fatalf("%q: AtEOF() = %v", c.src, diags.AtEOF())
		}
	}
}

func TestParseNumberRange(t *testing.T) {
	if _, err := Parse("9223372036854775807"); err != nil {
		t.Fatal(err)
	}
	_, err := Parse("1 + 9223372036854775808")
	var diags Diagnostics
	if !errors.As(err, &diags) || len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", err)
	}
	if diags[0].Line != 1 || diags[0].Col != 5 || !strings.Contains(diags[0].Msg, "number out of range") {
		t.Fatalf("wrong diagnostic %v", diags[0])
	}
}

func TestNotWords(t *testing.T) {
	re := regexp.MustCompile("^(?:" + notWords([]string{"def", "for", "from", "to"}) + ")$")
	for _, w := range []string{"def", "for", "from", "to"} {
		if re.MatchString(w) {
			t.Fatalf("%q matched", w)
		}
	}
	for _, w := range []string{"d", "de", "deff", "define", "fo", "fox", "form", "fromage", "t", "tx", "too", "x", "abc_1", "A9"} {
		if !re.MatchString(w) {
			t.Fatalf("%q did not match", w)
		}
	}
	for _, w := range []string{"", "1abc", "_x", "a-b"} {
		if re.MatchString(w) {
			t.Fatalf("%q is no identifier", w)
		}
	}
}

func TestParseWordBreaks(t *testing.T) {
	// digits and '_' are word characters: a keyword followed by them is an identifier
	for _, src := range []string{"def1", "to_x", "for2 + 1", "def def1(to_x) to_x"} {
		if _, err := Parse(src); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
	for _, src := range []string{"for i from 1 to10 i", "for i from1 to 10 i", "2abc"} {
		if _, err := Parse(src); err == nil {
			t.Fatalf("%q accepted", src)
		}
	}
}

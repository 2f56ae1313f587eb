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
	"strings"
)

// Dump prints the tree, one node per line: "+ Kind" for inner nodes and
// "- Kind (token)" for tokens.
func Dump(w io.Writer, n *Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n *Node, level int) {
	indent := strings.Repeat("  ", level)
	if n.IsToken() {
		fmt.Fprintf(w, "%s- %s (%s)\n", indent, n.Kind, n.Token)
		return
	}
	fmt.Fprintf(w, "%s+ %s\n", indent, n.Kind)
	for _, child := range n.Nodes {
		dump(w, child, level+1)
	}
}

// where a node is printed; decides about parentheses
type position uint8

const (
	atExpression position = iota // branch, body, argument, statement
	atCondition                  // left of '?'
	atOperand                    // operand of '<', '+' or '-'
	atCallee
)

// Format renders n as source text that parses back into the same tree
// (modulo the wrappers removed by Optimize). This holds for trees built by
// Parse and Optimize. Statements are separated by newlines only, so a
// hand-built statement list in which an expression is followed by a
// statement starting with '(' reads back as a single call; the parser
// never produces such a list.
func Format(n *Node) string {
	var b strings.Builder
	if n.Kind == Statements {
		for i, child := range n.Nodes {
			if i > 0 {
				b.WriteString("\n")
			}
			format(&b, child, atExpression)
		}
		return b.String()
	}
	format(&b, n, atExpression)
	return b.String()
}

func format(b *strings.Builder, n *Node, pos position) {
	for len(n.Nodes) == 1 && (n.Kind == Ternary || n.Kind == Condition || n.Kind == Infix || n.Kind == Call) {
		n = n.Nodes[0]
	}
	if needsParens(n, pos) {
		b.WriteString("(")
		defer b.WriteString(")")
	}
	switch n.Kind {
	case Statements:
		for i, child := range n.Nodes {
			if i > 0 {
				b.WriteString(" ")
			}
			format(b, child, atExpression)
		}
	case Definition:
		fmt.Fprintf(b, "def %s(%s) ", n.Nodes[0].Token, n.Nodes[1].Token)
		format(b, n.Nodes[2], atExpression)
	case Ternary:
		format(b, n.Nodes[0], atCondition)
		b.WriteString(" ? ")
		format(b, n.Nodes[1], atExpression)
		b.WriteString(" : ")
		format(b, n.Nodes[2], atExpression)
	case Condition, Infix:
		for i, child := range n.Nodes {
			if i%2 == 1 {
				b.WriteString(" " + child.Token + " ")
			} else {
				format(b, child, atOperand)
			}
		}
	case Call:
		format(b, n.Nodes[0], atCallee)
		b.WriteString("(")
		format(b, n.Nodes[1], atExpression)
		b.WriteString(")")
	case For:
		fmt.Fprintf(b, "for %s from ", n.Nodes[0].Token)
		format(b, n.Nodes[1], atOperand)
		b.WriteString(" to ")
		format(b, n.Nodes[2], atOperand)
		b.WriteString(" ")
		format(b, n.Nodes[3], atExpression)
	default:
		b.WriteString(n.Token)
	}
}

func needsParens(n *Node, pos position) bool {
	switch n.Kind {
	case For, Ternary:
		return pos != atExpression
	case Condition, Infix:
		return pos == atOperand || pos == atCallee
	case Call:
		return pos == atCallee
	}
	return false
}

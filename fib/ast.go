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

import "fmt"

// Kind is the tag of an AST node.
type Kind uint8

const (
	Statements Kind = iota // (DEFINITION / EXPRESSION)*
	Definition             // name, parameter, body
	Ternary                // condition, true-branch, false-branch
	Condition              // left, operator, right
	Infix                  // operand (operator operand)*
	Call                   // callee, argument
	For                    // identifier, from, to, body
	Identifier             // token
	Number                 // token
	Operator               // token; only appears inside Condition and Infix
	numKinds
)

var kindNames = [numKinds]string{
	Statements: "Statements",
	Definition: "Definition",
	Ternary:    "Ternary",
	Condition:  "Condition",
	Infix:      "Infix",
	Call:       "Call",
	For:        "For",
	Identifier: "Identifier",
	Number:     "Number",
	Operator:   "Operator",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is an immutable syntax element. Nodes are shared by every closure
// whose body they are, so nothing may write to them after parsing.
type Node struct {
	Kind  Kind
	Token string // Identifier, Number and Operator only
	Nodes []*Node
	Line  int
	Col   int
}

func (n *Node) IsToken() bool {
	return n.Kind == Identifier || n.Kind == Number || n.Kind == Operator
}

// node constructors; mostly used by tests and the optimizer

func NewNode(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Nodes: children}
}

func NewToken(kind Kind, token string) *Node {
	return &Node{Kind: kind, Token: token}
}

func Ident(name string) *Node {
	return NewToken(Identifier, name)
}

func Num(n int64) *Node {
	return NewToken(Number, fmt.Sprint(n))
}

func Op(op string) *Node {
	return NewToken(Operator, op)
}

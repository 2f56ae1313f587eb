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

// Optimize removes the wrapper nodes the grammar leaves behind when an
// optional part is missing: a Ternary without branches, a Condition without
// operator, an Infix with one operand and a Call without argument are
// replaced by their only child. The input is not modified; unchanged
// subtrees are shared with the result.
func Optimize(n *Node) *Node {
	switch n.Kind {
	case Ternary, Condition, Infix, Call:
		if len(n.Nodes) == 1 {
			return Optimize(n.Nodes[0])
		}
	}
	if len(n.Nodes) == 0 {
		return n
	}
	var children []*Node
	for i, child := range n.Nodes {
		opt := Optimize(child)
		if opt != child && children == nil {
			// copy on first change
			children = make([]*Node, len(n.Nodes))
			copy(children, n.Nodes[:i])
		}
		if children != nil {
			children[i] = opt
		}
	}
	if children == nil {
		return n
	}
	result := *n
	result.Nodes = children
	return &result
}

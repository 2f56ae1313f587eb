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
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Interpreter evaluates ASTs. It is not safe for concurrent use; a single
// Run owns it until it returns.
type Interpreter struct {
	MaxDepth int        // 0 = unlimited
	Trace    *Tracefile // optional
	Stats    Stats

	ctx   context.Context
	depth int
}

// Run evaluates ast in en and returns the value of the last statement.
// Cancellation of ctx is noticed at the next call or loop iteration.
func (in *Interpreter) Run(ctx context.Context, ast *Node, en *Env) (result Value, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	in.ctx = ctx
	in.depth = 0
	in.Stats = Stats{}
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	defer func() {
		in.Stats.Elapsed = time.Since(start)
		runtime.ReadMemStats(&after)
		in.Stats.Allocated = after.TotalAlloc - before.TotalAlloc
		if r := recover(); r != nil {
			rerr, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			result, err = NewNil(), rerr
		}
	}()
	return in.Eval(ast, en), nil
}

func fail(n *Node, err error) {
	panic(&RuntimeError{Line: n.Line, Col: n.Col, Err: err})
}

func malformed(n *Node, format string, a ...any) {
	fail(n, &MalformedNodeError{n.Kind, fmt.Sprintf(format, a...)})
}

func (in *Interpreter) Eval(n *Node, en *Env) Value {
	in.Stats.Nodes++
	switch n.Kind {
	case Statements:
		result := NewNil()
		for _, child := range n.Nodes {
			result = in.Eval(child, en)
		}
		return result
	case Definition:
		arity(n, 3)
		name := token(n.Nodes[0], Identifier)
		param := token(n.Nodes[1], Identifier)
		// the closure sees en itself, so name is visible inside its own body
		en.Define(name, NewClosure(&Closure{Name: name, Param: param, Body: n.Nodes[2], En: en}))
		return NewNil()
	case Ternary:
		if len(n.Nodes) == 1 {
			return in.Eval(n.Nodes[0], en)
		}
		arity(n, 3)
		cond, err := in.Eval(n.Nodes[0], en).AsBool()
		if err != nil {
			fail(n.Nodes[0], err)
		}
		if cond {
			return in.Eval(n.Nodes[1], en)
		}
		return in.Eval(n.Nodes[2], en)
	case Condition:
		if len(n.Nodes) == 1 {
			return in.Eval(n.Nodes[0], en)
		}
		arity(n, 3)
		if op := n.Nodes[1]; op.Kind != Operator || op.Token != "<" {
			malformed(n, "unsupported comparison operator %q", op.Token)
		}
		lhs := in.Eval(n.Nodes[0], en)
		rhs := in.Eval(n.Nodes[2], en)
		less, err := lhs.Less(rhs)
		if err != nil {
			fail(n, err)
		}
		return NewBool(less)
	case Infix:
		if len(n.Nodes) == 1 {
			return in.Eval(n.Nodes[0], en)
		}
		if len(n.Nodes)%2 == 0 {
			malformed(n, "operand missing after operator")
		}
		acc := in.integer(n.Nodes[0], en)
		for i := 1; i < len(n.Nodes); i += 2 {
			op := n.Nodes[i]
			if op.Kind != Operator {
				malformed(n, "expected operator, found %s", op.Kind)
			}
			switch op.Token {
			case "+":
				acc += in.integer(n.Nodes[i+1], en)
			case "-":
				acc -= in.integer(n.Nodes[i+1], en)
			default:
				malformed(op, "unsupported infix operator %q", op.Token)
			}
		}
		return NewInt(acc)
	case Call:
		if len(n.Nodes) == 1 {
			return in.Eval(n.Nodes[0], en)
		}
		arity(n, 2)
		fn, err := in.Eval(n.Nodes[0], en).AsClosure()
		if err != nil {
			fail(n.Nodes[0], err)
		}
		// the argument belongs to the caller's scope
		arg := in.Eval(n.Nodes[1], en)
		return in.apply(n, fn, arg)
	case For:
		arity(n, 4)
		ident := token(n.Nodes[0], Identifier)
		from := in.integer(n.Nodes[1], en)
		to := in.integer(n.Nodes[2], en)
		if from > to {
			return NewNil()
		}
		for i := from; ; i++ {
			in.checkCancel(n)
			in.Stats.Frames++
			frame := en.Child()
			frame.Define(ident, NewInt(i))
			in.Eval(n.Nodes[3], frame)
			if i == to {
				break
			}
		}
		return NewNil()
	case Identifier:
		v, err := en.Lookup(n.Token)
		if err != nil {
			fail(n, err)
		}
		return v
	case Number:
		if !isDigits(n.Token) {
			malformed(n, "invalid integer literal %q", n.Token)
		}
		i, err := strconv.ParseInt(n.Token, 10, 64)
		if err != nil {
			malformed(n, "invalid integer literal %q", n.Token)
		}
		return NewInt(i)
	case Operator:
		malformed(n, "operator %q outside of an expression", n.Token)
	default:
		malformed(n, "unknown node kind")
	}
	return NewNil() // not reached
}

// apply runs c in a fresh frame whose parent is the scope c was defined in.
func (in *Interpreter) apply(site *Node, c *Closure, arg Value) Value {
	in.checkCancel(site)
	if in.MaxDepth > 0 && in.depth >= in.MaxDepth {
		fail(site, &RecursionLimitError{in.MaxDepth})
	}
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > in.Stats.MaxDepth {
		in.Stats.MaxDepth = in.depth
	}
	in.Stats.Calls++
	in.Stats.Frames++
	frame := c.En.Child()
	frame.Define(c.Param, arg)
	if in.Trace != nil {
		in.Trace.Begin(c.Name)
		defer in.Trace.End(c.Name) // also when the call fails
	}
	var result Value
	switch {
	case c.Native != nil:
		out := c.out
		if out == nil {
			out = os.Stdout
		}
		v, err := c.Native(out, frame)
		if err != nil {
			fail(site, err)
		}
		result = v
	case c.Body != nil:
		result = in.Eval(c.Body, frame)
	default:
		malformed(site, "function %s has no body", c.Name)
	}
	return result
}

func (in *Interpreter) integer(n *Node, en *Env) int64 {
	i, err := in.Eval(n, en).AsInt()
	if err != nil {
		fail(n, err)
	}
	return i
}

func (in *Interpreter) checkCancel(n *Node) {
	if in.ctx == nil {
		return
	}
	select {
	case <-in.ctx.Done():
		fail(n, in.ctx.Err())
	default:
	}
}

func arity(n *Node, want int) {
	if len(n.Nodes) != want {
		malformed(n, "expected %d children, got %d", want, len(n.Nodes))
	}
}

func token(n *Node, kind Kind) string {
	if n.Kind != kind {
		malformed(n, "expected %s token", kind)
	}
	return n.Token
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

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

import "time"

type Settings struct {
	MaxDepth int           // maximum nested calls, 0 = unlimited
	Optimize bool          // collapse single-child nodes before evaluation
	DumpAST  bool          // print the AST instead of running
	Format   bool          // print canonical source instead of running
	Trace    bool          // write trace_<uuid>.json
	TraceDir string        // defaults to $FIB_TRACEDIR
	Stats    bool          // print run statistics to stderr
	Timeout  time.Duration // 0 = no timeout
	Watch    bool
	Repl     bool
}

var DefaultSettings Settings = Settings{
	MaxDepth: 10000,
	Optimize: true,
}

// NewInterpreter creates an evaluator configured by s. The trace file is
// not opened here; the host owns it.
func (s Settings) NewInterpreter() *Interpreter {
	return &Interpreter{MaxDepth: s.MaxDepth}
}

// Prepare parses src and optionally simplifies the AST.
func (s Settings) Prepare(src string) (*Node, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if s.Optimize {
		ast = Optimize(ast)
	}
	return ast, nil
}

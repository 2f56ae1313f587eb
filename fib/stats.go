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
	"time"

	units "github.com/docker/go-units"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats are collected by every Run and reset at its start.
type Stats struct {
	Nodes     uint64 // evaluated AST nodes
	Calls     uint64 // function calls including builtins
	Frames    uint64 // scope frames created by calls and loop iterations
	MaxDepth  int    // deepest call nesting
	Elapsed   time.Duration
	Allocated uint64 // heap bytes allocated during the run
}

func (s Stats) Print(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "evaluated %d nodes, %d calls, %d frames, max depth %d\n", s.Nodes, s.Calls, s.Frames, s.MaxDepth)
	fmt.Fprintf(w, "took %s, allocated %s\n", s.Elapsed.Round(time.Microsecond), units.HumanSize(float64(s.Allocated)))
}

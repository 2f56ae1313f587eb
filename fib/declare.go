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

import "io"
import "fmt"
import "strings"

type Declaration struct {
	Name    string
	Desc    string
	Param   DeclarationParameter // builtins take exactly one argument like every function
	Returns string               // nil | bool | integer | function | any
	Fn      NativeFunc
}

type DeclarationParameter struct {
	Name string
	Type string // nil | bool | integer | function | any
	Desc string
}

var declarationTitles []string
var declarations map[string]*Declaration = make(map[string]*Declaration)

func DeclareTitle(title string) {
	declarationTitles = append(declarationTitles, "#"+title)
}

// Declare adds a builtin to every root environment created afterwards.
func Declare(def *Declaration) {
	if _, ok := declarations[def.Name]; !ok {
		declarationTitles = append(declarationTitles, def.Name)
	}
	declarations[def.Name] = def
}

// NewRootEnv builds the outermost scope of a run. puts and all other
// builtins write to out.
func NewRootEnv(out io.Writer) *Env {
	en := NewEnv(nil)
	for _, title := range declarationTitles {
		def, ok := declarations[title]
		if !ok {
			continue
		}
		en.Define(def.Name, NewClosure(&Closure{
			Name:   def.Name,
			Param:  def.Param.Name,
			En:     en,
			Native: def.Fn,
			out:    out,
		}))
	}
	return en
}

// Help lists all builtins (topic == "") or describes one of them.
func Help(w io.Writer, topic string) error {
	if topic == "" {
		fmt.Fprintln(w, "Available builtins:")
		for _, title := range declarationTitles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(declarations[title].Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "type :help name to get further information")
		return nil
	}
	def, ok := declarations[topic]
	if !ok {
		return fmt.Errorf("builtin not found: %s", topic)
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, " - "+def.Param.Name+" ("+def.Param.Type+"): "+def.Param.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "returns "+def.Returns)
	return nil
}

func init() {
	DeclareTitle("Output")
	Declare(&Declaration{
		"puts", "writes the display form of a value followed by a newline to standard output",
		DeclarationParameter{"arg", "any", "value to print; functions print as [function]"},
		"nil",
		func(out io.Writer, frame *Env) (Value, error) {
			v, err := frame.Lookup("arg")
			if err != nil {
				return Value{}, err
			}
			if _, err := fmt.Fprintln(out, v.String()); err != nil {
				return Value{}, &IOError{Err: err}
			}
			return NewNil(), nil
		},
	})
}

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

type Vars map[string]Value

// Env is a scope frame. Frames only point outwards, so the garbage
// collector reclaims a frame as soon as no closure or running call holds it.
type Env struct {
	Vars  Vars
	Outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{Vars: make(Vars), Outer: outer}
}

func (e *Env) Child() *Env {
	return NewEnv(e)
}

// FindRead returns the innermost frame that binds s, or nil.
func (e *Env) FindRead(s string) *Env {
	for en := e; en != nil; en = en.Outer {
		if _, ok := en.Vars[s]; ok {
			return en
		}
	}
	return nil
}

func (e *Env) Lookup(name string) (Value, error) {
	en := e.FindRead(name)
	if en == nil {
		return Value{}, &UndefinedVariableError{name}
	}
	return en.Vars[name], nil
}

// Define binds name in this frame, replacing an earlier local binding.
func (e *Env) Define(name string, v Value) {
	e.Vars[name] = v
}

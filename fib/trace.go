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
import "os"
import "sync"
import "time"
import "path/filepath"
import "encoding/json"
import "github.com/google/uuid"

// Tracefile writes chrome://tracing compatible events, one B/E pair per call.
type Tracefile struct {
	isFirst bool
	closed  bool
	file    io.WriteCloser
	start   time.Time
	m       sync.Mutex
	once    sync.Once
}

// CreateTrace opens dir/trace_<uuid>.json; dir defaults to $FIB_TRACEDIR.
func CreateTrace(dir string) (*Tracefile, string, error) {
	if dir == "" {
		dir = os.Getenv("FIB_TRACEDIR")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, "", err
	}
	name := filepath.Join(dir, "trace_"+id.String()+".json")
	f, err := os.Create(name)
	if err != nil {
		return nil, "", err
	}
	return NewTrace(f), name, nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	result.start = time.Now()
	return result
}

// Close may be called more than once (exit hook and regular shutdown).
// Events arriving after Close are dropped.
func (t *Tracefile) Close() {
	t.once.Do(func() {
		t.m.Lock()
		defer t.m.Unlock()
		t.closed = true
		t.file.Write([]byte("]"))
		t.file.Close()
	})
}

func (t *Tracefile) Begin(name string) {
	t.Event(name, "call", "B")
}

func (t *Tracefile) End(name string) {
	t.Event(name, "call", "E")
}

/*
	@name function name
	@cat comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
*/
func (t *Tracefile) Event(name string, cat string, typ string) {
	ts := time.Since(t.start).Microseconds()
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write([]byte("{\"name\": "))
	b, _ := json.Marshal(name)
	t.file.Write(b)
	t.file.Write([]byte(", \"cat\": "))
	b, _ = json.Marshal(cat)
	t.file.Write(b)
	t.file.Write([]byte(", \"ph\": \""))
	t.file.Write([]byte(typ))
	t.file.Write([]byte("\", \"ts\": "))
	b, _ = json.Marshal(ts)
	t.file.Write(b)
	t.file.Write([]byte(", \"pid\": 0, \"tid\": 0, \"s\": \"g\"}"))
}

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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

// Repl reads programs from the terminal and evaluates them in one root
// environment that lives as long as the session. Ctrl-C while a line is
// evaluated aborts that line only; s.Timeout applies per line.
func Repl(ctx context.Context, in *Interpreter, s Settings) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       ".fib-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	session := &replSession{in: in, settings: s, en: NewRootEnv(l.Stdout()), out: l.Stdout(), errs: l.Stderr()}
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 && session.pending == "" {
				break
			}
			session.pending = ""
			l.SetPrompt(newprompt)
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if session.feed(ctx, line) {
			l.SetPrompt(contprompt)
		} else {
			l.SetPrompt(newprompt)
		}
	}
	return nil
}

type replSession struct {
	in       *Interpreter
	settings Settings
	en       *Env
	out      io.Writer
	errs     io.Writer
	pending  string // input of unfinished lines
}

// feed handles one input line and reports whether more input is needed.
func (r *replSession) feed(ctx context.Context, line string) bool {
	src := r.pending + line
	r.pending = ""
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		r.command(trimmed[1:])
		return false
	}
	ast, err := r.settings.Prepare(src)
	if err != nil {
		var diags Diagnostics
		if errors.As(err, &diags) && diags.AtEOF() {
			r.pending = src + "\n"
			return true
		}
		fmt.Fprintln(r.errs, err)
		return false
	}
	lineCtx, stop := r.lineContext(ctx)
	defer stop()
	result, err := r.in.Run(lineCtx, ast, r.en)
	if err != nil {
		fmt.Fprintln(r.errs, "error:", err)
		return false
	}
	fmt.Fprintln(r.out, resultprompt+result.String())
	return false
}

// lineContext is cancelled by an interrupt or the timeout of one line;
// an earlier interrupt does not affect later lines.
func (r *replSession) lineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	lineCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	if r.settings.Timeout <= 0 {
		return lineCtx, stop
	}
	lineCtx, cancel := context.WithTimeout(lineCtx, r.settings.Timeout)
	return lineCtx, func() {
		cancel()
		stop()
	}
}

func (r *replSession) command(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "help":
		if err := Help(r.out, arg); err != nil {
			fmt.Fprintln(r.errs, err)
		}
	case "ast":
		ast, err := r.settings.Prepare(arg)
		if err != nil {
			fmt.Fprintln(r.errs, err)
			return
		}
		Dump(r.out, ast)
	case "stats":
		r.in.Stats.Print(r.out)
	default:
		fmt.Fprintln(r.errs, "unknown command :"+name+" (try :help, :ast code, :stats)")
	}
}

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
/*
	fib - a programming language just for writing fibonacci programs

	usage: fib [flags] source-file
*/
package main

import "os"
import "io"
import "fmt"
import "flag"
import "time"
import "bufio"
import "sync"
import "errors"
import "context"
import "syscall"
import "os/signal"
import "sync/atomic"
import "github.com/dc0d/onexit"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/fiblang/fib"
import "github.com/launix-de/fiblang/source"

const (
	exitOK      = 0
	exitUsage   = 1 // no source file given
	exitIO      = 2 // source file unreadable
	exitParse   = 3
	exitRuntime = 4
)

func main() {
	onexit.ForceExit(run(os.Args[1:], os.Stdout, os.Stderr)) // runs exit hooks, then exits
}

// the trace file open right now; closed by the exit hook on a signal
var activeTrace atomic.Pointer[fib.Tracefile]
var registerExitHook sync.Once

func closeActiveTrace() {
	if trace := activeTrace.Swap(nil); trace != nil {
		trace.Close()
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	settings := fib.DefaultSettings
	flags := flag.NewFlagSet("fib", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: fib [flags] source-file")
		flags.PrintDefaults()
	}
	flags.IntVar(&settings.MaxDepth, "max-depth", settings.MaxDepth, "maximum nested call depth, 0 = unlimited")
	flags.BoolVar(&settings.Optimize, "O", settings.Optimize, "simplify the AST before evaluation")
	flags.BoolVar(&settings.DumpAST, "ast", false, "print the AST instead of running the program")
	flags.BoolVar(&settings.Format, "fmt", false, "print the program in canonical form instead of running it")
	flags.BoolVar(&settings.Trace, "trace", false, "write a chrome trace of all calls to trace_<uuid>.json")
	flags.StringVar(&settings.TraceDir, "trace-dir", "", "folder for trace files (Default: $FIB_TRACEDIR)")
	flags.BoolVar(&settings.Stats, "stats", false, "print run statistics to stderr")
	flags.DurationVar(&settings.Timeout, "timeout", 0, "abort the evaluation after this duration")
	flags.BoolVar(&settings.Watch, "watch", false, "run again whenever the source file changes")
	flags.BoolVar(&settings.Repl, "i", false, "interactive shell")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	in := settings.NewInterpreter()
	if settings.Trace {
		trace, name, err := fib.CreateTrace(settings.TraceDir)
		if err != nil {
			fmt.Fprintln(stderr, "cannot create trace file:", err)
			return exitIO
		}
		registerExitHook.Do(func() {
			onexit.Register(closeActiveTrace) // close trace file on exit
		})
		activeTrace.Store(trace)
		defer func() {
			activeTrace.CompareAndSwap(trace, nil)
			trace.Close()
		}()
		in.Trace = trace
		fmt.Fprintln(stderr, "tracing to "+name)
	}

	if settings.Repl {
		// interrupts and timeouts are handled per line
		if err := fib.Repl(context.Background(), in, settings); err != nil {
			fmt.Fprintln(stderr, err)
			return exitIO
		}
		return exitOK
	}

	if flags.NArg() < 1 {
		flags.Usage()
		return exitUsage
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	location := flags.Arg(0)
	loader := &source.Loader{S3: source.S3SettingsFromEnv()}
	if settings.Watch {
		return watch(ctx, loader, location, in, settings, stdout, stderr)
	}
	return execute(ctx, loader, location, in, settings, stdout, stderr)
}

func execute(ctx context.Context, loader *source.Loader, location string, in *fib.Interpreter, settings fib.Settings, stdout, stderr io.Writer) int {
	src, err := loader.Load(ctx, location)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitIO
	}
	ast, err := settings.Prepare(string(src))
	if err != nil {
		fmt.Fprintln(stderr, err) // one line:column: message per diagnostic
		return exitParse
	}
	if settings.DumpAST {
		fib.Dump(stdout, ast)
		return exitOK
	}
	if settings.Format {
		fmt.Fprintln(stdout, fib.Format(ast))
		return exitOK
	}

	out := bufio.NewWriter(stdout)
	_, err = in.Run(ctx, ast, fib.NewRootEnv(out))
	out.Flush()
	if settings.Stats {
		in.Stats.Print(stderr)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitRuntime
	}
	return exitOK
}

func watch(ctx context.Context, loader *source.Loader, location string, in *fib.Interpreter, settings fib.Settings, stdout, stderr io.Writer) int {
	if !source.IsLocal(location) {
		fmt.Fprintln(stderr, "-watch needs a local file")
		return exitUsage
	}
	code := execute(ctx, loader, location, in, settings, stdout, stderr)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitIO
	}
	defer watcher.Close()
	if err := watcher.Add(location); err != nil {
		fmt.Fprintln(stderr, err)
		return exitIO
	}
	for {
		select {
		case <-ctx.Done():
			return code
		case err, ok := <-watcher.Errors:
			if !ok {
				return code
			}
			fmt.Fprintln(stderr, "watch:", err)
		case _, ok := <-watcher.Events:
			if !ok {
				return code
			}
			// flush all other events
		drain:
			for {
				time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
				select {
				case <-watcher.Events:
				default:
					break drain
				}
			}
			fmt.Fprintln(stderr, "reloading "+location+" ...")
			code = execute(ctx, loader, location, in, settings, stdout, stderr)
			watcher.Add(location) // text editors rename, so we have to rewatch
		}
	}
}

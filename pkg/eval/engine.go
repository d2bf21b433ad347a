// Package eval evaluates console input as Starlark, a dialect of Python, and
// loads Starlark packages from a library directory.
package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"src.pyweb.sh/pkg/buildinfo"
	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("eval")

// ErrNotLoaded is returned by a load statement naming a package that has not
// been loaded.
var ErrNotLoaded = errors.New("package not loaded")

// Name of the file console input is attributed to in error messages.
const consoleFile = "<console>"

// Engine is a console.Engine evaluating Starlark. All evaluations share one
// set of globals.
type Engine struct {
	opts *syntax.FileOptions

	mu      sync.Mutex
	globals starlark.StringDict

	modMu       sync.RWMutex
	predeclared starlark.StringDict
	modules     map[string]starlark.StringDict
}

var (
	_ console.Engine      = (*Engine)(nil)
	_ console.Initializer = (*Engine)(nil)
	_ console.Bannerer    = (*Engine)(nil)
)

// NewEngine creates an Engine. It can evaluate code right away, but the sys
// module is only available after Init.
func NewEngine() *Engine {
	return &Engine{
		opts: &syntax.FileOptions{
			Set:               true,
			While:             true,
			TopLevelControl:   true,
			GlobalReassign:    true,
			LoadBindsGlobally: true,
			Recursion:         true,
		},
		globals:     starlark.StringDict{},
		predeclared: starlark.StringDict{},
		modules:     map[string]starlark.StringDict{},
	}
}

// Init defines the sys module, visible to console input and to packages.
func (e *Engine) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sys := starlarkstruct.FromStringDict(starlark.String("sys"), starlark.StringDict{
		"version":  starlark.String(buildinfo.FullVersion()),
		"platform": starlark.String(runtime.GOOS + "/" + runtime.GOARCH),
	})
	sys.Freeze()
	e.SetGlobal("sys", sys)
	e.modMu.Lock()
	e.predeclared["sys"] = sys
	e.modMu.Unlock()
	logger.Debug("engine initialized")
	return nil
}

func (e *Engine) BannerCode() string {
	return `print("Starlark %s on %s" % (sys.version, sys.platform))`
}

// SetGlobal defines a global visible to console input.
func (e *Engine) SetGlobal(name string, v starlark.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[name] = v
}

// SetArgv defines the argv global as a frozen list of the given arguments.
func (e *Engine) SetArgv(args []string) {
	elems := make([]starlark.Value, len(args))
	for i, arg := range args {
		elems[i] = starlark.String(arg)
	}
	argv := starlark.NewList(elems)
	argv.Freeze()
	e.SetGlobal("argv", argv)
}

// Global returns the value of a global, or nil if it is not defined.
func (e *Engine) Global(name string) starlark.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.globals[name]
}

// Evaluate runs src. If the last statement is an expression, its value is
// returned, unless it is None.
func (e *Engine) Evaluate(src string, stdout io.Writer) console.Outcome {
	return e.EvaluateFile(consoleFile, src, stdout)
}

// EvaluateFile is like Evaluate, but attributes src to filename in error
// messages.
func (e *Engine) EvaluateFile(filename, src string, stdout io.Writer) console.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := e.opts.Parse(filename, src, 0)
	if err != nil {
		return failure(err)
	}
	var last syntax.Expr
	if n := len(f.Stmts); n > 0 {
		if stmt, ok := f.Stmts[n-1].(*syntax.ExprStmt); ok {
			last = stmt.X
			f.Stmts = f.Stmts[:n-1]
		}
	}

	thread := &starlark.Thread{
		Name:  "console",
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(stdout, msg) },
		Load:  e.load,
	}
	if len(f.Stmts) > 0 {
		if err := starlark.ExecREPLChunk(f, thread, e.globals); err != nil {
			return failure(err)
		}
	}
	if last == nil {
		return console.Outcome{}
	}
	v, err := starlark.EvalExprOptions(e.opts, thread, last, e.globals)
	if err != nil {
		return failure(err)
	}
	if v == starlark.None {
		return console.Outcome{}
	}
	return console.Outcome{Value: v}
}

func failure(err error) console.Outcome {
	return console.Outcome{Failed: true, FailureDetail: errorDetail(err)}
}

func errorDetail(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}

// CompileCheck parses line as a complete input. A syntax error at the end of
// the input means more lines could complete it.
func (e *Engine) CompileCheck(line string) console.Completeness {
	_, err := e.opts.Parse(consoleFile, line+"\n", 0)
	switch {
	case err == nil:
		return console.Complete
	case strings.Contains(err.Error(), "end of file"), strings.Contains(err.Error(), "unexpected EOF"):
		return console.Incomplete
	default:
		return console.Malformed
	}
}

// Repr returns the Starlark representation of a value returned by Evaluate.
func (e *Engine) Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case starlark.Value:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Loaded returns whether the named package has been loaded.
func (e *Engine) Loaded(name string) bool {
	_, ok := e.module(name)
	return ok
}

func (e *Engine) module(name string) (starlark.StringDict, bool) {
	e.modMu.RLock()
	defer e.modMu.RUnlock()
	g, ok := e.modules[name]
	return g, ok
}

func (e *Engine) addModule(name string, globals starlark.StringDict) {
	e.modMu.Lock()
	defer e.modMu.Unlock()
	e.modules[name] = globals
}

func (e *Engine) predeclaredCopy() starlark.StringDict {
	e.modMu.RLock()
	defer e.modMu.RUnlock()
	d := make(starlark.StringDict, len(e.predeclared))
	for k, v := range e.predeclared {
		d[k] = v
	}
	return d
}

// Resolves a load statement in console input. Only loaded packages can be
// named.
func (e *Engine) load(_ *starlark.Thread, name string) (starlark.StringDict, error) {
	if g, ok := e.module(name); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %s (call load_package first)", ErrNotLoaded, name)
}

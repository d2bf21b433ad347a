package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"src.pyweb.sh/pkg/eval"
)

// ScriptConfig keeps configuration for the script mode.
type ScriptConfig struct {
	// Take the first argument as code instead of a file name.
	Cmd bool
	// Directory packages are loaded from. Empty means load_package is not
	// available.
	LibDir string
}

// Script executes a script file, or code given with -c, and returns the exit
// status. The arguments are available to the script as argv, whose first
// element is the script name, or "-c".
func Script(ctx context.Context, fds [3]*os.File, args []string, cfg *ScriptConfig) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	e := eval.NewEngine()
	if err := e.Init(ctx); err != nil {
		fmt.Fprintln(fds[2], err)
		return 2
	}
	if cfg.Cmd {
		e.SetArgv(append([]string{"-c"}, args[1:]...))
	} else {
		e.SetArgv(args)
	}
	if cfg.LibDir != "" {
		loader := eval.NewLoader(os.DirFS(cfg.LibDir), e)
		// Without a console, packages load right away.
		e.SetGlobal("load_package", eval.NewLoadPackage(func(patterns ...string) {
			report := func(msg string) { fmt.Fprintln(fds[2], msg) }
			if _, err := loader.Load(ctx, patterns, report, report); err != nil {
				logger.Warn("loading packages failed", "patterns", patterns, "err", err)
			}
		}))
	}

	logger.Debug("running script", "name", name)
	outcome := e.EvaluateFile(name, code, fds[1])
	if outcome.Failed {
		fmt.Fprintln(fds[2], outcome.FailureDetail)
		return 2
	}
	return 0
}

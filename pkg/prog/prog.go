// Package prog provides the entry point to pyweb. Its subpackages correspond
// to subprograms of pyweb.
package prog

// This package parses the command line and calls the appropriate
// "subprogram": printing build information, running a script, or running the
// interactive console.

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"src.pyweb.sh/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log string

	Version, BuildInfo, JSON bool

	CodeInArg, NoRc bool
	RC              string

	// Path to the config file.
	Config string
	// Overrides of config keys.
	DB, LibDir string

	// Use the line-based console even on a terminal.
	Plain bool
}

func newRootCmd(f *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "pyweb [flags] [script [args...]]",
		Short:         "Interactive Starlark console",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	// Arguments after the script belong to the script.
	root.Flags().SetInterspersed(false)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&f.Log, "log", "", "a file to write debug log to")
	pf.StringVar(&f.Config, "config", "", "path to the config file")

	fs := root.Flags()
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON; useful with --version and --buildinfo")

	fs.BoolVarP(&f.CodeInArg, "code", "c", false, "take first argument as code to execute")
	fs.BoolVar(&f.NoRc, "norc", false, "run pyweb without running the rc file")
	fs.StringVar(&f.RC, "rc", "", "path to the rc file")

	fs.StringVar(&f.DB, "db", "", "path to the history database")
	fs.StringVar(&f.LibDir, "lib", "", "directory to load packages from")
	fs.BoolVar(&f.Plain, "plain", false, "use the line-based console even on a terminal")

	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if f.Log == "" {
			return
		}
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return root
}

// Run parses command-line flags and runs the first applicable subprogram,
// or a subcommand provided by p. It returns the exit status of the program.
func Run(ctx context.Context, fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	root := newRootCmd(f)
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])
	root.SetArgs(args[1:])
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return p.Run(cmd.Context(), fds, f, args)
	}
	if c, ok := p.(Commander); ok {
		root.AddCommand(c.Commands()...)
	}

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		fmt.Fprint(fds[2], root.UsageString())
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(ctx context.Context, fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(ctx, fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

func (cp compositeProgram) Commands() []*cobra.Command {
	var commands []*cobra.Command
	for _, p := range cp {
		if c, ok := p.(Commander); ok {
			commands = append(commands, c.Commands()...)
		}
	}
	return commands
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(ctx context.Context, fds [3]*os.File, f *Flags, args []string) error
}

// Commander is implemented by programs that also provide subcommands, such
// as "pyweb config init". Commands is called once per Run.
type Commander interface {
	Commands() []*cobra.Command
}

// Package shell is the entry point for the terminal interface of pyweb.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"src.pyweb.sh/pkg/config"
	"src.pyweb.sh/pkg/logutil"
	"src.pyweb.sh/pkg/prog"
)

var logger = logutil.GetLogger("shell")

// Program is the shell subprogram. It runs a script when given arguments,
// and the interactive console otherwise.
type Program struct{}

var _ prog.Commander = Program{}

// Commands returns the config subcommand.
func (Program) Commands() []*cobra.Command {
	return []*cobra.Command{config.Command()}
}

func (Program) Run(ctx context.Context, fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg, err := loadConfig(fds[2], f.Config)
	if err != nil {
		return err
	}
	if f.Log == "" && cfg.Log.File != "" {
		if err := logutil.SetOutputFile(cfg.Log.File); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	paths := MakePaths(cfg, f)

	if len(args) > 0 {
		exit := Script(ctx, fds, args, &ScriptConfig{Cmd: f.CodeInArg, LibDir: paths.LibDir})
		return prog.Exit(exit)
	}
	if f.CodeInArg {
		return prog.BadUsage("-c requires an argument")
	}
	return Interact(ctx, fds, &InteractConfig{
		Paths:        paths,
		Options:      cfg.Console.Options(),
		HistoryLimit: cfg.History.Limit,
		Preload:      cfg.Packages.Preload,
		Plain:        f.Plain,
	})
}

// Loads the config file at path, or at the default path if it is empty.
// Unknown keys are reported on stderr.
func loadConfig(stderr io.Writer, path string) (config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg, unknown, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	for _, key := range unknown {
		fmt.Fprintln(stderr, "Warning: unknown config key", key)
	}
	return cfg, nil
}

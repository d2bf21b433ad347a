package shell

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"src.pyweb.sh/pkg/console"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Paths   Paths
	Options []console.Option
	// Number of history entries read from the database.
	HistoryLimit int
	// Package patterns loaded at startup.
	Preload []string
	// Use the line-based console even on a terminal.
	Plain bool
}

// Interact runs an interactive console until the user ends it or ctx is done.
// On a terminal, the console is a full-screen widget; otherwise lines are
// read from fds[0] and the transcript is written to fds[1] and fds[2].
func Interact(ctx context.Context, fds [3]*os.File, cfg *InteractConfig) error {
	a, cleanup := newApp(ctx, fds[2], cfg)
	defer cleanup()
	if !cfg.Plain && isATTY(fds[0]) && isATTY(fds[1]) {
		return interactTTY(ctx, fds, a, cfg)
	}
	return interactPlain(ctx, fds, a, cfg)
}

func isATTY(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

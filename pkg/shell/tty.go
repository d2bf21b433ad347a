package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"src.pyweb.sh/pkg/cli"
)

// Opens the screen for the terminal in, overridden in tests.
var newScreen = openScreen

// Runs the full-screen console. The session starts in the background, so that
// the screen shows the startup messages as they come.
func interactTTY(ctx context.Context, fds [3]*os.File, a *app, cfg *InteractConfig) error {
	screen, err := newScreen(fds[0])
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	tty, err := cli.NewTTY(screen, a.model)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	go func() {
		if err := a.start(ctx, cfg.Preload); err != nil {
			logger.Error("cannot start console", "err", err)
			a.model.Error(err.Error())
			return
		}
		if cfg.Paths.RC != "" {
			a.sourceRC(cfg.Paths.RC)
		}
	}()

	err = tty.Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

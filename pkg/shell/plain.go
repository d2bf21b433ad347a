package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"src.pyweb.sh/pkg/cli"
	"src.pyweb.sh/pkg/strutil"
)

// Runs the line-based console. Prompts and startup messages go to fds[2], so
// that fds[1] only gets what the code prints.
func interactPlain(ctx context.Context, fds [3]*os.File, a *app, cfg *InteractConfig) error {
	if err := a.start(ctx, cfg.Preload); err != nil {
		writeLines(fds[2], fds[2], a.model.Drain(0))
		return err
	}
	writeLines(fds[2], fds[2], a.model.Drain(0))
	if cfg.Paths.RC != "" {
		a.sourceRC(cfg.Paths.RC)
		writeLines(fds[1], fds[2], a.model.Drain(0))
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		in := bufio.NewReader(fds[0])
		for {
			line, err := in.ReadString('\n')
			if line != "" {
				select {
				case lines <- strutil.ChopLineEnding(line):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				return
			}
		}
	}()

	// Echoes of submitted lines that are still in the model.
	var echoes []string
	for {
		fmt.Fprint(fds[2], a.model.Prompt())
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(fds[2])
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(fds[2])
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		echoes = append(echoes, a.model.Prompt()+line)
		if err := a.session.SubmitLine(ctx, line); err != nil {
			fmt.Fprintln(fds[2])
			return nil
		}
		if strings.TrimSpace(line) != "" {
			a.model.History().Append(line)
		}
		// Echoes of buffered lines stay in the model, where they are moved
		// around when output arrives.
		drained := a.model.Drain(len(a.session.Buffer()))
		var out []cli.Line
		for _, l := range drained {
			if len(echoes) > 0 && !l.Err && l.Text == echoes[0] {
				echoes = echoes[1:]
				continue
			}
			out = append(out, l)
		}
		writeLines(fds[1], fds[2], out)
	}
}

// Writes transcript lines, errors to stderr and the rest to stdout.
func writeLines(stdout, stderr io.Writer, lines []cli.Line) {
	for _, l := range lines {
		if l.Err {
			fmt.Fprintln(stderr, l.Text)
		} else {
			fmt.Fprintln(stdout, l.Text)
		}
	}
}

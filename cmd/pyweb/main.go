// Pyweb is an interactive console for Starlark, a dialect of Python. It keeps
// partially typed blocks in a buffer, reproduces indentation on continuation
// lines and loads Starlark packages from a library directory. Given a script,
// it runs the script instead.
package main

import (
	"context"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"src.pyweb.sh/pkg/buildinfo"
	"src.pyweb.sh/pkg/logutil"
	"src.pyweb.sh/pkg/prog"
	"src.pyweb.sh/pkg/shell"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	// Anything below errors would garble the console; --log or the log.file
	// config key gets the full log.
	logutil.SetLogger(pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.ErrorLevel}),
	))
	return prog.Run(ctx,
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, shell.Program{}))
}

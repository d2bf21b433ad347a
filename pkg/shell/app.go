package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.pyweb.sh/pkg/cli"
	"src.pyweb.sh/pkg/cli/histutil"
	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/eval"
	"src.pyweb.sh/pkg/store"
)

// A console session with the terminal model it drives and the engine it
// evaluates with.
type app struct {
	model   *cli.Model
	engine  *eval.Engine
	session *console.Session
}

// Creates an app. The returned function closes the history database.
func newApp(ctx context.Context, stderr io.Writer, cfg *InteractConfig) (*app, func()) {
	h, closeHistory := openHistory(stderr, cfg.Paths.DB, cfg.HistoryLimit)
	m := cli.NewModel(h)
	e := eval.NewEngine()
	var loader console.Loader
	if cfg.Paths.LibDir != "" {
		loader = eval.NewLoader(os.DirFS(cfg.Paths.LibDir), e)
	}
	sess := console.New(console.Spec{Terminal: m, Engine: e, Loader: loader}, cfg.Options...)
	e.SetGlobal("load_package", eval.NewLoadPackage(func(patterns ...string) {
		sess.LoadResource(ctx, patterns...)
	}))
	m.BindKey("CTRL+L", sess.Clear)
	return &app{m, e, sess}, closeHistory
}

// Opens the history database at path. If path is empty or the database can't
// be opened, the history is kept in memory only.
func openHistory(stderr io.Writer, path string, limit int) (*histutil.History, func()) {
	if path == "" {
		return histutil.NewMem(), func() {}
	}
	warn := func(err error) (*histutil.History, func()) {
		fmt.Fprintln(stderr, "Warning:", err)
		fmt.Fprintln(stderr, "History will not be saved.")
		return histutil.NewMem(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return warn(err)
	}
	st, err := store.Open(path)
	if err != nil {
		return warn(err)
	}
	h, err := histutil.New(histutil.NewDBStore(st, limit))
	if err != nil {
		st.Close()
		return warn(fmt.Errorf("read history: %w", err))
	}
	return h, func() {
		if err := st.Close(); err != nil {
			logger.Warn("cannot close history database", "err", err)
		}
	}
}

// Starts the session and loads the preloaded packages.
func (a *app) start(ctx context.Context, preload []string) error {
	if err := a.session.Start(ctx); err != nil {
		return err
	}
	if len(preload) > 0 {
		<-a.session.LoadResource(ctx, preload...)
	}
	return nil
}

// Runs the rc file in the session. A missing rc file is not an error.
func (a *app) sourceRC(path string) {
	code, err := readFileUTF8(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.session.Error(fmt.Sprintf("cannot read rc file: %v", err))
		}
		return
	}
	logger.Debug("running rc file", "path", path)
	a.session.RunCode(code,
		console.DedentCode(false), console.DisplayInput(false), console.PushToHistory(false))
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

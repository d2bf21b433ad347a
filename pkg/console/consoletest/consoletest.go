// Package consoletest provides a fixture for testing a console session end to
// end: a Session driving an in-memory cli.Model and evaluating Starlark.
package consoletest

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.pyweb.sh/pkg/cli"
	"src.pyweb.sh/pkg/cli/histutil"
	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/eval"
)

// Timeout for operations that wait for the gate.
const Timeout = 5 * time.Second

// Fixture is a started console session.
type Fixture struct {
	Model   *cli.Model
	Engine  *eval.Engine
	Session *console.Session
}

// Setup is an option to New.
type Setup func(*setup)

type setup struct {
	history  *histutil.History
	loader   console.Loader
	packages fs.FS
	opts     []console.Option
	noStart  bool
}

// WithHistory uses h as the history of the model.
func WithHistory(h *histutil.History) Setup { return func(s *setup) { s.history = h } }

// WithLoader sets the loader of the session.
func WithLoader(l console.Loader) Setup { return func(s *setup) { s.loader = l } }

// WithPackages loads Starlark packages from fsys, and defines the
// load_package builtin to load them through the session.
func WithPackages(fsys fs.FS) Setup { return func(s *setup) { s.packages = fsys } }

// WithOptions passes options to the session.
func WithOptions(opts ...console.Option) Setup {
	return func(s *setup) { s.opts = append(s.opts, opts...) }
}

// NoStart leaves the session unstarted, and thus locked.
func NoStart() Setup { return func(s *setup) { s.noStart = true } }

// New creates a Fixture. Unless NoStart is given, the session is started with
// the greeting and loading messages turned off, and the transcript is
// cleared of the startup banner.
func New(t testing.TB, setups ...Setup) *Fixture {
	t.Helper()
	var s setup
	for _, f := range setups {
		f(&s)
	}
	m := cli.NewModel(s.history)
	e := eval.NewEngine()
	loader := s.loader
	if s.packages != nil {
		loader = eval.NewLoader(s.packages, e)
	}
	opts := append([]console.Option{
		console.WithGreeting(false), console.WithLoadingMessage(false),
	}, s.opts...)
	sess := console.New(console.Spec{Terminal: m, Engine: e, Loader: loader}, opts...)
	f := &Fixture{m, e, sess}
	if s.packages != nil {
		e.SetGlobal("load_package", eval.NewLoadPackage(func(patterns ...string) {
			sess.LoadResource(context.Background(), patterns...)
		}))
	}
	if !s.noStart {
		if err := sess.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		m.Clear()
	}
	return f
}

// Type inserts text at the cursor, as if typed.
func (f *Fixture) Type(text string) { f.Model.InsertAtCursor(text) }

// Press invokes the actions of the named keys in turn.
func (f *Fixture) Press(keys ...string) {
	for _, k := range keys {
		f.Model.InvokeKeyAction(k)
	}
}

// Enter types each line and presses Enter after it.
func (f *Fixture) Enter(lines ...string) {
	for _, line := range lines {
		f.Type(line)
		f.Press(cli.KeyEnter)
	}
}

// Wait waits for the gate of the session to clear.
func (f *Fixture) Wait(t testing.TB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	if err := f.Session.Gate().Wait(ctx); err != nil {
		t.Fatalf("gate did not clear: %v", err)
	}
}

// Texts returns the text of all transcript lines.
func (f *Fixture) Texts() []string {
	lines := f.Model.Lines()
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}

// TestTranscript checks the text of the transcript lines.
func (f *Fixture) TestTranscript(t testing.TB, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, f.Texts()); diff != "" {
		t.Errorf("transcript (-want +got):\n%s", diff)
	}
}

// TestErrors checks the text of the transcript lines written as errors.
func (f *Fixture) TestErrors(t testing.TB, want ...string) {
	t.Helper()
	got := []string{}
	for _, l := range f.Model.Lines() {
		if l.Err {
			got = append(got, l.Text)
		}
	}
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("error lines (-want +got):\n%s", diff)
	}
}

// TestInput checks the prompt, the current line and the text before the
// cursor. A "|" in line marks the cursor; without one the cursor is expected
// at the end.
func (f *Fixture) TestInput(t testing.TB, prompt, line string) {
	t.Helper()
	before, after, hasCursor := strings.Cut(line, "|")
	if !hasCursor {
		before, after = line, ""
	}
	if got := f.Model.Prompt(); got != prompt {
		t.Errorf("prompt = %q, want %q", got, prompt)
	}
	if got := f.Model.CurrentLine(); got != before+after {
		t.Errorf("current line = %q, want %q", got, before+after)
	}
	if got := f.Model.TextBeforeCursor(); got != before {
		t.Errorf("text before cursor = %q, want %q", got, before)
	}
}

// TestBuffer checks the buffered lines of the session.
func (f *Fixture) TestBuffer(t testing.TB, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	got := f.Session.Buffer()
	if got == nil {
		got = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buffer (-want +got):\n%s", diff)
	}
}

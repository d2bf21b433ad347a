package consoletest

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.pyweb.sh/pkg/cli"
	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/transcript"
)

// TestTranscriptsInFS replays the transcript sessions found in fsys, each
// against a new Fixture, and checks that the console prints the same
// transcript.
//
// Directives in the transcripts name setups. The built-in directives are
// "indent-size N" and "tab-to-space BOOL". More can be passed as pairs of a
// name and either a Setup or a func(arg string) Setup.
func TestTranscriptsInFS(t *testing.T, fsys fs.FS, setupPairs ...any) {
	nodes, err := transcript.ParseFromFS(fsys)
	if err != nil {
		t.Fatalf("parse transcript sessions: %v", err)
	}
	setups := builtinSetups()
	if len(setupPairs)%2 != 0 {
		panic("setupPairs must have even length")
	}
	for i := 0; i < len(setupPairs); i += 2 {
		name := setupPairs[i].(string)
		switch f := setupPairs[i+1].(type) {
		case Setup:
			setups[name] = func(string) (Setup, error) { return f, nil }
		case func(string) Setup:
			setups[name] = func(arg string) (Setup, error) { return f(arg), nil }
		default:
			panic(fmt.Sprintf("setup %s has unsupported type %T", name, f))
		}
	}
	for _, node := range nodes {
		for _, session := range node.Sessions() {
			t.Run(session.Name, func(t *testing.T) {
				testSession(t, session, setups)
			})
		}
	}
}

type setupFunc func(arg string) (Setup, error)

func builtinSetups() map[string]setupFunc {
	return map[string]setupFunc{
		"indent-size": func(arg string) (Setup, error) {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, err
			}
			return WithOptions(console.WithIndentSize(n)), nil
		},
		"tab-to-space": func(arg string) (Setup, error) {
			b, err := strconv.ParseBool(arg)
			if err != nil {
				return nil, err
			}
			return WithOptions(console.WithTabToSpace(b)), nil
		},
	}
}

func testSession(t *testing.T, session transcript.Session, setups map[string]setupFunc) {
	var fixtureSetups []Setup
	for _, directive := range session.Directives {
		name, arg, _ := strings.Cut(directive, " ")
		f, ok := setups[name]
		if !ok {
			t.Fatalf("unknown directive: %s", name)
		}
		setup, err := f(arg)
		if err != nil {
			t.Fatalf("directive %s: %v", directive, err)
		}
		fixtureSetups = append(fixtureSetups, setup)
	}
	f := New(t, fixtureSetups...)
	for _, in := range session.Interactions {
		n := len(f.Model.Lines())
		for _, line := range in.Lines {
			f.enterOver(line)
		}
		f.Wait(t)
		got := trimRight(f.Texts()[n:])
		want := trimRight(in.Text())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("\n%s\n-want +got:\n%s", strings.Join(in.Text()[:len(in.Lines)], "\n"), diff)
		}
	}
}

// Enters line, keeping what the console has already put on the current line
// if line starts with it.
func (f *Fixture) enterOver(line string) {
	if current := f.Model.CurrentLine(); strings.HasPrefix(line, current) {
		f.Type(line[len(current):])
	} else {
		f.Model.SetCurrentLine(line)
	}
	f.Press(cli.KeyEnter)
}

// Transcript files lose trailing spaces of empty prompt lines.
func trimRight(lines []string) []string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
	}
	return trimmed
}

package eval

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

var testPackages = fstest.MapFS{
	"math.star": {Data: []byte(`
def square(x):
    return x * x
`)},
	"util/strings.star": {Data: []byte(`
load("util/join", "join")
def shout(s):
    return join([s.upper(), "!"])
print("strings ready")
`)},
	"util/join.star": {Data: []byte(`
def join(parts):
    return "".join(parts)
`)},
	"broken.star":  {Data: []byte("1/0\n")},
	"cycle/a.star": {Data: []byte(`load("cycle/b", "x")` + "\n")},
	"cycle/b.star": {Data: []byte(`load("cycle/a", "x")` + "\n")},
	"README.md":    {Data: []byte("not a package")},
}

type messages struct{ progress, failure []string }

func (m *messages) load(l *Loader, patterns ...string) (string, error) {
	return l.Load(context.Background(), patterns,
		func(s string) { m.progress = append(m.progress, s) },
		func(s string) { m.failure = append(m.failure, s) })
}

func TestLoader_Available(t *testing.T) {
	l := NewLoader(testPackages, NewEngine())
	names, err := l.Available()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"broken", "cycle/a", "cycle/b", "math", "util/join", "util/strings"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Available (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadAndUse(t *testing.T) {
	e := newTestEngine(t)
	l := NewLoader(testPackages, e)
	var m messages

	final, err := m.load(l, "math")
	if err != nil {
		t.Fatal(err)
	}
	if final != "Loaded math" {
		t.Errorf("final message = %q, want %q", final, "Loaded math")
	}
	if diff := cmp.Diff([]string{"Loading math"}, m.progress); diff != "" {
		t.Errorf("progress (-want +got):\n%s", diff)
	}

	outcome, _ := evaluate(e, `load("math", "square")`+"\nsquare(3)")
	if outcome.Failed {
		t.Fatal(outcome.FailureDetail)
	}
	if got := e.Repr(outcome.Value); got != "9" {
		t.Errorf("square(3) = %s, want 9", got)
	}
	// Bindings made by load persist.
	outcome, _ = evaluate(e, "square(4)")
	if got := e.Repr(outcome.Value); got != "16" {
		t.Errorf("square(4) = %s, want 16", got)
	}

	final, err = m.load(l, "math")
	if err != nil || final != "No new packages to load" {
		t.Errorf("loading again -> (%q, %v)", final, err)
	}
}

func TestLoader_GlobAndDependencies(t *testing.T) {
	e := newTestEngine(t)
	l := NewLoader(testPackages, e)
	var m messages

	final, err := m.load(l, "util/*")
	if err != nil {
		t.Fatal(err)
	}
	if final != "Loaded util/join, util/strings" {
		t.Errorf("final message = %q", final)
	}
	wantProgress := []string{"Loading util/join, util/strings", "strings ready"}
	if diff := cmp.Diff(wantProgress, m.progress); diff != "" {
		t.Errorf("progress (-want +got):\n%s", diff)
	}

	outcome, _ := evaluate(e, `load("util/strings", "shout")`+"\nshout('hi')")
	if got := e.Repr(outcome.Value); got != `"HI!"` {
		t.Errorf("shout('hi') = %s (%s)", got, outcome.FailureDetail)
	}
}

func TestLoader_DependencyLoadedOnDemand(t *testing.T) {
	e := newTestEngine(t)
	l := NewLoader(testPackages, e)
	var m messages

	if _, err := m.load(l, "util/strings"); err != nil {
		t.Fatal(err)
	}
	if !e.Loaded("util/join") {
		t.Errorf("dependency util/join was not loaded")
	}
}

func TestLoader_Failures(t *testing.T) {
	e := newTestEngine(t)
	l := NewLoader(testPackages, e)
	var m messages

	_, err := m.load(l, "nope", "broken", "cycle/a", "[")
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("err = %v, want ErrLoadFailed", err)
	}
	for _, name := range []string{"nope", "broken", "cycle/a", "["} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if len(m.failure) != 4 {
		t.Fatalf("got failure messages %q, want 4", m.failure)
	}
	if m.failure[0] != "No known package with name 'nope'" {
		t.Errorf("failure[0] = %q", m.failure[0])
	}
	if m.failure[1] != "Invalid package pattern '['" {
		t.Errorf("failure[1] = %q", m.failure[1])
	}
	if !strings.Contains(m.failure[2], "division by zero") {
		t.Errorf("failure[2] = %q, want a division by zero error", m.failure[2])
	}
	if !strings.Contains(m.failure[3], "cycle in load graph") {
		t.Errorf("failure[3] = %q, want a cycle error", m.failure[3])
	}
	if e.Loaded("broken") || e.Loaded("cycle/a") {
		t.Errorf("failed packages were registered")
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	l := NewLoader(testPackages, newTestEngine(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, []string{"math"}, func(string) {}, func(string) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

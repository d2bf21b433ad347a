package eval

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.starlark.net/starlark"

	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/tt"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return e
}

func evaluate(e *Engine, src string) (console.Outcome, string) {
	var sb strings.Builder
	outcome := e.Evaluate(src, &sb)
	return outcome, sb.String()
}

func TestEvaluate_ExpressionValue(t *testing.T) {
	e := newTestEngine(t)
	outcome, out := evaluate(e, "2 + 3")
	if outcome.Failed || out != "" {
		t.Fatalf("unexpected outcome %+v, output %q", outcome, out)
	}
	if got := e.Repr(outcome.Value); got != "5" {
		t.Errorf("value repr = %q, want 5", got)
	}
}

func TestEvaluate_StatementsAndPrint(t *testing.T) {
	e := newTestEngine(t)
	outcome, out := evaluate(e, "a = 1\nb = 2\nprint(a + b)\nprint('x')")
	if outcome.Failed || outcome.Value != nil {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	if out != "3\nx\n" {
		t.Errorf("output = %q, want %q", out, "3\nx\n")
	}

	// Globals persist across evaluations.
	outcome, _ = evaluate(e, "a * 10")
	if got := e.Repr(outcome.Value); got != "10" {
		t.Errorf("a * 10 = %s, want 10", got)
	}
}

func TestEvaluate_MultiLineWithTrailingExpression(t *testing.T) {
	e := newTestEngine(t)
	outcome, out := evaluate(e, "x = 2\nprint(x)\nx + 3")
	if out != "2\n" {
		t.Errorf("output = %q, want %q", out, "2\n")
	}
	if got := e.Repr(outcome.Value); got != "5" {
		t.Errorf("value repr = %q, want 5", got)
	}
}

func TestEvaluate_TopLevelControlFlow(t *testing.T) {
	e := newTestEngine(t)
	_, out := evaluate(e, "for i in range(3):\n    print(i)\n")
	if out != "0\n1\n2\n" {
		t.Errorf("output = %q", out)
	}
	_, out = evaluate(e, "n = 0\nwhile n < 2:\n    n += 1\nprint(n)")
	if out != "2\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEvaluate_NoneIsNoValue(t *testing.T) {
	e := newTestEngine(t)
	outcome, out := evaluate(e, "print('hi')")
	if outcome.Value != nil || out != "hi\n" {
		t.Errorf("got value %v, output %q", outcome.Value, out)
	}
}

func TestEvaluate_Failures(t *testing.T) {
	e := newTestEngine(t)
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"1/0", "division by zero"},
		{"undefined_name", "undefined: undefined_name"},
		{"x = (", "got end of file"},
		{"def f():\n    fail('boom')\nf()", "boom"},
	} {
		outcome, _ := evaluate(e, tc.src)
		if !outcome.Failed {
			t.Errorf("%q did not fail", tc.src)
			continue
		}
		if !strings.Contains(outcome.FailureDetail, tc.want) {
			t.Errorf("%q failed with %q, want it to contain %q", tc.src, outcome.FailureDetail, tc.want)
		}
	}
}

func TestEvaluate_TracebackForRuntimeErrors(t *testing.T) {
	e := newTestEngine(t)
	outcome, _ := evaluate(e, "1/0")
	if !strings.HasPrefix(outcome.FailureDetail, "Traceback") {
		t.Errorf("FailureDetail = %q, want a traceback", outcome.FailureDetail)
	}
}

func TestCompileCheck(t *testing.T) {
	e := NewEngine()
	tt.Test(t, tt.Fn("CompileCheck", e.CompileCheck), tt.Table{
		tt.Args("x = 1").Rets(console.Complete),
		tt.Args("print(1)").Rets(console.Complete),
		tt.Args("").Rets(console.Complete),
		tt.Args("for i in range(3):").Rets(console.Incomplete),
		tt.Args("def f():").Rets(console.Incomplete),
		tt.Args("print(1,").Rets(console.Incomplete),
		tt.Args(`"""doc`).Rets(console.Incomplete),
		tt.Args("1 +").Rets(console.Malformed),
		tt.Args("x = = 1").Rets(console.Malformed),
		tt.Args("'abc").Rets(console.Malformed),
	})
}

func TestRepr(t *testing.T) {
	e := NewEngine()
	tt.Test(t, tt.Fn("Repr", e.Repr), tt.Table{
		tt.Args(nil).Rets("None"),
		tt.Args(starlark.String("a")).Rets(`"a"`),
		tt.Args(starlark.MakeInt(42)).Rets("42"),
		tt.Args(3).Rets("3"),
	})
}

func TestBanner(t *testing.T) {
	e := newTestEngine(t)
	outcome, out := evaluate(e, e.BannerCode())
	if outcome.Failed {
		t.Fatal(outcome.FailureDetail)
	}
	if !strings.HasPrefix(out, "Starlark ") || !strings.Contains(out, " on ") {
		t.Errorf("banner = %q", out)
	}
}

func TestInit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewEngine().Init(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Init -> %v, want context.Canceled", err)
	}
}

func TestLoad_NotLoaded(t *testing.T) {
	e := newTestEngine(t)
	outcome, _ := evaluate(e, `load("math", "square")`)
	if !outcome.Failed || !strings.Contains(outcome.FailureDetail, ErrNotLoaded.Error()) {
		t.Errorf("outcome = %+v, want failure mentioning %q", outcome, ErrNotLoaded)
	}
}

func TestNewLoadPackage(t *testing.T) {
	e := newTestEngine(t)
	var started [][]string
	e.SetGlobal("load_package", NewLoadPackage(func(patterns ...string) {
		started = append(started, patterns)
	}))

	outcome, _ := evaluate(e, `load_package("a", "b/*")`)
	if outcome.Failed || outcome.Value != nil {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	if len(started) != 1 || strings.Join(started[0], " ") != "a b/*" {
		t.Errorf("started = %v", started)
	}

	for _, src := range []string{"load_package()", "load_package(1)", "load_package(name='a')"} {
		if outcome, _ := evaluate(e, src); !outcome.Failed {
			t.Errorf("%s did not fail", src)
		}
	}
	if e.Global("load_package") == nil {
		t.Errorf("load_package global missing")
	}
}

func TestEvaluateFile_NamesFile(t *testing.T) {
	e := newTestEngine(t)
	outcome := e.EvaluateFile("script.star", "1/0", io.Discard)
	if !outcome.Failed || !strings.Contains(outcome.FailureDetail, "script.star:1:") {
		t.Errorf("FailureDetail = %q, want it to name script.star", outcome.FailureDetail)
	}
}

func TestSetArgv(t *testing.T) {
	e := newTestEngine(t)
	e.SetArgv([]string{"a.star", "x"})
	outcome, _ := evaluate(e, "argv")
	if got := e.Repr(outcome.Value); got != `["a.star", "x"]` {
		t.Errorf("argv = %s", got)
	}
	if outcome, _ := evaluate(e, `argv.append("y")`); !outcome.Failed {
		t.Errorf("argv is not frozen")
	}
}

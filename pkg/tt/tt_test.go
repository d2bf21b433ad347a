package tt

import (
	"fmt"
	"strings"
	"testing"
)

// recorder implements T and records the reported errors.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func addsub(x, y int) (int, int) { return x + y, x - y }

func join(sep string, parts ...string) string { return strings.Join(parts, sep) }

func TestPass(t *testing.T) {
	var r recorder
	Test(&r, Fn("addsub", addsub), Table{
		Args(1, 10).Rets(11, -9),
		Args(0, 0).Rets(0, 0),
	})
	if len(r) > 0 {
		t.Errorf("got errors %v, want none", r)
	}
}

func TestFail_Diff(t *testing.T) {
	var r recorder
	Test(&r, Fn("add", add), Table{Args(1, 10).Rets(12)})
	assertOneError(t, r, "add(1, 10) returns (-Wanted +Actual):\n")
}

func TestFail_CustomArgsFmt(t *testing.T) {
	var r recorder
	Test(&r, Fn("add", add).ArgsFmt("x=%d, y=%d"), Table{Args(1, 2).Rets(4)})
	assertOneError(t, r, "add(x=1, y=2) returns")
}

func TestFail_WrongArity(t *testing.T) {
	var r recorder
	Test(&r, Fn("addsub", addsub), Table{Args(1, 2).Rets(3)})
	assertOneError(t, r, "returns 2 values, want 1")
}

func TestMatcher(t *testing.T) {
	var r recorder
	Test(&r, Fn("addsub", addsub), Table{Args(1, 2).Rets(3, Any)})
	if len(r) > 0 {
		t.Errorf("got errors %v, want none", r)
	}
}

func TestVariadicAndNilArgs(t *testing.T) {
	var r recorder
	Test(&r, Fn("join", join), Table{
		Args("-", "a", "b").Rets("a-b"),
		Args("-").Rets(""),
	})
	if len(r) > 0 {
		t.Errorf("got errors %v, want none", r)
	}
}

func assertOneError(t *testing.T, r recorder, wantPrefix string) {
	t.Helper()
	if len(r) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r), r)
	}
	if !strings.Contains(r[0], wantPrefix) {
		t.Errorf("error %q does not contain %q", r[0], wantPrefix)
	}
}

package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.pyweb.sh/pkg/cli/histutil"
	"src.pyweb.sh/pkg/console"
)

func TestModel_EchoSplitsLines(t *testing.T) {
	m := NewModel(nil)
	m.Echo("a\nb")
	m.Error("oops")

	want := []Line{{"a", false}, {"b", false}, {"oops", true}}
	if diff := cmp.Diff(want, m.Lines()); diff != "" {
		t.Errorf("Lines (-want +got):\n%s", diff)
	}
}

func TestModel_NegativeIndices(t *testing.T) {
	m := NewModel(nil)
	m.Echo("a\nb\nc")
	m.UpdateLine(-1, "C")
	m.RemoveLine(-2)
	m.RemoveLine(10)
	m.UpdateLine(-10, "x")

	if got, want := m.Transcript(), "a\nC"; got != want {
		t.Errorf("Transcript = %q, want %q", got, want)
	}
}

func TestModel_OutputLimit(t *testing.T) {
	m := NewModel(nil)
	m.Echo("1\n2\n3")
	m.SetOutputLimit(2)
	m.Echo("4")

	if got, want := m.Transcript(), "3\n4"; got != want {
		t.Errorf("Transcript = %q, want %q", got, want)
	}
}

func TestModel_Editing(t *testing.T) {
	m := NewModel(nil)
	m.SetCurrentLine("print()")
	m.InvokeKeyAction(console.KeyBackwardChar)
	m.InsertAtCursor("1")

	if got := m.CurrentLine(); got != "print(1)" {
		t.Errorf("CurrentLine = %q, want print(1)", got)
	}
	if got := m.TextBeforeCursor(); got != "print(1" {
		t.Errorf("TextBeforeCursor = %q, want print(1", got)
	}

	m.InvokeKeyAction(KeyBackspace)
	if got := m.CurrentLine(); got != "print()" {
		t.Errorf("after backspace, CurrentLine = %q, want print()", got)
	}
	m.InvokeKeyAction("CTRL+K")
	if got := m.CurrentLine(); got != "print(" {
		t.Errorf("after CTRL+K, CurrentLine = %q, want print(", got)
	}
	m.InvokeKeyAction("HOME")
	m.InvokeKeyAction("RIGHT")
	m.InvokeKeyAction(KeyDelete)
	if got := m.CurrentLine(); got != "pint(" {
		t.Errorf("after DELETE, CurrentLine = %q, want pint(", got)
	}
	m.InvokeKeyAction("CTRL+U")
	if got, dot := m.CurrentLine(), m.Dot(); got != "int(" || dot != 0 {
		t.Errorf("after CTRL+U, line and dot = %q, %d, want int(, 0", got, dot)
	}
	m.InvokeKeyAction("NO-SUCH-KEY")
}

func TestModel_Exec(t *testing.T) {
	m := NewModel(nil)
	m.SetPrompt(">>> ")
	accept := true
	var submitted []string
	m.Bind(console.EventBeforeSubmit, func(string) bool { return accept })
	m.Bind(console.EventSubmit, func(line string) bool {
		submitted = append(submitted, line)
		return true
	})

	m.SetCurrentLine("x = 1")
	m.InvokeKeyAction(KeyEnter)
	accept = false
	m.SetCurrentLine("y = 2")
	m.InvokeKeyAction(KeyEnter)

	if diff := cmp.Diff([]string{"x = 1"}, submitted); diff != "" {
		t.Errorf("submitted (-want +got):\n%s", diff)
	}
	if got := m.Transcript(); got != ">>> x = 1" {
		t.Errorf("Transcript = %q, want %q", got, ">>> x = 1")
	}
	if got := m.CurrentLine(); got != "y = 2" {
		t.Errorf("rejected line was not kept, CurrentLine = %q", got)
	}
	if diff := cmp.Diff([]string{"x = 1"}, m.HistoryEntries()); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestModel_ExecDoesNotPushHistory(t *testing.T) {
	m := NewModel(nil)
	m.Exec("a")
	if n := len(m.HistoryEntries()); n != 0 {
		t.Errorf("Exec added %d history entries, want 0", n)
	}
}

func TestModel_HandlersCanCallBack(t *testing.T) {
	m := NewModel(nil)
	m.Bind(console.EventContinue, func(string) bool {
		m.Echo("continued " + m.CurrentLine())
		m.SetCurrentLine("")
		return true
	})
	m.Bind(console.EventCancel, func(string) bool {
		m.Echo("cancelled")
		return true
	})

	m.SetCurrentLine("if x:")
	m.InvokeKeyAction(KeyShiftEnter)
	m.InvokeKeyAction(KeyInterrupt)

	if got, want := m.Transcript(), "continued if x:\ncancelled"; got != want {
		t.Errorf("Transcript = %q, want %q", got, want)
	}
}

func TestModel_Paste(t *testing.T) {
	m := NewModel(nil)
	m.SetCurrentLine("ab")
	m.InvokeKeyAction("LEFT")
	m.Paste("XY")
	if got := m.CurrentLine(); got != "aXYb" {
		t.Errorf("CurrentLine = %q, want aXYb", got)
	}

	var pasted string
	m.Bind(console.EventPaste, func(text string) bool {
		pasted = text
		return true
	})
	m.Paste("zz")
	if pasted != "zz" || m.CurrentLine() != "aXYb" {
		t.Errorf("pasted = %q, line = %q; want handler to get zz", pasted, m.CurrentLine())
	}
}

func TestModel_HistoryWalk(t *testing.T) {
	m := NewModel(histutil.NewMem("print(1)", "x = 1", "print(2)"))
	m.SetCurrentLine("pr")

	m.InvokeKeyAction("UP")
	if got := m.CurrentLine(); got != "print(2)" {
		t.Errorf("UP -> %q, want print(2)", got)
	}
	m.InvokeKeyAction("UP")
	if got := m.CurrentLine(); got != "print(1)" {
		t.Errorf("UP -> %q, want print(1)", got)
	}
	m.InvokeKeyAction("UP")
	if got := m.CurrentLine(); got != "print(1)" {
		t.Errorf("UP at oldest -> %q, want print(1)", got)
	}
	m.InvokeKeyAction("DOWN")
	m.InvokeKeyAction("DOWN")
	if got := m.CurrentLine(); got != "pr" {
		t.Errorf("DOWN past newest -> %q, want pr", got)
	}
}

func TestModel_Drain(t *testing.T) {
	m := NewModel(nil)
	m.Echo("1\n2\n3")
	drained := m.Drain(1)

	if diff := cmp.Diff([]Line{{"1", false}, {"2", false}}, drained); diff != "" {
		t.Errorf("Drain (-want +got):\n%s", diff)
	}
	if got := m.Transcript(); got != "3" {
		t.Errorf("Transcript = %q, want 3", got)
	}
	if drained := m.Drain(5); drained != nil {
		t.Errorf("Drain(5) = %v, want nil", drained)
	}
}

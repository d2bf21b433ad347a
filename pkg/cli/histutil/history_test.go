package histutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.pyweb.sh/pkg/store"
	"src.pyweb.sh/pkg/store/storetest"
)

var errMock = errors.New("mock error")

type failingStore struct{ Store }

func (failingStore) AddCmd(string) (int, error) { return 0, errMock }
func (failingStore) ClearCmds() error          { return errMock }

func TestHistory_AppendAndEntries(t *testing.T) {
	h := NewMem("old")
	h.Append("a = 1")
	h.Append("")

	want := []string{"old", "a = 1", ""}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries (-want +got):\n%s", diff)
	}
}

func TestHistory_StoreErrorsKeepSessionEntries(t *testing.T) {
	h, err := New(failingStore{NewMemStore()})
	if err != nil {
		t.Fatal(err)
	}
	h.Append("x")
	if diff := cmp.Diff([]string{"x"}, h.Entries()); diff != "" {
		t.Errorf("Entries (-want +got):\n%s", diff)
	}
	h.Clear()
	if len(h.Entries()) != 0 {
		t.Errorf("Entries after Clear = %v, want empty", h.Entries())
	}
}

func TestHistory_DBStore(t *testing.T) {
	db := storetest.MustTempStore(t)
	for _, cmd := range []string{"1", "2", "3"} {
		db.AddCmd(cmd)
	}

	h, err := New(NewDBStore(db, 2))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2", "3"}, h.Entries()); diff != "" {
		t.Errorf("Entries (-want +got):\n%s", diff)
	}

	h.Append("4")
	if cmd, err := db.Cmd(4); cmd != "4" || err != nil {
		t.Errorf("db.Cmd(4) -> (%q, %v), want (\"4\", nil)", cmd, err)
	}

	h.Clear()
	if _, err := db.Cmd(4); !errors.Is(err, store.ErrNoMatchingCmd) {
		t.Errorf("db.Cmd(4) after Clear -> %v, want ErrNoMatchingCmd", err)
	}
}

func TestCursor(t *testing.T) {
	h := NewMem("print(1)", "x = 2", "", "print(2)", "print(2)", "print(3)")
	c := h.Cursor("print")

	for _, want := range []string{"print(3)", "print(2)", "print(1)"} {
		got, err := c.Prev()
		if got != want || err != nil {
			t.Errorf("Prev -> (%q, %v), want (%q, nil)", got, err, want)
		}
	}
	if _, err := c.Prev(); err != ErrEndOfHistory {
		t.Errorf("Prev at oldest -> %v, want ErrEndOfHistory", err)
	}
	for _, want := range []string{"print(2)", "print(3)"} {
		got, err := c.Next()
		if got != want || err != nil {
			t.Errorf("Next -> (%q, %v), want (%q, nil)", got, err, want)
		}
	}
	if _, err := c.Next(); err != ErrEndOfHistory {
		t.Errorf("Next at newest -> %v, want ErrEndOfHistory", err)
	}
	if _, err := c.Next(); err != ErrEndOfHistory {
		t.Errorf("Next past newest -> %v, want ErrEndOfHistory", err)
	}
	if got, _ := c.Prev(); got != "print(3)" {
		t.Errorf("Prev after walking past newest -> %q, want print(3)", got)
	}
}

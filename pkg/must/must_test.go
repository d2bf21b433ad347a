package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK(t *testing.T) {
	OK(nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("OK did not panic on an error")
		}
	}()
	OK(errors.New("x"))
}

func TestOK1(t *testing.T) {
	if got := OK1(42, nil); got != 42 {
		t.Errorf("OK1 -> %v, want 42", got)
	}
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b", "rc.star")
	WriteFile(name, "x = 1")
	if got := ReadFileString(name); got != "x = 1" {
		t.Errorf("read back %q", got)
	}
}

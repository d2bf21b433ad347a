// Package storetest provides helpers for tests that need a history store.
package storetest

import (
	"path/filepath"
	"testing"

	"src.pyweb.sh/pkg/store"
)

// MustTempStore returns a Store backed by a file in a temporary directory.
// The store is closed when the test finishes.
func MustTempStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open temporary store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close temporary store: %v", err)
		}
	})
	return st
}

// Package must contains functions that panic on errors, for use in tests and
// test fixtures.
package must

import (
	"os"
	"path/filepath"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 panics if err is not nil, and returns v otherwise.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 panics if err is not nil, and returns v1 and v2 otherwise.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) { return OK2(os.Pipe()) }

// Chdir wraps os.Chdir.
func Chdir(dir string) { OK(os.Chdir(dir)) }

// ReadFileString reads a whole file as a string.
func ReadFileString(name string) string { return string(OK1(os.ReadFile(name))) }

// MkdirAll calls os.MkdirAll for each argument.
func MkdirAll(names ...string) {
	for _, name := range names {
		OK(os.MkdirAll(name, 0o700))
	}
}

// WriteFile writes data to a file, after creating all ancestor directories that
// don't exist.
func WriteFile(name, data string) {
	MkdirAll(filepath.Dir(name))
	OK(os.WriteFile(name, []byte(data), 0o600))
}

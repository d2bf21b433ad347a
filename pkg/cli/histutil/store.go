// Package histutil provides the history of a console: the lines recalled with
// the Up and Down keys, optionally persisted in a database.
package histutil

import (
	"errors"

	"src.pyweb.sh/pkg/store"
)

// ErrEndOfHistory is returned by Cursor when it walks past either end of the
// history.
var ErrEndOfHistory = errors.New("end of history")

// Store is a backend for history entries.
type Store interface {
	AllCmds() ([]store.Cmd, error)
	AddCmd(text string) (int, error)
	ClearCmds() error
}

// DB is the part of *store.Store used by NewDBStore.
type DB interface {
	LastCmds(n int) ([]store.Cmd, error)
	AddCmd(text string) (int, error)
	ClearCmds() error
}

// NewMemStore returns a Store keeping entries in memory.
func NewMemStore(texts ...string) Store {
	cmds := make([]store.Cmd, len(texts))
	for i, text := range texts {
		cmds[i] = store.Cmd{Text: text, Seq: i}
	}
	return &memStore{cmds}
}

type memStore struct{ cmds []store.Cmd }

func (s *memStore) AllCmds() ([]store.Cmd, error) {
	return append([]store.Cmd(nil), s.cmds...), nil
}

func (s *memStore) AddCmd(text string) (int, error) {
	seq := len(s.cmds)
	s.cmds = append(s.cmds, store.Cmd{Text: text, Seq: seq})
	return seq, nil
}

func (s *memStore) ClearCmds() error {
	s.cmds = nil
	return nil
}

// NewDBStore returns a Store backed by a database. AllCmds returns at most
// limit of the most recent entries.
func NewDBStore(db DB, limit int) Store {
	return dbStore{db, limit}
}

type dbStore struct {
	db    DB
	limit int
}

func (s dbStore) AllCmds() ([]store.Cmd, error) { return s.db.LastCmds(s.limit) }
func (s dbStore) AddCmd(text string) (int, error) { return s.db.AddCmd(text) }
func (s dbStore) ClearCmds() error                { return s.db.ClearCmds() }

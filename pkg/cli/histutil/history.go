package histutil

import (
	"strings"
	"sync"

	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("history")

// History is the history of one console. Entries loaded from the Store when
// the History is created come first, followed by entries appended in this
// session. Appended entries are also written to the Store; write errors are
// logged and do not lose the entry for this session.
//
// A History is safe for concurrent use.
type History struct {
	store Store

	mu      sync.Mutex
	entries []string
}

// New creates a History backed by st.
func New(st Store) (*History, error) {
	cmds, err := st.AllCmds()
	if err != nil {
		return nil, err
	}
	entries := make([]string, len(cmds))
	for i, cmd := range cmds {
		entries[i] = cmd.Text
	}
	return &History{store: st, entries: entries}, nil
}

// NewMem creates a History that is not persisted.
func NewMem(texts ...string) *History {
	h, _ := New(NewMemStore(texts...))
	return h
}

// Append adds an entry.
func (h *History) Append(line string) {
	h.mu.Lock()
	h.entries = append(h.entries, line)
	h.mu.Unlock()
	if _, err := h.store.AddCmd(line); err != nil {
		logger.Warn("cannot persist history entry", "err", err)
	}
}

// Clear removes all entries, including persisted ones.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
	if err := h.store.ClearCmds(); err != nil {
		logger.Warn("cannot clear persisted history", "err", err)
	}
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Cursor returns a Cursor over a snapshot of the entries that start with
// prefix. Blank entries and repetitions of the entry just visited are
// skipped.
func (h *History) Cursor(prefix string) *Cursor {
	var matches []string
	for _, e := range h.Entries() {
		if strings.TrimSpace(e) == "" || !strings.HasPrefix(e, prefix) {
			continue
		}
		matches = append(matches, e)
	}
	return &Cursor{matches, len(matches)}
}

// Cursor walks through history entries. It starts after the newest entry.
type Cursor struct {
	entries []string
	index   int
}

// Prev moves to the previous entry that differs from the current one.
func (c *Cursor) Prev() (string, error) {
	for i := c.index - 1; i >= 0; i-- {
		if c.index < len(c.entries) && c.entries[i] == c.entries[c.index] {
			continue
		}
		c.index = i
		return c.entries[i], nil
	}
	return "", ErrEndOfHistory
}

// Next moves to the next entry that differs from the current one. Moving
// past the newest entry returns ErrEndOfHistory and leaves the cursor after
// the newest entry.
func (c *Cursor) Next() (string, error) {
	if c.index >= len(c.entries) {
		return "", ErrEndOfHistory
	}
	for i := c.index + 1; i < len(c.entries); i++ {
		if c.entries[i] == c.entries[c.index] {
			continue
		}
		c.index = i
		return c.entries[i], nil
	}
	c.index = len(c.entries)
	return "", ErrEndOfHistory
}

// Package cli implements the terminal a console runs in: an in-memory Model
// of the transcript and the line being edited, and a TTY that renders a Model
// with tcell and feeds it key events.
package cli

import (
	"strings"
	"sync"

	"src.pyweb.sh/pkg/cli/histutil"
	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("cli")

// Line is a line of the transcript.
type Line struct {
	Text string
	// Err is true for lines written with Error.
	Err bool
}

// Model is a terminal without a screen. It implements console.Terminal.
//
// A Model is safe for concurrent use. Handlers and key actions are called
// without the Model's lock held, so they may call back into the Model.
type Model struct {
	history *histutil.History

	mu       sync.Mutex
	lines    []Line
	limit    int
	prompt   string
	line     []rune
	dot      int
	cursor   *histutil.Cursor
	saved    string // line being edited when the history walk started
	handlers map[console.Event]console.Handler
	actions  map[string]func()
	onChange func()
}

var _ console.Terminal = (*Model)(nil)

// NewModel creates a Model using the given history. A nil history is
// replaced by an empty in-memory one.
func NewModel(h *histutil.History) *Model {
	if h == nil {
		h = histutil.NewMem()
	}
	m := &Model{history: h, handlers: map[console.Event]console.Handler{}}
	m.actions = m.defaultActions()
	return m
}

// OnChange sets a function called after every change. It is called without
// the Model's lock held.
func (m *Model) OnChange(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = f
}

// SetOutputLimit sets the maximum number of transcript lines kept. Older
// lines are dropped. A limit below 1 means no limit.
func (m *Model) SetOutputLimit(n int) {
	m.mutate(func() {
		m.limit = n
		m.trim()
	})
}

func (m *Model) mutate(f func()) {
	m.mu.Lock()
	f()
	onChange := m.onChange
	m.mu.Unlock()
	if onChange != nil {
		onChange()
	}
}

func (m *Model) trim() {
	if m.limit > 0 && len(m.lines) > m.limit {
		m.lines = append([]Line(nil), m.lines[len(m.lines)-m.limit:]...)
	}
}

func (m *Model) appendText(text string, isErr bool) {
	for _, s := range strings.Split(text, "\n") {
		m.lines = append(m.lines, Line{s, isErr})
	}
	m.trim()
}

// Resolves a possibly negative index. Returns -1 if out of range.
func (m *Model) index(i int) int {
	if i < 0 {
		i += len(m.lines)
	}
	if i < 0 || i >= len(m.lines) {
		return -1
	}
	return i
}

func (m *Model) Echo(text string) { m.mutate(func() { m.appendText(text, false) }) }

func (m *Model) Error(text string) { m.mutate(func() { m.appendText(text, true) }) }

func (m *Model) RemoveLine(index int) {
	m.mutate(func() {
		if i := m.index(index); i >= 0 {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
		}
	})
}

func (m *Model) UpdateLine(index int, text string) {
	m.mutate(func() {
		if i := m.index(index); i >= 0 {
			m.lines[i].Text = text
		}
	})
}

func (m *Model) Clear() { m.mutate(func() { m.lines = nil }) }

func (m *Model) SetPrompt(prompt string) { m.mutate(func() { m.prompt = prompt }) }

func (m *Model) Prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}

func (m *Model) InsertAtCursor(text string) {
	if text == "" {
		return
	}
	m.mutate(func() {
		r := []rune(text)
		m.line = append(m.line[:m.dot], append(r, m.line[m.dot:]...)...)
		m.dot += len(r)
		m.cursor = nil
	})
}

func (m *Model) SetCurrentLine(text string) {
	m.mutate(func() {
		m.line = []rune(text)
		m.dot = len(m.line)
		m.cursor = nil
	})
}

func (m *Model) CurrentLine() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.line)
}

func (m *Model) TextBeforeCursor() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.line[:m.dot])
}

// Dot returns the cursor position within the current line, in runes.
func (m *Model) Dot() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dot
}

func (m *Model) History() console.History { return m.history }

// HistoryEntries returns the entries of the history.
func (m *Model) HistoryEntries() []string { return m.history.Entries() }

func (m *Model) Bind(ev console.Event, h console.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[ev] = h
}

func (m *Model) handler(ev console.Event) console.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handlers[ev]
}

func (m *Model) Exec(line string) { m.exec(line, false) }

func (m *Model) exec(line string, pushHistory bool) {
	if h := m.handler(console.EventBeforeSubmit); h != nil && !h(line) {
		return
	}
	if pushHistory && strings.TrimSpace(line) != "" {
		m.history.Append(line)
	}
	m.mutate(func() {
		m.appendText(m.prompt+line, false)
		m.line, m.dot, m.cursor = nil, 0, nil
	})
	if h := m.handler(console.EventSubmit); h != nil {
		h(line)
	}
}

// Paste inserts text as pasted by the user.
func (m *Model) Paste(text string) {
	if h := m.handler(console.EventPaste); h != nil {
		h(text)
		return
	}
	m.InsertAtCursor(text)
}

// Lines returns a copy of the transcript.
func (m *Model) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Line(nil), m.lines...)
}

// Transcript returns the text of the transcript, one line per transcript
// line.
func (m *Model) Transcript() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, len(m.lines))
	for i, l := range m.lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// Drain removes and returns all transcript lines except the last keep ones.
func (m *Model) Drain(keep int) []Line {
	var drained []Line
	m.mutate(func() {
		n := len(m.lines) - keep
		if n <= 0 {
			return
		}
		drained = append(drained, m.lines[:n]...)
		m.lines = append([]Line(nil), m.lines[n:]...)
	})
	return drained
}

// Snapshot is a consistent view of a Model, used for rendering.
type Snapshot struct {
	Lines  []Line
	Prompt string
	Line   []rune
	Dot    int
}

// Snapshot returns the current state.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Lines:  append([]Line(nil), m.lines...),
		Prompt: m.prompt,
		Line:   append([]rune(nil), m.line...),
		Dot:    m.dot,
	}
}

package cli

import (
	"src.pyweb.sh/pkg/console"
)

// Names of key actions. Keys are named by their modifiers and base key, as
// in "CTRL+B" or "SHIFT+ENTER".
const (
	KeyEnter      = "ENTER"
	KeyShiftEnter = "SHIFT+ENTER"
	KeyBackspace  = "BACKSPACE"
	KeyDelete     = "DELETE"
	KeyInterrupt  = "CTRL+C"
	KeyTab        = "TAB"
)

// InvokeKeyAction performs the action bound to the named key. Unknown names
// are ignored.
func (m *Model) InvokeKeyAction(name string) {
	m.mu.Lock()
	f := m.actions[name]
	m.mu.Unlock()
	if f != nil {
		f()
	} else {
		logger.Debug("no action for key", "key", name)
	}
}

// BindKey binds an action to a key, replacing any existing one.
func (m *Model) BindKey(name string, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[name] = f
}

func (m *Model) defaultActions() map[string]func() {
	backwardChar := func() { m.moveDot(func(dot, _ int) int { return dot - 1 }) }
	forwardChar := func() { m.moveDot(func(dot, _ int) int { return dot + 1 }) }
	lineStart := func() { m.moveDot(func(int, int) int { return 0 }) }
	lineEnd := func() { m.moveDot(func(_, n int) int { return n }) }
	historyPrev := func() { m.walkHistory(true) }
	historyNext := func() { m.walkHistory(false) }

	return map[string]func(){
		KeyEnter: func() { m.exec(m.CurrentLine(), true) },
		KeyShiftEnter: func() {
			if h := m.handler(console.EventContinue); h != nil {
				h(m.CurrentLine())
			}
		},
		KeyBackspace: func() {
			if h := m.handler(console.EventBackspace); h != nil && h("") {
				return
			}
			m.mutate(func() {
				if m.dot > 0 {
					m.line = append(m.line[:m.dot-1], m.line[m.dot:]...)
					m.dot--
				}
			})
		},
		KeyDelete: func() {
			m.mutate(func() {
				if m.dot < len(m.line) {
					m.line = append(m.line[:m.dot], m.line[m.dot+1:]...)
				}
			})
		},
		KeyInterrupt: func() {
			if h := m.handler(console.EventCancel); h != nil {
				h("")
			}
		},
		KeyTab: func() { m.InsertAtCursor("    ") },

		console.KeyBackwardChar: backwardChar,
		"LEFT":                  backwardChar,
		"CTRL+F":                forwardChar,
		"RIGHT":                 forwardChar,
		"CTRL+A":                lineStart,
		"HOME":                  lineStart,
		"CTRL+E":                lineEnd,
		"END":                   lineEnd,
		"UP":                    historyPrev,
		"CTRL+P":                historyPrev,
		"DOWN":                  historyNext,
		"CTRL+N":                historyNext,

		"CTRL+U": func() {
			m.mutate(func() {
				m.line = append([]rune(nil), m.line[m.dot:]...)
				m.dot = 0
			})
		},
		"CTRL+K": func() { m.mutate(func() { m.line = m.line[:m.dot] }) },
		"CTRL+L": m.Clear,
	}
}

func (m *Model) moveDot(f func(dot, n int) int) {
	m.mutate(func() {
		m.dot = max(0, min(len(m.line), f(m.dot, len(m.line))))
	})
}

// Replaces the current line with the previous or next history entry that
// starts with the line being edited when the walk started.
func (m *Model) walkHistory(prev bool) {
	m.mu.Lock()
	if m.cursor == nil {
		m.saved = string(m.line)
		m.mu.Unlock()
		c := m.history.Cursor(m.saved)
		m.mu.Lock()
		m.cursor = c
	}
	c, saved := m.cursor, m.saved
	m.mu.Unlock()

	var text string
	var err error
	if prev {
		text, err = c.Prev()
	} else {
		text, err = c.Next()
	}
	if err != nil {
		if prev {
			return
		}
		// Walked past the newest entry.
		text = saved
	}
	m.mutate(func() {
		m.line = []rune(text)
		m.dot = len(m.line)
	})
}

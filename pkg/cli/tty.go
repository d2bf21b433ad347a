package cli

import (
	"context"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TTY drives a Model with a tcell screen: it renders the Model after every
// change and turns key events into key actions.
type TTY struct {
	screen tcell.Screen
	model  *Model
	lp     *loop

	pasting bool
	paste   strings.Builder
}

// NewTTY initializes screen and returns a TTY showing m on it.
func NewTTY(screen tcell.Screen, m *Model) (*TTY, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnablePaste()
	t := &TTY{screen: screen, model: m}
	t.lp = newLoop(t.handle, t.redraw)
	m.OnChange(func() { t.lp.Redraw(false) })
	return t, nil
}

// Used as the data of the interrupt posted when the context is done.
type ctxDone struct{}

// Run processes events until the user presses Ctrl-D on an empty line, in
// which case it returns io.EOF, or until ctx is done.
func (t *TTY) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.lp.events <- ev:
			case <-stop:
				return
			}
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			t.screen.PostEvent(tcell.NewEventInterrupt(ctxDone{}))
		case <-stop:
		}
	}()
	err := t.lp.run()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return err
}

// Close restores the terminal.
func (t *TTY) Close() {
	t.model.OnChange(nil)
	t.screen.Fini()
}

func (t *TTY) redraw(full bool) {
	if full {
		t.screen.Sync()
	}
	draw(t.screen, t.model.Snapshot())
}

func (t *TTY) handle(e tcell.Event) {
	switch ev := e.(type) {
	case *tcell.EventResize:
		t.lp.Redraw(true)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(ctxDone); ok {
			t.lp.Quit(nil)
		}
	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.paste.Reset()
		} else if t.pasting {
			t.pasting = false
			t.model.Paste(t.paste.String())
		}
	case *tcell.EventKey:
		if t.pasting {
			t.paste.WriteString(pasteText(ev))
			return
		}
		if ev.Key() == tcell.KeyCtrlD {
			if t.model.CurrentLine() == "" {
				t.lp.Quit(io.EOF)
			} else {
				t.model.InvokeKeyAction(KeyDelete)
			}
			return
		}
		name, r := keyName(ev)
		if name != "" {
			t.model.InvokeKeyAction(name)
		} else if r != 0 {
			t.model.InsertAtCursor(string(r))
		}
	}
}

// Names a key event after the key action it invokes. For printable keys, the
// name is empty and the rune is returned instead.
func keyName(ev *tcell.EventKey) (string, rune) {
	k, mod := ev.Key(), ev.Modifiers()
	switch k {
	case tcell.KeyRune:
		return "", ev.Rune()
	case tcell.KeyEnter:
		if mod&(tcell.ModShift|tcell.ModAlt) != 0 {
			return KeyShiftEnter, 0
		}
		return KeyEnter, 0
	case tcell.KeyCtrlJ:
		// Sent by Ctrl-J and, in many terminals, by Shift-Enter.
		return KeyShiftEnter, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0
	case tcell.KeyTab:
		return KeyTab, 0
	case tcell.KeyDelete:
		return KeyDelete, 0
	case tcell.KeyLeft:
		return "LEFT", 0
	case tcell.KeyRight:
		return "RIGHT", 0
	case tcell.KeyUp:
		return "UP", 0
	case tcell.KeyDown:
		return "DOWN", 0
	case tcell.KeyHome:
		return "HOME", 0
	case tcell.KeyEnd:
		return "END", 0
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "CTRL+" + string(rune('A'+k-tcell.KeyCtrlA)), 0
	}
	return "", 0
}

// Text a key event contributes to a bracketed paste.
func pasteText(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		return "\n"
	case tcell.KeyTab:
		return "\t"
	}
	return ""
}

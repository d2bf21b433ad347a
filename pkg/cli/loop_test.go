package cli

import (
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func runeEvent(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func isCtrlD(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	return ok && k.Key() == tcell.KeyCtrlD
}

var ctrlD = tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModNone)

func TestLoop_HandlesEventsInOrder(t *testing.T) {
	var got []rune
	var lp *loop
	lp = newLoop(func(ev tcell.Event) {
		if isCtrlD(ev) {
			lp.Quit(nil)
			return
		}
		got = append(got, ev.(*tcell.EventKey).Rune())
	}, func(bool) {})

	for _, r := range "hello" {
		lp.Feed(runeEvent(r))
	}
	lp.Feed(ctrlD)
	if err := lp.run(); err != nil {
		t.Errorf("run -> %v, want nil", err)
	}
	if diff := cmp.Diff([]rune("hello"), got); diff != "" {
		t.Errorf("handled events (-want +got):\n%s", diff)
	}
}

func TestLoop_QuitStopsHandling(t *testing.T) {
	handled := 0
	var lp *loop
	lp = newLoop(func(tcell.Event) {
		handled++
		lp.Quit(io.EOF)
	}, func(bool) {})
	lp.Feed(runeEvent('a'))
	lp.Feed(runeEvent('b'))
	if err := lp.run(); err != io.EOF {
		t.Errorf("run -> %v, want %v", err, io.EOF)
	}
	if handled != 1 {
		t.Errorf("handled %d events, want 1", handled)
	}
}

func TestLoop_Draws(t *testing.T) {
	var fulls []bool
	drawn := make(chan struct{}, 10)
	var lp *loop
	lp = newLoop(func(ev tcell.Event) {
		if isCtrlD(ev) {
			lp.Quit(nil)
		}
	}, func(full bool) {
		fulls = append(fulls, full)
		drawn <- struct{}{}
	})

	done := make(chan error)
	go func() { done <- lp.run() }()
	// Initial draw.
	<-drawn
	lp.Redraw(true)
	<-drawn
	lp.Redraw(false)
	<-drawn
	lp.Feed(ctrlD)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
	// The last draw is the final one.
	if diff := cmp.Diff([]bool{true, true, false, false}, fulls); diff != "" {
		t.Errorf("draws (-want +got):\n%s", diff)
	}
}

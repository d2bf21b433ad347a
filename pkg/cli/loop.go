package cli

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Events that may queue up before the loop handles them.
const eventQueueSize = 128

// The event loop of a TTY. Handling events and drawing happen on the
// goroutine calling run, so the callbacks never run concurrently.
type loop struct {
	handle func(tcell.Event)
	// Draws the model; full is set when the screen must be repainted from
	// scratch.
	draw func(full bool)

	events chan tcell.Event
	// Holds a token while a redraw is pending.
	redraws chan struct{}
	full    atomic.Bool
	quit    chan error
}

func newLoop(handle func(tcell.Event), draw func(full bool)) *loop {
	return &loop{
		handle:  handle,
		draw:    draw,
		events:  make(chan tcell.Event, eventQueueSize),
		redraws: make(chan struct{}, 1),
		quit:    make(chan error, 1),
	}
}

// Feed queues an event. It blocks while the queue is full.
func (lp *loop) Feed(ev tcell.Event) { lp.events <- ev }

// Redraw requests a redraw without blocking. Requests made before the loop
// gets to them are merged.
func (lp *loop) Redraw(full bool) {
	if full {
		lp.full.Store(true)
	}
	select {
	case lp.redraws <- struct{}{}:
	default:
	}
}

// Quit makes run return err after the event being handled. Only the first
// call before run returns has an effect.
func (lp *loop) Quit(err error) {
	select {
	case lp.quit <- err:
	default:
	}
}

// Runs the loop until Quit is called. The screen is drawn once at the start,
// after each batch of queued events and on each redraw request.
func (lp *loop) run() error {
	lp.draw(true)
	for {
		select {
		case ev := <-lp.events:
			for ev != nil {
				lp.handle(ev)
				select {
				case err := <-lp.quit:
					lp.draw(false)
					return err
				default:
				}
				select {
				case ev = <-lp.events:
				default:
					ev = nil
				}
			}
		case err := <-lp.quit:
			lp.draw(false)
			return err
		case <-lp.redraws:
		}
		lp.draw(lp.full.Swap(false))
	}
}

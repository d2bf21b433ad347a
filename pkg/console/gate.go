package console

import (
	"context"
	"sync"
)

// Gate suspends acceptance of input while blocking operations are
// outstanding. Each Lock must be matched by an Unlock; the gate is clear when
// all holders have unlocked.
//
// The zero value is an unlocked gate. A Gate is safe for concurrent use.
type Gate struct {
	mu      sync.Mutex
	holders int
	// Closed when holders drops to 0.
	cleared chan struct{}
}

// Lock adds a holder.
func (g *Gate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holders == 0 {
		g.cleared = make(chan struct{})
	}
	g.holders++
}

// Unlock removes a holder. It does nothing on an unlocked gate.
func (g *Gate) Unlock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holders == 0 {
		return
	}
	g.holders--
	if g.holders == 0 {
		close(g.cleared)
	}
}

// Locked reports whether the gate has any holder.
func (g *Gate) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holders > 0
}

// Wait blocks until the gate is clear or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		if g.holders == 0 {
			g.mu.Unlock()
			return nil
		}
		cleared := g.cleared
		g.mu.Unlock()

		select {
		case <-cleared:
			// The gate may have been locked again before we got here.
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

package console

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGate_Counting(t *testing.T) {
	var g Gate
	if g.Locked() {
		t.Fatal("zero Gate is locked")
	}
	g.Lock()
	g.Lock()
	g.Unlock()
	if !g.Locked() {
		t.Errorf("gate with one remaining holder is not locked")
	}
	g.Unlock()
	if g.Locked() {
		t.Errorf("gate is locked after all holders unlocked")
	}
	// Extra unlocks are ignored.
	g.Unlock()
	g.Lock()
	if !g.Locked() {
		t.Errorf("Lock after an extra Unlock did not lock")
	}
}

func TestGate_WaitReturnsWhenCleared(t *testing.T) {
	var g Gate
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait on clear gate -> %v", err)
	}

	g.Lock()
	waited := make(chan error)
	go func() { waited <- g.Wait(context.Background()) }()

	select {
	case <-waited:
		t.Fatal("Wait returned while the gate was locked")
	case <-time.After(10 * time.Millisecond):
	}
	g.Unlock()
	select {
	case err := <-waited:
		if err != nil {
			t.Errorf("Wait -> %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after the gate cleared")
	}
}

func TestGate_WaitRespectsContext(t *testing.T) {
	var g Gate
	g.Lock()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait -> %v, want context.DeadlineExceeded", err)
	}
}

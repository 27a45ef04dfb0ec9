package utils

import (
	"sync"
	"time"
)

// RunGate admits at most one active scraping run at a time. The control
// surface uses it to reject overlapping triggers instead of queueing them.
type RunGate struct {
	slot chan struct{}
}

// NewRunGate creates a gate with a single run slot.
func NewRunGate() *RunGate {
	return &RunGate{slot: make(chan struct{}, 1)}
}

// TryAcquire claims the gate without blocking. It returns false when a run
// already holds it.
func (g *RunGate) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees the gate for the next run. Releasing an idle gate is a no-op.
func (g *RunGate) Release() {
	select {
	case <-g.slot:
	default:
	}
}

// Active reports whether a run currently holds the gate.
func (g *RunGate) Active() bool {
	return len(g.slot) > 0
}

// Pacer enforces a minimum interval between browser interactions so the
// target site never sees a burst of clicks.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewPacer creates a Pacer with the given minimum interval.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait sleeps just long enough to honour the minimum interval since the
// previous call. The first call returns immediately.
func (p *Pacer) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.last)
	if elapsed < p.interval {
		time.Sleep(p.interval - elapsed)
	}
	p.last = time.Now()
}

package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunGateSingleSlot(t *testing.T) {
	g := NewRunGate()

	if !g.TryAcquire() {
		t.Fatal("first TryAcquire should succeed")
	}
	if g.TryAcquire() {
		t.Error("second TryAcquire should fail while the gate is held")
	}
	if !g.Active() {
		t.Error("Active should report true while the gate is held")
	}

	g.Release()
	if g.Active() {
		t.Error("Active should report false after Release")
	}
	if !g.TryAcquire() {
		t.Error("TryAcquire should succeed again after Release")
	}
}

func TestRunGateReleaseIdle(t *testing.T) {
	g := NewRunGate()
	g.Release()

	if !g.TryAcquire() {
		t.Error("TryAcquire should succeed after releasing an idle gate")
	}
}

func TestRunGateConcurrency(t *testing.T) {
	g := NewRunGate()
	var acquired int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() {
				atomic.AddInt64(&acquired, 1)
			}
		}()
	}
	wg.Wait()

	if acquired != 1 {
		t.Errorf("expected exactly 1 successful acquire, got %d", acquired)
	}
}

func TestPacerMinimumInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewPacer(interval)

	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		p.Wait()
		timestamps = append(timestamps, time.Now())
	}

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < interval {
			t.Errorf("gap between call %d and %d: %v < minimum %v", i-1, i, gap, interval)
		}
	}
}

func TestPacerZeroInterval(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		p.Wait()
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("zero-interval pacer should not sleep, took %v", elapsed)
	}
}

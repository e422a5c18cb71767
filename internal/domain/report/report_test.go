package report

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestJob_TryStartIsExclusive(t *testing.T) {
	j := NewJob(KindIDReport)

	if !j.TryStart() {
		t.Fatal("first TryStart should succeed")
	}
	if j.TryStart() {
		t.Fatal("second TryStart should fail while in progress")
	}
	if !j.InProgress() {
		t.Error("expected in progress")
	}

	j.Finish()
	if j.InProgress() {
		t.Error("expected idle after Finish")
	}
	if !j.TryStart() {
		t.Error("TryStart should succeed after Finish")
	}
}

func TestJob_ConcurrentTriggers(t *testing.T) {
	j := NewJob(KindInTransitReport)

	var started atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if j.TryStart() {
				started.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := started.Load(); got != 1 {
		t.Errorf("started = %d, want 1", got)
	}
}

func TestJob_KindsAreIndependent(t *testing.T) {
	a := NewJob(KindIDReport)
	b := NewJob(KindInTransitReport)

	if !a.TryStart() || !b.TryStart() {
		t.Fatal("different kinds should start independently")
	}
	if a.Kind() != KindIDReport || b.Kind() != KindInTransitReport {
		t.Error("kind mismatch")
	}
}

package metrics

import (
	"sync"
	"testing"
)

func TestCollector_CountersAccumulate(t *testing.T) {
	c := NewCollector("pixelart", "sess-1")
	c.IncPromptLaunched()
	c.IncPromptSubmitted()
	c.IncCacheWrite()
	c.AddSweepDeletions(3)

	snap := c.Snapshot()
	if snap.PromptsLaunched != 1 || snap.PromptsSubmitted != 1 {
		t.Errorf("lifecycle counters = %+v", snap)
	}
	if snap.CacheWrites != 1 || snap.SweepDeletions != 3 {
		t.Errorf("cache counters = %+v", snap)
	}
	if snap.Kind != "pixelart" || snap.SessionID != "sess-1" {
		t.Errorf("dimensions = %+v", snap)
	}
}

func TestCollector_NilReceiverSafe(t *testing.T) {
	var c *Collector
	c.IncPromptLaunched()
	c.IncPromptCancelled()
	c.AddSweepDeletions(10)
	if snap := c.Snapshot(); snap.PromptsLaunched != 0 {
		t.Errorf("nil collector snapshot = %+v", snap)
	}
}

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector("text", "sess-2")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncPromptLaunched()
		}()
	}
	wg.Wait()
	if got := c.Snapshot().PromptsLaunched; got != 50 {
		t.Errorf("PromptsLaunched = %d, want 50", got)
	}
}

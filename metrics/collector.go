// Package metrics provides per-process prompt lifecycle counters.
//
// The Collector accumulates counters across the prompts a process runs.
// It is a leaf package with no internal dependencies. All increment
// methods are nil-receiver safe so callers never need to guard.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after
// creation.
type Snapshot struct {
	// Prompt lifecycle
	PromptsLaunched  int64
	PromptsSubmitted int64
	PromptsCancelled int64
	PromptsFailed    int64

	// Launcher
	BuildsAttempted int64
	BuildsFailed    int64
	SpawnFailures   int64

	// Cache
	CacheWrites      int64
	CacheWriteErrors int64
	SweepDeletions   int64

	// Dimensions (informational, set at construction)
	Kind      string
	SessionID string
}

// Collector accumulates metrics for a process lifetime.
// Thread-safe via sync.Mutex.
type Collector struct {
	mu sync.Mutex

	promptsLaunched  int64
	promptsSubmitted int64
	promptsCancelled int64
	promptsFailed    int64

	buildsAttempted int64
	buildsFailed    int64
	spawnFailures   int64

	cacheWrites      int64
	cacheWriteErrors int64
	sweepDeletions   int64

	kind      string
	sessionID string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(kind, sessionID string) *Collector {
	return &Collector{kind: kind, sessionID: sessionID}
}

func (c *Collector) inc(field *int64, delta int64) {
	c.mu.Lock()
	*field += delta
	c.mu.Unlock()
}

// IncPromptLaunched records a subprocess launch.
func (c *Collector) IncPromptLaunched() {
	if c == nil {
		return
	}
	c.inc(&c.promptsLaunched, 1)
}

// IncPromptSubmitted records a submit outcome.
func (c *Collector) IncPromptSubmitted() {
	if c == nil {
		return
	}
	c.inc(&c.promptsSubmitted, 1)
}

// IncPromptCancelled records a user cancellation.
func (c *Collector) IncPromptCancelled() {
	if c == nil {
		return
	}
	c.inc(&c.promptsCancelled, 1)
}

// IncPromptFailed records a failed prompt (any non-cancel error).
func (c *Collector) IncPromptFailed() {
	if c == nil {
		return
	}
	c.inc(&c.promptsFailed, 1)
}

// IncBuildAttempted records a build-on-demand attempt.
func (c *Collector) IncBuildAttempted() {
	if c == nil {
		return
	}
	c.inc(&c.buildsAttempted, 1)
}

// IncBuildFailed records a build where both toolchains failed.
func (c *Collector) IncBuildFailed() {
	if c == nil {
		return
	}
	c.inc(&c.buildsFailed, 1)
}

// IncSpawnFailure records a subprocess that failed to start.
func (c *Collector) IncSpawnFailure() {
	if c == nil {
		return
	}
	c.inc(&c.spawnFailures, 1)
}

// IncCacheWrite records a persisted image.
func (c *Collector) IncCacheWrite() {
	if c == nil {
		return
	}
	c.inc(&c.cacheWrites, 1)
}

// IncCacheWriteError records a failed image persistence.
func (c *Collector) IncCacheWriteError() {
	if c == nil {
		return
	}
	c.inc(&c.cacheWriteErrors, 1)
}

// AddSweepDeletions records entries evicted by a cache sweep.
func (c *Collector) AddSweepDeletions(n int64) {
	if c == nil {
		return
	}
	c.inc(&c.sweepDeletions, n)
}

// Snapshot returns an immutable view of the counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		PromptsLaunched:  c.promptsLaunched,
		PromptsSubmitted: c.promptsSubmitted,
		PromptsCancelled: c.promptsCancelled,
		PromptsFailed:    c.promptsFailed,
		BuildsAttempted:  c.buildsAttempted,
		BuildsFailed:     c.buildsFailed,
		SpawnFailures:    c.spawnFailures,
		CacheWrites:      c.cacheWrites,
		CacheWriteErrors: c.cacheWriteErrors,
		SweepDeletions:   c.sweepDeletions,
		Kind:             c.kind,
		SessionID:        c.sessionID,
	}
}

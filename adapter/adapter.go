// Package adapter defines the completion-event boundary.
//
// Adapters publish prompt completion notifications to downstream systems.
// The CLI owns adapter lifecycle; users provide configuration only.
package adapter

import "context"

// PromptCompletedEvent is the payload published when a prompt finishes,
// whatever the outcome.
type PromptCompletedEvent struct {
	EventType  string `json:"event_type"` // always "prompt_completed"
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"`
	Action     string `json:"action"` // submit, cancel, error
	Format     string `json:"format,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
	CachedPath string `json:"cached_path,omitempty"`
	Message    string `json:"message,omitempty"`
	Timestamp  string `json:"timestamp"` // ISO 8601
	DurationMs int64  `json:"duration_ms"`
}

// EventTypePromptCompleted is the wire value for PromptCompletedEvent.EventType.
const EventTypePromptCompleted = "prompt_completed"

// Adapter publishes prompt completion events to a downstream system.
// Implementations must be safe for single-use per prompt.
type Adapter interface {
	// Publish sends a prompt completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *PromptCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}

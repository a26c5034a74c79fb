package types

// Action discriminates the reply envelope emitted by the UI subprocess.
type Action string

const (
	// ActionSubmit carries a SubmissionResult.
	ActionSubmit Action = "submit"
	// ActionCancel signals the user declined without submitting.
	ActionCancel Action = "cancel"
	// ActionError signals a subprocess-reported failure.
	ActionError Action = "error"
)

// SubmissionResult is the typed success value returned to the caller.
// Its Kind must equal the Kind of the spec that produced it.
type SubmissionResult struct {
	Kind Kind `json:"kind"`

	// Text results.
	Value  string     `json:"value,omitempty"`
	Format TextFormat `json:"format,omitempty"`

	// Raster results.
	DataURL  string `json:"dataUrl,omitempty"`
	MimeType string `json:"mimeType,omitempty"`

	// CachedPath is set by the orchestrator after persisting a raster
	// result; it never crosses the subprocess boundary.
	CachedPath string `json:"cachedPath,omitempty"`
}

// Envelope is the wire-level reply emitted exactly once per subprocess
// lifetime. Emitting it terminates the subprocess.
type Envelope struct {
	Action  Action            `json:"action"`
	Result  *SubmissionResult `json:"result,omitempty"`
	Message string            `json:"message,omitempty"`
}

package cache

import "fmt"

// WriteError indicates image persistence failed. It names the failing
// operation so callers can tell a malformed payload from a filesystem
// refusal.
type WriteError struct {
	// Op is the operation that failed: "decode", "mkdir", or "write".
	Op string
	// Path is the filesystem path involved, if any.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *WriteError) Unwrap() error { return e.Err }

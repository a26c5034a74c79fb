// Package launcher runs the UI subprocess: it guarantees the UI artifacts
// exist, spawns exactly one subprocess per Launch call, captures its
// one-shot reply, and classifies the outcome.
//
// This file defines the launch error taxonomy. Each failure mode is a
// distinct type so callers can use errors.As for typed assertions rather
// than string matching. CancelledError is deliberately separate from the
// rest: a user declining is not a failure of the system.
package launcher

import (
	"errors"
	"fmt"
)

// BuildError indicates the UI artifacts were missing and both build
// toolchains failed to produce them.
type BuildError struct {
	// PrimaryErr is the first toolchain's failure.
	PrimaryErr error
	// FallbackErr is the second toolchain's failure.
	FallbackErr error
	// Output is the combined output of the last attempted build.
	Output string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("ui build failed: primary: %v; fallback: %v", e.PrimaryErr, e.FallbackErr)
}

// SpawnError indicates the subprocess failed to start, or was torn down by
// the caller's deadline before replying.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("ui subprocess failed to start: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// NonZeroExitError indicates the subprocess exited nonzero. Whatever was
// buffered on the reply channel is untrusted and never parsed.
type NonZeroExitError struct {
	ExitCode int
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("ui subprocess exited with code %d", e.ExitCode)
}

// EmptyReplyError indicates the subprocess exited cleanly without writing
// anything to its reply channel.
type EmptyReplyError struct{}

func (e *EmptyReplyError) Error() string {
	return "ui subprocess emitted no reply"
}

// MalformedReplyError indicates the reply channel content was not a valid
// envelope.
type MalformedReplyError struct {
	Raw string
	Err error
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed ui reply: %v", e.Err)
}

func (e *MalformedReplyError) Unwrap() error { return e.Err }

// CancelledError indicates the user declined without submitting. Callers
// must special-case this with IsCancelled or errors.As; it is not a
// failure of the system.
type CancelledError struct{}

func (e *CancelledError) Error() string {
	return "input prompt cancelled by user"
}

// FailedError carries a subprocess-reported failure message, or names an
// unrecognized reply action.
type FailedError struct {
	Message string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("input prompt failed: %s", e.Message)
}

// IsCancelled reports whether err is a user cancellation.
func IsCancelled(err error) bool {
	var cancelled *CancelledError
	return errors.As(err, &cancelled)
}

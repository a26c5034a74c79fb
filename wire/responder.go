package wire

import (
	"io"
	"sync"

	"github.com/swairshah/InputMCP/types"
)

// Responder emits the one-shot reply envelope. The has-responded guard is
// enforced here, once per subprocess instance: no matter how many
// cancellation or submission triggers fire (keyboard, close event,
// programmatic), at most one envelope ever reaches the reply channel.
// After the first emission the responder is in its terminal state and
// every later call is a no-op.
type Responder struct {
	mu   sync.Mutex
	done bool
	w    io.Writer
}

// NewResponder creates a responder writing to the reply channel.
func NewResponder(w io.Writer) *Responder {
	return &Responder{w: w}
}

// Responded reports whether an envelope has been emitted.
func (r *Responder) Responded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Submit emits a submit envelope carrying the result.
// Returns true if this call performed the emission.
func (r *Responder) Submit(result *types.SubmissionResult) (bool, error) {
	return r.respond(&types.Envelope{Action: types.ActionSubmit, Result: result})
}

// Cancel emits a cancel envelope.
func (r *Responder) Cancel() (bool, error) {
	return r.respond(&types.Envelope{Action: types.ActionCancel})
}

// Fail emits an error envelope with a subprocess-supplied message.
func (r *Responder) Fail(message string) (bool, error) {
	return r.respond(&types.Envelope{Action: types.ActionError, Message: message})
}

func (r *Responder) respond(env *types.Envelope) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false, nil
	}
	// Terminal state first: even a failed write consumes the one emission,
	// so a retry can never produce a second envelope.
	r.done = true

	data, err := EncodeEnvelope(env)
	if err != nil {
		return true, err
	}
	if _, err := r.w.Write(data); err != nil {
		return true, err
	}
	return true, nil
}

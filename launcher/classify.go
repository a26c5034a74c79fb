package launcher

import (
	"bytes"
	"fmt"

	"github.com/swairshah/InputMCP/types"
	"github.com/swairshah/InputMCP/wire"
)

// parseReply turns the buffered reply channel bytes into an envelope,
// distinguishing an empty channel from an unparsable one.
func parseReply(raw []byte) (*types.Envelope, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &EmptyReplyError{}
	}
	env, err := wire.ParseEnvelope(raw)
	if err != nil {
		return nil, &MalformedReplyError{Raw: string(raw), Err: err}
	}
	return env, nil
}

// Classify maps a parsed envelope to an outcome. Pure and synchronous:
//   - submit → the embedded SubmissionResult (whose kind must match the
//     originating spec's kind)
//   - cancel → CancelledError, distinct so callers can special-case
//     "user declined" from genuine failure
//   - error → FailedError with the subprocess-supplied message
//   - anything else → FailedError naming the unrecognized action
func Classify(env *types.Envelope, kind types.Kind) (*types.SubmissionResult, error) {
	switch env.Action {
	case types.ActionSubmit:
		if env.Result == nil {
			return nil, &FailedError{Message: "submit reply carried no result"}
		}
		if env.Result.Kind != kind {
			return nil, &FailedError{
				Message: fmt.Sprintf("result kind %q does not match requested kind %q", env.Result.Kind, kind),
			}
		}
		return env.Result, nil

	case types.ActionCancel:
		return nil, &CancelledError{}

	case types.ActionError:
		msg := env.Message
		if msg == "" {
			msg = "subprocess reported an unspecified error"
		}
		return nil, &FailedError{Message: msg}

	default:
		return nil, &FailedError{
			Message: fmt.Sprintf("unrecognized reply action %q", env.Action),
		}
	}
}

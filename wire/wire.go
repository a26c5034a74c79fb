// Package wire implements the request/response protocol between the
// orchestrator and the UI subprocess.
//
// Two independent channels carry the exchange: the spec handoff travels as
// one JSON document over an inherited file descriptor (out-of-band, so the
// subprocess's own stdio is never polluted), and the reply comes back as
// exactly one line of JSON on the subprocess's stdout. Human-readable
// diagnostics and the rendered UI go to stderr.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/swairshah/InputMCP/types"
)

// SpecFD is the child-side file descriptor carrying the spec handoff
// document. Descriptor 3 is the first ExtraFiles slot.
const SpecFD = 3

// WriteSpec serializes the spec onto the handoff channel.
func WriteSpec(w io.Writer, spec *types.InputSpec) error {
	if err := json.NewEncoder(w).Encode(spec); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	return nil
}

// ReadSpec decodes the handoff document. The spec arrives fully normalized;
// only structural integrity is checked here.
func ReadSpec(r io.Reader) (*types.InputSpec, error) {
	var spec types.InputSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if spec.Kind == "" {
		return nil, fmt.Errorf("spec missing kind discriminant")
	}
	return &spec, nil
}

// EncodeEnvelope renders the reply envelope as a single JSON line.
func EncodeEnvelope(env *types.Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseEnvelope parses the buffered reply channel content as exactly one
// envelope. Surrounding whitespace is tolerated; a missing action
// discriminant is not.
func ParseEnvelope(raw []byte) (*types.Envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty reply")
	}

	var env types.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if env.Action == "" {
		return nil, fmt.Errorf("reply missing action discriminant")
	}
	return &env, nil
}

package wire

import (
	"bytes"
	"testing"

	"github.com/swairshah/InputMCP/types"
)

func TestSpecHandoff_RoundTrip(t *testing.T) {
	spec := &types.InputSpec{
		Kind:            types.KindPixelArt,
		Message:         "Draw something",
		SubmitLabel:     "Submit",
		GridWidth:       8,
		GridHeight:      8,
		CellSize:        16,
		MimeType:        "image/png",
		BackgroundColor: "#ffffff",
		Palette:         []string{"#000000", "#ffffff"},
	}

	var buf bytes.Buffer
	if err := WriteSpec(&buf, spec); err != nil {
		t.Fatalf("WriteSpec: %v", err)
	}

	got, err := ReadSpec(&buf)
	if err != nil {
		t.Fatalf("ReadSpec: %v", err)
	}
	if got.Kind != types.KindPixelArt || got.GridWidth != 8 || len(got.Palette) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReadSpec_RejectsMissingKind(t *testing.T) {
	if _, err := ReadSpec(bytes.NewBufferString(`{"message":"hi"}`)); err == nil {
		t.Fatal("spec without kind accepted")
	}
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		action  types.Action
	}{
		{"submit", `{"action":"submit","result":{"kind":"text","value":"hello","format":"text"}}`, false, types.ActionSubmit},
		{"cancel", `{"action":"cancel"}`, false, types.ActionCancel},
		{"error", `{"action":"error","message":"boom"}`, false, types.ActionError},
		{"trailing newline tolerated", "{\"action\":\"cancel\"}\n", false, types.ActionCancel},
		{"empty", "", true, ""},
		{"whitespace only", "  \n ", true, ""},
		{"not json", "hello world", true, ""},
		{"missing action", `{"result":{}}`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEnvelope(%q) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEnvelope: %v", err)
			}
			if env.Action != tt.action {
				t.Errorf("action = %q, want %q", env.Action, tt.action)
			}
		})
	}
}

func TestParseEnvelope_SubmitCarriesResult(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"action":"submit","result":{"kind":"text","value":"hello","format":"text"}}`))
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if env.Result == nil || env.Result.Value != "hello" || env.Result.Kind != types.KindText {
		t.Errorf("result = %+v", env.Result)
	}
}

package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/swairshah/InputMCP/log"
	"github.com/swairshah/InputMCP/types"
)

func testLogger() *log.Logger {
	return log.NewLogger(&log.PromptMeta{SessionID: "test"}).WithOutput(io.Discard)
}

// stubProcess fakes the UI subprocess with a canned reply.
type stubProcess struct {
	exitCode int
	reply    []byte
	startErr error
	gotSpec  *types.InputSpec
}

func (s *stubProcess) Start(_ context.Context, spec *types.InputSpec) error {
	s.gotSpec = spec
	return s.startErr
}

func (s *stubProcess) Wait() (*ProcessResult, error) {
	return &ProcessResult{ExitCode: s.exitCode, Reply: s.reply}, nil
}

func (s *stubProcess) Kill() error { return nil }

func launcherWithStub(stub *stubProcess) *Launcher {
	return New(&Config{
		UIBinary: "inputmcp-ui",
		Factory:  func(string) UIProcess { return stub },
	}, testLogger())
}

func textSpec() *types.InputSpec {
	return &types.InputSpec{Kind: types.KindText, Message: "m", SubmitLabel: "s", Lines: 3, Format: types.FormatText}
}

func TestLaunch_TextSubmitRoundTrip(t *testing.T) {
	stub := &stubProcess{
		reply: []byte(`{"action":"submit","result":{"kind":"text","value":"hello","format":"text"}}` + "\n"),
	}

	result, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if result.Kind != types.KindText || result.Value != "hello" || result.Format != types.FormatText {
		t.Errorf("result = %+v", result)
	}
	if stub.gotSpec == nil || stub.gotSpec.Kind != types.KindText {
		t.Errorf("spec handoff missing: %+v", stub.gotSpec)
	}
}

func TestLaunch_CancelIsDistinguished(t *testing.T) {
	stub := &stubProcess{reply: []byte(`{"action":"cancel"}`)}

	_, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	if !IsCancelled(err) {
		t.Fatalf("err = %v, want CancelledError", err)
	}
	var failed *FailedError
	if errors.As(err, &failed) {
		t.Error("cancel classified as FailedError")
	}
}

func TestLaunch_NonZeroExitWinsOverParseErrors(t *testing.T) {
	// Garbage output AND a nonzero exit: the exit code is authoritative
	// and the buffer must never be parsed.
	stub := &stubProcess{exitCode: 1, reply: []byte("not json at all")}

	_, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	var exitErr *NonZeroExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want NonZeroExitError", err)
	}
	if exitErr.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode)
	}
}

func TestLaunch_EmptyReply(t *testing.T) {
	stub := &stubProcess{reply: []byte("  \n")}

	_, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	var emptyErr *EmptyReplyError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err = %v, want EmptyReplyError", err)
	}
}

func TestLaunch_MalformedReply(t *testing.T) {
	stub := &stubProcess{reply: []byte(`{"no":"action"}`)}

	_, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	var malformed *MalformedReplyError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedReplyError", err)
	}
}

func TestLaunch_SpawnFailure(t *testing.T) {
	stub := &stubProcess{startErr: errors.New("no such binary")}

	_, err := launcherWithStub(stub).Launch(context.Background(), textSpec())
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v, want SpawnError", err)
	}
}

func TestClassify_KindMismatchRejected(t *testing.T) {
	env := &types.Envelope{
		Action: types.ActionSubmit,
		Result: &types.SubmissionResult{Kind: types.KindImage, DataURL: "data:image/png;base64,"},
	}

	_, err := Classify(env, types.KindText)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want FailedError", err)
	}
}

func TestClassify_UnrecognizedAction(t *testing.T) {
	_, err := Classify(&types.Envelope{Action: "shrug"}, types.KindText)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want FailedError", err)
	}
}

func TestClassify_ErrorActionCarriesMessage(t *testing.T) {
	_, err := Classify(&types.Envelope{Action: types.ActionError, Message: "renderer exploded"}, types.KindText)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want FailedError", err)
	}
	if failed.Message != "renderer exploded" {
		t.Errorf("message = %q", failed.Message)
	}
}

// TestLaunch_RealSubprocess exercises the actual spawn path with a shell
// script standing in for the UI binary: it ignores the spec channel and
// prints a pixelart submit envelope.
func TestLaunch_RealSubprocess(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ui")
	body := "#!/bin/sh\n" +
		`printf '%s\n' '{"action":"submit","result":{"kind":"pixelart","dataUrl":"data:image/png;base64,AA==","mimeType":"image/png"}}'` + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	l := New(&Config{UIBinary: script}, testLogger())
	spec := &types.InputSpec{Kind: types.KindPixelArt, GridWidth: 8, GridHeight: 8, MimeType: "image/png"}

	result, err := l.Launch(context.Background(), spec)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if result.Kind != types.KindPixelArt || result.MimeType != "image/png" {
		t.Errorf("result = %+v", result)
	}
}

// TestLaunch_RealSubprocessNonZeroExit verifies the exit-code contract
// against a real process: exit 1 with no output is a NonZeroExitError,
// never a parse error.
func TestLaunch_RealSubprocessNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ui")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	l := New(&Config{UIBinary: script}, testLogger())
	_, err := l.Launch(context.Background(), textSpec())

	var exitErr *NonZeroExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want NonZeroExitError", err)
	}
}

func TestLaunch_DeadlineKillsHungSubprocess(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ui")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	l := New(&Config{UIBinary: script, Timeout: 100 * time.Millisecond}, testLogger())

	start := time.Now()
	_, err := l.Launch(context.Background(), textSpec())
	if time.Since(start) > 5*time.Second {
		t.Fatal("deadline did not cut the subprocess off")
	}

	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v, want SpawnError wrapping the deadline", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err chain missing context.DeadlineExceeded: %v", err)
	}
}

package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/swairshah/InputMCP/cli/config"
	"github.com/swairshah/InputMCP/launcher"
	"github.com/swairshah/InputMCP/metrics"
	"github.com/swairshah/InputMCP/types"
)

// promptContext runs the prompt flag set over args and captures the
// context for helper-level assertions.
func promptContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	var captured *cli.Context
	app := &cli.App{
		Commands: []*cli.Command{{
			Name:  "prompt",
			Flags: PromptCommand().Flags,
			Action: func(c *cli.Context) error {
				captured = c
				return nil
			},
		}},
	}
	if err := app.Run(append([]string{"inputmcp", "prompt"}, args...)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if captured == nil {
		t.Fatal("action never ran")
	}
	return captured
}

func TestRequestFromInputs_FlagsOnly(t *testing.T) {
	c := promptContext(t,
		"--kind", "pixelart",
		"--message", "Draw a sprite",
		"--grid-width", "32",
		"--palette", "#000000",
		"--palette", "#ff0000",
	)

	req := requestFromInputs(c, nil)
	if req.Kind != "pixelart" {
		t.Errorf("kind = %q", req.Kind)
	}
	if req.Message == nil || *req.Message != "Draw a sprite" {
		t.Errorf("message = %v", req.Message)
	}
	if req.GridWidth == nil || *req.GridWidth != 32 {
		t.Errorf("gridWidth = %v", req.GridWidth)
	}
	if len(req.Palette) != 2 {
		t.Errorf("palette = %v", req.Palette)
	}
	if req.Lines != nil {
		t.Errorf("lines should stay unset, got %v", *req.Lines)
	}
}

func TestRequestFromInputs_FlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{
		Defaults: config.DefaultsConfig{
			Message: "from config",
			Text:    config.TextDefaults{Lines: 10, Format: "json"},
		},
	}

	c := promptContext(t, "--kind", "text", "--lines", "5")
	req := requestFromInputs(c, cfg)

	if req.Lines == nil || *req.Lines != 5 {
		t.Errorf("lines = %v, want flag value 5", req.Lines)
	}
	if req.Message == nil || *req.Message != "from config" {
		t.Errorf("message = %v, want config default", req.Message)
	}
	if req.Format == nil || *req.Format != "json" {
		t.Errorf("format = %v, want config default", req.Format)
	}
}

func TestExitForError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cancelled", &launcher.CancelledError{}, exitCancelled},
		{"build failure", &launcher.BuildError{}, exitInvalid},
		{"anything else", errors.New("boom"), exitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var coder cli.ExitCoder
			if !errors.As(exitForError(tt.err), &coder) {
				t.Fatal("not an exit coder")
			}
			if coder.ExitCode() != tt.want {
				t.Errorf("exit = %d, want %d", coder.ExitCode(), tt.want)
			}
		})
	}
}

func TestOutcomeEvent_Submit(t *testing.T) {
	s := &types.InputSpec{Kind: types.KindPixelArt}
	result := &types.SubmissionResult{
		Kind:       types.KindPixelArt,
		MimeType:   "image/png",
		CachedPath: "/tmp/x.png",
	}

	event := outcomeEvent("sess", s, result, nil, 1500*time.Millisecond)
	if event.Action != "submit" {
		t.Errorf("action = %q", event.Action)
	}
	if event.CachedPath != "/tmp/x.png" {
		t.Errorf("cachedPath = %q", event.CachedPath)
	}
	if event.DurationMs != 1500 {
		t.Errorf("durationMs = %d", event.DurationMs)
	}
}

func TestOutcomeEvent_CancelAndError(t *testing.T) {
	s := &types.InputSpec{Kind: types.KindText}

	cancelled := outcomeEvent("sess", s, nil, &launcher.CancelledError{}, time.Second)
	if cancelled.Action != "cancel" {
		t.Errorf("action = %q, want cancel", cancelled.Action)
	}

	failed := outcomeEvent("sess", s, nil, errors.New("renderer exploded"), time.Second)
	if failed.Action != "error" {
		t.Errorf("action = %q, want error", failed.Action)
	}
	if failed.Message == "" {
		t.Error("error event missing message")
	}
}

func TestBuildAdapter_NoneConfigured(t *testing.T) {
	a, err := buildAdapter(nil)
	if err != nil || a != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", a, err)
	}

	a, err = buildAdapter(&config.Config{})
	if err != nil || a != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", a, err)
	}
}

func TestBuildAdapter_Webhook(t *testing.T) {
	cfg := &config.Config{Adapter: config.AdapterConfig{Type: "webhook", URL: "https://example.com/hook"}}
	a, err := buildAdapter(cfg)
	if err != nil {
		t.Fatalf("buildAdapter: %v", err)
	}
	if a == nil {
		t.Fatal("no adapter built")
	}
	_ = a.Close()
}

func TestBuildAdapter_UnknownType(t *testing.T) {
	cfg := &config.Config{Adapter: config.AdapterConfig{Type: "carrier-pigeon", URL: "coop://roof"}}
	if _, err := buildAdapter(cfg); err == nil {
		t.Fatal("expected error for unknown adapter type")
	}
}

func TestRetentionOrDefault(t *testing.T) {
	if got := retentionOrDefault(true, time.Hour, 48*time.Hour); got != time.Hour {
		t.Errorf("explicit flag ignored: %v", got)
	}
	if got := retentionOrDefault(false, time.Hour, 48*time.Hour); got != 48*time.Hour {
		t.Errorf("config retention ignored: %v", got)
	}
	if got := retentionOrDefault(false, time.Hour, 0); got != time.Hour {
		t.Errorf("default not used: %v", got)
	}
}

func TestSnapshotFields_CarriesLifecycleCounters(t *testing.T) {
	collector := metrics.NewCollector("text", "sess")
	collector.IncPromptLaunched()
	collector.IncPromptSubmitted()
	collector.IncCacheWrite()

	fields := snapshotFields(collector.Snapshot())
	if got := fields["promptsLaunched"]; got != int64(1) {
		t.Errorf("promptsLaunched = %v", got)
	}
	if got := fields["promptsSubmitted"]; got != int64(1) {
		t.Errorf("promptsSubmitted = %v", got)
	}
	if got := fields["cacheWrites"]; got != int64(1) {
		t.Errorf("cacheWrites = %v", got)
	}
	if got := fields["promptsFailed"]; got != int64(0) {
		t.Errorf("promptsFailed = %v", got)
	}
}

func TestUIBinary_Precedence(t *testing.T) {
	cfg := &config.Config{UIBinary: "/opt/custom-ui"}

	c := promptContext(t, "--ui-binary", "/flag/ui")
	if got := uiBinary(c, cfg); got != "/flag/ui" {
		t.Errorf("flag should win, got %q", got)
	}

	c = promptContext(t)
	if got := uiBinary(c, cfg); got != "/opt/custom-ui" {
		t.Errorf("config should win over default, got %q", got)
	}
	if got := uiBinary(c, nil); got != defaultUIBinary {
		t.Errorf("default missing, got %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `ui_binary: ./bin/inputmcp-ui
timeout: 2m

build:
  artifacts:
    - ./bin/inputmcp-ui
  primary: [make, ui]
  fallback: [./scripts/build-ui.sh]
  dir: .

cache:
  dir: /tmp/inputmcp-cache
  retention: 168h

adapter:
  type: webhook
  url: https://hooks.example.com/inputmcp
  headers:
    Authorization: Bearer token123
  timeout: 10s
  retries: 3

defaults:
  message: What do you need?
  text:
    lines: 5
    format: json
  image:
    width: 1024
    height: 768
    mime_type: image/jpeg
  pixelart:
    grid_width: 32
    grid_height: 32
    cell_size: 12
    palette: ["#000000", "#ffffff"]
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "ui_binary", cfg.UIBinary, "./bin/inputmcp-ui")
	if cfg.Timeout.Duration != 2*time.Minute {
		t.Errorf("expected timeout=2m, got %v", cfg.Timeout.Duration)
	}

	// Build
	if len(cfg.Build.Artifacts) != 1 || cfg.Build.Artifacts[0] != "./bin/inputmcp-ui" {
		t.Errorf("build.artifacts = %v", cfg.Build.Artifacts)
	}
	if len(cfg.Build.Primary) != 2 || cfg.Build.Primary[0] != "make" {
		t.Errorf("build.primary = %v", cfg.Build.Primary)
	}
	if len(cfg.Build.Fallback) != 1 {
		t.Errorf("build.fallback = %v", cfg.Build.Fallback)
	}

	// Cache
	assertEqual(t, "cache.dir", cfg.Cache.Dir, "/tmp/inputmcp-cache")
	if cfg.Cache.Retention.Duration != 168*time.Hour {
		t.Errorf("expected cache.retention=168h, got %v", cfg.Cache.Retention.Duration)
	}

	// Adapter
	assertEqual(t, "adapter.type", cfg.Adapter.Type, "webhook")
	assertEqual(t, "adapter.url", cfg.Adapter.URL, "https://hooks.example.com/inputmcp")
	if cfg.Adapter.Timeout.Duration != 10*time.Second {
		t.Errorf("expected adapter.timeout=10s, got %v", cfg.Adapter.Timeout.Duration)
	}
	if cfg.Adapter.Retries == nil || *cfg.Adapter.Retries != 3 {
		t.Errorf("expected adapter.retries=3")
	}
	if cfg.Adapter.Headers["Authorization"] != "Bearer token123" {
		t.Errorf("expected Authorization header")
	}

	// Defaults
	assertEqual(t, "defaults.message", cfg.Defaults.Message, "What do you need?")
	if cfg.Defaults.Text.Lines != 5 {
		t.Errorf("expected defaults.text.lines=5, got %d", cfg.Defaults.Text.Lines)
	}
	assertEqual(t, "defaults.text.format", cfg.Defaults.Text.Format, "json")
	if cfg.Defaults.Image.Width != 1024 || cfg.Defaults.Image.Height != 768 {
		t.Errorf("image defaults = %dx%d", cfg.Defaults.Image.Width, cfg.Defaults.Image.Height)
	}
	assertEqual(t, "defaults.image.mime_type", cfg.Defaults.Image.MimeType, "image/jpeg")
	if cfg.Defaults.PixelArt.GridWidth != 32 || cfg.Defaults.PixelArt.CellSize != 12 {
		t.Errorf("pixelart defaults = %+v", cfg.Defaults.PixelArt)
	}
	if len(cfg.Defaults.PixelArt.Palette) != 2 {
		t.Errorf("palette = %v", cfg.Defaults.PixelArt.Palette)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	path := writeTemp(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UIBinary != "" {
		t.Errorf("expected empty ui_binary, got %q", cfg.UIBinary)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/inputmcp.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "{{invalid yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_UI_BINARY", "/opt/inputmcp-ui")

	yaml := `ui_binary: ${TEST_UI_BINARY}`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "ui_binary", cfg.UIBinary, "/opt/inputmcp-ui")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	yaml := `ui_binary: ./bin/inputmcp-ui
bogus_key: should_fail
`
	path := writeTemp(t, yaml)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "bogus_key") {
		t.Errorf("error should mention the unknown key, got: %v", err)
	}
}

func TestLoad_UnknownNestedKeyRejected(t *testing.T) {
	yaml := `cache:
  dir: /tmp/c
  unknown_field: bad
`
	path := writeTemp(t, yaml)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown nested key, got nil")
	}
	if !strings.Contains(err.Error(), "unknown_field") {
		t.Errorf("error should mention the unknown key, got: %v", err)
	}
}

func TestLoad_CommentsOnlyConfig(t *testing.T) {
	path := writeTemp(t, "# This is a comment\n# Another comment\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for comments-only config: %v", err)
	}
	if cfg.UIBinary != "" {
		t.Errorf("expected empty ui_binary, got %q", cfg.UIBinary)
	}
}

func TestLoad_RetriesZeroDistinctFromNil(t *testing.T) {
	// retries: 0 should parse as *int(0), not nil.
	yaml := `adapter:
  type: webhook
  url: https://example.com
  retries: 0
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Adapter.Retries == nil {
		t.Fatal("expected retries to be non-nil (*int(0)), got nil")
	}
	if *cfg.Adapter.Retries != 0 {
		t.Errorf("expected retries=0, got %d", *cfg.Adapter.Retries)
	}
}

func TestDuration_InvalidFormat(t *testing.T) {
	yaml := `adapter:
  timeout: not-a-duration
`
	path := writeTemp(t, yaml)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error should mention invalid duration, got: %v", err)
	}
}

func TestDuration_EmptyIsZero(t *testing.T) {
	yaml := `adapter:
  type: webhook
  url: https://example.com
  timeout: ""
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Adapter.Timeout.Duration != 0 {
		t.Errorf("expected zero duration, got %v", cfg.Adapter.Timeout.Duration)
	}
}

func TestLoad_RedisAdapterConfig(t *testing.T) {
	yaml := `adapter:
  type: redis
  url: redis://localhost:6379/0
  channel: inputmcp:prompt_completed
  timeout: 5s
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "adapter.type", cfg.Adapter.Type, "redis")
	assertEqual(t, "adapter.url", cfg.Adapter.URL, "redis://localhost:6379/0")
	assertEqual(t, "adapter.channel", cfg.Adapter.Channel, "inputmcp:prompt_completed")
}

func TestLauncherBuild_Conversion(t *testing.T) {
	cfg := &Config{
		Build: BuildConfig{
			Artifacts: []string{"./bin/inputmcp-ui"},
			Primary:   []string{"make", "ui"},
			Fallback:  []string{"./scripts/build-ui.sh"},
			Dir:       "/repo",
		},
	}

	build := cfg.LauncherBuild()
	if build == nil {
		t.Fatal("expected build config")
	}
	if len(build.Artifacts) != 1 {
		t.Errorf("artifacts = %v", build.Artifacts)
	}
	if build.Primary.Dir != "/repo" || len(build.Primary.Argv) != 2 {
		t.Errorf("primary = %+v", build.Primary)
	}
	if build.Fallback == nil || build.Fallback.Argv[0] != "./scripts/build-ui.sh" {
		t.Errorf("fallback = %+v", build.Fallback)
	}
}

func TestLauncherBuild_NoArtifactsDisablesBuild(t *testing.T) {
	cfg := &Config{}
	if build := cfg.LauncherBuild(); build != nil {
		t.Errorf("expected nil build config, got %+v", build)
	}
}

// writeTemp writes content to a temp file and returns the path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "inputmcp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

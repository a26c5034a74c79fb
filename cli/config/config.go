package config

import (
	"fmt"
	"time"

	"github.com/swairshah/InputMCP/launcher"
)

// Config represents an inputmcp.yaml configuration file.
// All values are optional and act as defaults for inputmcp prompt flags.
// CLI flags always override config values.
type Config struct {
	UIBinary string         `yaml:"ui_binary"`
	Build    BuildConfig    `yaml:"build"`
	Timeout  Duration       `yaml:"timeout"`
	Cache    CacheConfig    `yaml:"cache"`
	Adapter  AdapterConfig  `yaml:"adapter"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// BuildConfig holds build-on-demand settings for the UI binary.
// Primary and Fallback are argv vectors; Fallback runs only when Primary
// fails or leaves artifacts missing.
type BuildConfig struct {
	Artifacts []string `yaml:"artifacts"`
	Primary   []string `yaml:"primary"`
	Fallback  []string `yaml:"fallback,omitempty"`
	Dir       string   `yaml:"dir,omitempty"`
}

// CacheConfig holds image cache defaults from the config file.
type CacheConfig struct {
	Dir       string   `yaml:"dir"`
	Retention Duration `yaml:"retention"`
}

// AdapterConfig holds completion-event adapter defaults from the config file.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// DefaultsConfig holds per-kind prompt defaults from the config file.
type DefaultsConfig struct {
	Message  string           `yaml:"message,omitempty"`
	Text     TextDefaults     `yaml:"text"`
	Image    ImageDefaults    `yaml:"image"`
	PixelArt PixelArtDefaults `yaml:"pixelart"`
}

// TextDefaults are defaults for text prompts.
type TextDefaults struct {
	Lines  int    `yaml:"lines,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// ImageDefaults are defaults for freehand drawing prompts.
type ImageDefaults struct {
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	MimeType string `yaml:"mime_type,omitempty"`
}

// PixelArtDefaults are defaults for pixel art prompts.
type PixelArtDefaults struct {
	GridWidth  int      `yaml:"grid_width,omitempty"`
	GridHeight int      `yaml:"grid_height,omitempty"`
	CellSize   int      `yaml:"cell_size,omitempty"`
	Palette    []string `yaml:"palette,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// LauncherBuild converts the YAML build section into the launcher's build
// configuration. Returns nil when no artifacts are declared, which
// disables build-on-demand entirely.
func (c *Config) LauncherBuild() *launcher.BuildConfig {
	if len(c.Build.Artifacts) == 0 {
		return nil
	}

	cfg := &launcher.BuildConfig{
		Artifacts: c.Build.Artifacts,
		Primary:   launcher.BuildCommand{Argv: c.Build.Primary, Dir: c.Build.Dir},
	}
	if len(c.Build.Fallback) > 0 {
		cfg.Fallback = &launcher.BuildCommand{Argv: c.Build.Fallback, Dir: c.Build.Dir}
	}
	return cfg
}

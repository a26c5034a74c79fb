package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/swairshah/InputMCP/adapter"
	redisadapter "github.com/swairshah/InputMCP/adapter/redis"
	"github.com/swairshah/InputMCP/adapter/webhook"
	"github.com/swairshah/InputMCP/cache"
	"github.com/swairshah/InputMCP/cli/config"
	"github.com/swairshah/InputMCP/imageref"
	"github.com/swairshah/InputMCP/iox"
	"github.com/swairshah/InputMCP/launcher"
	"github.com/swairshah/InputMCP/log"
	"github.com/swairshah/InputMCP/metrics"
	"github.com/swairshah/InputMCP/spec"
	"github.com/swairshah/InputMCP/types"
)

// Exit codes for the prompt command.
const (
	exitSubmit    = 0
	exitFailed    = 1
	exitCancelled = 2
	exitInvalid   = 3
)

// defaultUIBinary is spawned when neither flag nor config names one.
const defaultUIBinary = "inputmcp-ui"

// PromptCommand returns the prompt command, the only command that spawns
// the UI subprocess.
func PromptCommand() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Collect one piece of user input through the UI subprocess",
		Flags: []cli.Flag{
			ConfigFlag,
			QuietFlag,
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Input kind: text, image, or pixelart",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "Prompt message shown to the user",
			},
			&cli.StringFlag{
				Name:  "submit-label",
				Usage: "Label for the submit action",
			},
			// Text flags
			&cli.StringFlag{
				Name:  "placeholder",
				Usage: "Placeholder text for the editor (text kind)",
			},
			&cli.IntFlag{
				Name:  "lines",
				Usage: "Editor height in lines (text kind)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Accepted text format: text or json (text kind)",
			},
			// Raster flags
			&cli.IntFlag{
				Name:  "width",
				Usage: "Exported image width in pixels (image kind)",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Exported image height in pixels (image kind)",
			},
			&cli.StringFlag{
				Name:  "mime-type",
				Usage: "Export media type: image/png, image/jpeg, image/gif, image/bmp",
			},
			&cli.StringFlag{
				Name:  "background",
				Usage: "Canvas background color (#rrggbb)",
			},
			// Pixel art flags
			&cli.IntFlag{
				Name:  "grid-width",
				Usage: "Grid width in cells (pixelart kind)",
			},
			&cli.IntFlag{
				Name:  "grid-height",
				Usage: "Grid height in cells (pixelart kind)",
			},
			&cli.IntFlag{
				Name:  "cell-size",
				Usage: "On-screen cell magnification hint; the export stays one pixel per cell (pixelart kind)",
			},
			&cli.StringSliceFlag{
				Name:  "palette",
				Usage: "Palette color (#rrggbb), repeatable (pixelart kind)",
			},
			&cli.StringFlag{
				Name:  "initial-image",
				Usage: "Seed image: data URL or file path (image and pixelart kinds)",
			},
			// Launch flags
			&cli.StringFlag{
				Name:  "ui-binary",
				Usage: "Path to the UI subprocess binary",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Abandon the prompt after this duration (0 = wait forever)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Skip writing raster submissions to the image cache",
			},
		},
		Action: promptAction,
	}
}

func promptAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitInvalid)
	}

	normalized, err := spec.Normalize(requestFromInputs(c, cfg))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid prompt request: %v", err), exitInvalid)
	}

	// Resolve a file-path initial image into an embeddable data URL so
	// the subprocess never touches the caller's filesystem.
	launchSpec := normalized
	if normalized.InitialImage != "" {
		resolved, err := imageref.Resolve(normalized.InitialImage)
		if err != nil {
			return cli.Exit(fmt.Sprintf("cannot resolve initial image: %v", err), exitInvalid)
		}
		launchSpec = normalized.Clone()
		launchSpec.InitialImage = resolved
	}

	sessionID := uuid.NewString()
	logger := log.NewLogger(&log.PromptMeta{SessionID: sessionID, Kind: string(launchSpec.Kind)})
	collector := metrics.NewCollector(string(launchSpec.Kind), sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	launchCfg := &launcher.Config{
		UIBinary:  uiBinary(c, cfg),
		Timeout:   timeout(c, cfg),
		Collector: collector,
	}
	if cfg != nil {
		launchCfg.Build = cfg.LauncherBuild()
	}

	start := time.Now()
	result, err := launcher.New(launchCfg, logger).Launch(ctx, launchSpec)
	duration := time.Since(start)

	if err != nil {
		publishOutcome(cfg, logger, outcomeEvent(sessionID, launchSpec, nil, err, duration))
		logger.Info("prompt metrics", snapshotFields(collector.Snapshot()))
		return exitForError(err)
	}

	if result.DataURL != "" && !c.Bool("no-cache") {
		cacheSubmission(c, cfg, logger, collector, result)
	}

	publishOutcome(cfg, logger, outcomeEvent(sessionID, launchSpec, result, nil, duration))
	logger.Info("prompt metrics", snapshotFields(collector.Snapshot()))

	if !c.Bool("quiet") {
		if err := printResult(result); err != nil {
			return cli.Exit(fmt.Sprintf("cannot encode result: %v", err), exitFailed)
		}
	}
	return cli.Exit("", exitSubmit)
}

// loadConfig loads the config file when --config is given.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

func uiBinary(c *cli.Context, cfg *config.Config) string {
	if b := c.String("ui-binary"); b != "" {
		return b
	}
	if cfg != nil && cfg.UIBinary != "" {
		return cfg.UIBinary
	}
	return defaultUIBinary
}

func timeout(c *cli.Context, cfg *config.Config) time.Duration {
	if c.IsSet("timeout") {
		return c.Duration("timeout")
	}
	if cfg != nil {
		return cfg.Timeout.Duration
	}
	return 0
}

func ptr[T any](v T) *T { return &v }

// requestFromInputs merges config defaults and CLI flags into a prompt
// request. Flags override config; normalization fills the rest.
func requestFromInputs(c *cli.Context, cfg *config.Config) *types.Request {
	req := &types.Request{}

	if cfg != nil {
		d := cfg.Defaults
		if d.Message != "" {
			req.Message = ptr(d.Message)
		}
		if d.Text.Lines > 0 {
			req.Lines = ptr(d.Text.Lines)
		}
		if d.Text.Format != "" {
			req.Format = ptr(d.Text.Format)
		}
		if d.Image.Width > 0 {
			req.Width = ptr(d.Image.Width)
		}
		if d.Image.Height > 0 {
			req.Height = ptr(d.Image.Height)
		}
		if d.Image.MimeType != "" {
			req.MimeType = ptr(d.Image.MimeType)
		}
		if d.PixelArt.GridWidth > 0 {
			req.GridWidth = ptr(d.PixelArt.GridWidth)
		}
		if d.PixelArt.GridHeight > 0 {
			req.GridHeight = ptr(d.PixelArt.GridHeight)
		}
		if d.PixelArt.CellSize > 0 {
			req.CellSize = ptr(d.PixelArt.CellSize)
		}
		if len(d.PixelArt.Palette) > 0 {
			req.Palette = append([]string(nil), d.PixelArt.Palette...)
		}
	}

	req.Kind = c.String("kind")
	if c.IsSet("message") {
		req.Message = ptr(c.String("message"))
	}
	if c.IsSet("submit-label") {
		req.SubmitLabel = ptr(c.String("submit-label"))
	}
	if c.IsSet("placeholder") {
		req.Placeholder = ptr(c.String("placeholder"))
	}
	if c.IsSet("lines") {
		req.Lines = ptr(c.Int("lines"))
	}
	if c.IsSet("format") {
		req.Format = ptr(c.String("format"))
	}
	if c.IsSet("width") {
		req.Width = ptr(c.Int("width"))
	}
	if c.IsSet("height") {
		req.Height = ptr(c.Int("height"))
	}
	if c.IsSet("mime-type") {
		req.MimeType = ptr(c.String("mime-type"))
	}
	if c.IsSet("background") {
		req.BackgroundColor = ptr(c.String("background"))
	}
	if c.IsSet("grid-width") {
		req.GridWidth = ptr(c.Int("grid-width"))
	}
	if c.IsSet("grid-height") {
		req.GridHeight = ptr(c.Int("grid-height"))
	}
	if c.IsSet("cell-size") {
		req.CellSize = ptr(c.Int("cell-size"))
	}
	if c.IsSet("palette") {
		req.Palette = c.StringSlice("palette")
	}
	if c.IsSet("initial-image") {
		req.InitialImage = ptr(c.String("initial-image"))
	}

	return req
}

// cacheSubmission persists a raster submission and records the path on
// the result. Cache failures are logged, never fatal: the submission
// already succeeded.
func cacheSubmission(c *cli.Context, cfg *config.Config, logger *log.Logger, collector *metrics.Collector, result *types.SubmissionResult) {
	root := ""
	if cfg != nil {
		root = cfg.Cache.Dir
	}
	if root == "" {
		var err error
		root, err = cache.DefaultRoot()
		if err != nil {
			logger.Warn("cache disabled", map[string]any{"error": err.Error()})
			return
		}
	}

	path, err := cache.NewStore(root, logger, collector).Write(result.DataURL)
	if err != nil {
		logger.Warn("cache write failed", map[string]any{"error": err.Error()})
		return
	}
	result.CachedPath = path
}

// exitForError maps launch failures to the documented exit codes.
func exitForError(err error) error {
	var buildErr *launcher.BuildError
	switch {
	case launcher.IsCancelled(err):
		return cli.Exit("prompt cancelled", exitCancelled)
	case errors.As(err, &buildErr):
		return cli.Exit(fmt.Sprintf("ui build failed: %v", err), exitInvalid)
	default:
		return cli.Exit(fmt.Sprintf("prompt failed: %v", err), exitFailed)
	}
}

// snapshotFields flattens the final counters into log fields, emitted
// once per prompt so the lifecycle tallies land in the structured log.
func snapshotFields(s metrics.Snapshot) map[string]any {
	return map[string]any{
		"promptsLaunched":  s.PromptsLaunched,
		"promptsSubmitted": s.PromptsSubmitted,
		"promptsCancelled": s.PromptsCancelled,
		"promptsFailed":    s.PromptsFailed,
		"buildsAttempted":  s.BuildsAttempted,
		"buildsFailed":     s.BuildsFailed,
		"spawnFailures":    s.SpawnFailures,
		"cacheWrites":      s.CacheWrites,
		"cacheWriteErrors": s.CacheWriteErrors,
	}
}

func printResult(result *types.SubmissionResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outcomeEvent builds the completion event for either path.
func outcomeEvent(sessionID string, s *types.InputSpec, result *types.SubmissionResult, err error, duration time.Duration) *adapter.PromptCompletedEvent {
	event := &adapter.PromptCompletedEvent{
		EventType:  adapter.EventTypePromptCompleted,
		SessionID:  sessionID,
		Kind:       string(s.Kind),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		DurationMs: duration.Milliseconds(),
	}

	switch {
	case result != nil:
		event.Action = string(types.ActionSubmit)
		event.Format = string(result.Format)
		event.MimeType = result.MimeType
		event.CachedPath = result.CachedPath
	case launcher.IsCancelled(err):
		event.Action = string(types.ActionCancel)
	default:
		event.Action = string(types.ActionError)
		event.Message = err.Error()
	}
	return event
}

// publishOutcome sends the completion event when an adapter is
// configured. Publish failures are logged, never fatal.
func publishOutcome(cfg *config.Config, logger *log.Logger, event *adapter.PromptCompletedEvent) {
	a, err := buildAdapter(cfg)
	if err != nil {
		logger.Warn("adapter disabled", map[string]any{"error": err.Error()})
		return
	}
	if a == nil {
		return
	}
	defer iox.DiscardClose(a)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Publish(ctx, event); err != nil {
		logger.Warn("adapter publish failed", map[string]any{"error": err.Error()})
	}
}

// buildAdapter constructs the configured completion adapter, or nil when
// none is configured.
func buildAdapter(cfg *config.Config) (adapter.Adapter, error) {
	if cfg == nil || cfg.Adapter.Type == "" {
		return nil, nil
	}

	retries := -1
	if cfg.Adapter.Retries != nil {
		retries = *cfg.Adapter.Retries
	}

	switch cfg.Adapter.Type {
	case "webhook":
		wcfg := webhook.Config{
			URL:     cfg.Adapter.URL,
			Headers: cfg.Adapter.Headers,
			Timeout: cfg.Adapter.Timeout.Duration,
			Retries: webhook.DefaultRetries,
		}
		if retries >= 0 {
			wcfg.Retries = retries
		}
		return webhook.New(wcfg)
	case "redis":
		rcfg := redisadapter.Config{
			URL:     cfg.Adapter.URL,
			Channel: cfg.Adapter.Channel,
			Timeout: cfg.Adapter.Timeout.Duration,
			Retries: redisadapter.DefaultRetries,
		}
		if retries >= 0 {
			rcfg.Retries = retries
		}
		return redisadapter.New(rcfg)
	default:
		return nil, fmt.Errorf("unknown adapter type %q (must be webhook or redis)", cfg.Adapter.Type)
	}
}

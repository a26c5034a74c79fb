package launcher

import (
	"context"
	"time"

	"github.com/swairshah/InputMCP/log"
	"github.com/swairshah/InputMCP/metrics"
	"github.com/swairshah/InputMCP/types"
)

// Config configures a Launcher.
type Config struct {
	// UIBinary is the path to the UI subprocess binary.
	UIBinary string
	// Build describes build-on-demand. Nil disables the artifact check
	// (the binary is assumed present).
	Build *BuildConfig
	// Timeout bounds the subprocess lifetime. Zero means no deadline:
	// a hung interactive window then blocks the caller until closed.
	Timeout time.Duration
	// Factory overrides subprocess creation (for testing).
	// Nil uses NewUIProcess.
	Factory ProcessFactory
	// Collector records launch metrics. Nil-safe.
	Collector *metrics.Collector
}

// Launcher runs one UI subprocess per Launch call and returns the user's
// submission. Subprocesses are never pooled or reused across calls.
type Launcher struct {
	config *Config
	logger *log.Logger
}

// New creates a Launcher.
func New(config *Config, logger *log.Logger) *Launcher {
	return &Launcher{config: config, logger: logger}
}

// Launch collects one piece of input described by the normalized spec.
//
// Flow:
//  1. Ensure UI artifacts exist (build on demand, serialized).
//  2. Spawn exactly one subprocess, spec over the out-of-band channel.
//  3. Buffer the reply channel until exit.
//  4. Exit code gates trust: nonzero means the buffer is never parsed.
//  5. Classify the parsed envelope into a result or a typed failure.
func (l *Launcher) Launch(ctx context.Context, spec *types.InputSpec) (*types.SubmissionResult, error) {
	if l.config.Build != nil {
		l.config.Collector.IncBuildAttempted()
		if err := EnsureArtifacts(ctx, l.config.Build, l.logger); err != nil {
			l.config.Collector.IncBuildFailed()
			return nil, err
		}
	}

	if l.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.Timeout)
		defer cancel()
	}

	factory := l.config.Factory
	if factory == nil {
		factory = NewUIProcess
	}
	proc := factory(l.config.UIBinary)

	start := time.Now()
	l.logger.Info("launching ui subprocess", map[string]any{
		"binary": l.config.UIBinary,
		"kind":   string(spec.Kind),
	})

	if err := proc.Start(ctx, spec); err != nil {
		l.config.Collector.IncSpawnFailure()
		l.logger.Error("ui subprocess failed to start", map[string]any{
			"error": err.Error(),
		})
		return nil, &SpawnError{Err: err}
	}
	l.config.Collector.IncPromptLaunched()

	procResult, err := proc.Wait()
	if err != nil {
		return nil, &SpawnError{Err: err}
	}

	// Deadline expiry kills the subprocess; report the deadline, not the
	// kill's incidental exit code.
	if ctxErr := ctx.Err(); ctxErr != nil {
		l.logger.Warn("ui subprocess cut off by deadline", map[string]any{
			"timeout": l.config.Timeout.String(),
		})
		return nil, &SpawnError{Err: ctxErr}
	}

	l.logger.Info("ui subprocess exited", map[string]any{
		"exit_code": procResult.ExitCode,
		"duration":  time.Since(start).String(),
	})

	result, err := l.classifyReply(procResult, spec.Kind)
	switch {
	case err == nil:
		l.config.Collector.IncPromptSubmitted()
	case IsCancelled(err):
		l.config.Collector.IncPromptCancelled()
	default:
		l.config.Collector.IncPromptFailed()
	}
	return result, err
}

// classifyReply validates the buffered reply against the exit code and
// hands the envelope to Classify.
func (l *Launcher) classifyReply(procResult *ProcessResult, kind types.Kind) (*types.SubmissionResult, error) {
	if procResult.ExitCode != 0 {
		return nil, &NonZeroExitError{ExitCode: procResult.ExitCode}
	}

	env, err := parseReply(procResult.Reply)
	if err != nil {
		return nil, err
	}
	return Classify(env, kind)
}

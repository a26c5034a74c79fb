package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"sync"

	"github.com/swairshah/InputMCP/log"
)

// BuildCommand is one toolchain invocation that (re)produces the UI
// artifacts.
type BuildCommand struct {
	// Argv is the command and its arguments.
	Argv []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
}

// BuildConfig describes how the launcher ensures the UI artifacts exist
// before spawning.
type BuildConfig struct {
	// Artifacts are the paths that must all exist for a launch to proceed.
	Artifacts []string
	// Primary is the first toolchain tried when any artifact is missing.
	Primary BuildCommand
	// Fallback is tried when Primary fails. Optional.
	Fallback *BuildCommand
}

// buildMu serializes the check-then-maybe-build step. Two concurrent first
// launches would otherwise both observe missing artifacts and both build.
var buildMu sync.Mutex

// EnsureArtifacts checks the required artifacts and builds them on demand.
// Returns nil when all artifacts exist, a *BuildError when they are
// missing and both toolchains failed.
func EnsureArtifacts(ctx context.Context, cfg *BuildConfig, logger *log.Logger) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	missing := missingArtifacts(cfg.Artifacts)
	if len(missing) == 0 {
		return nil
	}

	logger.Info("ui artifacts missing, building", map[string]any{
		"missing": missing,
		"command": cfg.Primary.Argv,
	})

	primaryOut, primaryErr := runBuild(ctx, cfg.Primary)
	if primaryErr == nil {
		if still := missingArtifacts(cfg.Artifacts); len(still) == 0 {
			return nil
		}
		primaryErr = errArtifactsStillMissing
	}

	if cfg.Fallback == nil {
		return &BuildError{PrimaryErr: primaryErr, FallbackErr: errNoFallback, Output: primaryOut}
	}

	logger.Warn("primary build failed, trying fallback", map[string]any{
		"error":   primaryErr.Error(),
		"command": cfg.Fallback.Argv,
	})

	fallbackOut, fallbackErr := runBuild(ctx, *cfg.Fallback)
	if fallbackErr == nil {
		if still := missingArtifacts(cfg.Artifacts); len(still) == 0 {
			return nil
		}
		fallbackErr = errArtifactsStillMissing
	}

	return &BuildError{PrimaryErr: primaryErr, FallbackErr: fallbackErr, Output: fallbackOut}
}

func missingArtifacts(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

func runBuild(ctx context.Context, cmd BuildCommand) (string, error) {
	if len(cmd.Argv) == 0 {
		return "", errEmptyBuildCommand
	}
	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	out, err := c.CombinedOutput()
	return string(out), err
}

var (
	errArtifactsStillMissing = errors.New("build succeeded but artifacts are still missing")
	errNoFallback            = errors.New("no fallback toolchain configured")
	errEmptyBuildCommand     = errors.New("empty build command")
)

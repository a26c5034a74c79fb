package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/swairshah/InputMCP/types"
	"github.com/swairshah/InputMCP/wire"
)

// ProcessResult is the outcome of one UI subprocess run.
type ProcessResult struct {
	// ExitCode is the process exit code.
	ExitCode int
	// Reply is everything the subprocess wrote to its reply channel.
	Reply []byte
}

// UIProcess abstracts the UI subprocess lifecycle for testing.
type UIProcess interface {
	Start(ctx context.Context, spec *types.InputSpec) error
	Wait() (*ProcessResult, error)
	Kill() error
}

// ProcessFactory creates a UIProcess. Used for test injection.
type ProcessFactory func(binary string) UIProcess

// uiProcess manages the real UI subprocess.
//
// Channel layout: the normalized spec travels as one JSON document over an
// inherited pipe on descriptor 3 (ExtraFiles), so it can never be confused
// with the subprocess's standard streams. Stdin and stderr are inherited —
// the terminal UI reads the keyboard and renders on stderr — while stdout
// is captured in full as the reply channel.
type uiProcess struct {
	binary string
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

// NewUIProcess creates a process wrapper for the given UI binary.
func NewUIProcess(binary string) UIProcess {
	return &uiProcess{binary: binary}
}

// Start spawns the subprocess and completes the spec handoff.
func (p *uiProcess) Start(ctx context.Context, spec *types.InputSpec) error {
	specR, specW, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create spec pipe: %w", err)
	}

	p.cmd = exec.CommandContext(ctx, p.binary)
	p.cmd.Stdin = os.Stdin
	p.cmd.Stderr = os.Stderr
	p.cmd.ExtraFiles = []*os.File{specR}

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		_ = specR.Close()
		_ = specW.Close()
		return fmt.Errorf("failed to create reply pipe: %w", err)
	}
	p.stdout = stdout

	if err := p.cmd.Start(); err != nil {
		_ = specR.Close()
		_ = specW.Close()
		return fmt.Errorf("failed to start ui subprocess: %w", err)
	}

	// Parent's copy of the read end; the child holds its own.
	_ = specR.Close()

	// Hand off the spec and close the write end so the child sees EOF.
	// EPIPE means the child already exited without reading; let the
	// exit-code path classify that instead of failing the handoff.
	if err := wire.WriteSpec(specW, spec); err != nil && !errors.Is(err, syscall.EPIPE) {
		_ = specW.Close()
		_ = p.Kill()
		return fmt.Errorf("spec handoff failed: %w", err)
	}
	_ = specW.Close()

	return nil
}

// Wait buffers the reply channel until process exit and returns both.
// Must be called after Start. The reply is read before Wait reaps the
// child because exec.Cmd.Wait closes the stdout pipe.
func (p *uiProcess) Wait() (*ProcessResult, error) {
	if p.cmd == nil {
		return nil, errors.New("ui subprocess not started")
	}

	reply, _ := io.ReadAll(p.stdout)

	err := p.cmd.Wait()
	result := &ProcessResult{Reply: reply}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				result.ExitCode = status.ExitStatus()
			} else {
				result.ExitCode = -1
			}
		} else {
			return nil, fmt.Errorf("ui subprocess wait failed: %w", err)
		}
	}

	return result, nil
}

// Kill terminates the subprocess.
func (p *uiProcess) Kill() error {
	if p.cmd != nil && p.cmd.Process != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}

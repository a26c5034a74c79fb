// Package main provides the inputmcp-ui subprocess entrypoint.
//
// Channel contract:
//   - fd 3 carries the input spec as one JSON document
//   - stdout carries exactly one reply envelope line
//   - stderr carries the rendered prompt and diagnostics
//
// The process exits 0 whenever it managed to emit an envelope, including
// the error-action envelope for internal failures. A nonzero exit means
// the reply channel never received a trustworthy envelope.
package main

import (
	"fmt"
	"os"

	"github.com/swairshah/InputMCP/log"
	"github.com/swairshah/InputMCP/ui"
	"github.com/swairshah/InputMCP/wire"
)

func main() {
	os.Exit(run())
}

func run() int {
	resp := wire.NewResponder(os.Stdout)

	specFile := os.NewFile(wire.SpecFD, "spec")
	if specFile == nil {
		fmt.Fprintln(os.Stderr, "spec channel (fd 3) not inherited")
		return 1
	}

	spec, err := wire.ReadSpec(specFile)
	_ = specFile.Close()
	if err != nil {
		if emitted, werr := resp.Fail(fmt.Sprintf("unreadable spec handoff: %v", err)); !emitted || werr != nil {
			return 1
		}
		return 0
	}

	logger := log.NewLogger(&log.PromptMeta{SessionID: "ui", Kind: string(spec.Kind)})

	if err := ui.Run(spec, resp); err != nil {
		logger.Error("prompt ui failed", map[string]any{"error": err.Error()})
		if emitted, werr := resp.Fail(err.Error()); !emitted || werr != nil {
			return 1
		}
	}
	return 0
}

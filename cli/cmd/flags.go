// Package cmd provides CLI commands for the inputmcp binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags across commands.
var (
	// ConfigFlag points at an inputmcp.yaml file. Flags always override
	// config values.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to inputmcp.yaml config file",
	}

	// QuietFlag suppresses the result document on stdout.
	QuietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "Suppress result output",
	}
)

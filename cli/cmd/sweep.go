package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/swairshah/InputMCP/cache"
	"github.com/swairshah/InputMCP/log"
)

// SweepResponse is the result document for the sweep command.
type SweepResponse struct {
	Deleted   int    `json:"deleted"`
	Retention string `json:"retention"`
	Dir       string `json:"dir"`
}

// SweepCommand returns the sweep command, which evicts expired entries
// from the image cache.
func SweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Delete cached images older than the retention period",
		Flags: []cli.Flag{
			ConfigFlag,
			QuietFlag,
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Cache root directory (default: per-OS cache dir)",
			},
			&cli.DurationFlag{
				Name:  "retention",
				Usage: "Age threshold for deletion",
				Value: cache.DefaultRetention,
			},
		},
		Action: sweepAction,
	}
}

func sweepAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitInvalid)
	}

	root := c.String("cache-dir")
	if root == "" && cfg != nil {
		root = cfg.Cache.Dir
	}
	if root == "" {
		root, err = cache.DefaultRoot()
		if err != nil {
			return cli.Exit(fmt.Sprintf("cannot locate cache: %v", err), exitFailed)
		}
	}

	cfgRetention := time.Duration(0)
	if cfg != nil {
		cfgRetention = cfg.Cache.Retention.Duration
	}
	retention := retentionOrDefault(c.IsSet("retention"), c.Duration("retention"), cfgRetention)

	logger := log.NewLogger(&log.PromptMeta{SessionID: "sweep"})
	store := cache.NewStore(root, logger, nil)

	deleted, err := store.Sweep(retention)
	if err != nil {
		return cli.Exit(fmt.Sprintf("sweep failed: %v", err), exitFailed)
	}

	if !c.Bool("quiet") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(SweepResponse{
			Deleted:   deleted,
			Retention: retention.String(),
			Dir:       store.ImagesDir(),
		}); err != nil {
			return cli.Exit(fmt.Sprintf("cannot encode result: %v", err), exitFailed)
		}
	}
	return nil
}

// retentionOrDefault picks the retention: an explicit flag wins, then
// config, then the flag's built-in default.
func retentionOrDefault(flagSet bool, flag time.Duration, cfgRetention time.Duration) time.Duration {
	if flagSet || cfgRetention <= 0 {
		return flag
	}
	return cfgRetention
}

// Package cache persists exported images under the per-OS cache root and
// reclaims space with an age-based sweep.
//
// Layout: <platform cache root>/input-mcp/images/<timestamp>_<random>.<ext>
//
// Entries are write-once: a file is created on result delivery and only
// ever removed by a later sweep. Nothing is updated in place.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/swairshah/InputMCP/imageref"
	"github.com/swairshah/InputMCP/log"
	"github.com/swairshah/InputMCP/metrics"
)

const (
	// appDirName is the subdirectory under the platform cache root.
	appDirName = "input-mcp"
	// imagesDirName holds the cached image entries.
	imagesDirName = "images"

	// DefaultRetention is how long entries survive before the sweep
	// evicts them.
	DefaultRetention = 7 * 24 * time.Hour

	// timestampLayout is sortable: lexical order is chronological order.
	timestampLayout = "20060102-150405"
)

// extensionForMIME maps export media types to filename extensions.
var extensionForMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
}

// Store is the on-disk image cache.
type Store struct {
	root      string
	logger    *log.Logger
	collector *metrics.Collector
}

// DefaultRoot returns the per-OS cache directory for this tool.
func DefaultRoot() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user cache directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// NewStore creates a store rooted at the given directory.
// Collector is optional (nil-safe).
func NewStore(root string, logger *log.Logger, collector *metrics.Collector) *Store {
	return &Store{root: root, logger: logger, collector: collector}
}

// ImagesDir returns the directory holding cached entries.
func (s *Store) ImagesDir() string {
	return filepath.Join(s.root, imagesDirName)
}

// Write decodes a data-URL-encoded image and persists it as a new cache
// entry. The name embeds a sortable timestamp and a short random
// disambiguator. Returns the absolute path of the entry.
func (s *Store) Write(dataURL string) (string, error) {
	mime, data, err := imageref.Decode(dataURL)
	if err != nil {
		s.collector.IncCacheWriteError()
		return "", &WriteError{Op: "decode", Err: err}
	}

	dir := s.ImagesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.collector.IncCacheWriteError()
		return "", &WriteError{Op: "mkdir", Path: dir, Err: err}
	}

	name := fmt.Sprintf("%s_%s%s",
		time.Now().UTC().Format(timestampLayout),
		uuid.NewString()[:8],
		extensionFor(mime),
	)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.collector.IncCacheWriteError()
		return "", &WriteError{Op: "write", Path: path, Err: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s.collector.IncCacheWrite()
	s.logger.Info("cached image", map[string]any{
		"path":  abs,
		"bytes": len(data),
		"mime":  mime,
	})
	return abs, nil
}

// Sweep deletes entries whose modification time predates now minus the
// retention, and reports how many were removed. A missing images
// directory is not an error. Per-file stat and delete failures are logged
// and skipped so one corrupt entry cannot block the sweep.
func (s *Store) Sweep(retention time.Duration) (int, error) {
	dir := s.ImagesDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("cannot list cache directory %q: %w", dir, err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("cache sweep: cannot stat entry", map[string]any{
				"entry": entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			s.logger.Warn("cache sweep: cannot delete entry", map[string]any{
				"entry": entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		deleted++
	}

	s.collector.AddSweepDeletions(int64(deleted))
	s.logger.Info("cache sweep complete", map[string]any{
		"deleted":   deleted,
		"retention": retention.String(),
	})
	return deleted, nil
}

func extensionFor(mime string) string {
	if ext, ok := extensionForMIME[mime]; ok {
		return ext
	}
	return ".png"
}

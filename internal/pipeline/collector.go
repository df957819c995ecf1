package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/conneroisu/scaff/internal/errors"
	"github.com/conneroisu/scaff/internal/logging"
)

// Collector persists pipeline results to a destination directory.
type Collector struct {
	log logging.Logger
}

// NewCollector creates a collector. A nil logger discards.
func NewCollector(log logging.Logger) *Collector {
	if log == nil {
		log = logging.Discard()
	}

	return &Collector{log: log.WithComponent("collector")}
}

// Save writes tier_results.json to dir and, when file outputs exist,
// file_outputs.json as one combined record. With createFiles set it also
// writes one file per output under dir/files, named exactly by the extracted
// file name; extraction mistakes surface as odd file names rather than being
// sanitized away. Existing files are overwritten.
func (c *Collector) Save(ctx context.Context, results *Results, dir string, createFiles bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewIOError(errors.ErrCodeOutputWrite, "creating output directory", err).WithPath(dir)
	}

	if err := writeJSON(filepath.Join(dir, "tier_results.json"), results.TierResults); err != nil {
		return err
	}

	if len(results.FileOutputs) == 0 {
		c.log.Info(ctx, "pipeline outputs saved", "dir", dir)
		return nil
	}

	if err := writeJSON(filepath.Join(dir, "file_outputs.json"), results.FileOutputs); err != nil {
		return err
	}

	if createFiles {
		filesDir := filepath.Join(dir, "files")
		if err := os.MkdirAll(filesDir, 0o755); err != nil {
			return errors.NewIOError(errors.ErrCodeOutputWrite, "creating files directory", err).WithPath(filesDir)
		}

		for name, content := range results.FileOutputs {
			path := filepath.Join(filesDir, name)
			if err := os.WriteFile(path, []byte(renderContent(content)), 0o644); err != nil {
				return errors.NewIOError(errors.ErrCodeOutputWrite, "writing generated file", err).WithPath(path)
			}
		}
	}

	c.log.Info(ctx, "pipeline outputs saved", "dir", dir, "files", len(results.FileOutputs))

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewIOError(errors.ErrCodeOutputWrite, "encoding results", err).WithPath(path)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeOutputWrite, "writing results", err).WithPath(path)
	}

	return nil
}

// renderContent turns a single file output into bytes for disk: strings are
// written as-is, structured results as indented JSON.
func renderContent(content any) string {
	switch v := content.(type) {
	case string:
		return v
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Package store persists scaffold documents. JSON and YAML files are
// supported, picked by extension; the wire format follows the documented
// scaffold document shape (project_name, description, variables, tiers,
// system_info).
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/scaff/internal/errors"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// Load reads, normalizes, and validates a scaffold document. A document
// saved without a system_info snapshot gets a fresh capture so later tier
// runs can still bind $system.
func Load(path string) (*scaffold.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrDocumentNotFound(path)
		}
		return nil, errors.NewIOError(errors.ErrCodeDocumentNotFound, "reading scaffold document", err).WithPath(path)
	}

	var cfg scaffold.Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewValidationError(
				errors.ErrCodeDocumentInvalid,
				"scaffold document is not valid JSON: "+err.Error(),
			).WithPath(path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewValidationError(
				errors.ErrCodeDocumentInvalid,
				"scaffold document is not valid YAML: "+err.Error(),
			).WithPath(path)
		}
	default:
		return nil, errors.NewValidationError(
			errors.ErrCodeDocumentFormat,
			"unsupported scaffold document extension '"+ext+"'",
		).WithPath(path)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SystemInfo.Empty() {
		cfg.SystemInfo = scaffold.CaptureSystemInfo()
	}

	return &cfg, nil
}

// Save writes a scaffold document, overwriting any existing file. The
// extension picks the encoding the same way Load does.
func Save(cfg *scaffold.Config, path string) error {
	var (
		data []byte
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return errors.NewValidationError(
			errors.ErrCodeDocumentFormat,
			"unsupported scaffold document extension '"+ext+"'",
		).WithPath(path)
	}
	if err != nil {
		return errors.NewIOError(errors.ErrCodeOutputWrite, "encoding scaffold document", err).WithPath(path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeOutputWrite, "writing scaffold document", err).WithPath(path)
	}

	return nil
}

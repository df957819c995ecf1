package scaffold

import (
	"fmt"

	"github.com/conneroisu/scaff/internal/errors"
)

// Format is the expected shape of a tier's output.
type Format string

const (
	// FormatText returns the external tool's output as a plain string.
	FormatText Format = "text"
	// FormatJSON attempts to decode the output as JSON, falling back to
	// the raw text when it does not parse.
	FormatJSON Format = "json"
)

// Valid reports whether the format is one of the supported values.
func (f Format) Valid() bool {
	return f == FormatText || f == FormatJSON
}

// Tier is one named stage of a scaffold: a prompt template plus the switches
// controlling how it runs.
type Tier struct {
	Enabled       bool     `json:"enabled" yaml:"enabled"`
	Template      Template `json:"prompt_template" yaml:"prompt_template"`
	Format        Format   `json:"output_format" yaml:"output_format"`
	UseSystemInfo bool     `json:"use_system_info" yaml:"use_system_info"`
	Optimize      bool     `json:"optimize" yaml:"optimize"`
}

// Normalize fills in defaults for fields a document may omit.
func (t *Tier) Normalize() {
	if t.Format == "" {
		t.Format = FormatText
	}
}

// Validate checks the tier's structural invariants.
func (t *Tier) Validate(name string) error {
	if t == nil {
		return errors.NewValidationError(
			errors.ErrCodeDocumentInvalid,
			fmt.Sprintf("tier '%s' is empty", name),
		).WithTier(name)
	}
	if t.Template.Content == "" {
		return errors.NewValidationError(
			errors.ErrCodeDocumentInvalid,
			fmt.Sprintf("tier '%s' has no prompt template", name),
		).WithTier(name)
	}
	if !t.Format.Valid() {
		return errors.NewValidationError(
			errors.ErrCodeOutputFormat,
			fmt.Sprintf("tier '%s' has unknown output format '%s'", name, t.Format),
		).WithTier(name)
	}

	return nil
}

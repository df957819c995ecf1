// Package scaffold holds the core domain of the prompt scaffolding system:
// prompt templates, tiers, the scaffold document that groups them, and the
// runner that turns a tier into an external tool invocation.
package scaffold

import (
	"fmt"
	"sort"

	"github.com/conneroisu/scaff/internal/errors"
)

// Config is a scaffold document: project identity, shared variables, and the
// named tiers that make up the pipeline. It is plain data; processing lives
// in Runner so documents stay inert and serializable.
type Config struct {
	Name        string           `json:"project_name" yaml:"project_name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Variables   map[string]any   `json:"variables" yaml:"variables"`
	Tiers       map[string]*Tier `json:"tiers" yaml:"tiers"`
	SystemInfo  SystemInfo       `json:"system_info" yaml:"system_info"`
}

// HasTier reports whether a tier with the given name exists.
func (c *Config) HasTier(name string) bool {
	_, ok := c.Tiers[name]
	return ok
}

// Tier returns the named tier.
func (c *Config) Tier(name string) (*Tier, bool) {
	t, ok := c.Tiers[name]
	return t, ok
}

// TierNames returns all tier names in sorted order.
func (c *Config) TierNames() []string {
	names := make([]string, 0, len(c.Tiers))
	for name := range c.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// AddTier registers a tier under the given name, replacing any existing
// tier. An empty output format defaults to text.
func (c *Config) AddTier(name string, tier Tier) {
	if c.Tiers == nil {
		c.Tiers = make(map[string]*Tier)
	}
	tier.Normalize()
	c.Tiers[name] = &tier
}

// SetTierEnabled flips a tier's enabled switch.
func (c *Config) SetTierEnabled(name string, enabled bool) error {
	tier, ok := c.Tiers[name]
	if !ok {
		return errors.ErrTierNotFound(name)
	}
	tier.Enabled = enabled

	return nil
}

// Normalize fills in defaults a hand-written document may omit.
func (c *Config) Normalize() {
	if c.Variables == nil {
		c.Variables = make(map[string]any)
	}
	if c.Tiers == nil {
		c.Tiers = make(map[string]*Tier)
	}
	for _, tier := range c.Tiers {
		if tier != nil {
			tier.Normalize()
		}
	}
}

// Validate checks the document's structural invariants. Tiers are checked in
// name order so the first error reported is stable.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError(
			errors.ErrCodeDocumentInvalid,
			"document has no project_name",
		)
	}

	for _, name := range c.TierNames() {
		if name == "" {
			return errors.NewValidationError(
				errors.ErrCodeDocumentInvalid,
				"document has a tier with an empty name",
			)
		}
		if err := c.Tiers[name].Validate(name); err != nil {
			return err
		}
	}

	return nil
}

// Summary returns a short human-readable description of the document.
func (c *Config) Summary() string {
	enabled := 0
	for _, tier := range c.Tiers {
		if tier != nil && tier.Enabled {
			enabled++
		}
	}

	return fmt.Sprintf("%s: %d tiers (%d enabled)", c.Name, len(c.Tiers), enabled)
}

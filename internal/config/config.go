// Package config loads tool-level configuration for scaff through viper:
// a .scaff.yml file, SCAFF_-prefixed environment variables, and bound
// command-line flags, in increasing priority. The scaffold document itself
// is separate data, handled by the store package.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/scaff/internal/errors"
)

// Config is the tool configuration.
type Config struct {
	Executor ExecutorConfig `yaml:"executor" mapstructure:"executor"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
	Scaffold string         `yaml:"scaffold" mapstructure:"scaffold"`
	LogLevel string         `yaml:"log_level" mapstructure:"log_level"`
}

// ExecutorConfig configures the external text-generation command.
type ExecutorConfig struct {
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args" mapstructure:"args"`
	Mock    bool     `yaml:"mock" mapstructure:"mock"`
}

// OutputConfig configures where pipeline results land.
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	CreateFiles bool   `yaml:"create_files" mapstructure:"create_files"`
}

// ServerConfig configures the output preview server.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	Open bool   `yaml:"open" mapstructure:"open"`
}

// WatchConfig configures the document watcher.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Debounce returns the debounce interval as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Load unmarshals the viper state into a Config, applies defaults for unset
// fields, and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "unmarshalling tool config: "+err.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Executor.Command == "" {
		c.Executor.Command = "claude"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./generated"
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8420
	}
	if !viper.IsSet("server.open") {
		c.Server.Open = true
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = 300
	}
	if c.Scaffold == "" {
		c.Scaffold = "scaffold.json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration for values that would make later
// operations fail or unsafe.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.NewConfigError(
			errors.ErrCodeConfigInvalid,
			fmt.Sprintf("server port %d is outside 1-65535", c.Server.Port),
		)
	}

	if c.Executor.Command == "" {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "executor command is empty")
	}
	if strings.ContainsAny(c.Executor.Command, ";&|`$(){}[]<>*?~#!\"'\\ \t\n") {
		return errors.ErrCommandInjection(c.Executor.Command)
	}

	if strings.Contains(filepath.ToSlash(c.Output.Dir), "..") {
		return errors.ErrPathTraversal(c.Output.Dir)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewConfigError(
			errors.ErrCodeConfigInvalid,
			fmt.Sprintf("watch debounce %dms is negative", c.Watch.DebounceMS),
		)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return errors.NewConfigError(
			errors.ErrCodeConfigInvalid,
			"unknown log level '"+c.LogLevel+"'",
		)
	}

	return nil
}

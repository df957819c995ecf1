package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.Executor.Command)
	assert.False(t, cfg.Executor.Mock)
	assert.Equal(t, "./generated", cfg.Output.Dir)
	assert.False(t, cfg.Output.CreateFiles)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8420, cfg.Server.Port)
	assert.True(t, cfg.Server.Open)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, "scaffold.json", cfg.Scaffold)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), ".scaff.yml")
	content := `executor:
  command: llm
  args: ["--fast"]
output:
  dir: ./out
  create_files: true
server:
  port: 9000
  open: false
watch:
  debounce_ms: 50
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "llm", cfg.Executor.Command)
	assert.Equal(t, []string{"--fast"}, cfg.Executor.Args)
	assert.Equal(t, "./out", cfg.Output.Dir)
	assert.True(t, cfg.Output.CreateFiles)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.Open)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "outside 1-65535"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "outside 1-65535"},
		{"shell metacharacters in command", func(c *Config) { c.Executor.Command = "claude;rm" }, "command injection"},
		{"command with spaces", func(c *Config) { c.Executor.Command = "claude --x" }, "command injection"},
		{"output dir traversal", func(c *Config) { c.Output.Dir = "../outside" }, "path traversal"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "negative"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

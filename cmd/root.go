// Package cmd provides the scaff command-line interface.
//
// Configuration sources, in increasing priority:
//  1. .scaff.yml in the current directory
//  2. SCAFF_-prefixed environment variables (SCAFF_EXECUTOR_COMMAND, ...)
//  3. SCAFF_CONFIG_FILE pointing at a custom config file
//  4. command-line flags (--config, --scaffold, ...)
//
// The tool config is distinct from the scaffold document: the former says
// how scaff runs (executor command, output dir, server), the latter is the
// project being scaffolded (variables, tiers, templates).
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/scaff/internal/config"
	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
	"github.com/conneroisu/scaff/internal/store"
)

var (
	cfgFile      string
	scaffoldPath string
	logLevel     string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "scaff",
	Short: "Tiered prompt scaffolding for project skeletons",
	Long: `scaff renders parameterized prompt templates, pipes them through an
external text-generation tool, and chains named tiers into a pipeline:
a planning tier proposes files, and a file-generation tier is invoked
once per proposed file.

Quick start:
  scaff init --name demo --concept "a CSV toolkit" --language python
  scaff enable file_generation
  scaff pipeline --mock --create-files
  scaff serve`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default .scaff.yml, or SCAFF_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVarP(&scaffoldPath, "scaffold", "s", "", "scaffold document path (default scaffold.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (log level debug)")

	_ = viper.BindPFlag("scaffold", rootCmd.PersistentFlags().Lookup("scaffold"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SCAFF_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scaff")
	}

	viper.SetEnvPrefix("SCAFF")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults cover everything.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadToolConfig resolves the tool configuration from the viper state.
func loadToolConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger builds the process logger from the tool config.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: "text",
		Output: os.Stderr,
	})
}

// documentPath resolves the scaffold document path: flag, then env/config,
// then the default.
func documentPath(cfg *config.Config) string {
	if scaffoldPath != "" {
		return scaffoldPath
	}

	return cfg.Scaffold
}

// loadDocument loads the scaffold document the commands operate on.
func loadDocument(cfg *config.Config) (*scaffold.Config, string, error) {
	path := documentPath(cfg)
	doc, err := store.Load(path)
	if err != nil {
		return nil, path, err
	}

	return doc, path, nil
}

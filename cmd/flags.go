package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/scaff/internal/config"
	"github.com/conneroisu/scaff/internal/executor"
	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// formatValue is a pflag.Value restricted to a fixed set of output formats.
type formatValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def string, allowed ...string) *formatValue {
	return &formatValue{value: def, allowed: allowed}
}

func (f *formatValue) String() string { return f.value }

func (f *formatValue) Set(s string) error {
	for _, a := range f.allowed {
		if s == a {
			f.value = s
			return nil
		}
	}

	return fmt.Errorf("must be one of: %s", strings.Join(f.allowed, ", "))
}

func (f *formatValue) Type() string { return "format" }

// runFlags are the flags shared by the tier-executing commands.
type runFlags struct {
	Input  string
	Mock   bool
	Output string
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "input data, or @file to read from a file (JSON files decode to structured input)")
	cmd.Flags().BoolVar(&flags.Mock, "mock", false, "use the deterministic offline executor instead of the external tool")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "write the result to a file instead of stdout")
}

// parseInput resolves --input: a literal string, or @path to read a file,
// where .json files decode into structured input.
func (f *runFlags) parseInput() (any, error) {
	if f.Input == "" {
		return nil, nil
	}
	if !strings.HasPrefix(f.Input, "@") {
		return f.Input, nil
	}

	path := strings.TrimPrefix(f.Input, "@")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("input file %s is not valid JSON: %w", path, err)
		}
		return v, nil
	}

	return string(data), nil
}

// buildExecutor wires the executor strategy: the mock when requested by flag
// or config, the external command otherwise.
func buildExecutor(cfg *config.Config, mockFlag bool, log logging.Logger) (scaffold.Executor, error) {
	if mockFlag || cfg.Executor.Mock {
		return executor.NewMockExecutor(log), nil
	}

	return executor.NewCommandExecutor(cfg.Executor.Command, cfg.Executor.Args, log)
}

// buildOptimizer wires the optimizer strategy. The mock path keeps the
// identity optimizer so offline output stays predictable; real runs refine
// through a second prompt pass.
func buildOptimizer(exec scaffold.Executor, mockFlag bool, cfg *config.Config, log logging.Logger) scaffold.Optimizer {
	if mockFlag || cfg.Executor.Mock {
		return executor.NewNopOptimizer(log)
	}

	return executor.NewPromptOptimizer(exec, log)
}

// printResult writes a tier or pipeline result to a file or stdout.
// Structured results serialize as indented JSON.
func printResult(result any, outputPath string) error {
	var text string
	switch v := result.(type) {
	case string:
		text = v
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		text = string(data)
	}

	if outputPath == "" {
		fmt.Println(text)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Printf("Output saved to %s\n", outputPath)

	return nil
}

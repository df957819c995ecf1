package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/conneroisu/scaff/internal/config"
	"github.com/conneroisu/scaff/internal/store"
)

var (
	doctorVerbose bool
	doctorFormat  = newFormatValue("table", "table", "json", "yaml")
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the scaff environment",
	Long: `Check the pieces a pipeline run depends on: tool configuration,
scaffold document, executor binary, and output directory.

Examples:
  scaff doctor
  scaff doctor --verbose
  scaff doctor --format json`,
	RunE: runDoctor,
}

// DiagnosticResult is one check's outcome.
type DiagnosticResult struct {
	Name       string `json:"name" yaml:"name"`
	Status     string `json:"status" yaml:"status"` // ok, warning, error, info
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// DoctorReport is the complete diagnostic report.
type DoctorReport struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Platform  string             `json:"platform" yaml:"platform"`
	GoVersion string             `json:"go_version" yaml:"go_version"`
	Results   []DiagnosticResult `json:"results" yaml:"results"`
	Failed    int                `json:"failed" yaml:"failed"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false, "show informational results too")
	doctorCmd.Flags().Var(doctorFormat, "format", "output format (table|json|yaml)")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := &DoctorReport{
		Timestamp: time.Now(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}

	cfg, result := checkToolConfig()
	report.Results = append(report.Results, result)
	if cfg != nil {
		report.Results = append(report.Results,
			checkDocument(cfg),
			checkExecutorBinary(cfg),
			checkOutputDir(cfg),
		)
	}

	for _, r := range report.Results {
		if r.Status == "error" {
			report.Failed++
		}
	}

	if err := renderDoctorReport(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d check(s) failed", report.Failed)
	}

	return nil
}

func checkToolConfig() (*config.Config, DiagnosticResult) {
	cfg, err := loadToolConfig()
	if err != nil {
		return nil, DiagnosticResult{
			Name:       "tool config",
			Status:     "error",
			Message:    err.Error(),
			Suggestion: "fix .scaff.yml or the SCAFF_ environment overrides",
		}
	}

	return cfg, DiagnosticResult{
		Name:    "tool config",
		Status:  "ok",
		Message: fmt.Sprintf("executor %q, output dir %q", cfg.Executor.Command, cfg.Output.Dir),
	}
}

func checkDocument(cfg *config.Config) DiagnosticResult {
	path := documentPath(cfg)
	doc, err := store.Load(path)
	if err != nil {
		return DiagnosticResult{
			Name:       "scaffold document",
			Status:     "error",
			Message:    err.Error(),
			Suggestion: "run 'scaff init' to create one",
		}
	}

	return DiagnosticResult{
		Name:    "scaffold document",
		Status:  "ok",
		Message: fmt.Sprintf("%s: %s", path, doc.Summary()),
	}
}

func checkExecutorBinary(cfg *config.Config) DiagnosticResult {
	if cfg.Executor.Mock {
		return DiagnosticResult{
			Name:    "executor binary",
			Status:  "info",
			Message: "mock executor configured, no binary needed",
		}
	}

	path, err := exec.LookPath(cfg.Executor.Command)
	if err != nil {
		return DiagnosticResult{
			Name:       "executor binary",
			Status:     "error",
			Message:    fmt.Sprintf("%q not found on PATH", cfg.Executor.Command),
			Suggestion: "install it, point executor.command elsewhere, or use --mock",
		}
	}

	return DiagnosticResult{
		Name:    "executor binary",
		Status:  "ok",
		Message: path,
	}
}

func checkOutputDir(cfg *config.Config) DiagnosticResult {
	dir := cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DiagnosticResult{
			Name:       "output directory",
			Status:     "error",
			Message:    fmt.Sprintf("cannot create %s: %v", dir, err),
			Suggestion: "choose a writable output.dir",
		}
	}

	probe := filepath.Join(dir, ".scaff-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return DiagnosticResult{
			Name:       "output directory",
			Status:     "error",
			Message:    fmt.Sprintf("%s is not writable: %v", dir, err),
			Suggestion: "choose a writable output.dir",
		}
	}
	_ = os.Remove(probe)

	return DiagnosticResult{
		Name:    "output directory",
		Status:  "ok",
		Message: dir + " is writable",
	}
}

func renderDoctorReport(report *DoctorReport) error {
	switch doctorFormat.String() {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		for _, r := range report.Results {
			if r.Status == "info" && !doctorVerbose {
				continue
			}
			fmt.Printf("[%s] %s: %s\n", r.Status, r.Name, r.Message)
			if r.Suggestion != "" && r.Status != "ok" {
				fmt.Printf("       -> %s\n", r.Suggestion)
			}
		}
		fmt.Printf("\n%d check(s), %d failed\n", len(report.Results), report.Failed)
	}

	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/scaffold"
)

var runTierFlags runFlags

var runCmd = &cobra.Command{
	Use:   "run <tier>",
	Short: "Run a single tier of the scaffold document",
	Long: `Run one named tier: render its prompt template against the document
variables (plus --input, when given) and execute it.

Examples:
  scaff run initial
  scaff run file_generation --input @plan.json
  scaff run initial --mock --output plan.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd, &runTierFlags)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	doc, _, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	input, err := runTierFlags.parseInput()
	if err != nil {
		return err
	}

	exec, err := buildExecutor(cfg, runTierFlags.Mock, log)
	if err != nil {
		return err
	}
	opt := buildOptimizer(exec, runTierFlags.Mock, cfg, log)

	runner := scaffold.NewRunner(doc, exec, opt, log)
	result, err := runner.ProcessTier(cmd.Context(), args[0], input)
	if err != nil {
		return err
	}

	return printResult(result, runTierFlags.Output)
}

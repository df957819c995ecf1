package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/executor"
	"github.com/conneroisu/scaff/internal/pipeline"
	"github.com/conneroisu/scaff/internal/scaffold"
)

var (
	pipelineRunFlags    runFlags
	pipelineOutDir      string
	pipelineCreateFiles bool
	pipelineDryRun      bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [start-tier]",
	Short: "Run the multi-tier pipeline and save its outputs",
	Long: `Run the pipeline from a start tier (default "initial"). When the start
tier is "initial" and an enabled "file_generation" tier exists, file names
are extracted from the plan and the generation tier runs once per file.

Results are saved to the output directory as tier_results.json plus, when
fan-out produced anything, file_outputs.json and (with --create-files) one
file per output under files/.

Examples:
  scaff pipeline --mock
  scaff pipeline --mock --create-files --out ./generated
  scaff pipeline --dry-run
  scaff pipeline file_generation --input @plan.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)

	addRunFlags(pipelineCmd, &pipelineRunFlags)
	pipelineCmd.Flags().StringVar(&pipelineOutDir, "out", "", "output directory (default from tool config)")
	pipelineCmd.Flags().BoolVar(&pipelineCreateFiles, "create-files", false, "write one file per generated output under files/")
	pipelineCmd.Flags().BoolVar(&pipelineDryRun, "dry-run", false, "render prompts without executing or saving")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	doc, _, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	startTier := scaffold.TierInitial
	if len(args) == 1 {
		startTier = args[0]
	}

	input, err := pipelineRunFlags.parseInput()
	if err != nil {
		return err
	}

	if pipelineDryRun {
		return dryRunPipeline(cmd.Context(), doc, startTier, input)
	}

	exec, err := buildExecutor(cfg, pipelineRunFlags.Mock, log)
	if err != nil {
		return err
	}
	opt := buildOptimizer(exec, pipelineRunFlags.Mock, cfg, log)

	runner := scaffold.NewRunner(doc, exec, opt, log)
	proc := pipeline.NewProcessor(runner, log)

	results, err := proc.Run(cmd.Context(), startTier, input)
	if err != nil {
		return err
	}

	outDir := pipelineOutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	createFiles := pipelineCreateFiles || cfg.Output.CreateFiles

	collector := pipeline.NewCollector(log)
	if err := collector.Save(cmd.Context(), results, outDir, createFiles); err != nil {
		return err
	}

	printPipelineSummary(results, outDir)

	return nil
}

// dryRunPipeline prints the prompts the pipeline would execute, using an
// executor that returns each rendered prompt as its own result.
func dryRunPipeline(ctx context.Context, doc *scaffold.Config, startTier string, input any) error {
	echo := executor.ExecutorFunc(func(_ context.Context, prompt string, _ scaffold.Format) (any, error) {
		return prompt, nil
	})

	runner := scaffold.NewRunner(doc, echo, nil, nil)
	proc := pipeline.NewProcessor(runner, nil)

	results, err := proc.Run(ctx, startTier, input)
	if err != nil {
		return err
	}

	for tier, prompt := range results.TierResults {
		fmt.Printf("--- tier %s ---\n%v\n", tier, prompt)
	}
	for _, name := range sortedKeys(results.FileOutputs) {
		fmt.Printf("--- file %s ---\n%v\n", name, results.FileOutputs[name])
	}

	return nil
}

func printPipelineSummary(results *pipeline.Results, outDir string) {
	fmt.Printf("Pipeline complete: %d tier result(s), %d file output(s)\n",
		len(results.TierResults), len(results.FileOutputs))
	for _, name := range sortedKeys(results.FileOutputs) {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Printf("Outputs saved to %s\n", outDir)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

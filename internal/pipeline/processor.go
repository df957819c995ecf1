// Package pipeline orchestrates multi-tier scaffold runs: it executes a
// start tier, fans out a per-file generation tier driven by file names
// extracted from the start tier's result, and saves the collected outputs.
package pipeline

import (
	"context"

	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// Results holds everything one pipeline run produced. A fresh value is built
// per Run call; the processor keeps no state across runs.
type Results struct {
	TierResults map[string]any `json:"tier_results"`
	FileOutputs map[string]any `json:"file_outputs"`
}

// Processor drives multi-tier runs over a scaffold runner.
type Processor struct {
	runner *scaffold.Runner
	log    logging.Logger
}

// NewProcessor creates a processor. A nil logger discards.
func NewProcessor(runner *scaffold.Runner, log logging.Logger) *Processor {
	if log == nil {
		log = logging.Discard()
	}

	return &Processor{
		runner: runner,
		log:    log.WithComponent("pipeline"),
	}
}

// Run executes startTier and, when startTier is the initial planning tier
// and an enabled file_generation tier exists, runs that tier once per file
// name extracted from the plan. The fan-out is fixed at two levels.
//
// An unknown start tier fails with nothing recorded. A failure later in the
// run returns the partial Results alongside the error; results already
// recorded are kept (there is no rollback).
func (p *Processor) Run(ctx context.Context, startTier string, input any) (*Results, error) {
	results := &Results{
		TierResults: make(map[string]any),
		FileOutputs: make(map[string]any),
	}

	result, err := p.runner.ProcessTier(ctx, startTier, input)
	if err != nil {
		return nil, err
	}
	results.TierResults[startTier] = result

	if startTier != scaffold.TierInitial {
		return results, nil
	}

	tier, ok := p.runner.Config().Tier(scaffold.TierFileGeneration)
	if !ok || !tier.Enabled {
		return results, nil
	}

	names := ExtractFileNames(result)
	p.log.Info(ctx, "fanning out file generation", "files", len(names))

	for _, name := range names {
		fileCtx := map[string]any{
			"file_name": name,
			"plan":      result,
		}

		out, err := p.runner.ProcessTier(ctx, scaffold.TierFileGeneration, fileCtx)
		if err != nil {
			return results, err
		}
		results.FileOutputs[name] = out
	}

	return results, nil
}

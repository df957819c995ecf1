// Package executor provides the prompt execution strategies a scaffold
// runner delegates to: a real external-command executor, a deterministic
// mock for offline runs, and the result optimizers tiers can opt into.
package executor

import (
	"context"

	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// ExecutorFunc adapts a plain function to the scaffold.Executor interface.
type ExecutorFunc func(ctx context.Context, prompt string, format scaffold.Format) (any, error)

// Execute implements scaffold.Executor.
func (f ExecutorFunc) Execute(ctx context.Context, prompt string, format scaffold.Format) (any, error) {
	return f(ctx, prompt, format)
}

// OptimizerFunc adapts a plain function to the scaffold.Optimizer interface.
type OptimizerFunc func(ctx context.Context, result any, tier string) (any, error)

// Optimize implements scaffold.Optimizer.
func (f OptimizerFunc) Optimize(ctx context.Context, result any, tier string) (any, error) {
	return f(ctx, result, tier)
}

// NopOptimizer is the default optimizer: it logs the request and returns the
// result unchanged.
type NopOptimizer struct {
	log logging.Logger
}

// NewNopOptimizer creates an identity optimizer. A nil logger discards.
func NewNopOptimizer(log logging.Logger) *NopOptimizer {
	if log == nil {
		log = logging.Discard()
	}

	return &NopOptimizer{log: log.WithComponent("optimizer")}
}

// Optimize returns the result unchanged.
func (o *NopOptimizer) Optimize(ctx context.Context, result any, tier string) (any, error) {
	o.log.Debug(ctx, "optimizing result for tier", "tier", tier)

	return result, nil
}

package executor

import (
	"context"
	"strings"

	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// OptimizedHeading marks output that went through a prompt-based
// optimization pass.
const OptimizedHeading = "### OPTIMIZED OUTPUT ###"

const defaultOptimizeTemplate = `Review and improve the following output from the $tier stage:

$input

Keep the structure and intent intact. Return only the improved output.`

// PromptOptimizer refines a tier's result with a second executor call around
// a meta-prompt. When the executor reports an invocation failure the
// original result is kept, so optimization can only degrade to a no-op.
type PromptOptimizer struct {
	exec scaffold.Executor
	tmpl scaffold.Template
	log  logging.Logger
}

// NewPromptOptimizer creates an optimizer over the given executor using the
// default meta-prompt.
func NewPromptOptimizer(exec scaffold.Executor, log logging.Logger) *PromptOptimizer {
	if log == nil {
		log = logging.Discard()
	}

	return &PromptOptimizer{
		exec: exec,
		tmpl: scaffold.NewTemplate(defaultOptimizeTemplate),
		log:  log.WithComponent("optimizer"),
	}
}

// WithTemplate replaces the meta-prompt template.
func (o *PromptOptimizer) WithTemplate(tmpl scaffold.Template) *PromptOptimizer {
	o.tmpl = tmpl

	return o
}

// Optimize implements scaffold.Optimizer.
func (o *PromptOptimizer) Optimize(ctx context.Context, result any, tier string) (any, error) {
	prompt := o.tmpl.Render(map[string]any{
		"input": result,
		"tier":  tier,
	})

	o.log.Info(ctx, "optimizing result for tier", "tier", tier)

	out, err := o.exec.Execute(ctx, prompt, scaffold.FormatText)
	if err != nil {
		return nil, err
	}

	s, ok := out.(string)
	if !ok {
		return out, nil
	}
	if strings.HasPrefix(s, "Error: ") {
		o.log.Warn(ctx, nil, "optimization pass failed, keeping original result", "tier", tier)
		return result, nil
	}

	return OptimizedHeading + "\n" + s, nil
}

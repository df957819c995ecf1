package scaffold

import (
	"context"

	"github.com/conneroisu/scaff/internal/errors"
	"github.com/conneroisu/scaff/internal/logging"
)

// Reserved context keys bound by the runner. They shadow document variables
// of the same name.
const (
	// KeyInput carries the input handed to ProcessTier.
	KeyInput = "input"
	// KeySystem carries the document's system info snapshot.
	KeySystem = "system"
)

// Executor produces a result for a rendered prompt. Results are dynamically
// shaped: a string for text output, decoded JSON (map or slice) when the
// tier's format is JSON and the output parses. Invocation failures of the
// external tool are reported as "Error: ..." result strings, not errors, so
// a pipeline run can continue past them.
type Executor interface {
	Execute(ctx context.Context, prompt string, format Format) (any, error)
}

// Optimizer post-processes a tier's result when the tier asks for it.
type Optimizer interface {
	Optimize(ctx context.Context, result any, tier string) (any, error)
}

// Runner processes tiers of a single document through an executor. The
// document itself is never mutated.
type Runner struct {
	cfg       *Config
	executor  Executor
	optimizer Optimizer
	log       logging.Logger
}

// NewRunner wires a document to an executor. A nil optimizer means results
// pass through unchanged; a nil logger discards.
func NewRunner(cfg *Config, exec Executor, opt Optimizer, log logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}

	return &Runner{
		cfg:       cfg,
		executor:  exec,
		optimizer: opt,
		log:       log.WithComponent("runner"),
	}
}

// Config returns the document the runner operates on.
func (r *Runner) Config() *Config {
	return r.cfg
}

// ProcessTier runs one named tier: render its template against the document
// variables plus the reserved input/system bindings, execute the prompt, and
// optionally optimize the result. A disabled tier passes input through
// unchanged. Unknown tiers fail before any other work.
func (r *Runner) ProcessTier(ctx context.Context, name string, input any) (any, error) {
	tier, ok := r.cfg.Tier(name)
	if !ok {
		return nil, errors.ErrTierNotFound(name)
	}

	if !tier.Enabled {
		r.log.Info(ctx, "tier disabled, skipping", "tier", name)
		return input, nil
	}

	renderCtx := make(map[string]any, len(r.cfg.Variables)+2)
	for k, v := range r.cfg.Variables {
		renderCtx[k] = v
	}
	// Map-shaped inputs contribute their entries directly, so a fan-out
	// context like {file_name, plan} binds $file_name and $plan. The
	// reserved keys below still win on collision.
	if m, ok := input.(map[string]any); ok {
		for k, v := range m {
			renderCtx[k] = v
		}
	}
	if input != nil {
		renderCtx[KeyInput] = input
	}
	if tier.UseSystemInfo {
		renderCtx[KeySystem] = r.cfg.SystemInfo
	}

	prompt := tier.Template.Render(renderCtx)
	r.log.Debug(ctx, "processing tier", "tier", name, "format", string(tier.Format), "prompt_len", len(prompt))

	result, err := r.executor.Execute(ctx, prompt, tier.Format)
	if err != nil {
		return nil, errors.NewExecutionError(
			errors.ErrCodeExecutorFailed,
			"executor failed",
			err,
		).WithTier(name)
	}

	if tier.Optimize && resultPresent(result) {
		result, err = r.optimize(ctx, result, name)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *Runner) optimize(ctx context.Context, result any, tier string) (any, error) {
	r.log.Info(ctx, "optimizing result", "tier", tier)

	if r.optimizer == nil {
		return result, nil
	}

	optimized, err := r.optimizer.Optimize(ctx, result, tier)
	if err != nil {
		return nil, errors.NewExecutionError(
			errors.ErrCodeExecutorFailed,
			"optimizer failed",
			err,
		).WithTier(tier)
	}

	return optimized, nil
}

// resultPresent mirrors the skip-on-empty rule for optimization: nil and
// empty strings are not worth a second pass.
func resultPresent(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}

	return true
}

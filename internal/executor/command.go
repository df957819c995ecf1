package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/conneroisu/scaff/internal/errors"
	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// DefaultCommand is the external text-generation tool invoked when the tool
// config does not override it.
const DefaultCommand = "claude"

// CommandExecutor runs prompts through an external command-line tool. The
// rendered prompt is passed as the final argument and stdout is the result.
//
// Invocation failures (non-zero exit, missing binary) are reported as
// "Error: ..." result strings rather than errors so a pipeline run can
// record the degraded result and keep going.
type CommandExecutor struct {
	command string
	args    []string
	log     logging.Logger
}

// NewCommandExecutor creates an executor for the given command and fixed
// arguments. The command and arguments are validated against shell
// metacharacters; the prompt itself is never interpreted by a shell because
// the process is spawned directly.
func NewCommandExecutor(command string, args []string, log logging.Logger) (*CommandExecutor, error) {
	if command == "" {
		command = DefaultCommand
	}
	if err := ValidateCommand(command); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if err := ValidateArgument(arg); err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = logging.Discard()
	}

	return &CommandExecutor{
		command: command,
		args:    append([]string(nil), args...),
		log:     log.WithComponent("executor"),
	}, nil
}

// Command returns the configured command name.
func (e *CommandExecutor) Command() string {
	return e.command
}

// Execute runs the external tool with the prompt as its last argument and
// shapes stdout according to format.
func (e *CommandExecutor) Execute(ctx context.Context, prompt string, format scaffold.Format) (any, error) {
	argv := make([]string, 0, len(e.args)+1)
	argv = append(argv, e.args...)
	argv = append(argv, prompt)

	cmd := exec.CommandContext(ctx, e.command, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debug(ctx, "invoking external tool", "command", e.command, "prompt_len", len(prompt))

	if err := cmd.Run(); err != nil {
		e.log.Error(ctx, err, "external tool failed",
			"command", e.command,
			"stderr", strings.TrimSpace(stderr.String()),
		)

		return fmt.Sprintf("Error: %v", err), nil
	}

	return shapeOutput(ctx, e.log, strings.TrimSpace(stdout.String()), format), nil
}

// shapeOutput applies the tier's declared output format to raw tool output.
// JSON that does not parse falls back to the raw text with a warning; format
// problems never become errors.
func shapeOutput(ctx context.Context, log logging.Logger, out string, format scaffold.Format) any {
	if format != scaffold.FormatJSON {
		return out
	}

	var decoded any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		log.Warn(ctx, err, "could not parse output as JSON, returning raw text")
		return out
	}

	return decoded
}

// shellMetacharacters are rejected in commands and arguments to keep the
// external invocation a plain argv spawn.
const shellMetacharacters = ";&|`$(){}[]<>*?~#!\"'\\\n\r"

// ValidateCommand rejects command names that could smuggle shell syntax.
func ValidateCommand(command string) error {
	if command == "" {
		return errors.NewValidationError(
			errors.ErrCodeConfigInvalid,
			"executor command is empty",
		)
	}
	if strings.ContainsAny(command, shellMetacharacters) || strings.ContainsAny(command, " \t") {
		return errors.ErrCommandInjection(command)
	}

	return nil
}

// ValidateArgument rejects fixed arguments containing shell metacharacters.
func ValidateArgument(arg string) error {
	if strings.ContainsAny(arg, shellMetacharacters) {
		return errors.ErrCommandInjection(arg)
	}

	return nil
}

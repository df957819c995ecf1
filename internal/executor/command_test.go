package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/scaff/internal/scaffold"
)

func TestNewCommandExecutorValidation(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    []string
		wantErr bool
	}{
		{"plain command", "claude", nil, false},
		{"empty command defaults", "", nil, false},
		{"command with fixed args", "echo", []string{"-n"}, false},
		{"command with semicolon", "claude;rm", nil, true},
		{"command with pipe", "cat|sh", nil, true},
		{"command with spaces", "claude --fast", nil, true},
		{"command with backtick", "cl`aude`", nil, true},
		{"argument with substitution", "claude", []string{"$(whoami)"}, true},
		{"argument with redirect", "claude", []string{">out"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, err := NewCommandExecutor(tt.command, tt.args, nil)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, exec)
			} else {
				require.NoError(t, err)
				require.NotNil(t, exec)
			}
		})
	}
}

func TestCommandExecutorDefaultsCommand(t *testing.T) {
	exec, err := NewCommandExecutor("", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultCommand, exec.Command())
}

func TestCommandExecutorCapturesStdout(t *testing.T) {
	// echo prints the prompt straight back, so the prompt is the result.
	exec, err := NewCommandExecutor("echo", nil, nil)
	require.NoError(t, err)

	result, err := exec.Execute(context.Background(), "hello from the pipeline", scaffold.FormatText)

	require.NoError(t, err)
	assert.Equal(t, "hello from the pipeline", result)
}

func TestCommandExecutorParsesJSONOutput(t *testing.T) {
	exec, err := NewCommandExecutor("echo", nil, nil)
	require.NoError(t, err)

	result, err := exec.Execute(context.Background(), `{"files": ["a.py"]}`, scaffold.FormatJSON)

	require.NoError(t, err)
	parsed, ok := result.(map[string]any)
	require.True(t, ok, "valid JSON output should decode")
	assert.Equal(t, []any{"a.py"}, parsed["files"])
}

func TestCommandExecutorJSONFallbackToRawText(t *testing.T) {
	exec, err := NewCommandExecutor("echo", nil, nil)
	require.NoError(t, err)

	result, err := exec.Execute(context.Background(), "not json at all", scaffold.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "not json at all", result)
}

func TestCommandExecutorNonZeroExitYieldsErrorResult(t *testing.T) {
	exec, err := NewCommandExecutor("false", nil, nil)
	require.NoError(t, err)

	result, err := exec.Execute(context.Background(), "any prompt", scaffold.FormatText)

	require.NoError(t, err, "invocation failure is a result, not an error")
	s, ok := result.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(s, "Error: "), "got %q", s)
}

func TestCommandExecutorMissingBinaryYieldsErrorResult(t *testing.T) {
	exec, err := NewCommandExecutor("scaff-no-such-binary", nil, nil)
	require.NoError(t, err)

	result, err := exec.Execute(context.Background(), "any prompt", scaffold.FormatText)

	require.NoError(t, err)
	s, ok := result.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(s, "Error: "), "got %q", s)
}

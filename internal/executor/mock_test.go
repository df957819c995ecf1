package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/scaff/internal/scaffold"
)

func TestMockExecutorFileContent(t *testing.T) {
	mock := NewMockExecutor(nil)

	tests := []struct {
		name     string
		prompt   string
		contains string
	}{
		{"python module", "Generate the file utils.py based on the plan", "def main()"},
		{"python test", "Generate the file test_main.py based on the plan", "unittest"},
		{"go file", "Generate the file main.go based on the plan", "package main"},
		{"markdown", "Generate the file README.md based on the plan", "# Readme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mock.Execute(context.Background(), tt.prompt, scaffold.FormatText)

			require.NoError(t, err)
			s, ok := result.(string)
			require.True(t, ok)
			assert.Contains(t, s, tt.contains)
		})
	}
}

func TestMockExecutorFileContentIsDeterministic(t *testing.T) {
	mock := NewMockExecutor(nil)

	first, err := mock.Execute(context.Background(), "Generate the file app.py now", scaffold.FormatText)
	require.NoError(t, err)
	second, err := mock.Execute(context.Background(), "Generate the file app.py now", scaffold.FormatText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockExecutorPlanText(t *testing.T) {
	mock := NewMockExecutor(nil)

	result, err := mock.Execute(context.Background(),
		"Create a detailed development plan for a CSV tool using python.", scaffold.FormatText)

	require.NoError(t, err)
	s, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, s, "File1: main.py")
	assert.Contains(t, s, "test_main.py")
}

func TestMockExecutorPlanIgnoresDottedNonFiles(t *testing.T) {
	mock := NewMockExecutor(nil)

	result, err := mock.Execute(context.Background(),
		"Create a plan using python; packages: github.com/spf13/cobra v1.9.1", scaffold.FormatText)

	require.NoError(t, err)
	assert.Contains(t, result.(string), "Development Plan", "module paths must not be mistaken for files")
}

func TestMockExecutorPlanPicksUpLanguage(t *testing.T) {
	mock := NewMockExecutor(nil)

	result, err := mock.Execute(context.Background(),
		"Create a development plan for a server using Go.", scaffold.FormatText)

	require.NoError(t, err)
	assert.Contains(t, result.(string), "main.go")
}

func TestMockExecutorPlanStructured(t *testing.T) {
	mock := NewMockExecutor(nil)

	result, err := mock.Execute(context.Background(),
		"Create a development plan for a tool using python.", scaffold.FormatJSON)

	require.NoError(t, err)
	plan, ok := result.(map[string]any)
	require.True(t, ok)
	files, ok := plan["files"].([]any)
	require.True(t, ok)
	assert.Contains(t, files, "main.py")
}

func TestMockExecutorEchoFallback(t *testing.T) {
	mock := NewMockExecutor(nil)

	result, err := mock.Execute(context.Background(),
		"Summarize the architecture in one paragraph", scaffold.FormatText)

	require.NoError(t, err)
	s, ok := result.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(s, "Test response for prompt: "), "got %q", s)
	assert.True(t, strings.HasSuffix(s, "..."))
}

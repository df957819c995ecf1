package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level LogLevel) (*ScaffLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&LoggerConfig{
		Level:  level,
		Format: "json",
		Output: buf,
	})
	return logger, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerInfoFields(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	logger.Info(context.Background(), "tier processed", "tier", "initial", "format", "text")

	entry := decodeLine(t, buf)
	assert.Equal(t, "tier processed", entry["msg"])
	assert.Equal(t, "initial", entry["tier"])
	assert.Equal(t, "text", entry["format"])
}

func TestLoggerErrorIncludesError(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	logger.Error(context.Background(), errors.New("exit status 1"), "executor failed")

	entry := decodeLine(t, buf)
	assert.Equal(t, "executor failed", entry["msg"])
	assert.Equal(t, "exit status 1", entry["error"])
}

func TestLoggerLevelGating(t *testing.T) {
	logger, buf := jsonLogger(LevelWarn)

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), nil, "warn message")
	assert.NotZero(t, buf.Len())
}

func TestLoggerWithComponent(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	logger.WithComponent("pipeline").Info(context.Background(), "run started")

	entry := decodeLine(t, buf)
	assert.Equal(t, "pipeline", entry["component"])
}

func TestLoggerWithFields(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	child := logger.With("document", "scaffold.json")
	child.Info(context.Background(), "loaded")

	entry := decodeLine(t, buf)
	assert.Equal(t, "scaffold.json", entry["document"])
}

func TestLoggerWithDoesNotMutateParent(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	_ = logger.With("child_only", true)
	logger.Info(context.Background(), "parent message")

	entry := decodeLine(t, buf)
	_, present := entry["child_only"]
	assert.False(t, present)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"DEBUG", LevelDebug},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestDiscardLoggerStaysQuiet(t *testing.T) {
	logger := Discard()

	// Nothing to assert beyond not panicking; Fatal still writes to io.Discard.
	logger.Info(context.Background(), "dropped")
	logger.Error(context.Background(), errors.New("dropped"), "dropped")
}

func TestPerfLoggerEnd(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	perf := logger.StartOperation("pipeline_run")
	perf.End(context.Background())

	entry := decodeLine(t, buf)
	assert.Equal(t, "Operation completed", entry["msg"])
	assert.Equal(t, "pipeline_run", entry["operation"])
	_, hasDuration := entry["duration_ms"]
	assert.True(t, hasDuration)
}

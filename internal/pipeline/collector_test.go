package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSONMap(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	return m
}

func TestSaveWritesTierResults(t *testing.T) {
	dir := t.TempDir()
	results := &Results{
		TierResults: map[string]any{"initial": "the plan"},
		FileOutputs: map[string]any{},
	}

	require.NoError(t, NewCollector(nil).Save(context.Background(), results, dir, false))

	saved := readJSONMap(t, filepath.Join(dir, "tier_results.json"))
	assert.Equal(t, "the plan", saved["initial"])

	_, err := os.Stat(filepath.Join(dir, "file_outputs.json"))
	assert.True(t, os.IsNotExist(err), "no file_outputs.json without file outputs")
	_, err = os.Stat(filepath.Join(dir, "files"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveWritesCombinedFileOutputs(t *testing.T) {
	dir := t.TempDir()
	results := &Results{
		TierResults: map[string]any{"initial": "the plan"},
		FileOutputs: map[string]any{"a.py": "print()", "b.py": "pass"},
	}

	require.NoError(t, NewCollector(nil).Save(context.Background(), results, dir, false))

	saved := readJSONMap(t, filepath.Join(dir, "file_outputs.json"))
	assert.Len(t, saved, 2)
	assert.Equal(t, "print()", saved["a.py"])

	_, err := os.Stat(filepath.Join(dir, "files"))
	assert.True(t, os.IsNotExist(err), "files/ only appears with createFiles")
}

func TestSaveCreateFilesWritesOnePerOutput(t *testing.T) {
	dir := t.TempDir()
	results := &Results{
		TierResults: map[string]any{"initial": "the plan"},
		FileOutputs: map[string]any{
			"a.py": "print('a')",
			"b.json": map[string]any{
				"name": "b",
			},
		},
	}

	require.NoError(t, NewCollector(nil).Save(context.Background(), results, dir, true))

	content, err := os.ReadFile(filepath.Join(dir, "files", "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('a')", string(content))

	// Structured content is written as indented JSON.
	structured := readJSONMap(t, filepath.Join(dir, "files", "b.json"))
	assert.Equal(t, "b", structured["name"])

	entries, err := os.ReadDir(filepath.Join(dir, "files"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveCreatesDestinationDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	results := &Results{
		TierResults: map[string]any{"initial": "x"},
		FileOutputs: map[string]any{},
	}

	require.NoError(t, NewCollector(nil).Save(context.Background(), results, dir, false))

	_, err := os.Stat(filepath.Join(dir, "tier_results.json"))
	assert.NoError(t, err)
}

func TestSaveOverwritesExistingOutputs(t *testing.T) {
	dir := t.TempDir()
	collector := NewCollector(nil)

	first := &Results{TierResults: map[string]any{"initial": "old"}, FileOutputs: map[string]any{}}
	require.NoError(t, collector.Save(context.Background(), first, dir, false))

	second := &Results{TierResults: map[string]any{"initial": "new"}, FileOutputs: map[string]any{}}
	require.NoError(t, collector.Save(context.Background(), second, dir, false))

	saved := readJSONMap(t, filepath.Join(dir, "tier_results.json"))
	assert.Equal(t, "new", saved["initial"])
}

package docagent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMarkup drops a markup file into a temp dir and returns its path.
func writeMarkup(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplitter_SplitsOnTopLevelHeadings(t *testing.T) {
	content := "# Intro\n\nFirst chapter body.\n\n# Methods\n\nSecond chapter.\n\n## Not a split point\n\nStill second.\n"
	path := writeMarkup(t, "book.md", content)

	files, err := NewSplitter().Split(path)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "01-Intro.md", filepath.Base(files[0]))
	assert.Equal(t, "02-Methods.md", filepath.Base(files[1]))

	first, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(first), "# Intro\n\n")
	assert.Contains(t, string(first), "First chapter body.")
	assert.NotContains(t, string(first), "Methods")

	second, err := os.ReadFile(files[1])
	require.NoError(t, err)
	assert.Contains(t, string(second), "## Not a split point")
}

func TestSplitter_DiscardsPreamble(t *testing.T) {
	path := writeMarkup(t, "book.md", "frontispiece text\n\n# Only Chapter\n\nbody\n")

	files, err := NewSplitter().Split(path)
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "frontispiece")
}

func TestSplitter_NoHeadings(t *testing.T) {
	path := writeMarkup(t, "flat.md", "just text\nno headings at all\n")

	files, err := NewSplitter().Split(path)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSplitter_SanitizesTitles(t *testing.T) {
	path := writeMarkup(t, "book.md", "# Results: a/b comparison?\n\nbody\n")

	files, err := NewSplitter().Split(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "01-Results_ a_b comparison_.md", filepath.Base(files[0]))

	// The heading inside the chapter keeps its original title.
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Results: a/b comparison?\n")
}

func TestSplitter_MissingFile(t *testing.T) {
	_, err := NewSplitter().Split(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSplitter_Call(t *testing.T) {
	path := writeMarkup(t, "book.md", "# One\n\na\n\n# Two\n\nb\n")

	response := NewSplitter().Call(`{file_path: "` + path + `"}`)

	var got struct {
		SplitFiles []string `json:"split_files"`
		Status     string   `json:"status"`
		Message    string   `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(response), &got))
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Len(t, got.SplitFiles, 2)
	assert.Equal(t, "split into 2 chapter files", got.Message)
}

func TestSplitter_CallMissingFilePath(t *testing.T) {
	response := NewSplitter().Call(`{}`)

	var got failedResponse
	require.NoError(t, json.Unmarshal([]byte(response), &got))
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.Error, "file_path")
}

package docagent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerger_JoinsInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("# A\n\nalpha\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("# B\n\nbeta\n"), 0o644))

	out := filepath.Join(dir, "merged.md")
	mergedPath, basenames, err := NewMerger().Merge([]string{b, a}, out)
	require.NoError(t, err)

	assert.Equal(t, out, mergedPath)
	assert.Equal(t, []string{"b.md", "a.md"}, basenames)
	assert.Equal(t, "# B\n\nbeta\n\n---\n\n# A\n\nalpha", readFile(t, out))
}

func TestMerger_EmptyListRejected(t *testing.T) {
	_, _, err := NewMerger().Merge(nil, filepath.Join(t.TempDir(), "out.md"))
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestMerger_RejectsNonMarkupExtension(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("text"), 0o644))

	out := filepath.Join(dir, "out.md")
	_, _, err := NewMerger().Merge([]string{txt}, out)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMerger_ValidationBeforeAnyWrite(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	require.NoError(t, os.WriteFile(good, []byte("content"), 0o644))
	missing := filepath.Join(dir, "missing.md")

	out := filepath.Join(dir, "out.md")
	_, _, err := NewMerger().Merge([]string{good, missing}, out)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMerger_AcceptsUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	upper := filepath.Join(dir, "CHAPTER.MD")
	require.NoError(t, os.WriteFile(upper, []byte("content"), 0o644))

	out := filepath.Join(dir, "out.md")
	_, basenames, err := NewMerger().Merge([]string{upper}, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"CHAPTER.MD"}, basenames)
}

func TestMerger_RoundTripWithSplitter(t *testing.T) {
	dir := t.TempDir()
	original := "# One\n\nfirst body\n\n# Two\n\nsecond body"
	source := filepath.Join(dir, "book.md")
	require.NoError(t, os.WriteFile(source, []byte(original), 0o644))

	files, err := NewSplitter().Split(source)
	require.NoError(t, err)
	require.Len(t, files, 2)

	out := filepath.Join(dir, "rejoined.md")
	_, _, err = NewMerger().Merge(files, out)
	require.NoError(t, err)

	// Chapters come back with a separator between them; the heading
	// structure and bodies survive the split/merge cycle.
	merged := readFile(t, out)
	assert.Contains(t, merged, "# One")
	assert.Contains(t, merged, "first body")
	assert.Contains(t, merged, "\n\n---\n\n")
	assert.Contains(t, merged, "# Two")
	assert.Contains(t, merged, "second body")
}

func TestMerger_CallDefaultsOutputPath(t *testing.T) {
	chdir(t, t.TempDir())

	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(a, []byte("solo chapter"), 0o644))

	response := NewMerger().Call(`{file_paths: ["` + a + `"]}`)

	var got struct {
		MergedPath  string   `json:"merged_path"`
		Status      string   `json:"status"`
		Message     string   `json:"message"`
		MergedFiles []string `json:"merged_files"`
	}
	require.NoError(t, json.Unmarshal([]byte(response), &got))
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "merged.md", filepath.Base(got.MergedPath))
	assert.Equal(t, "merged 1 chapters", got.Message)
	assert.Equal(t, []string{"a.md"}, got.MergedFiles)
	assert.FileExists(t, got.MergedPath)
}

func TestMerger_CallMissingFilePaths(t *testing.T) {
	response := NewMerger().Call(`{}`)

	var got failedResponse
	require.NoError(t, json.Unmarshal([]byte(response), &got))
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.Error, "file_paths")
}

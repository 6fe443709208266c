package docagent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// chapterSeparator is the horizontal-rule marker inserted between merged
// chapters.
const chapterSeparator = "\n\n---\n\n"

// markupExtension is the only file extension the merger accepts.
const markupExtension = ".md"

// Merger concatenates per-chapter markup files, in order, into one file.
type Merger struct{}

// NewMerger creates a Merger.
func NewMerger() *Merger {
	return &Merger{}
}

func (m *Merger) Name() string { return "markdown_merger" }

type mergeRequest struct {
	FilePaths  []string `json:"file_paths"`
	OutputPath string   `json:"output_path"`
}

type mergeResponse struct {
	MergedPath  string   `json:"merged_path"`
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	MergedFiles []string `json:"merged_files"`
}

func (m *Merger) Call(params string) string {
	var req mergeRequest
	if err := decodeParams(params, &req); err != nil {
		return failure(err)
	}
	if req.FilePaths == nil {
		return failure(&InvalidArgumentError{Reason: "missing required field: file_paths"})
	}
	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = "merged.md"
	}

	mergedPath, basenames, err := m.Merge(req.FilePaths, outputPath)
	if err != nil {
		return failure(err)
	}

	return encodeResponse(mergeResponse{
		MergedPath:  mergedPath,
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("merged %d chapters", len(basenames)),
		MergedFiles: basenames,
	})
}

// Merge validates every input path, then concatenates the files in order,
// separated by a horizontal rule, into outputPath. Validation is
// all-or-nothing: any missing file or non-markup extension fails the merge
// before anything is read or written.
func (m *Merger) Merge(paths []string, outputPath string) (string, []string, error) {
	if len(paths) == 0 {
		return "", nil, &InvalidArgumentError{Reason: "file_paths must be a non-empty list"}
	}

	validated := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", nil, err
		}
		if !strings.HasSuffix(strings.ToLower(abs), markupExtension) {
			return "", nil, &InvalidArgumentError{Reason: fmt.Sprintf("not a markup file: %s", abs)}
		}
		if _, err := os.Stat(abs); err != nil {
			return "", nil, &NotFoundError{Path: abs}
		}
		validated = append(validated, abs)
	}

	var merged strings.Builder
	basenames := make([]string, 0, len(validated))
	for i, p := range validated {
		content, err := readMarkupFile(p)
		if err != nil {
			return "", nil, err
		}
		if i > 0 {
			merged.WriteString(chapterSeparator)
		}
		merged.WriteString(strings.TrimSpace(content))
		basenames = append(basenames, filepath.Base(p))
	}

	if err := os.WriteFile(outputPath, []byte(merged.String()), 0o644); err != nil {
		return "", nil, err
	}

	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return "", nil, err
	}
	return absOut, basenames, nil
}

package docagent

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reTopHeading    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	reUnsafeInTitle = regexp.MustCompile(`[^\p{L}\p{N}_\-. ]`)
)

// Splitter splits one markup file into per-chapter files on top-level
// heading boundaries.
type Splitter struct{}

// NewSplitter creates a Splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

func (s *Splitter) Name() string { return "markdown_splitter" }

type splitRequest struct {
	FilePath string `json:"file_path"`
}

type splitResponse struct {
	SplitFiles []string `json:"split_files"`
	Status     string   `json:"status"`
	Message    string   `json:"message"`
}

func (s *Splitter) Call(params string) string {
	var req splitRequest
	if err := decodeParams(params, &req); err != nil {
		return failure(err)
	}
	if req.FilePath == "" {
		return failure(&InvalidArgumentError{Reason: "missing required field: file_path"})
	}

	files, err := s.Split(req.FilePath)
	if err != nil {
		return failure(err)
	}

	return encodeResponse(splitResponse{
		SplitFiles: files,
		Status:     StatusSuccess,
		Message:    fmt.Sprintf("split into %d chapter files", len(files)),
	})
}

// Split breaks the markup file at path into one file per top-level heading,
// written next to the input as NN-<sanitized-title>.md. Content before the
// first top-level heading is discarded.
func (s *Splitter) Split(path string) ([]string, error) {
	content, err := readMarkupFile(path)
	if err != nil {
		return nil, err
	}

	matches := reTopHeading.FindAllStringSubmatchIndex(content, -1)
	dir := filepath.Dir(path)
	var outputs []string

	for i, m := range matches {
		title := strings.TrimSpace(content[m[2]:m[3]])
		bodyStart := m[1]
		bodyEnd := len(content)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := content[bodyStart:bodyEnd]

		name := fmt.Sprintf("%02d-%s.md", i+1, sanitizeTitle(title))
		outPath := filepath.Join(dir, name)

		chapter := "# " + title + "\n\n" + body
		if err := os.WriteFile(outPath, []byte(chapter), 0o644); err != nil {
			return nil, err
		}
		if _, err := os.Stat(outPath); err != nil {
			return nil, &IOError{Op: "verify chapter file", Path: outPath, Err: err}
		}
		outputs = append(outputs, outPath)
	}

	return outputs, nil
}

// sanitizeTitle makes a chapter title safe for use in a filename.
func sanitizeTitle(title string) string {
	return reUnsafeInTitle.ReplaceAllString(title, "_")
}

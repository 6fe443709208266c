package docagent

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Wuyi-zhangxiang/document-agent/internal/docx"
)

var reImageRef = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)

// MarkdownToWord converts a markup file back into a DOCX document,
// reconstructing headings, paragraphs, tables, and inline images.
type MarkdownToWord struct {
	logger *slog.Logger
}

// NewMarkdownToWord creates the converter. Image embedding failures are
// reported to logger and swallowed.
func NewMarkdownToWord(logger *slog.Logger) *MarkdownToWord {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkdownToWord{logger: logger}
}

func (c *MarkdownToWord) Name() string { return "markdown_to_word" }

type markupToDocRequest struct {
	FilePath  string `json:"file_path"`
	OutputDir string `json:"output_dir"`
}

type markupToDocResponse struct {
	WordPath string `json:"word_path"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

func (c *MarkdownToWord) Call(params string) string {
	var req markupToDocRequest
	if err := decodeParams(params, &req); err != nil {
		return failure(err)
	}
	if req.FilePath == "" {
		return failure(&InvalidArgumentError{Reason: "missing required field: file_path"})
	}

	docxPath, err := c.Convert(req.FilePath)
	if err != nil {
		return failure(err)
	}
	return encodeResponse(markupToDocResponse{
		WordPath: docxPath,
		Status:   StatusSuccess,
		Message:  "saved to the current working directory",
	})
}

// Convert parses the markup file at mdPath line by line and writes a new
// DOCX document into the current working directory, named after the
// markup file's base name.
//
// Line classifiers run in priority order: table row, heading, image
// reference, non-blank text, blank line. Consecutive non-blank text lines
// merge into one paragraph joined by line breaks; a blank line ends the
// paragraph.
func (c *MarkdownToWord) Convert(mdPath string) (string, error) {
	content, err := readMarkupFile(mdPath)
	if err != nil {
		return "", err
	}
	lines, _ := splitLines(content)

	w := docx.NewWriter()
	mdDir := filepath.Dir(mdPath)

	var paraLines []string
	var tableRows [][]string

	flushParagraph := func() {
		if len(paraLines) > 0 {
			w.AddParagraph(paraLines)
			paraLines = nil
		}
	}
	flushTable := func() {
		// A lone row cannot be a table (header + separator at minimum).
		if len(tableRows) > 1 {
			rows := [][]string{tableRows[0]}
			if len(tableRows) > 2 {
				rows = append(rows, tableRows[2:]...)
			}
			w.AddTable(rows)
		}
		tableRows = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if isTableRow(line) {
			if tableRows == nil {
				flushParagraph()
			}
			tableRows = append(tableRows, parseTableRow(line))
			continue
		}
		if tableRows != nil {
			flushTable()
		}

		switch {
		case strings.HasPrefix(line, "#"):
			flushParagraph()
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			w.AddHeading(strings.TrimSpace(line[level:]), level)

		case strings.HasPrefix(line, "!["):
			flushParagraph()
			m := reImageRef.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			imgPath := filepath.Join(mdDir, m[1])
			data, err := os.ReadFile(imgPath)
			if err != nil {
				c.logger.Warn("image embed skipped", "markup", mdPath, "image", imgPath, "error", err)
				continue
			}
			if err := w.AddPicture(data); err != nil {
				c.logger.Warn("image embed skipped", "markup", mdPath, "image", imgPath, "error", err)
			}

		case line != "":
			paraLines = append(paraLines, line)

		default:
			flushParagraph()
		}
	}
	flushTable()
	flushParagraph()

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	docxPath := filepath.Join(wd, base+".docx")
	if err := w.Save(docxPath); err != nil {
		return "", &ConversionError{Stage: "document assembly", Err: err}
	}
	return docxPath, nil
}

// isTableRow reports whether a trimmed line is a pipe-delimited table row.
func isTableRow(line string) bool {
	return len(line) > 1 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// parseTableRow splits a table row into trimmed cell values.
func parseTableRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts)-2)
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

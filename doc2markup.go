package docagent

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Wuyi-zhangxiang/document-agent/internal/docx"
)

// pointsPerBlankLine converts paragraph spacing in points to a blank-line
// count in the markup output.
const pointsPerBlankLine = 15

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WordToMarkdown converts a DOCX document to the markup format, walking
// body blocks in original order, extracting images, and transcribing
// tables.
type WordToMarkdown struct {
	logger *slog.Logger
}

// NewWordToMarkdown creates the converter. Per-image extraction failures
// are reported to logger and swallowed; conversion is best-effort.
func NewWordToMarkdown(logger *slog.Logger) *WordToMarkdown {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordToMarkdown{logger: logger}
}

func (c *WordToMarkdown) Name() string { return "word_to_markdown" }

type docToMarkupRequest struct {
	FilePath  string `json:"file_path"`
	OutputDir string `json:"output_dir"`
}

type docToMarkupResponse struct {
	MarkdownPath string `json:"markdown_path"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

func (c *WordToMarkdown) Call(params string) string {
	var req docToMarkupRequest
	if err := decodeParams(params, &req); err != nil {
		return failure(err)
	}
	if req.FilePath == "" {
		return failure(&InvalidArgumentError{Reason: "missing required field: file_path"})
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return failure(err)
		}
		outputDir = wd
	}

	mdPath, err := c.Convert(req.FilePath, outputDir)
	if err != nil {
		return failure(err)
	}
	return encodeResponse(docToMarkupResponse{
		MarkdownPath: mdPath,
		Status:       StatusSuccess,
		Message:      "saved to the current working directory",
	})
}

// Convert walks the document at docxPath and writes its markup rendition
// into the current working directory, named after the document's base
// name. Images are extracted into outputDir under a sequential counter.
func (c *WordToMarkdown) Convert(docxPath, outputDir string) (string, error) {
	if _, err := os.Stat(docxPath); err != nil {
		return "", &NotFoundError{Path: docxPath}
	}
	if !acceptsWordDocument(docxPath) {
		return "", &InvalidArgumentError{Reason: fmt.Sprintf("not a Word document: %s", docxPath)}
	}

	blocks, err := docx.Read(docxPath)
	if err != nil {
		return "", &ConversionError{Stage: "document traversal", Err: err}
	}

	var md strings.Builder
	imageCount := 0

	for _, block := range blocks {
		switch {
		case block.Paragraph != nil:
			p := block.Paragraph
			md.WriteString(strings.Repeat("\n", blankLineCount(p.BeforePt)))

			if level := headingLevel(p.StyleName); level > 0 {
				md.WriteString(strings.Repeat("#", level) + " " + p.Text() + "\n\n")
			} else {
				md.WriteString(markParagraph(p) + "\n")
			}

			md.WriteString(strings.Repeat("\n", blankLineCount(p.AfterPt)))

			for _, run := range p.Runs {
				for _, img := range run.Images {
					imageCount++
					ref, err := c.extractImage(img, outputDir, imageCount)
					if err != nil {
						c.logger.Warn("image extraction failed", "document", docxPath, "image", imageCount, "error", err)
						continue
					}
					md.WriteString(ref)
				}
			}

		case block.Table != nil:
			if t := tableToMarkup(block.Table); t != "" {
				md.WriteString(t + "\n\n")
			}
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	mdPath := filepath.Join(wd, base+".md")
	if err := os.WriteFile(mdPath, []byte(md.String()), 0o644); err != nil {
		return "", err
	}
	return mdPath, nil
}

// acceptsWordDocument checks the input by extension, falling back to
// content sniffing for files with no usable extension.
func acceptsWordDocument(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return true
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return mt.Is(docxMIME)
}

// blankLineCount maps paragraph spacing in points to blank lines: one line
// per 15 points, floored, never fewer than one.
func blankLineCount(points float64) int {
	n := int(points / pointsPerBlankLine)
	if n < 1 {
		return 1
	}
	return n
}

// headingLevel parses a style name like "heading 2" or "Heading2" into its
// level, or returns 0 for non-heading styles.
func headingLevel(styleName string) int {
	lower := strings.ToLower(styleName)
	if !strings.HasPrefix(lower, "heading") {
		return 0
	}
	last := lower[len(lower)-1]
	if last >= '1' && last <= '9' {
		return int(last - '0')
	}
	return 0
}

// markParagraph renders a paragraph's text with inline markers derived
// from run formatting. Each flag is applied by first-occurrence substring
// replacement of the run's text within the flattened paragraph, so a run
// whose text recurs in the paragraph may be mis-marked. A known
// limitation.
func markParagraph(p *docx.Paragraph) string {
	text := p.Text()
	for _, run := range p.Runs {
		if run.Text == "" {
			continue
		}
		if run.Bold {
			text = strings.Replace(text, run.Text, "**"+run.Text+"**", 1)
		}
		if run.Italic {
			text = strings.Replace(text, run.Text, "*"+run.Text+"*", 1)
		}
		if run.Underline {
			text = strings.Replace(text, run.Text, "<u>"+run.Text+"</u>", 1)
		}
	}
	return text
}

// tableToMarkup transcribes a table: header row, dash separator sized to
// the header's column count, then the remaining rows. Cell text is
// flattened to a single line.
func tableToMarkup(t *docx.Table) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, cell := range cells {
			b.WriteString(" " + strings.ReplaceAll(cell, "\n", " ") + " |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Rows[0])

	b.WriteString("|")
	for range t.Rows[0] {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// extractImage writes one image payload into outputDir under the running
// counter and returns its markup reference. Payloads are stored under a
// .png name regardless of source encoding; numbering is per conversion
// call with no deduplication.
func (c *WordToMarkdown) extractImage(data []byte, outputDir string, n int) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("image_%d.png", n)
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(abs, name), data, 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("![image %d](%s)\n\n", n, name), nil
}

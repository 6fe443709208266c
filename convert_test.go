package docagent

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wuyi-zhangxiang/document-agent/internal/docx"
)

// chdir switches the working directory for the test and restores it on
// cleanup; testing.T.Chdir requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// buildDocx assembles a document in dir and returns its path.
func buildDocx(t *testing.T, dir, name string, build func(w *docx.Writer)) string {
	t.Helper()
	w := docx.NewWriter()
	build(w)
	path := filepath.Join(dir, name)
	require.NoError(t, w.Save(path))
	return path
}

// pngBytes encodes a small solid PNG for image tests.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWordToMarkdown_HeadingsParagraphsTables(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	docxPath := buildDocx(t, work, "report.docx", func(w *docx.Writer) {
		w.AddHeading("Annual Report", 1)
		w.AddHeading("Findings", 2)
		w.AddParagraph([]string{"Plain body text."})
		w.AddTable([][]string{{"Metric", "Value"}, {"Revenue", "42"}})
	})

	mdPath, err := NewWordToMarkdown(nil).Convert(docxPath, work)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "report.md"), mdPath)

	md := readFile(t, mdPath)
	assert.Contains(t, md, "# Annual Report\n")
	assert.Contains(t, md, "## Findings\n")
	assert.Contains(t, md, "Plain body text.")
	assert.Contains(t, md, "| Metric | Value |\n| --- | --- |\n| Revenue | 42 |")
}

func TestWordToMarkdown_ExtractsImages(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)
	payload := pngBytes(t, 4, 4)

	docxPath := buildDocx(t, work, "figures.docx", func(w *docx.Writer) {
		w.AddParagraph([]string{"See figure below."})
		require.NoError(t, w.AddPicture(payload))
	})

	imgDir := filepath.Join(work, "assets")
	mdPath, err := NewWordToMarkdown(nil).Convert(docxPath, imgDir)
	require.NoError(t, err)

	md := readFile(t, mdPath)
	assert.Contains(t, md, "![image 1](image_1.png)")

	extracted, err := os.ReadFile(filepath.Join(imgDir, "image_1.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, extracted)
}

func TestWordToMarkdown_RejectsNonWordInput(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)
	notDocx := filepath.Join(work, "plain.txt")
	require.NoError(t, os.WriteFile(notDocx, []byte("just text"), 0o644))

	_, err := NewWordToMarkdown(nil).Convert(notDocx, work)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestWordToMarkdown_MissingInput(t *testing.T) {
	_, err := NewWordToMarkdown(nil).Convert(filepath.Join(t.TempDir(), "absent.docx"), t.TempDir())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMarkdownToWord_BuildsDocument(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	content := "# Title\n\nFirst paragraph.\nSecond line of it.\n\n| H1 | H2 |\n| --- | --- |\n| a | b |\n"
	mdPath := filepath.Join(work, "draft.md")
	require.NoError(t, os.WriteFile(mdPath, []byte(content), 0o644))

	docxPath, err := NewMarkdownToWord(nil).Convert(mdPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "draft.docx"), docxPath)

	blocks, err := docx.Read(docxPath)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	require.NotNil(t, blocks[0].Paragraph)
	assert.Equal(t, "heading 1", blocks[0].Paragraph.StyleName)
	assert.Equal(t, "Title", blocks[0].Paragraph.Text())

	require.NotNil(t, blocks[1].Paragraph)
	assert.Equal(t, "First paragraph.\nSecond line of it.", blocks[1].Paragraph.Text())

	require.NotNil(t, blocks[2].Table)
	assert.Equal(t, [][]string{{"H1", "H2"}, {"a", "b"}}, blocks[2].Table.Rows)
}

func TestMarkdownToWord_EmbedsReferencedImages(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	require.NoError(t, os.WriteFile(filepath.Join(work, "chart.png"), pngBytes(t, 8, 8), 0o644))
	mdPath := filepath.Join(work, "doc.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("intro\n\n![chart](chart.png)\n"), 0o644))

	docxPath, err := NewMarkdownToWord(nil).Convert(mdPath)
	require.NoError(t, err)

	blocks, err := docx.Read(docxPath)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.NotNil(t, blocks[1].Paragraph)
	require.Len(t, blocks[1].Paragraph.Runs, 1)
	assert.Len(t, blocks[1].Paragraph.Runs[0].Images, 1)
}

func TestMarkdownToWord_MissingImageIsSkipped(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	mdPath := filepath.Join(work, "doc.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("text\n\n![gone](missing.png)\n"), 0o644))

	docxPath, err := NewMarkdownToWord(nil).Convert(mdPath)
	require.NoError(t, err)

	blocks, err := docx.Read(docxPath)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "text", blocks[0].Paragraph.Text())
}

func TestConversion_MarkupRoundTripIsStable(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	content := "# Title\n\nhello world\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n"
	mdPath := filepath.Join(work, "stable.md")
	require.NoError(t, os.WriteFile(mdPath, []byte(content), 0o644))

	toWord := NewMarkdownToWord(nil)
	toMarkup := NewWordToMarkdown(nil)

	docxPath, err := toWord.Convert(mdPath)
	require.NoError(t, err)
	md2Path, err := toMarkup.Convert(docxPath, work)
	require.NoError(t, err)
	md2 := readFile(t, md2Path)

	docxPath2, err := toWord.Convert(md2Path)
	require.NoError(t, err)
	md3Path, err := toMarkup.Convert(docxPath2, work)
	require.NoError(t, err)
	md3 := readFile(t, md3Path)

	// One conversion cycle may reflow spacing; a second must be a fixed
	// point.
	assert.Equal(t, md2, md3)
}

func TestWordToMarkdown_Call(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	docxPath := buildDocx(t, work, "note.docx", func(w *docx.Writer) {
		w.AddParagraph([]string{"content"})
	})

	response := NewWordToMarkdown(nil).Call(`{file_path: "` + docxPath + `"}`)

	var got struct {
		MarkdownPath string `json:"markdown_path"`
		Status       string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(response), &got))
	assert.Equal(t, StatusSuccess, got.Status)
	assert.FileExists(t, got.MarkdownPath)
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"heading 1", 1},
		{"Heading 3", 3},
		{"Heading9", 9},
		{"heading", 0},
		{"Normal", 0},
		{"", 0},
		{"Subheading 2", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, headingLevel(tt.style), "style %q", tt.style)
	}
}

func TestBlankLineCount(t *testing.T) {
	tests := []struct {
		points float64
		want   int
	}{
		{0, 1},
		{14, 1},
		{15, 1},
		{30, 2},
		{47, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, blankLineCount(tt.points), "points %v", tt.points)
	}
}

func TestMarkParagraph_InlineMarkers(t *testing.T) {
	p := &docx.Paragraph{Runs: []docx.Run{
		{Text: "key term", Bold: true},
		{Text: " in context, "},
		{Text: "emphasized", Italic: true},
		{Text: " and "},
		{Text: "underlined", Underline: true},
	}}

	assert.Equal(t, "**key term** in context, *emphasized* and <u>underlined</u>", markParagraph(p))
}

// Package docx reads and writes the subset of the DOCX wordprocessing
// format the editorial pipeline needs: paragraphs with run-level
// formatting and spacing, tables of plain-text cells, and embedded images.
package docx

// Run is one formatted span of paragraph text.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// Images holds the binary payloads of pictures anchored in this run.
	Images [][]byte
}

// Paragraph is one paragraph block with resolved style and spacing.
type Paragraph struct {
	StyleName string
	// BeforePt and AfterPt are the paragraph spacing values in points.
	BeforePt float64
	AfterPt  float64
	Runs     []Run
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var b []byte
	for _, r := range p.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Table is one table block. Cell text is flattened; paragraphs within a
// cell are joined by newlines.
type Table struct {
	Rows [][]string
}

// Block is one body-level element, a paragraph or a table, in original
// document order.
type Block struct {
	Paragraph *Paragraph
	Table     *Table
}

package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Wuyi-zhangxiang/document-agent/internal/ooxml"
)

// emuPerPixel converts pixel dimensions to English Metric Units at 96 DPI.
const emuPerPixel = 9525

// mediaFile is one image payload queued for the word/media/ directory.
type mediaFile struct {
	name        string
	contentType string
	ext         string
	relID       string
	data        []byte
}

// Writer builds a new DOCX document in memory and saves it as a package.
type Writer struct {
	content []any
	media   []mediaFile
}

// NewWriter creates an empty document.
func NewWriter() *Writer {
	return &Writer{}
}

// AddHeading appends a heading paragraph at the given level (clamped to
// 1-9).
func (w *Writer) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	w.content = append(w.content, xmlParagraph{
		Props: &xmlParaProps{Style: &xmlVal{Val: fmt.Sprintf("Heading%d", level)}},
		Runs:  []xmlRun{textRun(text)},
	})
}

// AddParagraph appends a body paragraph. Multiple lines become one
// paragraph with explicit line breaks between them, not separate
// paragraphs.
func (w *Writer) AddParagraph(lines []string) {
	var content []any
	for i, line := range lines {
		if i > 0 {
			content = append(content, xmlBreak{})
		}
		content = append(content, newText(line))
	}
	w.content = append(w.content, xmlParagraph{
		Runs: []xmlRun{{Content: content}},
	})
}

// AddTable appends a table. The first row is the header; the column count
// is fixed by its length, and shorter rows are padded with empty cells.
func (w *Writer) AddTable(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	if cols == 0 {
		return
	}

	tbl := xmlTable{
		Props: xmlTblProps{
			Width: xmlTblWidth{W: "0", Type: "auto"},
			Borders: &xmlBorders{
				Top:     xmlBorder{Val: "single", Size: "4"},
				Left:    xmlBorder{Val: "single", Size: "4"},
				Bottom:  xmlBorder{Val: "single", Size: "4"},
				Right:   xmlBorder{Val: "single", Size: "4"},
				InsideH: xmlBorder{Val: "single", Size: "4"},
				InsideV: xmlBorder{Val: "single", Size: "4"},
			},
		},
		Grid: make([]xmlGridCol, cols),
	}

	for _, cells := range rows {
		row := xmlRow{}
		for c := 0; c < cols; c++ {
			text := ""
			if c < len(cells) {
				text = cells[c]
			}
			row.Cells = append(row.Cells, xmlCell{
				Paragraphs: []xmlParagraph{{Runs: []xmlRun{textRun(text)}}},
			})
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	w.content = append(w.content, tbl)
}

// AddPicture appends an inline picture paragraph. The payload's format is
// sniffed from its content and its natural pixel size determines the
// display extent.
func (w *Writer) AddPicture(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	mt := mimetype.Detect(data)
	ext := strings.TrimPrefix(mt.Extension(), ".")
	if ext == "" {
		return fmt.Errorf("unrecognized image format %q", mt.String())
	}

	n := len(w.media) + 1
	m := mediaFile{
		name:        fmt.Sprintf("image%d.%s", n, ext),
		contentType: mt.String(),
		ext:         ext,
		relID:       fmt.Sprintf("rId%d", n+1), // rId1 is the styles part
		data:        data,
	}
	w.media = append(w.media, m)

	cx := int64(cfg.Width) * emuPerPixel
	cy := int64(cfg.Height) * emuPerPixel
	picName := fmt.Sprintf("Picture %d", n)

	drawing := xmlDrawing{
		Inline: xmlInline{
			Extent: xmlExtent{CX: cx, CY: cy},
			DocPr:  xmlDocPr{ID: n, Name: picName},
			Graphic: xmlGraphic{
				Data: xmlGraphicData{
					URI: ooxml.NSPicture,
					Pic: xmlPic{
						NvPicPr:  xmlNvPicPr{CNvPr: xmlDocPr{ID: n, Name: picName}},
						BlipFill: xmlBlipFill{Blip: xmlBlip{Embed: m.relID}},
						SpPr: xmlSpPr{
							Xfrm:     xmlXfrm{Ext: xmlExtentA{CX: cx, CY: cy}},
							PrstGeom: xmlPrstGeom{Prst: "rect"},
						},
					},
				},
			},
		},
	}

	w.content = append(w.content, xmlParagraph{
		Runs: []xmlRun{{Content: []any{drawing}}},
	})
	return nil
}

// Save writes the document package to path.
func (w *Writer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	write := func() error {
		if err := w.writeContentTypes(zw); err != nil {
			return err
		}
		if err := ooxml.WriteRelationships(zw, "_rels/.rels", []ooxml.Relationship{
			{ID: "rId1", Type: ooxml.RelTypeOfficeDocument, Target: "word/document.xml"},
		}); err != nil {
			return err
		}
		if err := w.writeDocumentRels(zw); err != nil {
			return err
		}
		if err := ooxml.WriteXMLPart(zw, "word/styles.xml", defaultStyles()); err != nil {
			return err
		}
		doc := xmlDocument{
			XmlnsW:   ooxml.NSWordprocessingML,
			XmlnsR:   ooxml.NSRelDoc,
			XmlnsWP:  ooxml.NSWPDrawing,
			XmlnsA:   ooxml.NSDrawingML,
			XmlnsPic: ooxml.NSPicture,
			Body:     xmlBody{Content: w.content},
		}
		if err := ooxml.WriteXMLPart(zw, "word/document.xml", doc); err != nil {
			return err
		}
		for _, m := range w.media {
			if err := ooxml.WritePart(zw, "word/media/"+m.name, m.data); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *Writer) writeContentTypes(zw *zip.Writer) error {
	ct := xmlContentTypes{
		Xmlns: ooxml.NSContentTypes,
		Defaults: []xmlContentDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlContentOverride{
			{PartName: "/word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/word/styles.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		},
	}

	seen := make(map[string]bool)
	for _, m := range w.media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		ct.Defaults = append(ct.Defaults, xmlContentDefault{
			Extension:   m.ext,
			ContentType: m.contentType,
		})
	}
	return ooxml.WriteXMLPart(zw, "[Content_Types].xml", ct)
}

func (w *Writer) writeDocumentRels(zw *zip.Writer) error {
	rels := []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeStyles, Target: "styles.xml"},
	}
	for _, m := range w.media {
		rels = append(rels, ooxml.Relationship{
			ID:     m.relID,
			Type:   ooxml.RelTypeImage,
			Target: "media/" + m.name,
		})
	}
	return ooxml.WriteRelationships(zw, "word/_rels/document.xml.rels", rels)
}

// defaultStyles returns the minimal style sheet: Normal plus the nine
// heading styles referenced by AddHeading.
func defaultStyles() xmlStyles {
	styles := xmlStyles{
		XmlnsW: ooxml.NSWordprocessingML,
		Styles: []xmlStyleDef{
			{Type: "paragraph", StyleID: "Normal", Name: xmlVal{Val: "Normal"}},
		},
	}
	for level := 1; level <= 9; level++ {
		styles.Styles = append(styles.Styles, xmlStyleDef{
			Type:     "paragraph",
			StyleID:  fmt.Sprintf("Heading%d", level),
			Name:     xmlVal{Val: fmt.Sprintf("heading %d", level)},
			BasedOn:  &xmlVal{Val: "Normal"},
			Props:    &xmlStylePPr{OutlineLvl: &xmlVal{Val: fmt.Sprintf("%d", level-1)}},
			RunProps: &xmlStyleRPr{Bold: &struct{}{}},
		})
	}
	return styles
}

// textRun builds a single-text run.
func textRun(text string) xmlRun {
	return xmlRun{Content: []any{newText(text)}}
}

// newText builds a w:t element, preserving significant whitespace.
func newText(text string) xmlText {
	t := xmlText{Value: text}
	if strings.TrimSpace(text) != text {
		t.Space = "preserve"
	}
	return t
}

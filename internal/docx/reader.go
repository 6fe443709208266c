package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/Wuyi-zhangxiang/document-agent/internal/ooxml"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	documentRels = "word/_rels/document.xml.rels"
)

// twipsPerPoint converts the spacing unit of w:spacing attributes.
const twipsPerPoint = 20

// Read opens a DOCX file and returns its body blocks in original
// top-to-bottom order.
func Read(path string) ([]Block, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open DOCX package: %w", err)
	}
	defer zr.Close()

	if _, err := ooxml.ReadPart(&zr.Reader, documentPart); err != nil {
		return nil, fmt.Errorf("not a DOCX document: %w", err)
	}

	styles := parseStyleNames(&zr.Reader)
	rels, err := ooxml.ParseRelationships(&zr.Reader, documentRels)
	if err != nil {
		return nil, err
	}

	docData, err := ooxml.ReadPart(&zr.Reader, documentPart)
	if err != nil {
		return nil, err
	}

	return parseBody(docData, styles, rels, &zr.Reader)
}

// stylesXML is the subset of word/styles.xml needed to resolve style names.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

type styleDefXML struct {
	StyleID string       `xml:"styleId,attr"`
	Name    styleNameXML `xml:"name"`
}

type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// parseStyleNames maps style IDs to display names. Styles are optional; a
// missing or unparsable part yields an empty map.
func parseStyleNames(zr *zip.Reader) map[string]string {
	names := make(map[string]string)
	data, err := ooxml.ReadPart(zr, stylesPart)
	if err != nil {
		return names
	}
	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return names
	}
	for _, s := range styles.Styles {
		if s.StyleID != "" && s.Name.Val != "" {
			names[s.StyleID] = s.Name.Val
		}
	}
	return names
}

// parseBody walks word/document.xml with a streaming decoder, preserving
// the original interleaving of paragraphs and tables.
func parseBody(docData []byte, styles map[string]string, rels map[string]ooxml.Relationship, zr *zip.Reader) ([]Block, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docData))

	var blocks []Block

	var (
		para     *Paragraph
		run      *Run
		inPPr    bool
		inText   bool
		textBuf  strings.Builder
		tblDepth int
		rows     [][]string
		row      []string
		cellPars []string
	)

	flagOn := func(attrs []xml.Attr) bool {
		for _, a := range attrs {
			if a.Name.Local == "val" {
				switch a.Value {
				case "0", "false", "none":
					return false
				}
			}
		}
		return true
	}
	attrVal := func(attrs []xml.Attr, name string) string {
		for _, a := range attrs {
			if a.Name.Local == name {
				return a.Value
			}
		}
		return ""
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para = &Paragraph{}

			case "pPr":
				inPPr = true

			case "pStyle":
				if inPPr && para != nil {
					id := attrVal(t.Attr, "val")
					if name, ok := styles[id]; ok {
						para.StyleName = name
					} else {
						para.StyleName = id
					}
				}

			case "spacing":
				if inPPr && para != nil {
					para.BeforePt = twipsToPoints(attrVal(t.Attr, "before"))
					para.AfterPt = twipsToPoints(attrVal(t.Attr, "after"))
				}

			case "r":
				run = &Run{}

			case "b":
				if run != nil {
					run.Bold = flagOn(t.Attr)
				}
			case "i":
				if run != nil {
					run.Italic = flagOn(t.Attr)
				}
			case "u":
				if run != nil {
					run.Underline = flagOn(t.Attr)
				}

			case "t":
				inText = true
				textBuf.Reset()

			case "tab":
				if run != nil {
					run.Text += "\t"
				}

			case "br":
				if run != nil {
					run.Text += "\n"
				}

			case "drawing", "pict":
				img := extractImage(decoder, rels, zr)
				if img != nil && run != nil {
					run.Images = append(run.Images, img)
				}

			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					rows = nil
				}

			case "tr":
				if tblDepth == 1 {
					row = nil
				}

			case "tc":
				if tblDepth == 1 {
					cellPars = nil
				}
			}

		case xml.CharData:
			if inText {
				textBuf.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText && run != nil {
					run.Text += textBuf.String()
				}
				inText = false

			case "pPr":
				inPPr = false

			case "r":
				if run != nil && para != nil && (run.Text != "" || len(run.Images) > 0 || run.Bold || run.Italic || run.Underline) {
					para.Runs = append(para.Runs, *run)
				}
				run = nil

			case "p":
				if para == nil {
					break
				}
				if tblDepth > 0 {
					cellPars = append(cellPars, para.Text())
				} else {
					blocks = append(blocks, Block{Paragraph: para})
				}
				para = nil

			case "tc":
				if tblDepth == 1 {
					row = append(row, strings.Join(cellPars, "\n"))
				}

			case "tr":
				if tblDepth == 1 {
					rows = append(rows, row)
				}

			case "tbl":
				if tblDepth == 1 {
					blocks = append(blocks, Block{Table: &Table{Rows: rows}})
				}
				tblDepth--
			}
		}
	}

	return blocks, nil
}

// twipsToPoints converts a w:spacing attribute value (twentieths of a
// point) to points. Malformed values read as zero.
func twipsToPoints(s string) float64 {
	if s == "" {
		return 0
	}
	twips, err := strconv.Atoi(s)
	if err != nil || twips < 0 {
		return 0
	}
	return float64(twips) / twipsPerPoint
}

// extractImage consumes a drawing/pict subtree and returns the payload of
// the first embedded image it references, or nil.
func extractImage(decoder *xml.Decoder, rels map[string]ooxml.Relationship, zr *zip.Reader) []byte {
	depth := 1
	var embedID string

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "blip" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						embedID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if embedID == "" {
		return nil
	}
	rel, ok := rels[embedID]
	if !ok {
		return nil
	}

	imgPath := ooxml.ResolveTarget(documentPart, rel.Target)
	data, err := ooxml.ReadPart(zr, imgPath)
	if err != nil {
		data, err = ooxml.ReadPart(zr, rel.Target)
		if err != nil {
			return nil
		}
	}
	return data
}

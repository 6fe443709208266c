package docx

import "encoding/xml"

// Marshal-side model for word/document.xml. Element names carry the w:
// prefix literally; the matching namespace declarations sit on the root
// element. These structs are write-only: the reader works on local names
// via the streaming decoder in reader.go.

type xmlDocument struct {
	XMLName  xml.Name `xml:"w:document"`
	XmlnsW   string   `xml:"xmlns:w,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	Body     xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	// Content holds xmlParagraph and xmlTable values; each carries its own
	// XMLName so the marshaller emits them in order.
	Content []any
}

type xmlParagraph struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *xmlParaProps `xml:"w:pPr,omitempty"`
	Runs    []xmlRun
}

type xmlParaProps struct {
	Style *xmlVal `xml:"w:pStyle,omitempty"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlRun struct {
	XMLName xml.Name `xml:"w:r"`
	// Content holds xmlText, xmlBreak, and xmlDrawing values in order.
	Content []any
}

type xmlText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type xmlBreak struct {
	XMLName xml.Name `xml:"w:br"`
}

// Tables.

type xmlTable struct {
	XMLName xml.Name     `xml:"w:tbl"`
	Props   xmlTblProps  `xml:"w:tblPr"`
	Grid    []xmlGridCol `xml:"w:tblGrid>w:gridCol"`
	Rows    []xmlRow
}

type xmlTblProps struct {
	Width   xmlTblWidth `xml:"w:tblW"`
	Borders *xmlBorders `xml:"w:tblBorders,omitempty"`
}

type xmlTblWidth struct {
	W    string `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlBorders struct {
	Top     xmlBorder `xml:"w:top"`
	Left    xmlBorder `xml:"w:left"`
	Bottom  xmlBorder `xml:"w:bottom"`
	Right   xmlBorder `xml:"w:right"`
	InsideH xmlBorder `xml:"w:insideH"`
	InsideV xmlBorder `xml:"w:insideV"`
}

type xmlBorder struct {
	Val  string `xml:"w:val,attr"`
	Size string `xml:"w:sz,attr"`
}

type xmlGridCol struct{}

type xmlRow struct {
	XMLName xml.Name  `xml:"w:tr"`
	Cells   []xmlCell `xml:"w:tc"`
}

type xmlCell struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
}

// Inline pictures (DrawingML).

type xmlDrawing struct {
	XMLName xml.Name  `xml:"w:drawing"`
	Inline  xmlInline `xml:"wp:inline"`
}

type xmlInline struct {
	Extent  xmlExtent  `xml:"wp:extent"`
	DocPr   xmlDocPr   `xml:"wp:docPr"`
	Graphic xmlGraphic `xml:"a:graphic"`
}

type xmlExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlDocPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlGraphic struct {
	Data xmlGraphicData `xml:"a:graphicData"`
}

type xmlGraphicData struct {
	URI string `xml:"uri,attr"`
	Pic xmlPic `xml:"pic:pic"`
}

type xmlPic struct {
	NvPicPr  xmlNvPicPr  `xml:"pic:nvPicPr"`
	BlipFill xmlBlipFill `xml:"pic:blipFill"`
	SpPr     xmlSpPr     `xml:"pic:spPr"`
}

type xmlNvPicPr struct {
	CNvPr    xmlDocPr `xml:"pic:cNvPr"`
	CNvPicPr struct{} `xml:"pic:cNvPicPr"`
}

type xmlBlipFill struct {
	Blip    xmlBlip  `xml:"a:blip"`
	Stretch struct { // a:stretch with an empty a:fillRect
		FillRect struct{} `xml:"a:fillRect"`
	} `xml:"a:stretch"`
}

type xmlBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type xmlSpPr struct {
	Xfrm     xmlXfrm     `xml:"a:xfrm"`
	PrstGeom xmlPrstGeom `xml:"a:prstGeom"`
}

type xmlXfrm struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"a:off"`
	Ext xmlExtentA `xml:"a:ext"`
}

type xmlExtentA struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

// word/styles.xml (write side): Normal plus the nine heading styles.

type xmlStyles struct {
	XMLName xml.Name      `xml:"w:styles"`
	XmlnsW  string        `xml:"xmlns:w,attr"`
	Styles  []xmlStyleDef `xml:"w:style"`
}

type xmlStyleDef struct {
	Type     string       `xml:"w:type,attr"`
	StyleID  string       `xml:"w:styleId,attr"`
	Name     xmlVal       `xml:"w:name"`
	BasedOn  *xmlVal      `xml:"w:basedOn,omitempty"`
	Props    *xmlStylePPr `xml:"w:pPr,omitempty"`
	RunProps *xmlStyleRPr `xml:"w:rPr,omitempty"`
}

type xmlStylePPr struct {
	OutlineLvl *xmlVal `xml:"w:outlineLvl,omitempty"`
}

type xmlStyleRPr struct {
	Bold *struct{} `xml:"w:b,omitempty"`
	Size *xmlVal   `xml:"w:sz,omitempty"`
}

// [Content_Types].xml.

type xmlContentTypes struct {
	XMLName   xml.Name             `xml:"Types"`
	Xmlns     string               `xml:"xmlns,attr"`
	Defaults  []xmlContentDefault  `xml:"Default"`
	Overrides []xmlContentOverride `xml:"Override"`
}

type xmlContentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlContentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

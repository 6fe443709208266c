// Package ooxml provides shared helpers for reading and writing Office
// Open XML packages: part access inside the ZIP container and relationship
// parts.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Namespaces used across OOXML parts.
const (
	NSRelationships    = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes     = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSDrawingML        = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSRelDoc           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSWPDrawing        = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NSPicture          = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Relationship types this package cares about.
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Relationship represents one entry in a .rels part.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Relationships is the root element of a .rels part.
type Relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Items   []Relationship `xml:"Relationship"`
}

// ParseRelationships parses a .rels part from the package into a map keyed
// by relationship ID. A missing part yields an empty map, not an error.
func ParseRelationships(zr *zip.Reader, relsPath string) (map[string]Relationship, error) {
	for _, f := range zr.File {
		if f.Name == relsPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return decodeRels(rc)
		}
	}
	return make(map[string]Relationship), nil
}

func decodeRels(r io.Reader) (map[string]Relationship, error) {
	var rels Relationships
	if err := xml.NewDecoder(r).Decode(&rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	result := make(map[string]Relationship, len(rels.Items))
	for _, rel := range rels.Items {
		result[rel.ID] = rel
	}
	return result, nil
}

// ReadPart reads a named part from the package.
func ReadPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part %q not found in package", name)
}

// WritePart writes one part into the package under construction.
func WritePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	return nil
}

// WriteXMLPart marshals v and writes it as a part, prefixed with the XML
// declaration.
func WriteXMLPart(zw *zip.Writer, name string, v any) error {
	data, err := xml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal part %s: %w", name, err)
	}
	payload := append([]byte(xml.Header), data...)
	return WritePart(zw, name, payload)
}

// WriteRelationships writes a .rels part for the given relationships.
func WriteRelationships(zw *zip.Writer, relsPath string, rels []Relationship) error {
	return WriteXMLPart(zw, relsPath, Relationships{
		Xmlns: NSRelationships,
		Items: rels,
	})
}

// ResolveTarget resolves a relationship target relative to the part that
// declared it.
func ResolveTarget(basePath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := path.Dir(basePath)
	return path.Join(dir, target)
}

package ooxml

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		base   string
		target string
		want   string
	}{
		{"word/document.xml", "media/image1.png", "word/media/image1.png"},
		{"word/document.xml", "../media/image1.png", "media/image1.png"},
		{"word/document.xml", "/word/media/image1.png", "word/media/image1.png"},
		{"_rels/.rels", "word/document.xml", "word/document.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveTarget(tt.base, tt.target), "%s + %s", tt.base, tt.target)
	}
}

func TestRelationships_WriteThenParse(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	rels := []Relationship{
		{ID: "rId1", Type: RelTypeStyles, Target: "styles.xml"},
		{ID: "rId2", Type: RelTypeImage, Target: "media/image1.png"},
	}
	require.NoError(t, WriteRelationships(zw, "word/_rels/document.xml.rels", rels))
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parsed, err := ParseRelationships(zr, "word/_rels/document.xml.rels")
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "media/image1.png", parsed["rId2"].Target)
	assert.Equal(t, RelTypeImage, parsed["rId2"].Type)
}

func TestParseRelationships_MissingPartIsEmpty(t *testing.T) {
	data := zipWith(t, "other.xml", "<x/>")
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parsed, err := ParseRelationships(zr, "word/_rels/document.xml.rels")
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func zipWith(t *testing.T, name, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

package document

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>SUMMARY</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>engineer &amp; mentor</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const emptyDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body></w:body></w:document>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`},
		{"word/document.xml", body},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		size     int64
		mimeType string
		fileName string
		want     Validation
	}{
		{name: "pdf by type", size: 1024, mimeType: MimePDF, fileName: "cv", want: Validation{Valid: true}},
		{name: "docx by extension", size: 1024, mimeType: "application/octet-stream", fileName: "CV.DOCX", want: Validation{Valid: true}},
		{name: "type with parameters", size: 1024, mimeType: "application/pdf; charset=binary", fileName: "", want: Validation{Valid: true}},
		{name: "exactly at ceiling", size: MaxFileSize, mimeType: MimePDF, fileName: "cv.pdf", want: Validation{Valid: true}},
		{name: "too large", size: MaxFileSize + 1, mimeType: MimePDF, fileName: "cv.pdf", want: Validation{Error: MsgTooLarge}},
		{name: "plain text", size: 10, mimeType: "text/plain", fileName: "cv.txt", want: Validation{Error: MsgNotAllowed}},
		{name: "legacy word", size: 10, mimeType: "application/msword", fileName: "cv.doc", want: Validation{Error: MsgNotAllowed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Validate(tt.size, tt.mimeType, tt.fileName))
		})
	}
}

func TestParseDOCX(t *testing.T) {
	data := buildDOCX(t, documentXML)

	res := Parse(context.Background(), data, MimeDOCX, "cv.docx")

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Jane Doe\nSUMMARY\nGo\tengineer & mentor", res.Text)
	assert.Empty(t, res.Error)
}

func TestParseDOCXByExtension(t *testing.T) {
	data := buildDOCX(t, documentXML)

	res := Parse(context.Background(), data, "application/octet-stream", "resume.docx")

	require.True(t, res.Success, res.Error)
	assert.True(t, strings.HasPrefix(res.Text, "Jane Doe\n"))
}

func TestParseEmptyDOCX(t *testing.T) {
	res := Parse(context.Background(), buildDOCX(t, emptyDocumentXML), MimeDOCX, "cv.docx")

	assert.False(t, res.Success)
	assert.Equal(t, MsgEmpty, res.Error)
	assert.Empty(t, res.Text)
}

func TestParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		mimeType   string
		fileName   string
		wantPrefix string
	}{
		{name: "unsupported type", data: []byte("GIF89a"), mimeType: "image/gif", fileName: "cv.gif", wantPrefix: MsgUnsupported},
		{name: "corrupt docx", data: []byte("not a zip archive"), mimeType: MimeDOCX, fileName: "cv.docx", wantPrefix: "Error parsing DOCX:"},
		{name: "sniffed corrupt pdf", data: []byte("%PDF-1.4\nthis is not really a pdf"), fileName: "upload", wantPrefix: "Error parsing PDF:"},
		{name: "blank text", data: []byte(" \n\t "), mimeType: "text/plain; charset=utf-8", wantPrefix: MsgEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Parse(context.Background(), tt.data, tt.mimeType, tt.fileName)
			assert.False(t, res.Success)
			assert.Empty(t, res.Text)
			assert.True(t, strings.HasPrefix(res.Error, tt.wantPrefix), "got %q", res.Error)
		})
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Parse(ctx, []byte("hello"), MimeText, "cv.txt")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, context.Canceled.Error())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(txt, []byte("SUMMARY\nGo engineer\n"), 0o600))

	res, err := ParseFile(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "SUMMARY\nGo engineer", Success: true}, res)

	docxPath := filepath.Join(dir, "cv.docx")
	require.NoError(t, os.WriteFile(docxPath, buildDOCX(t, documentXML), 0o600))

	res, err = ParseFile(context.Background(), docxPath)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Error)

	_, err = ParseFile(context.Background(), filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

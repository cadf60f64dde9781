// Package document turns uploaded CV files into plain text. Failures are reported
// in the Result so callers can carry on with an empty CV.
package document

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileSize is the largest upload Validate accepts.
const MaxFileSize = 10 << 20

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// User facing failure messages.
const (
	MsgTooLarge     = "File size must be less than 10MB."
	MsgNotAllowed   = "Please upload a PDF or DOCX file only."
	MsgUnsupported  = "Unsupported file format. Please upload a PDF or DOCX file."
	MsgEmpty        = "No text content found in the document."
	MsgEncryptedPDF = "The PDF is password protected. Please upload an unprotected copy."
)

var (
	allowedTypes      = []string{MimePDF, MimeDOCX}
	allowedExtensions = []string{".pdf", ".docx"}

	// Declared types that say nothing about the content.
	genericTypes = []string{"", "application/octet-stream", "application/zip", "binary/octet-stream"}
)

// Result is the outcome of a conversion.
type Result struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Validation is the outcome of Validate.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks an upload against the size ceiling and the PDF/DOCX allowlist.
// Either a known MIME type or a known extension is enough.
func Validate(size int64, mimeType, fileName string) Validation {
	if size > MaxFileSize {
		return Validation{Error: MsgTooLarge}
	}
	if !slices.Contains(allowedTypes, cleanType(mimeType)) && !slices.Contains(allowedExtensions, extension(fileName)) {
		return Validation{Error: MsgNotAllowed}
	}
	return Validation{Valid: true}
}

// Parse extracts text from data. The declared mimeType wins unless it is empty or
// generic, in which case the content is sniffed and the file extension consulted.
func Parse(ctx context.Context, data []byte, mimeType, fileName string) Result {
	if err := ctx.Err(); err != nil {
		return failure("Error parsing file: %v", err)
	}

	switch detectType(data, mimeType, fileName) {
	case MimePDF:
		return convert("PDF", data, extractPDF)
	case MimeDOCX:
		return convert("DOCX", data, extractDOCX)
	case MimeText:
		return convert("text", data, func(b []byte) (string, error) { return string(b), nil })
	default:
		return Result{Error: MsgUnsupported}
	}
}

// ParseFile reads path and parses it. Only the read itself returns an error.
func ParseFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading document %q: %w", path, err)
	}
	return Parse(ctx, data, "", filepath.Base(path)), nil
}

func detectType(data []byte, mimeType, fileName string) string {
	declared := cleanType(mimeType)
	if !slices.Contains(genericTypes, declared) {
		return declared
	}

	detected := mimetype.Detect(data)
	switch {
	case detected.Is(MimePDF):
		return MimePDF
	case detected.Is(MimeDOCX):
		return MimeDOCX
	}

	switch extension(fileName) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt", ".md", ".text":
		return MimeText
	}

	if detected.Is(MimeText) {
		return MimeText
	}
	return detected.String()
}

func convert(kind string, data []byte, extract func([]byte) (string, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure("Error parsing %s: %v", kind, r)
		}
	}()

	text, err := extract(data)
	if err != nil {
		if kind == "PDF" && strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			return Result{Error: MsgEncryptedPDF}
		}
		return failure("Error parsing %s: %v", kind, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Error: MsgEmpty}
	}
	return Result{Text: text, Success: true}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent())
}

// stripDocxXML keeps character data and ends a line after every paragraph and
// line break.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}

func failure(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

func cleanType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

func extension(fileName string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
}

package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Text extracts the plain text of an uploaded resume, dispatching on the
// file's extension. Word documents with the legacy .doc extension are often
// OOXML files in disguise, so they go through the docx reader too.
func Text(filename string, data []byte) (string, error) {
	switch ext := Ext(filename); ext {
	case ".pdf":
		return pdfText(data)
	case ".doc", ".docx":
		return docxText(data)
	default:
		return "", &UnsupportedTypeError{Extension: ext}
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return out, nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse word document: %w", err)
	}
	defer doc.Close()

	out := strings.TrimSpace(stripTags(doc.Editable().GetContent()))
	if out == "" {
		return "", fmt.Errorf("word document contains no extractable text")
	}
	return out, nil
}

// stripTags drops the XML markup from the raw document content, inserting
// newlines at paragraph boundaries.
func stripTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")

	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

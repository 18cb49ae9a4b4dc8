// Package extract pulls raw text and shallow metadata out of uploaded
// documents. Extraction of title/company/candidate fields is best effort and
// never fails an upload: missing matches fall back to placeholder values.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is the raw text of a file plus whatever metadata the format
// carried.
type Document struct {
	Content  string
	Metadata Metadata
}

type Metadata struct {
	Title   string
	Author  string
	Created string
}

// FromFile dispatches on the file extension. Supported: .pdf, .docx, .doc,
// .txt, .rtf (rtf is read as plain text, control words and all).
func FromFile(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return fromPDF(path)
	case ".docx", ".doc":
		return fromDocx(path)
	case ".txt", ".rtf":
		return fromText(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func fromText(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return &Document{Content: strings.TrimSpace(string(b))}, nil
}

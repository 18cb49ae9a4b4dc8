package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParaClose = regexp.MustCompile(`</w:p>`)
	docxTags      = regexp.MustCompile(`<[^>]+>`)
)

func fromDocx(path string) (*Document, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	// GetContent returns the raw document.xml; paragraph closes become
	// newlines, every other tag is stripped.
	xml := r.Editable().GetContent()
	text := docxParaClose.ReplaceAllString(xml, "\n")
	text = docxTags.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")

	content := strings.TrimSpace(text)
	if content == "" {
		return nil, fmt.Errorf("no text content found in docx")
	}
	return &Document{Content: content}, nil
}

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func fromPDF(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages, keep the rest
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	content := strings.TrimSpace(b.String())
	if content == "" {
		return nil, fmt.Errorf("no text content found in pdf")
	}

	doc := &Document{Content: content}
	if t := r.Trailer(); !t.IsNull() {
		info := t.Key("Info")
		if !info.IsNull() {
			doc.Metadata = Metadata{
				Title:   info.Key("Title").Text(),
				Author:  info.Key("Author").Text(),
				Created: info.Key("CreationDate").Text(),
			}
		}
	}
	return doc, nil
}

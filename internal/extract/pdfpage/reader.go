// Package pdfpage reads plain text out of PDF files.
package pdfpage

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts text from PDF files on disk.
type Reader struct{}

// NewReader returns a PDF reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extract returns the concatenated text of every page, pages separated
// by newlines. Pages that cannot be decoded are skipped; the file as a
// whole fails only when it cannot be opened at all.
func (r *Reader) Extract(path string) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf %s: %v", path, rec)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	var pages []string
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n"), nil
}

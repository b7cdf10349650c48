package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

// Result is the outcome of extracting a submission. Degraded results
// still feed classification and summarization; Reason records why the
// source could not be read.
type Result struct {
	Text     string
	Degraded bool
	Reason   string
}

// PDFReader extracts plain text from a PDF file on disk.
type PDFReader interface {
	Extract(path string) (string, error)
}

// PageFetcher retrieves the visible text of a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor dispatches submissions to the reader for their item type.
type Extractor struct {
	pdf    PDFReader
	pages  PageFetcher
	logger *slog.Logger
}

// New builds an extractor over the given backends.
func New(pdf PDFReader, pages PageFetcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{pdf: pdf, pages: pages, logger: logger.With(logging.String(logging.FieldComponent, "extract"))}
}

// Extract resolves the classifiable text for a submission. content is
// the original submission payload; filePath points at the uploaded
// file for PDF submissions.
func (e *Extractor) Extract(ctx context.Context, itemType store.ItemType, content, filePath string) Result {
	switch itemType {
	case store.TypeText:
		return Result{Text: content}
	case store.TypeURL:
		return e.extractURL(ctx, content)
	case store.TypePDF:
		return e.extractPDF(content, filePath)
	default:
		return Result{
			Text:     content,
			Degraded: true,
			Reason:   fmt.Sprintf("unsupported item type %q", itemType),
		}
	}
}

func (e *Extractor) extractURL(ctx context.Context, url string) Result {
	text, err := e.pages.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("page fetch failed",
			logging.String("url", url),
			logging.Error(err))
		return Result{
			Text:     "Failed to scrape: " + url,
			Degraded: true,
			Reason:   err.Error(),
		}
	}
	return Result{Text: text}
}

func (e *Extractor) extractPDF(content, filePath string) Result {
	text, err := e.pdf.Extract(filePath)
	if err != nil {
		e.logger.Warn("pdf extraction failed",
			logging.String("path", filePath),
			logging.Error(err))
		// Fall back to the submission payload so the item still lands
		// in the inbox; for file uploads this is usually empty.
		return Result{
			Text:     content,
			Degraded: true,
			Reason:   err.Error(),
		}
	}
	return Result{Text: text}
}

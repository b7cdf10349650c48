package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/extract"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

type fakePDF struct {
	text string
	err  error
}

func (f fakePDF) Extract(string) (string, error) { return f.text, f.err }

type fakePages struct {
	text string
	err  error
}

func (f fakePages) Fetch(context.Context, string) (string, error) { return f.text, f.err }

func TestExtractTextPassthrough(t *testing.T) {
	e := extract.New(fakePDF{}, fakePages{}, nil)

	result := e.Extract(context.Background(), store.TypeText, "raw note", "")
	if result.Degraded || result.Text != "raw note" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestExtractURL(t *testing.T) {
	e := extract.New(fakePDF{}, fakePages{text: "page body"}, nil)

	result := e.Extract(context.Background(), store.TypeURL, "https://example.com/a", "")
	if result.Degraded || result.Text != "page body" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestExtractURLFailure(t *testing.T) {
	e := extract.New(fakePDF{}, fakePages{err: errors.New("connection refused")}, nil)

	result := e.Extract(context.Background(), store.TypeURL, "https://example.com/a", "")
	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if result.Text != "Failed to scrape: https://example.com/a" {
		t.Fatalf("unexpected placeholder text: %q", result.Text)
	}
	if !strings.Contains(result.Reason, "connection refused") {
		t.Fatalf("expected failure reason, got %q", result.Reason)
	}
}

func TestExtractPDF(t *testing.T) {
	e := extract.New(fakePDF{text: "page one\npage two"}, fakePages{}, nil)

	result := e.Extract(context.Background(), store.TypePDF, "", "/tmp/upload.pdf")
	if result.Degraded || result.Text != "page one\npage two" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestExtractPDFFailureKeepsPayload(t *testing.T) {
	e := extract.New(fakePDF{err: errors.New("not a pdf")}, fakePages{}, nil)

	result := e.Extract(context.Background(), store.TypePDF, "", "/tmp/broken.pdf")
	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if result.Text != "" {
		t.Fatalf("expected original payload (empty), got %q", result.Text)
	}
}

func TestExtractUnknownType(t *testing.T) {
	e := extract.New(fakePDF{}, fakePages{}, nil)

	result := e.Extract(context.Background(), store.ItemType("audio"), "x", "")
	if !result.Degraded || result.Text != "x" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

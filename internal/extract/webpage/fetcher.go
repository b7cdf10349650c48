// Package webpage fetches web pages and reduces them to visible text.
package webpage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/textutil"
)

// Selectors for page chrome that never carries article text.
const noiseSelector = "script, style, noscript, iframe, header, footer, nav, aside, form"

// Fetcher retrieves pages over HTTP and strips them to body text.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a fetcher using the ingest settings for timeout
// and user agent.
func NewFetcher(cfg config.Ingest) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
		userAgent: cfg.UserAgent,
	}
}

// Fetch downloads url and returns its whitespace-collapsed visible
// text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}
	doc.Find(noiseSelector).Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	return textutil.CollapseWhitespace(text), nil
}

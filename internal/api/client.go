package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client provides HTTP access to a running daemon.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the daemon listening at bind
// (host:port or a full URL).
func NewClient(bind string) *Client {
	base := strings.TrimSpace(bind)
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit enqueues a text, URL, or host-local PDF submission.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/items", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload sends a PDF file to the daemon for ingestion.
func (c *Client) Upload(ctx context.Context, path string) (*SubmitResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp SubmitResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItems returns items, optionally filtered by status.
func (c *Client) ListItems(ctx context.Context, statuses ...string) (*ItemListResponse, error) {
	path := "/api/items"
	if len(statuses) > 0 {
		query := url.Values{}
		for _, status := range statuses {
			query.Add("status", status)
		}
		path += "?" + query.Encode()
	}
	var resp ItemListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItem returns a single item.
func (c *Client) GetItem(ctx context.Context, id int64) (*ItemResponse, error) {
	var resp ItemResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus changes an item's lifecycle status.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) (*ItemResponse, error) {
	var resp ItemResponse
	path := fmt.Sprintf("/api/items/%d/status", id)
	if err := c.doJSON(ctx, http.MethodPut, path, StatusUpdateRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Convert archives an item and creates an actionable task from it.
func (c *Client) Convert(ctx context.Context, id int64, taskContent string) (*ConvertResponse, error) {
	var resp ConvertResponse
	path := fmt.Sprintf("/api/items/%d/convert", id)
	if err := c.doJSON(ctx, http.MethodPost, path, ConvertRequest{TaskContent: taskContent}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recommendations fetches follow-up suggestions for an item.
func (c *Client) Recommendations(ctx context.Context, id int64) (*RecommendationsResponse, error) {
	var resp RecommendationsResponse
	path := fmt.Sprintf("/api/items/%d/recommendations", id)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status returns the daemon status summary.
func (c *Client) Status(ctx context.Context) (*DaemonStatus, error) {
	var resp DaemonStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification asks the daemon to send a test notification.
func (c *Client) TestNotification(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/notifications/test", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon request failed (is the daemon running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d", resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

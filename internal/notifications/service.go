package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

const userAgent = "PolymathInbox/0.1"

// Service defines the notification surface exposed to the pipeline and
// converter.
type Service interface {
	NotifyItemIngested(ctx context.Context, item *store.Item) error
	NotifyIngestFailed(ctx context.Context, jobID string, err error) error
	NotifyItemConverted(ctx context.Context, source, task *store.Item) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic
// is configured, otherwise a noop implementation.
func NewService(cfg config.Notifications) Service {
	topic := strings.TrimSpace(cfg.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		cfg:      cfg,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	cfg      config.Notifications
}

func (n *ntfyService) NotifyItemIngested(ctx context.Context, item *store.Item) error {
	if !n.cfg.Ingest || item == nil {
		return nil
	}
	data := payload{
		title:   "Polymath - Item Ingested",
		message: fmt.Sprintf("Item #%d (%s) filed under %s", item.ID, item.Type, item.TagString()),
		tags:    []string{"polymath", "ingest", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyIngestFailed(ctx context.Context, jobID string, err error) error {
	if !n.cfg.Errors {
		return nil
	}
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "Polymath - Ingest Failed",
		message:  fmt.Sprintf("Job %s failed: %s", jobID, reason),
		tags:     []string{"polymath", "ingest", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyItemConverted(ctx context.Context, source, task *store.Item) error {
	if !n.cfg.Conversion || source == nil || task == nil {
		return nil
	}
	data := payload{
		title:   "Polymath - Task Created",
		message: fmt.Sprintf("Item #%d converted into task #%d: %s", source.ID, task.ID, task.Summary),
		tags:    []string{"polymath", "convert", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Polymath - Test",
		message:  "Notification system test",
		tags:     []string{"polymath", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyItemIngested(context.Context, *store.Item) error               { return nil }
func (noopService) NotifyIngestFailed(context.Context, string, error) error             { return nil }
func (noopService) NotifyItemConverted(context.Context, *store.Item, *store.Item) error { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }

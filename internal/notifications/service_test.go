package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/notifications"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var requests []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestNewServiceWithoutTopicIsNoop(t *testing.T) {
	svc := notifications.NewService(config.Notifications{Ingest: true, Errors: true})
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("noop service returned error: %v", err)
	}
}

func TestNotifyItemIngested(t *testing.T) {
	srv, requests := newCaptureServer(t)
	svc := notifications.NewService(config.Notifications{
		NtfyTopic:      srv.URL,
		RequestTimeout: 5,
		Ingest:         true,
	})

	item := &store.Item{ID: 7, Type: store.TypeURL, Tags: []string{"Medical", store.TagKnowledgeGrain}}
	if err := svc.NotifyItemIngested(context.Background(), item); err != nil {
		t.Fatalf("NotifyItemIngested failed: %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}
	got := (*requests)[0]
	if got.title != "Polymath - Item Ingested" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if !strings.Contains(got.body, "#7") || !strings.Contains(got.body, "Medical") {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestNotifyItemIngestedDisabled(t *testing.T) {
	srv, requests := newCaptureServer(t)
	svc := notifications.NewService(config.Notifications{
		NtfyTopic:      srv.URL,
		RequestTimeout: 5,
		Ingest:         false,
	})

	item := &store.Item{ID: 1, Type: store.TypeText, Tags: []string{store.TagKnowledgeGrain}}
	if err := svc.NotifyItemIngested(context.Background(), item); err != nil {
		t.Fatalf("NotifyItemIngested failed: %v", err)
	}
	if len(*requests) != 0 {
		t.Fatalf("expected no request when ingest notifications disabled, got %d", len(*requests))
	}
}

func TestNotifyIngestFailedPriority(t *testing.T) {
	srv, requests := newCaptureServer(t)
	svc := notifications.NewService(config.Notifications{
		NtfyTopic:      srv.URL,
		RequestTimeout: 5,
		Errors:         true,
	})

	err := svc.NotifyIngestFailed(context.Background(), "job-123", errors.New("queue full"))
	if err != nil {
		t.Fatalf("NotifyIngestFailed failed: %v", err)
	}
	got := (*requests)[0]
	if got.priority != "high" {
		t.Fatalf("expected high priority, got %q", got.priority)
	}
	if !strings.Contains(got.body, "job-123") || !strings.Contains(got.body, "queue full") {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestSendSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := notifications.NewService(config.Notifications{NtfyTopic: srv.URL, RequestTimeout: 5})
	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected 502 error, got %v", err)
	}
}

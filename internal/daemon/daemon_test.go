package daemon_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/api"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/daemon"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/testsupport"
)

func startDaemon(t *testing.T) *api.Client {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})
	return api.NewClient(d.Addr())
}

func waitForItems(t *testing.T, client *api.Client, want int) []api.Item {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.ListItems(context.Background())
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if len(resp.Items) >= want {
			return resp.Items
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d items, have %d", want, len(resp.Items))
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSubmitTextItem(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()

	resp, err := client.Submit(ctx, api.SubmitRequest{
		Type:    "text",
		Content: "TODO: call the clinical lab about patient results",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("expected a job id")
	}

	items := waitForItems(t, client, 1)
	item := items[0]
	if item.Status != "new" {
		t.Fatalf("expected status new, got %q", item.Status)
	}
	if !strings.Contains(item.Tags, "Medical") || !strings.Contains(item.Tags, "Actionable Task") {
		t.Fatalf("unexpected tags: %q", item.Tags)
	}
}

func TestSubmitRejectsUnknownType(t *testing.T) {
	client := startDaemon(t)

	_, err := client.Submit(context.Background(), api.SubmitRequest{Type: "carrier-pigeon", Content: "x"})
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestItemLifecycleOverAPI(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()

	if _, err := client.Submit(ctx, api.SubmitRequest{Type: "text", Content: "a grain of knowledge"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	items := waitForItems(t, client, 1)
	id := items[0].ID

	got, err := client.GetItem(ctx, id)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Item.Content != "a grain of knowledge" {
		t.Fatalf("unexpected content: %q", got.Item.Content)
	}

	updated, err := client.UpdateStatus(ctx, id, "archived")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Item.Status != "archived" {
		t.Fatalf("expected archived, got %q", updated.Item.Status)
	}

	filtered, err := client.ListItems(ctx, "archived")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(filtered.Items) != 1 || filtered.Items[0].ID != id {
		t.Fatalf("unexpected filtered items: %#v", filtered.Items)
	}
}

func TestUpdateStatusUnknownItem(t *testing.T) {
	client := startDaemon(t)

	_, err := client.UpdateStatus(context.Background(), 9999, "archived")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestConvertOverAPI(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()

	if _, err := client.Submit(ctx, api.SubmitRequest{Type: "text", Content: "sermon notes on rest"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	items := waitForItems(t, client, 1)
	id := items[0].ID

	converted, err := client.Convert(ctx, id, "Draft a Blog post about rest")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if converted.Task.Tags != "Actionable Task" {
		t.Fatalf("unexpected task tags: %q", converted.Task.Tags)
	}
	if !strings.Contains(converted.Task.Content, "Define the target audience.") {
		t.Fatalf("expected blog next steps, got %q", converted.Task.Content)
	}

	source, err := client.GetItem(ctx, id)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if source.Item.Status != "archived" {
		t.Fatalf("expected archived source, got %q", source.Item.Status)
	}
}

func TestRecommendationsStub(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()

	if _, err := client.Submit(ctx, api.SubmitRequest{Type: "text", Content: "idea"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	items := waitForItems(t, client, 1)

	resp, err := client.Recommendations(ctx, items[0].ID)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %v", resp.Recommendations)
	}
}

func TestUploadOverAPI(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	resp, err := client.Upload(ctx, path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("expected a job id")
	}

	// Unreadable PDFs still land in the inbox with derived defaults.
	items := waitForItems(t, client, 1)
	item := items[0]
	if item.Type != "pdf" {
		t.Fatalf("expected pdf item, got %q", item.Type)
	}
	if item.Summary != "..." {
		t.Fatalf("expected ellipsis summary, got %q", item.Summary)
	}
	if item.Tags != "Knowledge Grain" {
		t.Fatalf("unexpected tags: %q", item.Tags)
	}
}

func TestDaemonStatusEndpoint(t *testing.T) {
	client := startDaemon(t)

	status, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected running daemon")
	}
	if status.DatabasePath == "" || status.LockFilePath == "" {
		t.Fatalf("expected populated paths: %#v", status)
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	defer first.Close()

	second, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New (second): %v", err)
	}
	defer second.Close()
	if err := second.Start(context.Background()); err == nil {
		t.Fatal("expected second instance to be rejected")
	}
}

func TestStopDrainsQueueAfterSignalCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})

	runCtx, cancel := context.WithCancel(context.Background())
	if err := d.Start(runCtx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	client := api.NewClient(d.Addr())
	if _, err := client.Submit(context.Background(), api.SubmitRequest{
		Type:    "text",
		Content: "write up the clinic visit",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The serve loop cancels its context on SIGINT before calling
	// Stop; the queued submission must still land in the store.
	cancel()
	d.Stop()

	items, err := d.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Content != "write up the clinic visit" {
		t.Fatalf("queued submission was not drained: %#v", items)
	}
}

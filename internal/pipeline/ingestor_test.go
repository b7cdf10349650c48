package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/pipeline"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/testsupport"
)

type recordingNotifier struct {
	ingested chan *store.Item
	failed   chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		ingested: make(chan *store.Item, 16),
		failed:   make(chan string, 16),
	}
}

func (r *recordingNotifier) NotifyItemIngested(_ context.Context, item *store.Item) error {
	r.ingested <- item
	return nil
}

func (r *recordingNotifier) NotifyIngestFailed(_ context.Context, jobID string, _ error) error {
	r.failed <- jobID
	return nil
}

func (r *recordingNotifier) NotifyItemConverted(context.Context, *store.Item, *store.Item) error {
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func TestIngestorProcessesSubmission(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, st := newPipeline(t, cfg)
	notifier := newRecordingNotifier()

	ing := pipeline.NewIngestor(p, notifier, cfg.Ingest, nil)
	ing.Start(context.Background())
	defer ing.Stop()

	token, err := ing.Submit(pipeline.Submission{
		Type:    store.TypeText,
		Content: "todo: water the plants",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a job token")
	}

	select {
	case item := <-notifier.ingested:
		if !item.HasTag(store.TagActionableTask) {
			t.Fatalf("unexpected tags: %v", item.Tags)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ingestion")
	}

	items, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestIngestorNotifiesOnFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, _ := newPipeline(t, cfg)
	notifier := newRecordingNotifier()

	ing := pipeline.NewIngestor(p, notifier, cfg.Ingest, nil)
	ing.Start(context.Background())
	defer ing.Stop()

	token, err := ing.Submit(pipeline.Submission{Type: store.ItemType("audio")})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case jobID := <-notifier.failed:
		if jobID != token {
			t.Fatalf("failure notification carries wrong job id: %q != %q", jobID, token)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for failure notification")
	}
}

func TestIngestorRejectsWhenQueueFull(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWorkers(1), testsupport.WithQueueDepth(1))
	p, _ := newPipeline(t, cfg)

	// Never started: jobs stay queued, so the second submit must bounce.
	ing := pipeline.NewIngestor(p, newRecordingNotifier(), cfg.Ingest, nil)
	if _, err := ing.Submit(pipeline.Submission{Type: store.TypeText, Content: "a"}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	_, err := ing.Submit(pipeline.Submission{Type: store.TypeText, Content: "b"})
	if !errors.Is(err, pipeline.ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestIngestorSubmitAfterStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, _ := newPipeline(t, cfg)

	ing := pipeline.NewIngestor(p, newRecordingNotifier(), cfg.Ingest, nil)
	ing.Start(context.Background())
	ing.Stop()

	_, err := ing.Submit(pipeline.Submission{Type: store.TypeText, Content: "late"})
	if !errors.Is(err, pipeline.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestIngestorStopIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, _ := newPipeline(t, cfg)

	ing := pipeline.NewIngestor(p, newRecordingNotifier(), cfg.Ingest, nil)
	ing.Start(context.Background())
	ing.Stop()
	ing.Stop()
}

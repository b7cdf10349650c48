package logging

import (
	"context"
	"strings"
	"testing"
)

func TestJobIDRoundTrip(t *testing.T) {
	ctx := WithJobID(context.Background(), "job-42")
	jobID, ok := JobIDFromContext(ctx)
	if !ok || jobID != "job-42" {
		t.Fatalf("unexpected job id: %q, %v", jobID, ok)
	}

	if _, ok := JobIDFromContext(context.Background()); ok {
		t.Fatal("expected no job id on fresh context")
	}
	if same := WithJobID(context.Background(), ""); same != context.Background() {
		t.Fatal("empty job id must not wrap the context")
	}
}

func TestWithContextTagsLogger(t *testing.T) {
	logger, buf := newBufferLogger("debug")

	ctx := WithJobID(context.Background(), "job-7")
	WithContext(ctx, logger).Info("processing")

	out := buf.String()
	if !strings.Contains(out, "job_id=job-7") {
		t.Fatalf("expected job_id attr in output, got %q", out)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected nop logger, got nil")
	}
}

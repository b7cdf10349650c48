package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const jobIDKey contextKey = iota

// WithJobID stores an ingestion job token in the context so downstream
// components can tag their log lines with it.
func WithJobID(ctx context.Context, jobID string) context.Context {
	if jobID == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, jobID)
}

// JobIDFromContext extracts the job token, if any.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	jobID, ok := ctx.Value(jobIDKey).(string)
	return jobID, ok && jobID != ""
}

// WithContext returns the logger augmented with structured fields
// derived from the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if jobID, ok := JobIDFromContext(ctx); ok {
		return logger.With(String(FieldJobID, jobID))
	}
	return logger
}

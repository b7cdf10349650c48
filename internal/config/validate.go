package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.Ingest.Workers < 1 {
		problems = append(problems, "ingest.workers must be at least 1")
	}
	if c.Ingest.QueueDepth < 1 {
		problems = append(problems, "ingest.queue_depth must be at least 1")
	}
	if c.Ingest.FetchTimeout < 1 {
		problems = append(problems, "ingest.fetch_timeout must be at least 1 second")
	}
	if c.Summarizer.SentenceCount < 1 {
		problems = append(problems, "summarizer.sentence_count must be at least 1")
	}
	if c.Summarizer.FallbackLength < 1 {
		problems = append(problems, "summarizer.fallback_length must be at least 1")
	}
	if c.Notifications.RequestTimeout < 1 {
		problems = append(problems, "notifications.request_timeout must be at least 1 second")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		problems = append(problems, "paths.api_bind must not be empty")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

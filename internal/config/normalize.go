package config

import "strings"

// normalize expands paths, trims string fields, and backfills zero values
// with defaults so a partially specified file behaves predictably.
func (c *Config) normalize() error {
	defaults := Default()

	c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir)
	c.Paths.UploadDir = strings.TrimSpace(c.Paths.UploadDir)
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaults.Paths.DataDir
	}
	if c.Paths.UploadDir == "" {
		c.Paths.UploadDir = defaults.Paths.UploadDir
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaults.Paths.APIBind
	}

	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.UploadDir, &c.Paths.LogDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Classifier.RulesPath != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Classifier.RulesPath))
		if err != nil {
			return err
		}
		c.Classifier.RulesPath = expanded
	}

	if c.Ingest.Workers == 0 {
		c.Ingest.Workers = defaults.Ingest.Workers
	}
	if c.Ingest.QueueDepth == 0 {
		c.Ingest.QueueDepth = defaults.Ingest.QueueDepth
	}
	if c.Ingest.FetchTimeout == 0 {
		c.Ingest.FetchTimeout = defaults.Ingest.FetchTimeout
	}
	c.Ingest.UserAgent = strings.TrimSpace(c.Ingest.UserAgent)
	if c.Ingest.UserAgent == "" {
		c.Ingest.UserAgent = defaults.Ingest.UserAgent
	}

	if c.Summarizer.SentenceCount == 0 {
		c.Summarizer.SentenceCount = defaults.Summarizer.SentenceCount
	}
	if c.Summarizer.FallbackLength == 0 {
		c.Summarizer.FallbackLength = defaults.Summarizer.FallbackLength
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaults.Notifications.RequestTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}

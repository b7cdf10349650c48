package config

const (
	defaultDataDir        = "~/.local/share/polymath"
	defaultUploadDir      = "~/.local/share/polymath/uploads"
	defaultLogDir         = "~/.local/share/polymath/logs"
	defaultAPIBind        = "127.0.0.1:8491"
	defaultIngestWorkers  = 4
	defaultQueueDepth     = 64
	defaultFetchTimeout   = 30
	defaultUserAgent      = "PolymathInbox/0.1"
	defaultSentenceCount  = 3
	defaultFallbackLength = 200
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			UploadDir: defaultUploadDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Ingest: Ingest{
			Workers:      defaultIngestWorkers,
			QueueDepth:   defaultQueueDepth,
			FetchTimeout: defaultFetchTimeout,
			UserAgent:    defaultUserAgent,
		},
		Summarizer: Summarizer{
			SentenceCount:  defaultSentenceCount,
			FallbackLength: defaultFallbackLength,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Ingest:         true,
			Conversion:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

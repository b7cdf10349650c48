// Package daemon coordinates the ingestion workers and the HTTP API
// and enforces single-instance execution.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/classify"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/convert"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/extract"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/extract/pdfpage"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/extract/webpage"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/notifications"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/pipeline"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/summarize"
)

// Daemon owns the item store, the ingest worker pool, and the API
// server.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	ingestor *pipeline.Ingestor
	convert  *convert.Converter
	notifier notifications.Service
	api      *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
	Items        store.HealthSummary
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare directories: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rules, err := classify.LoadRules(cfg.Classifier.RulesPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	classifier, err := classify.New(rules)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	notifier := notifications.NewService(cfg.Notifications)
	extractor := extract.New(pdfpage.NewReader(), webpage.NewFetcher(cfg.Ingest), logger)
	pipe := pipeline.New(extractor, classifier, summarize.New(cfg.Summarizer), st, logger)

	lockPath := filepath.Join(cfg.Paths.DataDir, "polymath.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		ingestor: pipeline.NewIngestor(pipe, notifier, cfg.Ingest, logger),
		convert:  convert.New(st, notifier, logger),
		notifier: notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg.Paths.APIBind, d, logger)
	return d, nil
}

// Start acquires the instance lock and launches the worker pool and
// API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another polymath daemon instance is already running")
	}

	// Detach the worker context from the caller's: a signal cancels
	// the serve loop, not the pool, so Stop can still close the queue
	// and wait for queued jobs instead of abandoning them mid-write.
	d.ctx, d.cancel = context.WithCancel(context.WithoutCancel(ctx))
	d.ingestor.Start(d.ctx)
	if err := d.api.start(d.ctx); err != nil {
		d.ingestor.Stop()
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("polymath daemon started",
		logging.String("lock", d.lockPath),
		logging.String("bind", d.cfg.Paths.APIBind))
	return nil
}

// Stop shuts down the API server, drains the workers, and releases the
// lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.api.stop()
	d.ingestor.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("polymath daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound API address once the daemon is started.
func (d *Daemon) Addr() string {
	return d.api.addr()
}

// Submit enqueues a submission on the worker pool.
func (d *Daemon) Submit(sub pipeline.Submission) (string, error) {
	return d.ingestor.Submit(sub)
}

// ListItems returns items filtered by optional statuses.
func (d *Daemon) ListItems(ctx context.Context, statuses ...store.Status) ([]*store.Item, error) {
	return d.store.List(ctx, statuses...)
}

// GetItem returns a single item or nil when it does not exist.
func (d *Daemon) GetItem(ctx context.Context, id int64) (*store.Item, error) {
	return d.store.GetByID(ctx, id)
}

// UpdateItemStatus changes an item's lifecycle status.
func (d *Daemon) UpdateItemStatus(ctx context.Context, id int64, status store.Status) error {
	return d.store.UpdateStatus(ctx, id, status)
}

// ConvertItem archives an item and creates an actionable task from it.
func (d *Daemon) ConvertItem(ctx context.Context, id int64, taskContent string) (*store.Item, error) {
	return d.convert.Convert(ctx, id, taskContent)
}

// TestNotification sends a test notification with the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) error {
	return d.notifier.TestNotification(ctx)
}

// SaveUpload stores an uploaded PDF in the upload directory and
// returns its path. The stored name keeps the original base name
// behind a unique prefix so repeated uploads never collide.
func (d *Daemon) SaveUpload(name string, data []byte) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "upload.pdf"
	}
	path := filepath.Join(d.cfg.Paths.UploadDir, uuid.NewString()+"-"+base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return path, nil
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	health, err := d.store.Health(ctx)
	if err != nil {
		d.logger.Warn("health query failed", logging.Error(err))
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
		Items:        health,
	}
}

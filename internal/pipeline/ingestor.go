package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/notifications"
)

// ErrQueueFull reports that the ingest queue is at capacity and the
// submission was rejected.
var ErrQueueFull = errors.New("ingest queue full")

// ErrStopped reports a submission after the ingestor shut down.
var ErrStopped = errors.New("ingestor stopped")

type job struct {
	id         string
	submission Submission
}

// Ingestor processes submissions asynchronously on a bounded worker
// pool. Submissions beyond the queue depth are rejected rather than
// buffered without limit.
type Ingestor struct {
	pipeline *Pipeline
	notifier notifications.Service
	logger   *slog.Logger
	workers  int

	mu      sync.Mutex
	jobs    chan job
	stopped bool
	wg      sync.WaitGroup
}

// NewIngestor builds an ingestor over the pipeline. Worker count and
// queue depth come from the ingest configuration.
func NewIngestor(p *Pipeline, notifier notifications.Service, cfg config.Ingest, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ingestor{
		pipeline: p,
		notifier: notifier,
		logger:   logger.With(logging.String(logging.FieldComponent, "ingestor")),
		workers:  cfg.Workers,
		jobs:     make(chan job, cfg.QueueDepth),
	}
}

// Start launches the worker pool. Workers exit when Stop closes the
// queue or ctx is cancelled.
func (i *Ingestor) Start(ctx context.Context) {
	for n := 0; n < i.workers; n++ {
		i.wg.Add(1)
		go i.run(ctx)
	}
	i.logger.Info("ingest workers started", logging.Int("workers", i.workers))
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (i *Ingestor) Stop() {
	i.mu.Lock()
	if i.stopped {
		i.mu.Unlock()
		return
	}
	i.stopped = true
	close(i.jobs)
	i.mu.Unlock()

	i.wg.Wait()
	i.logger.Info("ingest workers stopped")
}

// Submit enqueues a submission and returns its job token. The token
// lets API clients correlate log lines and failure notifications with
// their request. Returns ErrQueueFull when the queue is at capacity.
func (i *Ingestor) Submit(sub Submission) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stopped {
		return "", ErrStopped
	}

	j := job{id: uuid.NewString(), submission: sub}
	select {
	case i.jobs <- j:
		return j.id, nil
	default:
		return "", ErrQueueFull
	}
}

func (i *Ingestor) run(ctx context.Context) {
	defer i.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-i.jobs:
			if !ok {
				return
			}
			i.process(ctx, j)
		}
	}
}

func (i *Ingestor) process(ctx context.Context, j job) {
	ctx = logging.WithJobID(ctx, j.id)
	logger := logging.WithContext(ctx, i.logger)

	item, err := i.pipeline.Process(ctx, j.submission)
	if err != nil {
		logger.Error("ingest failed", logging.Error(err))
		if notifyErr := i.notifier.NotifyIngestFailed(ctx, j.id, err); notifyErr != nil {
			logger.Warn("failure notification not delivered", logging.Error(notifyErr))
		}
		return
	}

	logger.Info("ingest complete", logging.Int64(logging.FieldItemID, item.ID))
	if notifyErr := i.notifier.NotifyItemIngested(ctx, item); notifyErr != nil {
		logger.Warn("ingest notification not delivered", logging.Error(notifyErr))
	}
}

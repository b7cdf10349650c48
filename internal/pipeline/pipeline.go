package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/classify"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/extract"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/summarize"
)

// Submission is one piece of raw input headed for the inbox. Content is
// the payload as submitted (note text, URL, or upload path); FilePath
// points at the stored file for PDF submissions.
type Submission struct {
	Type     store.ItemType
	Content  string
	FilePath string
}

// Pipeline turns submissions into persisted items.
type Pipeline struct {
	extractor  *extract.Extractor
	classifier *classify.Classifier
	summarizer *summarize.Summarizer
	store      *store.Store
	logger     *slog.Logger
}

// New assembles a pipeline over the given stages and store.
func New(extractor *extract.Extractor, classifier *classify.Classifier, summarizer *summarize.Summarizer, st *store.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		classifier: classifier,
		summarizer: summarizer,
		store:      st,
		logger:     logger.With(logging.String(logging.FieldComponent, "pipeline")),
	}
}

// Process runs a submission through extract, classify, and summarize,
// then persists the item. The stored content is always the original
// submission payload; extraction output only feeds the derived fields.
// Degraded extraction still produces an item.
func (p *Pipeline) Process(ctx context.Context, sub Submission) (*store.Item, error) {
	if _, ok := store.ParseItemType(string(sub.Type)); !ok {
		return nil, fmt.Errorf("process submission: unknown item type %q", sub.Type)
	}

	logger := logging.WithContext(ctx, p.logger)

	result := p.extractor.Extract(ctx, sub.Type, sub.Content, sub.FilePath)
	if result.Degraded {
		logger.Warn("extraction degraded",
			logging.String(logging.FieldItemType, string(sub.Type)),
			logging.String("reason", result.Reason))
	}

	tags := p.classifier.Classify(result.Text)
	summary := p.summarizer.Summarize(result.Text)

	item, err := p.store.Insert(ctx, store.Draft{
		Type:    sub.Type,
		Content: sub.Content,
		Summary: summary,
		Tags:    tags,
	})
	if err != nil {
		return nil, fmt.Errorf("persist item: %w", err)
	}

	logger.Info("item ingested",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String(logging.FieldItemType, string(item.Type)),
		logging.String("tags", item.TagString()))
	return item, nil
}

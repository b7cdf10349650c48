// Package convert turns inbox items into actionable task items. The
// source item is archived and a new task item is created in one
// transaction, with suggested next steps appended to the task body.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/notifications"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

// Next-step templates keyed on the task intent. Matching is
// case-sensitive so "Tweet" in a task description selects the social
// template while "tweet" falls through to the generic one.
const (
	tweetSteps   = "\n\n**Suggested Next Steps:**\n1. Outline the main hook.\n2. Draft 3-5 tweets.\n3. Add hashtags (#SDA #Medical)."
	blogSteps    = "\n\n**Suggested Next Steps:**\n1. Define the target audience.\n2. Create an outline (Intro, Body, Conclusion).\n3. Find relevant scripture or medical papers."
	genericSteps = "\n\n**Suggested Next Steps:**\n1. Review the source material.\n2. Define success criteria.\n3. Schedule execution time."
)

// Converter archives knowledge items and spawns task items from them.
type Converter struct {
	store    *store.Store
	notifier notifications.Service
	logger   *slog.Logger
}

// New builds a converter over the store.
func New(st *store.Store, notifier notifications.Service, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{
		store:    st,
		notifier: notifier,
		logger:   logger.With(logging.String(logging.FieldComponent, "convert")),
	}
}

// Convert archives the source item and creates a new task item whose
// content is taskContent plus a next-steps template, whose summary is
// the bare taskContent, and whose only tag is Actionable Task. Returns
// store.ErrNotFound when the source item does not exist.
func (c *Converter) Convert(ctx context.Context, sourceID int64, taskContent string) (*store.Item, error) {
	source, err := c.store.GetByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load source item: %w", err)
	}
	if source == nil {
		return nil, store.ErrNotFound
	}

	task, err := c.store.ConvertToTask(ctx, sourceID, store.Draft{
		Type:    store.TypeText,
		Content: taskContent + nextSteps(taskContent),
		Summary: taskContent,
		Tags:    []string{store.TagActionableTask},
	})
	if err != nil {
		return nil, fmt.Errorf("convert item %d: %w", sourceID, err)
	}

	c.logger.Info("item converted to task",
		logging.Int64(logging.FieldItemID, sourceID),
		logging.Int64("task_id", task.ID))
	if notifyErr := c.notifier.NotifyItemConverted(ctx, source, task); notifyErr != nil {
		c.logger.Warn("conversion notification not delivered", logging.Error(notifyErr))
	}
	return task, nil
}

func nextSteps(taskContent string) string {
	switch {
	case strings.Contains(taskContent, "Tweet"):
		return tweetSteps
	case strings.Contains(taskContent, "Blog"):
		return blogSteps
	default:
		return genericSteps
	}
}

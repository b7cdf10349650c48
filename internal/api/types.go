// Package api defines the HTTP payload types shared by the daemon and
// the CLI client.
package api

import (
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

// Item is the wire representation of an inbox item.
type Item struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Tags      string    `json:"tags"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromStoreItem converts a persisted item to its wire form.
func FromStoreItem(item *store.Item) Item {
	return Item{
		ID:        item.ID,
		Type:      string(item.Type),
		Content:   item.Content,
		Summary:   item.Summary,
		Tags:      item.TagString(),
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// SubmitRequest enqueues a new submission for ingestion.
type SubmitRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	// FilePath references a PDF already on the daemon host. File
	// uploads from remote clients go through the uploads endpoint
	// instead.
	FilePath string `json:"file_path,omitempty"`
}

// SubmitResponse acknowledges an accepted submission.
type SubmitResponse struct {
	JobID string `json:"job_id"`
}

// ItemListResponse carries a page of items.
type ItemListResponse struct {
	Items []Item `json:"items"`
}

// ItemResponse carries a single item.
type ItemResponse struct {
	Item Item `json:"item"`
}

// StatusUpdateRequest changes an item's lifecycle status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ConvertRequest turns an item into an actionable task.
type ConvertRequest struct {
	TaskContent string `json:"task_content"`
}

// ConvertResponse returns the created task item.
type ConvertResponse struct {
	Task Item `json:"task"`
}

// RecommendationsResponse lists follow-up suggestions for an item.
// Recommendation generation is not implemented yet; the list is always
// empty.
type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

// DaemonStatus summarizes the running daemon.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	DatabasePath string `json:"database_path"`
	LockFilePath string `json:"lock_file_path"`
	Items        Health `json:"items"`
}

// Health carries item counts per lifecycle status.
type Health struct {
	Total    int `json:"total"`
	New      int `json:"new"`
	Archived int `json:"archived"`
	Deleted  int `json:"deleted"`
}

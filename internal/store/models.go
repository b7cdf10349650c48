package store

import (
	"strings"
	"time"
)

// Status represents the lifecycle of an inbox item.
type Status string

const (
	StatusNew      Status = "new"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

var allStatuses = []Status{
	StatusNew,
	StatusArchived,
	StatusDeleted,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ItemType records the provenance of a submission, not the current form
// of its content.
type ItemType string

const (
	TypeText ItemType = "text"
	TypeURL  ItemType = "url"
	TypePDF  ItemType = "pdf"
)

var allTypes = []ItemType{TypeText, TypeURL, TypePDF}

var typeSet = func() map[ItemType]struct{} {
	set := make(map[ItemType]struct{}, len(allTypes))
	for _, t := range allTypes {
		set[t] = struct{}{}
	}
	return set
}()

// TagSeparator joins tags into the single persisted column. The join
// format matches the existing on-disk representation.
const TagSeparator = ", "

// Primary classification tags; every item carries exactly one of them.
const (
	TagActionableTask = "Actionable Task"
	TagKnowledgeGrain = "Knowledge Grain"
)

// Item represents an inbox item persisted in SQLite. Content always
// holds the original user submission; Summary and Tags are derived.
type Item struct {
	ID        int64
	Type      ItemType
	Content   string
	Summary   string
	Tags      []string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft carries the fields of an item about to be inserted.
type Draft struct {
	Type    ItemType
	Content string
	Summary string
	Tags    []string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// ParseItemType converts a string into a known ItemType.
func ParseItemType(value string) (ItemType, bool) {
	normalized := ItemType(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := typeSet[normalized]
	return normalized, ok
}

// JoinTags renders a tag list into the persisted delimited form.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// SplitTags parses the persisted delimited form back into a list.
func SplitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// TagString returns the item's tags in the persisted delimited form.
func (i Item) TagString() string {
	return JoinTags(i.Tags)
}

// HasTag reports whether the item carries the given tag.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HealthSummary describes aggregated item counts per lifecycle state.
type HealthSummary struct {
	Total    int
	New      int
	Archived int
	Deleted  int
}

package textutil

import "strings"

// EllipsisMarker terminates every truncation fallback.
const EllipsisMarker = "..."

// CollapseWhitespace trims the input and folds runs of whitespace
// (including newlines and tabs) into single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Truncate returns the first limit runes of value followed by the
// ellipsis marker. Values at or under the limit are returned with the
// marker appended unchanged; the marker is always present so callers
// can recognize a truncation fallback.
func Truncate(value string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(value)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + EllipsisMarker
}

// FirstLine returns the text up to the first newline, trimmed.
func FirstLine(value string) string {
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// Package store persists inbox items in SQLite and owns the item
// lifecycle contract: items are inserted once, listed newest-first,
// mutated only by status updates, and never physically removed.
package store

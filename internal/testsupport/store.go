package testsupport

import (
	"context"
	"testing"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// InsertItem persists a minimal item for tests using the provided store.
func InsertItem(t testing.TB, st *store.Store, content string) *store.Item {
	t.Helper()

	item, err := st.Insert(context.Background(), store.Draft{
		Type:    store.TypeText,
		Content: content,
		Summary: content,
		Tags:    []string{store.TagKnowledgeGrain},
	})
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return item
}

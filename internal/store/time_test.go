package store

import (
	"context"
	"testing"
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
)

func openBareStore(t *testing.T) *Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Paths.DataDir = t.TempDir()

	st, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestTimeLayoutIsFixedWidth(t *testing.T) {
	halfSecond := time.Date(2026, 8, 30, 10, 0, 0, 500000000, time.UTC)
	later := halfSecond.Add(20 * time.Millisecond)

	a := halfSecond.Format(timeLayout)
	b := later.Format(timeLayout)

	if len(a) != len(b) {
		t.Fatalf("timestamps differ in width: %q vs %q", a, b)
	}
	if a >= b {
		t.Fatalf("byte order diverges from time order: %q >= %q", a, b)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, a); err != nil || !parsed.Equal(halfSecond) {
		t.Fatalf("stored timestamp did not round-trip: %v %v", parsed, err)
	}
}

func TestListOrdersSubsecondCreations(t *testing.T) {
	st := openBareStore(t)
	ctx := context.Background()

	insertAt := func(ts time.Time, content string) {
		t.Helper()
		stamp := ts.Format(timeLayout)
		_, err := st.db.ExecContext(
			ctx,
			`INSERT INTO items (type, content, summary, tags, status, created_at, updated_at)
	         VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(TypeText), content, content, TagKnowledgeGrain, StatusNew, stamp, stamp,
		)
		if err != nil {
			t.Fatalf("insert %q: %v", content, err)
		}
	}

	// The newer row gets the smaller id, so only the timestamp column
	// can put it first. The fractions 0.52s and 0.5s are the trap:
	// trimmed-zero encodings would compare "5Z" > "52Z" and invert
	// newest-first.
	base := time.Date(2026, 8, 30, 10, 0, 0, 500000000, time.UTC)
	insertAt(base.Add(20*time.Millisecond), "newer")
	insertAt(base, "older")

	items, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Content != "newer" || items[1].Content != "older" {
		t.Fatalf("wrong order: [%q, %q]", items[0].Content, items[1].Content)
	}
	if !items[0].CreatedAt.After(items[1].CreatedAt) {
		t.Fatalf("parsed timestamps out of order: %v vs %v", items[0].CreatedAt, items[1].CreatedAt)
	}
}

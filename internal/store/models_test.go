package store_test

import (
	"testing"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want store.Status
		ok   bool
	}{
		{"new", store.StatusNew, true},
		{" Archived ", store.StatusArchived, true},
		{"DELETED", store.StatusDeleted, true},
		{"", "", false},
		{"pending", "", false},
	}
	for _, tc := range cases {
		got, ok := store.ParseStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseItemType(t *testing.T) {
	if got, ok := store.ParseItemType(" PDF "); !ok || got != store.TypePDF {
		t.Fatalf("ParseItemType: got (%q, %v)", got, ok)
	}
	if _, ok := store.ParseItemType("epub"); ok {
		t.Fatal("expected epub to be rejected")
	}
}

func TestJoinSplitTags(t *testing.T) {
	tags := []string{"Theology", "Actionable Task"}
	joined := store.JoinTags(tags)
	if joined != "Theology, Actionable Task" {
		t.Fatalf("unexpected join: %q", joined)
	}
	split := store.SplitTags(joined)
	if len(split) != 2 || split[0] != "Theology" || split[1] != "Actionable Task" {
		t.Fatalf("unexpected split: %#v", split)
	}
	if got := store.SplitTags("  "); got != nil {
		t.Fatalf("expected nil for blank tags, got %#v", got)
	}
}

func TestHasTag(t *testing.T) {
	item := store.Item{Tags: []string{"Medical", store.TagKnowledgeGrain}}
	if !item.HasTag("Medical") || item.HasTag(store.TagActionableTask) {
		t.Fatalf("unexpected HasTag behavior: %#v", item.Tags)
	}
}

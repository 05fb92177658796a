package postview

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/postview/corpus"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "postview.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	posts := []corpus.Post{
		{
			Title:   "First",
			Slug:    "first",
			Date:    corpus.ParseDate("2024-01-15"),
			Content: "alpha",
			Image:   &corpus.Image{Src: "/a.png", Alt: "a"},
			Tags:    []string{"go", "web", "go"},
		},
		{
			Title: "Broken Date",
			Slug:  "broken-date",
			Date:  corpus.ParseDate("not-a-date"),
		},
	}
	if err := s.SaveSnapshot(posts); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d posts, want 2", len(got))
	}
	first := got[0]
	if first.Title != "First" || first.Slug != "first" || first.Content != "alpha" {
		t.Errorf("first = %+v", first)
	}
	if !first.Date.Valid || first.Date.Raw != "2024-01-15" {
		t.Errorf("date should survive the round trip: %+v", first.Date)
	}
	if first.Image == nil || first.Image.Src != "/a.png" || first.Image.Alt != "a" {
		t.Errorf("image = %+v", first.Image)
	}
	if len(first.Tags) != 3 || first.Tags[2] != "go" {
		t.Errorf("tags (order and duplicates) should survive: %v", first.Tags)
	}

	second := got[1]
	if second.Date.Valid || second.Date.Raw != "not-a-date" {
		t.Errorf("invalid-date sentinel should survive: %+v", second.Date)
	}
	if second.Image != nil {
		t.Errorf("absent image should stay absent, got %+v", second.Image)
	}
}

func TestSnapshotReplacedWholesale(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveSnapshot([]corpus.Post{{Title: "Old", Slug: "old"}}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := s.SaveSnapshot([]corpus.Post{{Title: "New", Slug: "new"}}); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "New" {
		t.Errorf("snapshot should be replaced wholesale, got %+v", got)
	}
}

func TestLoadAuditLog(t *testing.T) {
	s := setupTestStore(t)

	records := []LoadRecord{
		{At: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), Source: "posts.json", Outcome: "ok", Posts: 4, Duration: 120 * time.Millisecond},
		{At: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC), Source: "posts.json", Outcome: "malformed", Error: "corpus: malformed input"},
	}
	for _, rec := range records {
		if err := s.RecordLoad(rec); err != nil {
			t.Fatalf("RecordLoad failed: %v", err)
		}
	}

	got, err := s.RecentLoads(10)
	if err != nil {
		t.Fatalf("RecentLoads failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Newest first.
	if got[0].Outcome != "malformed" || got[0].Error == "" {
		t.Errorf("newest record = %+v", got[0])
	}
	if got[1].Outcome != "ok" || got[1].Posts != 4 || got[1].Duration != 120*time.Millisecond {
		t.Errorf("oldest record = %+v", got[1])
	}
	if !got[1].At.Equal(records[0].At) {
		t.Errorf("timestamp = %v, want %v", got[1].At, records[0].At)
	}
}

func TestRecentLoadsLimit(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.RecordLoad(LoadRecord{At: time.Now(), Source: "posts.xml", Outcome: "ok"}); err != nil {
			t.Fatalf("RecordLoad failed: %v", err)
		}
	}
	got, err := s.RecentLoads(3)
	if err != nil {
		t.Fatalf("RecentLoads failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d records, want 3", len(got))
	}
}

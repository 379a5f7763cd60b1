package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(path string) *Record {
	now := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	return &Record{
		Path:       path,
		Filename:   filepath.Base(path),
		FileSize:   2048,
		Width:      800,
		Height:     600,
		Format:     "png",
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

func TestPutAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := testRecord("/photos/cat.png")
	record.SetTags([]string{"cat", "chair"})
	record.SetKeywords([]string{"brown", "warm"})
	record.SetCategories([]string{"art"})
	record.Description = "Subject: A cat."
	record.Rating = 4
	record.EXIF = map[string]string{"Make": "Canon"}
	record.SetProvenance("raw", "ollama", "llava:latest", "2026-02-10T08:30:00Z")
	record.MarkCached(time.Date(2026, 2, 10, 8, 31, 0, 0, time.UTC))

	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("expected ID assigned after Put")
	}

	got, err := store.Get(ctx, "/photos/cat.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored record")
	}
	if got.Filename != "cat.png" || got.Width != 800 || got.Format != "png" {
		t.Fatalf("file fields mismatch: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "cat" {
		t.Fatalf("Tags = %v", got.Tags)
	}
	if got.EXIF["Make"] != "Canon" {
		t.Fatalf("EXIF = %v", got.EXIF)
	}
	if got.AIProvider != "ollama" || got.AIModel != "llava:latest" {
		t.Fatalf("provenance mismatch: %+v", got)
	}
	if !got.Cached || got.CacheDate == nil {
		t.Fatalf("cache state mismatch: Cached=%v CacheDate=%v", got.Cached, got.CacheDate)
	}
	if !got.ModifiedAt.Equal(record.ModifiedAt) {
		t.Fatalf("ModifiedAt = %v, want %v", got.ModifiedAt, record.ModifiedAt)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "/photos/missing.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing record, got %+v", got)
	}
}

func TestPutUpsertsByPath(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testRecord("/photos/sunset.jpg")
	first.Rating = 2
	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("Put first: %v", err)
	}

	second := testRecord("/photos/sunset.jpg")
	second.Rating = 5
	second.Description = "updated"
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("Put second: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert changed ID: %d -> %d", first.ID, second.ID)
	}

	records, err := store.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if records[0].Rating != 5 || records[0].Description != "updated" {
		t.Fatalf("upsert did not apply: %+v", records[0])
	}
}

func TestSearchFiltersCombine(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testRecord("/photos/cat.png")
	cat.SetTags([]string{"cat", "indoor"})
	cat.Rating = 5
	dog := testRecord("/photos/dog.png")
	dog.SetTags([]string{"dog", "indoor"})
	dog.Rating = 2
	for _, record := range []*Record{cat, dog} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	results, err := store.Search(ctx, SearchFilter{Tags: []string{"indoor"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("tag search returned %d records, want 2", len(results))
	}
	if results[0].Path != "/photos/cat.png" {
		t.Fatalf("expected rating-descending order, got %s first", results[0].Path)
	}

	minRating := 3
	results, err = store.Search(ctx, SearchFilter{Tags: []string{"indoor"}, MinRating: &minRating})
	if err != nil {
		t.Fatalf("Search with rating: %v", err)
	}
	if len(results) != 1 || results[0].Path != "/photos/cat.png" {
		t.Fatalf("combined filter results = %v", results)
	}

	results, err = store.Search(ctx, SearchFilter{Tags: []string{"bird"}})
	if err != nil {
		t.Fatalf("Search no match: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %d", len(results))
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, testRecord("/photos/a.png")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	deleted, err := store.Delete(ctx, "/photos/a.png")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected deletion of existing record")
	}

	deleted, err = store.Delete(ctx, "/photos/a.png")
	if err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	if deleted {
		t.Fatal("expected false for already-deleted record")
	}
}

func TestStatsAggregation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := testRecord("/photos/a.png")
	a.Rating = 4
	a.MarkCached(time.Now().UTC())
	b := testRecord("/photos/b.jpg")
	b.Format = "jpeg"
	b.Rating = 2
	c := testRecord("/photos/c.png")
	for _, record := range []*Record{a, b, c} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalImages != 3 {
		t.Fatalf("TotalImages = %d", stats.TotalImages)
	}
	if stats.CachedImages != 1 {
		t.Fatalf("CachedImages = %d", stats.CachedImages)
	}
	if stats.AverageRating != 3.0 {
		t.Fatalf("AverageRating = %v", stats.AverageRating)
	}
	if stats.FormatCounts["png"] != 2 || stats.FormatCounts["jpeg"] != 1 {
		t.Fatalf("FormatCounts = %v", stats.FormatCounts)
	}
}

func TestCleanupCacheClearsStaleEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stale := testRecord("/photos/stale.png")
	stale.MarkCached(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	fresh := testRecord("/photos/fresh.png")
	fresh.MarkCached(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	for _, record := range []*Record{stale, fresh} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	cleared, err := store.CleanupCache(ctx, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CleanupCache: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("cleared = %d, want 1", cleared)
	}

	got, err := store.Get(ctx, "/photos/stale.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Cached || got.CacheDate != nil {
		t.Fatalf("stale record still cached: %+v", got)
	}

	got, err = store.Get(ctx, "/photos/fresh.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Cached {
		t.Fatal("fresh record lost cache flag")
	}
}

func TestClassificationCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	remote := testRecord("/photos/remote.png")
	remote.Classification = `{"api_used":"ollama","model":"llava:latest"}`
	local := testRecord("/photos/local.png")
	local.Classification = `{"api_used":"local","model":"heuristic"}`
	local2 := testRecord("/photos/local2.png")
	local2.Classification = `{"api_used":"local","model":"heuristic"}`
	none := testRecord("/photos/none.png")
	for _, record := range []*Record{remote, local, local2, none} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	counts, err := store.ClassificationCounts(ctx)
	if err != nil {
		t.Fatalf("ClassificationCounts: %v", err)
	}
	if counts["ollama"] != 1 || counts["local"] != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if _, ok := counts[""]; ok {
		t.Fatal("empty provider key should not appear")
	}
}

func TestSchemaVersionMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(dbPath); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}

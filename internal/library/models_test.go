package library

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeListDropsEmptyAndDuplicates(t *testing.T) {
	got := NormalizeList([]string{"cat", "", "  ", "dog", "cat", "dog", "bird"})
	want := []string{"cat", "dog", "bird"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeList = %v, want %v", got, want)
	}
}

func TestNormalizeListEmptyInput(t *testing.T) {
	if got := NormalizeList(nil); got != nil {
		t.Fatalf("NormalizeList(nil) = %v, want nil", got)
	}
	if got := NormalizeList([]string{"", "  "}); len(got) != 0 {
		t.Fatalf("NormalizeList(blanks) = %v, want empty", got)
	}
}

func TestMarkCachedAndClearCached(t *testing.T) {
	record := &Record{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	record.MarkCached(now)
	if !record.Cached {
		t.Fatal("expected Cached true after MarkCached")
	}
	if record.CacheDate == nil || !record.CacheDate.Equal(now) {
		t.Fatalf("CacheDate = %v, want %v", record.CacheDate, now)
	}

	record.ClearCached()
	if record.Cached || record.CacheDate != nil {
		t.Fatalf("expected cleared cache state, got Cached=%v CacheDate=%v", record.Cached, record.CacheDate)
	}
}

func TestProvenanceLifecycle(t *testing.T) {
	record := &Record{}
	if record.HasProvenance() {
		t.Fatal("new record should have no provenance")
	}

	record.SetProvenance("raw text", "ollama", "llava:latest", "2026-03-01T12:00:00Z")
	if !record.HasProvenance() {
		t.Fatal("expected provenance after SetProvenance")
	}
	if record.AIModel != "llava:latest" {
		t.Fatalf("AIModel = %q", record.AIModel)
	}

	record.ClearProvenance()
	if record.HasProvenance() || record.AIRaw != "" || record.AITimestamp != "" {
		t.Fatal("expected all provenance fields cleared")
	}
}

package library

import (
	"strings"
	"time"
)

// Record represents one image's metadata row.
//
// Invariants maintained by the helpers below:
//   - CacheDate is non-nil iff Cached is true.
//   - Tags/Keywords/Categories contain no empty strings and no duplicates,
//     in insertion order.
//   - AIRaw/AIProvider/AIModel/AITimestamp are populated together when a
//     remote classification is applied and cleared together otherwise.
type Record struct {
	ID         int64
	Path       string
	Filename   string
	FileSize   int64
	Width      int
	Height     int
	Format     string
	CreatedAt  time.Time
	ModifiedAt time.Time

	EXIF map[string]string

	Rating      int
	Description string
	Tags        []string
	Keywords    []string
	Categories  []string

	// Classification holds the full structured result blob as JSON.
	Classification string
	AIRaw          string
	AIProvider     string
	AIModel        string
	AITimestamp    string

	// Embedding is opaque pass-through; nothing in the pipeline writes it.
	Embedding []float64

	Cached    bool
	CacheDate *time.Time
	AddedAt   time.Time
}

// NormalizeList drops empty strings and exact duplicates, preserving
// first-seen order.
func NormalizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// SetTags replaces the tag list, enforcing the list invariant.
func (r *Record) SetTags(items []string) { r.Tags = NormalizeList(items) }

// SetKeywords replaces the keyword list, enforcing the list invariant.
func (r *Record) SetKeywords(items []string) { r.Keywords = NormalizeList(items) }

// SetCategories replaces the category list, enforcing the list invariant.
func (r *Record) SetCategories(items []string) { r.Categories = NormalizeList(items) }

// SetProvenance records the remote call that produced the current
// classification. All four fields are set together.
func (r *Record) SetProvenance(raw, provider, model, timestamp string) {
	r.AIRaw = raw
	r.AIProvider = provider
	r.AIModel = model
	r.AITimestamp = timestamp
}

// ClearProvenance removes remote-call attribution, used when classification
// falls back to the local heuristic.
func (r *Record) ClearProvenance() {
	r.AIRaw = ""
	r.AIProvider = ""
	r.AIModel = ""
	r.AITimestamp = ""
}

// HasProvenance reports whether the record carries remote attribution.
func (r *Record) HasProvenance() bool {
	return r.AIProvider != ""
}

// MarkCached flags the record as holding an applied classification.
func (r *Record) MarkCached(now time.Time) {
	r.Cached = true
	t := now
	r.CacheDate = &t
}

// ClearCached invalidates the cached classification.
func (r *Record) ClearCached() {
	r.Cached = false
	r.CacheDate = nil
}

// Stats aggregates library-wide counts for diagnostic output.
type Stats struct {
	TotalImages   int
	CachedImages  int
	AverageRating float64
	FormatCounts  map[string]int
}

// SearchFilter describes the criteria accepted by Store.Search.
// Zero-value fields are ignored.
type SearchFilter struct {
	Tags       []string
	Keywords   []string
	Categories []string
	MinRating  *int
}

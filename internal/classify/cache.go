package classify

import (
	"time"

	"pictura/internal/library"
)

// CacheValid reports whether a record's applied classification is still
// fresh: the cache flag is set, a cache date exists, and its age is within
// the window.
func CacheValid(record *library.Record, window time.Duration, now time.Time) bool {
	if record == nil || !record.Cached || record.CacheDate == nil {
		return false
	}
	return now.Sub(*record.CacheDate) < window
}

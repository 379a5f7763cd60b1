// Package library persists per-image metadata records in SQLite.
//
// The store owns the record shape exchanged with the classification
// pipeline: identity and file properties, editable metadata (rating,
// description, tag/keyword/category lists), AI provenance, and the cache
// flag pair used for freshness checks. Records are keyed by absolute file
// path.
package library

// Package classify turns captioning-service output and pixel statistics
// into applied image metadata.
//
// The orchestrator tries a structured slot prompt first, falls back to a
// legacy five-line prompt when the slot response is incomplete, and finally
// derives a description from local pixel statistics when the service cannot
// be reached at all. Every successful path marks the record cached so later
// lookups inside the freshness window skip the service.
package classify

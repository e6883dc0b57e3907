// Package candidate defines the data model shared by every pipeline stage.
//
// An EventCandidate is the raw, immutable unit of work produced by a venue
// collector. The pipeline never mutates a candidate; accepted candidates are
// turned into NormalizedEvent records carrying the parsed date range, the
// score breakdown, and a deterministic SHA1-based ID for idempotent upserts
// downstream.
package candidate

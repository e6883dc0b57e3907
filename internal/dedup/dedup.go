// Package dedup collapses repeated candidates across extraction passes.
//
// Collectors often emit the same event several times: once per listing page,
// once per detail page, once per structured-data block. Dedup keeps the first
// occurrence and drops the rest, keyed both by identity key and by canonical
// URL. The double key is deliberately conservative: it prefers removing true
// duplicates at the cost of occasionally dropping two distinct events that
// happen to share a URL.
package dedup

import (
	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/identity"
)

// Deduper removes duplicate candidates in a single ordered pass. Not safe for
// concurrent use; run it over the full candidate set before any fan-out.
type Deduper struct {
	baseURL string
}

// New creates a Deduper that resolves candidate URLs against baseURL.
func New(baseURL string) *Deduper {
	return &Deduper{baseURL: baseURL}
}

// Dedupe returns the candidates with duplicates removed. Order is preserved
// and the first occurrence wins. A candidate is dropped when its identity key
// was already seen, or when its non-empty canonical URL was already seen.
// Idempotent: running Dedupe on its own output changes nothing.
func (d *Deduper) Dedupe(candidates []candidate.EventCandidate) []candidate.EventCandidate {
	seenKeys := make(map[string]bool, len(candidates))
	seenURLs := make(map[string]bool, len(candidates))

	unique := make([]candidate.EventCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := identity.Key(c.Title, c.RawDateText)
		if seenKeys[key] {
			continue
		}

		canonical := identity.CanonicalURL(c.URL, d.baseURL)
		if canonical != "" && seenURLs[canonical] {
			continue
		}

		seenKeys[key] = true
		if canonical != "" {
			seenURLs[canonical] = true
		}
		unique = append(unique, c)
	}

	return unique
}

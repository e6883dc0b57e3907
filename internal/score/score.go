// Package score computes the two-part quality score for event candidates.
//
// The detail score measures completeness: is there enough data (URL,
// description, date, image, category) to publish? The authenticity score
// measures plausibility: does the text actually reference the venue, its
// programs, or its domain vocabulary, rather than being a scraped nav or
// footer fragment? Keeping the two separate lets the gate threshold them
// differently per candidate type.
package score

import (
	"net/url"
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
)

// Scorer scores candidates against one venue's configuration.
type Scorer struct {
	cfg    *config.Venue
	domain string
}

// New creates a Scorer for the venue.
func New(cfg *config.Venue) *Scorer {
	return &Scorer{cfg: cfg, domain: cfg.Domain()}
}

// Score computes the breakdown for a candidate and its normalized date.
// MinimumRequired is left zero; the gate fills it in from context.
func (s *Scorer) Score(c candidate.EventCandidate, dr candidate.DateRange) candidate.ScoreBreakdown {
	return candidate.ScoreBreakdown{
		Detail:       s.detailScore(c, dr),
		Authenticity: s.authenticityScore(c),
	}
}

func (s *Scorer) detailScore(c candidate.EventCandidate, dr candidate.DateRange) int {
	points := 0

	if c.URL != "" {
		if s.OnVenueDomain(c.URL) {
			points += 3
		} else {
			points++
		}
	}

	switch descLen := len(strings.TrimSpace(c.Description)); {
	case descLen > 150:
		points += 3
	case descLen > 50:
		points += 2
	case descLen > 0:
		points++
	}

	if !dr.Start.IsZero() {
		points += 2
	}
	if !dr.End.IsZero() {
		points++
	}

	if c.ImageURL != "" {
		if s.OnVenueDomain(c.ImageURL) {
			points += 2
		} else {
			points++
		}
	}

	if c.Category != "" {
		points++
	}

	return points
}

func (s *Scorer) authenticityScore(c candidate.EventCandidate) int {
	points := 0
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	venue := strings.ToLower(s.cfg.VenueName)

	// Venue mentions in the title are a stronger signal than in the body.
	if venue != "" {
		switch {
		case strings.Contains(title, venue):
			points += 5
		case strings.Contains(desc, venue):
			points += 3
		case s.domain != "" && (strings.Contains(title, s.domain) || strings.Contains(desc, s.domain)):
			points += 2
		}
	}

	for _, program := range s.cfg.ProgramNames {
		p := strings.ToLower(program)
		if p != "" && (strings.Contains(title, p) || strings.Contains(desc, p)) {
			points += 3
		}
	}

	// Generic keywords only count with at least two independent hits, so one
	// incidental word cannot inflate the score.
	if hits := s.KeywordHits(c); hits >= 2 {
		points += hits
	}

	return points
}

// KeywordHits counts distinct configured keywords appearing in the title or
// description.
func (s *Scorer) KeywordHits(c candidate.EventCandidate) int {
	text := strings.ToLower(c.Title + " " + c.Description)
	hits := 0
	for _, kw := range s.cfg.Keywords {
		k := strings.ToLower(kw)
		if k != "" && strings.Contains(text, k) {
			hits++
		}
	}
	return hits
}

// OnVenueDomain reports whether rawURL is hosted on the venue's own domain.
// Relative URLs count as on-domain since they resolve against the base URL.
func (s *Scorer) OnVenueDomain(rawURL string) bool {
	if s.domain == "" || rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return true
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == s.domain || strings.HasSuffix(host, "."+s.domain)
}

// StrongBrandSignal reports whether the title carries an unmistakable venue
// or program reference.
func (s *Scorer) StrongBrandSignal(c candidate.EventCandidate) bool {
	title := strings.ToLower(c.Title)
	if venue := strings.ToLower(s.cfg.VenueName); venue != "" && strings.Contains(title, venue) {
		return true
	}
	for _, program := range s.cfg.ProgramNames {
		if p := strings.ToLower(program); p != "" && strings.Contains(title, p) {
			return true
		}
	}
	return false
}

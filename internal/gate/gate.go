// Package gate makes the accept/reject decision for each candidate.
//
// Hard rejection rules run first and short-circuit: placeholder titles,
// navigation fragments, synthetic filler, out-of-range dates, suspicious
// hosts. Candidates that survive face a context-sensitive score threshold.
// The gate fails closed: a rejected candidate is excluded with a recorded
// reason, never replaced with a synthesized substitute.
package gate

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/datetext"
	"github.com/hann12-34/discovr-pipeline/internal/identity"
	"github.com/hann12-34/discovr-pipeline/internal/score"
)

const minTitleLength = 6

var (
	loremPattern       = regexp.MustCompile(`(?i)\blorem\s+ipsum\b|\bdolor\s+sit\s+amet\b`)
	templatePattern    = regexp.MustCompile(`\{\{.*?\}\}|\[\[.*?\]\]|\$\{.*?\}|\[(?i:title|date|description|placeholder)\]`)
	boilerplatePattern = regexp.MustCompile(`(?i)don'?t\s+miss\s+this\s+event|check\s+back\s+(soon|later)|more\s+(details|info(rmation)?)\s+(coming|to\s+come)|description\s+coming\s+soon`)
	wordPattern        = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// ValidationResult is the total outcome of validating one candidate.
type ValidationResult struct {
	Accepted bool                       `json:"accepted"`
	Event    *candidate.NormalizedEvent `json:"event,omitempty"`
	Reason   Reason                     `json:"reason,omitempty"`
	Score    candidate.ScoreBreakdown   `json:"score"`
}

// Gate applies the rejection rules and score thresholds for one venue.
type Gate struct {
	// Now is injectable for deterministic tests. Defaults to time.Now.
	Now func() time.Time

	cfg    *config.Venue
	scorer *score.Scorer
	stats  *Stats
}

// New creates a Gate. A nil config is a collector contract violation and
// panics.
func New(cfg *config.Venue, scorer *score.Scorer, stats *Stats) *Gate {
	if cfg == nil {
		panic("gate: nil config")
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Gate{Now: time.Now, cfg: cfg, scorer: scorer, stats: stats}
}

// Stats returns the rejection statistics accumulated so far.
func (g *Gate) Stats() *Stats {
	return g.stats
}

// Validate decides whether a candidate becomes a publishable event. dateOK is
// the normalizer's verdict; dr may be populated even when dateOK is false if
// a date was parsed but failed the sanity bounds.
func (g *Gate) Validate(c candidate.EventCandidate, dr candidate.DateRange, dateOK bool, sb candidate.ScoreBreakdown) ValidationResult {
	if reason, rejected := g.hardReject(c, dr, dateOK); rejected {
		g.stats.AddRejected(reason)
		return ValidationResult{Reason: reason, Score: sb}
	}

	sb.MinimumRequired = g.minimumRequired(c)
	if sb.Total() < sb.MinimumRequired {
		g.stats.AddRejected(InsufficientScore)
		return ValidationResult{Reason: InsufficientScore, Score: sb}
	}

	g.stats.AddAccepted()
	return ValidationResult{
		Accepted: true,
		Event:    g.assemble(c, dr, sb),
		Score:    sb,
	}
}

// hardReject runs the short-circuiting rejection rules in order.
func (g *Gate) hardReject(c candidate.EventCandidate, dr candidate.DateRange, dateOK bool) (Reason, bool) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return MissingTitle, true
	}

	if g.isPlaceholderTitle(title) {
		return PlaceholderTitle, true
	}

	if len(title) < minTitleLength && !g.scorer.OnVenueDomain(c.URL) {
		return TitleTooShort, true
	}

	if g.containsNavigationTerm(c.Title) || g.containsNavigationTerm(c.Description) {
		return NavigationContent, true
	}

	if dr.IsZero() && !c.IsExhibit {
		return MissingDate, true
	}

	if isSyntheticContent(c.Description) {
		return SyntheticContent, true
	}

	// Re-check the sanity bounds here: a range can reach the gate through a
	// relaxed path (exhibit parses reused for a timed event) or fail them in
	// the normalizer, which reports the parsed range with dateOK=false.
	if !dr.IsZero() && !c.IsExhibit {
		if !dateOK || !g.withinBounds(dr.Start) {
			return InvalidDateRange, true
		}
	}

	if g.onSuspiciousHost(c.URL) {
		return SuspiciousURL, true
	}
	if g.onSuspiciousHost(c.ImageURL) {
		return SuspiciousImage, true
	}

	if len(title) > 10 && isAllUpper(title) {
		return ExcessiveCapitalization, true
	}

	if !c.IsExhibit && g.scorer.KeywordHits(c) == 0 && !g.scorer.StrongBrandSignal(c) {
		// With zero domain signal only unusually complete candidates survive.
		if sb := g.scorer.Score(c, dr); sb.Detail < g.cfg.EventMinScore+2 {
			return UnrelatedContent, true
		}
	}

	return "", false
}

// minimumRequired computes the context-sensitive score threshold. Exhibits
// face a higher bar, off-domain URLs raise it further, and an unmistakable
// brand signal in the title lowers it to the configured floor.
func (g *Gate) minimumRequired(c candidate.EventCandidate) int {
	minimum := g.cfg.EventMinScore
	if c.IsExhibit {
		minimum = g.cfg.ExhibitMinScore
	}

	if c.URL != "" && !g.scorer.OnVenueDomain(c.URL) {
		minimum += g.cfg.OffsitePenalty
	}

	if g.scorer.StrongBrandSignal(c) && g.cfg.StrongBrandFloor < minimum {
		minimum = g.cfg.StrongBrandFloor
	}

	return minimum
}

func (g *Gate) assemble(c candidate.EventCandidate, dr candidate.DateRange, sb candidate.ScoreBreakdown) *candidate.NormalizedEvent {
	location := c.Location
	if location == "" {
		location = g.cfg.VenueName
	}

	eventURL := identity.CanonicalURL(c.URL, g.cfg.BaseURL)
	if eventURL == "" {
		eventURL = c.URL
	}

	return &candidate.NormalizedEvent{
		ID:          candidate.GenerateID(c.SourceVenue, c.Title, c.RawDateText),
		IdentityKey: identity.Key(c.Title, c.RawDateText),
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		URL:         eventURL,
		ImageURL:    c.ImageURL,
		Location:    location,
		Category:    c.Category,
		IsExhibit:   c.IsExhibit,
		SourceVenue: c.SourceVenue,
		Date:        dr,
		Score:       sb,
	}
}

func (g *Gate) isPlaceholderTitle(title string) bool {
	key := identity.TitleKey(title)
	for _, placeholder := range g.cfg.PlaceholderTitles {
		if key == identity.TitleKey(placeholder) {
			return true
		}
	}
	return false
}

func (g *Gate) containsNavigationTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range g.cfg.NavigationTerms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func (g *Gate) withinBounds(start time.Time) bool {
	now := g.Now().UTC()
	if start.Before(now.AddDate(-datetext.MaxPastYears, 0, 0)) {
		return false
	}
	return !start.After(now.AddDate(datetext.MaxFutureYears, 0, 0))
}

func (g *Gate) onSuspiciousHost(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, suspicious := range g.cfg.SuspiciousHosts {
		sh := strings.ToLower(suspicious)
		if host == sh || strings.HasSuffix(host, "."+sh) {
			return true
		}
	}
	return false
}

// isSyntheticContent reports whether a non-empty description looks generated
// rather than written: lorem-ipsum filler, unexpanded template placeholders,
// stock boilerplate, or fewer than five substantial words.
func isSyntheticContent(description string) bool {
	text := strings.TrimSpace(description)
	if text == "" {
		return false
	}

	if loremPattern.MatchString(text) || templatePattern.MatchString(text) || boilerplatePattern.MatchString(text) {
		return true
	}

	substantial := 0
	for _, word := range wordPattern.FindAllString(text, -1) {
		if len(word) > 4 {
			substantial++
		}
	}
	return substantial < 5
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

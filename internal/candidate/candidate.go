package candidate

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// EventCandidate is an unvalidated event record extracted from a venue page.
type EventCandidate struct {
	Title       string `json:"title"`
	RawDateText string `json:"raw_date_text"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Location    string `json:"location,omitempty"`
	Category    string `json:"category,omitempty"`
	IsExhibit   bool   `json:"is_exhibit,omitempty"`
	SourceVenue string `json:"source_venue"`
}

// DateRange is a normalized date window. Start and End are either both set or
// both zero; End is never before Start.
type DateRange struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Ongoing bool      `json:"ongoing,omitempty"`
}

// IsZero reports whether no date information was extracted.
func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() && dr.End.IsZero()
}

// Duration returns End minus Start, or zero for an empty range.
func (dr DateRange) Duration() time.Duration {
	if dr.IsZero() {
		return 0
	}
	return dr.End.Sub(dr.Start)
}

// ScoreBreakdown separates completeness (Detail) from plausibility
// (Authenticity) so the gate can threshold them independently.
type ScoreBreakdown struct {
	Detail          int `json:"detail"`
	Authenticity    int `json:"authenticity"`
	MinimumRequired int `json:"minimum_required"`
}

// Total returns the combined points compared against MinimumRequired.
func (sb ScoreBreakdown) Total() int {
	return sb.Detail + sb.Authenticity
}

// NormalizedEvent is an accepted candidate with its derived fields attached.
type NormalizedEvent struct {
	ID          string         `json:"id"`
	IdentityKey string         `json:"identity_key"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	ImageURL    string         `json:"image_url,omitempty"`
	Location    string         `json:"location,omitempty"`
	Category    string         `json:"category,omitempty"`
	IsExhibit   bool           `json:"is_exhibit,omitempty"`
	SourceVenue string         `json:"source_venue"`
	Date        DateRange      `json:"date"`
	Score       ScoreBreakdown `json:"score"`
}

// GenerateID creates a deterministic ID for a candidate based on stable fields
func GenerateID(sourceVenue, title, rawDateText string) string {
	h := sha1.New()
	h.Write([]byte(sourceVenue + "|" + title + "|" + rawDateText))
	return fmt.Sprintf("%x", h.Sum(nil))
}

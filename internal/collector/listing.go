package collector

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
)

// Selectors tried in order for each field of a listing item. Venue markup
// varies; the first non-empty match wins.
var (
	itemSelectors  = []string{".event", ".event-item", "article", ".card", "li.event"}
	titleSelectors = []string{"h1", "h2", "h3", ".title", ".event-title", "a"}
	dateSelectors  = []string{"time", ".date", ".event-date", ".dates"}
	descSelectors  = []string{".description", ".summary", "p"}

	exhibitPattern = regexp.MustCompile(`(?i)\b(exhibit|exhibition|on\s+view|gallery)\b`)

	// Date-looking fragments pulled from titles or free text when no date
	// element exists.
	embeddedDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?:\s*(?:-|–|to)\s*\d{4}-\d{2}-\d{2})?`),
		regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?(?:\s*(?:-|–|through|to)\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?)?`),
		regexp.MustCompile(`\d{1,2}[/.]\d{1,2}[/.]\d{2,4}`),
		regexp.MustCompile(`(?i)every\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?`),
	}
)

// ParseListing extracts event candidates from a saved HTML listing page.
// Extraction is best-effort: items with no recognizable title are skipped,
// and no validation happens here; that is the pipeline's job.
func ParseListing(r io.Reader, cfg *config.Venue) ([]candidate.EventCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Overlapping selectors can match the same node; key on the underlying
	// node so each item is extracted once. Cross-item duplicates are the
	// pipeline deduplicator's job.
	var candidates []candidate.EventCandidate
	seen := make(map[*html.Node]bool)

	for _, selector := range itemSelectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true

			c, ok := extractItem(sel, cfg)
			if ok {
				candidates = append(candidates, c)
			}
		})
	}

	return candidates, nil
}

func extractItem(sel *goquery.Selection, cfg *config.Venue) (candidate.EventCandidate, bool) {
	title := firstText(sel, titleSelectors)
	if title == "" {
		return candidate.EventCandidate{}, false
	}

	dateText := firstText(sel, dateSelectors)
	if dateText == "" {
		if dt, ok := sel.Find("time").Attr("datetime"); ok {
			dateText = dt
		}
	}
	if dateText == "" {
		dateText = extractEmbeddedDate(sel.Text())
	}

	url, _ := sel.Find("a").First().Attr("href")
	imageURL, _ := sel.Find("img").First().Attr("src")
	description := firstText(sel, descSelectors)

	combined := title + " " + description
	return candidate.EventCandidate{
		Title:       title,
		RawDateText: strings.TrimSpace(dateText),
		Description: description,
		URL:         url,
		ImageURL:    imageURL,
		IsExhibit:   exhibitPattern.MatchString(combined),
		SourceVenue: cfg.VenueName,
	}, true
}

// firstText returns the trimmed text of the first selector with content.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractEmbeddedDate pulls a date-looking fragment out of free text.
func extractEmbeddedDate(text string) string {
	for _, pattern := range embeddedDatePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

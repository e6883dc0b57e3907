package gate

import (
	"testing"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/score"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestGate() *Gate {
	cfg := testConfig()
	g := New(cfg, score.New(cfg), NewStats())
	g.Now = func() time.Time { return fixedNow }
	return g
}

func testConfig() *config.Venue {
	cfg := config.Default()
	cfg.VenueName = "City Gallery"
	cfg.BaseURL = "https://citygallery.org"
	cfg.ProgramNames = []string{"First Fridays"}
	cfg.Keywords = []string{"exhibition", "gallery", "artist", "opening", "painting"}
	return cfg
}

func futureDate(days int) candidate.DateRange {
	start := fixedNow.AddDate(0, 0, days)
	return candidate.DateRange{Start: start, End: start}
}

// goodCandidate builds a candidate that passes every rule.
func goodCandidate() candidate.EventCandidate {
	return candidate.EventCandidate{
		Title:       "City Gallery Summer Exhibition",
		RawDateText: "June 8, 2025",
		Description: "A new exhibition of contemporary painting featuring twelve regional artists, with an opening reception in the main gallery space.",
		URL:         "https://citygallery.org/events/summer-exhibition",
		ImageURL:    "https://citygallery.org/img/summer.jpg",
		Category:    "exhibition",
		SourceVenue: "city-gallery",
	}
}

func TestValidate_Accepts(t *testing.T) {
	g := newTestGate()
	c := goodCandidate()
	dr := futureDate(90)

	sb := score.New(testConfig()).Score(c, dr)
	res := g.Validate(c, dr, true, sb)

	if !res.Accepted {
		t.Fatalf("Validate() rejected a good candidate: %s", res.Reason)
	}
	if res.Event == nil {
		t.Fatal("accepted result missing event")
	}
	if res.Event.Title == "" {
		t.Error("accepted event has empty title")
	}
	if res.Event.ID == "" || res.Event.IdentityKey == "" {
		t.Error("accepted event missing identity fields")
	}
	if res.Event.Score.MinimumRequired == 0 {
		t.Error("accepted event missing computed threshold")
	}
	if g.Stats().Accepted() != 1 {
		t.Errorf("stats accepted = %d, want 1", g.Stats().Accepted())
	}
}

func TestValidate_HardRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*candidate.EventCandidate)
		dr     func() (candidate.DateRange, bool)
		want   Reason
	}{
		{
			name:   "Empty title",
			mutate: func(c *candidate.EventCandidate) { c.Title = "   " },
			want:   MissingTitle,
		},
		{
			name:   "Placeholder title",
			mutate: func(c *candidate.EventCandidate) { c.Title = "Read More" },
			want:   PlaceholderTitle,
		},
		{
			name: "Short title with off-domain URL",
			mutate: func(c *candidate.EventCandidate) {
				c.Title = "Gala"
				c.URL = "https://eventbrite.com/e/gala"
			},
			want: TitleTooShort,
		},
		{
			name: "Navigation text in description",
			mutate: func(c *candidate.EventCandidate) {
				c.Description = "Sign in to your account to view our privacy policy."
			},
			want: NavigationContent,
		},
		{
			name:   "No date on a non-exhibit",
			mutate: func(c *candidate.EventCandidate) {},
			dr:     func() (candidate.DateRange, bool) { return candidate.DateRange{}, false },
			want:   MissingDate,
		},
		{
			name: "Lorem ipsum filler",
			mutate: func(c *candidate.EventCandidate) {
				c.Description = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."
			},
			want: SyntheticContent,
		},
		{
			name: "Unexpanded template placeholder",
			mutate: func(c *candidate.EventCandidate) {
				c.Description = "Join us for {{event_name}} at the gallery this weekend season."
			},
			want: SyntheticContent,
		},
		{
			name: "Generic boilerplate",
			mutate: func(c *candidate.EventCandidate) {
				c.Description = "Don't miss this event! More details coming soon to the website."
			},
			want: SyntheticContent,
		},
		{
			name: "Too few substantial words",
			mutate: func(c *candidate.EventCandidate) {
				c.Description = "Fun for all at the show"
			},
			want: SyntheticContent,
		},
		{
			name:   "Date five years out",
			mutate: func(c *candidate.EventCandidate) {},
			dr: func() (candidate.DateRange, bool) {
				start := fixedNow.AddDate(5, 0, 0)
				return candidate.DateRange{Start: start, End: start}, false
			},
			want: InvalidDateRange,
		},
		{
			name:   "Date past bounds with ok verdict is still rejected",
			mutate: func(c *candidate.EventCandidate) {},
			dr: func() (candidate.DateRange, bool) {
				start := fixedNow.AddDate(-2, 0, 0)
				return candidate.DateRange{Start: start, End: start}, true
			},
			want: InvalidDateRange,
		},
		{
			name: "Suspicious URL host",
			mutate: func(c *candidate.EventCandidate) {
				c.URL = "https://example.com/events/summer"
			},
			want: SuspiciousURL,
		},
		{
			name: "Suspicious image host",
			mutate: func(c *candidate.EventCandidate) {
				c.ImageURL = "https://via.placeholder.com/300x200"
			},
			want: SuspiciousImage,
		},
		{
			name: "All-caps long title",
			mutate: func(c *candidate.EventCandidate) {
				c.Title = "SUMMER EXHIBITION AT THE GALLERY"
			},
			want: ExcessiveCapitalization,
		},
		{
			name: "No domain signal at all",
			mutate: func(c *candidate.EventCandidate) {
				c.Title = "Quarterly Shareholder Meeting"
				c.Description = "Agenda items include budget review and committee formation for departments."
				c.URL = ""
				c.ImageURL = ""
				c.Category = ""
			},
			want: UnrelatedContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGate()
			c := goodCandidate()
			tt.mutate(&c)

			dr, ok := futureDate(90), true
			if tt.dr != nil {
				dr, ok = tt.dr()
			}

			sb := score.New(testConfig()).Score(c, dr)
			res := g.Validate(c, dr, ok, sb)

			if res.Accepted {
				t.Fatalf("Validate() accepted, want rejection %s", tt.want)
			}
			if res.Reason != tt.want {
				t.Errorf("Reason = %s, want %s", res.Reason, tt.want)
			}
			if g.Stats().Count(tt.want) != 1 {
				t.Errorf("stats count for %s = %d, want 1", tt.want, g.Stats().Count(tt.want))
			}
		})
	}
}

func TestValidate_PlaceholderOrSynthetic(t *testing.T) {
	// The classic scraped-fragment candidate is attributable to exactly one
	// reason, checked in rule order.
	g := newTestGate()
	c := candidate.EventCandidate{
		Title:       "Event",
		RawDateText: "June 8, 2025",
		Description: "Lorem ipsum dolor sit amet",
	}

	res := g.Validate(c, futureDate(90), true, candidate.ScoreBreakdown{})
	if res.Accepted {
		t.Fatal("Validate() accepted placeholder candidate")
	}
	if res.Reason != PlaceholderTitle && res.Reason != SyntheticContent {
		t.Errorf("Reason = %s, want PlaceholderTitle or SyntheticContent", res.Reason)
	}
}

func TestValidate_ShortTitleOnVenueDomainAllowed(t *testing.T) {
	g := newTestGate()
	c := goodCandidate()
	c.Title = "Gala"
	c.URL = "https://citygallery.org/events/gala"

	res := g.Validate(c, futureDate(90), true, score.New(testConfig()).Score(c, futureDate(90)))
	if res.Reason == TitleTooShort {
		t.Error("short title with an own-domain URL should not be rejected for length")
	}
}

func TestValidate_InsufficientScore(t *testing.T) {
	g := newTestGate()
	// One keyword hit clears the relevance rule but earns no authenticity
	// points; with no URL or image the detail score stays under the bar.
	c := candidate.EventCandidate{
		Title:       "Jazz evening downtown",
		RawDateText: "June 8, 2025",
		Description: "Quartet performing standards near the gallery district tonight.",
	}

	dr := futureDate(90)
	sb := score.New(testConfig()).Score(c, dr)
	res := g.Validate(c, dr, true, sb)

	if res.Accepted {
		t.Fatalf("candidate scored %d, expected below threshold", sb.Total())
	}
	if res.Reason != InsufficientScore {
		t.Errorf("Reason = %s, want InsufficientScore", res.Reason)
	}
	if res.Score.MinimumRequired == 0 {
		t.Error("threshold should be recorded on the rejection")
	}
}

func TestMinimumRequired(t *testing.T) {
	g := newTestGate()

	event := goodCandidate()
	base := g.minimumRequired(event)
	if base != g.cfg.EventMinScore {
		t.Errorf("event minimum = %d, want %d", base, g.cfg.EventMinScore)
	}

	exhibit := goodCandidate()
	exhibit.IsExhibit = true
	if got := g.minimumRequired(exhibit); got != g.cfg.ExhibitMinScore {
		t.Errorf("exhibit minimum = %d, want %d", got, g.cfg.ExhibitMinScore)
	}

	offsite := goodCandidate()
	offsite.Title = "Summer Painting Workshop"
	offsite.URL = "https://eventbrite.com/e/workshop"
	if got := g.minimumRequired(offsite); got != g.cfg.EventMinScore+g.cfg.OffsitePenalty {
		t.Errorf("offsite minimum = %d, want %d", got, g.cfg.EventMinScore+g.cfg.OffsitePenalty)
	}

	// A strong brand signal lowers the bar to the floor, even off-domain.
	branded := goodCandidate()
	branded.URL = "https://eventbrite.com/e/city-gallery-gala"
	if got := g.minimumRequired(branded); got != g.cfg.StrongBrandFloor {
		t.Errorf("branded minimum = %d, want floor %d", got, g.cfg.StrongBrandFloor)
	}
}

func TestValidate_ExhibitMayLackDate(t *testing.T) {
	g := newTestGate()
	c := goodCandidate()
	c.IsExhibit = true
	c.RawDateText = ""

	dr := candidate.DateRange{}
	sb := score.New(testConfig()).Score(c, dr)
	res := g.Validate(c, dr, true, sb)

	if !res.Accepted {
		t.Fatalf("dateless exhibit rejected: %s", res.Reason)
	}
	if !res.Event.Date.IsZero() {
		t.Error("exhibit date should stay empty")
	}
}

func TestValidate_LocationDefaultsToVenue(t *testing.T) {
	g := newTestGate()
	c := goodCandidate()
	c.Location = ""

	dr := futureDate(90)
	res := g.Validate(c, dr, true, score.New(testConfig()).Score(c, dr))
	if !res.Accepted {
		t.Fatalf("rejected: %s", res.Reason)
	}
	if res.Event.Location != "City Gallery" {
		t.Errorf("Location = %q, want venue name", res.Event.Location)
	}
}

func TestIsSyntheticContent(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want bool
	}{
		{"Empty description is not synthetic", "", false},
		{"Real description", "A survey of twentieth-century landscape painting drawn from the permanent collection.", false},
		{"Lorem ipsum", "lorem ipsum dolor sit amet", true},
		{"Template var", "Welcome to ${venue} for another great night", true},
		{"Bracket placeholder", "[TITLE] happening this weekend at the gallery downtown space", true},
		{"Sparse words", "a b c d e f g", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSyntheticContent(tt.desc); got != tt.want {
				t.Errorf("isSyntheticContent(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestIsAllUpper(t *testing.T) {
	if !isAllUpper("SUMMER EXHIBITION 2025") {
		t.Error("digits should not break the all-upper check")
	}
	if isAllUpper("Summer EXHIBITION") {
		t.Error("mixed case is not all-upper")
	}
	if isAllUpper("2025!") {
		t.Error("no letters means not all-upper")
	}
}

func TestStats(t *testing.T) {
	s := NewStats()
	s.AddAccepted()
	s.AddRejected(MissingDate)
	s.AddRejected(MissingDate)
	s.AddRejected(PlaceholderTitle)

	if s.Accepted() != 1 {
		t.Errorf("Accepted() = %d, want 1", s.Accepted())
	}
	if s.Rejected() != 3 {
		t.Errorf("Rejected() = %d, want 3", s.Rejected())
	}
	if s.Count(MissingDate) != 2 {
		t.Errorf("Count(MissingDate) = %d, want 2", s.Count(MissingDate))
	}

	other := NewStats()
	other.AddRejected(MissingDate)
	s.Merge(other)
	if s.Count(MissingDate) != 3 {
		t.Errorf("after Merge Count(MissingDate) = %d, want 3", s.Count(MissingDate))
	}

	snapshot := s.Snapshot()
	snapshot[MissingDate] = 99
	if s.Count(MissingDate) != 3 {
		t.Error("Snapshot() must be a copy")
	}

	s.Reset()
	if s.Accepted() != 0 || s.Rejected() != 0 {
		t.Error("Reset() did not clear counts")
	}
}

package datetext

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
)

// Sanity bounds for parsed start dates. Non-exhibit candidates outside this
// window are treated as parsing failures rather than trusted.
const (
	MaxPastYears   = 1
	MaxFutureYears = 3

	// Durations longer than this on a non-exhibit candidate are parsing
	// artifacts (usually a swallowed year) and are coerced to one day.
	MaxEventDuration = 14 * 24 * time.Hour

	// Ongoing phrases get a synthetic three-month window.
	ongoingMonths = 3
)

var (
	ongoingPattern = regexp.MustCompile(`(?i)\b(ongoing|permanent|daily|every\s+day|continuous|open\s+daily|on\s+view|now\s+showing)\b`)
	isoPattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	// "June 8 – September 23, 2025", "June 8 - 12", "Jan 5 2025 - Feb 2 2026"
	monthRangePattern = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\s*(?:-|–|—|\bthrough\b|\bthru\b|\bto\b|\buntil\b)\s*(?:(` + monthNames + `)\.?\s+)?(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)

	// "September 23, 2025", "Jan 24"
	monthDayPattern = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)

	// "Every Friday", "Fridays"
	everyPattern = regexp.MustCompile(`(?i)\bevery\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b`)
	pluralDay    = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s\b`)

	// "4/4/2026", "04.04.26"
	numericPattern = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})[/.](\d{2,4})\b`)

	// "7pm", "7:30 PM"
	timePattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)

	// Contexts that imply a longer default duration than a timed event.
	galleryPattern = regexp.MustCompile(`(?i)\b(gallery|opening|reception|exhibition|showing|screening)\b`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdayByName = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

// Normalizer parses raw date text into DateRange values. The zero value is
// not usable; construct with New.
type Normalizer struct {
	// Now is injectable for deterministic tests. Defaults to time.Now.
	Now func() time.Time

	defaultHour     int
	defaultDuration time.Duration
	galleryDuration time.Duration
}

// New creates a Normalizer configured with the venue's date defaults.
func New(cfg *config.Venue) *Normalizer {
	return &Normalizer{
		Now:             time.Now,
		defaultHour:     cfg.DefaultEventHour,
		defaultDuration: time.Duration(cfg.DefaultDurationHours) * time.Hour,
		galleryDuration: time.Duration(cfg.GalleryDurationHours) * time.Hour,
	}
}

// Normalize parses rawDateText into a DateRange. Patterns are tried in
// priority order; the first match wins. Returns ok=false when nothing
// parseable was found and the candidate is not an exhibit, or when the parsed
// start falls outside the sanity bounds for a non-exhibit candidate.
// Exhibits with no parseable text get a successful empty range.
func (n *Normalizer) Normalize(rawDateText string, isExhibit bool) (candidate.DateRange, bool) {
	text := strings.TrimSpace(rawDateText)
	now := n.Now().UTC()

	if text == "" {
		if isExhibit {
			return candidate.DateRange{}, true
		}
		return candidate.DateRange{}, false
	}

	// 1. Ongoing phrases win over any embedded explicit date.
	if ongoingPattern.MatchString(text) {
		return candidate.DateRange{
			Start:   now,
			End:     now.AddDate(0, ongoingMonths, 0),
			Ongoing: true,
		}, true
	}

	// 2. ISO-8601 dates.
	if dr, matched := n.parseISO(text); matched {
		return n.finish(dr, isExhibit, now)
	}

	// 3. Month-name ranges.
	if dr, matched := n.parseMonthRange(text, now); matched {
		return n.finish(dr, isExhibit, now)
	}

	// 4. Single month-name date, with an optional time-of-day.
	if dr, matched := n.parseMonthDay(text, now); matched {
		return n.finish(dr, isExhibit, now)
	}

	// 5. Day-of-week recurrence.
	if dr, matched := n.parseWeekday(text, now); matched {
		return n.finish(dr, isExhibit, now)
	}

	// 6. Numeric dates.
	if dr, matched := n.parseNumeric(text, now); matched {
		return n.finish(dr, isExhibit, now)
	}

	// 7. Nothing matched. Exhibits are allowed to be dateless.
	if isExhibit {
		return candidate.DateRange{}, true
	}
	return candidate.DateRange{}, false
}

// finish applies the post-parse sanity bounds and duration coercion. On a
// bounds failure the parsed range is still returned alongside ok=false so the
// gate can report InvalidDateRange instead of a bare missing date.
func (n *Normalizer) finish(dr candidate.DateRange, isExhibit bool, now time.Time) (candidate.DateRange, bool) {
	if dr.End.Before(dr.Start) {
		dr.Start, dr.End = dr.End, dr.Start
	}

	if !isExhibit {
		if dr.Start.Before(now.AddDate(-MaxPastYears, 0, 0)) {
			return dr, false
		}
		if dr.Start.After(now.AddDate(MaxFutureYears, 0, 0)) {
			return dr, false
		}
		if dr.Duration() > MaxEventDuration {
			dr.End = dr.Start.Add(24 * time.Hour)
		}
	}

	return dr, true
}

func (n *Normalizer) parseISO(text string) (candidate.DateRange, bool) {
	matches := isoPattern.FindAllString(text, 2)
	if len(matches) == 0 {
		return candidate.DateRange{}, false
	}

	start, err := time.Parse("2006-01-02", matches[0])
	if err != nil {
		return candidate.DateRange{}, false
	}

	end := start
	if len(matches) > 1 {
		if t, err := time.Parse("2006-01-02", matches[1]); err == nil {
			end = t
		}
	}

	dr := candidate.DateRange{Start: start, End: end}
	return n.applyTimes(dr, text, len(matches) == 1), true
}

func (n *Normalizer) parseMonthRange(text string, now time.Time) (candidate.DateRange, bool) {
	m := monthRangePattern.FindStringSubmatch(text)
	if m == nil {
		return candidate.DateRange{}, false
	}

	startMonth, ok := monthFromName(m[1])
	if !ok {
		return candidate.DateRange{}, false
	}
	startDay := atoi(m[2])

	endMonth := startMonth
	if m[4] != "" {
		if em, ok := monthFromName(m[4]); ok {
			endMonth = em
		}
	}
	endDay := atoi(m[5])

	// Year resolution: a trailing year is shared by both ends when the start
	// omits its own ("June 8 – September 23, 2025").
	endYear := now.Year()
	if m[6] != "" {
		endYear = atoi(m[6])
	}
	startYear := endYear
	if m[3] != "" {
		startYear = atoi(m[3])
		if m[6] == "" {
			endYear = startYear
		}
	}

	start := time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, endMonth, endDay, 0, 0, 0, 0, time.UTC)

	// A range ending before it starts within one year crosses a year boundary
	// ("Dec 20 - Jan 5").
	if end.Before(start) && endYear == startYear {
		end = end.AddDate(1, 0, 0)
	}

	if !validDay(startDay) || !validDay(endDay) {
		return candidate.DateRange{}, false
	}

	return candidate.DateRange{Start: start, End: end}, true
}

func (n *Normalizer) parseMonthDay(text string, now time.Time) (candidate.DateRange, bool) {
	m := monthDayPattern.FindStringSubmatch(text)
	if m == nil {
		return candidate.DateRange{}, false
	}

	month, ok := monthFromName(m[1])
	if !ok {
		return candidate.DateRange{}, false
	}
	day := atoi(m[2])
	if !validDay(day) {
		return candidate.DateRange{}, false
	}

	year := now.Year()
	if m[3] != "" {
		year = atoi(m[3])
	}

	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	dr := candidate.DateRange{Start: start, End: start}
	return n.applyTimes(dr, text, true), true
}

func (n *Normalizer) parseWeekday(text string, now time.Time) (candidate.DateRange, bool) {
	var name string
	if m := everyPattern.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else if m := pluralDay.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else {
		return candidate.DateRange{}, false
	}

	target, ok := weekdayByName[strings.ToLower(name)]
	if !ok {
		return candidate.DateRange{}, false
	}

	days := int(target-now.Weekday()+7) % 7
	if days == 0 {
		days = 7
	}
	next := now.AddDate(0, 0, days)

	hour, minute := n.defaultHour, 0
	if tm := timePattern.FindStringSubmatch(text); tm != nil {
		hour, minute = clockFromMatch(tm)
	}

	start := time.Date(next.Year(), next.Month(), next.Day(), hour, minute, 0, 0, time.UTC)
	return candidate.DateRange{Start: start, End: start.Add(n.durationFor(text))}, true
}

func (n *Normalizer) parseNumeric(text string, now time.Time) (candidate.DateRange, bool) {
	m := numericPattern.FindStringSubmatch(text)
	if m == nil {
		return candidate.DateRange{}, false
	}

	first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if year < 100 {
		year += 2000
	}

	// North American default: MM/DD unless a component over 12 forces the day
	// position. Genuinely ambiguous pairs stay MM/DD; documented heuristic.
	month, day := first, second
	if first > 12 && second <= 12 {
		month, day = second, first
	}
	if month < 1 || month > 12 || !validDay(day) {
		return candidate.DateRange{}, false
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	dr := candidate.DateRange{Start: start, End: start}
	return n.applyTimes(dr, text, true), true
}

// applyTimes is the secondary time-of-day pass. singleDay indicates the date
// pass produced a single day, so an extracted time should tighten the range.
func (n *Normalizer) applyTimes(dr candidate.DateRange, text string, singleDay bool) candidate.DateRange {
	if !singleDay {
		return dr
	}

	matches := timePattern.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return dr
	}

	hour, minute := clockFromMatch(matches[0])
	start := time.Date(dr.Start.Year(), dr.Start.Month(), dr.Start.Day(), hour, minute, 0, 0, time.UTC)

	if len(matches) == 1 {
		return candidate.DateRange{Start: start, End: start.Add(n.durationFor(text))}
	}

	endHour, endMinute := clockFromMatch(matches[1])
	end := time.Date(start.Year(), start.Month(), start.Day(), endHour, endMinute, 0, 0, time.UTC)

	// An end before the start on the same day is an ordering error when the
	// gap is under a day; swap rather than assume a crossed midnight.
	if end.Before(start) {
		if start.Sub(end) < 24*time.Hour {
			start, end = end, start
		} else {
			end = end.AddDate(0, 0, 1)
		}
	}

	return candidate.DateRange{Start: start, End: end}
}

func (n *Normalizer) durationFor(text string) time.Duration {
	if galleryPattern.MatchString(text) {
		return n.galleryDuration
	}
	return n.defaultDuration
}

func clockFromMatch(m []string) (hour, minute int) {
	hour = atoi(m[1])
	if m[2] != "" {
		minute = atoi(m[2])
	}
	meridiem := strings.ToLower(m[3])
	if meridiem == "pm" && hour < 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return hour, minute
}

func monthFromName(name string) (time.Month, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	m, ok := monthByPrefix[key]
	return m, ok
}

func validDay(day int) bool {
	return day >= 1 && day <= 31
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

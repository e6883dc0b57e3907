package cli

import (
	"sort"
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
)

// SortEventsByDate orders accepted events by start date, earliest first.
// Dateless exhibits sort after dated events; ties break by title.
func SortEventsByDate(events []candidate.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := events[i].Date, events[j].Date

		if !di.IsZero() && !dj.IsZero() {
			if !di.Start.Equal(dj.Start) {
				return di.Start.Before(dj.Start)
			}
			return lessByTitle(events[i], events[j])
		}
		if !di.IsZero() {
			return true
		}
		if !dj.IsZero() {
			return false
		}
		return lessByTitle(events[i], events[j])
	})
}

func lessByTitle(a, b candidate.NormalizedEvent) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

package pipeline

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/gate"
	"github.com/hann12-34/discovr-pipeline/internal/logger"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestPipeline(workers int) *Pipeline {
	cfg := config.Default()
	cfg.VenueName = "City Gallery"
	cfg.BaseURL = "https://citygallery.org"
	cfg.Keywords = []string{"exhibition", "gallery", "artist", "painting"}
	cfg.Workers = workers

	p := New(cfg, logger.New(logger.LevelError, io.Discard))
	p.SetClock(func() time.Time { return fixedNow })
	return p
}

func testBatch() []candidate.EventCandidate {
	good := candidate.EventCandidate{
		Title:       "City Gallery Summer Exhibition",
		RawDateText: "June 8 - September 23, 2025",
		Description: "A new exhibition of contemporary painting featuring twelve regional artists across the gallery's three main spaces.",
		URL:         "https://citygallery.org/events/summer-exhibition",
		ImageURL:    "https://citygallery.org/img/summer.jpg",
		Category:    "exhibition",
		SourceVenue: "city-gallery",
		IsExhibit:   true,
	}

	return []candidate.EventCandidate{
		good,
		good, // exact duplicate, removed by dedup
		{
			Title:       "City Gallery Jazz Night",
			RawDateText: "June 14, 2025 at 7pm",
			Description: "An evening of live jazz in the sculpture garden, with gallery admission included for ticket holders.",
			URL:         "/events/jazz-night",
			SourceVenue: "city-gallery",
		},
		{
			Title:       "Read More",
			RawDateText: "June 8, 2025",
			Description: "A placeholder caught during extraction of the listing page markup.",
			SourceVenue: "city-gallery",
		},
		{
			Title:       "Quartet Concert",
			RawDateText: "",
			Description: "Description without any parsable schedule information attached anywhere.",
			SourceVenue: "city-gallery",
		},
	}
}

func TestRun(t *testing.T) {
	p := newTestPipeline(0)
	batch := testBatch()

	accepted, stats := p.Run(batch)

	if len(accepted) != 2 {
		t.Fatalf("Run() accepted %d events, want 2", len(accepted))
	}

	// Accepted events satisfy the output contract.
	for _, evt := range accepted {
		if evt.Title == "" {
			t.Error("accepted event with empty title")
		}
		if evt.Date.IsZero() && !evt.IsExhibit {
			t.Errorf("accepted non-exhibit %q without a date", evt.Title)
		}
		if evt.ID == "" || evt.IdentityKey == "" {
			t.Errorf("accepted event %q missing identity", evt.Title)
		}
	}

	if stats.Count(gate.PlaceholderTitle) != 1 {
		t.Errorf("PlaceholderTitle count = %d, want 1", stats.Count(gate.PlaceholderTitle))
	}
	if stats.Count(gate.MissingDate) != 1 {
		t.Errorf("MissingDate count = %d, want 1", stats.Count(gate.MissingDate))
	}

	// Every deduplicated candidate is attributable: accepted + rejected ==
	// processed.
	processed := int64(len(batch) - 1) // one duplicate removed
	if stats.Accepted()+stats.Rejected() != processed {
		t.Errorf("accepted %d + rejected %d != processed %d",
			stats.Accepted(), stats.Rejected(), processed)
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	batch := testBatch()

	seqAccepted, seqStats := newTestPipeline(0).Run(batch)
	parAccepted, parStats := newTestPipeline(4).Run(batch)

	if !reflect.DeepEqual(seqAccepted, parAccepted) {
		t.Errorf("parallel run differs from sequential:\nseq: %+v\npar: %+v", seqAccepted, parAccepted)
	}
	if !reflect.DeepEqual(seqStats.Snapshot(), parStats.Snapshot()) {
		t.Errorf("parallel stats differ: %v vs %v", seqStats.Snapshot(), parStats.Snapshot())
	}
}

func TestRun_StatsResetBetweenRuns(t *testing.T) {
	p := newTestPipeline(0)
	batch := testBatch()

	p.Run(batch)
	_, stats := p.Run(batch)

	processed := int64(len(batch) - 1)
	if stats.Accepted()+stats.Rejected() != processed {
		t.Errorf("stats accumulated across runs: accepted %d rejected %d",
			stats.Accepted(), stats.Rejected())
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	p := newTestPipeline(0)

	accepted, stats := p.Run(nil)
	if len(accepted) != 0 {
		t.Errorf("Run(nil) accepted %d events", len(accepted))
	}
	if stats.Accepted() != 0 || stats.Rejected() != 0 {
		t.Error("Run(nil) produced nonzero stats")
	}
}

func TestNew_NilConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil, ...) should panic")
		}
	}()
	New(nil, nil)
}

func TestSummarize(t *testing.T) {
	p := newTestPipeline(0)
	batch := testBatch()

	accepted, stats := p.Run(batch)
	s := p.Summarize(len(batch), accepted, stats)

	if s.Input != len(batch) {
		t.Errorf("Input = %d, want %d", s.Input, len(batch))
	}
	if s.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", s.Duplicates)
	}
	if s.Accepted != int64(len(accepted)) {
		t.Errorf("Accepted = %d, want %d", s.Accepted, len(accepted))
	}
	if s.PassRate <= 0 || s.PassRate > 1 {
		t.Errorf("PassRate = %f, want (0, 1]", s.PassRate)
	}
	if s.AvgDescriptionLen <= 0 {
		t.Error("AvgDescriptionLen should be positive for a run with accepted events")
	}
	if s.DomainURLCoverage <= 0 {
		t.Error("DomainURLCoverage should be positive, accepted events use venue URLs")
	}
	if len(s.Reasons) == 0 {
		t.Error("Reasons breakdown missing")
	}
}

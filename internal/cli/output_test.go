package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/gate"
	"github.com/hann12-34/discovr-pipeline/internal/pipeline"
)

func sampleResult() *OutputResult {
	start := time.Date(2025, time.June, 8, 19, 0, 0, 0, time.UTC)
	return &OutputResult{
		Summary: pipeline.Summary{
			Venue:      "City Gallery",
			Input:      5,
			Duplicates: 1,
			Accepted:   2,
			Rejected:   2,
			PassRate:   0.5,
			Reasons: map[gate.Reason]int64{
				gate.PlaceholderTitle: 1,
				gate.MissingDate:      1,
			},
			AvgDescriptionLen: 104,
			DomainURLCoverage: 1,
		},
		Accepted: []candidate.NormalizedEvent{
			{
				ID:    "abc123",
				Title: "Jazz Night",
				URL:   "https://citygallery.org/events/jazz",
				Date:  candidate.DateRange{Start: start, End: start.Add(2 * time.Hour)},
				Score: candidate.ScoreBreakdown{Detail: 8, Authenticity: 5, MinimumRequired: 6},
			},
			{
				ID:        "def456",
				Title:     "Permanent Collection",
				IsExhibit: true,
			},
		},
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"City Gallery",
		"Accepted: 2",
		"placeholder_title",
		"missing_date",
		"Jazz Night",
		"Jun 8, 2025",
		"Permanent Collection",
		"exhibit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutput_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "abc123") {
		t.Errorf("verbose output missing event ID:\n%s", out)
	}
	if !strings.Contains(out, "8 detail + 5 authenticity") {
		t.Errorf("verbose output missing score breakdown:\n%s", out)
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if decoded.Summary.Venue != "City Gallery" {
		t.Errorf("Venue = %q", decoded.Summary.Venue)
	}
	if len(decoded.Accepted) != 2 {
		t.Errorf("Accepted = %d events, want 2", len(decoded.Accepted))
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, sampleResult(), "xml", false); err == nil {
		t.Error("unknown format should error")
	}
}

func TestWriteReasonTable_Aligned(t *testing.T) {
	var buf bytes.Buffer
	writeReasonTable(&buf, map[gate.Reason]int64{
		gate.MissingDate:      3,
		gate.PlaceholderTitle: 1,
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	// Counts start at the same column.
	first := strings.LastIndex(lines[0], " ")
	second := strings.LastIndex(lines[1], " ")
	if first != second {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}

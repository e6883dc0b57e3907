package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/gate"
	"github.com/hann12-34/discovr-pipeline/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	Summary  pipeline.Summary            `json:"summary"`
	Accepted []candidate.NormalizedEvent `json:"accepted"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	s := result.Summary

	fmt.Fprintf(w, "Venue: %s\n", s.Venue)
	fmt.Fprintf(w, "Candidates: %d (%d duplicates removed)\n", s.Input, s.Duplicates)
	fmt.Fprintf(w, "Accepted: %d  Rejected: %d  (%.0f%% passed)\n\n",
		s.Accepted, s.Rejected, s.PassRate*100)

	if s.Rejected > 0 {
		fmt.Fprintln(w, "Rejections:")
		writeReasonTable(w, s.Reasons)
		fmt.Fprintln(w)
	}

	for _, evt := range result.Accepted {
		date := ""
		if !evt.Date.IsZero() {
			date = evt.Date.Start.Format("Jan 2, 2006")
			if evt.Date.Ongoing {
				date += " (ongoing)"
			}
		} else if evt.IsExhibit {
			date = "exhibit"
		}
		fmt.Fprintf(w, "  %s  (%s)\n", evt.Title, date)
		if verbose {
			fmt.Fprintf(w, "       ID: %s\n", evt.ID)
			fmt.Fprintf(w, "       Score: %d detail + %d authenticity (min %d)\n",
				evt.Score.Detail, evt.Score.Authenticity, evt.Score.MinimumRequired)
			if evt.URL != "" {
				fmt.Fprintf(w, "       URL: %s\n", evt.URL)
			}
		}
	}

	if len(result.Accepted) > 0 {
		fmt.Fprintf(w, "\nAvg description length: %.0f chars, venue-domain URLs: %.0f%%\n",
			s.AvgDescriptionLen, s.DomainURLCoverage*100)
	}

	return nil
}

// writeReasonTable renders the per-reason counts as an aligned two-column
// table, padded by display width so non-ASCII reason labels stay lined up.
func writeReasonTable(w io.Writer, reasons map[gate.Reason]int64) {
	width := 0
	for _, reason := range gate.Reasons {
		if reasons[reason] == 0 {
			continue
		}
		if rw := runewidth.StringWidth(string(reason)); rw > width {
			width = rw
		}
	}

	for _, reason := range gate.Reasons {
		count := reasons[reason]
		if count == 0 {
			continue
		}
		label := string(reason)
		padding := strings.Repeat(" ", width-runewidth.StringWidth(label))
		fmt.Fprintf(w, "  %s%s  %d\n", label, padding, count)
	}
}

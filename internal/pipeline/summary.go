package pipeline

import (
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/gate"
)

// Summary aggregates one run for reporting. It is advisory only and never
// feeds back into acceptance decisions.
type Summary struct {
	Venue             string                `json:"venue"`
	Input             int                   `json:"input"`
	Duplicates        int                   `json:"duplicates"`
	Accepted          int64                 `json:"accepted"`
	Rejected          int64                 `json:"rejected"`
	PassRate          float64               `json:"pass_rate"`
	Reasons           map[gate.Reason]int64 `json:"reasons"`
	AvgDescriptionLen float64               `json:"avg_description_len"`
	DomainURLCoverage float64               `json:"domain_url_coverage"`
}

// Summarize builds the run summary from the batch size, the accepted events,
// and the gate's stats.
func (p *Pipeline) Summarize(input int, accepted []candidate.NormalizedEvent, stats *gate.Stats) Summary {
	s := Summary{
		Venue:    p.cfg.VenueName,
		Input:    input,
		Accepted: stats.Accepted(),
		Rejected: stats.Rejected(),
		Reasons:  stats.Snapshot(),
	}

	processed := s.Accepted + s.Rejected
	s.Duplicates = input - int(processed)
	if processed > 0 {
		s.PassRate = float64(s.Accepted) / float64(processed)
	}

	if len(accepted) > 0 {
		var descTotal, onDomain int
		for _, evt := range accepted {
			descTotal += len(strings.TrimSpace(evt.Description))
			if p.scorer.OnVenueDomain(evt.URL) {
				onDomain++
			}
		}
		s.AvgDescriptionLen = float64(descTotal) / float64(len(accepted))
		s.DomainURLCoverage = float64(onDomain) / float64(len(accepted))
	}

	return s
}

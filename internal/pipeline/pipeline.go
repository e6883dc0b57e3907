// Package pipeline sequences deduplication, date normalization, scoring, and
// gating over a batch of event candidates.
//
// Data flows one way: raw candidates → dedup → normalize → score → gate →
// (accepted records, rejection stats). Dedup always runs single-threaded over
// the full batch; the remaining per-candidate stages are pure and can fan out
// across workers, with only the stats aggregation shared.
package pipeline

import (
	"sync"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/datetext"
	"github.com/hann12-34/discovr-pipeline/internal/dedup"
	"github.com/hann12-34/discovr-pipeline/internal/gate"
	"github.com/hann12-34/discovr-pipeline/internal/logger"
	"github.com/hann12-34/discovr-pipeline/internal/score"
)

// Pipeline runs the full normalization and validation sequence for one venue.
type Pipeline struct {
	cfg        *config.Venue
	deduper    *dedup.Deduper
	normalizer *datetext.Normalizer
	scorer     *score.Scorer
	gate       *gate.Gate
	log        *logger.Logger
	workers    int
}

// New wires up a pipeline from the venue configuration. A nil config is a
// collector contract violation and panics.
func New(cfg *config.Venue, log *logger.Logger) *Pipeline {
	if cfg == nil {
		panic("pipeline: nil config")
	}
	if log == nil {
		log = logger.Default()
	}

	scorer := score.New(cfg)
	return &Pipeline{
		cfg:        cfg,
		deduper:    dedup.New(cfg.BaseURL),
		normalizer: datetext.New(cfg),
		scorer:     scorer,
		gate:       gate.New(cfg, scorer, gate.NewStats()),
		log:        log,
		workers:    cfg.Workers,
	}
}

// SetClock overrides the time source used by the date normalizer and the
// gate's sanity-bounds check. Used by tests; defaults to time.Now.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.normalizer.Now = now
	p.gate.Now = now
}

// Run processes a batch of candidates and returns the accepted events in
// input order plus the rejection statistics for the run. Stats are reset at
// the start of each run.
func (p *Pipeline) Run(candidates []candidate.EventCandidate) ([]candidate.NormalizedEvent, *gate.Stats) {
	p.gate.Stats().Reset()

	unique := p.deduper.Dedupe(candidates)
	p.log.Debug("deduplicated batch", logger.Fields{
		"venue":      p.cfg.VenueName,
		"input":      len(candidates),
		"duplicates": len(candidates) - len(unique),
	})

	var results []gate.ValidationResult
	if p.workers > 1 && len(unique) > 1 {
		results = p.runParallel(unique)
	} else {
		results = make([]gate.ValidationResult, len(unique))
		for i, c := range unique {
			results[i] = p.process(c)
		}
	}

	accepted := make([]candidate.NormalizedEvent, 0, len(results))
	for i, res := range results {
		if res.Accepted {
			accepted = append(accepted, *res.Event)
			continue
		}
		p.log.Debug("rejected candidate", logger.Fields{
			"title":  unique[i].Title,
			"reason": string(res.Reason),
			"detail": res.Score.Detail,
			"auth":   res.Score.Authenticity,
		})
	}

	stats := p.gate.Stats()
	p.log.Info("run complete", logger.Fields{
		"venue":    p.cfg.VenueName,
		"input":    len(candidates),
		"accepted": stats.Accepted(),
		"rejected": stats.Rejected(),
	})

	return accepted, stats
}

// process runs the per-candidate normalize → score → gate sequence.
func (p *Pipeline) process(c candidate.EventCandidate) gate.ValidationResult {
	dr, ok := p.normalizer.Normalize(c.RawDateText, c.IsExhibit)
	sb := p.scorer.Score(c, dr)
	return p.gate.Validate(c, dr, ok, sb)
}

// runParallel fans candidates out across workers. Results keep their input
// index, so accepted-event order matches a sequential run; the gate's stats
// are already safe for concurrent updates.
func (p *Pipeline) runParallel(candidates []candidate.EventCandidate) []gate.ValidationResult {
	results := make([]gate.ValidationResult, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.process(candidates[i])
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

package collector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
)

// ReadCandidates decodes a JSON candidate feed. Both a bare array and the
// wrapped form {"candidates": [...]} are accepted, since collectors emit
// either.
func ReadCandidates(r io.Reader) ([]candidate.EventCandidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading candidate feed: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var candidates []candidate.EventCandidate
		if err := json.Unmarshal(trimmed, &candidates); err != nil {
			return nil, fmt.Errorf("parsing candidate feed: %w", err)
		}
		return candidates, nil
	}

	var wrapper struct {
		Candidates []candidate.EventCandidate `json:"candidates"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing candidate feed: %w", err)
	}
	return wrapper.Candidates, nil
}

// WriteEvents encodes accepted events as indented JSON.
func WriteEvents(w io.Writer, events []candidate.NormalizedEvent) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Events []candidate.NormalizedEvent `json:"events"`
	}{Events: events})
}

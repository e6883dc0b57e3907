// Package config provides per-venue configuration for the validation pipeline.
//
// All venue-specific knowledge lives here as data: the venue's base URL and
// branding, placeholder-title and navigation-term lists, known program names,
// domain keywords, and the score thresholds the gate applies. A single
// pipeline implementation is parameterized by one Venue value instead of
// duplicating heuristics per venue.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingVenueName     = errors.New("venue_name is required")
	ErrMissingBaseURL       = errors.New("base_url is required")
	ErrInvalidBaseURL       = errors.New("base_url must be an absolute http(s) URL")
	ErrInvalidEventMinScore = errors.New("event_min_score must be at least 1")
	ErrInvalidExhibitScore  = errors.New("exhibit_min_score must be at least event_min_score")
	ErrInvalidBrandFloor    = errors.New("strong_brand_floor must be between 1 and event_min_score")
	ErrInvalidDefaultHour   = errors.New("default_event_hour must be between 0 and 23")
	ErrInvalidDuration      = errors.New("default_duration_hours must be at least 1")
	ErrInvalidWorkers       = errors.New("workers must be non-negative")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Venue holds everything the pipeline needs to know about one venue.
type Venue struct {
	VenueName string `yaml:"venue_name"`
	BaseURL   string `yaml:"base_url"`

	// Text lists consumed by the gate and scorer.
	PlaceholderTitles []string `yaml:"placeholder_titles"`
	NavigationTerms   []string `yaml:"navigation_terms"`
	ProgramNames      []string `yaml:"program_names"`
	Keywords          []string `yaml:"keywords"`
	SuspiciousHosts   []string `yaml:"suspicious_hosts"`

	// Score thresholds.
	EventMinScore    int `yaml:"event_min_score"`
	ExhibitMinScore  int `yaml:"exhibit_min_score"`
	OffsitePenalty   int `yaml:"offsite_penalty"`
	StrongBrandFloor int `yaml:"strong_brand_floor"`

	// Date defaults.
	DefaultEventHour     int `yaml:"default_event_hour"`
	DefaultDurationHours int `yaml:"default_duration_hours"`
	GalleryDurationHours int `yaml:"gallery_duration_hours"`

	Workers int           `yaml:"workers"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Venue with working defaults; a venue file only needs to
// override what differs.
func Default() *Venue {
	return &Venue{
		PlaceholderTitles: []string{
			"event", "events", "show", "shows", "exhibit", "exhibition",
			"read more", "learn more", "more info", "details", "untitled",
			"tickets", "buy tickets", "calendar", "upcoming events",
		},
		NavigationTerms: []string{
			"privacy policy", "terms of service", "terms of use", "sign in",
			"log in", "sign up", "newsletter", "subscribe", "cookie",
			"my account", "shopping cart", "contact us", "site map",
			"all rights reserved", "follow us",
		},
		SuspiciousHosts: []string{
			"example.com", "test.com", "localhost", "placeholder.com",
			"placehold.co", "via.placeholder.com", "dummyimage.com",
		},
		EventMinScore:        6,
		ExhibitMinScore:      8,
		OffsitePenalty:       2,
		StrongBrandFloor:     4,
		DefaultEventHour:     18,
		DefaultDurationHours: 2,
		GalleryDurationHours: 3,
		Workers:              0,
		Logging:              LoggingConfig{Level: "info"},
	}
}

// Load reads a venue configuration from a YAML file, applying defaults for
// unset fields and validating the result.
func Load(path string) (*Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (v *Venue) Validate() error {
	if strings.TrimSpace(v.VenueName) == "" {
		return ErrMissingVenueName
	}

	if v.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(v.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if v.EventMinScore < 1 {
		return ErrInvalidEventMinScore
	}
	if v.ExhibitMinScore < v.EventMinScore {
		return ErrInvalidExhibitScore
	}
	if v.StrongBrandFloor < 1 || v.StrongBrandFloor > v.EventMinScore {
		return ErrInvalidBrandFloor
	}

	if v.DefaultEventHour < 0 || v.DefaultEventHour > 23 {
		return ErrInvalidDefaultHour
	}
	if v.DefaultDurationHours < 1 {
		return ErrInvalidDuration
	}
	if v.GalleryDurationHours < 1 {
		return ErrInvalidDuration
	}

	if v.Workers < 0 {
		return ErrInvalidWorkers
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[v.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Domain returns the host of the venue's base URL, without any www prefix.
func (v *Venue) Domain() string {
	u, err := url.Parse(v.BaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// String returns a short representation for logs.
func (v *Venue) String() string {
	return fmt.Sprintf("Venue{%s, %s, keywords: %d, programs: %d}",
		v.VenueName, v.BaseURL, len(v.Keywords), len(v.ProgramNames))
}

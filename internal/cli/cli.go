package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hann12-34/discovr-pipeline/internal/candidate"
	"github.com/hann12-34/discovr-pipeline/internal/collector"
	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/logger"
	"github.com/hann12-34/discovr-pipeline/internal/pipeline"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagCandidates  string
	flagListing     string
	flagConfig      string
	flagFormat      string
	flagWorkers     int
	flagVerbose     bool
	flagAcceptedOut string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discovr-pipeline",
		Short: "Validate scraped event candidates for one venue",
		Long: `Runs the event candidate normalization and validation pipeline.
Candidates are deduplicated, their free-text dates parsed, scored for
completeness and authenticity, and gated; every rejection is attributed to
exactly one reason in the run report.`,
		RunE: runPipeline,
	}

	cmd.Flags().StringVar(&flagCandidates, "candidates", "", "Candidate feed JSON file (default: stdin)")
	cmd.Flags().StringVar(&flagListing, "listing", "", "Saved HTML listing page to extract candidates from")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Venue configuration YAML file (required)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Worker count for the per-candidate stages (overrides config)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.Flags().StringVar(&flagAcceptedOut, "accepted-out", "", "Write accepted events JSON to this file")

	cmd.MarkFlagRequired("config")

	return cmd
}

// runPipeline is the main command logic
func runPipeline(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	candidates, err := readCandidates(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, log)
	accepted, stats := p.Run(candidates)
	summary := p.Summarize(len(candidates), accepted, stats)

	SortEventsByDate(accepted)

	if flagAcceptedOut != "" {
		if err := writeAcceptedFile(flagAcceptedOut, accepted); err != nil {
			return err
		}
	}

	result := &OutputResult{
		Summary:  summary,
		Accepted: accepted,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// readCandidates loads the batch from the listing page, the feed file, or
// stdin, in that precedence order.
func readCandidates(cfg *config.Venue) ([]candidate.EventCandidate, error) {
	if flagListing != "" {
		f, err := os.Open(flagListing)
		if err != nil {
			return nil, fmt.Errorf("opening listing file: %w", err)
		}
		defer f.Close()
		return collector.ParseListing(f, cfg)
	}

	if flagCandidates != "" {
		f, err := os.Open(flagCandidates)
		if err != nil {
			return nil, fmt.Errorf("opening candidates file: %w", err)
		}
		defer f.Close()
		return collector.ReadCandidates(f)
	}

	return collector.ReadCandidates(os.Stdin)
}

func writeAcceptedFile(path string, accepted []candidate.NormalizedEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accepted-out file: %w", err)
	}
	defer f.Close()

	if err := collector.WriteEvents(f, accepted); err != nil {
		return fmt.Errorf("writing accepted events: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

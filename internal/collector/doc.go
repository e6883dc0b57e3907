// Package collector provides boundary adapters that feed the pipeline from
// files: JSON candidate feeds produced by per-site scrapers, and saved HTML
// listing pages for fixture-driven tooling. The adapters never fetch
// anything; network access belongs to the external collectors.
package collector

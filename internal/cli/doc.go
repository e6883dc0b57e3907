// Package cli implements the discovr-pipeline command line interface.
//
// The CLI reads a candidate feed (JSON file, saved HTML listing, or stdin),
// runs the validation pipeline against one venue configuration, and reports
// the run: accepted events plus a per-reason rejection breakdown, as text or
// JSON.
package cli

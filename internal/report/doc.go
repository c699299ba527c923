// Package report builds the end-of-run processing report.
//
// A Report records the effective settings, one FolderResult per processed
// folder with its per-template outcomes, the master archive path, and a
// Summary with success counts and render-time statistics. It is written as
// indented JSON to {output}/_processing_report.json.
package report

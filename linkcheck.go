// Package linkcheck provides a concurrent broken-link crawler. Starting
// from a seed URL it recursively discovers every link, image, script, and
// stylesheet reference up to a bounded depth, validates each exactly once
// over HTTP, and aggregates the outcomes into a report of working and
// broken resources.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package linkcheck

// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError   = "error"
	FieldPath    = "path"
	FieldInput   = "input"
	FieldPattern = "pattern"

	// Run fields.
	FieldJobs     = "jobs"
	FieldStrategy = "strategy"
	FieldFormat   = "format"
	FieldWildcard = "wildcard"
	FieldMapped   = "mapped"

	// Result fields.
	FieldFindings = "findings"
	FieldDuration = "duration"
	FieldBytes    = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

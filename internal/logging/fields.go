package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion settings.
	FieldEngine     = "engine"
	FieldStylesheet = "stylesheet"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"

	// Per-document fields.
	FieldTokens      = "tokens"
	FieldErrors      = "errors"
	FieldBytes       = "bytes"
	FieldLanguage    = "language"
	FieldDiagnostics = "diagnostics"
	FieldWritten     = "written"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"
	FieldDuration        = "duration"

	// Watch mode.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

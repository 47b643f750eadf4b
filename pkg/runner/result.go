package runner

import (
	"time"

	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/fsutil"
)

// FileOutcome is the result of converting one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the file the HTML was (or, in a dry run, would be) written to.
	Output string

	// Result is the conversion result. It is nil when Error is set.
	Result *convert.Result

	// Written is true if Output was created or its content changed.
	Written bool

	// Error is set if the file could not be read, converted or written.
	Error error

	// Source fingerprints the markdown file as it was read.
	Source *fsutil.FileInfo
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of markdown files found.
	FilesDiscovered int

	// FilesConverted is the number of files converted without a fatal error.
	FilesConverted int

	// FilesWritten is the number of outputs created or updated.
	FilesWritten int

	// FilesUnchanged is the number of outputs already up to date.
	FilesUnchanged int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithDiagnostics is the number of files with malformed constructs.
	FilesWithDiagnostics int

	// DiagnosticsTotal is the number of diagnostics across all files.
	DiagnosticsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats

	// DryRun records that no outputs were written.
	DryRun bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasDiagnostics reports whether any converted file had malformed constructs.
func (r *Result) HasDiagnostics() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *Result) Diagnostics() []convert.Diagnostic {
	if r == nil {
		return nil
	}
	var all []convert.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil {
			all = append(all, f.Result.Diagnostics...)
		}
	}
	return all
}

// Add appends outcome and updates the statistics.
func (r *Result) Add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesConverted++
	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case !r.DryRun:
		r.Stats.FilesUnchanged++
	}

	if n := len(outcome.Result.Diagnostics); n > 0 {
		r.Stats.FilesWithDiagnostics++
		r.Stats.DiagnosticsTotal += n
	}
}

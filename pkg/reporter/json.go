package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

// jsonVersion is bumped when the JSON layout changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string               `json:"path"`
	Output      string               `json:"output"`
	Written     bool                 `json:"written"`
	Diagnostics []convert.Diagnostic `json:"diagnostics"`
	Error       string               `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered      int   `json:"filesDiscovered"`
	FilesConverted       int   `json:"filesConverted"`
	FilesWritten         int   `json:"filesWritten"`
	FilesUnchanged       int   `json:"filesUnchanged"`
	FilesErrored         int   `json:"filesErrored"`
	FilesWithDiagnostics int   `json:"filesWithDiagnostics"`
	TotalDiagnostics     int   `json:"totalDiagnostics"`
	DurationMillis       int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalDiagnostics, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.DryRun = result.DryRun
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Output:      displayPath(file.Output, r.opts.WorkingDir),
			Written:     file.Written,
			Diagnostics: make([]convert.Diagnostic, 0),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.Result != nil {
			for _, diag := range file.Result.Diagnostics {
				diag.Path = fileResult.Path
				fileResult.Diagnostics = append(fileResult.Diagnostics, diag)
			}
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:      stats.FilesDiscovered,
		FilesConverted:       stats.FilesConverted,
		FilesWritten:         stats.FilesWritten,
		FilesUnchanged:       stats.FilesUnchanged,
		FilesErrored:         stats.FilesErrored,
		FilesWithDiagnostics: stats.FilesWithDiagnostics,
		TotalDiagnostics:     stats.DiagnosticsTotal,
		DurationMillis:       result.Duration.Milliseconds(),
	}

	return output
}

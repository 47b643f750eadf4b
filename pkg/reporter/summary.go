package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/gomdhtml/internal/ui/pretty"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

// File status labels in the summary table.
const (
	statusWritten   = "written"
	statusUnchanged = "unchanged"
	statusDryRun    = "dry-run"
	statusFailed    = "failed"
)

// SummaryReporter formats results as a per-file table followed by
// aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if len(result.Files) > 0 {
		columns := []pretty.Column{
			{Header: "FILE", Flex: true},
			{Header: "OUTPUT"},
			{Header: "STATUS"},
			{Header: "ISSUES"},
		}
		rows := make([][]string, 0, len(result.Files))
		for _, file := range result.Files {
			rows = append(rows, r.row(file, result.DryRun))
		}
		fmt.Fprint(r.bw, r.styles.FormatTable(columns, rows, r.width))
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, result.DryRun, result.Duration))

	return result.Stats.DiagnosticsTotal, nil
}

func (r *SummaryReporter) row(file runner.FileOutcome, dryRun bool) []string {
	var status, issues string
	switch {
	case file.Error != nil:
		status = statusFailed
		issues = "-"
	case dryRun:
		status = statusDryRun
	case file.Written:
		status = statusWritten
	default:
		status = statusUnchanged
	}
	if file.Result != nil {
		issues = strconv.Itoa(len(file.Result.Diagnostics))
	}
	return []string{
		displayPath(file.Path, r.opts.WorkingDir),
		displayPath(file.Output, r.opts.WorkingDir),
		status,
		issues,
	}
}

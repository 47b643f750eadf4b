package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

var workDir = filepath.FromSlash("/work")

func inWork(name string) string {
	return filepath.Join(workDir, filepath.FromSlash(name))
}

// sampleResult has one clean file, one with a diagnostic and one failure.
func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    inWork("a.md"),
				Output:  inWork("a.html"),
				Result:  &convert.Result{Path: inWork("a.md"), HTML: []byte("<h1>a</h1>\n")},
				Written: true,
			},
			{
				Path:   inWork("docs/b.md"),
				Output: inWork("docs/b.html"),
				Result: &convert.Result{
					Path: inWork("docs/b.md"),
					Diagnostics: []convert.Diagnostic{{
						Path: inWork("docs/b.md"), Line: 2, Column: 5, EndLine: 2, EndColumn: 8,
						Message:    "unterminated link: line ends before the closing ] or )",
						Snippet:    "[a(",
						SourceLine: "see [a(",
					}},
				},
			},
			{
				Path:   inWork("c.md"),
				Output: inWork("c.html"),
				Error:  errors.New("permission denied"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:      3,
			FilesConverted:       2,
			FilesWritten:         1,
			FilesUnchanged:       1,
			FilesErrored:         1,
			FilesWithDiagnostics: 1,
			DiagnosticsTotal:     1,
		},
		Duration: 42 * time.Millisecond,
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		want    any
		wantErr bool
	}{
		{name: "text reporter", format: config.FormatText, want: &reporter.TextReporter{}},
		{name: "json reporter", format: config.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "summary reporter", format: config.FormatSummary, want: &reporter.SummaryReporter{}},
		{name: "empty defaults to text", format: "", want: &reporter.TextReporter{}},
		{name: "unknown format", format: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		ShowOutputs: true,
		WorkingDir:  workDir,
	})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	b := filepath.Join("docs", "b.md")
	want := "a.md -> a.html\n" +
		b + " (1 issue)\n" +
		"  " + b + ":2:5  error  unterminated link: line ends before the closing ] or )\n" +
		"        see [a(\n" +
		"            ^~~\n" +
		"\n" +
		"c.md  failed  permission denied\n" +
		"Converted 2 files (1 written, 1 unchanged), 1 issue in 1 file, 1 file failed\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: workDir})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "->")
	assert.NotContains(t, buf.String(), "see [a(")
	assert.NotContains(t, buf.String(), "Converted")
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No markdown files found\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: workDir})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	require.Len(t, out.Files, 3)
	assert.Equal(t, "a.md", out.Files[0].Path)
	assert.Equal(t, "a.html", out.Files[0].Output)
	assert.True(t, out.Files[0].Written)
	assert.NotNil(t, out.Files[0].Diagnostics, "clean files encode an empty list")

	require.Len(t, out.Files[1].Diagnostics, 1)
	diag := out.Files[1].Diagnostics[0]
	assert.Equal(t, filepath.Join("docs", "b.md"), diag.Path)
	assert.Equal(t, 2, diag.Line)
	assert.Equal(t, "[a(", diag.Snippet)

	assert.Equal(t, "permission denied", out.Files[2].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesDiscovered:      3,
		FilesConverted:       2,
		FilesWritten:         1,
		FilesUnchanged:       1,
		FilesErrored:         1,
		FilesWithDiagnostics: 1,
		TotalDiagnostics:     1,
		DurationMillis:       42,
	}, out.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: workDir})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, []string{"FILE", "OUTPUT", "STATUS", "ISSUES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"a.md", "a.html", "written", "0"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{filepath.Join("docs", "b.md"), filepath.Join("docs", "b.html"), "unchanged", "1"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"c.md", "c.html", "failed", "-"}, strings.Fields(lines[4]))
	assert.Contains(t, out, "Conversion failed")
	assert.Contains(t, out, "Elapsed:")
}

func TestSummaryReporter_DryRun(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.DryRun = true
	result.Files = result.Files[:1]
	result.Files[0].Written = false
	result.Stats = runner.Stats{FilesDiscovered: 1, FilesConverted: 1}

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: workDir})
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "dry-run")
	assert.Contains(t, buf.String(), "Dry run complete")
}

func TestDisplayPathOutsideWorkDir(t *testing.T) {
	t.Parallel()

	outside := filepath.FromSlash("/elsewhere/x.md")
	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: outside, Output: outside, Error: errors.New("boom")}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesErrored: 1},
	}

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: workDir})
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), outside+"  failed  boom")
}

package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdhtml/internal/cli"
	"github.com/yaklabco/gomdhtml/internal/configloader"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"conversion errors", cli.ErrConversionErrors, cli.ExitConversionErrors},
		{"invalid usage", errors.Join(cli.ErrInvalidUsage, errors.New("unknown flag")), cli.ExitInvalidUsage},
		{"config", errors.Join(cli.ErrConfig, errors.New("bad yaml")), cli.ExitConfigError},
		{
			"validation error",
			fmt.Errorf("load: %w", &configloader.ValidationError{Field: "engine", Value: "x", Message: "unknown engine"}),
			cli.ExitConfigError,
		},
		{"io", fmt.Errorf("read: %w", cli.ErrIO), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	clean := &runner.Result{Stats: runner.Stats{FilesDiscovered: 2, FilesConverted: 2}}
	malformed := &runner.Result{Stats: runner.Stats{FilesConverted: 1, FilesWithDiagnostics: 1, DiagnosticsTotal: 2}}
	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1}}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, true, cli.ExitSuccess},
		{"clean", clean, true, cli.ExitSuccess},
		{"malformed lenient", malformed, false, cli.ExitSuccess},
		{"malformed strict", malformed, true, cli.ExitConversionErrors},
		{"failure", failed, false, cli.ExitConversionErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

package cli

import (
	"errors"

	"github.com/yaklabco/gomdhtml/internal/configloader"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

// Exit codes for gomdhtml.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConversionErrors indicates files could not be converted, or
	// malformed markdown was found where it is treated as failure.
	ExitConversionErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrConversionErrors is returned when a run finished but must exit non-zero.
// The details have already been reported.
var ErrConversionErrors = errors.New("conversion errors found")

// Sentinels joined onto command errors to select the exit code.
var (
	ErrInvalidUsage = errors.New("invalid usage")
	ErrConfig       = errors.New("failed to load configuration")
	ErrIO           = errors.New("i/o error")
)

// ExitCodeFromResult determines the exit code of a run. Malformed markdown
// only fails the run when strict is set.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitConversionErrors
	}
	if strict && result.HasDiagnostics() {
		return ExitConversionErrors
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionErrors):
		return ExitConversionErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

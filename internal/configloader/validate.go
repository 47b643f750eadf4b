package configloader

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdhtml/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "watch.debounce").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., options the engine ignores).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// markdownExtensions are source extensions an output extension must not reuse.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Engine != "" && !cfg.Engine.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine",
			Value:   cfg.Engine,
			Message: fmt.Sprintf("invalid engine %q; must be one of: native, goldmark", cfg.Engine),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateExtension(cfg, result)
	validateDebounce(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateEngineOptions(cfg, result)

	return result
}

func validateExtension(cfg *config.Config, result *ValidationResult) {
	ext := cfg.Extension
	if ext == "" {
		return
	}
	if markdownExtensions[strings.ToLower(ext)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "extension",
			Value:   ext,
			Message: fmt.Sprintf("extension %q would overwrite markdown sources", ext),
		})
		return
	}
	if !strings.HasPrefix(ext, ".") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "extension",
			Value:   ext,
			Message: fmt.Sprintf("extension %q has no leading dot; it is appended verbatim", ext),
		})
	}
}

func validateDebounce(cfg *config.Config, result *ValidationResult) {
	if cfg.Watch.Debounce == "" {
		return
	}
	d, err := time.ParseDuration(cfg.Watch.Debounce)
	switch {
	case err != nil:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "watch.debounce",
			Value:   cfg.Watch.Debounce,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	case d < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "watch.debounce",
			Value:   cfg.Watch.Debounce,
			Message: "debounce must not be negative",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// validateEngineOptions warns about options the goldmark engine does not honour.
func validateEngineOptions(cfg *config.Config, result *ValidationResult) {
	if cfg.Engine != config.EngineGoldmark {
		return
	}
	if cfg.ShouldDetectLanguages() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "detect_languages",
			Value:   true,
			Message: "ignored by the goldmark engine",
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

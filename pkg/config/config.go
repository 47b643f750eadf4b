// Package config defines the configuration types for gomdhtml.
// They are plain data with YAML tags; discovery, merging and validation live
// in internal/configloader.
package config

import (
	"fmt"
	"time"
)

// Engine selects the markdown-to-HTML implementation.
type Engine string

const (
	// EngineNative is the built-in single-pass lexer and renderer.
	EngineNative Engine = "native"
	// EngineGoldmark converts with yuin/goldmark and GFM extensions.
	EngineGoldmark Engine = "goldmark"
)

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	switch e {
	case EngineNative, EngineGoldmark:
		return true
	default:
		return false
	}
}

// Defaults for a fresh configuration.
const (
	DefaultExtension  = ".html"
	DefaultStylesheet = "default.css"
	DefaultDebounce   = "200ms"
)

// WatchConfig controls the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last change before converting,
	// as a Go duration string (e.g. "200ms").
	Debounce string `yaml:"debounce,omitempty"`
}

// Config is the root configuration structure for gomdhtml.
type Config struct {
	// Engine selects the converter ("native" or "goldmark").
	Engine Engine `yaml:"engine,omitempty"`

	// Stylesheet is the href linked from every generated document.
	Stylesheet string `yaml:"stylesheet,omitempty"`

	// EscapeHTML escapes HTML special characters in text.
	EscapeHTML *bool `yaml:"escape_html,omitempty"`

	// DetectLanguages labels untagged code blocks by content.
	DetectLanguages *bool `yaml:"detect_languages,omitempty"`

	// Fragment writes bare HTML without the stylesheet link and wrapper div.
	Fragment *bool `yaml:"fragment,omitempty"`

	// OutputDir is where converted files are written. Empty means next to
	// the source file.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Extension replaces the markdown extension of converted files.
	Extension string `yaml:"extension,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Watch configures the watch command.
	Watch WatchConfig `yaml:"watch,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs is the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// Format is the report output format.
	Format OutputFormat `yaml:"-"`

	// DryRun converts without writing output files.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Engine:          EngineNative,
		Stylesheet:      DefaultStylesheet,
		EscapeHTML:      Bool(false),
		DetectLanguages: Bool(false),
		Fragment:        Bool(false),
		Extension:       DefaultExtension,
		Watch:           WatchConfig{Debounce: DefaultDebounce},
		Format:          FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func deref(p *bool) bool {
	return p != nil && *p
}

// ShouldEscapeHTML reports whether text should be HTML-escaped.
func (c *Config) ShouldEscapeHTML() bool {
	return deref(c.EscapeHTML)
}

// ShouldDetectLanguages reports whether untagged code blocks are labelled.
func (c *Config) ShouldDetectLanguages() bool {
	return deref(c.DetectLanguages)
}

// IsFragment reports whether documents are written without a wrapper.
func (c *Config) IsFragment() bool {
	return deref(c.Fragment)
}

// DebounceDuration parses Watch.Debounce, defaulting to DefaultDebounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	raw := c.Watch.Debounce
	if raw == "" {
		raw = DefaultDebounce
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse watch.debounce %q: %w", raw, err)
	}
	return d, nil
}

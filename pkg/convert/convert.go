// Package convert turns markdown documents into HTML pages.
//
// A Converter owns one engine: the native lexer and renderer, or goldmark.
// Converters are safe for concurrent use; the runner shares one across its
// workers.
package convert

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/langdetect"
	"github.com/yaklabco/gomdhtml/pkg/render"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

// Converter converts one markdown document.
type Converter interface {
	// Convert returns the HTML for src. path is used for diagnostics only.
	Convert(ctx context.Context, path string, src []byte) (*Result, error)

	// Engine names the implementation.
	Engine() config.Engine
}

// Result is the outcome of converting one document.
type Result struct {
	// Path is the source path given to Convert.
	Path string

	// HTML is the complete output document (or fragment).
	HTML []byte

	// Tokens is the lexer output. It is nil for engines without a token stream.
	Tokens []token.Token

	// Diagnostics describes every Error token, in document order.
	Diagnostics []Diagnostic
}

// HasErrors reports whether the document contained malformed constructs.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Diagnostics) > 0
}

// Options configures a Converter.
type Options struct {
	// EscapeHTML escapes HTML special characters in text.
	EscapeHTML bool

	// DetectLanguages labels untagged code blocks by content.
	DetectLanguages bool

	// Document controls the page wrapper.
	Document render.DocumentOptions
}

// OptionsFromConfig extracts converter options from a resolved config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		EscapeHTML:      cfg.ShouldEscapeHTML(),
		DetectLanguages: cfg.ShouldDetectLanguages(),
		Document: render.DocumentOptions{
			Stylesheet: cfg.Stylesheet,
			Fragment:   cfg.IsFragment(),
		},
	}
}

// NewFromConfig returns the converter selected by cfg.Engine.
//
//nolint:ireturn // Engine selection is the point of this constructor.
func NewFromConfig(cfg *config.Config) (Converter, error) {
	opts := OptionsFromConfig(cfg)
	switch cfg.Engine {
	case config.EngineNative, "":
		return NewNative(opts), nil
	case config.EngineGoldmark:
		return NewGoldmark(opts), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

// renderOptions maps converter options to renderer options.
func (o Options) renderOptions() render.Options {
	ropts := render.Options{EscapeHTML: o.EscapeHTML}
	if o.DetectLanguages {
		ropts.LanguageDetector = langdetect.Detect
	}
	return ropts
}

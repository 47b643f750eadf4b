package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/render"
)

// Goldmark converts with yuin/goldmark and its GFM extensions. It produces
// no token stream and no diagnostics: goldmark never rejects input.
type Goldmark struct {
	md       goldmark.Markdown
	document render.DocumentOptions
}

// NewGoldmark creates a goldmark converter. Raw HTML in the source is kept
// unless EscapeHTML is set. DetectLanguages is not supported.
func NewGoldmark(opts Options) *Goldmark {
	var rendererOpts []goldmark.Option
	if !opts.EscapeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return &Goldmark{
		md: goldmark.New(append(rendererOpts,
			goldmark.WithExtensions(extension.GFM),
		)...),
		document: opts.Document,
	}
}

// Engine implements Converter.
func (g *Goldmark) Engine() config.Engine {
	return config.EngineGoldmark
}

// Convert implements Converter.
func (g *Goldmark) Convert(ctx context.Context, path string, src []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	var body bytes.Buffer
	if err := g.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("goldmark convert %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := render.WriteDocument(&buf, []string{body.String()}, g.document); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	return &Result{Path: path, HTML: buf.Bytes()}, nil
}

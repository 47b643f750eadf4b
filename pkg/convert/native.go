package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/lexer"
	"github.com/yaklabco/gomdhtml/pkg/render"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

// Native converts with the built-in lexer and renderer.
type Native struct {
	renderer *render.Renderer
	document render.DocumentOptions
}

// NewNative creates a native converter.
func NewNative(opts Options) *Native {
	return &Native{
		renderer: render.New(opts.renderOptions()),
		document: opts.Document,
	}
}

// Engine implements Converter.
func (n *Native) Engine() config.Engine {
	return config.EngineNative
}

// Convert implements Converter. Invalid UTF-8 bytes are replaced with
// U+FFFD before scanning.
func (n *Native) Convert(ctx context.Context, path string, src []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	doc := bytes.Runes(src)
	tokens := lexer.TokenizeRunes(doc)

	logger := logging.FromContext(ctx)
	logger.Debug("tokenized",
		logging.FieldPath, path,
		logging.FieldTokens, len(tokens),
		logging.FieldErrors, token.Count(tokens, token.Error),
	)

	fragments := n.renderer.RenderRunes(doc, tokens)

	var buf bytes.Buffer
	buf.Grow(len(src) * 2)
	if err := render.WriteDocument(&buf, fragments, n.document); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	return &Result{
		Path:        path,
		HTML:        buf.Bytes(),
		Tokens:      tokens,
		Diagnostics: Diagnose(path, doc, tokens),
	}, nil
}

package convert_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/render"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

func fragment() convert.Options {
	return convert.Options{Document: render.DocumentOptions{Fragment: true}}
}

func TestNative_Convert(t *testing.T) {
	t.Parallel()

	res, err := convert.NewNative(convert.Options{}).Convert(context.Background(), "a.md", []byte("# Hi"))
	require.NoError(t, err)

	want := "<link rel=\"stylesheet\" href=\"default.css\">\n<div class=\"markdown-body\">\n<h1>Hi</h1>\n\n</div>"
	assert.Equal(t, want, string(res.HTML))
	assert.Equal(t, "a.md", res.Path)
	assert.True(t, token.ValidateOrder(res.Tokens))
	assert.False(t, res.HasErrors())
}

func TestNative_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  convert.Options
		input string
		want  string
	}{
		{"fragment", fragment(), "**b**", "<b>b</b>"},
		{
			name:  "escape",
			opts:  convert.Options{EscapeHTML: true, Document: render.DocumentOptions{Fragment: true}},
			input: "a<b",
			want:  "a&lt;b",
		},
		{
			name:  "detect languages",
			opts:  convert.Options{DetectLanguages: true, Document: render.DocumentOptions{Fragment: true}},
			input: "```\npackage main\n```\n",
			want:  `<pre class="language-go">package main</pre>`,
		},
		{
			name:  "stylesheet",
			opts:  convert.Options{Document: render.DocumentOptions{Stylesheet: "s.css"}},
			input: "x",
			want:  "<link rel=\"stylesheet\" href=\"s.css\">\n<div class=\"markdown-body\">\nx\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := convert.NewNative(tt.opts).Convert(context.Background(), "x.md", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(res.HTML))
		})
	}
}

func TestNative_InvalidUTF8(t *testing.T) {
	t.Parallel()

	res, err := convert.NewNative(fragment()).Convert(context.Background(), "x.md", []byte{'a', 0xff, 'b'})
	require.NoError(t, err)
	assert.Equal(t, "a�b", string(res.HTML))
}

func TestNative_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := convert.NewNative(convert.Options{}).Convert(ctx, "x.md", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestGoldmark_Convert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	res, err := convert.NewGoldmark(fragment()).Convert(ctx, "x.md", []byte("# Hi\n\n*x*\n"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>\n<p><em>x</em></p>\n", string(res.HTML))
	assert.Nil(t, res.Tokens)
	assert.False(t, res.HasErrors())

	res, err = convert.NewGoldmark(fragment()).Convert(ctx, "x.md", []byte("| a |\n| - |\n| 1 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(res.HTML), "<table>")

	res, err = convert.NewGoldmark(fragment()).Convert(ctx, "x.md", []byte("<span>x</span>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(res.HTML), "<span>x</span>")

	escaping := convert.Options{EscapeHTML: true, Document: render.DocumentOptions{Fragment: true}}
	res, err = convert.NewGoldmark(escaping).Convert(ctx, "x.md", []byte("<span>x</span>\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(res.HTML), "<span>")
}

func TestGoldmark_Document(t *testing.T) {
	t.Parallel()

	res, err := convert.NewGoldmark(convert.Options{}).Convert(context.Background(), "x.md", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t,
		"<link rel=\"stylesheet\" href=\"default.css\">\n<div class=\"markdown-body\">\n<p>x</p>\n\n</div>",
		string(res.HTML))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		engine  config.Engine
		want    config.Engine
		wantErr bool
	}{
		{"", config.EngineNative, false},
		{config.EngineNative, config.EngineNative, false},
		{config.EngineGoldmark, config.EngineGoldmark, false},
		{"pandoc", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Engine = tt.engine
			conv, err := convert.NewFromConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, conv.Engine())
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EscapeHTML = config.Bool(true)
	cfg.Fragment = config.Bool(true)
	cfg.Stylesheet = "x.css"

	opts := convert.OptionsFromConfig(cfg)
	assert.True(t, opts.EscapeHTML)
	assert.False(t, opts.DetectLanguages)
	assert.Equal(t, render.DocumentOptions{Stylesheet: "x.css", Fragment: true}, opts.Document)
}

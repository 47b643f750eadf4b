package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	fragments := []string{"<h1>x</h1>\n", "y"}

	tests := []struct {
		name string
		opts DocumentOptions
		want string
	}{
		{
			name: "default stylesheet",
			want: "<link rel=\"stylesheet\" href=\"default.css\">\n<div class=\"markdown-body\">\n<h1>x</h1>\ny\n</div>",
		},
		{
			name: "custom stylesheet",
			opts: DocumentOptions{Stylesheet: "theme/dark.css"},
			want: "<link rel=\"stylesheet\" href=\"theme/dark.css\">\n<div class=\"markdown-body\">\n<h1>x</h1>\ny\n</div>",
		},
		{
			name: "fragment",
			opts: DocumentOptions{Fragment: true},
			want: "<h1>x</h1>\ny",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Document(fragments, tt.opts))
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteDocument_Error(t *testing.T) {
	t.Parallel()

	err := WriteDocument(failingWriter{}, []string{"x"}, DocumentOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

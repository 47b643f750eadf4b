package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/pkg/config"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" summary ", config.FormatSummary, false},
		{"sarif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	for _, f := range config.Formats() {
		assert.True(t, f.IsValid(), "format %q", f)
	}
}

func TestEngine_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.EngineNative.IsValid())
	assert.True(t, config.EngineGoldmark.IsValid())
	assert.False(t, config.Engine("pandoc").IsValid())
}

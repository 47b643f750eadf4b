package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/internal/ui/pretty"
)

func TestFormatTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	columns := []pretty.Column{{Header: "KIND"}, {Header: "SPAN"}, {Header: "TEXT", Flex: true}}
	rows := [][]string{
		{"Heading", "0-1", "#"},
		{"Text", "2-7", "hello"},
	}

	got := styles.FormatTable(columns, rows, 80)
	want := "KIND     SPAN  TEXT\n" +
		"====================\n" +
		"Heading  0-1   #\n" +
		"Text     2-7   hello\n"
	assert.Equal(t, want, got)
}

func TestFormatTable_TruncatesFlexColumn(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	columns := []pretty.Column{{Header: "K"}, {Header: "TEXT", Flex: true}}
	rows := [][]string{{"a", strings.Repeat("x", 40)}}

	got := styles.FormatTable(columns, rows, 20)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a  "+strings.Repeat("x", 14)+"...", lines[2])
}

func TestFormatTable_NoColumns(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewStyles(false).FormatTable(nil, nil, 80))
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 8, "trunc..."},
		{"abcdef", 2, "ab"},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.TruncateString(tt.in, tt.width))
		})
	}
}

package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies how conversion results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Formats lists every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSummary}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q (want text, json, or summary)", s)
	}
	return f, nil
}

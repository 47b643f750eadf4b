package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is "yaml" (default) or "json".
	Format string
}

const yamlTemplate = `# gomdhtml configuration
# See: https://github.com/yaklabco/gomdhtml

# Converter: native (built-in lexer) or goldmark
engine: native

# Stylesheet linked from every generated document
stylesheet: default.css

# Escape HTML special characters in text
# escape_html: false

# Label untagged code blocks by detecting their language
# detect_languages: false

# Write bare HTML without the stylesheet link and wrapper div
# fragment: false

# Write output below this directory instead of next to each source file
# output_dir: site

# Extension of generated files
extension: .html

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Watch mode settings
# watch:
#   debounce: 200ms
`

// GenerateTemplate creates a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return []byte(yamlTemplate), nil
	case "json":
		data, err := json.MarshalIndent(templateJSON(NewConfig()), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json template: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

// templateJSON mirrors the YAML keys so both templates describe the same file.
func templateJSON(cfg *Config) map[string]any {
	return map[string]any{
		"engine":           cfg.Engine,
		"stylesheet":       cfg.Stylesheet,
		"escape_html":      cfg.ShouldEscapeHTML(),
		"detect_languages": cfg.ShouldDetectLanguages(),
		"fragment":         cfg.IsFragment(),
		"extension":        cfg.Extension,
		"ignore":           []string{},
		"watch":            map[string]string{"debounce": cfg.Watch.Debounce},
	}
}

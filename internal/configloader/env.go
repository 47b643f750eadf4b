package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdhtml/pkg/config"
)

// envVarPrefix is the prefix for all gomdhtml environment variables.
const envVarPrefix = "GOMDHTML_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds an environment variable to a config field.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"ENGINE":           {field: "engine", typ: envTypeString, help: "Converter: native or goldmark"},
	"STYLESHEET":       {field: "stylesheet", typ: envTypeString, help: "Stylesheet href for generated documents"},
	"ESCAPE_HTML":      {field: "escape_html", typ: envTypeBool, help: "Escape HTML in text: true or false"},
	"DETECT_LANGUAGES": {field: "detect_languages", typ: envTypeBool, help: "Label untagged code blocks: true or false"},
	"FRAGMENT":         {field: "fragment", typ: envTypeBool, help: "Write bare HTML fragments: true or false"},
	"OUTPUT_DIR":       {field: "output_dir", typ: envTypeString, help: "Directory for generated files"},
	"EXTENSION":        {field: "extension", typ: envTypeString, help: "Extension of generated files"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"WATCH_DEBOUNCE":   {field: "watch.debounce", typ: envTypeString, help: "Watch debounce duration (e.g. 200ms)"},
	"JOBS":             {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"FORMAT":           {field: "format", typ: envTypeString, help: "Report format: text, json, or summary"},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool, help: "Convert without writing: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDHTML_ (e.g., GOMDHTML_ENGINE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, dropping empty elements.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "engine":
		cfg.Engine = config.Engine(value)
	case "stylesheet":
		cfg.Stylesheet = value
	case "output_dir":
		cfg.OutputDir = value
	case "extension":
		cfg.Extension = value
	case "watch.debounce":
		cfg.Watch.Debounce = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "escape_html":
		cfg.EscapeHTML = config.Bool(value)
	case "detect_languages":
		cfg.DetectLanguages = config.Bool(value)
	case "fragment":
		cfg.Fragment = config.Bool(value)
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

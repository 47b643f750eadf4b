package configloader

import "github.com/yaklabco/gomdhtml/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil,
//     so a later layer can turn an option back off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.Stylesheet != "" {
		result.Stylesheet = override.Stylesheet
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Extension != "" {
		result.Extension = override.Extension
	}
	if override.Watch.Debounce != "" {
		result.Watch.Debounce = override.Watch.Debounce
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.EscapeHTML != nil {
		result.EscapeHTML = override.EscapeHTML
	}
	if override.DetectLanguages != nil {
		result.DetectLanguages = override.DetectLanguages
	}
	if override.Fragment != nil {
		result.Fragment = override.Fragment
	}

	// DryRun only exists on the CLI layer, where false means "not given".
	if override.DryRun {
		result.DryRun = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

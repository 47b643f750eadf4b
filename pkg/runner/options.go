// Package runner converts many markdown files concurrently.
package runner

import "github.com/yaklabco/gomdhtml/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories. If empty, the
	// working directory is used.
	Paths []string

	// WorkingDir resolves relative Paths and OutputDir. If empty, the
	// process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutputDir mirrors the source tree below this directory. Empty writes
	// each output next to its source.
	OutputDir string

	// OutputExt replaces the source extension. Defaults to ".html".
	OutputExt string

	// DryRun converts without writing outputs.
	DryRun bool
}

// OptionsFromConfig builds run options from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutputDir:    cfg.OutputDir,
		OutputExt:    cfg.Extension,
		DryRun:       cfg.DryRun,
	}
}

// DefaultExtensions returns the default set of markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// EffectivePaths returns Paths, or "." when none were given.
func (o Options) EffectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// IsMarkdown reports whether path has one of the configured markdown
// extensions.
func (o Options) IsMarkdown(path string) bool {
	return hasExtension(path, o.effectiveExtensions())
}

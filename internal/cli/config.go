package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/internal/configloader"
	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
)

// configFlags are the flags that override configuration file values.
type configFlags struct {
	engine          string
	stylesheet      string
	outputDir       string
	extension       string
	ignore          []string
	escapeHTML      bool
	detectLanguages bool
	fragment        bool
	jobs            int
	dryRun          bool
}

func addConfigFlags(cmd *cobra.Command, flags *configFlags) {
	cmd.Flags().StringVar(&flags.engine, "engine", "", "converter: native or goldmark")
	cmd.Flags().StringVar(&flags.stylesheet, "stylesheet", "", "stylesheet href for generated documents")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write outputs below this directory")
	cmd.Flags().StringVar(&flags.extension, "extension", "", "extension of generated files (default .html)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.escapeHTML, "escape-html", false, "escape HTML special characters in text")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false, "label untagged code blocks by content")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "omit the stylesheet link and wrapper div")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing outputs")
}

// cliConfig builds the CLI configuration layer. Only flags the user set are
// carried so that config files keep their values otherwise.
func (f *configFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("engine") {
		cfg.Engine = config.Engine(f.engine)
	}
	if changed("stylesheet") {
		cfg.Stylesheet = f.stylesheet
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("extension") {
		cfg.Extension = f.extension
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("escape-html") {
		cfg.EscapeHTML = config.Bool(f.escapeHTML)
	}
	if changed("detect-languages") {
		cfg.DetectLanguages = config.Bool(f.detectLanguages)
	}
	if changed("fragment") {
		cfg.Fragment = config.Bool(f.fragment)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	cfg.DryRun = f.dryRun
	return cfg
}

// loadConfig resolves the layered configuration for the current directory.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrIO, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldEngine, cfg.Engine,
		logging.FieldStylesheet, cfg.Stylesheet,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// commandContext returns the command context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// reportFlags control how results are printed.
type reportFlags struct {
	format    string
	noContext bool
	compact   bool
	verbose   bool
}

func addReportFlags(cmd *cobra.Command, flags *reportFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every output file written")
}

// apply carries an explicit --format into the CLI configuration layer.
func (f *reportFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(strings.ToLower(strings.TrimSpace(f.format)))
	}
}

// reporterOptions builds reporter options from the resolved configuration.
func (f *reportFlags) reporterOptions(cmd *cobra.Command, cfg *config.Config, workDir string) reporter.Options {
	format := cfg.Format
	if format == "" {
		format = config.FormatText
	}
	return reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !f.noContext,
		ShowSummary: true,
		ShowOutputs: f.verbose,
		Compact:     f.compact,
		WorkingDir:  workDir,
	}
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

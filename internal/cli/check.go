package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

type checkFlags struct {
	configFlags
	reportFlags
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report malformed Markdown without writing HTML",
		Long: `Convert Markdown files in memory and report every malformed construct:
headings deeper than six levels, unterminated links and images, and broken
table separator rows. No files are written. The exit code is non-zero when
anything is reported.

Examples:
  gomdhtml check                 # Check current directory
  gomdhtml check docs/ --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addConfigFlags(cmd, &flags.configFlags)
	addReportFlags(cmd, &flags.reportFlags)
	_ = cmd.Flags().MarkHidden("dry-run")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := commandContext(cmd)

	cliCfg := flags.cliConfig(cmd)
	flags.apply(cmd, cliCfg)
	cliCfg.DryRun = true

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	conv, err := convert.NewFromConfig(cfg)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	result, err := runner.New(conv).Run(ctx, runner.OptionsFromConfig(cfg, args, workDir))
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	opts := flags.reporterOptions(cmd, cfg, workDir)
	opts.ShowOutputs = false
	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, true) != ExitSuccess {
		return ErrConversionErrors
	}
	return nil
}

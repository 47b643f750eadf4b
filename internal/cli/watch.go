package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
	"github.com/yaklabco/gomdhtml/pkg/runner"
	"github.com/yaklabco/gomdhtml/pkg/watch"
)

type watchFlags struct {
	configFlags
	reportFlags

	debounce string
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Convert Markdown files and re-convert them when they change",
		Long: `Convert every Markdown file once, then watch the given paths and
re-convert files whose content changes. New directories are watched as they
appear. Press Ctrl-C to stop.

Examples:
  gomdhtml watch                     # Watch current directory
  gomdhtml watch docs/ -o site       # Mirror docs/ into site/ on change
  gomdhtml watch --debounce 500ms`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	addConfigFlags(cmd, &flags.configFlags)
	addReportFlags(cmd, &flags.reportFlags)
	cmd.Flags().StringVar(&flags.debounce, "debounce", "", "quiet period before converting changes (e.g. 200ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := logging.FromContext(ctx)

	cliCfg := flags.cliConfig(cmd)
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("debounce") {
		cliCfg.Watch.Debounce = flags.debounce
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	conv, err := convert.NewFromConfig(cfg)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	rep, err := reporter.New(flags.reporterOptions(cmd, cfg, workDir))
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	w, err := watch.New(runner.New(conv), watch.Options{
		Run:      runner.OptionsFromConfig(cfg, args, workDir),
		Debounce: debounce,
		OnResult: func(ctx context.Context, result *runner.Result) {
			if _, err := rep.Report(ctx, result); err != nil {
				logger.Error("report results", logging.FieldError, err)
			}
		},
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	logger.Info("stopped watching")
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/internal/ui/pretty"
	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/fsutil"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

// stdinPath names standard input as a source.
const stdinPath = "-"

type convertFlags struct {
	configFlags
	reportFlags

	stdout bool
	strict bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Markdown files to HTML",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	addConvertFlags(cmd, flags)

	return cmd
}

const convertLongDescription = `Convert Markdown files to HTML.

By default, converts all .md and .markdown files in the current directory
and subdirectories, writing each .html file next to its source. Outputs
whose content is unchanged are not rewritten. Malformed constructs are
rendered as error blocks and reported as diagnostics.

Examples:
  gomdhtml convert                      # Convert current directory
  gomdhtml convert docs/ -o site        # Mirror docs/ into site/
  gomdhtml convert README.md --stdout   # Print HTML for one file
  cat notes.md | gomdhtml convert - --stdout --fragment
  gomdhtml convert --dry-run --format summary
  gomdhtml convert --strict             # Fail on malformed markdown`

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	addConfigFlags(cmd, &flags.configFlags)
	addReportFlags(cmd, &flags.reportFlags)
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "write the HTML of a single file to standard output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when malformed markdown is found")
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := flags.cliConfig(cmd)
	flags.apply(cmd, cliCfg)

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	conv, err := convert.NewFromConfig(cfg)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	if flags.stdout {
		if len(args) != 1 {
			return fmt.Errorf("%w: --stdout needs exactly one file, got %d", ErrInvalidUsage, len(args))
		}
		return convertToStdout(cmd, conv, args[0], flags)
	}

	opts := runner.OptionsFromConfig(cfg, args, workDir)
	logger.Debug("starting conversion run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldEngine, conv.Engine(),
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(conv).Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	rep, err := reporter.New(flags.reporterOptions(cmd, cfg, workDir))
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrConversionErrors
	}
	return nil
}

// convertToStdout converts one file, or standard input for "-", and writes
// the HTML to the command output. Diagnostics go to the error stream.
func convertToStdout(cmd *cobra.Command, conv convert.Converter, path string, flags *convertFlags) error {
	ctx := commandContext(cmd)

	src, name, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	res, err := conv.Convert(ctx, name, src)
	if err != nil {
		return fmt.Errorf("convert %s: %w", name, err)
	}

	if _, err := cmd.OutOrStdout().Write(res.HTML); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("write output: %w", err))
	}

	if len(res.Diagnostics) > 0 {
		errOut := cmd.ErrOrStderr()
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), errOut))
		for _, diag := range res.Diagnostics {
			fmt.Fprint(errOut, styles.FormatDiagnostic(diag, !flags.noContext))
		}
		if flags.strict {
			return ErrConversionErrors
		}
	}
	return nil
}

// readSource reads path, or standard input for "-". It returns the content
// and the name to report it under.
func readSource(cmd *cobra.Command, path string) ([]byte, string, error) {
	ctx := commandContext(cmd)

	if path == stdinPath {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Join(ErrIO, fmt.Errorf("read standard input: %w", err))
		}
		return src, "<stdin>", nil
	}

	src, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, "", errors.Join(ErrIO, err)
	}
	return src, filepath.Clean(path), nil
}

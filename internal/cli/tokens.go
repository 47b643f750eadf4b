package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/lexer"
	"github.com/yaklabco/gomdhtml/pkg/reporter"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

type tokensFlags struct {
	format  string
	compact bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Markdown file",
		Long: `Tokenize a Markdown file with the native lexer and print every token with
its kind, rune span and source text. Use "-" to read standard input.

Examples:
  gomdhtml tokens README.md
  gomdhtml tokens README.md --format json
  echo '# Hi' | gomdhtml tokens -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runTokens(cmd *cobra.Command, path string, flags *tokensFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := config.ParseFormat(flags.format)
	if err != nil || format == config.FormatSummary {
		return fmt.Errorf("%w: format must be text or json, got %q", ErrInvalidUsage, flags.format)
	}

	src, name, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	doc := bytes.Runes(src)
	tokens := lexer.TokenizeRunes(doc)
	logger.Debug("tokenized",
		logging.FieldPath, name,
		logging.FieldTokens, len(tokens),
		logging.FieldErrors, token.Count(tokens, token.Error),
	)
	if !token.ValidateOrder(tokens) {
		logger.Warn("token stream is out of order", logging.FieldPath, name)
	}

	err = reporter.WriteTokens(cmd.OutOrStdout(), doc, tokens, reporter.TokenOptions{
		Format:  format,
		Color:   colorMode(cmd),
		Compact: flags.compact,
	})
	if err != nil {
		return errors.Join(ErrIO, err)
	}
	return nil
}

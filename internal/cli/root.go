// Package cli provides the Cobra command structure for gomdhtml.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhtml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdhtml command with all subcommands.
// Run without a subcommand it behaves like convert.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	flags := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomdhtml [paths...]",
		Short: "A fast Markdown to HTML converter",
		Long: `gomdhtml converts Markdown files to HTML.

It ships a small native lexer and renderer that understand headings, emphasis,
checkbuttons, links, images, blockquotes, lists, tables and code blocks, and
can switch to a CommonMark engine for full compatibility. Malformed constructs
are reported with their position and rendered as visible error markers.

Running gomdhtml without a subcommand is the same as "gomdhtml convert".`,
		Version: info.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addConvertFlags(rootCmd, flags)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdhtml/internal/configloader"
	"github.com/yaklabco/gomdhtml/internal/ui/pretty"
)

// exitCodeHelp documents the process exit codes on the root help page.
//
//nolint:gochecknoglobals // Read-only lookup table.
var exitCodeHelp = []struct {
	code int
	desc string
}{
	{ExitSuccess, "success"},
	{ExitConversionErrors, "a file failed, or malformed markdown with check or --strict"},
	{ExitInvalidUsage, "invalid command-line usage"},
	{ExitConfigError, "invalid configuration"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "file could not be read or written"},
}

// HelpFormatter renders command help with the same styles as the reports.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const helpTemplate = `{{ command .CommandPath }}{{ if .Version }} {{ dim .Version }}{{ end }}

{{ with (or .Long .Short) }}{{ trimRight . }}

{{ end }}{{ template "usage" . }}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if not .HasParent }}

{{ heading "Environment:" }}
{{ environment }}

{{ heading "Exit Codes:" }}
{{ exitCodes }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// passes both down to subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))
	template.Must(tmpl.New("usage").Parse(usageTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := tmpl.ExecuteTemplate(c.OutOrStderr(), "usage", c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := tmpl.ExecuteTemplate(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":     h.styles.Bold.Render,
		"heading":     h.styles.Warning.Render,
		"subcommand":  h.styles.Success.Render,
		"dim":         h.styles.Dim.Render,
		"pad":         pad,
		"trimRight":   trimRightLines,
		"flags":       h.flags,
		"environment": h.environment,
		"exitCodes":   h.exitCodes,
	}
}

// flags styles pflag's usage block. Each line is "  -s, --name type   desc";
// the flag names and the type are styled separately from the description.
func (h *HelpFormatter) flags(set *pflag.FlagSet) string {
	usages := strings.TrimRight(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		gap := strings.Index(body, "   ")
		if gap < 0 {
			continue
		}
		names, desc := body[:gap], strings.TrimLeft(body[gap:], " ")
		spacing := body[gap : len(body)-len(desc)]

		words := strings.Fields(names)
		for j, word := range words {
			if strings.HasPrefix(word, "-") {
				name := strings.TrimSuffix(word, ",")
				words[j] = h.styles.Location.Render(name) + word[len(name):]
			} else {
				words[j] = h.styles.Dim.Render(word)
			}
		}
		lines[i] = indent + strings.Join(words, " ") + spacing + desc
	}
	return strings.Join(lines, "\n")
}

// environment lists the GOMDHTML_* overrides in name order.
func (h *HelpFormatter) environment() string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.Location.Render(pad(name, width))+"  "+vars[name])
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) exitCodes() string {
	lines := make([]string, 0, len(exitCodeHelp))
	for _, ec := range exitCodeHelp {
		lines = append(lines, "  "+h.styles.Location.Render(pad(strconv.Itoa(ec.code), 3))+"  "+ec.desc)
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimRightLines removes trailing blanks from every line of s.
func trimRightLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

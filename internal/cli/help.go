// Package cli provides the Cobra command structure for keepmark.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/keepmark/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles used when rendering command help.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	example    lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{
			command:    plain,
			heading:    plain,
			subcommand: plain,
			flag:       plain,
			example:    plain,
			dim:        plain,
		}
	}
	return helpStyles{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help text for Cobra commands.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter honoring the color mode for writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.styles.command.Render,
		"heading":    h.styles.heading.Render,
		"subcommand": h.styles.subcommand.Render,
		"example":    h.styles.example.Render,
		"dim":        h.styles.dim.Render,
		"flagUsages": h.flagUsages,
		"join":       strings.Join,
		"rpad": func(s string, padding int) string {
			if len(s) >= padding {
				return s
			}
			return s + strings.Repeat(" ", padding-len(s))
		},
		"trim": func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

// flagUsages colorizes the flag column of a pflag usage block, leaving the
// description column untouched.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	flagPart, description, found := splitFlagColumns(line)
	if !found {
		return line
	}

	var out strings.Builder
	for _, token := range strings.Fields(flagPart) {
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		name, comma := strings.CutSuffix(token, ",")
		if strings.HasPrefix(name, "-") {
			out.WriteString(h.styles.flag.Render(name))
		} else {
			// Value type hint such as "string" or "int".
			out.WriteString(h.styles.dim.Render(name))
		}
		if comma {
			out.WriteByte(',')
		}
	}
	return "  " + out.String() + "   " + description
}

// splitFlagColumns splits a pflag usage line at the first run of two or more
// spaces after the flag names.
func splitFlagColumns(line string) (flagPart, description string, found bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return "", "", false
	}
	for i := 0; i+1 < len(trimmed); i++ {
		if trimmed[i] == ' ' && trimmed[i+1] == ' ' {
			rest := strings.TrimLeft(trimmed[i:], " ")
			if rest == "" {
				break
			}
			return strings.TrimRight(trimmed[:i], " "), rest, true
		}
	}
	return "", "", false
}

// ApplyToCommand installs the styled help and usage renderers on cmd; Cobra
// propagates them to subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

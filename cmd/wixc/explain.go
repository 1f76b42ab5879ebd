// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apacker1/wix/internal/issue"
)

func newExplainCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain a diagnostic code or CLI error",
		Long: `Explain a diagnostic code or CLI error.

Without an argument, lists every code that has an explanation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, _ = fmt.Fprintln(app.stdout, issueTable())
				return nil
			}
			if style == "" {
				loaded, err := app.loadConfig(cmd.Context(), rootFlags)
				if err != nil {
					return err
				}
				style = loaded.Config.UI.ColorScheme.String()
			}
			return explain(app, args[0], style)
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "glamour style: auto, dark, light or notty (default ui.color_scheme)")
	return cmd
}

func explain(app *App, name, style string) error {
	iss := issue.Lookup(strings.ToLower(strings.TrimSpace(name)))
	if iss == nil {
		return issue.NewErrorContext().
			WithOperation("explain").
			WithResource(name).
			WithSuggestion("Run 'wixc explain' to list the known codes").
			Wrap(fmt.Errorf("unknown code %q", name)).
			BuildError()
	}
	rendered, err := iss.Render(style)
	if err != nil {
		return fmt.Errorf("render explanation: %w", err)
	}
	_, _ = fmt.Fprint(app.stdout, rendered)
	return nil
}

func issueTable() string {
	t := styledTable("CODE", "DESCRIPTION")
	for _, iss := range issue.Values() {
		t.Row(iss.Name(), issueTitle(iss))
	}
	return t.Render()
}

// issueTitle is the first markdown heading of an issue.
func issueTitle(iss *issue.Issue) string {
	for line := range strings.SplitSeq(string(iss.MarkdownMsg()), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return title
		}
	}
	return ""
}

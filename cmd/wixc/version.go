// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(app.stdout, "wixc %s\n", getVersionString())
			if !rootFlags.verbose {
				return nil
			}

			namespaces := app.Extensions.Namespaces()
			extensions := SubtitleStyle.Render("(none)")
			if len(namespaces) > 0 {
				extensions = strings.Join(namespaces, ", ")
			}
			_, _ = fmt.Fprintf(app.stdout, "%s: %s %s/%s\n", CmdStyle.Render("go"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(app.stdout, "%s: %d\n", CmdStyle.Render("tables"), len(app.Registry.Tables()))
			_, _ = fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("extensions"), extensions)
			return nil
		},
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"slices"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/apacker1/wix/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the wixc command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   "wixc",
		Short: "Compile WiX source into a typed intermediate",
		Long: TitleStyle.Render("wixc") + SubtitleStyle.Render(" - compile WiX source into a typed intermediate") + `

wixc validates WiX v4 markup and emits the intermediate a linker consumes:
one section per Package, Module, Fragment or PatchCreation, holding typed
rows and the ownership graph between them. Any error withholds the output.

` + SubtitleStyle.Render("Examples:") + `
  wixc compile product.wxs            Compile one file, print JSON
  wixc compile src --format yaml      Compile every .wxs under src
  wixc compile --watch                Recompile on change
  wixc explain duplicate_identifier   Explain a diagnostic
  wixc schema                         List the intermediate tables`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is wixc.cue in the user config directory)")

	root.AddCommand(
		newCompileCommand(app, flags),
		newExplainCommand(app, flags),
		newSchemaCommand(app),
		newConfigCommand(app, flags),
		newVersionCommand(app, flags),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the command tree and exits with the command's status. It is
// called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay uses the ActionableError form when available. An
// attached catalog issue adds a pointer to `wixc explain`.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	if ex := ae.Explanation(); ex != nil {
		shown := *ae
		shown.Suggestions = append(slices.Clip(ae.Suggestions), explainHint(ex.Name()))
		return shown.Format(verbose)
	}
	return ae.Format(verbose)
}

func explainHint(name string) string {
	return fmt.Sprintf("Run 'wixc explain %s' for details", name)
}

// reportError prints an actionable error in full and silences cobra's own
// one-line report. Other errors pass through unchanged.
func reportError(cmd *cobra.Command, app *App, err error, verbose bool) error {
	var ae *issue.ActionableError
	var exitErr *ExitError
	if err == nil || errors.As(err, &exitErr) || !errors.As(err, &ae) {
		return err
	}
	_, _ = fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/apacker1/wix/internal/build"
	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/issue"
)

// renderDiagnostic writes one diagnostic as "file(line): severity code: message".
func renderDiagnostic(w io.Writer, d diag.Diagnostic) {
	severity := WarningStyle.Render(string(d.Severity))
	if d.IsError() {
		severity = ErrorStyle.Render(string(d.Severity))
	}
	_, _ = fmt.Fprintf(w, "%s: %s %s: %s\n",
		locationStyle.Render(d.Source.String()), severity, CmdStyle.Render(string(d.Code)), d.Message)
}

// renderSummary writes the diagnostics of every unit in source order,
// followed by a one-line tally. Verbose output also points at the catalog
// entry of each reported code.
func renderSummary(w io.Writer, sum *build.Summary, verbose bool) {
	for _, u := range sum.Units {
		if u.ParseErr != nil {
			err := issue.NewErrorContext().
				WithOperation("parse source").
				WithResource(u.Source).
				WithIssue(issue.SourceParseErrorId).
				Wrap(u.ParseErr).
				Build()
			_, _ = fmt.Fprintln(w, ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))
			continue
		}
		for _, d := range u.Result.Diagnostics {
			renderDiagnostic(w, d)
		}
	}

	if verbose {
		renderExplainHints(w, sum)
	}

	errs, warnings := sum.Counts()
	status := SuccessStyle.Render("✓")
	if errs > 0 {
		status = ErrorStyle.Render("✗")
	}
	_, _ = fmt.Fprintf(w, "%s %d file(s), %d error(s), %d warning(s)\n", status, len(sum.Units), errs, warnings)
}

// renderExplainHints lists `wixc explain` once per distinct diagnostic code,
// in order of first appearance.
func renderExplainHints(w io.Writer, sum *build.Summary) {
	seen := make(map[diag.Code]bool)
	for _, u := range sum.Units {
		if u.ParseErr != nil {
			continue
		}
		for _, d := range u.Result.Diagnostics {
			if seen[d.Code] {
				continue
			}
			seen[d.Code] = true
			if ex := issue.ForCode(d.Code); ex != nil {
				_, _ = fmt.Fprintln(w, SubtitleStyle.Render(explainHint(ex.Name())))
			}
		}
	}
}

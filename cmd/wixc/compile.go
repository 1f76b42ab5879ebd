// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apacker1/wix/internal/build"
	"github.com/apacker1/wix/internal/config"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/internal/irstore"
	"github.com/apacker1/wix/internal/issue"
	"github.com/apacker1/wix/internal/watch"
)

// compileFlagValues holds the flags of `wixc compile`; empty values fall
// back to the configuration.
type compileFlagValues struct {
	format           string
	outDir           string
	sqlite           string
	jobs             int
	watch            bool
	warningsAsErrors bool
}

func newCompileCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &compileFlagValues{}

	cmd := &cobra.Command{
		Use:   "compile [files or directories...]",
		Short: "Compile sources into intermediates",
		Long: `Compile WiX sources into intermediates.

Each argument is a file, a directory (searched with compile.patterns) or a
quoted glob. Without arguments the working directory is searched.
Diagnostics go to stderr; intermediates go to stdout or --out. The command
exits with status 1 when any document has an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCompile(cmd.Context(), app, rootFlags, flags, args)
			return reportError(cmd, app, err, rootFlags.verbose)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "intermediate encoding: json or yaml (default from config)")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "write one intermediate per source into this directory")
	cmd.Flags().StringVar(&flags.sqlite, "sqlite", "", "also store all intermediates in this SQLite database")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "concurrent compiles (default from config, 0 uses all CPUs)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "recompile when sources change")
	cmd.Flags().BoolVar(&flags.warningsAsErrors, "warnings-as-errors", false, "treat every warning as an error")
	return cmd
}

func runCompile(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *compileFlagValues, args []string) error {
	loaded, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return err
	}
	cfg := applyCompileFlags(loaded.Config, flags)
	if ok, errs := cfg.Output.Format.IsValid(); !ok {
		return errs[0]
	}

	if !flags.watch {
		failed, err := compileOnce(ctx, app, cfg, rootFlags.verbose, args)
		if err != nil {
			return err
		}
		if failed {
			return &ExitError{Code: 1}
		}
		return nil
	}
	return watchAndCompile(ctx, app, cfg, rootFlags.verbose, args)
}

// applyCompileFlags returns a copy of cfg with the non-empty flags applied.
func applyCompileFlags(base *config.Config, flags *compileFlagValues) *config.Config {
	cfg := *base
	if flags.format != "" {
		cfg.Output.Format = config.OutputFormat(strings.ToLower(flags.format))
	}
	if flags.outDir != "" {
		cfg.Output.Dir = flags.outDir
	}
	if flags.sqlite != "" {
		cfg.Output.SQLite = flags.sqlite
	}
	if flags.jobs > 0 {
		cfg.Compile.Jobs = flags.jobs
	}
	if flags.warningsAsErrors {
		cfg.Diagnostics.WarningsAsErrors = true
	}
	return &cfg
}

// compileOnce resolves, compiles, reports and writes one batch. It reports
// whether any document failed.
func compileOnce(ctx context.Context, app *App, cfg *config.Config, verbose bool, args []string) (bool, error) {
	sources, err := build.ResolveSources(args, cfg.Compile.Patterns)
	if err != nil {
		return false, issue.NewErrorContext().
			WithOperation("find sources").
			WithResource(strings.Join(args, " ")).
			WithSuggestion("Pass a .wxs file, a directory or a quoted glob").
			WithIssue(issue.SourceNotFoundId).
			Wrap(err).
			BuildError()
	}

	logger := app.logger(verbose)
	sum, err := build.Run(ctx, build.Request{
		Sources:     sources,
		Jobs:        cfg.Compile.Jobs,
		Registry:    app.Registry,
		Extensions:  app.Extensions,
		Diagnostics: cfg.Diagnostics.Options(),
		Logger:      logger,
	})
	if err != nil {
		return false, err
	}

	renderSummary(app.stderr, sum, verbose)
	if err := writeOutputs(app.stdout, app.Registry, cfg.Output, sum); err != nil {
		return false, err
	}

	if cfg.Output.SQLite != "" {
		if sum.Failed() {
			logger.Warn("not updating database because a document failed", "path", cfg.Output.SQLite)
		} else if err := irstore.Write(ctx, cfg.Output.SQLite, sum.Merged(), app.Registry); err != nil {
			return false, outputError(cfg.Output.SQLite, err)
		}
	}
	return sum.Failed(), nil
}

// writeOutputs writes one intermediate per successful unit, to stdout or to
// files under out.Dir.
func writeOutputs(stdout io.Writer, reg *ir.Registry, out config.OutputConfig, sum *build.Summary) error {
	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return outputError(out.Dir, err)
		}
	}

	first := true
	for _, u := range sum.Units {
		if u.Failed() {
			continue
		}
		var buf bytes.Buffer
		if err := encode(&buf, out.Format, u.Result.Intermediate, reg); err != nil {
			return outputError(u.Source, err)
		}

		if out.Dir == "" {
			if !first && out.Format == config.OutputFormatYAML {
				_, _ = io.WriteString(stdout, "---\n")
			}
			first = false
			if _, err := stdout.Write(buf.Bytes()); err != nil {
				return outputError("stdout", err)
			}
			continue
		}

		path := outputPath(out.Dir, u.Source, out.Format)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return outputError(path, err)
		}
	}
	return nil
}

func encode(w io.Writer, format config.OutputFormat, in *ir.Intermediate, reg *ir.Registry) error {
	if format == config.OutputFormatYAML {
		return ir.EncodeYAML(w, in, reg)
	}
	return ir.EncodeJSON(w, in, reg)
}

// outputPath maps src/product.wxs to <dir>/product.wixir.json.
func outputPath(dir, source string, format config.OutputFormat) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+".wixir."+format.String())
}

func outputError(resource string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write intermediate").
		WithResource(resource).
		WithIssue(issue.OutputWriteFailedId).
		Wrap(err).
		BuildError()
}

// watchAndCompile compiles once, then again on every batch of changes,
// until ctx is cancelled. Failed documents do not stop the loop.
func watchAndCompile(ctx context.Context, app *App, cfg *config.Config, verbose bool, args []string) error {
	recompile := func(ctx context.Context) {
		if _, err := compileOnce(ctx, app, cfg, verbose, args); err != nil && !errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(app.stderr, WarningStyle.Render("! ")+formatErrorForDisplay(err, verbose))
		}
	}

	recompile(ctx)
	_, _ = fmt.Fprintf(app.stderr, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", CmdStyle.Render("→"))

	w, err := watch.New(watch.Config{
		BaseDir:  watchBaseDir(args),
		Patterns: cfg.Compile.Patterns,
		Ignore:   cfg.Watch.Ignore,
		Debounce: cfg.Watch.Debounce,
		Logger:   app.logger(verbose),
		OnChange: func(ctx context.Context, changed []string) error {
			_, _ = fmt.Fprintf(app.stderr, "%s %d change(s): %s\n",
				CmdStyle.Render("→"), len(changed), strings.Join(changed, ", "))
			recompile(ctx)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}

// watchBaseDir watches the single directory argument, or the working
// directory otherwise.
func watchBaseDir(args []string) string {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return args[0]
		}
	}
	return ""
}

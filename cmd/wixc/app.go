// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/apacker1/wix/internal/config"
	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives an App and writes only to its streams.
	App struct {
		Config     config.Provider
		Registry   *ir.Registry
		Extensions *extension.Registry
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     config.Provider
		Registry   *ir.Registry
		Extensions *extension.Registry
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		configPath string
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = ir.DefaultRegistry()
	}
	return &App{
		Config:     deps.Config,
		Registry:   deps.Registry,
		Extensions: deps.Extensions,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

// loadConfig loads configuration honoring --config, and lets the config
// file turn on verbose output when the flag was not given.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (config.Loaded, error) {
	loaded, err := a.Config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return config.Loaded{}, err
	}
	if loaded.Config.UI.Verbose {
		flags.verbose = true
	}
	return loaded, nil
}

// logger returns the stderr logger; verbose enables debug traces.
func (a *App) logger(verbose bool) *log.Logger {
	l := log.NewWithOptions(a.stderr, log.Options{Prefix: "wixc"})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/apacker1/wix/internal/diag"
)

const (
	// OutputFormatJSON writes the intermediate as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML writes the intermediate as YAML.
	OutputFormatYAML OutputFormat = "yaml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	defaultDebounce = 300 * time.Millisecond
	maxJobs         = 256
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid glob pattern")
	// ErrNotAWarningCode is the sentinel error wrapped by NotAWarningCodeError.
	ErrNotAWarningCode = errors.New("code cannot be suppressed")
	// ErrInvalidJobs is returned when the job count is out of range.
	ErrInvalidJobs = errors.New("invalid job count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	// warningCodes are the codes diagnostics.suppress may name. Errors are
	// never suppressible.
	warningCodes = []diag.Code{
		diag.CodeDeprecatedAttribute,
		diag.CodeDeprecatedElement,
		diag.CodePlaceholderValue,
		diag.CodeInvalidVersion,
		diag.CodeIdentifierTooLong,
	}
)

type (
	// OutputFormat selects the intermediate dump encoding.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPatternError is returned for a malformed doublestar pattern.
	InvalidPatternError struct {
		Field   string
		Pattern string
	}

	// NotAWarningCodeError is returned when diagnostics.suppress names a code
	// that is not a warning.
	NotAWarningCodeError struct {
		Code diag.Code
	}

	// InvalidConfigError aggregates every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// DiagnosticsConfig tunes warning handling.
	DiagnosticsConfig struct {
		WarningsAsErrors bool     `json:"warnings_as_errors" mapstructure:"warnings_as_errors"`
		SuppressWarnings bool     `json:"suppress_warnings" mapstructure:"suppress_warnings"`
		Suppress         []string `json:"suppress" mapstructure:"suppress"`
	}

	// OutputConfig selects where and how intermediates are written.
	OutputConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
		// Dir receives one file per source; empty writes to stdout.
		Dir string `json:"dir" mapstructure:"dir"`
		// SQLite, when set, also stores every intermediate in this database.
		SQLite string `json:"sqlite" mapstructure:"sqlite"`
	}

	// CompileConfig controls source discovery and parallelism.
	CompileConfig struct {
		// Jobs bounds concurrent document compiles; 0 uses GOMAXPROCS.
		Jobs int `json:"jobs" mapstructure:"jobs"`
		// Patterns are the doublestar globs expanded when a directory is given.
		Patterns []string `json:"patterns" mapstructure:"patterns"`
	}

	// WatchConfig controls recompilation on change.
	WatchConfig struct {
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
		Ignore   []string      `json:"ignore" mapstructure:"ignore"`
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the complete wixc configuration.
	Config struct {
		Diagnostics DiagnosticsConfig `json:"diagnostics" mapstructure:"diagnostics"`
		Output      OutputConfig      `json:"output" mapstructure:"output"`
		Compile     CompileConfig     `json:"compile" mapstructure:"compile"`
		Watch       WatchConfig       `json:"watch" mapstructure:"watch"`
		UI          UIConfig          `json:"ui" mapstructure:"ui"`
	}
)

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: json, yaml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is json or yaml.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputFormatJSON, OutputFormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s: invalid glob pattern %q", e.Field, e.Pattern)
}

func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

func (e *NotAWarningCodeError) Error() string {
	return fmt.Sprintf("diagnostics.suppress: %q is not a warning code", e.Code)
}

func (e *NotAWarningCodeError) Unwrap() error { return ErrNotAWarningCode }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Options converts the section into sink options.
func (c DiagnosticsConfig) Options() diag.Options {
	opts := diag.Options{WarningsAsErrors: c.WarningsAsErrors, SuppressWarnings: c.SuppressWarnings}
	for _, code := range c.Suppress {
		opts.Suppress = append(opts.Suppress, diag.Code(code))
	}
	return opts
}

// IsValid returns whether every suppressed code is a warning code.
func (c DiagnosticsConfig) IsValid() (bool, []error) {
	var errs []error
	for _, code := range c.Suppress {
		if !slices.Contains(warningCodes, diag.Code(code)) {
			errs = append(errs, &NotAWarningCodeError{Code: diag.Code(code)})
		}
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the output format is known.
func (c OutputConfig) IsValid() (bool, []error) {
	return c.Format.IsValid()
}

// IsValid returns whether the job count is in range and every pattern parses.
func (c CompileConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Jobs < 0 || c.Jobs > maxJobs {
		errs = append(errs, fmt.Errorf("%w: %d (valid: 0..%d)", ErrInvalidJobs, c.Jobs, maxJobs))
	}
	errs = append(errs, validatePatterns("compile.patterns", c.Patterns)...)
	return len(errs) == 0, errs
}

// IsValid returns whether every ignore pattern parses.
func (c WatchConfig) IsValid() (bool, []error) {
	errs := validatePatterns("watch.ignore", c.Ignore)
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields, delegating to each
// section.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, v := range []interface{ IsValid() (bool, []error) }{c.Diagnostics, c.Output, c.Compile, c.Watch, c.UI.ColorScheme} {
		if valid, fieldErrs := v.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func validatePatterns(field string, patterns []string) []error {
	var errs []error
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, &InvalidPatternError{Field: field, Pattern: p})
		}
	}
	return errs
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: OutputFormatJSON},
		Compile: CompileConfig{
			Patterns: []string{"**/*.wxs"},
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
			Ignore:   []string{"**/.git/**", "**/obj/**", "**/bin/**"},
		},
		UI: UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

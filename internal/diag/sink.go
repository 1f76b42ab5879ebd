// SPDX-License-Identifier: MPL-2.0

package diag

import "slices"

type (
	// Options tunes how warnings are recorded. Errors are never suppressed.
	Options struct {
		// WarningsAsErrors records every warning with error severity.
		WarningsAsErrors bool
		// SuppressWarnings drops all warnings.
		SuppressWarnings bool
		// Suppress drops warnings with the listed codes.
		Suppress []Code
	}

	// Sink accumulates the diagnostics of one document compile.
	// It is not safe for concurrent use; each compile owns its own Sink.
	Sink struct {
		opts             Options
		suppressed       map[Code]bool
		diagnostics      []Diagnostic
		encounteredError bool
		errorCount       int
		warningCount     int
	}
)

// NewSink creates an empty sink.
func NewSink(opts Options) *Sink {
	suppressed := make(map[Code]bool, len(opts.Suppress))
	for _, c := range opts.Suppress {
		suppressed[c] = true
	}
	return &Sink{opts: opts, suppressed: suppressed}
}

// Write records a diagnostic, applying the warning options.
func (s *Sink) Write(d Diagnostic) {
	if d.Severity == SeverityWarning {
		if s.opts.SuppressWarnings || s.suppressed[d.Code] {
			return
		}
		if s.opts.WarningsAsErrors {
			d.Severity = SeverityError
		}
	}

	if d.Severity == SeverityError {
		s.encounteredError = true
		s.errorCount++
	} else {
		s.warningCount++
	}
	s.diagnostics = append(s.diagnostics, d)
}

// EncounteredError reports whether any error has been recorded.
func (s *Sink) EncounteredError() bool { return s.encounteredError }

// ErrorCount returns the number of recorded errors.
func (s *Sink) ErrorCount() int { return s.errorCount }

// WarningCount returns the number of recorded warnings.
func (s *Sink) WarningCount() int { return s.warningCount }

// Diagnostics returns the recorded diagnostics in emission order.
func (s *Sink) Diagnostics() []Diagnostic { return slices.Clone(s.diagnostics) }

// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"testing"

	"github.com/apacker1/wix/pkg/xmltree"
)

var testSource = xmltree.SourceLineNumber{File: "test.wxs", Line: 3}

func TestSink_ErrorFlagIsMonotonic(t *testing.T) {
	t.Parallel()

	s := NewSink(Options{})
	if s.EncounteredError() {
		t.Fatal("new sink should not report errors")
	}

	s.Write(PlaceholderValue(testSource, "Module", "Id", "PUT-MODULE-NAME-HERE"))
	if s.EncounteredError() {
		t.Fatal("a warning must not set the error flag")
	}

	s.Write(MissingRequiredAttribute(testSource, "Module", "Version"))
	if !s.EncounteredError() {
		t.Fatal("an error must set the error flag")
	}

	s.Write(DeprecatedElement(testSource, "IgnoreModularization", "Use SuppressModularization instead."))
	if !s.EncounteredError() {
		t.Fatal("the error flag must stay set after later warnings")
	}

	if s.ErrorCount() != 1 || s.WarningCount() != 2 {
		t.Errorf("counts = %d errors, %d warnings; want 1, 2", s.ErrorCount(), s.WarningCount())
	}
}

func TestSink_PreservesOrder(t *testing.T) {
	t.Parallel()

	s := NewSink(Options{})
	s.Write(UnexpectedAttribute(testSource, "Module", "Bogus"))
	s.Write(PlaceholderValue(testSource, "Module", "Id", "x"))
	s.Write(UnexpectedElement(testSource, "Module", "Bogus"))

	got := s.Diagnostics()
	want := []Code{CodeUnexpectedAttribute, CodePlaceholderValue, CodeUnexpectedElement}
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Code != want[i] {
			t.Errorf("diagnostic %d code = %s, want %s", i, got[i].Code, want[i])
		}
	}

	got[0].Code = "mutated"
	if s.Diagnostics()[0].Code != CodeUnexpectedAttribute {
		t.Error("Diagnostics() must return a copy")
	}
}

func TestSink_WarningOptions(t *testing.T) {
	t.Parallel()

	warning := InvalidVersion(testSource, "Module", "Version", "abc", "module")

	tests := []struct {
		name      string
		opts      Options
		wantCount int
		wantError bool
	}{
		{"default", Options{}, 1, false},
		{"suppress all", Options{SuppressWarnings: true}, 0, false},
		{"suppress code", Options{Suppress: []Code{CodeInvalidVersion}}, 0, false},
		{"suppress other code", Options{Suppress: []Code{CodePlaceholderValue}}, 1, false},
		{"warnings as errors", Options{WarningsAsErrors: true}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSink(tt.opts)
			s.Write(warning)
			if got := len(s.Diagnostics()); got != tt.wantCount {
				t.Errorf("diagnostic count = %d, want %d", got, tt.wantCount)
			}
			if s.EncounteredError() != tt.wantError {
				t.Errorf("EncounteredError() = %v, want %v", s.EncounteredError(), tt.wantError)
			}
		})
	}
}

func TestSink_ErrorsAreNeverSuppressed(t *testing.T) {
	t.Parallel()

	s := NewSink(Options{SuppressWarnings: true, Suppress: []Code{CodeMissingRequiredAttribute}})
	s.Write(MissingRequiredAttribute(testSource, "Dependency", "RequiredId"))
	if len(s.Diagnostics()) != 1 || !s.EncounteredError() {
		t.Fatal("errors must always be recorded")
	}
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := MissingRequiredAttribute(testSource, "Module", "Id")
	want := "test.wxs(3): error missing_required_attribute: The Module/@Id attribute was not found; it is required."
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMessages_Params(t *testing.T) {
	t.Parallel()

	d := IntegralValueOutOfRange(testSource, "Dependency", "RequiredLanguage", "40000", 0, 32767)
	if d.Code != CodeInvalidAttributeValue || d.Params["reason"] != ReasonRange {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Params["min"] != "0" || d.Params["max"] != "32767" {
		t.Errorf("range params = %v", d.Params)
	}

	c := IllegalAttributeCombination(testSource, "Exclusion", "ExcludeExceptLanguage", "ExcludeLanguage")
	if c.Severity != SeverityError || c.Params["other"] != "ExcludeLanguage" {
		t.Errorf("unexpected combination diagnostic %+v", c)
	}
}

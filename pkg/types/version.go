// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	maxPackageMajorMinor = 255
	maxVersionField      = 65535
)

var (
	// ErrInvalidPackageVersion is the sentinel error wrapped by InvalidPackageVersionError.
	ErrInvalidPackageVersion = errors.New("invalid package version")
	// ErrInvalidModuleVersion is the sentinel error wrapped by InvalidModuleVersionError.
	ErrInvalidModuleVersion = errors.New("invalid module version")

	binderVariablePattern = regexp.MustCompile(`^!\(bind\.[_A-Za-z][0-9A-Za-z_.]*\)$`)
)

type (
	// PackageVersion is an installer package version:
	// major.minor.build[.revision] where major and minor are at most 255 and
	// build and revision are at most 65535.
	PackageVersion string

	// ModuleVersion is the looser version used by modules and bundles: one to
	// four numeric fields of at most 65535 each, or a semantic version.
	ModuleVersion string

	// InvalidPackageVersionError is returned when a PackageVersion is malformed.
	InvalidPackageVersionError struct {
		Value PackageVersion
	}

	// InvalidModuleVersionError is returned when a ModuleVersion is malformed.
	InvalidModuleVersionError struct {
		Value ModuleVersion
	}
)

// IsBinderVariable reports whether s is a deferred "!(bind.Name)" reference
// that the binder resolves later.
func IsBinderVariable(s string) bool { return binderVariablePattern.MatchString(s) }

// String returns the string representation of the PackageVersion.
func (v PackageVersion) String() string { return string(v) }

// IsValid returns whether the PackageVersion satisfies the package grammar.
// Binder variables are accepted verbatim.
func (v PackageVersion) IsValid() (bool, []error) {
	if IsBinderVariable(string(v)) {
		return true, nil
	}
	fields, ok := splitNumericVersion(string(v), 3, 4)
	if !ok {
		return false, []error{&InvalidPackageVersionError{Value: v}}
	}
	for i, f := range fields {
		limit := maxVersionField
		if i < 2 {
			limit = maxPackageMajorMinor
		}
		if f > limit {
			return false, []error{&InvalidPackageVersionError{Value: v}}
		}
	}
	return true, nil
}

// String returns the string representation of the ModuleVersion.
func (v ModuleVersion) String() string { return string(v) }

// IsValid returns whether the ModuleVersion satisfies the module/bundle grammar.
func (v ModuleVersion) IsValid() (bool, []error) {
	s := string(v)
	if IsBinderVariable(s) {
		return true, nil
	}
	if fields, ok := splitNumericVersion(s, 1, 4); ok {
		for _, f := range fields {
			if f > maxVersionField {
				return false, []error{&InvalidModuleVersionError{Value: v}}
			}
		}
		return true, nil
	}

	candidate := s
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}
	if semver.IsValid(candidate) {
		return true, nil
	}
	return false, []error{&InvalidModuleVersionError{Value: v}}
}

// Error implements the error interface.
func (e *InvalidPackageVersionError) Error() string {
	return fmt.Sprintf("invalid package version %q: expected major.minor.build[.revision] with major and minor at most 255 and build and revision at most 65535", e.Value)
}

// Unwrap returns ErrInvalidPackageVersion for errors.Is() compatibility.
func (e *InvalidPackageVersionError) Unwrap() error { return ErrInvalidPackageVersion }

// Error implements the error interface.
func (e *InvalidModuleVersionError) Error() string {
	return fmt.Sprintf("invalid module version %q: expected up to four numeric fields of at most 65535 or a semantic version", e.Value)
}

// Unwrap returns ErrInvalidModuleVersion for errors.Is() compatibility.
func (e *InvalidModuleVersionError) Unwrap() error { return ErrInvalidModuleVersion }

// splitNumericVersion splits a dotted all-digit version. It fails on empty
// fields, non-digits, or a field count outside [minFields, maxFields].
func splitNumericVersion(s string, minFields, maxFields int) ([]int, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ".")
	if len(parts) < minFields || len(parts) > maxFields {
		return nil, false
	}
	fields := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return nil, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			// Only overflow can fail here; treat it as out of range.
			n = maxVersionField + 1
		}
		fields = append(fields, n)
	}
	return fields, true
}

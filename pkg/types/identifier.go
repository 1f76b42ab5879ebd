// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxIdentifierLength is the longest identifier accepted without a warning.
// Longer identifiers are legal but cannot be modularized safely.
const MaxIdentifierLength = 72

// ErrInvalidIdentifier is the sentinel error wrapped by InvalidIdentifierError.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[_A-Za-z][0-9A-Za-z_.]*$`)

type (
	// Identifier is a symbolic name: a letter or underscore followed by
	// letters, digits, underscores or periods.
	Identifier string

	// InvalidIdentifierError is returned when an Identifier does not match
	// the symbol-name grammar.
	InvalidIdentifierError struct {
		Value Identifier
	}
)

// String returns the string representation of the Identifier.
func (i Identifier) String() string { return string(i) }

// IsValid returns whether the Identifier matches the symbol-name grammar.
func (i Identifier) IsValid() (bool, []error) {
	if !identifierPattern.MatchString(string(i)) {
		return false, []error{&InvalidIdentifierError{Value: i}}
	}
	return true, nil
}

// IsTooLong reports whether the identifier exceeds MaxIdentifierLength.
func (i Identifier) IsTooLong() bool { return len(i) > MaxIdentifierLength }

// LooksFormatted reports whether the value is a bracketed formatted
// reference such as "[INSTALLDIR]" rather than a plain name.
func (i Identifier) LooksFormatted() bool {
	s := string(i)
	return len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: must start with a letter or underscore and contain only letters, digits, underscores and periods", e.Value)
}

// Unwrap returns ErrInvalidIdentifier for errors.Is() compatibility.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

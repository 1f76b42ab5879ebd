// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// GuidGenerate asks a later stage to generate the GUID.
	GuidGenerate Guid = "*"
	// IllegalGuid is the sentinel substituted for a malformed GUID.
	IllegalGuid Guid = "IllegalGuid"
)

// ErrInvalidGuid is the sentinel error wrapped by InvalidGuidError.
var ErrInvalidGuid = errors.New("invalid guid")

type (
	// Guid is a GUID in canonical registry form: "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}"
	// with uppercase hex digits. GuidGenerate and the empty value are
	// accepted only where the caller allows them.
	Guid string

	// InvalidGuidError is returned when a value cannot be read as a GUID.
	InvalidGuidError struct {
		Value string
	}
)

// ParseGuid reads a GUID in any form google/uuid accepts (bare, braced or
// urn-prefixed) and returns it canonicalised. generatable admits "*".
// allowEmpty admits "".
func ParseGuid(s string, generatable, allowEmpty bool) (Guid, error) {
	switch {
	case s == "" && allowEmpty:
		return "", nil
	case s == string(GuidGenerate) && generatable:
		return GuidGenerate, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return IllegalGuid, &InvalidGuidError{Value: s}
	}
	return Guid("{" + strings.ToUpper(u.String()) + "}"), nil
}

// String returns the string representation of the Guid.
func (g Guid) String() string { return string(g) }

// IsGenerated reports whether the value requests generation.
func (g Guid) IsGenerated() bool { return g == GuidGenerate }

// Error implements the error interface.
func (e *InvalidGuidError) Error() string {
	return fmt.Sprintf("invalid guid %q: expected the form {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}", e.Value)
}

// Unwrap returns ErrInvalidGuid for errors.Is() compatibility.
func (e *InvalidGuidError) Unwrap() error { return ErrInvalidGuid }

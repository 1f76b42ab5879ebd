// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

const (
	// YesNoNotSet means the attribute was not supplied.
	YesNoNotSet YesNo = iota
	// YesNoNo is the literal "no".
	YesNoNo
	// YesNoYes is the literal "yes".
	YesNoYes
	// YesNoIllegal is the sentinel substituted for any other value.
	YesNoIllegal
)

// ErrInvalidYesNo is the sentinel error wrapped by InvalidYesNoError.
var ErrInvalidYesNo = errors.New("invalid yes/no value")

type (
	// YesNo is a tri-state flag: unset, yes or no.
	YesNo int

	// InvalidYesNoError is returned when a value is neither "yes" nor "no".
	InvalidYesNoError struct {
		Value string
	}
)

// ParseYesNo reads the literals "yes" and "no". Matching is case-sensitive.
func ParseYesNo(s string) (YesNo, error) {
	switch s {
	case "yes":
		return YesNoYes, nil
	case "no":
		return YesNoNo, nil
	default:
		return YesNoIllegal, &InvalidYesNoError{Value: s}
	}
}

// Bool reports whether the flag is YesNoYes.
func (y YesNo) Bool() bool { return y == YesNoYes }

// String returns the attribute spelling of the flag.
func (y YesNo) String() string {
	switch y {
	case YesNoNotSet:
		return ""
	case YesNoNo:
		return "no"
	case YesNoYes:
		return "yes"
	default:
		return "illegal"
	}
}

// Error implements the error interface.
func (e *InvalidYesNoError) Error() string {
	return fmt.Sprintf("invalid yes/no value %q: must be \"yes\" or \"no\"", e.Value)
}

// Unwrap returns ErrInvalidYesNo for errors.Is() compatibility.
func (e *InvalidYesNoError) Unwrap() error { return ErrInvalidYesNo }

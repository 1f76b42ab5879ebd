// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// IntegerNotSet marks an integer attribute that was never supplied.
	IntegerNotSet = math.MinInt32
	// IllegalInteger is the sentinel substituted for a malformed or
	// out-of-range integer.
	IllegalInteger = math.MinInt32 + 1

	// MaxLanguage is the largest legal language identifier (int16 max).
	MaxLanguage = math.MaxInt16
)

var (
	// ErrInvalidInteger is the sentinel error wrapped by InvalidIntegerError.
	ErrInvalidInteger = errors.New("invalid integer")
	// ErrIntegerOutOfRange is the sentinel error wrapped by IntegerOutOfRangeError.
	ErrIntegerOutOfRange = errors.New("integer out of range")
)

type (
	// InvalidIntegerError is returned when a value is not a decimal integer.
	InvalidIntegerError struct {
		Value string
	}

	// IntegerOutOfRangeError is returned when a decimal integer falls outside
	// the inclusive [Min, Max] range.
	IntegerOutOfRangeError struct {
		Value    int64
		Min, Max int
	}
)

// ParseBoundedInteger reads a decimal integer within the inclusive range
// [minValue, maxValue]. On failure it returns IllegalInteger.
func ParseBoundedInteger(s string, minValue, maxValue int) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return IllegalInteger, &IntegerOutOfRangeError{Value: n, Min: minValue, Max: maxValue}
		}
		return IllegalInteger, &InvalidIntegerError{Value: s}
	}
	if n < int64(minValue) || n > int64(maxValue) {
		return IllegalInteger, &IntegerOutOfRangeError{Value: n, Min: minValue, Max: maxValue}
	}
	return int(n), nil
}

// Error implements the error interface.
func (e *InvalidIntegerError) Error() string {
	return fmt.Sprintf("invalid integer %q", e.Value)
}

// Unwrap returns ErrInvalidInteger for errors.Is() compatibility.
func (e *InvalidIntegerError) Unwrap() error { return ErrInvalidInteger }

// Error implements the error interface.
func (e *IntegerOutOfRangeError) Error() string {
	return fmt.Sprintf("integer %d out of range (must be in range %d-%d)", e.Value, e.Min, e.Max)
}

// Unwrap returns ErrIntegerOutOfRange for errors.Is() compatibility.
func (e *IntegerOutOfRangeError) Unwrap() error { return ErrIntegerOutOfRange }

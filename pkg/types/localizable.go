// SPDX-License-Identifier: MPL-2.0

package types

import (
	"regexp"
	"strconv"
)

var locVariablePattern = regexp.MustCompile(`^!\(loc\.[_A-Za-z][0-9A-Za-z_.]*\)$`)

// IsLocalizationVariable reports whether s is a deferred "!(loc.Name)" reference.
func IsLocalizationVariable(s string) bool { return locVariablePattern.MatchString(s) }

// IsDeferredReference reports whether s is a localization or binder
// reference whose value is only known after compilation.
func IsDeferredReference(s string) bool {
	return IsLocalizationVariable(s) || IsBinderVariable(s)
}

// ParseLocalizableInteger reads either a deferred reference, returned
// verbatim, or a bounded decimal integer, returned in canonical decimal form.
// On failure it returns the empty string and the integer parse error.
func ParseLocalizableInteger(s string, minValue, maxValue int) (string, error) {
	if IsDeferredReference(s) {
		return s, nil
	}
	n, err := ParseBoundedInteger(s, minValue, maxValue)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

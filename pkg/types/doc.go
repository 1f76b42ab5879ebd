// SPDX-License-Identifier: MPL-2.0

// Package types holds the value grammars of source attributes: identifiers,
// GUIDs, package and module versions, bounded integers, code pages, yes/no
// flags and localizable integers.
//
// Each grammar follows the same shape: a named type or parse function, an
// Invalid...Error carrying the offending value, and a sentinel returned by
// Unwrap for errors.Is. Parse functions return a sentinel value alongside
// the error so callers can keep going after reporting it.
//
// This package is a leaf dependency: it never imports compiler packages.
package types

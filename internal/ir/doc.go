// SPDX-License-Identifier: MPL-2.0

// Package ir defines the intermediate representation produced by the
// compiler and consumed by the linker.
//
// An [Intermediate] is an ordered list of [Section] values, one per
// compilation unit (package, module, fragment, patch creation). A section
// owns the rows created while it was active. Every row holds a [Tuple]: a
// typed Go struct for one table kind whose positional values are checked
// against the table's definition in a [Registry].
//
// Structural ownership edges ([ComplexReference]) and references to symbols
// defined elsewhere ([WixSimpleReference]) are ordinary tuples; the linker
// resolves them.
package ir

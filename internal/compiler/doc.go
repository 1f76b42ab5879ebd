// SPDX-License-Identifier: MPL-2.0

// Package compiler turns a preprocessed source tree into an intermediate
// representation.
//
// A [Compiler] walks one document depth first. Core namespace elements are
// dispatched through per-parent handler tables, other namespaces go to the
// registered extensions. Attribute values are validated by the diagnosing
// getters on [Core]: a malformed value produces exactly one diagnostic and
// a sentinel, and traversal always continues.
//
// Diagnostics are collected for the whole document. Rows are committed only
// while no error has been recorded, and [Result.Intermediate] is nil when
// the document produced any error.
package compiler

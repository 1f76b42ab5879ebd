// SPDX-License-Identifier: MPL-2.0

// Package diag collects compiler diagnostics.
//
// A [Sink] accumulates ordered [Diagnostic] records for one document and
// tracks whether any Error has been recorded. The flag is monotonic: once
// set it never resets, and the compiler consults it to withhold IR output
// while still collecting every later diagnostic. Rendering is left to the
// caller.
package diag

// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It holds a Markdown catalog explaining every diagnostic code and CLI
// failure, rendered with glamour, and the ActionableError type used by the
// command layer to attach remediation steps to errors.
package issue

// SPDX-License-Identifier: MPL-2.0

// Package build resolves source files and compiles them concurrently, one
// compiler per worker.
package build

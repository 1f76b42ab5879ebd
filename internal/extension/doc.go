// SPDX-License-Identifier: MPL-2.0

// Package extension defines how the compiler hands elements and attributes
// outside the core namespace to pluggable handlers.
//
// Handlers are registered per namespace in an immutable [Registry] that may
// be shared by concurrent compiles. The compiler delivers every extension
// node exactly once, in document order, together with a [Context] that
// exposes a read-only snapshot of the active compilation context.
package extension

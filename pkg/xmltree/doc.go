// SPDX-License-Identifier: MPL-2.0

// Package xmltree defines the element tree consumed by the compiler.
//
// A tree is produced by the preprocessor after macro and conditional
// expansion. Every element carries its namespace-qualified name, its ordered
// attributes and children, and the source position it came from. The
// compiler never mutates a tree.
//
// [Parse] is a minimal loader for already-expanded documents. It resolves
// namespaces and records line numbers but performs no preprocessing.
package xmltree

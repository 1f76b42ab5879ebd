// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the wixc command tree.
//
// Command handlers receive an *App carrying configuration, registries and
// output streams, so tests can run the whole tree against buffers.
package cmd

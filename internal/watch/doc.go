// SPDX-License-Identifier: MPL-2.0

// Package watch recompiles sources when they change.
//
// A Watcher monitors every non-ignored directory under a base directory and
// calls OnChange once per quiet period with the sorted set of changed paths
// that match the source patterns.
package watch

// SPDX-License-Identifier: MPL-2.0

// Package irstore writes a compiled intermediate to a SQLite database.
//
// Each registry table becomes one SQL table whose columns follow the table
// definition, prefixed by the owning section, the row's position in that
// section and its source location. A "sections" table lists the
// compilation units.
package irstore

// SPDX-License-Identifier: MPL-2.0

package ir

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

const (
	// ColumnString holds free text. The empty string means null.
	ColumnString ColumnType = iota
	// ColumnIdentifier holds a validated identifier.
	ColumnIdentifier
	// ColumnGuid holds a canonical GUID, "*" or the empty string.
	ColumnGuid
	// ColumnVersion holds a version string kept as written.
	ColumnVersion
	// ColumnLocalized holds a decimal integer or a deferred reference, as text.
	ColumnLocalized
	// ColumnNumber holds an int.
	ColumnNumber
	// ColumnBool holds a bool.
	ColumnBool
)

var (
	// ErrDuplicateTable is returned when a registry defines a table twice.
	ErrDuplicateTable = errors.New("duplicate table definition")
	// ErrUnknownTable is returned when a tuple names a table the registry lacks.
	ErrUnknownTable = errors.New("unknown table")
	// ErrTupleShape is returned when tuple values do not match the table columns.
	ErrTupleShape = errors.New("tuple does not match table definition")
)

type (
	// ColumnType is the storage type of a column.
	ColumnType int

	// ColumnDefinition describes one positional field of a table.
	ColumnDefinition struct {
		Name       string     `json:"name" yaml:"name"`
		Type       ColumnType `json:"type" yaml:"type"`
		Nullable   bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
		PrimaryKey bool       `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	}

	// TableDefinition is the ordered column list of one table kind.
	TableDefinition struct {
		Name    TableName          `json:"name" yaml:"name"`
		Columns []ColumnDefinition `json:"columns" yaml:"columns"`
	}

	// Registry maps table names to definitions. It is immutable after
	// construction and safe for concurrent use.
	Registry struct {
		tables map[TableName]*TableDefinition
	}

	// TupleShapeError describes why a tuple failed validation.
	TupleShapeError struct {
		Table  TableName
		Column string
		Reason string
	}
)

// String returns the lowercase name of the column type.
func (t ColumnType) String() string {
	switch t {
	case ColumnString:
		return "string"
	case ColumnIdentifier:
		return "identifier"
	case ColumnGuid:
		return "guid"
	case ColumnVersion:
		return "version"
	case ColumnLocalized:
		return "localized"
	case ColumnNumber:
		return "number"
	case ColumnBool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsText reports whether values of this column type are Go strings.
func (t ColumnType) IsText() bool {
	switch t {
	case ColumnString, ColumnIdentifier, ColumnGuid, ColumnVersion, ColumnLocalized:
		return true
	default:
		return false
	}
}

// NewRegistry builds a registry from table definitions.
func NewRegistry(defs ...TableDefinition) (*Registry, error) {
	r := &Registry{tables: make(map[TableName]*TableDefinition, len(defs))}
	for i := range defs {
		def := defs[i]
		if _, exists := r.tables[def.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, def.Name)
		}
		def.Columns = slices.Clone(def.Columns)
		r.tables[def.Name] = &def
	}
	return r, nil
}

// Lookup returns the definition for a table.
func (r *Registry) Lookup(name TableName) (TableDefinition, bool) {
	def, ok := r.tables[name]
	if !ok {
		return TableDefinition{}, false
	}
	return TableDefinition{Name: def.Name, Columns: slices.Clone(def.Columns)}, true
}

// Tables returns all table names in sorted order.
func (r *Registry) Tables() []TableName {
	return slices.Sorted(maps.Keys(r.tables))
}

// Validate checks the tuple's positional values against its table definition.
func (r *Registry) Validate(t Tuple) error {
	def, ok := r.tables[t.Table()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, t.Table())
	}

	values := t.Values()
	if len(values) != len(def.Columns) {
		return &TupleShapeError{
			Table:  def.Name,
			Reason: fmt.Sprintf("has %d values for %d columns", len(values), len(def.Columns)),
		}
	}

	for i, col := range def.Columns {
		v := values[i]
		switch {
		case col.Type.IsText():
			if _, ok := v.(string); !ok {
				return &TupleShapeError{Table: def.Name, Column: col.Name, Reason: fmt.Sprintf("expected string, got %T", v)}
			}
		case col.Type == ColumnNumber:
			if _, ok := v.(int); !ok {
				return &TupleShapeError{Table: def.Name, Column: col.Name, Reason: fmt.Sprintf("expected int, got %T", v)}
			}
		case col.Type == ColumnBool:
			if _, ok := v.(bool); !ok {
				return &TupleShapeError{Table: def.Name, Column: col.Name, Reason: fmt.Sprintf("expected bool, got %T", v)}
			}
		}
	}
	return nil
}

// Error implements the error interface.
func (e *TupleShapeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("table %s column %s: %s", e.Table, e.Column, e.Reason)
	}
	return fmt.Sprintf("table %s: %s", e.Table, e.Reason)
}

// Unwrap returns ErrTupleShape for errors.Is() compatibility.
func (e *TupleShapeError) Unwrap() error { return ErrTupleShape }

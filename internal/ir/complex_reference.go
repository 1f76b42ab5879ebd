// SPDX-License-Identifier: MPL-2.0

package ir

import "strings"

// Parent kinds of a complex reference.
const (
	ParentFeature        ComplexReferenceParentKind = "Feature"
	ParentComponentGroup ComplexReferenceParentKind = "ComponentGroup"
	ParentModule         ComplexReferenceParentKind = "Module"
	ParentPackage        ComplexReferenceParentKind = "Package"
)

// Child kinds of a complex reference.
const (
	ChildComponent      ComplexReferenceChildKind = "Component"
	ChildFeature        ComplexReferenceChildKind = "Feature"
	ChildComponentGroup ComplexReferenceChildKind = "ComponentGroup"
	ChildModule         ComplexReferenceChildKind = "Module"
)

// simpleReferenceKeySeparator joins the primary key columns of a simple reference.
const simpleReferenceKeySeparator = "/"

type (
	// ComplexReferenceParentKind is the owning side of a structural edge.
	ComplexReferenceParentKind string

	// ComplexReferenceChildKind is the owned side of a structural edge.
	ComplexReferenceChildKind string

	// ComplexReference is one parent/child ownership edge. Edges are recorded
	// in traversal order and resolved by the linker.
	ComplexReference struct {
		ParentKind     ComplexReferenceParentKind
		ParentID       string
		ParentLanguage string
		ChildKind      ComplexReferenceChildKind
		ChildID        string
		IsPrimary      bool
	}

	// WixSimpleReference names a row, possibly in another section, that the
	// linker must resolve.
	WixSimpleReference struct {
		TargetTable string
		PrimaryKeys string
	}

	// WixEnsureTable forces a table to exist in the output even when empty.
	WixEnsureTable struct {
		TargetTable string
	}

	// WixPatchProperty is a property of a patch creation.
	WixPatchProperty struct {
		Company string
		Name    string
		Value   string
	}
)

// NewSimpleReference builds a reference from a table and its primary key values.
func NewSimpleReference(table TableName, keys ...string) WixSimpleReference {
	return WixSimpleReference{TargetTable: string(table), PrimaryKeys: strings.Join(keys, simpleReferenceKeySeparator)}
}

// Keys splits the joined primary key values.
func (t WixSimpleReference) Keys() []string {
	return strings.Split(t.PrimaryKeys, simpleReferenceKeySeparator)
}

// Table implements Tuple.
func (ComplexReference) Table() TableName { return TableWixComplexReference }

// Values implements Tuple.
func (t ComplexReference) Values() []any {
	return []any{string(t.ParentKind), t.ParentID, t.ParentLanguage, string(t.ChildKind), t.ChildID, t.IsPrimary}
}

// Table implements Tuple.
func (WixSimpleReference) Table() TableName { return TableWixSimpleReference }

// Values implements Tuple.
func (t WixSimpleReference) Values() []any { return []any{t.TargetTable, t.PrimaryKeys} }

// Table implements Tuple.
func (WixEnsureTable) Table() TableName { return TableWixEnsureTable }

// Values implements Tuple.
func (t WixEnsureTable) Values() []any { return []any{t.TargetTable} }

// Table implements Tuple.
func (WixPatchProperty) Table() TableName { return TableWixPatchProperty }

// Values implements Tuple.
func (t WixPatchProperty) Values() []any { return []any{t.Company, t.Name, t.Value} }

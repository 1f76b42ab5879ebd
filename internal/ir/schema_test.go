// SPDX-License-Identifier: MPL-2.0

package ir

import (
	"errors"
	"slices"
	"testing"
)

type badTuple struct{ values []any }

func (badTuple) Table() TableName { return TableProperty }
func (b badTuple) Values() []any { return b.values }

type unknownTuple struct{}

func (unknownTuple) Table() TableName { return "Nope" }
func (unknownTuple) Values() []any { return nil }

func TestDefaultRegistry_AcceptsEveryTuple(t *testing.T) {
	t.Parallel()

	tuples := []Tuple{
		ModuleSignature{ModuleID: "M1", Language: "1033", Version: "1.0.0"},
		ModuleDependency{},
		ModuleExclusion{ExcludedLanguage: "0"},
		ModuleConfiguration{Name: "C", Format: ConfigurationFormatBitfield},
		ModuleSubstitution{},
		ModuleIgnoreTable{TargetTable: "Shortcut"},
		WixSuppressModularization{Name: "P"},
		SummaryInformation{PropertyID: SummaryTitle, Value: "x"},
		Property{ID: "P", Secure: true},
		Component{ID: "C", Attributes: Component64Bit},
		WixComponentGroup{ID: "G"},
		Feature{ID: "F", Level: 1},
		Directory{ID: "TARGETDIR", DefaultDir: "SourceDir"},
		Binary{ID: "B"},
		Icon{ID: "I"},
		WixVariable{ID: "V"},
		WixEnsureTable{TargetTable: "Shortcut"},
		NewSimpleReference(TableProperty, "P"),
		ComplexReference{ParentKind: ParentModule, ChildKind: ChildComponent},
		WixPatchProperty{Name: "N"},
	}

	reg := DefaultRegistry()
	seen := map[TableName]bool{}
	for _, tup := range tuples {
		if err := reg.Validate(tup); err != nil {
			t.Errorf("Validate(%T) error = %v", tup, err)
		}
		seen[tup.Table()] = true
	}
	for _, name := range reg.Tables() {
		if !seen[name] {
			t.Errorf("table %s has no tuple type in this test", name)
		}
	}
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name    string
		tuple   Tuple
		wantErr error
	}{
		{"unknown table", unknownTuple{}, ErrUnknownTable},
		{"too few values", badTuple{values: []any{"P"}}, ErrTupleShape},
		{"wrong text type", badTuple{values: []any{1, "", false, false, false}}, ErrTupleShape},
		{"wrong bool type", badTuple{values: []any{"P", "", "no", false, false}}, ErrTupleShape},
		{"valid", badTuple{values: []any{"P", "", false, false, false}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := reg.Validate(tt.tuple)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_ValidateReportsColumn(t *testing.T) {
	t.Parallel()

	err := DefaultRegistry().Validate(badTuple{values: []any{"P", "", "no", false, false}})
	var shape *TupleShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %T, want *TupleShapeError", err)
	}
	if shape.Column != "Admin" {
		t.Errorf("Column = %q, want Admin", shape.Column)
	}
}

func TestNewRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	def := TableDefinition{Name: "T", Columns: []ColumnDefinition{{Name: "A"}}}
	if _, err := NewRegistry(def, def); !errors.Is(err, ErrDuplicateTable) {
		t.Fatalf("NewRegistry() error = %v, want ErrDuplicateTable", err)
	}
}

func TestRegistry_LookupIsolation(t *testing.T) {
	t.Parallel()

	cols := []ColumnDefinition{{Name: "A", Type: ColumnString}}
	reg, err := NewRegistry(TableDefinition{Name: "T", Columns: cols})
	if err != nil {
		t.Fatal(err)
	}
	cols[0].Name = "mutated"

	def, ok := reg.Lookup("T")
	if !ok {
		t.Fatal("Lookup(T) not found")
	}
	if def.Columns[0].Name != "A" {
		t.Errorf("registry shares caller's slice: %q", def.Columns[0].Name)
	}
	def.Columns[0].Name = "again"
	if again, _ := reg.Lookup("T"); again.Columns[0].Name != "A" {
		t.Errorf("Lookup leaks internal slice: %q", again.Columns[0].Name)
	}
}

func TestRegistry_TablesSorted(t *testing.T) {
	t.Parallel()

	names := DefaultRegistry().Tables()
	if !slices.IsSorted(names) {
		t.Errorf("Tables() not sorted: %v", names)
	}
	if len(names) != len(DefaultTableDefinitions()) {
		t.Errorf("Tables() = %d names, want %d", len(names), len(DefaultTableDefinitions()))
	}
}

func TestModuleDependency_ColumnOrder(t *testing.T) {
	t.Parallel()

	def, _ := DefaultRegistry().Lookup(TableModuleDependency)
	var got []string
	for _, c := range def.Columns {
		got = append(got, c.Name)
	}
	want := []string{"ModuleID", "ModuleLanguage", "RequiredID", "RequiredLanguage", "RequiredVersion"}
	if !slices.Equal(got, want) {
		t.Errorf("columns = %v, want %v", got, want)
	}
}

func TestTableReferencingTuples_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tuple Tuple
		table TableName
		want  []any
	}{
		{ModuleSubstitution{TargetTable: "Registry", Row: "R", Column: "Value", Value: "V"}, TableModuleSubstitution, []any{"Registry", "R", "Value", "V"}},
		{ModuleIgnoreTable{TargetTable: "Shortcut"}, TableModuleIgnoreTable, []any{"Shortcut"}},
		{NewSimpleReference(TableProperty, "P"), TableWixSimpleReference, []any{"Property", "P"}},
		{WixEnsureTable{TargetTable: "Shortcut"}, TableWixEnsureTable, []any{"Shortcut"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.table), func(t *testing.T) {
			t.Parallel()
			if tt.tuple.Table() != tt.table {
				t.Errorf("Table() = %s, want %s", tt.tuple.Table(), tt.table)
			}
			if got := tt.tuple.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

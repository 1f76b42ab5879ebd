// SPDX-License-Identifier: MPL-2.0

package ir

import "sync"

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(DefaultTableDefinitions()...)
	if err != nil {
		panic(err)
	}
	return r
})

// DefaultRegistry returns the shared registry of every table the core
// compiler emits. It is built once and safe for concurrent use.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// DefaultTableDefinitions returns fresh copies of the built-in table
// definitions, for callers that extend the registry with their own tables.
func DefaultTableDefinitions() []TableDefinition {
	return []TableDefinition{
		table(TableModuleSignature,
			pk("ModuleID", ColumnIdentifier),
			pk("Language", ColumnLocalized),
			column("Version", ColumnVersion),
		),
		table(TableModuleDependency,
			pk("ModuleID", ColumnIdentifier),
			pk("ModuleLanguage", ColumnLocalized),
			pk("RequiredID", ColumnIdentifier),
			pk("RequiredLanguage", ColumnLocalized),
			nullable("RequiredVersion", ColumnVersion),
		),
		table(TableModuleExclusion,
			pk("ModuleID", ColumnIdentifier),
			pk("ModuleLanguage", ColumnLocalized),
			pk("ExcludedID", ColumnIdentifier),
			pk("ExcludedLanguage", ColumnLocalized),
			nullable("ExcludedMinVersion", ColumnVersion),
			nullable("ExcludedMaxVersion", ColumnVersion),
		),
		table(TableModuleConfiguration,
			pk("Name", ColumnIdentifier),
			column("Format", ColumnNumber),
			nullable("Type", ColumnString),
			nullable("ContextData", ColumnString),
			nullable("DefaultValue", ColumnString),
			column("KeyNoOrphan", ColumnBool),
			column("NonNullable", ColumnBool),
			nullable("DisplayName", ColumnString),
			nullable("Description", ColumnString),
			nullable("HelpLocation", ColumnString),
			nullable("HelpKeyword", ColumnString),
		),
		table(TableModuleSubstitution,
			pk("Table", ColumnIdentifier),
			pk("Row", ColumnString),
			pk("Column", ColumnIdentifier),
			nullable("Value", ColumnString),
		),
		table(TableModuleIgnoreTable, pk("Table", ColumnIdentifier)),
		table(TableWixSuppressModularization, pk("Name", ColumnIdentifier)),
		table(TableSummaryInformation,
			pk("PropertyID", ColumnNumber),
			column("Value", ColumnString),
		),
		table(TableProperty,
			pk("ID", ColumnIdentifier),
			nullable("Value", ColumnString),
			column("Admin", ColumnBool),
			column("Secure", ColumnBool),
			column("Hidden", ColumnBool),
		),
		table(TableComponent,
			pk("ID", ColumnIdentifier),
			nullable("Guid", ColumnGuid),
			nullable("Directory", ColumnIdentifier),
			column("Attributes", ColumnNumber),
			nullable("Condition", ColumnString),
			nullable("KeyPath", ColumnIdentifier),
		),
		table(TableWixComponentGroup, pk("ID", ColumnIdentifier)),
		table(TableFeature,
			pk("ID", ColumnIdentifier),
			nullable("Parent", ColumnIdentifier),
			nullable("Title", ColumnString),
			nullable("Description", ColumnString),
			nullable("Display", ColumnString),
			column("Level", ColumnNumber),
			nullable("Directory", ColumnIdentifier),
			column("Attributes", ColumnNumber),
		),
		table(TableDirectory,
			pk("ID", ColumnIdentifier),
			nullable("Parent", ColumnIdentifier),
			column("DefaultDir", ColumnString),
		),
		table(TableBinary,
			pk("ID", ColumnIdentifier),
			column("SourceFile", ColumnString),
			column("SuppressModularization", ColumnBool),
		),
		table(TableIcon,
			pk("ID", ColumnIdentifier),
			column("SourceFile", ColumnString),
			column("SuppressModularization", ColumnBool),
		),
		table(TableWixVariable,
			pk("ID", ColumnIdentifier),
			nullable("Value", ColumnString),
			column("Overridable", ColumnBool),
		),
		table(TableWixEnsureTable, pk("Table", ColumnIdentifier)),
		table(TableWixSimpleReference,
			pk("Table", ColumnIdentifier),
			pk("PrimaryKeys", ColumnString),
		),
		table(TableWixComplexReference,
			pk("ParentKind", ColumnString),
			pk("ParentID", ColumnIdentifier),
			nullable("ParentLanguage", ColumnLocalized),
			pk("ChildKind", ColumnString),
			pk("ChildID", ColumnIdentifier),
			column("IsPrimary", ColumnBool),
		),
		table(TableWixPatchProperty,
			pk("Company", ColumnString),
			pk("Name", ColumnString),
			column("Value", ColumnString),
		),
	}
}

func table(name TableName, cols ...ColumnDefinition) TableDefinition {
	return TableDefinition{Name: name, Columns: cols}
}

func column(name string, t ColumnType) ColumnDefinition {
	return ColumnDefinition{Name: name, Type: t}
}

func nullable(name string, t ColumnType) ColumnDefinition {
	return ColumnDefinition{Name: name, Type: t, Nullable: true}
}

func pk(name string, t ColumnType) ColumnDefinition {
	return ColumnDefinition{Name: name, Type: t, PrimaryKey: true}
}

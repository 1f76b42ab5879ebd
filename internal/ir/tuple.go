// SPDX-License-Identifier: MPL-2.0

package ir

import "github.com/apacker1/wix/pkg/xmltree"

// Table names known to the default registry.
const (
	TableModuleSignature           TableName = "ModuleSignature"
	TableModuleDependency          TableName = "ModuleDependency"
	TableModuleExclusion           TableName = "ModuleExclusion"
	TableModuleConfiguration       TableName = "ModuleConfiguration"
	TableModuleSubstitution        TableName = "ModuleSubstitution"
	TableModuleIgnoreTable         TableName = "ModuleIgnoreTable"
	TableWixSuppressModularization TableName = "WixSuppressModularization"
	TableSummaryInformation        TableName = "SummaryInformation"
	TableProperty                  TableName = "Property"
	TableComponent                 TableName = "Component"
	TableWixComponentGroup         TableName = "WixComponentGroup"
	TableFeature                   TableName = "Feature"
	TableDirectory                 TableName = "Directory"
	TableBinary                    TableName = "Binary"
	TableIcon                      TableName = "Icon"
	TableWixVariable               TableName = "WixVariable"
	TableWixEnsureTable            TableName = "WixEnsureTable"
	TableWixSimpleReference        TableName = "WixSimpleReference"
	TableWixComplexReference       TableName = "WixComplexReference"
	TableWixPatchProperty          TableName = "WixPatchProperty"
)

type (
	// TableName identifies a table kind.
	TableName string

	// Tuple is one typed record. Values returns the fields in column order
	// as string, int or bool, matching the table's definition.
	Tuple interface {
		Table() TableName
		Values() []any
	}

	// Row is a tuple placed at a source position.
	Row struct {
		Source xmltree.SourceLineNumber
		Tuple  Tuple
	}
)

// String returns the table name.
func (n TableName) String() string { return string(n) }

// Table is a shorthand for r.Tuple.Table().
func (r Row) Table() TableName { return r.Tuple.Table() }

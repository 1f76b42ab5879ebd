// SPDX-License-Identifier: MPL-2.0

package ir

// Configuration formats of a configurable module item.
const (
	ConfigurationFormatText ConfigurationFormat = iota
	ConfigurationFormatKey
	ConfigurationFormatInteger
	ConfigurationFormatBitfield
)

type (
	// ConfigurationFormat is the value format of a configurable module item.
	ConfigurationFormat int

	// ModuleSignature identifies a merge module.
	ModuleSignature struct {
		ModuleID string
		Language string
		Version  string
	}

	// ModuleDependency records a module required by the current module.
	ModuleDependency struct {
		ModuleID         string
		ModuleLanguage   string
		RequiredID       string
		RequiredLanguage string
		RequiredVersion  string
	}

	// ModuleExclusion records a module that cannot coexist with the current
	// module. A negative ExcludedLanguage excludes every language except its
	// absolute value.
	ModuleExclusion struct {
		ModuleID           string
		ModuleLanguage     string
		ExcludedID         string
		ExcludedLanguage   string
		ExcludedMinVersion string
		ExcludedMaxVersion string
	}

	// ModuleConfiguration is one configurable item of a configurable module.
	ModuleConfiguration struct {
		Name         string
		Format       ConfigurationFormat
		Type         string
		ContextData  string
		DefaultValue string
		KeyNoOrphan  bool
		NonNullable  bool
		DisplayName  string
		Description  string
		HelpLocation string
		HelpKeyword  string
	}

	// ModuleSubstitution rewrites a module table cell at merge time.
	ModuleSubstitution struct {
		TargetTable string
		Row         string
		Column      string
		Value       string
	}

	// ModuleIgnoreTable names a module table the merge tool must skip.
	ModuleIgnoreTable struct {
		TargetTable string
	}

	// WixSuppressModularization keeps an identifier unmodularized.
	WixSuppressModularization struct {
		Name string
	}
)

// Table implements Tuple.
func (ModuleSignature) Table() TableName { return TableModuleSignature }

// Values implements Tuple.
func (t ModuleSignature) Values() []any { return []any{t.ModuleID, t.Language, t.Version} }

// Table implements Tuple.
func (ModuleDependency) Table() TableName { return TableModuleDependency }

// Values implements Tuple.
func (t ModuleDependency) Values() []any {
	return []any{t.ModuleID, t.ModuleLanguage, t.RequiredID, t.RequiredLanguage, t.RequiredVersion}
}

// Table implements Tuple.
func (ModuleExclusion) Table() TableName { return TableModuleExclusion }

// Values implements Tuple.
func (t ModuleExclusion) Values() []any {
	return []any{t.ModuleID, t.ModuleLanguage, t.ExcludedID, t.ExcludedLanguage, t.ExcludedMinVersion, t.ExcludedMaxVersion}
}

// Table implements Tuple.
func (ModuleConfiguration) Table() TableName { return TableModuleConfiguration }

// Values implements Tuple.
func (t ModuleConfiguration) Values() []any {
	return []any{
		t.Name, int(t.Format), t.Type, t.ContextData, t.DefaultValue,
		t.KeyNoOrphan, t.NonNullable, t.DisplayName, t.Description,
		t.HelpLocation, t.HelpKeyword,
	}
}

// Table implements Tuple.
func (ModuleSubstitution) Table() TableName { return TableModuleSubstitution }

// Values implements Tuple.
func (t ModuleSubstitution) Values() []any { return []any{t.TargetTable, t.Row, t.Column, t.Value} }

// Table implements Tuple.
func (ModuleIgnoreTable) Table() TableName { return TableModuleIgnoreTable }

// Values implements Tuple.
func (t ModuleIgnoreTable) Values() []any { return []any{t.TargetTable} }

// Table implements Tuple.
func (WixSuppressModularization) Table() TableName { return TableWixSuppressModularization }

// Values implements Tuple.
func (t WixSuppressModularization) Values() []any { return []any{t.Name} }

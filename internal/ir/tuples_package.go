// SPDX-License-Identifier: MPL-2.0

package ir

// Summary information property ids.
const (
	SummaryCodepage       = 1
	SummaryTitle          = 2
	SummarySubject        = 3
	SummaryAuthor         = 4
	SummaryKeywords       = 5
	SummaryComments       = 6
	SummaryTemplate       = 7
	SummaryRevisionNumber = 9
	SummaryPageCount      = 14
	SummaryWordCount      = 15
	SummaryCreatingApp    = 18
	SummarySecurity       = 19
)

// Component attribute bits.
const (
	ComponentSourceOnly              = 0x0001
	ComponentOptional                = 0x0002
	ComponentSharedDllRefCount       = 0x0008
	ComponentPermanent               = 0x0010
	ComponentTransitive              = 0x0040
	ComponentNeverOverwrite          = 0x0080
	Component64Bit                   = 0x0100
	ComponentDisableRegistryReflect  = 0x0200
	ComponentUninstallOnSupersedence = 0x0400
	ComponentShared                  = 0x0800
)

// Feature attribute bits.
const (
	FeatureFavorSource            = 0x0001
	FeatureFollowParent           = 0x0002
	FeatureFavorAdvertise         = 0x0004
	FeatureDisallowAdvertise      = 0x0008
	FeatureUIDisallowAbsent       = 0x0010
	FeatureNoUnsupportedAdvertise = 0x0020
)

type (
	// SummaryInformation is one summary stream property.
	SummaryInformation struct {
		PropertyID int
		Value      string
	}

	// Property is an installer property definition.
	Property struct {
		ID     string
		Value  string
		Admin  bool
		Secure bool
		Hidden bool
	}

	// Component is an installable unit.
	Component struct {
		ID         string
		Guid       string
		Directory  string
		Attributes int
		Condition  string
		KeyPath    string
	}

	// WixComponentGroup declares a named group of components.
	WixComponentGroup struct {
		ID string
	}

	// Feature is a user-selectable set of components.
	Feature struct {
		ID          string
		Parent      string
		Title       string
		Description string
		Display     string
		Level       int
		Directory   string
		Attributes  int
	}

	// Directory is one node of the target directory tree.
	Directory struct {
		ID         string
		Parent     string
		DefaultDir string
	}

	// Binary is a binary stream embedded in the package.
	Binary struct {
		ID                     string
		SourceFile             string
		SuppressModularization bool
	}

	// Icon is an icon stream embedded in the package.
	Icon struct {
		ID                     string
		SourceFile             string
		SuppressModularization bool
	}

	// WixVariable is a binder variable definition.
	WixVariable struct {
		ID          string
		Value       string
		Overridable bool
	}
)

// Table implements Tuple.
func (SummaryInformation) Table() TableName { return TableSummaryInformation }

// Values implements Tuple.
func (t SummaryInformation) Values() []any { return []any{t.PropertyID, t.Value} }

// Table implements Tuple.
func (Property) Table() TableName { return TableProperty }

// Values implements Tuple.
func (t Property) Values() []any { return []any{t.ID, t.Value, t.Admin, t.Secure, t.Hidden} }

// Table implements Tuple.
func (Component) Table() TableName { return TableComponent }

// Values implements Tuple.
func (t Component) Values() []any {
	return []any{t.ID, t.Guid, t.Directory, t.Attributes, t.Condition, t.KeyPath}
}

// Table implements Tuple.
func (WixComponentGroup) Table() TableName { return TableWixComponentGroup }

// Values implements Tuple.
func (t WixComponentGroup) Values() []any { return []any{t.ID} }

// Table implements Tuple.
func (Feature) Table() TableName { return TableFeature }

// Values implements Tuple.
func (t Feature) Values() []any {
	return []any{t.ID, t.Parent, t.Title, t.Description, t.Display, t.Level, t.Directory, t.Attributes}
}

// Table implements Tuple.
func (Directory) Table() TableName { return TableDirectory }

// Values implements Tuple.
func (t Directory) Values() []any { return []any{t.ID, t.Parent, t.DefaultDir} }

// Table implements Tuple.
func (Binary) Table() TableName { return TableBinary }

// Values implements Tuple.
func (t Binary) Values() []any { return []any{t.ID, t.SourceFile, t.SuppressModularization} }

// Table implements Tuple.
func (Icon) Table() TableName { return TableIcon }

// Values implements Tuple.
func (t Icon) Values() []any { return []any{t.ID, t.SourceFile, t.SuppressModularization} }

// Table implements Tuple.
func (WixVariable) Table() TableName { return TableWixVariable }

// Values implements Tuple.
func (t WixVariable) Values() []any { return []any{t.ID, t.Value, t.Overridable} }

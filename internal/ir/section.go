// SPDX-License-Identifier: MPL-2.0

package ir

// Section kinds.
const (
	SectionPackage       SectionKind = "package"
	SectionModule        SectionKind = "module"
	SectionFragment      SectionKind = "fragment"
	SectionPatchCreation SectionKind = "patchCreation"
)

type (
	// SectionKind is the kind of compilation unit a section represents.
	SectionKind string

	// Section is one compilation unit. It owns every row created while it
	// was active, in creation order.
	Section struct {
		ID            string
		Kind          SectionKind
		Codepage      int
		CompilationID string
		Rows          []Row
	}

	// Intermediate is the compiled form of one document, handed to the linker.
	Intermediate struct {
		Sections []*Section
	}
)

// NewSection returns an empty section.
func NewSection(id string, kind SectionKind, codepage int, compilationID string) *Section {
	return &Section{ID: id, Kind: kind, Codepage: codepage, CompilationID: compilationID}
}

// Add appends a row to the section.
func (s *Section) Add(r Row) {
	s.Rows = append(s.Rows, r)
}

// RowsOf returns the rows of one table in creation order.
func (s *Section) RowsOf(name TableName) []Row {
	var rows []Row
	for _, r := range s.Rows {
		if r.Table() == name {
			rows = append(rows, r)
		}
	}
	return rows
}

// ComplexReferences returns the section's ownership edges in traversal order.
func (s *Section) ComplexReferences() []ComplexReference {
	var refs []ComplexReference
	for _, r := range s.Rows {
		if ref, ok := r.Tuple.(ComplexReference); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// SimpleReferences returns the identifiers the section leaves for the linker
// to resolve.
func (s *Section) SimpleReferences() []WixSimpleReference {
	var refs []WixSimpleReference
	for _, r := range s.Rows {
		if ref, ok := r.Tuple.(WixSimpleReference); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// RowCount returns the number of rows across all sections.
func (in *Intermediate) RowCount() int {
	if in == nil {
		return 0
	}
	n := 0
	for _, s := range in.Sections {
		n += len(s.Rows)
	}
	return n
}

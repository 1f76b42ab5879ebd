// SPDX-License-Identifier: MPL-2.0

package xmltree

import (
	"fmt"
	"strconv"
)

type (
	// Name is a namespace-qualified element or attribute name.
	// An empty Space means the name is unqualified.
	Name struct {
		Space string
		Local string
	}

	// SourceLineNumber identifies where a node was declared.
	// Line is 1-based; zero means the line is unknown.
	SourceLineNumber struct {
		File string `json:"file" yaml:"file"`
		Line int    `json:"line" yaml:"line"`
	}

	// Attribute is one attribute of an element with its raw text value.
	Attribute struct {
		Name  Name
		Value string
	}

	// Element is one node of the source tree.
	Element struct {
		Name       Name
		Attributes []Attribute
		Children   []*Element
		Source     SourceLineNumber
	}

	// Document is one expanded source document.
	Document struct {
		// File is the path the document was loaded from (informational).
		File string
		// Root is the document element. It is nil for an empty document.
		Root *Element
	}
)

// String renders the name as "{space}local", or just "local" when unqualified.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// String renders the position as "file(line)", matching compiler message output.
func (s SourceLineNumber) String() string {
	switch {
	case s.File == "" && s.Line == 0:
		return "<unknown>"
	case s.Line == 0:
		return s.File
	default:
		return s.File + "(" + strconv.Itoa(s.Line) + ")"
	}
}

// NewElement builds an element. It is intended for tests and for
// preprocessors that assemble trees programmatically.
func NewElement(name Name, source SourceLineNumber, attrs []Attribute, children ...*Element) *Element {
	return &Element{
		Name:       name,
		Attributes: attrs,
		Children:   children,
		Source:     source,
	}
}

// Attr returns the attribute with the given name and whether it was present.
func (e *Element) Attr(name Name) (Attribute, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// GoString helps test failure output stay readable.
func (e *Element) GoString() string {
	return fmt.Sprintf("&xmltree.Element{%s @ %s, %d attrs, %d children}",
		e.Name, e.Source, len(e.Attributes), len(e.Children))
}

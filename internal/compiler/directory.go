// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

// parseDirectoryElement declares a directory beneath the parent directory.
func (c *Compiler) parseDirectoryElement(parent parentInfo, el *xmltree.Element) {
	src := el.Source
	tuple := ir.Directory{Parent: parent.directory}
	var name, sourceName string
	hasID := false

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			tuple.ID = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Name":
			name = c.core.GetAttributeValue(src, el, attr)
		case "SourceName":
			sourceName = c.core.GetAttributeValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	tuple.DefaultDir = defaultDir(name, sourceName)
	c.core.AddSymbol(src, tuple.ID, tuple)

	c.parseChildren(parentInfo{element: el, directory: tuple.ID}, el, directoryChildren)
}

// parseDirectoryRefElement adds children to a directory declared elsewhere.
func (c *Compiler) parseDirectoryRefElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var id string
	hasID := false

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			id = c.core.GetAttributeIdentifierValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	c.core.CreateSimpleReference(src, ir.TableDirectory, id)

	c.parseChildren(parentInfo{element: el, directory: id}, el, directoryChildren)
}

// defaultDir builds the DefaultDir column. A directory without a name is
// merged into its parent, written ".".
func defaultDir(name, sourceName string) string {
	if name == "" {
		name = "."
	}
	if sourceName != "" {
		return name + ":" + sourceName
	}
	return name
}

// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

// Tables referenced by name but defined by later stages.
const (
	tableCustomAction    ir.TableName = "CustomAction"
	tableEmbeddedChainer ir.TableName = "MsiEmbeddedChainer"
	tableUI              ir.TableName = "WixUI"
)

// simpleReferenceHandler parses an element whose only attribute is the Id of
// a row in table.
func simpleReferenceHandler(table ir.TableName) elementHandler {
	return func(c *Compiler, _ parentInfo, el *xmltree.Element) {
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

		c.core.ParseForExtensionElements(el)

		c.core.CreateSimpleReference(src, table, id)
	}
}

// parsePropertyElement declares an installer property.
func (c *Compiler) parsePropertyElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var tuple ir.Property
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
		case "Admin":
			tuple.Admin = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "Hidden":
			tuple.Hidden = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "Secure":
			tuple.Secure = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "Value":
			tuple.Value = c.core.GetAttributeValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddSymbol(src, tuple.ID, tuple)
}

// parseBinaryElement declares a binary stream.
func (c *Compiler) parseBinaryElement(_ parentInfo, el *xmltree.Element) {
	id, sourceFile, suppress := c.parseStreamElement(el)
	c.core.AddSymbol(el.Source, id, ir.Binary{ID: id, SourceFile: sourceFile, SuppressModularization: suppress})
}

// parseIconElement declares an icon stream.
func (c *Compiler) parseIconElement(_ parentInfo, el *xmltree.Element) {
	id, sourceFile, suppress := c.parseStreamElement(el)
	c.core.AddSymbol(el.Source, id, ir.Icon{ID: id, SourceFile: sourceFile, SuppressModularization: suppress})
}

// parseStreamElement parses the attributes shared by Binary and Icon.
func (c *Compiler) parseStreamElement(el *xmltree.Element) (id, sourceFile string, suppress bool) {
	src := el.Source
	var hasID, hasSource bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			id = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "SourceFile":
			hasSource = true
			sourceFile = c.core.GetAttributeValue(src, el, attr)
		case "SuppressModularization":
			suppress = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}
	if !hasSource {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "SourceFile"))
	}

	c.core.ParseForExtensionElements(el)
	return id, sourceFile, suppress
}

// parseWixVariableElement declares a binder variable.
func (c *Compiler) parseWixVariableElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var tuple ir.WixVariable
	var hasID, hasValue bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			tuple.ID = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Overridable":
			tuple.Overridable = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "Value":
			hasValue = true
			tuple.Value = attr.Value
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}
	if !hasValue {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Value"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddSymbol(src, tuple.ID, tuple)
}

// parseEnsureTableElement forces a table into the output.
func (c *Compiler) parseEnsureTableElement(_ parentInfo, el *xmltree.Element) {
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

	c.core.ParseForExtensionElements(el)

	c.core.AddSymbol(src, id, ir.WixEnsureTable{TargetTable: id})
}

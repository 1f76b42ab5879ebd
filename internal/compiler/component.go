// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

// componentFlags maps yes/no attributes of Component to attribute bits.
var componentFlags = map[string]int{
	"DisableRegistryReflection": ir.ComponentDisableRegistryReflect,
	"NeverOverwrite":            ir.ComponentNeverOverwrite,
	"Permanent":                 ir.ComponentPermanent,
	"Shared":                    ir.ComponentShared,
	"SharedDllRefCount":         ir.ComponentSharedDllRefCount,
	"Transitive":                ir.ComponentTransitive,
	"UninstallWhenSuperseded":   ir.ComponentUninstallOnSupersedence,
}

// parseComponentElement declares a component and records its owner. Outside
// an owning parent, a module owns its components.
func (c *Compiler) parseComponentElement(parent parentInfo, el *xmltree.Element) {
	src := el.Source
	tuple := ir.Component{Directory: parent.directory}
	var hasID, hasDirectory bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		if bit, ok := componentFlags[attr.Name.Local]; ok {
			if c.core.GetAttributeYesNoValue(src, el, attr).Bool() {
				tuple.Attributes |= bit
			}
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			tuple.ID = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Bitness":
			if c.core.GetAttributeEnumValue(src, el, attr, "always32", "always64", "default") == "always64" {
				tuple.Attributes |= ir.Component64Bit
			}
		case "Condition":
			tuple.Condition = c.core.GetAttributeValue(src, el, attr)
		case "Directory":
			hasDirectory = true
			tuple.Directory = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Guid":
			tuple.Guid = c.core.GetAttributeGuidValue(src, el, attr, true, true)
		case "KeyPath":
			tuple.KeyPath = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Location":
			switch c.core.GetAttributeEnumValue(src, el, attr, "local", "source", "either") {
			case "source":
				tuple.Attributes |= ir.ComponentSourceOnly
			case "either":
				tuple.Attributes |= ir.ComponentOptional
			}
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}
	if parent.directory == "" && !hasDirectory {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Directory"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddSymbol(src, tuple.ID, tuple)
	if hasDirectory && tuple.Directory != "" {
		c.core.CreateSimpleReference(src, ir.TableDirectory, tuple.Directory)
	}
	c.createOwnerReference(src, parent, ir.ChildComponent, tuple.ID, false)
}

// parseComponentRefElement references a component declared elsewhere.
func (c *Compiler) parseComponentRefElement(parent parentInfo, el *xmltree.Element) {
	c.parseGroupMemberRef(parent, el, ir.TableComponent, ir.ChildComponent)
}

// parseComponentGroupRefElement references a component group declared elsewhere.
func (c *Compiler) parseComponentGroupRefElement(parent parentInfo, el *xmltree.Element) {
	c.parseGroupMemberRef(parent, el, ir.TableWixComponentGroup, ir.ChildComponentGroup)
}

func (c *Compiler) parseGroupMemberRef(parent parentInfo, el *xmltree.Element, table ir.TableName, child ir.ComplexReferenceChildKind) {
	src := el.Source
	var id string
	var hasID, primary bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			id = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Primary":
			primary = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.CreateSimpleReference(src, table, id)
	c.createOwnerReference(src, parent, child, id, primary)
}

// parseComponentGroupElement declares a group of components.
func (c *Compiler) parseComponentGroupElement(parent parentInfo, el *xmltree.Element) {
	src := el.Source
	var id, directory string
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
		case "Directory":
			directory = c.core.GetAttributeIdentifierValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	c.core.AddSymbol(src, id, ir.WixComponentGroup{ID: id})
	if directory != "" {
		c.core.CreateSimpleReference(src, ir.TableDirectory, directory)
	}

	group := parentInfo{element: el, kind: ir.ParentComponentGroup, id: id, directory: directory}
	c.parseChildren(group, el, componentGroupChildren)
}

// createOwnerReference records the edge from the owning parent to a child.
// A parent that owns nothing defers to the active module, if any.
func (c *Compiler) createOwnerReference(src xmltree.SourceLineNumber, parent parentInfo, child ir.ComplexReferenceChildKind, childID string, primary bool) {
	kind, id, language := parent.kind, parent.id, parent.language
	if kind == "" {
		active := c.core.Active()
		if !active.CompilingModule {
			return
		}
		kind, id, language = ir.ParentModule, active.Name, active.Language
	}
	c.core.CreateComplexReference(src, kind, id, language, child, childID, primary)
}

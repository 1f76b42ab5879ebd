// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"strconv"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/types"
	"github.com/apacker1/wix/pkg/xmltree"
)

// parsePatchCreationElement compiles a patch creation into its own section.
// Its options become patch properties without a company.
func (c *Compiler) parsePatchCreationElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	codepage := 0
	var patchGUID string
	hasID := false
	var options []ir.WixPatchProperty
	var extensionAttrs []xmltree.Attribute

	flag := func(attr xmltree.Attribute, name string, invert bool) {
		if v := c.core.GetAttributeYesNoValue(src, el, attr); v == types.YesNoYes || v == types.YesNoNo {
			value := "0"
			if v.Bool() != invert {
				value = "1"
			}
			options = append(options, ir.WixPatchProperty{Name: name, Value: value})
		}
	}

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			extensionAttrs = append(extensionAttrs, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasID = true
			patchGUID = c.core.GetAttributeGuidValue(src, el, attr, false, false)
		case "AllowMajorVersionMismatches":
			flag(attr, "AllowMajorVersionMismatches", false)
		case "AllowProductCodeMismatches":
			flag(attr, "AllowProductCodeMismatches", false)
		case "CleanWorkingFolder":
			flag(attr, "DontRemoveTempFolderWhenFinished", true)
		case "Codepage":
			codepage = c.core.GetAttributeCodePageValue(src, el, attr)
		case "OutputPath":
			options = append(options, ir.WixPatchProperty{Name: "PatchOutputPath", Value: c.core.GetAttributeValue(src, el, attr)})
		case "WholeFilesOnly":
			flag(attr, "IncludeWholeFilesOnly", false)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	section := c.core.CreateActiveSection(patchGUID, ir.SectionPatchCreation, codepage)
	release := c.ctx.enter(kindPatchCreation, section, patchGUID, "")
	defer release()

	for _, attr := range extensionAttrs {
		c.core.ParseExtensionAttribute(el, attr)
	}

	c.addPatchProperty(src, ir.WixPatchProperty{Name: "PatchGUID", Value: patchGUID})
	for _, p := range options {
		c.addPatchProperty(src, p)
	}

	c.parseChildren(parentInfo{element: el}, el, patchCreationChildren)
}

// parsePatchInformationElement compiles the summary information of a patch.
func (c *Compiler) parsePatchInformationElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var summary []ir.SummaryInformation
	add := func(pid int, value string) {
		summary = append(summary, ir.SummaryInformation{PropertyID: pid, Value: value})
	}

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Comments":
			add(ir.SummaryComments, c.core.GetAttributeValue(src, el, attr))
		case "Description":
			add(ir.SummarySubject, c.core.GetAttributeValue(src, el, attr))
		case "Keywords":
			add(ir.SummaryKeywords, c.core.GetAttributeValue(src, el, attr))
		case "Manufacturer":
			add(ir.SummaryAuthor, c.core.GetAttributeValue(src, el, attr))
		case "SummaryCodepage":
			if cp := c.core.GetAttributeCodePageValue(src, el, attr); cp != types.IllegalInteger {
				add(ir.SummaryCodepage, strconv.Itoa(cp))
			}
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	c.core.ParseForExtensionElements(el)

	if !c.core.DeclareSymbol(src, ir.TableSummaryInformation, el.Name.Local) {
		return
	}
	for _, s := range summary {
		c.core.AddTuple(src, s)
	}
}

// parsePatchPropertyElement declares one property of a patch creation.
func (c *Compiler) parsePatchPropertyElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var tuple ir.WixPatchProperty
	var hasName, hasValue bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Company":
			tuple.Company = c.core.GetAttributeValue(src, el, attr)
		case "Name":
			hasName = true
			tuple.Name = c.core.GetAttributeValue(src, el, attr)
		case "Value":
			hasValue = true
			tuple.Value = c.core.GetAttributeValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasName {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Name"))
	}
	if !hasValue {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Value"))
	}

	c.core.ParseForExtensionElements(el)

	c.addPatchProperty(src, tuple)
}

// addPatchProperty adds a patch property keyed by company and name.
func (c *Compiler) addPatchProperty(src xmltree.SourceLineNumber, p ir.WixPatchProperty) {
	if p.Name == "" {
		c.core.AddTuple(src, p)
		return
	}
	c.core.AddSymbol(src, p.Company+"/"+p.Name, p)
}

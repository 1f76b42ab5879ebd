// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"math"
	"strconv"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/types"
	"github.com/apacker1/wix/pkg/xmltree"
)

const (
	packageSummaryTitle    = "Installation Database"
	packageSummaryKeywords = "Installer"
)

// parsePackageElement compiles an installer package into its own section.
func (c *Compiler) parsePackageElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	codepage := 0
	productCode := string(types.GuidGenerate)
	language := "0"
	installerVersion := defaultInstallerVer
	wordCount := 0
	var name, manufacturer, version, upgradeCode, scope string
	var hasName, hasVersion bool
	var extensionAttrs []xmltree.Attribute

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			extensionAttrs = append(extensionAttrs, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id", "ProductCode":
			productCode = c.core.GetAttributeGuidValue(src, el, attr, true, false)
		case "Codepage":
			codepage = c.core.GetAttributeCodePageValue(src, el, attr)
		case "Compressed":
			if c.core.GetAttributeYesNoValue(src, el, attr).Bool() {
				wordCount |= wordCountCompressed
			}
		case "InstallerVersion":
			installerVersion = c.core.GetAttributeIntegerValue(src, el, attr, 0, math.MaxInt32)
		case "Language":
			language = c.core.GetAttributeLocalizableIntegerValue(src, el, attr, 0, types.MaxLanguage)
		case "Manufacturer":
			manufacturer = c.core.GetAttributeValue(src, el, attr)
		case "Name":
			hasName = true
			name = c.core.GetAttributeValue(src, el, attr)
		case "Scope":
			scope = c.core.GetAttributeEnumValue(src, el, attr, "perMachine", "perUser")
		case "UpgradeCode":
			upgradeCode = c.core.GetAttributeGuidValue(src, el, attr, false, false)
		case "Version":
			hasVersion = true
			version = c.core.GetAttributeVersionValue(src, el, attr, versionPackage)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasName {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Name"))
	}
	if !hasVersion {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Version"))
	}

	section := c.core.CreateActiveSection(productCode, ir.SectionPackage, codepage)
	release := c.ctx.enter(kindPackage, section, productCode, language)
	defer release()

	for _, attr := range extensionAttrs {
		c.core.ParseExtensionAttribute(el, attr)
	}

	properties := []ir.Property{
		{ID: "ProductCode", Value: productCode},
		{ID: "ProductLanguage", Value: language},
		{ID: "ProductName", Value: name},
		{ID: "ProductVersion", Value: version},
	}
	if manufacturer != "" {
		properties = append(properties, ir.Property{ID: "Manufacturer", Value: manufacturer})
	}
	if upgradeCode != "" {
		properties = append(properties, ir.Property{ID: "UpgradeCode", Value: upgradeCode})
	}
	if scope == "perMachine" {
		properties = append(properties, ir.Property{ID: "ALLUSERS", Value: "1"})
	}
	for _, p := range properties {
		c.core.AddSymbol(src, p.ID, p)
	}

	summary := []ir.SummaryInformation{
		{PropertyID: ir.SummaryTitle, Value: packageSummaryTitle},
		{PropertyID: ir.SummarySubject, Value: name},
		{PropertyID: ir.SummaryKeywords, Value: packageSummaryKeywords},
		{PropertyID: ir.SummaryTemplate, Value: defaultPlatform + ";" + language},
		{PropertyID: ir.SummaryRevisionNumber, Value: string(types.GuidGenerate)},
		{PropertyID: ir.SummaryPageCount, Value: strconv.Itoa(installerVersion)},
		{PropertyID: ir.SummaryWordCount, Value: strconv.Itoa(wordCount)},
	}
	if manufacturer != "" {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummaryAuthor, Value: manufacturer})
	}
	if codepage != 0 {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummaryCodepage, Value: strconv.Itoa(codepage)})
	}
	for _, s := range summary {
		c.core.AddTuple(src, s)
	}

	parent := parentInfo{element: el, kind: ir.ParentPackage, id: productCode, language: language}
	c.parseChildren(parent, el, packageChildren)
}

// parseFragmentElement compiles a fragment into its own section. Fragments
// own no complex references.
func (c *Compiler) parseFragmentElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var id string
	var extensionAttrs []xmltree.Attribute

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			extensionAttrs = append(extensionAttrs, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			id = c.core.GetAttributeIdentifierValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	section := c.core.CreateActiveSection(id, ir.SectionFragment, 0)
	release := c.ctx.enter(kindFragment, section, id, "")
	defer release()

	for _, attr := range extensionAttrs {
		c.core.ParseExtensionAttribute(el, attr)
	}

	c.parseChildren(parentInfo{element: el}, el, fragmentChildren)
}

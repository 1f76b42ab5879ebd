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

// Defaults of a module's summary information.
const (
	moduleSummaryTitle    = "Merge Module"
	moduleSummaryKeywords = "MergeModule, MSI, database"
	defaultInstallerVer   = 500
	defaultPlatform       = "Intel"
)

// Word count bits of the summary information.
const (
	wordCountShortNames = 1 << iota
	wordCountCompressed
	wordCountAdminImage
)

// parseModuleElement compiles a merge module into its own section.
func (c *Compiler) parseModuleElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	codepage := 0
	var name, language, version, moduleGuid string
	var hasName, hasLanguage, hasVersion bool
	var extensionAttrs []xmltree.Attribute

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			extensionAttrs = append(extensionAttrs, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			hasName = true
			if attr.Value == placeholderModuleName {
				c.core.Write(diag.PlaceholderValue(src, el.Name.Local, attr.Name.Local, attr.Value))
				name = attr.Value
			} else {
				name = c.core.GetAttributeIdentifierValue(src, el, attr)
			}
		case "Codepage":
			codepage = c.core.GetAttributeCodePageValue(src, el, attr)
		case "Guid":
			c.core.Write(diag.DeprecatedAttribute(src, el.Name.Local, attr.Name.Local, "Use the Package/@Id attribute instead."))
			moduleGuid = c.core.GetAttributeGuidValue(src, el, attr, false, false)
		case "Language":
			hasLanguage = true
			language = c.core.GetAttributeLocalizableIntegerValue(src, el, attr, 0, types.MaxLanguage)
		case "Version":
			hasVersion = true
			version = c.core.GetAttributeVersionValue(src, el, attr, versionModule)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasName {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}
	if !hasLanguage {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Language"))
	}
	if !hasVersion {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Version"))
	}

	section := c.core.CreateActiveSection(name, ir.SectionModule, codepage)
	release := c.ctx.enter(kindModule, section, name, language)
	defer release()

	// Extension attributes see the module's context.
	for _, attr := range extensionAttrs {
		c.core.ParseExtensionAttribute(el, attr)
	}

	parent := parentInfo{element: el, kind: ir.ParentModule, id: name, language: language, moduleGuid: moduleGuid}
	c.parseChildren(parent, el, moduleChildren)

	c.core.AddTuple(src, ir.ModuleSignature{ModuleID: name, Language: language, Version: version})
}

// parseDependencyElement records a module the current module requires.
func (c *Compiler) parseDependencyElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var requiredID, requiredVersion string
	hasRequiredID := false
	requiredLanguage := types.IntegerNotSet

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "RequiredId":
			hasRequiredID = true
			requiredID = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "RequiredLanguage":
			requiredLanguage = c.core.GetAttributeIntegerValue(src, el, attr, 0, types.MaxLanguage)
		case "RequiredVersion":
			requiredVersion = c.core.GetAttributeVersionValue(src, el, attr, versionModule)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasRequiredID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "RequiredId"))
	}
	if requiredLanguage == types.IntegerNotSet {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "RequiredLanguage"))
		requiredLanguage = types.IllegalInteger
	}

	c.core.ParseForExtensionElements(el)

	active := c.core.Active()
	c.core.AddTuple(src, ir.ModuleDependency{
		ModuleID:         active.Name,
		ModuleLanguage:   active.Language,
		RequiredID:       requiredID,
		RequiredLanguage: strconv.Itoa(requiredLanguage),
		RequiredVersion:  requiredVersion,
	})
}

// parseExclusionElement records a module that cannot be merged alongside the
// current module. ExcludeExceptLanguage is stored negated.
func (c *Compiler) parseExclusionElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var excludedID, minVersion, maxVersion string
	hasExcludedID := false
	exceptLanguage := types.IntegerNotSet
	excludeLanguage := types.IntegerNotSet
	excludedLanguage := "0"

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "ExcludedId":
			hasExcludedID = true
			excludedID = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "ExcludeExceptLanguage":
			exceptLanguage = c.core.GetAttributeIntegerValue(src, el, attr, 0, types.MaxLanguage)
		case "ExcludeLanguage":
			excludeLanguage = c.core.GetAttributeIntegerValue(src, el, attr, 0, types.MaxLanguage)
		case "ExcludedMaxVersion":
			maxVersion = c.core.GetAttributeVersionValue(src, el, attr, versionModule)
		case "ExcludedMinVersion":
			minVersion = c.core.GetAttributeVersionValue(src, el, attr, versionModule)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasExcludedID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "ExcludedId"))
	}

	switch {
	case exceptLanguage != types.IntegerNotSet && excludeLanguage != types.IntegerNotSet:
		c.core.Write(diag.IllegalAttributeCombination(src, el.Name.Local, "ExcludeExceptLanguage", "ExcludeLanguage"))
	case exceptLanguage != types.IntegerNotSet:
		excludedLanguage = strconv.Itoa(-exceptLanguage)
	case excludeLanguage != types.IntegerNotSet:
		excludedLanguage = strconv.Itoa(excludeLanguage)
	}

	c.core.ParseForExtensionElements(el)

	active := c.core.Active()
	c.core.AddTuple(src, ir.ModuleExclusion{
		ModuleID:           active.Name,
		ModuleLanguage:     active.Language,
		ExcludedID:         excludedID,
		ExcludedLanguage:   excludedLanguage,
		ExcludedMinVersion: minVersion,
		ExcludedMaxVersion: maxVersion,
	})
}

// parseConfigurationElement declares one configurable item of a
// configurable module.
func (c *Compiler) parseConfigurationElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var tuple ir.ModuleConfiguration
	var hasName, hasFormat bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Name":
			hasName = true
			tuple.Name = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "ContextData":
			tuple.ContextData = c.core.GetAttributeValue(src, el, attr)
		case "Description":
			tuple.Description = c.core.GetAttributeValue(src, el, attr)
		case "DefaultValue":
			tuple.DefaultValue = c.core.GetAttributeValue(src, el, attr)
		case "DisplayName":
			tuple.DisplayName = c.core.GetAttributeValue(src, el, attr)
		case "Format":
			hasFormat = true
			if format, ok := parseConfigurationFormat(attr.Value); ok {
				tuple.Format = format
			} else if attr.Value == "" {
				c.core.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
			} else {
				c.core.Write(diag.IllegalAttributeValue(src, el.Name.Local, attr.Name.Local, attr.Value,
					"Text", "Key", "Integer", "Bitfield"))
			}
		case "HelpKeyword":
			tuple.HelpKeyword = c.core.GetAttributeValue(src, el, attr)
		case "HelpLocation":
			tuple.HelpLocation = c.core.GetAttributeValue(src, el, attr)
		case "KeyNoOrphan":
			tuple.KeyNoOrphan = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "NonNullable":
			tuple.NonNullable = c.core.GetAttributeYesNoValue(src, el, attr).Bool()
		case "Type":
			tuple.Type = c.core.GetAttributeValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasName {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Name"))
	}
	if !hasFormat {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Format"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddSymbol(src, tuple.Name, tuple)
}

// parseConfigurationFormat accepts each format name with an upper or lower
// case first letter.
func parseConfigurationFormat(s string) (ir.ConfigurationFormat, bool) {
	switch s {
	case "Text", "text":
		return ir.ConfigurationFormatText, true
	case "Key", "key":
		return ir.ConfigurationFormatKey, true
	case "Integer", "integer":
		return ir.ConfigurationFormatInteger, true
	case "Bitfield", "bitfield":
		return ir.ConfigurationFormatBitfield, true
	default:
		return 0, false
	}
}

// parseSubstitutionElement rewrites a module table cell at merge time.
func (c *Compiler) parseSubstitutionElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	var tuple ir.ModuleSubstitution
	var hasColumn, hasRow, hasTable bool

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Column":
			hasColumn = true
			tuple.Column = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Row":
			hasRow = true
			tuple.Row = c.core.GetAttributeValue(src, el, attr)
		case "Table":
			hasTable = true
			tuple.TargetTable = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Value":
			tuple.Value = attr.Value
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasColumn {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Column"))
	}
	if !hasTable {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Table"))
	}
	if !hasRow {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Row"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddTuple(src, tuple)
}

// parseIgnoreModularizationElement keeps an identifier unmodularized. The
// element is deprecated and its Type attribute has no effect.
func (c *Compiler) parseIgnoreModularizationElement(_ parentInfo, el *xmltree.Element) {
	src := el.Source
	c.core.Write(diag.DeprecatedElement(src, el.Name.Local, "Use the SuppressModularization attribute of the referenced element instead."))

	var name string
	hasName := false
	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Name":
			hasName = true
			name = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Type":
			// Ignored.
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasName {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Name"))
	}

	c.core.ParseForExtensionElements(el)

	c.core.AddTuple(src, ir.WixSuppressModularization{Name: name})
}

// parseIgnoreTableElement names a module table the merge tool must skip.
func (c *Compiler) parseIgnoreTableElement(_ parentInfo, el *xmltree.Element) {
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

	c.core.AddTuple(src, ir.ModuleIgnoreTable{TargetTable: id})
}

// parseModulePackageElement compiles the summary information of a module.
// Languages defaults to the module language and the package code falls back
// to the deprecated Module/@Guid.
func (c *Compiler) parseModulePackageElement(parent parentInfo, el *xmltree.Element) {
	src := el.Source
	active := c.core.Active()

	packageCode := ""
	languages := active.Language
	platform := defaultPlatform
	installerVersion := defaultInstallerVer
	keywords := moduleSummaryKeywords
	summaryCodepage := types.IntegerNotSet
	wordCount := 0
	var comments, description, manufacturer string

	for _, attr := range el.Attributes {
		if !isCoreAttribute(attr) {
			c.core.ParseExtensionAttribute(el, attr)
			continue
		}
		switch attr.Name.Local {
		case "Id":
			packageCode = c.core.GetAttributeGuidValue(src, el, attr, true, false)
		case "AdminImage":
			if c.core.GetAttributeYesNoValue(src, el, attr).Bool() {
				wordCount |= wordCountAdminImage
			}
		case "Comments":
			comments = c.core.GetAttributeValue(src, el, attr)
		case "Compressed":
			if c.core.GetAttributeYesNoValue(src, el, attr).Bool() {
				wordCount |= wordCountCompressed
			}
		case "Description":
			description = c.core.GetAttributeValue(src, el, attr)
		case "InstallerVersion":
			installerVersion = c.core.GetAttributeIntegerValue(src, el, attr, 0, math.MaxInt32)
		case "Keywords":
			keywords = c.core.GetAttributeValue(src, el, attr)
		case "Languages":
			languages = c.core.GetAttributeValue(src, el, attr)
		case "Manufacturer":
			manufacturer = c.core.GetAttributeValue(src, el, attr)
		case "Platform":
			platform = summaryPlatform(c.core.GetAttributeEnumValue(src, el, attr, "x86", "x64", "arm64"))
		case "ShortNames":
			if c.core.GetAttributeYesNoValue(src, el, attr).Bool() {
				wordCount |= wordCountShortNames
			}
		case "SummaryCodepage":
			summaryCodepage = c.core.GetAttributeCodePageValue(src, el, attr)
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if packageCode == "" {
		packageCode = parent.moduleGuid
	}
	if packageCode == "" {
		packageCode = string(types.GuidGenerate)
	}

	c.core.ParseForExtensionElements(el)

	summary := []ir.SummaryInformation{
		{PropertyID: ir.SummaryTitle, Value: moduleSummaryTitle},
		{PropertyID: ir.SummaryKeywords, Value: keywords},
		{PropertyID: ir.SummaryTemplate, Value: platform + ";" + languages},
		{PropertyID: ir.SummaryRevisionNumber, Value: packageCode},
		{PropertyID: ir.SummaryPageCount, Value: strconv.Itoa(installerVersion)},
		{PropertyID: ir.SummaryWordCount, Value: strconv.Itoa(wordCount)},
	}
	if summaryCodepage != types.IntegerNotSet {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummaryCodepage, Value: strconv.Itoa(summaryCodepage)})
	}
	if description != "" {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummarySubject, Value: description})
	}
	if manufacturer != "" {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummaryAuthor, Value: manufacturer})
	}
	if comments != "" {
		summary = append(summary, ir.SummaryInformation{PropertyID: ir.SummaryComments, Value: comments})
	}
	if !c.core.DeclareSymbol(src, ir.TableSummaryInformation, el.Name.Local) {
		return
	}
	for _, s := range summary {
		c.core.AddTuple(src, s)
	}
}

// summaryPlatform maps a Platform attribute value to its template spelling.
func summaryPlatform(platform string) string {
	switch platform {
	case "x64":
		return "x64"
	case "arm64":
		return "Arm64"
	default:
		return defaultPlatform
	}
}

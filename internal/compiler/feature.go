// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"math"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/types"
	"github.com/apacker1/wix/pkg/xmltree"
)

const (
	defaultFeatureLevel   = 1
	defaultFeatureDisplay = "collapse"
)

// parseFeatureElement declares a feature beneath a package, fragment or
// parent feature.
func (c *Compiler) parseFeatureElement(parent parentInfo, el *xmltree.Element) {
	src := el.Source
	tuple := ir.Feature{Level: defaultFeatureLevel, Display: defaultFeatureDisplay}
	if parent.kind == ir.ParentFeature {
		tuple.Parent = parent.id
	}
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
		case "AllowAbsent":
			if c.core.GetAttributeYesNoValue(src, el, attr) == types.YesNoNo {
				tuple.Attributes |= ir.FeatureUIDisallowAbsent
			}
		case "AllowAdvertise":
			switch c.core.GetAttributeEnumValue(src, el, attr, "no", "system", "yes") {
			case "no":
				tuple.Attributes |= ir.FeatureDisallowAdvertise
			case "system":
				tuple.Attributes |= ir.FeatureNoUnsupportedAdvertise
			}
		case "ConfigurableDirectory":
			tuple.Directory = c.core.GetAttributeIdentifierValue(src, el, attr)
		case "Description":
			tuple.Description = c.core.GetAttributeValue(src, el, attr)
		case "Display":
			tuple.Display = c.featureDisplay(src, el, attr)
		case "InstallDefault":
			switch c.core.GetAttributeEnumValue(src, el, attr, "followParent", "local", "source") {
			case "followParent":
				tuple.Attributes |= ir.FeatureFollowParent
			case "source":
				tuple.Attributes |= ir.FeatureFavorSource
			}
		case "Level":
			tuple.Level = c.core.GetAttributeIntegerValue(src, el, attr, 0, math.MaxInt16)
		case "Title":
			tuple.Title = c.core.GetAttributeValue(src, el, attr)
		case "TypicalDefault":
			if c.core.GetAttributeEnumValue(src, el, attr, "advertise", "install") == "advertise" {
				tuple.Attributes |= ir.FeatureFavorAdvertise
			}
		default:
			c.core.UnexpectedAttribute(el, attr)
		}
	}

	if !hasID {
		c.core.Write(diag.MissingRequiredAttribute(src, el.Name.Local, "Id"))
	}

	c.core.AddSymbol(src, tuple.ID, tuple)
	if tuple.Directory != "" {
		c.core.CreateSimpleReference(src, ir.TableDirectory, tuple.Directory)
	}
	if parent.kind != "" {
		c.core.CreateComplexReference(src, parent.kind, parent.id, parent.language, ir.ChildFeature, tuple.ID, false)
	}

	c.parseChildren(parentInfo{element: el, kind: ir.ParentFeature, id: tuple.ID}, el, featureChildren)
}

// featureDisplay accepts collapse, expand, hidden or an explicit display order.
func (c *Compiler) featureDisplay(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute) string {
	switch attr.Value {
	case "collapse", "expand", "hidden":
		return attr.Value
	case "":
		c.core.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return ""
	}
	if _, err := types.ParseBoundedInteger(attr.Value, 0, math.MaxInt16); err != nil {
		c.core.Write(diag.IllegalAttributeValue(src, el.Name.Local, attr.Name.Local, attr.Value,
			"collapse", "expand", "hidden", "an integer"))
		return ""
	}
	return attr.Value
}

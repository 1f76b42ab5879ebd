// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"strconv"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/pkg/types"
	"github.com/apacker1/wix/pkg/xmltree"
)

const (
	versionPackage versionFlavor = iota
	versionModule
)

// placeholderModuleName is the unedited merge module template default.
const placeholderModuleName = "PUT-MODULE-NAME-HERE"

// illegalIntegerText is the textual sentinel for integer columns stored as text.
var illegalIntegerText = strconv.Itoa(types.IllegalInteger)

// versionFlavor selects the grammar applied to a version attribute.
type versionFlavor int

func (f versionFlavor) String() string {
	if f == versionPackage {
		return "package"
	}
	return "module or bundle"
}

// GetAttributeValue returns the attribute text. An empty value is reported.
func (c *Core) GetAttributeValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute) string {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
	}
	return attr.Value
}

// GetAttributeIdentifierValue returns a validated identifier, or "" after
// reporting a malformed value. Overlong identifiers are accepted with a warning.
func (c *Core) GetAttributeIdentifierValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute) string {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return ""
	}

	id := types.Identifier(attr.Value)
	if ok, _ := id.IsValid(); !ok {
		c.Write(diag.IllegalIdentifier(src, el.Name.Local, attr.Name.Local, attr.Value, id.LooksFormatted()))
		return ""
	}
	if id.IsTooLong() {
		c.Write(diag.IdentifierTooLong(src, el.Name.Local, attr.Name.Local, attr.Value, types.MaxIdentifierLength))
	}
	return attr.Value
}

// GetAttributeGuidValue returns a canonical GUID, "*" when generatable, or
// "" when allowEmpty. Anything else is reported and yields IllegalGuid.
func (c *Core) GetAttributeGuidValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, generatable, allowEmpty bool) string {
	if attr.Value == "" && !allowEmpty {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return string(types.IllegalGuid)
	}

	g, err := types.ParseGuid(attr.Value, generatable, allowEmpty)
	if err != nil {
		c.Write(diag.IllegalGuidValue(src, el.Name.Local, attr.Name.Local, attr.Value))
	}
	return string(g)
}

// GetAttributeIntegerValue returns an integer in [minValue, maxValue], or
// IllegalInteger after reporting a malformed or out of range value.
func (c *Core) GetAttributeIntegerValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, minValue, maxValue int) int {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return types.IllegalInteger
	}

	n, err := types.ParseBoundedInteger(attr.Value, minValue, maxValue)
	if err != nil {
		c.writeIntegerError(src, el, attr, err, minValue, maxValue)
		return types.IllegalInteger
	}
	return n
}

// GetAttributeLocalizableIntegerValue returns a bounded integer as decimal
// text or a deferred reference verbatim. A malformed value is reported and
// yields the IllegalInteger text.
func (c *Core) GetAttributeLocalizableIntegerValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, minValue, maxValue int) string {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return illegalIntegerText
	}

	v, err := types.ParseLocalizableInteger(attr.Value, minValue, maxValue)
	if err != nil {
		c.writeIntegerError(src, el, attr, err, minValue, maxValue)
		return illegalIntegerText
	}
	return v
}

// GetAttributeYesNoValue returns the tri-state value of a yes/no attribute.
func (c *Core) GetAttributeYesNoValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute) types.YesNo {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return types.YesNoIllegal
	}

	v, err := types.ParseYesNo(attr.Value)
	if err != nil {
		c.Write(diag.IllegalYesNoValue(src, el.Name.Local, attr.Name.Local, attr.Value))
	}
	return v
}

// GetAttributeCodePageValue returns a supported code page, or IllegalInteger
// after reporting an unknown or unsupported one.
func (c *Core) GetAttributeCodePageValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute) int {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return types.IllegalInteger
	}

	cp, err := types.ParseCodePage(attr.Value)
	if err != nil {
		c.Write(diag.IllegalCodePage(src, el.Name.Local, attr.Name.Local, attr.Value))
		return types.IllegalInteger
	}
	return int(cp)
}

// GetAttributeVersionValue returns the version as written. Values outside
// the flavor's grammar are kept and reported as warnings.
func (c *Core) GetAttributeVersionValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, flavor versionFlavor) string {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return ""
	}

	var ok bool
	switch flavor {
	case versionPackage:
		ok, _ = types.PackageVersion(attr.Value).IsValid()
	default:
		ok, _ = types.ModuleVersion(attr.Value).IsValid()
	}
	if !ok {
		c.Write(diag.InvalidVersion(src, el.Name.Local, attr.Name.Local, attr.Value, flavor.String()))
	}
	return attr.Value
}

// GetAttributeEnumValue returns the attribute text when it is one of legal,
// or "" after reporting any other value.
func (c *Core) GetAttributeEnumValue(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, legal ...string) string {
	if attr.Value == "" {
		c.Write(diag.IllegalEmptyAttributeValue(src, el.Name.Local, attr.Name.Local))
		return ""
	}
	for _, v := range legal {
		if attr.Value == v {
			return v
		}
	}
	c.Write(diag.IllegalAttributeValue(src, el.Name.Local, attr.Name.Local, attr.Value, legal...))
	return ""
}

func (c *Core) writeIntegerError(src xmltree.SourceLineNumber, el *xmltree.Element, attr xmltree.Attribute, err error, minValue, maxValue int) {
	if errors.Is(err, types.ErrIntegerOutOfRange) {
		c.Write(diag.IntegralValueOutOfRange(src, el.Name.Local, attr.Name.Local, attr.Value, minValue, maxValue))
		return
	}
	c.Write(diag.IllegalIntegralValue(src, el.Name.Local, attr.Name.Local, attr.Value))
}

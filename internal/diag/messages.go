// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apacker1/wix/pkg/xmltree"
)

// Reasons carried in the "reason" parameter of invalid_attribute_value.
const (
	ReasonEmpty      = "empty"
	ReasonIdentifier = "identifier"
	ReasonFormatted  = "formatted_identifier"
	ReasonGuid       = "guid"
	ReasonInteger    = "integer"
	ReasonRange      = "range"
	ReasonYesNo      = "yes_no"
	ReasonCodePage   = "code_page"
	ReasonEnum       = "enum"
)

func newError(src xmltree.SourceLineNumber, code Code, params map[string]string, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Source:   src,
		Message:  fmt.Sprintf(format, args...),
		Params:   params,
	}
}

func newWarning(src xmltree.SourceLineNumber, code Code, params map[string]string, format string, args ...any) Diagnostic {
	d := newError(src, code, params, format, args...)
	d.Severity = SeverityWarning
	return d
}

func attrParams(element, attribute, value string) map[string]string {
	return map[string]string{"element": element, "attribute": attribute, "value": value}
}

// MissingRequiredAttribute reports that a required attribute was not supplied.
func MissingRequiredAttribute(src xmltree.SourceLineNumber, element, attribute string) Diagnostic {
	return newError(src, CodeMissingRequiredAttribute,
		map[string]string{"element": element, "attribute": attribute},
		"The %s/@%s attribute was not found; it is required.", element, attribute)
}

// IllegalEmptyAttributeValue reports an attribute supplied with an empty value.
func IllegalEmptyAttributeValue(src xmltree.SourceLineNumber, element, attribute string) Diagnostic {
	p := attrParams(element, attribute, "")
	p["reason"] = ReasonEmpty
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value cannot be an empty string. If a value is not required, simply remove the entire attribute.", element, attribute)
}

// IllegalIdentifier reports a value that does not match the identifier grammar.
func IllegalIdentifier(src xmltree.SourceLineNumber, element, attribute, value string, looksFormatted bool) Diagnostic {
	p := attrParams(element, attribute, value)
	if looksFormatted {
		p["reason"] = ReasonFormatted
		return newError(src, CodeInvalidAttributeValue, p,
			"The %s/@%s attribute's value '%s' is not a legal identifier. The value looks like a formatted reference: remove the square brackets to refer to the identifier directly.", element, attribute, value)
	}
	p["reason"] = ReasonIdentifier
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value '%s' is not a legal identifier. Identifiers may contain ASCII characters A-Z, a-z, digits, underscores (_), or periods (.). Every identifier must begin with either a letter or an underscore.", element, attribute, value)
}

// IllegalGuidValue reports a value that is not a GUID.
func IllegalGuidValue(src xmltree.SourceLineNumber, element, attribute, value string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonGuid
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value '%s' is not a legal GUID. It should look like {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}.", element, attribute, value)
}

// IllegalIntegralValue reports a value that is not a decimal integer.
func IllegalIntegralValue(src xmltree.SourceLineNumber, element, attribute, value string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonInteger
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value '%s' is not a legal integer value.", element, attribute, value)
}

// IntegralValueOutOfRange reports an integer outside its inclusive bounds.
func IntegralValueOutOfRange(src xmltree.SourceLineNumber, element, attribute, value string, minValue, maxValue int) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonRange
	p["min"] = strconv.Itoa(minValue)
	p["max"] = strconv.Itoa(maxValue)
	return newError(src, CodeInvalidAttributeValue, p,
		"The value '%s' is out of range for the %s/@%s attribute. Legal values must be between %d and %d, inclusive.", value, element, attribute, minValue, maxValue)
}

// IllegalYesNoValue reports a tri-state value other than "yes" or "no".
func IllegalYesNoValue(src xmltree.SourceLineNumber, element, attribute, value string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonYesNo
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value '%s' is not a legal yes/no value. The only legal values are 'no' and 'yes'.", element, attribute, value)
}

// IllegalCodePage reports a code page that is unknown or unsupported.
func IllegalCodePage(src xmltree.SourceLineNumber, element, attribute, value string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonCodePage
	return newError(src, CodeInvalidAttributeValue, p,
		"The code page '%s' given by the %s/@%s attribute is not a valid code page or is not supported for an installer database. Use a number such as 1252 or an encoding name such as windows-1252; UTF-16 and UTF-32 cannot be used.", value, element, attribute)
}

// IllegalAttributeValue reports a value outside an enumerated set.
func IllegalAttributeValue(src xmltree.SourceLineNumber, element, attribute, value string, legal ...string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["reason"] = ReasonEnum
	p["legal"] = strings.Join(legal, ",")
	return newError(src, CodeInvalidAttributeValue, p,
		"The %s/@%s attribute's value, '%s', is not one of the legal options: '%s'.", element, attribute, value, strings.Join(legal, "', '"))
}

// IllegalAttributeCombination reports two mutually exclusive attributes supplied together.
func IllegalAttributeCombination(src xmltree.SourceLineNumber, element, attribute, otherAttribute string) Diagnostic {
	return newError(src, CodeIllegalAttributeCombination,
		map[string]string{"element": element, "attribute": attribute, "other": otherAttribute},
		"The %s/@%s and %s/@%s attributes cannot be specified together. Specify at most one of them.", element, attribute, element, otherAttribute)
}

// UnexpectedElement reports a core-namespace child that its parent does not accept.
func UnexpectedElement(src xmltree.SourceLineNumber, parent, child string) Diagnostic {
	return newError(src, CodeUnexpectedElement,
		map[string]string{"element": parent, "child": child},
		"The %s element contains an unexpected child element '%s'.", parent, child)
}

// UnexpectedAttribute reports a core-namespace attribute that its element does not accept.
func UnexpectedAttribute(src xmltree.SourceLineNumber, element, attribute string) Diagnostic {
	return newError(src, CodeUnexpectedAttribute,
		map[string]string{"element": element, "attribute": attribute},
		"The %s element contains an unexpected attribute '%s'.", element, attribute)
}

// DeprecatedAttribute warns about an attribute kept only for compatibility.
func DeprecatedAttribute(src xmltree.SourceLineNumber, element, attribute, advice string) Diagnostic {
	return newWarning(src, CodeDeprecatedAttribute,
		map[string]string{"element": element, "attribute": attribute},
		"The %s/@%s attribute has been deprecated. %s", element, attribute, advice)
}

// DeprecatedElement warns about an element kept only for compatibility.
func DeprecatedElement(src xmltree.SourceLineNumber, element, advice string) Diagnostic {
	return newWarning(src, CodeDeprecatedElement,
		map[string]string{"element": element},
		"The %s element has been deprecated. %s", element, advice)
}

// PlaceholderValue warns that an unedited template default was left in the source.
func PlaceholderValue(src xmltree.SourceLineNumber, element, attribute, value string) Diagnostic {
	return newWarning(src, CodePlaceholderValue, attrParams(element, attribute, value),
		"The %s/@%s attribute's value, '%s', is a placeholder value from a template. Replace it with a real value.", element, attribute, value)
}

// InvalidVersion warns about a version string outside the recommended grammar.
func InvalidVersion(src xmltree.SourceLineNumber, element, attribute, value, flavor string) Diagnostic {
	p := attrParams(element, attribute, value)
	p["flavor"] = flavor
	return newWarning(src, CodeInvalidVersion, p,
		"The %s/@%s attribute's value, '%s', is not a valid %s version. It will be kept as written, but later stages may reject it.", element, attribute, value, flavor)
}

// IdentifierTooLong warns about an identifier longer than can be modularized safely.
func IdentifierTooLong(src xmltree.SourceLineNumber, element, attribute, value string, maxLength int) Diagnostic {
	p := attrParams(element, attribute, value)
	p["max"] = strconv.Itoa(maxLength)
	return newWarning(src, CodeIdentifierTooLong, p,
		"The %s/@%s attribute's value, '%s', is %d characters long. Identifiers longer than %d characters may fail to modularize.", element, attribute, value, len(value), maxLength)
}

// DuplicateIdentifier reports a symbol declared twice in one section.
func DuplicateIdentifier(src xmltree.SourceLineNumber, table, id string, first xmltree.SourceLineNumber) Diagnostic {
	return newError(src, CodeDuplicateIdentifier,
		map[string]string{"table": table, "id": id, "first": first.String()},
		"The %s with identifier '%s' is declared more than once in this section. The first declaration is at %s.", table, id, first)
}

// UnhandledExtensionElement reports an element in a namespace no extension owns.
func UnhandledExtensionElement(src xmltree.SourceLineNumber, parent string, child xmltree.Name) Diagnostic {
	return newError(src, CodeUnhandledExtension,
		map[string]string{"element": parent, "child": child.Local, "namespace": child.Space},
		"The %s element contains an unhandled extension element '%s'. Please ensure that the extension for elements in the '%s' namespace has been provided.", parent, child.Local, child.Space)
}

// UnhandledExtensionAttribute reports an attribute in a namespace no extension owns.
func UnhandledExtensionAttribute(src xmltree.SourceLineNumber, element string, attribute xmltree.Name) Diagnostic {
	return newError(src, CodeUnhandledExtension,
		map[string]string{"element": element, "attribute": attribute.Local, "namespace": attribute.Space},
		"The %s element contains an unhandled extension attribute '%s'. Please ensure that the extension for attributes in the '%s' namespace has been provided.", element, attribute.Local, attribute.Space)
}

// InvalidDocument reports a structurally unusable tree; compilation of the document stops.
func InvalidDocument(src xmltree.SourceLineNumber, reason string) Diagnostic {
	return newError(src, CodeInvalidDocument, map[string]string{"reason": reason},
		"The document cannot be compiled: %s.", reason)
}

// RowOutsideSection reports a row an extension added while no Package, Module,
// Fragment or PatchCreation was active. The row is dropped.
func RowOutsideSection(src xmltree.SourceLineNumber, table string) Diagnostic {
	return InvalidDocument(src, "the "+table+" row must be placed inside a Package, Module, Fragment or PatchCreation element")
}

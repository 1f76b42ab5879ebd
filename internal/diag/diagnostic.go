// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"

	"github.com/apacker1/wix/pkg/xmltree"
)

const (
	// SeverityWarning is informational and never withholds output.
	SeverityWarning Severity = "warning"
	// SeverityError withholds the document's IR once recorded.
	SeverityError Severity = "error"
)

// Diagnostic codes. Each maps to one entry of the error taxonomy; the
// message parameters say which element, attribute and value were involved.
const (
	CodeMissingRequiredAttribute    Code = "missing_required_attribute"
	CodeInvalidAttributeValue       Code = "invalid_attribute_value"
	CodeIllegalAttributeCombination Code = "illegal_attribute_combination"
	CodeUnexpectedElement           Code = "unexpected_element"
	CodeUnexpectedAttribute         Code = "unexpected_attribute"
	CodeDeprecatedAttribute         Code = "deprecated_attribute"
	CodeDeprecatedElement           Code = "deprecated_element"
	CodePlaceholderValue            Code = "placeholder_value"
	CodeInvalidVersion              Code = "invalid_version"
	CodeIdentifierTooLong           Code = "identifier_too_long"
	CodeDuplicateIdentifier         Code = "duplicate_identifier"
	CodeUnhandledExtension          Code = "unhandled_extension"
	CodeInvalidDocument             Code = "invalid_document"
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Code is a machine-readable diagnostic identifier (e.g., "missing_required_attribute").
	Code string

	// Diagnostic is one structured compiler message.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity `json:"severity" yaml:"severity"`
		// Code identifies the kind of problem.
		Code Code `json:"code" yaml:"code"`
		// Source is where the problem was detected.
		Source xmltree.SourceLineNumber `json:"source" yaml:"source"`
		// Message is the human-readable description.
		Message string `json:"message" yaml:"message"`
		// Params carries the structured values the message was built from
		// (element, attribute, value, ...).
		Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	}
)

// String renders the diagnostic as "file(line): severity code: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %s: %s", d.Source, d.Severity, d.Code, d.Message)
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// Codes returns every diagnostic code in declaration order.
func Codes() []Code {
	return []Code{
		CodeMissingRequiredAttribute,
		CodeInvalidAttributeValue,
		CodeIllegalAttributeCombination,
		CodeUnexpectedElement,
		CodeUnexpectedAttribute,
		CodeDeprecatedAttribute,
		CodeDeprecatedElement,
		CodePlaceholderValue,
		CodeInvalidVersion,
		CodeIdentifierTooLong,
		CodeDuplicateIdentifier,
		CodeUnhandledExtension,
		CodeInvalidDocument,
	}
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/apacker1/wix/internal/diag"
)

type Id int

const (
	MissingRequiredAttributeId Id = iota + 1
	InvalidAttributeValueId
	IllegalAttributeCombinationId
	UnexpectedElementId
	UnexpectedAttributeId
	DeprecatedAttributeId
	DeprecatedElementId
	PlaceholderValueId
	InvalidVersionId
	IdentifierTooLongId
	DuplicateIdentifierId
	UnhandledExtensionId
	InvalidDocumentId
	SourceNotFoundId
	SourceParseErrorId
	ConfigLoadFailedId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	code     diag.Code   // diagnostic code explained by the issue, empty for CLI issues
	name     string      // lookup name of CLI issues
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

// Code returns the diagnostic code the issue explains, if any.
func (i *Issue) Code() diag.Code {
	return i.code
}

// Name is the diagnostic code, or the lookup name of a CLI issue.
func (i *Issue) Name() string {
	if i.code != "" {
		return string(i.code)
	}
	return i.name
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const schemaDocs HttpLink = "https://wixtoolset.org/docs/schema/wxs/"

var (
	render = glamour.Render

	missingRequiredAttributeIssue = &Issue{
		id:   MissingRequiredAttributeId,
		code: diag.CodeMissingRequiredAttribute,
		mdMsg: `
# A required attribute is missing

The element cannot be compiled without the named attribute. Compilation
continues so that every problem in the document is reported, but no output
is written.

## Things you can try:
- Add the attribute named in the message
- Check the attribute spelling; attribute names are case sensitive:
~~~xml
<Dependency RequiredId="Other.Module" RequiredLanguage="1033" />
~~~`,
		docLinks: []HttpLink{schemaDocs},
	}

	invalidAttributeValueIssue = &Issue{
		id:   InvalidAttributeValueId,
		code: diag.CodeInvalidAttributeValue,
		mdMsg: `
# An attribute value is not legal

The value does not fit the attribute's type. The message names the rule that
was broken.

## Common causes:
- An empty value; remove the attribute if no value is needed
- An identifier starting with a digit or containing a dash
- A GUID without the 8-4-4-4-12 hex layout
- An integer outside its range, or "Yes" where only "yes" is accepted
- An enumerated value with the wrong case

## Things you can try:
- List the legal values of the attribute:
~~~
$ wixc schema
~~~`,
		docLinks: []HttpLink{schemaDocs},
	}

	illegalAttributeCombinationIssue = &Issue{
		id:   IllegalAttributeCombinationId,
		code: diag.CodeIllegalAttributeCombination,
		mdMsg: `
# Attributes cannot be combined

Two attributes were given that contradict each other, such as
Exclusion/@ExcludeLanguage and Exclusion/@ExcludeExceptLanguage.

## Things you can try:
- Keep only one of the attributes named in the message`,
	}

	unexpectedElementIssue = &Issue{
		id:   UnexpectedElementId,
		code: diag.CodeUnexpectedElement,
		mdMsg: `
# An element is not allowed here

The element is not a legal child of its parent. Its content is not compiled.

## Things you can try:
- Move the element under a parent that accepts it
- Check for a missing namespace prefix on an extension element`,
		docLinks: []HttpLink{schemaDocs},
	}

	unexpectedAttributeIssue = &Issue{
		id:   UnexpectedAttributeId,
		code: diag.CodeUnexpectedAttribute,
		mdMsg: `
# An attribute is not allowed here

The element does not define the attribute.

## Things you can try:
- Check the attribute spelling
- Qualify extension attributes with their namespace prefix`,
	}

	deprecatedAttributeIssue = &Issue{
		id:   DeprecatedAttributeId,
		code: diag.CodeDeprecatedAttribute,
		mdMsg: `
# A deprecated attribute was used

The attribute still works but will be removed. The message names its
replacement. Warnings become errors with --warnings-as-errors.`,
	}

	deprecatedElementIssue = &Issue{
		id:   DeprecatedElementId,
		code: diag.CodeDeprecatedElement,
		mdMsg: `
# A deprecated element was used

The element still works but will be removed. The message names its
replacement.`,
	}

	placeholderValueIssue = &Issue{
		id:   PlaceholderValueId,
		code: diag.CodePlaceholderValue,
		mdMsg: `
# A template placeholder is still in place

The value looks like an unedited template, for example a module named
PUT-MODULE-NAME-HERE.

## Things you can try:
- Replace the placeholder with a real name:
~~~xml
<Module Id="Acme.Runtime" Language="1033" Version="1.0.0">
~~~`,
	}

	invalidVersionIssue = &Issue{
		id:   InvalidVersionId,
		code: diag.CodeInvalidVersion,
		mdMsg: `
# A version is malformed

Package versions are major.minor.build[.revision] with major and minor at most
255 and the other fields at most 65535. Module versions allow one to four
fields or a semantic version. Binder variables such as !(bind.FileVersion.App)
are always accepted.`,
	}

	identifierTooLongIssue = &Issue{
		id:   IdentifierTooLongId,
		code: diag.CodeIdentifierTooLong,
		mdMsg: `
# An identifier is long

Identifiers longer than 72 characters can break modularization when a merge
module is consumed.

## Things you can try:
- Shorten the identifier`,
	}

	duplicateIdentifierIssue = &Issue{
		id:   DuplicateIdentifierId,
		code: diag.CodeDuplicateIdentifier,
		mdMsg: `
# An identifier is declared twice

Two rows of the same table in one section share an identifier. The message
gives the location of the first declaration.

## Things you can try:
- Rename one of the declarations
- Use a reference element, such as PropertyRef, instead of a second declaration`,
	}

	unhandledExtensionIssue = &Issue{
		id:   UnhandledExtensionId,
		code: diag.CodeUnhandledExtension,
		mdMsg: `
# No extension handles a namespace

An element or attribute belongs to a namespace that no loaded extension
claims.

## Things you can try:
- Check the namespace URI declared on the Wix element
- List the namespaces this build understands:
~~~
$ wixc version --verbose
~~~`,
	}

	invalidDocumentIssue = &Issue{
		id:   InvalidDocumentId,
		code: diag.CodeInvalidDocument,
		mdMsg: `
# The document cannot be compiled

The root element must be Wix in the http://wixtoolset.org/schemas/v4/wxs
namespace, and every row must belong to a Package, Module, Fragment or
PatchCreation. Extension elements placed directly under Wix cannot add rows.

## Example:
~~~xml
<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs">
  <Fragment />
</Wix>
~~~`,
		docLinks: []HttpLink{schemaDocs},
	}

	sourceNotFoundIssue = &Issue{
		id:   SourceNotFoundId,
		name: "source_not_found",
		mdMsg: `
# Source file not found

None of the given paths or patterns matched a source file.

## Things you can try:
- Check the path, or quote glob patterns so the shell does not expand them:
~~~
$ wixc compile 'src/**/*.wxs'
~~~`,
	}

	sourceParseErrorIssue = &Issue{
		id:   SourceParseErrorId,
		name: "source_parse_error",
		mdMsg: `
# Failed to parse a source file

The file is not well-formed XML, so it was not compiled.

## Common issues:
- Unclosed or mismatched tags
- An unescaped & or < inside an attribute value
- More than one root element`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config_load_failed",
		mdMsg: `
# Failed to load configuration

The configuration file exists but could not be read or does not match the
schema.

## Things you can try:
- Check the CUE syntax of the file named in the message
- Compare it with the defaults:
~~~
$ wixc config show
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id:   OutputWriteFailedId,
		name: "output_write_failed",
		mdMsg: `
# Failed to write output

The intermediate was compiled but could not be written.

## Things you can try:
- Check that the output directory exists and is writable
- Remove a stale or locked SQLite database`,
	}

	issues = map[Id]*Issue{
		missingRequiredAttributeIssue.Id():    missingRequiredAttributeIssue,
		invalidAttributeValueIssue.Id():       invalidAttributeValueIssue,
		illegalAttributeCombinationIssue.Id(): illegalAttributeCombinationIssue,
		unexpectedElementIssue.Id():           unexpectedElementIssue,
		unexpectedAttributeIssue.Id():         unexpectedAttributeIssue,
		deprecatedAttributeIssue.Id():         deprecatedAttributeIssue,
		deprecatedElementIssue.Id():           deprecatedElementIssue,
		placeholderValueIssue.Id():            placeholderValueIssue,
		invalidVersionIssue.Id():              invalidVersionIssue,
		identifierTooLongIssue.Id():           identifierTooLongIssue,
		duplicateIdentifierIssue.Id():         duplicateIdentifierIssue,
		unhandledExtensionIssue.Id():          unhandledExtensionIssue,
		invalidDocumentIssue.Id():             invalidDocumentIssue,
		sourceNotFoundIssue.Id():              sourceNotFoundIssue,
		sourceParseErrorIssue.Id():            sourceParseErrorIssue,
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		outputWriteFailedIssue.Id():           outputWriteFailedIssue,
	}

	byName = func() map[string]*Issue {
		m := make(map[string]*Issue, len(issues))
		for _, i := range issues {
			m[i.Name()] = i
		}
		return m
	}()
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	v := maps.Values(issues)
	slices.SortFunc(v, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return v
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForCode returns the issue explaining a diagnostic code, or nil.
func ForCode(code diag.Code) *Issue {
	if i := byName[string(code)]; i != nil && i.code == code {
		return i
	}
	return nil
}

// Lookup returns the issue with the given name, or nil.
func Lookup(name string) *Issue {
	return byName[name]
}

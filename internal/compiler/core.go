// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

// CoreNamespace is the namespace of the core source schema.
const CoreNamespace = "http://wixtoolset.org/schemas/v4/wxs"

type (
	// Core is the per-document state shared by every handler: the diagnostic
	// sink, the sections built so far and the commit gate.
	Core struct {
		sink          *diag.Sink
		registry      *ir.Registry
		extensions    *extension.Registry
		logger        *log.Logger
		ctx           *contextStack
		compilationID string

		intermediate *ir.Intermediate
		withheld     []ir.Row
		symbols      map[symbolKey]xmltree.SourceLineNumber
	}

	symbolKey struct {
		section *ir.Section
		table   ir.TableName
		id      string
	}

	// extensionContext is the view of Core handed to extensions.
	extensionContext struct {
		core *Core
	}
)

func newCore(opts Options, ctx *contextStack) *Core {
	return &Core{
		sink:          diag.NewSink(opts.Diagnostics),
		registry:      opts.Registry,
		extensions:    opts.Extensions,
		logger:        opts.Logger,
		ctx:           ctx,
		compilationID: opts.CompilationID,
		intermediate:  &ir.Intermediate{},
		symbols:       make(map[symbolKey]xmltree.SourceLineNumber),
	}
}

// Write records a diagnostic.
func (c *Core) Write(d diag.Diagnostic) { c.sink.Write(d) }

// EncounteredError reports whether the document has recorded any error.
func (c *Core) EncounteredError() bool { return c.sink.EncounteredError() }

// Active returns a snapshot of the active context.
func (c *Core) Active() ActiveContext { return c.ctx.snapshot() }

// CreateActiveSection allocates a section and appends it to the document.
// The caller activates it by entering the matching structural kind.
func (c *Core) CreateActiveSection(id string, kind ir.SectionKind, codepage int) *ir.Section {
	s := ir.NewSection(id, kind, codepage, c.compilationID)
	c.intermediate.Sections = append(c.intermediate.Sections, s)
	c.logger.Debug("section created", "kind", kind, "id", id)
	return s
}

// AddTuple places a tuple in the active section. The tuple must match its
// table definition and a section must be active; both are programming
// errors and panic. When the document has already recorded an error the row
// is withheld instead of committed.
func (c *Core) AddTuple(src xmltree.SourceLineNumber, t ir.Tuple) {
	if err := c.registry.Validate(t); err != nil {
		panic(fmt.Sprintf("compiler: %v", err))
	}
	section := c.ctx.current.Section
	if section == nil {
		panic(fmt.Sprintf("compiler: %s row added outside a section", t.Table()))
	}

	row := ir.Row{Source: src, Tuple: t}
	if c.EncounteredError() {
		c.withheld = append(c.withheld, row)
		return
	}
	section.Add(row)
}

// AddSymbol adds a tuple whose id must be unique within the active section
// and table. A duplicate is reported and the tuple is dropped. An empty id is
// a sentinel left by an earlier diagnostic and is not tracked.
func (c *Core) AddSymbol(src xmltree.SourceLineNumber, id string, t ir.Tuple) {
	if c.DeclareSymbol(src, t.Table(), id) {
		c.AddTuple(src, t)
	}
}

// DeclareSymbol claims id in the active section and table. It reports a
// duplicate and returns false when the id was already claimed.
func (c *Core) DeclareSymbol(src xmltree.SourceLineNumber, table ir.TableName, id string) bool {
	if id == "" {
		return true
	}
	key := symbolKey{section: c.ctx.current.Section, table: table, id: id}
	if first, exists := c.symbols[key]; exists {
		c.Write(diag.DuplicateIdentifier(src, string(table), id, first))
		return false
	}
	c.symbols[key] = src
	return true
}

// CreateSimpleReference records a reference to a row that the linker resolves.
func (c *Core) CreateSimpleReference(src xmltree.SourceLineNumber, table ir.TableName, keys ...string) {
	c.AddTuple(src, ir.NewSimpleReference(table, keys...))
}

// CreateComplexReference records one structural ownership edge.
func (c *Core) CreateComplexReference(
	src xmltree.SourceLineNumber,
	parentKind ir.ComplexReferenceParentKind, parentID, parentLanguage string,
	childKind ir.ComplexReferenceChildKind, childID string,
	isPrimary bool,
) {
	c.AddTuple(src, ir.ComplexReference{
		ParentKind:     parentKind,
		ParentID:       parentID,
		ParentLanguage: parentLanguage,
		ChildKind:      childKind,
		ChildID:        childID,
		IsPrimary:      isPrimary,
	})
}

// UnexpectedAttribute reports a core attribute the element does not accept.
func (c *Core) UnexpectedAttribute(el *xmltree.Element, attr xmltree.Attribute) {
	c.Write(diag.UnexpectedAttribute(el.Source, el.Name.Local, attr.Name.Local))
}

// UnexpectedElement reports a core child the parent does not accept.
func (c *Core) UnexpectedElement(parent, child *xmltree.Element) {
	c.Write(diag.UnexpectedElement(child.Source, parent.Name.Local, child.Name.Local))
}

// ParseExtensionAttribute delivers a non-core attribute to its extension.
func (c *Core) ParseExtensionAttribute(el *xmltree.Element, attr xmltree.Attribute) {
	ext, ok := c.extensions.Lookup(attr.Name.Space)
	if !ok {
		c.Write(diag.UnhandledExtensionAttribute(el.Source, el.Name.Local, attr.Name))
		return
	}
	c.logger.Debug("extension attribute", "namespace", attr.Name.Space, "element", el.Name.Local, "attribute", attr.Name.Local)
	ext.ParseAttribute(extensionContext{core: c}, el, attr)
}

// ParseExtensionElement delivers a non-core child element to its extension.
// The extension owns the whole subtree.
func (c *Core) ParseExtensionElement(parent, child *xmltree.Element) {
	ext, ok := c.extensions.Lookup(child.Name.Space)
	if !ok {
		c.Write(diag.UnhandledExtensionElement(child.Source, parent.Name.Local, child.Name))
		return
	}
	c.logger.Debug("extension element", "namespace", child.Name.Space, "parent", parent.Name.Local, "element", child.Name.Local)
	ext.ParseElement(extensionContext{core: c}, parent, child)
}

// ParseForExtensionElements visits the children of an element that accepts
// no core children.
func (c *Core) ParseForExtensionElements(el *xmltree.Element) {
	for _, child := range el.Children {
		if child.Name.Space == CoreNamespace {
			c.UnexpectedElement(el, child)
			continue
		}
		c.ParseExtensionElement(el, child)
	}
}

func (e extensionContext) Active() extension.ActiveContext { return e.core.Active() }

func (e extensionContext) Write(d diag.Diagnostic) { e.core.Write(d) }

func (e extensionContext) EncounteredError() bool { return e.core.EncounteredError() }

func (e extensionContext) AddTuple(src xmltree.SourceLineNumber, t ir.Tuple) {
	if e.core.ctx.current.Section == nil {
		e.core.Write(diag.RowOutsideSection(src, string(t.Table())))
		return
	}
	e.core.AddTuple(src, t)
}

// isCoreAttribute reports whether an attribute belongs to the core schema.
// Unqualified attributes are core attributes.
func isCoreAttribute(attr xmltree.Attribute) bool {
	return attr.Name.Space == "" || attr.Name.Space == CoreNamespace
}

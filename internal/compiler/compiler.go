// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

type (
	// Options configures a Compiler. The registries are shared read-only and
	// may be used by concurrent compilers.
	Options struct {
		// Registry defines the tables rows are checked against. Defaults to
		// ir.DefaultRegistry().
		Registry *ir.Registry
		// Extensions handles non-core namespaces. Nil means none.
		Extensions *extension.Registry
		// Diagnostics tunes warning handling.
		Diagnostics diag.Options
		// CompilationID is stamped on every section.
		CompilationID string
		// Logger receives debug traces. Defaults to a discarding logger.
		Logger *log.Logger
	}

	// Compiler compiles documents one at a time. It is not safe for
	// concurrent use; run one Compiler per goroutine.
	Compiler struct {
		opts Options
		ctx  contextStack
		core *Core
	}

	// Result is the outcome of compiling one document.
	Result struct {
		// Intermediate is nil when any error was recorded.
		Intermediate *ir.Intermediate
		// Withheld holds the rows the commit gate refused because an error
		// had already been recorded, in creation order.
		Withheld []ir.Row
		// Diagnostics holds every diagnostic in the order it was recorded.
		Diagnostics []diag.Diagnostic
	}
)

// New creates a compiler.
func New(opts Options) *Compiler {
	if opts.Registry == nil {
		opts.Registry = ir.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Compiler{opts: opts}
}

// Compile compiles one document. Validation problems are reported as
// diagnostics, never as a Go error.
func (c *Compiler) Compile(doc *xmltree.Document) Result {
	c.ctx = contextStack{}
	c.core = newCore(c.opts, &c.ctx)

	file := ""
	if doc != nil {
		file = doc.File
	}
	c.opts.Logger.Debug("compile", "file", file)

	switch {
	case doc == nil || doc.Root == nil:
		c.core.Write(diag.InvalidDocument(xmltree.SourceLineNumber{File: file}, "the document has no root element"))
	case doc.Root.Name != (xmltree.Name{Space: CoreNamespace, Local: "Wix"}):
		c.core.Write(diag.InvalidDocument(doc.Root.Source,
			"the root element must be Wix in the "+CoreNamespace+" namespace, found "+doc.Root.Name.String()))
	default:
		c.parseWixElement(doc.Root)
	}

	res := Result{
		Withheld:    c.core.withheld,
		Diagnostics: c.core.sink.Diagnostics(),
	}
	if !c.core.EncounteredError() {
		res.Intermediate = c.core.intermediate
	}
	c.opts.Logger.Debug("compiled", "file", file,
		"errors", c.core.sink.ErrorCount(), "warnings", c.core.sink.WarningCount(), "rows", res.Intermediate.RowCount())
	return res
}

// HasErrors reports whether the document produced any error diagnostic.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

func (c *Compiler) parseWixElement(el *xmltree.Element) {
	for _, attr := range el.Attributes {
		if isCoreAttribute(attr) {
			c.core.UnexpectedAttribute(el, attr)
			continue
		}
		c.core.ParseExtensionAttribute(el, attr)
	}
	c.parseChildren(parentInfo{element: el}, el, wixChildren)
}

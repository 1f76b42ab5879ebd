// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/apacker1/wix/internal/diag"
	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

var (
	// ErrEmptyNamespace is returned when an extension reports no namespace.
	ErrEmptyNamespace = errors.New("extension namespace must not be empty")
	// ErrDuplicateNamespace is returned when two extensions claim one namespace.
	ErrDuplicateNamespace = errors.New("duplicate extension namespace")
)

type (
	// ActiveContext is the ambient compilation state visible to descendants
	// of a structural element. Section is nil outside any section and must
	// not be mutated; add rows through Context.AddTuple.
	ActiveContext struct {
		Section          *ir.Section
		Name             string
		Language         string
		CompilingModule  bool
		CompilingPackage bool
		CompilingPatch   bool
	}

	// Context is what an extension handler may do while handling a node.
	Context interface {
		// Active returns a snapshot of the active compilation context.
		Active() ActiveContext
		// Write records a diagnostic for the document.
		Write(d diag.Diagnostic)
		// EncounteredError reports whether the document has any error so far.
		EncounteredError() bool
		// AddTuple adds a row to the active section through the commit gate.
		// Outside any section the row is dropped and an error is recorded.
		AddTuple(src xmltree.SourceLineNumber, t ir.Tuple)
	}

	// Extension handles the elements and attributes of one namespace.
	Extension interface {
		Namespace() string
		ParseElement(ctx Context, parent, elem *xmltree.Element)
		ParseAttribute(ctx Context, elem *xmltree.Element, attr xmltree.Attribute)
	}

	// Registry maps namespaces to extensions. It is immutable after
	// construction and safe for concurrent use.
	Registry struct {
		byNamespace map[string]Extension
	}
)

// NewRegistry builds a registry. Each extension must claim a distinct,
// non-empty namespace.
func NewRegistry(exts ...Extension) (*Registry, error) {
	r := &Registry{byNamespace: make(map[string]Extension, len(exts))}
	for _, ext := range exts {
		ns := ext.Namespace()
		if ns == "" {
			return nil, fmt.Errorf("%w: %T", ErrEmptyNamespace, ext)
		}
		if _, exists := r.byNamespace[ns]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNamespace, ns)
		}
		r.byNamespace[ns] = ext
	}
	return r, nil
}

// Lookup returns the extension registered for a namespace. A nil registry
// has no extensions.
func (r *Registry) Lookup(namespace string) (Extension, bool) {
	if r == nil {
		return nil, false
	}
	ext, ok := r.byNamespace[namespace]
	return ext, ok
}

// Namespaces returns the registered namespaces in sorted order.
func (r *Registry) Namespaces() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.byNamespace))
}

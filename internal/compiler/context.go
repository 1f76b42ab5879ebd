// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"fmt"

	"github.com/apacker1/wix/internal/extension"
	"github.com/apacker1/wix/internal/ir"
)

const (
	kindPackage structuralKind = iota
	kindModule
	kindFragment
	kindPatchCreation
	structuralKindCount
)

type (
	// ActiveContext is the ambient state visible to descendants of a
	// structural element.
	ActiveContext = extension.ActiveContext

	structuralKind int

	// contextStack holds the active context. Entering a structural element
	// pushes a new value; the returned release pops it on every exit path.
	contextStack struct {
		current ActiveContext
		active  [structuralKindCount]bool
	}
)

func (k structuralKind) String() string {
	switch k {
	case kindPackage:
		return "Package"
	case kindModule:
		return "Module"
	case kindFragment:
		return "Fragment"
	case kindPatchCreation:
		return "PatchCreation"
	default:
		return fmt.Sprintf("structuralKind(%d)", int(k))
	}
}

// enter activates a structural kind and returns the function that restores
// the previous context. Release is idempotent. Entering a kind that is
// already active is a programming error and panics.
func (s *contextStack) enter(kind structuralKind, section *ir.Section, name, language string) (release func()) {
	if s.active[kind] {
		panic(fmt.Sprintf("compiler: %s entered while already active", kind))
	}

	prev := s.current
	next := ActiveContext{
		Section:          section,
		Name:             name,
		Language:         language,
		CompilingModule:  prev.CompilingModule,
		CompilingPackage: prev.CompilingPackage,
		CompilingPatch:   prev.CompilingPatch,
	}
	switch kind {
	case kindModule:
		next.CompilingModule = true
	case kindPackage:
		next.CompilingPackage = true
	case kindPatchCreation:
		next.CompilingPatch = true
	}

	s.active[kind] = true
	s.current = next

	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.current = prev
		s.active[kind] = false
	}
}

// snapshot returns a copy of the active context.
func (s *contextStack) snapshot() ActiveContext { return s.current }

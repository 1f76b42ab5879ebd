// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"maps"

	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/pkg/xmltree"
)

type (
	// elementHandler parses one core element beneath parent.
	elementHandler func(c *Compiler, parent parentInfo, el *xmltree.Element)

	// handlerTable maps the local names of core children to their handlers.
	handlerTable map[string]elementHandler

	// parentInfo carries what a structural parent passes to its children
	// explicitly. Kind is empty when the parent owns no complex references.
	parentInfo struct {
		element   *xmltree.Element
		kind      ir.ComplexReferenceParentKind
		id        string
		language  string
		directory string
		// moduleGuid is the deprecated Module/@Guid, the package code fallback
		// of a module's Package element.
		moduleGuid string
	}
)

// Child tables are filled in init because handlers refer back to them.
var (
	wixChildren            handlerTable
	moduleChildren         handlerTable
	packageChildren        handlerTable
	fragmentChildren       handlerTable
	patchCreationChildren  handlerTable
	featureChildren        handlerTable
	componentGroupChildren handlerTable
	directoryChildren      handlerTable
)

func init() {
	wixChildren = handlerTable{
		"Fragment":      (*Compiler).parseFragmentElement,
		"Module":        (*Compiler).parseModuleElement,
		"Package":       (*Compiler).parsePackageElement,
		"PatchCreation": (*Compiler).parsePatchCreationElement,
	}

	// Resources every package-like section may declare.
	common := handlerTable{
		"Binary":             (*Compiler).parseBinaryElement,
		"Component":          (*Compiler).parseComponentElement,
		"CustomActionRef":    simpleReferenceHandler(tableCustomAction),
		"Directory":          (*Compiler).parseDirectoryElement,
		"DirectoryRef":       (*Compiler).parseDirectoryRefElement,
		"EmbeddedChainerRef": simpleReferenceHandler(tableEmbeddedChainer),
		"EnsureTable":        (*Compiler).parseEnsureTableElement,
		"Icon":               (*Compiler).parseIconElement,
		"Property":           (*Compiler).parsePropertyElement,
		"PropertyRef":        simpleReferenceHandler(ir.TableProperty),
		"UIRef":              simpleReferenceHandler(tableUI),
		"WixVariable":        (*Compiler).parseWixVariableElement,
	}

	moduleChildren = with(common, handlerTable{
		"ComponentGroupRef":    (*Compiler).parseComponentGroupRefElement,
		"ComponentRef":         (*Compiler).parseComponentRefElement,
		"Configuration":        (*Compiler).parseConfigurationElement,
		"Dependency":           (*Compiler).parseDependencyElement,
		"Exclusion":            (*Compiler).parseExclusionElement,
		"IgnoreModularization": (*Compiler).parseIgnoreModularizationElement,
		"IgnoreTable":          (*Compiler).parseIgnoreTableElement,
		"Package":              (*Compiler).parseModulePackageElement,
		"Substitution":         (*Compiler).parseSubstitutionElement,
	})

	packageChildren = with(common, handlerTable{
		"ComponentGroup":    (*Compiler).parseComponentGroupElement,
		"ComponentGroupRef": (*Compiler).parseComponentGroupRefElement,
		"ComponentRef":      (*Compiler).parseComponentRefElement,
		"Feature":           (*Compiler).parseFeatureElement,
		"FeatureRef":        simpleReferenceHandler(ir.TableFeature),
	})

	fragmentChildren = with(common, handlerTable{
		"ComponentGroup": (*Compiler).parseComponentGroupElement,
		"Feature":        (*Compiler).parseFeatureElement,
		"FeatureRef":     simpleReferenceHandler(ir.TableFeature),
	})

	patchCreationChildren = handlerTable{
		"PatchInformation": (*Compiler).parsePatchInformationElement,
		"PatchProperty":    (*Compiler).parsePatchPropertyElement,
		"PropertyRef":      simpleReferenceHandler(ir.TableProperty),
	}

	featureChildren = handlerTable{
		"Component":         (*Compiler).parseComponentElement,
		"ComponentGroupRef": (*Compiler).parseComponentGroupRefElement,
		"ComponentRef":      (*Compiler).parseComponentRefElement,
		"Feature":           (*Compiler).parseFeatureElement,
	}

	componentGroupChildren = handlerTable{
		"Component":         (*Compiler).parseComponentElement,
		"ComponentGroupRef": (*Compiler).parseComponentGroupRefElement,
		"ComponentRef":      (*Compiler).parseComponentRefElement,
	}

	directoryChildren = handlerTable{
		"Component": (*Compiler).parseComponentElement,
		"Directory": (*Compiler).parseDirectoryElement,
	}
}

// with returns a new table holding base and extra.
func with(base, extra handlerTable) handlerTable {
	t := make(handlerTable, len(base)+len(extra))
	maps.Copy(t, base)
	maps.Copy(t, extra)
	return t
}

// parseChildren dispatches every child of el exactly once, in document order.
// Unknown core children are reported and not descended into.
func (c *Compiler) parseChildren(parent parentInfo, el *xmltree.Element, table handlerTable) {
	for _, child := range el.Children {
		if child.Name.Space != CoreNamespace {
			c.core.ParseExtensionElement(el, child)
			continue
		}
		handler, ok := table[child.Name.Local]
		if !ok {
			c.core.UnexpectedElement(el, child)
			continue
		}
		handler(c, parent, child)
	}
}

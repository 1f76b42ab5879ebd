// SPDX-License-Identifier: MPL-2.0

package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	xmlnsSpace = "xmlns"
	// xmlNamespace is bound to the reserved xml prefix.
	xmlNamespace = "http://www.w3.org/XML/1998/namespace"
)

// ErrMultipleRoots is returned when a document has more than one top-level element.
var ErrMultipleRoots = errors.New("document has more than one root element")

// ParseError reports a malformed document with the position it was detected at.
type ParseError struct {
	Source SourceLineNumber
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads one document. Namespace declarations and xml:* attributes such
// as xml:space are consumed and do not appear as attributes; character data
// and comments are dropped.
// A document without any element yields a Document with a nil Root.
func Parse(r io.Reader, file string) (*Document, error) {
	d := xml.NewDecoder(r)
	doc := &Document{File: file}

	var stack []*Element
	for {
		// The position before reading a start tag is the position of its '<'
		// because surrounding whitespace arrives as a separate token.
		line, _ := d.InputPos()

		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: SourceLineNumber{File: file, Line: line}, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{
				Name:   Name{Space: t.Name.Space, Local: t.Name.Local},
				Source: SourceLineNumber{File: file, Line: startLine(line)},
			}
			for _, a := range t.Attr {
				if isReservedAttr(a.Name) {
					continue
				}
				elem.Attributes = append(elem.Attributes, Attribute{
					Name:  Name{Space: a.Name.Space, Local: a.Name.Local},
					Value: a.Value,
				})
			}

			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, &ParseError{Source: elem.Source, Err: ErrMultipleRoots}
				}
				doc.Root = elem
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			}
			stack = append(stack, elem)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	return doc, nil
}

// ParseString is a convenience wrapper around Parse for inline documents.
func ParseString(s, file string) (*Document, error) {
	return Parse(strings.NewReader(s), file)
}

func startLine(line int) int {
	if line < 1 {
		return 1
	}
	return line
}

// isReservedAttr reports namespace declarations and attributes in the xml
// namespace. The decoder maps the xml prefix to xmlNamespace.
func isReservedAttr(n xml.Name) bool {
	switch n.Space {
	case xmlnsSpace, "xml", xmlNamespace:
		return true
	case "":
		return n.Local == xmlnsSpace
	}
	return false
}

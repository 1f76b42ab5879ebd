// SPDX-License-Identifier: MPL-2.0

package xmltree

import (
	"errors"
	"slices"
	"testing"
)

const testNS = "http://wixtoolset.org/schemas/v4/wxs"

func TestParse_NamesAttributesAndLines(t *testing.T) {
	t.Parallel()

	src := `<?xml version="1.0"?>
<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs" xmlns:ext="urn:ext">
  <Module Id="M1" ext:Flag="on">
    <!-- ignored -->
    <Dependency RequiredId="Other" />
  </Module>
</Wix>`

	doc, err := ParseString(src, "product.wxs")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if doc.Root == nil {
		t.Fatal("Root is nil")
	}
	if got, want := doc.Root.Name, (Name{Space: testNS, Local: "Wix"}); got != want {
		t.Errorf("Root.Name = %v, want %v", got, want)
	}
	if len(doc.Root.Attributes) != 0 {
		t.Errorf("namespace declarations leaked as attributes: %v", doc.Root.Attributes)
	}
	if doc.Root.Source.Line != 2 {
		t.Errorf("Root line = %d, want 2", doc.Root.Source.Line)
	}

	module := doc.Root.Children[0]
	if module.Source.Line != 3 {
		t.Errorf("Module line = %d, want 3", module.Source.Line)
	}
	if len(module.Attributes) != 2 {
		t.Fatalf("Module attributes = %d, want 2", len(module.Attributes))
	}
	if module.Attributes[0].Name != (Name{Local: "Id"}) || module.Attributes[0].Value != "M1" {
		t.Errorf("first attribute = %+v", module.Attributes[0])
	}
	if module.Attributes[1].Name != (Name{Space: "urn:ext", Local: "Flag"}) {
		t.Errorf("second attribute name = %v", module.Attributes[1].Name)
	}

	if len(module.Children) != 1 {
		t.Fatalf("Module children = %d, want 1", len(module.Children))
	}
	dep := module.Children[0]
	if dep.Source.Line != 5 {
		t.Errorf("Dependency line = %d, want 5", dep.Source.Line)
	}
	if dep.Source.File != "product.wxs" {
		t.Errorf("Dependency file = %q", dep.Source.File)
	}
}

func TestParse_ReservedAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Attribute
	}{
		{
			name: "xml space and lang",
			src:  `<Wix xml:space="preserve" xml:lang="en-US" Id="A"/>`,
			want: []Attribute{{Name: Name{Local: "Id"}, Value: "A"}},
		},
		{
			name: "explicit xml prefix declaration",
			src:  `<Wix xmlns:xml="http://www.w3.org/XML/1998/namespace" xml:space="default"/>`,
		},
		{
			name: "namespace declarations",
			src:  `<Wix xmlns="urn:a" xmlns:b="urn:b" b:Flag="1"/>`,
			want: []Attribute{{Name: Name{Space: "urn:b", Local: "Flag"}, Value: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseString(tt.src, "a.wxs")
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if !slices.Equal(doc.Root.Attributes, tt.want) {
				t.Errorf("Attributes = %+v, want %+v", doc.Root.Attributes, tt.want)
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseString(`<?xml version="1.0"?>`, "empty.wxs")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if doc.Root != nil {
		t.Errorf("Root = %#v, want nil", doc.Root)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseString("<Wix>\n<Module></Wix>", "bad.wxs")
	if err == nil {
		t.Fatal("expected error for mismatched tags")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be *ParseError, got %T", err)
	}
	if pe.Source.File != "bad.wxs" {
		t.Errorf("ParseError file = %q", pe.Source.File)
	}
}

func TestParse_MultipleRoots(t *testing.T) {
	t.Parallel()

	// encoding/xml tokenizes a second root without complaint.
	_, err := ParseString("<A/><B/>", "two.wxs")
	if !errors.Is(err, ErrMultipleRoots) {
		t.Fatalf("error = %v, want ErrMultipleRoots", err)
	}
}

func TestSourceLineNumber_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   SourceLineNumber
		want string
	}{
		{SourceLineNumber{}, "<unknown>"},
		{SourceLineNumber{File: "a.wxs"}, "a.wxs"},
		{SourceLineNumber{File: "a.wxs", Line: 12}, "a.wxs(12)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElement_Attr(t *testing.T) {
	t.Parallel()

	e := NewElement(Name{Space: testNS, Local: "Property"}, SourceLineNumber{File: "x", Line: 1},
		[]Attribute{{Name: Name{Local: "Id"}, Value: "P"}})

	if a, ok := e.Attr(Name{Local: "Id"}); !ok || a.Value != "P" {
		t.Errorf("Attr(Id) = %+v, %v", a, ok)
	}
	if _, ok := e.Attr(Name{Local: "Value"}); ok {
		t.Error("Attr(Value) should be absent")
	}
}

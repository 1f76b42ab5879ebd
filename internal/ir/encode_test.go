// SPDX-License-Identifier: MPL-2.0

package ir

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/apacker1/wix/pkg/xmltree"
)

func sampleIntermediate() *Intermediate {
	s := NewSection("M1", SectionModule, 1252, "c-1")
	src := xmltree.SourceLineNumber{File: "m.wxs", Line: 3}
	s.Add(Row{Source: src, Tuple: ModuleSignature{ModuleID: "M1", Language: "1033", Version: "1.0.0"}})
	s.Add(Row{Source: src, Tuple: ComplexReference{
		ParentKind: ParentModule, ParentID: "M1", ParentLanguage: "1033",
		ChildKind: ChildComponent, ChildID: "C1",
	}})
	return &Intermediate{Sections: []*Section{s}}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, sampleIntermediate(), DefaultRegistry()); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	out := buf.String()

	mod := strings.Index(out, `"ModuleID"`)
	lang := strings.Index(out, `"Language"`)
	ver := strings.Index(out, `"Version"`)
	if mod < 0 || mod >= lang || lang >= ver {
		t.Errorf("fields not in column order:\n%s", out)
	}

	var decoded struct {
		Sections []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
			Rows []struct {
				Table  string         `json:"table"`
				Source string         `json:"source"`
				Fields map[string]any `json:"fields"`
			} `json:"rows"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Sections) != 1 || decoded.Sections[0].Kind != "module" {
		t.Fatalf("sections = %+v", decoded.Sections)
	}
	rows := decoded.Sections[0].Rows
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Source != "m.wxs(3)" {
		t.Errorf("source = %q", rows[0].Source)
	}
	if rows[1].Fields["IsPrimary"] != false {
		t.Errorf("IsPrimary = %v", rows[1].Fields["IsPrimary"])
	}
}

func TestEncodeYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, sampleIntermediate(), DefaultRegistry()); err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "ChildID: C1") {
		t.Errorf("missing ChildID field:\n%s", buf.String())
	}
	if strings.Index(buf.String(), "ParentKind") > strings.Index(buf.String(), "ChildKind") {
		t.Errorf("fields not in column order:\n%s", buf.String())
	}
}

func TestNewDocument_NilAndUnknown(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument(nil, DefaultRegistry())
	if err != nil || len(doc.Sections) != 0 {
		t.Fatalf("NewDocument(nil) = %+v, %v", doc, err)
	}

	s := NewSection("F", SectionFragment, 0, "")
	s.Add(Row{Tuple: unknownTuple{}})
	if _, err := NewDocument(&Intermediate{Sections: []*Section{s}}, DefaultRegistry()); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestSection_Helpers(t *testing.T) {
	t.Parallel()

	in := sampleIntermediate()
	s := in.Sections[0]
	s.Add(Row{Tuple: NewSimpleReference(TableProperty, "A", "B")})

	if got := len(s.RowsOf(TableModuleSignature)); got != 1 {
		t.Errorf("RowsOf(signature) = %d, want 1", got)
	}
	if refs := s.ComplexReferences(); len(refs) != 1 || refs[0].ChildID != "C1" {
		t.Errorf("ComplexReferences() = %+v", refs)
	}
	simple := s.SimpleReferences()
	if len(simple) != 1 || simple[0].PrimaryKeys != "A/B" {
		t.Fatalf("SimpleReferences() = %+v", simple)
	}
	if keys := simple[0].Keys(); len(keys) != 2 || keys[1] != "B" {
		t.Errorf("Keys() = %v", keys)
	}
	if in.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", in.RowCount())
	}
	var nilIn *Intermediate
	if nilIn.RowCount() != 0 {
		t.Error("nil RowCount should be 0")
	}
}

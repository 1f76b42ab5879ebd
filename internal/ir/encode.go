// SPDX-License-Identifier: MPL-2.0

package ir

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type (
	// Document is the serializable view of an intermediate. Row fields are
	// named by the registry and keep column order.
	Document struct {
		Sections []DocumentSection `json:"sections" yaml:"sections"`
	}

	// DocumentSection is the serializable view of a section.
	DocumentSection struct {
		ID            string        `json:"id" yaml:"id"`
		Kind          SectionKind   `json:"kind" yaml:"kind"`
		Codepage      int           `json:"codepage" yaml:"codepage"`
		CompilationID string        `json:"compilationId,omitempty" yaml:"compilationId,omitempty"`
		Rows          []DocumentRow `json:"rows" yaml:"rows"`
	}

	// DocumentRow is the serializable view of a row.
	DocumentRow struct {
		Table  TableName `json:"table" yaml:"table"`
		Source string    `json:"source" yaml:"source"`
		Fields Fields    `json:"fields" yaml:"fields"`
	}

	// Fields is an ordered list of named values.
	Fields []Field

	// Field is one named column value.
	Field struct {
		Name  string
		Value any
	}
)

// NewDocument builds the serializable view of in using the column names of reg.
func NewDocument(in *Intermediate, reg *Registry) (*Document, error) {
	doc := &Document{Sections: []DocumentSection{}}
	if in == nil {
		return doc, nil
	}
	for _, s := range in.Sections {
		ds := DocumentSection{
			ID:            s.ID,
			Kind:          s.Kind,
			Codepage:      s.Codepage,
			CompilationID: s.CompilationID,
			Rows:          make([]DocumentRow, 0, len(s.Rows)),
		}
		for _, r := range s.Rows {
			def, ok := reg.Lookup(r.Table())
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTable, r.Table())
			}
			values := r.Tuple.Values()
			if len(values) != len(def.Columns) {
				return nil, &TupleShapeError{Table: def.Name, Reason: "column count mismatch"}
			}
			fields := make(Fields, len(values))
			for i, col := range def.Columns {
				fields[i] = Field{Name: col.Name, Value: values[i]}
			}
			ds.Rows = append(ds.Rows, DocumentRow{Table: r.Table(), Source: r.Source.String(), Fields: fields})
		}
		doc.Sections = append(doc.Sections, ds)
	}
	return doc, nil
}

// EncodeJSON writes in as indented JSON.
func EncodeJSON(w io.Writer, in *Intermediate, reg *Registry) error {
	doc, err := NewDocument(in, reg)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeYAML writes in as YAML.
func EncodeYAML(w io.Writer, in *Intermediate, reg *Registry) error {
	doc, err := NewDocument(in, reg)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Get returns the value of the named field.
func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the fields as a JSON object in column order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the fields as a YAML mapping in column order.
func (f Fields) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range f {
		var value yaml.Node
		if err := value.Encode(field.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Name},
			&value,
		)
	}
	return node, nil
}

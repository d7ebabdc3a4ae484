package jsonschema

import (
	"bytes"
	stdjson "encoding/json"

	json "github.com/goccy/go-json"
)

// Draft is the JSON Schema dialect the exported documents declare.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`
}

func String() *Schema  { return &Schema{Type: "string"} }
func Number() *Schema  { return &Schema{Type: "number"} }
func Integer() *Schema { return &Schema{Type: "integer"} }
func Bool() *Schema    { return &Schema{Type: "boolean"} }
func Null() *Schema    { return &Schema{Type: "null"} }

// Range bounds a numeric schema inclusively.
func Range(s *Schema, lo, hi float64) *Schema {
	s.Minimum, s.Maximum = &lo, &hi
	return s
}

// Nullable accepts s or null.
func Nullable(s *Schema) *Schema { return &Schema{AnyOf: []*Schema{s, Null()}} }

// ArrayOf describes a homogeneous array.
func ArrayOf(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// MapOf describes an object whose values all follow values.
func MapOf(values *Schema) *Schema { return &Schema{Type: "object", AdditionalProperties: values} }

// Open describes an object whose content is not constrained.
func Open() *Schema { return &Schema{Type: "object", AdditionalProperties: true} }

// Prop is one named property of an object schema.
type Prop struct {
	Name     string
	Schema   *Schema
	Required bool
}

// Object describes an object with the given properties. Unknown properties
// are allowed, matching the validators, which ignore extra fields.
func Object(props ...Prop) *Schema {
	s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(props))}
	for _, p := range props {
		s.Properties[p.Name] = p.Schema
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// Marshal renders s with the dialect declared at the top level. The document
// is encoded compactly and indented afterwards; go-json's indenting encoder
// compounds the prefix on nested schema maps.
func Marshal(s *Schema) ([]byte, error) {
	doc := *s
	if doc.Schema == "" {
		doc.Schema = Draft
	}
	b, err := json.Marshal(&doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := stdjson.Indent(&out, b, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

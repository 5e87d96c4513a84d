package openapi

import (
	"slices"
	"strings"
)

// Schema types used when building requests.
const (
	TypeObject = "object"
	TypeArray  = "array"
)

// maxRefHops bounds reference chains such as A -> B -> A.
const maxRefHops = 16

// Schema is the subset of a JSON Schema node that request building relies on.
type Schema struct {
	Ref string `yaml:"$ref,omitempty"`

	// Type is a string, or a list of strings in OpenAPI 3.1 documents.
	Type       any                `yaml:"type,omitempty"`
	Format     string             `yaml:"format,omitempty"`
	Properties map[string]*Schema `yaml:"properties,omitempty"`
	Required   []string           `yaml:"required,omitempty"`
	Items      *Schema            `yaml:"items,omitempty"`
}

// TypeName returns the schema type, picking the first non-null entry when
// several types are declared.
func (s *Schema) TypeName() string {
	if s == nil {
		return ""
	}
	switch t := s.Type.(type) {
	case string:
		return t
	case []any:
		for _, v := range t {
			if name, ok := v.(string); ok && name != "null" {
				return name
			}
		}
	case []string:
		for _, name := range t {
			if name != "null" {
				return name
			}
		}
	}
	return ""
}

// HasProperties reports whether the schema declares nested properties.
func (s *Schema) HasProperties() bool {
	return s != nil && len(s.Properties) > 0
}

// Requires reports whether name is listed in the schema's own required set.
func (s *Schema) Requires(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// ResolveSchema follows local $ref pointers into "#/components/schemas/" or
// "#/definitions/". A reference that cannot be followed is returned unchanged.
func (d *Document) ResolveSchema(s *Schema) *Schema {
	for hops := 0; s != nil && s.Ref != "" && hops < maxRefHops; hops++ {
		var next *Schema
		switch {
		case strings.HasPrefix(s.Ref, "#/components/schemas/"):
			if d.Components != nil {
				next = d.Components.Schemas[strings.TrimPrefix(s.Ref, "#/components/schemas/")]
			}
		case strings.HasPrefix(s.Ref, "#/definitions/"):
			next = d.Definitions[strings.TrimPrefix(s.Ref, "#/definitions/")]
		}
		if next == nil {
			return s
		}
		s = next
	}
	return s
}

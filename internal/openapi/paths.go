package openapi

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InCookie   = "cookie"
	InBody     = "body"
	InFormData = "formData"
)

// Methods lists the HTTP methods a path item may declare, in document order.
var Methods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

// PathItem holds the operations available on a single path.
type PathItem struct {
	Parameters []*Parameter `yaml:"parameters,omitempty"`

	Get     *Operation `yaml:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty"`
}

// Operation returns the operation declared for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch strings.ToUpper(method) {
	case "GET":
		return p.Get
	case "PUT":
		return p.Put
	case "POST":
		return p.Post
	case "DELETE":
		return p.Delete
	case "OPTIONS":
		return p.Options
	case "HEAD":
		return p.Head
	case "PATCH":
		return p.Patch
	case "TRACE":
		return p.Trace
	}
	return nil
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string       `yaml:"operationId,omitempty"`
	Tags        []string     `yaml:"tags,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
	RequestBody *RequestBody `yaml:"requestBody,omitempty"`

	// Security is nil when the operation does not declare it. An empty list
	// explicitly removes the document-level requirements.
	Security []SecurityRequirement `yaml:"security,omitempty"`

	Consumes []string `yaml:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty"`
}

// Parameter describes a single operation parameter, or a reference to one.
type Parameter struct {
	Ref string `yaml:"$ref,omitempty"`

	Name     string  `yaml:"name,omitempty"`
	In       string  `yaml:"in,omitempty"`
	Required bool    `yaml:"required,omitempty"`
	Schema   *Schema `yaml:"schema,omitempty"`
	Style    string  `yaml:"style,omitempty"`
	Explode  *bool   `yaml:"explode,omitempty"`

	// Swagger 2.0 non-body parameters.
	Type             string  `yaml:"type,omitempty"`
	CollectionFormat string  `yaml:"collectionFormat,omitempty"`
	Items            *Schema `yaml:"items,omitempty"`
}

// IsRef reports whether the parameter is a reference object.
func (p *Parameter) IsRef() bool {
	return p.Ref != ""
}

// RequestBody is the OpenAPI 3 request body of an operation.
type RequestBody struct {
	Required bool    `yaml:"required,omitempty"`
	Content  Content `yaml:"content,omitempty"`
}

// MediaType pairs a media type name with its schema.
type MediaType struct {
	Name   string  `yaml:"-"`
	Schema *Schema `yaml:"schema,omitempty"`
}

// Content is the media type map of a request body, kept in document order.
type Content []MediaType

// UnmarshalYAML decodes a media type mapping while preserving key order.
func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: content must be a mapping", value.Line)
	}
	out := make(Content, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		mt := MediaType{Name: value.Content[i].Value}
		if err := value.Content[i+1].Decode(&mt); err != nil {
			return err
		}
		out = append(out, mt)
	}
	*c = out
	return nil
}

// First returns the first declared media type.
func (c Content) First() (MediaType, bool) {
	if len(c) == 0 {
		return MediaType{}, false
	}
	return c[0], true
}

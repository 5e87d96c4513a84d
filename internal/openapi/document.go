// Package openapi holds the subset of the Swagger 2.0 and OpenAPI 3.x document
// model needed to build requests. Both shapes share one set of types; fields
// that only exist in one version are left empty by the other.
package openapi

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Version identifies which document shape a description uses.
type Version int

const (
	// OpenAPI3 is an "openapi: 3.x" document. It is also assumed when a
	// document declares neither version field.
	OpenAPI3 Version = iota
	// Swagger2 is a "swagger: 2.0" document.
	Swagger2
)

func (v Version) String() string {
	if v == Swagger2 {
		return "swagger"
	}
	return "openapi"
}

// Document is a decoded API description.
type Document struct {
	Swagger string `yaml:"swagger,omitempty"`
	OpenAPI string `yaml:"openapi,omitempty"`

	Host     string   `yaml:"host,omitempty"`
	BasePath *string  `yaml:"basePath,omitempty"`
	Schemes  []string `yaml:"schemes,omitempty"`
	Consumes []string `yaml:"consumes,omitempty"`
	Produces []string `yaml:"produces,omitempty"`
	Servers  []Server `yaml:"servers,omitempty"`

	Paths map[string]*PathItem `yaml:"paths,omitempty"`

	// Swagger 2.0 reusable sections.
	Parameters          map[string]*Parameter      `yaml:"parameters,omitempty"`
	Definitions         map[string]*Schema         `yaml:"definitions,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `yaml:"securityDefinitions,omitempty"`

	Components *Components `yaml:"components,omitempty"`

	Security []SecurityRequirement `yaml:"security,omitempty"`
}

// Components is the OpenAPI 3 reusable-objects section.
type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty"`
}

// Server is an OpenAPI 3 server entry.
type Server struct {
	URL       string                    `yaml:"url"`
	Variables map[string]ServerVariable `yaml:"variables,omitempty"`
}

// ServerVariable maps a key such as "default" to the value used for a
// {variable} placeholder in a server URL. Keys other than "default" and
// "enum" name alternatives a caller may select.
type ServerVariable map[string]any

// SecurityRequirement maps a security scheme name to its required scopes.
type SecurityRequirement map[string][]string

// SecurityScheme describes one authentication mechanism.
type SecurityScheme struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name,omitempty"`
	In     string `yaml:"in,omitempty"`
	Scheme string `yaml:"scheme,omitempty"`
}

// Decode parses a YAML or JSON document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Version reports the document shape.
func (d *Document) Version() Version {
	if d.OpenAPI == "" && strings.HasPrefix(d.Swagger, "2") {
		return Swagger2
	}
	return OpenAPI3
}

// VersionString returns the declared version, e.g. "2.0" or "3.0.3".
func (d *Document) VersionString() string {
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}

var serverVariable = regexp.MustCompile(`\{([^{}]*)\}`)

// Expand substitutes every {variable} of the server URL with the variable's
// entry under key.
func (s Server) Expand(key string) string {
	return serverVariable.ReplaceAllStringFunc(s.URL, func(m string) string {
		return s.Variables[m[1:len(m)-1]].Value(key)
	})
}

// Value returns the variable's entry under key as a string, falling back to
// "default" when key is absent.
func (v ServerVariable) Value(key string) string {
	val, ok := v[key]
	if !ok {
		val, ok = v["default"]
	}
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

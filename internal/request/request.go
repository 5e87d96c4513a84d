// Package request turns an OpenAPI operation and a set of example values into
// a concrete request: path with query string, headers and payload.
//
// A Builder is created once per document and may be shared; every call to
// Build is independent and never modifies the document or the metadata.
//
//	b := request.NewBuilder(doc, request.WithLogger(logger))
//	req, err := b.Build(meta, examples.Values{"id": 42})
package request

import "github.com/capripot/rswag/internal/openapi"

// Examples exposes the values a test case supplies, by name.
type Examples interface {
	Has(name string) bool
	Get(name string) any
}

// Metadata describes the operation a request is built for.
type Metadata struct {
	Verb      string
	PathItem  PathItem
	Operation *openapi.Operation
}

// PathItem carries the enclosing path template and its shared parameters.
type PathItem struct {
	Template   string
	Parameters []*openapi.Parameter
}

// Request is the built request, ready to hand to an HTTP client.
type Request struct {
	Verb    string            `json:"verb"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers"`

	// Form holds the payload of form-encoded and multipart bodies.
	Form map[string]any `json:"form,omitempty"`
	// Body holds the payload of JSON and other bodies, as supplied.
	Body any `json:"body,omitempty"`

	Deprecations []*DeprecationError `json:"-"`
}

// ContentType returns the Content-Type header of the request, if any.
func (r *Request) ContentType() string {
	return r.Headers[headerContentType]
}

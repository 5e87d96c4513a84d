package request

import (
	"net/url"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/capripot/rswag/internal/openapi"
)

// dialect isolates the parts of request building that differ between
// Swagger 2.0 and OpenAPI 3 documents.
type dialect interface {
	// parameterRef looks up a reusable parameter by reference.
	parameterRef(ref string) (*openapi.Parameter, bool)
	securitySchemes() map[string]*openapi.SecurityScheme
	// legacySections reports document-level sections the version ignores.
	legacySections()
	basePath() string
	queryFragment(p *openapi.Parameter, value any) string
	// contentType is the Content-Type used when neither the example nor
	// consumes provides one.
	contentType() string
	// formFields returns the request body fields read into a form payload.
	formFields(contentType string) map[string]Field
}

// refName returns the trailing segment of a JSON pointer.
func refName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

type swagger2 struct {
	b *build
}

func (d swagger2) parameterRef(ref string) (*openapi.Parameter, bool) {
	p, ok := d.b.doc.Parameters[refName(ref)]
	return p, ok && p != nil
}

func (d swagger2) securitySchemes() map[string]*openapi.SecurityScheme {
	return d.b.doc.SecurityDefinitions
}

func (d swagger2) legacySections() {}

func (d swagger2) basePath() string {
	if d.b.doc.BasePath == nil {
		return ""
	}
	return strings.TrimSuffix(*d.b.doc.BasePath, "/")
}

func (d swagger2) queryFragment(p *openapi.Parameter, value any) string {
	return serializeCollection(p, value)
}

func (d swagger2) contentType() string {
	return ""
}

func (d swagger2) formFields(string) map[string]Field {
	return nil
}

type openAPI3 struct {
	b *build
}

func (d openAPI3) parameterRef(ref string) (*openapi.Parameter, bool) {
	doc := d.b.doc
	if strings.HasPrefix(ref, "#/parameters/") {
		d.b.deprecated("#/parameters/ refs", "#/components/parameters/")
	}
	if doc.Components == nil {
		return nil, false
	}
	p, ok := doc.Components.Parameters[refName(ref)]
	return p, ok && p != nil
}

func (d openAPI3) securitySchemes() map[string]*openapi.SecurityScheme {
	doc := d.b.doc
	if doc.SecurityDefinitions != nil {
		d.b.deprecated("securityDefinitions", "components/securitySchemes")
	}
	if doc.Components == nil {
		return nil
	}
	return doc.Components.SecuritySchemes
}

func (d openAPI3) legacySections() {
	doc := d.b.doc
	if doc.Parameters != nil {
		d.b.deprecated("parameters", "components/parameters")
	}
	if doc.SecurityDefinitions != nil {
		d.b.deprecated("securityDefinitions", "components/securitySchemes")
	}
}

func (d openAPI3) basePath() string {
	doc := d.b.doc
	if doc.BasePath != nil {
		d.b.deprecated("basePath", "servers")
		return ""
	}
	if len(doc.Servers) == 0 {
		return ""
	}

	raw := doc.Servers[0].Expand(d.b.serverKey)
	u, err := url.Parse(raw)
	if err != nil {
		level.Warn(d.b.logger).Log("msg", "ignoring unparsable server url", "url", raw, "err", err)
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}

// queryFragment dereferences the parameter's schema first, since the
// encoding depends on its type.
func (d openAPI3) queryFragment(p *openapi.Parameter, value any) string {
	if p.Schema != nil && p.Schema.Ref != "" {
		resolved := *p
		resolved.Schema = d.b.doc.ResolveSchema(p.Schema)
		p = &resolved
	}
	return serializeQuery(p, value)
}

func (d openAPI3) contentType() string {
	if body := d.b.meta.Operation.RequestBody; body != nil {
		if mt, ok := body.Content.First(); ok {
			return mt.Name
		}
	}
	return ""
}

func (d openAPI3) formFields(contentType string) map[string]Field {
	body := d.b.meta.Operation.RequestBody
	if body == nil {
		return nil
	}
	mt, ok := body.Content.First()
	for _, candidate := range body.Content {
		if mediaType(candidate.Name) == contentType {
			mt, ok = candidate, true
			break
		}
	}
	if !ok || mt.Schema == nil {
		return nil
	}
	return flattenSchema(mt.Schema, MaxFlattenDepth, d.b.doc.ResolveSchema)
}

package request

import (
	"strings"

	"github.com/capripot/rswag/internal/openapi"
)

// MaxFlattenDepth is how many levels of nested objects FlattenSchema descends
// into before recording a property as a leaf.
const MaxFlattenDepth = 3

const (
	mediaTypeFormURLEncoded = "application/x-www-form-urlencoded"
	mediaTypeMultipartForm  = "multipart/form-data"
)

// Field is one entry of a flattened request body schema.
type Field struct {
	Schema *openapi.Schema
	// Required reports whether the field's immediate parent requires it.
	Required bool
}

// FlattenSchema maps every leaf property of schema to a flat name made of its
// ancestors' names joined with "_". Nested objects deeper than maxDepth are
// recorded as leaves.
//
//	{address: {properties: {city: {}}, required: [city]}}  =>  address_city (required)
func FlattenSchema(schema *openapi.Schema, maxDepth int) map[string]Field {
	return flattenSchema(schema, maxDepth, nil)
}

func flattenSchema(schema *openapi.Schema, maxDepth int, resolve func(*openapi.Schema) *openapi.Schema) map[string]Field {
	if resolve == nil {
		resolve = func(s *openapi.Schema) *openapi.Schema { return s }
	}
	fields := make(map[string]Field)
	walkProperties(fields, resolve(schema), "", 0, maxDepth, resolve)
	return fields
}

func walkProperties(fields map[string]Field, parent *openapi.Schema, prefix string, depth, maxDepth int, resolve func(*openapi.Schema) *openapi.Schema) {
	if parent == nil {
		return
	}
	for name, prop := range parent.Properties {
		key := name
		if prefix != "" {
			key = prefix + "_" + name
		}
		prop = resolve(prop)
		if prop.HasProperties() && depth < maxDepth {
			walkProperties(fields, prop, key, depth+1, maxDepth, resolve)
			continue
		}
		fields[key] = Field{Schema: prop, Required: parent.Requires(name)}
	}
}

// addPayload fills the form or body payload according to the request's
// Content-Type.
func (b *build) addPayload(req *Request, params []*openapi.Parameter) error {
	contentType := mediaType(req.ContentType())
	if contentType == mediaTypeFormURLEncoded || contentType == mediaTypeMultipartForm {
		form, err := b.formPayload(params, contentType)
		if err != nil {
			return err
		}
		req.Form = form
		return nil
	}

	for _, p := range params {
		if p.In != openapi.InBody {
			continue
		}
		v, ok, err := b.value(p)
		if err != nil {
			return err
		}
		if ok {
			req.Body = v
		}
		break
	}
	return nil
}

// formPayload reads formData parameters and flattened body fields from the
// example. Optional fields the example does not supply are left out.
func (b *build) formPayload(params []*openapi.Parameter, contentType string) (map[string]any, error) {
	form := make(map[string]any)
	for _, p := range params {
		if p.In != openapi.InFormData {
			continue
		}
		v, ok, err := b.value(p)
		if err != nil {
			return nil, err
		}
		if ok {
			form[p.Name] = v
		}
	}

	fields := b.dialect.formFields(contentType)
	for _, name := range sortedKeys(fields) {
		if b.has(name) {
			form[name] = b.examples.Get(name)
			continue
		}
		if fields[name].Required {
			return nil, &MissingValueError{Name: name, In: openapi.InBody}
		}
	}

	return form, nil
}

// mediaType strips parameters such as charset from a Content-Type value.
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

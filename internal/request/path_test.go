package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capripot/rswag/internal/examples"
	"github.com/capripot/rswag/internal/openapi"
)

func TestBuildPath(t *testing.T) {
	intSchema := &openapi.Schema{Type: "integer"}

	tests := []struct {
		name   string
		doc    string
		opts   []Option
		params []*openapi.Parameter
		values examples.Values
		want   string
	}{
		{
			name:   "path parameter",
			doc:    "openapi: 3.0.3\n",
			params: []*openapi.Parameter{{Name: "id", In: openapi.InPath, Required: true, Schema: intSchema}},
			values: examples.Values{"id": "42"},
			want:   "/pets/42",
		},
		{
			name: "query parameters keep declaration order",
			doc:  "openapi: 3.0.3\n",
			params: []*openapi.Parameter{
				{Name: "id", In: openapi.InPath, Required: true, Schema: intSchema},
				{Name: "limit", In: openapi.InQuery, Schema: intSchema},
				{Name: "offset", In: openapi.InQuery, Schema: intSchema},
			},
			values: examples.Values{"id": 1, "offset": 20, "limit": 10},
			want:   "/pets/1?limit=10&offset=20",
		},
		{
			name: "server url path",
			doc: `
openapi: 3.0.3
servers:
  - url: https://{env}.example.com/{version}/
    variables:
      env: {default: api, beta: beta-api}
      version: {default: v1, beta: v2}
`,
			params: []*openapi.Parameter{{Name: "id", In: openapi.InPath, Required: true}},
			values: examples.Values{"id": 7},
			want:   "/v1/pets/7",
		},
		{
			name: "server variable alternative",
			doc: `
openapi: 3.0.3
servers:
  - url: https://{env}.example.com/{version}
    variables:
      env: {default: api}
      version: {default: v1, beta: v2}
`,
			opts:   []Option{WithServer("beta")},
			params: []*openapi.Parameter{{Name: "id", In: openapi.InPath, Required: true}},
			values: examples.Values{"id": 7},
			want:   "/v2/pets/7",
		},
		{
			name: "swagger 2 base path",
			doc: `
swagger: "2.0"
basePath: /api/
`,
			params: []*openapi.Parameter{
				{Name: "id", In: openapi.InPath, Required: true, Type: "integer"},
				{Name: "tags", In: openapi.InQuery, Type: "array", CollectionFormat: "pipes"},
			},
			values: examples.Values{"id": 3, "tags": []any{"x", "y"}},
			want:   "/api/pets/3?tags=x|y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.doc)
			meta := &Metadata{
				Verb:      "get",
				PathItem:  PathItem{Template: "/pets/{id}"},
				Operation: &openapi.Operation{Parameters: tt.params},
			}

			req, err := NewBuilder(doc, tt.opts...).Build(meta, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Path)
			assert.Empty(t, req.Deprecations)
		})
	}
}

func TestBuildPath_OpenAPI3BasePathIgnored(t *testing.T) {
	doc := mustDecode(t, `
openapi: 3.0.3
basePath: /legacy
servers:
  - url: https://api.example.com/v1
`)
	meta := &Metadata{
		Verb:      "get",
		PathItem:  PathItem{Template: "/pets"},
		Operation: &openapi.Operation{},
	}

	req, err := NewBuilder(doc).Build(meta, examples.Values{})
	require.NoError(t, err)

	assert.Equal(t, "/pets", req.Path)
	require.Len(t, req.Deprecations, 1)
	assert.Equal(t, "basePath", req.Deprecations[0].Construct)
	assert.Equal(t, "servers", req.Deprecations[0].Replacement)
}

func TestBuildPath_MissingValues(t *testing.T) {
	doc := &openapi.Document{OpenAPI: "3.0.3"}

	t.Run("path parameter", func(t *testing.T) {
		meta := &Metadata{
			Verb:     "get",
			PathItem: PathItem{Template: "/pets/{id}"},
			Operation: &openapi.Operation{Parameters: []*openapi.Parameter{
				{Name: "id", In: openapi.InPath, Required: true},
			}},
		}

		_, err := NewBuilder(doc).Build(meta, examples.Values{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingValue))

		var missing *MissingValueError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "id", missing.Name)
		assert.Equal(t, openapi.InPath, missing.In)
		assert.Contains(t, err.Error(), "`id` path parameter key present")
	})

	t.Run("required query parameter", func(t *testing.T) {
		meta := &Metadata{
			Verb:     "get",
			PathItem: PathItem{Template: "/pets"},
			Operation: &openapi.Operation{Parameters: []*openapi.Parameter{
				{Name: "status", In: openapi.InQuery, Required: true, Schema: &openapi.Schema{Type: "string"}},
			}},
		}

		_, err := NewBuilder(doc).Build(meta, nil)
		var missing *MissingValueError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "status", missing.Name)
		assert.Equal(t, openapi.InQuery, missing.In)
	})
}

func TestBuildPath_PathParameterWithoutRequiredFlag(t *testing.T) {
	doc := mustDecode(t, `
openapi: 3.0.3
paths:
  /pets/{id}:
    get:
      parameters:
        - {name: id, in: path, schema: {type: string}}
`)
	meta := &Metadata{
		Verb:      "get",
		PathItem:  PathItem{Template: "/pets/{id}"},
		Operation: doc.Paths["/pets/{id}"].Get,
	}
	require.False(t, meta.Operation.Parameters[0].Required)

	_, err := NewBuilder(doc).Build(meta, examples.Values{})
	var missing *MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "id", missing.Name)
	assert.Equal(t, openapi.InPath, missing.In)

	req, err := NewBuilder(doc).Build(meta, examples.Values{"id": "rex"})
	require.NoError(t, err)
	assert.Equal(t, "/pets/rex", req.Path)
}

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capripot/rswag/internal/examples"
	"github.com/capripot/rswag/internal/openapi"
)

func boolPtr(b bool) *bool { return &b }

func TestSerializeQuery(t *testing.T) {
	array := &openapi.Schema{Type: "array"}
	object := &openapi.Schema{Type: "object"}
	str := &openapi.Schema{Type: "string"}

	tests := []struct {
		name  string
		param openapi.Parameter
		value any
		want  string
	}{
		{
			name:  "array form not exploded",
			param: openapi.Parameter{Name: "tags", Schema: array, Style: "form", Explode: boolPtr(false)},
			value: []any{"a", "b"},
			want:  "tags=a,b",
		},
		{
			name:  "array exploded by default",
			param: openapi.Parameter{Name: "tags", Schema: array},
			value: []any{"a", "b"},
			want:  "tags=a&tags=b",
		},
		{
			name:  "array pipe delimited",
			param: openapi.Parameter{Name: "tags", Schema: array, Style: "pipeDelimited", Explode: boolPtr(false)},
			value: []string{"a", "b"},
			want:  "tags=a|b",
		},
		{
			name:  "array space delimited",
			param: openapi.Parameter{Name: "tags", Schema: array, Style: "spaceDelimited", Explode: boolPtr(false)},
			value: []any{"a", "b"},
			want:  "tags=a%20b",
		},
		{
			name:  "nested arrays are flattened",
			param: openapi.Parameter{Name: "ids", Schema: array},
			value: []any{[]any{1, 2}, 3},
			want:  "ids=1&ids=2&ids=3",
		},
		{
			name:  "array values are escaped",
			param: openapi.Parameter{Name: "q", Schema: array, Explode: boolPtr(false)},
			value: []any{"a&b", "c d"},
			want:  "q=a%26b,c+d",
		},
		{
			name:  "object deep object",
			param: openapi.Parameter{Name: "filter", Schema: object, Style: "deepObject"},
			value: map[string]any{"status": "sold", "kind": "dog"},
			want:  "filter[kind]=dog&filter[status]=sold",
		},
		{
			name:  "object form exploded",
			param: openapi.Parameter{Name: "filter", Schema: object},
			value: map[string]any{"status": "sold", "kind": "dog"},
			want:  "kind=dog&status=sold",
		},
		{
			name:  "object form not exploded",
			param: openapi.Parameter{Name: "filter", Schema: object, Explode: boolPtr(false)},
			value: map[string]string{"status": "sold", "kind": "dog"},
			want:  "filter=kind,dog,status,sold",
		},
		{
			name:  "object with unsupported style",
			param: openapi.Parameter{Name: "filter", Schema: object, Style: "pipeDelimited"},
			value: map[string]any{"kind": "dog"},
			want:  "",
		},
		{
			name:  "scalar",
			param: openapi.Parameter{Name: "q", Schema: str},
			value: "hello world",
			want:  "q=hello+world",
		},
		{
			name:  "scalar number",
			param: openapi.Parameter{Name: "limit", Schema: &openapi.Schema{Type: "integer"}},
			value: 10,
			want:  "limit=10",
		},
		{
			name:  "no schema",
			param: openapi.Parameter{Name: "q"},
			value: "x",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serializeQuery(&tt.param, tt.value))
		})
	}
}

func TestSerializeCollection(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "tags=a,b"},
		{"csv", "tags=a,b"},
		{"ssv", "tags=a%20b"},
		{"tsv", "tags=a%09b"},
		{"pipes", "tags=a|b"},
		{"multi", "tags=a&tags=b"},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			p := &openapi.Parameter{Name: "tags", Type: "array", CollectionFormat: tt.format}
			assert.Equal(t, tt.want, serializeCollection(p, []any{"a", "b"}))
		})
	}

	t.Run("scalar", func(t *testing.T) {
		p := &openapi.Parameter{Name: "name", Type: "string"}
		assert.Equal(t, "name=Fido+Jr", serializeCollection(p, "Fido Jr"))
	})
}

func TestBuild_QuerySchemaReference(t *testing.T) {
	doc := mustDecode(t, `
openapi: 3.0.3
components:
  schemas:
    Filter: {type: object, properties: {kind: {type: string}}}
    Alias: {$ref: '#/components/schemas/Filter'}
    Tags: {type: array, items: {type: string}}
paths:
  /pets:
    get:
      parameters:
        - {name: filter, in: query, style: deepObject, schema: {$ref: '#/components/schemas/Alias'}}
        - {name: tags, in: query, explode: false, schema: {$ref: '#/components/schemas/Tags'}}
`)
	op := doc.Paths["/pets"].Get
	meta := &Metadata{Verb: "get", PathItem: PathItem{Template: "/pets"}, Operation: op}

	req, err := NewBuilder(doc).Build(meta, examples.Values{
		"filter": map[string]any{"kind": "dog"},
		"tags":   []any{"a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/pets?filter[kind]=dog&tags=a,b", req.Path)
	assert.Equal(t, "#/components/schemas/Alias", op.Parameters[0].Schema.Ref)
}

package request

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capripot/rswag/internal/examples"
	"github.com/capripot/rswag/internal/openapi"
)

const petstore = `
swagger: "2.0"
host: petstore.example.com
basePath: /v2
consumes: [application/json]
produces: [application/json, application/xml]
securityDefinitions:
  api_key: {type: apiKey, name: api_key, in: header}
  session: {type: apiKey, name: sid, in: cookie}
security:
  - api_key: []
paths:
  /pets/{petId}:
    parameters:
      - {name: petId, in: path, required: true, type: integer}
      - {name: X-Request-ID, in: header, type: string}
    get:
      produces: [application/xml]
      security:
        - session: []
      parameters:
        - {name: lang, in: cookie, type: string}
        - {name: expand, in: query, type: boolean}
`

func petMetadata(t *testing.T, doc *openapi.Document) *Metadata {
	t.Helper()
	item := doc.Paths["/pets/{petId}"]
	require.NotNil(t, item)
	return &Metadata{
		Verb:      "get",
		PathItem:  PathItem{Template: "/pets/{petId}", Parameters: item.Parameters},
		Operation: item.Get,
	}
}

func TestBuild_Headers(t *testing.T) {
	doc := mustDecode(t, petstore)
	meta := petMetadata(t, doc)

	req, err := NewBuilder(doc).Build(meta, examples.Values{
		"petId":        5,
		"sid":          "abc",
		"lang":         "fr",
		"X-Request-ID": "req-1",
		"expand":       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Verb)
	assert.Equal(t, "/v2/pets/5?expand=true", req.Path)
	assert.Equal(t, map[string]string{
		"Accept":       "application/xml",
		"Content-Type": "application/json",
		"Host":         "petstore.example.com",
		"X-Request-ID": "req-1",
		"Cookie":       "lang=fr; sid=abc",
	}, req.Headers)
	assert.Empty(t, req.Deprecations)
}

func TestBuild_HeaderOverrides(t *testing.T) {
	doc := mustDecode(t, petstore)
	meta := petMetadata(t, doc)

	req, err := NewBuilder(doc).Build(meta, examples.Values{
		"petId":        5,
		"sid":          "abc",
		"Accept":       "text/plain",
		"Content-Type": "application/merge-patch+json",
		"Host":         "localhost:8080",
	})
	require.NoError(t, err)

	assert.Equal(t, "text/plain", req.Headers["Accept"])
	assert.Equal(t, "application/merge-patch+json", req.Headers["Content-Type"])
	assert.Equal(t, "localhost:8080", req.Headers["Host"])
	assert.Equal(t, "sid=abc", req.Headers["Cookie"])
	assert.NotContains(t, req.Headers, "X-Request-ID")
}

func TestBuild_MissingSecurityValue(t *testing.T) {
	doc := mustDecode(t, petstore)
	meta := petMetadata(t, doc)

	_, err := NewBuilder(doc).Build(meta, examples.Values{"petId": 5})

	var missing *MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "sid", missing.Name)
	assert.Equal(t, openapi.InCookie, missing.In)
}

func TestBuild_DoesNotMutateMetadata(t *testing.T) {
	doc := mustDecode(t, petstore)
	meta := petMetadata(t, doc)

	// Spare capacity would let an append write into the operation's array.
	opParams := make([]*openapi.Parameter, len(meta.Operation.Parameters), len(meta.Operation.Parameters)+4)
	copy(opParams, meta.Operation.Parameters)
	meta.Operation.Parameters = opParams

	before := append([]*openapi.Parameter(nil), opParams[:cap(opParams)]...)
	itemParams := append([]*openapi.Parameter(nil), meta.PathItem.Parameters...)

	for range 2 {
		_, err := NewBuilder(doc).Build(meta, examples.Values{"petId": 1, "sid": "x"})
		require.NoError(t, err)
	}

	assert.Equal(t, before, opParams[:cap(opParams)])
	assert.Equal(t, itemParams, meta.PathItem.Parameters)
	assert.Len(t, meta.Operation.Parameters, 2)
	assert.Len(t, doc.Security, 1)
}

func TestBuild_InvalidInput(t *testing.T) {
	doc := &openapi.Document{OpenAPI: "3.0.3"}

	_, err := NewBuilder(doc).Build(nil, nil)
	assert.Error(t, err)

	_, err = NewBuilder(doc).Build(&Metadata{Verb: "get"}, nil)
	assert.Error(t, err)

	_, err = NewBuilder(nil).Build(&Metadata{Operation: &openapi.Operation{}}, nil)
	assert.Error(t, err)
}

func TestBuild_LogsDeprecations(t *testing.T) {
	doc := mustDecode(t, `
openapi: 3.0.3
basePath: /v1
securityDefinitions:
  api_key: {type: apiKey, name: api_key, in: header}
security:
  - api_key: []
`)
	meta := &Metadata{Verb: "get", PathItem: PathItem{Template: "/pets"}, Operation: &openapi.Operation{}}

	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowWarn())

	req, err := NewBuilder(doc, WithLogger(logger)).Build(meta, examples.Values{})
	require.NoError(t, err)

	// securityDefinitions is ignored, so no api_key header is demanded.
	assert.Equal(t, "/pets", req.Path)
	assert.NotContains(t, req.Headers, "api_key")

	require.Len(t, req.Deprecations, 2)
	assert.Equal(t, "securityDefinitions", req.Deprecations[0].Construct)
	assert.Equal(t, "basePath", req.Deprecations[1].Construct)
	assert.True(t, errors.Is(req.Deprecations[1], ErrDeprecated))

	out := buf.String()
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "construct=securityDefinitions")
	assert.Contains(t, out, "construct=basePath")
	assert.Contains(t, out, "replacement=servers")
	assert.Contains(t, out, "version=3.0.3")
}

func TestBuild_Concurrent(t *testing.T) {
	doc := mustDecode(t, petstore)
	meta := petMetadata(t, doc)
	b := NewBuilder(doc)

	const workers = 16
	paths := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := b.Build(meta, examples.Values{"petId": i, "sid": "s"})
			errs[i] = err
			if err == nil {
				paths[i] = req.Path
			}
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("/v2/pets/%d", i), paths[i])
	}
}

func TestBuild_ReportsLegacyParametersSection(t *testing.T) {
	doc := mustDecode(t, `
openapi: 3.0.3
parameters:
  page: {name: page, in: query, schema: {type: integer}}
`)
	meta := &Metadata{Verb: "get", PathItem: PathItem{Template: "/pets"}, Operation: &openapi.Operation{}}

	var buf bytes.Buffer
	req, err := NewBuilder(doc, WithLogger(log.NewLogfmtLogger(&buf))).Build(meta, examples.Values{})
	require.NoError(t, err)

	require.Len(t, req.Deprecations, 1)
	assert.Equal(t, "parameters", req.Deprecations[0].Construct)
	assert.Equal(t, "components/parameters", req.Deprecations[0].Replacement)
	assert.Contains(t, buf.String(), "construct=parameters")
}

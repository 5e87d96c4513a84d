package parser

import (
	"net/url"
	"os"
	"strings"

	"github.com/pb33f/libopenapi"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pkg/errors"

	"github.com/capripot/rswag/internal/models"
	"github.com/capripot/rswag/internal/openapi"
	"github.com/capripot/rswag/internal/request"
)

// Parser handles parsing OpenAPI specification files
type Parser struct {
	document libopenapi.Document
	spec     *openapi.Document
}

// ParseFile parses a Swagger 2.0 or OpenAPI 3.x file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read OpenAPI file")
	}
	return Parse(specBytes)
}

// Parse parses a Swagger 2.0 or OpenAPI 3.x document held in memory
func Parse(specBytes []byte) (*Parser, error) {
	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse OpenAPI document")
	}

	spec, err := openapi.Decode(specBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode OpenAPI document")
	}

	return &Parser{document: document, spec: spec}, nil
}

// Document returns the decoded document used to build requests
func (p *Parser) Document() *openapi.Document {
	return p.spec
}

// GetServerURLs returns the server URLs declared by the document
func (p *Parser) GetServerURLs() ([]string, error) {
	if p.spec.Version() == openapi.Swagger2 {
		model, errs := p.document.BuildV2Model()
		if errs != nil {
			return nil, errors.Errorf("failed to build v2 model: %v", errs)
		}
		if model.Model.Host == "" {
			return []string{"http://localhost"}, nil
		}
		scheme := "https"
		if len(model.Model.Schemes) > 0 {
			scheme = model.Model.Schemes[0]
		}
		// basePath is part of every request path, so the server URL stops at the host.
		u := url.URL{Scheme: scheme, Host: model.Model.Host}
		return []string{u.String()}, nil
	}

	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, errors.Errorf("failed to build v3 model: %v", errs)
	}

	servers := model.Model.Servers
	if len(servers) == 0 {
		return []string{"http://localhost"}, nil
	}

	urls := make([]string, 0, len(servers))
	for i, server := range servers {
		if server == nil || server.URL == "" {
			continue
		}
		raw := server.URL
		if i < len(p.spec.Servers) {
			raw = p.spec.Servers[i].Expand(request.DefaultServerKey)
		}
		urls = append(urls, serverOrigin(raw))
	}

	return urls, nil
}

// serverOrigin strips the path from a server URL. Request paths already carry
// the server's base path.
func serverOrigin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "http://localhost"
	}
	return u.Scheme + "://" + u.Host
}

// GetOperations extracts all operations from the document, in document order
func (p *Parser) GetOperations(serverURL string) ([]models.Operation, error) {
	var operations []models.Operation
	add := func(path, method, operationID string, tags []string) {
		operations = append(operations, models.Operation{
			Path:        path,
			Method:      method,
			OperationID: operationID,
			Tags:        append([]string{}, tags...),
			ServerURL:   serverURL,
			FullPath:    serverURL + path,
		})
	}

	if p.spec.Version() == openapi.Swagger2 {
		model, errs := p.document.BuildV2Model()
		if errs != nil {
			return nil, errors.Errorf("failed to build v2 model: %v", errs)
		}
		paths := model.Model.Paths
		if paths == nil || paths.PathItems == nil {
			return operations, nil
		}
		for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
			item := pair.Value()
			if item == nil {
				continue
			}
			for _, m := range v2Operations(item) {
				if m.op != nil {
					add(pair.Key(), m.method, m.op.OperationId, m.op.Tags)
				}
			}
		}
		return operations, nil
	}

	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, errors.Errorf("failed to build v3 model: %v", errs)
	}
	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return operations, nil
	}
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		item := pair.Value()
		if item == nil {
			continue
		}
		for _, m := range v3Operations(item) {
			if m.op != nil {
				add(pair.Key(), m.method, m.op.OperationId, m.op.Tags)
			}
		}
	}

	return operations, nil
}

type v2Method struct {
	method string
	op     *v2.Operation
}

func v2Operations(item *v2.PathItem) []v2Method {
	return []v2Method{
		{"GET", item.Get},
		{"PUT", item.Put},
		{"POST", item.Post},
		{"DELETE", item.Delete},
		{"OPTIONS", item.Options},
		{"HEAD", item.Head},
		{"PATCH", item.Patch},
	}
}

type v3Method struct {
	method string
	op     *v3.Operation
}

func v3Operations(item *v3.PathItem) []v3Method {
	return []v3Method{
		{"GET", item.Get},
		{"PUT", item.Put},
		{"POST", item.Post},
		{"DELETE", item.Delete},
		{"OPTIONS", item.Options},
		{"HEAD", item.Head},
		{"PATCH", item.Patch},
		{"TRACE", item.Trace},
	}
}

// GetOperationMetadata returns the metadata a request for method on path is built from
func (p *Parser) GetOperationMetadata(path, method string) (*request.Metadata, error) {
	item, ok := p.spec.Paths[path]
	if !ok || item == nil {
		return nil, errors.Errorf("path not found: %s", path)
	}

	method = strings.ToUpper(method)
	if !isKnownMethod(method) {
		return nil, errors.Errorf("unsupported method: %s", method)
	}

	operation := item.Operation(method)
	if operation == nil {
		return nil, errors.Errorf("operation not found: %s %s", method, path)
	}

	return &request.Metadata{
		Verb: method,
		PathItem: request.PathItem{
			Template:   path,
			Parameters: item.Parameters,
		},
		Operation: operation,
	}, nil
}

func isKnownMethod(method string) bool {
	for _, m := range openapi.Methods {
		if m == method {
			return true
		}
	}
	return false
}

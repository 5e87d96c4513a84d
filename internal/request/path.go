package request

import (
	"strings"

	"github.com/capripot/rswag/internal/openapi"
)

// buildPath prefixes the template with the document's base path, substitutes
// path parameters and appends the query string.
func (b *build) buildPath(params []*openapi.Parameter) (string, error) {
	path := b.dialect.basePath() + b.meta.PathItem.Template

	for _, p := range params {
		if p.In != openapi.InPath {
			continue
		}
		if !b.has(p.Name) {
			return "", &MissingValueError{Name: p.Name, In: p.In}
		}
		path = strings.ReplaceAll(path, "{"+p.Name+"}", stringify(b.examples.Get(p.Name)))
	}

	var sb strings.Builder
	sb.WriteString(path)
	sep := "?"
	for _, p := range params {
		if p.In != openapi.InQuery {
			continue
		}
		v, ok, err := b.value(p)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		fragment := b.dialect.queryFragment(p, v)
		if fragment == "" {
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(fragment)
		sep = "&"
	}

	return sb.String(), nil
}

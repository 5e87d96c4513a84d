package request

import (
	"strings"

	"github.com/capripot/rswag/internal/openapi"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerHost        = "Host"
	headerCookie      = "Cookie"
)

// buildHeaders collects header and cookie parameters and derives Accept,
// Content-Type and Host from the document. Each derived header can be
// overridden by an example value of the same name.
func (b *build) buildHeaders(params []*openapi.Parameter) (map[string]string, error) {
	headers := make(map[string]string)
	var cookies []string

	for _, p := range params {
		if p.In != openapi.InHeader && p.In != openapi.InCookie {
			continue
		}
		v, ok, err := b.value(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if p.In == openapi.InCookie {
			cookies = append(cookies, p.Name+"="+stringify(v))
			continue
		}
		headers[p.Name] = stringify(v)
	}
	if len(cookies) > 0 {
		headers[headerCookie] = strings.Join(cookies, "; ")
	}

	op := b.meta.Operation
	if produces := firstOf(op.Produces, b.doc.Produces); produces != "" {
		headers[headerAccept] = b.override(headerAccept, produces)
	}

	contentType := firstOf(op.Consumes, b.doc.Consumes)
	if contentType == "" {
		contentType = b.dialect.contentType()
	}
	if contentType != "" {
		headers[headerContentType] = b.override(headerContentType, contentType)
	}

	if b.doc.Host != "" {
		headers[headerHost] = b.override(headerHost, b.doc.Host)
	}

	return headers, nil
}

// override returns the example's value for name when it has one.
func (b *build) override(name, fallback string) string {
	if b.has(name) {
		return stringify(b.examples.Get(name))
	}
	return fallback
}

// firstOf returns the first entry of the first non-empty list.
func firstOf(lists ...[]string) string {
	for _, l := range lists {
		if len(l) > 0 {
			return l[0]
		}
	}
	return ""
}

package request

import (
	"slices"

	"github.com/capripot/rswag/internal/openapi"
)

const schemeTypeAPIKey = "apiKey"

// resolveParameters merges operation, path item and security parameters into
// a new list. References are resolved, the first parameter of each name wins,
// and optional non-path parameters the example does not supply are dropped.
func (b *build) resolveParameters() ([]*openapi.Parameter, error) {
	op := b.meta.Operation
	security := b.securityParameters()

	merged := make([]*openapi.Parameter, 0, len(op.Parameters)+len(b.meta.PathItem.Parameters)+len(security))
	merged = append(merged, op.Parameters...)
	merged = append(merged, b.meta.PathItem.Parameters...)
	merged = append(merged, security...)

	seen := make(map[string]bool, len(merged))
	params := make([]*openapi.Parameter, 0, len(merged))
	for _, p := range merged {
		if p == nil {
			continue
		}
		if p.IsRef() {
			resolved, ok := b.dialect.parameterRef(p.Ref)
			if !ok {
				return nil, &ResolutionError{Ref: p.Ref}
			}
			p = resolved
		}
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true

		// Path parameters are always required, whatever the document says.
		if !p.Required && p.In != openapi.InPath && !b.has(p.Name) {
			continue
		}
		params = append(params, p)
	}

	return params, nil
}

// securityParameters synthesizes one parameter per security scheme named by
// the operation's requirements, or the document's when the operation declares
// none. Parameters are required only when a single requirement exists; with
// alternatives the example decides which credentials it supplies.
func (b *build) securityParameters() []*openapi.Parameter {
	requirements := b.meta.Operation.Security
	if requirements == nil {
		requirements = b.doc.Security
	}
	if len(requirements) == 0 {
		return nil
	}

	schemes := b.dialect.securitySchemes()
	required := len(requirements) == 1

	var params []*openapi.Parameter
	seen := make(map[string]bool)
	for _, requirement := range requirements {
		names := make([]string, 0, len(requirement))
		for name := range requirement {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true

			scheme := schemes[name]
			if scheme == nil {
				continue
			}
			p := &openapi.Parameter{
				Name:     "Authorization",
				In:       openapi.InHeader,
				Required: required,
				Type:     "string",
				Schema:   &openapi.Schema{Type: "string"},
			}
			if scheme.Type == schemeTypeAPIKey {
				p.Name = scheme.Name
				p.In = scheme.In
			}
			params = append(params, p)
		}
	}

	return params
}

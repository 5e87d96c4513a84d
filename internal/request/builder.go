package request

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/capripot/rswag/internal/openapi"
)

// DefaultServerKey selects the "default" entry of each server variable.
const DefaultServerKey = "default"

// Builder builds requests for the operations of one document.
type Builder struct {
	doc       *openapi.Document
	logger    log.Logger
	serverKey string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger deprecation warnings are written to.
func WithLogger(logger log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithServer selects which entry of each server variable is substituted into
// the server URL, e.g. "staging" for {"default": "api", "staging": "stg"}.
func WithServer(key string) Option {
	return func(b *Builder) {
		if key != "" {
			b.serverKey = key
		}
	}
}

// NewBuilder creates a Builder for doc.
func NewBuilder(doc *openapi.Document, opts ...Option) *Builder {
	b := &Builder{
		doc:       doc,
		logger:    log.NewNopLogger(),
		serverKey: DefaultServerKey,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Document returns the document the builder reads from.
func (b *Builder) Document() *openapi.Document {
	return b.doc
}

// Build resolves the operation's parameters against the document and reads
// their values from ex. A required value missing from ex fails the build with
// a *MissingValueError; an unresolvable $ref fails it with a *ResolutionError.
func (b *Builder) Build(meta *Metadata, ex Examples) (*Request, error) {
	if meta == nil || meta.Operation == nil {
		return nil, fmt.Errorf("operation metadata is nil")
	}
	if b.doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	bl := b.newBuild(meta, ex)
	bl.dialect.legacySections()
	params, err := bl.resolveParameters()
	if err != nil {
		return nil, err
	}

	path, err := bl.buildPath(params)
	if err != nil {
		return nil, err
	}

	headers, err := bl.buildHeaders(params)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Verb:    strings.ToUpper(meta.Verb),
		Path:    path,
		Headers: headers,
	}
	if err := bl.addPayload(req, params); err != nil {
		return nil, err
	}
	req.Deprecations = bl.deprecations

	return req, nil
}

// build holds the state of a single Build call.
type build struct {
	*Builder
	dialect  dialect
	meta     *Metadata
	examples Examples

	deprecations []*DeprecationError
}

func (b *Builder) newBuild(meta *Metadata, ex Examples) *build {
	bl := &build{Builder: b, meta: meta, examples: ex}
	if b.doc.Version() == openapi.Swagger2 {
		bl.dialect = swagger2{bl}
	} else {
		bl.dialect = openAPI3{bl}
	}
	return bl
}

// deprecated reports a legacy construct once per build.
func (b *build) deprecated(construct, replacement string) {
	for _, d := range b.deprecations {
		if d.Construct == construct {
			return
		}
	}
	b.deprecations = append(b.deprecations, &DeprecationError{Construct: construct, Replacement: replacement})
	level.Warn(b.logger).Log(
		"msg", "ignoring deprecated construct",
		"construct", construct,
		"replacement", replacement,
		"version", b.doc.VersionString(),
	)
}

// value reads the example value for p. ok is false when the example does not
// expose it; err is set only when p is required.
func (b *build) value(p *openapi.Parameter) (v any, ok bool, err error) {
	if b.examples != nil && b.examples.Has(p.Name) {
		return b.examples.Get(p.Name), true, nil
	}
	if p.Required {
		return nil, false, &MissingValueError{Name: p.Name, In: p.In}
	}
	return nil, false, nil
}

// has reports whether the example exposes name.
func (b *build) has(name string) bool {
	return b.examples != nil && b.examples.Has(name)
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

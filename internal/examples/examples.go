// Package examples provides the named values a test case supplies when a
// request is built.
package examples

import (
	"maps"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"
)

// Values is a set of example values keyed by name.
type Values map[string]any

// Has reports whether a value named name exists. A nil value still counts.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Get returns the value named name, or nil.
func (v Values) Get(name string) any {
	return v[name]
}

// With returns a new set holding v overlaid with other. Neither input is
// modified.
func (v Values) With(other Values) Values {
	out := make(Values, len(v)+len(other))
	maps.Copy(out, v)
	maps.Copy(out, other)
	return out
}

// Load reads values from a YAML or JSON mapping file.
func Load(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read examples file")
	}
	values, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse examples file %s", path)
	}
	return values, nil
}

// Parse decodes values from a YAML or JSON mapping.
func Parse(data []byte) (Values, error) {
	values := Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// ParseAssignments turns "name=value" pairs into values. Each value is decoded
// as YAML, so "id=42" yields an int and "tags=[a, b]" a list.
func ParseAssignments(pairs []string) (Values, error) {
	values := make(Values, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("invalid assignment %q, expected name=value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s", name)
		}
		values[name] = value
	}
	return values, nil
}

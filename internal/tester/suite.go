package tester

import (
	"os"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"

	"github.com/capripot/rswag/internal/examples"
)

// Suite is a list of cases run against one document.
//
//	spec: petstore.yaml
//	values:
//	  api_key: secret
//	cases:
//	  - name: fetch a pet
//	    path: /pets/{petId}
//	    method: get
//	    status: 200
//	    values:
//	      petId: 42
type Suite struct {
	Spec   string          `yaml:"spec,omitempty"`
	Server string          `yaml:"server,omitempty"`
	Values examples.Values `yaml:"values,omitempty"`
	Cases  []Case          `yaml:"cases"`
}

// Case is one request and the status code it is expected to produce
type Case struct {
	Name   string          `yaml:"name,omitempty"`
	Path   string          `yaml:"path"`
	Method string          `yaml:"method"`
	Status int             `yaml:"status,omitempty"`
	Values examples.Values `yaml:"values,omitempty"`
}

// Title returns the case name, or its method and path when unnamed
func (c Case) Title() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Method + " " + c.Path
}

// LoadSuite reads a suite from a YAML or JSON file
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read suite file")
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, errors.Wrapf(err, "failed to parse suite file %s", path)
	}
	for i, c := range suite.Cases {
		if c.Path == "" || c.Method == "" {
			return nil, errors.Errorf("suite case %d: path and method are required", i+1)
		}
	}

	return &suite, nil
}

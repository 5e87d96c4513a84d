package request

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrResolution indicates a parameter reference could not be resolved.
	ErrResolution = errors.New("unresolved reference")

	// ErrMissingValue indicates a required value was not supplied by the example.
	ErrMissingValue = errors.New("missing required value")

	// ErrDeprecated marks a legacy Swagger 2.0 construct found in an OpenAPI 3
	// document. It is reported, never returned from Build.
	ErrDeprecated = errors.New("deprecated construct")
)

// ResolutionError is returned when a $ref parameter points at nothing in the
// document's reusable parameters.
type ResolutionError struct {
	Ref string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("referenced parameter '%s' must be defined", e.Ref)
}

// Is reports whether target is ErrResolution.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// MissingValueError is returned when a required parameter or form field has no
// value in the example.
type MissingValueError struct {
	Name string
	// In is the parameter location, or "body" for flattened form fields.
	In string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("`%s` %s parameter key present, but not defined within example "+
		"(the example must expose a value named %q)", e.Name, e.In, e.Name)
}

// Is reports whether target is ErrMissingValue.
func (e *MissingValueError) Is(target error) bool {
	return target == ErrMissingValue
}

// DeprecationError describes a legacy construct that was ignored.
type DeprecationError struct {
	Construct   string
	Replacement string
}

func (e *DeprecationError) Error() string {
	return fmt.Sprintf("%s is replaced in OpenAPI 3, use %s instead", e.Construct, e.Replacement)
}

// Is reports whether target is ErrDeprecated.
func (e *DeprecationError) Is(target error) bool {
	return target == ErrDeprecated
}

package validation

import "fmt"

// ParameterError reports a single invalid input parameter along with the
// constraint it violated. Validation happens at the boundary of each public
// computation; no partial results are returned alongside one of these.
type ParameterError struct {
	Param      string
	Constraint string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: must satisfy %s", e.Param, e.Constraint)
}

// NewParameterError constructs a ParameterError for the named parameter.
func NewParameterError(param, constraint string) *ParameterError {
	return &ParameterError{Param: param, Constraint: constraint}
}

package record

import "fmt"

// UnknownFieldError reports a field name that is not part of the declared
// employee record.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// DomainViolationError reports a value that lies outside the declared domain
// of its field.
type DomainViolationError struct {
	Field  string
	Value  interface{}
	Domain string
}

func (e *DomainViolationError) Error() string {
	return fmt.Sprintf("field %s: value %v is outside domain %s", e.Field, e.Value, e.Domain)
}

package model

import (
	"fmt"
)

// Kind classifies why a raw row could not be materialized.
type Kind string

const (
	KindArity     Kind = "arity"
	KindInteger   Kind = "integer"
	KindLong      Kind = "long"
	KindFloat     Kind = "float"
	KindMalformed Kind = "malformed"
	KindPanic     Kind = "panic"
)

// FieldError reports a raw row that cannot be turned into a record.
type FieldError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	switch {
	case e.Kind == KindArity:
		return e.Err.Error()
	case e.Field == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("field %s: cannot parse %q as %s: %v", e.Field, e.Value, e.Kind, e.Err)
	}
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

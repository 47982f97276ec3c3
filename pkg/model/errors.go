package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for known model conditions.
var (
	// ErrFieldNotFound indicates a field name that is not declared on a type.
	ErrFieldNotFound = errors.New("field not found")

	// ErrValueNotFound indicates an object that stores no value for a field.
	// Sparsely populated objects hit this constantly; callers are expected to
	// catch it and degrade rather than propagate.
	ErrValueNotFound = errors.New("value not found")

	// ErrTypeNotSet indicates an object with no type id assigned.
	ErrTypeNotSet = errors.New("type id not set")
)

// FieldInitError indicates a stored field template that cannot be
// materialized into a usable template.
type FieldInitError struct {
	// Name is the field name the caller asked for.
	Name string

	// Cause is the underlying error (optional).
	Cause error
}

func (e *FieldInitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("field %q could not be initialized: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("field %q could not be initialized", e.Name)
}

func (e *FieldInitError) Unwrap() error {
	return e.Cause
}

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for known store conditions.
var (
	// ErrNotFound indicates an object, type or user id with no entry.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the requesting user lacks a permission on
	// the target object's type.
	ErrAccessDenied = errors.New("access denied")
)

// AccessDeniedError carries the context of a failed ACL check. It unwraps to
// ErrAccessDenied.
type AccessDeniedError struct {
	UserID     int
	ObjectID   int
	TypeID     int
	Permission Permission
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("user #%d has no %s access to object #%d (type #%d)",
		e.UserID, e.Permission, e.ObjectID, e.TypeID)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

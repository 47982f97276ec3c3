// Package store defines the narrow collaborator interfaces the render engine
// uses for point lookups, plus a map-backed implementation that enforces type
// ACLs. Render treats every store as read-only.
package store

import "github.com/opmodel/cmdb/pkg/model"

// Permission names an access right checked against a type's ACL.
type Permission string

// PermissionRead is the only permission the render engine asks for.
const PermissionRead Permission = "READ"

// User is the requesting user as far as rendering is concerned: identity,
// group membership for ACL checks, and the name parts for display.
type User struct {
	PublicID  int    `json:"public_id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	GroupID   int    `json:"group_id,omitempty"`
	Active    bool   `json:"active"`
}

// DisplayName returns "first last" when both parts are set, otherwise the
// user name.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.UserName
}

// ObjectGetter looks up one object by public id. A non-nil user makes the
// lookup subject to the target type's ACL for the given permission.
type ObjectGetter interface {
	Object(id int, user *User, permission Permission) (*model.Object, error)
}

// TypeGetter looks up one type by public id.
type TypeGetter interface {
	Type(id int) (*model.TypeModel, error)
}

// UserGetter looks up one user by public id.
type UserGetter interface {
	User(id int) (*User, error)
}

// Store bundles the three collaborator lookups the render engine needs.
type Store interface {
	ObjectGetter
	TypeGetter
	UserGetter
}

package store

import (
	"fmt"
	"sync"

	"github.com/opmodel/cmdb/pkg/model"
)

// MemoryStore is a map-backed Store. It is safe for concurrent readers and
// writers and enforces type ACLs on object lookups.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[int]*model.Object
	types   map[int]*model.TypeModel
	users   map[int]*User
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[int]*model.Object),
		types:   make(map[int]*model.TypeModel),
		users:   make(map[int]*User),
	}
}

// AddObject registers an object under its public id. Re-adding an id
// replaces the previous entry.
func (s *MemoryStore) AddObject(obj *model.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.PublicID] = obj
}

// AddType registers a type under its public id.
func (s *MemoryStore) AddType(typ *model.TypeModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[typ.PublicID] = typ
}

// AddUser registers a user under its public id.
func (s *MemoryStore) AddUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.PublicID] = user
}

// Object returns the object with the given id. With a non-nil user the
// object's type ACL is checked for the permission; a failed check yields an
// AccessDeniedError.
func (s *MemoryStore) Object(id int, user *User, permission Permission) (*model.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("object #%d: %w", id, ErrNotFound)
	}
	if user != nil {
		if typ, ok := s.types[obj.TypeID]; ok && !typ.ACL.Grants(user.GroupID, string(permission)) {
			return nil, &AccessDeniedError{
				UserID:     user.PublicID,
				ObjectID:   id,
				TypeID:     obj.TypeID,
				Permission: permission,
			}
		}
	}
	return obj, nil
}

// Type returns the type with the given id.
func (s *MemoryStore) Type(id int) (*model.TypeModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typ, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("type #%d: %w", id, ErrNotFound)
	}
	return typ, nil
}

// User returns the user with the given id.
func (s *MemoryStore) User(id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user #%d: %w", id, ErrNotFound)
	}
	return user, nil
}

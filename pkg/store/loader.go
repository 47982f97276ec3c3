package store

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/opmodel/cmdb/pkg/model"
)

// Fixture is the on-disk seed document for a MemoryStore. YAML or JSON; the
// YAML path goes through a YAML-to-JSON bridge so the model's json tags and
// custom section codec apply unchanged.
type Fixture struct {
	Types   []*model.TypeModel `json:"types,omitempty"`
	Objects []*model.Object    `json:"objects,omitempty"`
	Users   []*User            `json:"users,omitempty"`
}

// LoadFixture parses a fixture document and returns a seeded store.
// Duplicate public ids within a kind are rejected.
func LoadFixture(data []byte) (*MemoryStore, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	s := NewMemoryStore()
	for _, typ := range fx.Types {
		if _, ok := s.types[typ.PublicID]; ok {
			return nil, fmt.Errorf("duplicate type public_id %d", typ.PublicID)
		}
		s.AddType(typ)
	}
	for _, obj := range fx.Objects {
		if _, ok := s.objects[obj.PublicID]; ok {
			return nil, fmt.Errorf("duplicate object public_id %d", obj.PublicID)
		}
		s.AddObject(obj)
	}
	for _, user := range fx.Users {
		if _, ok := s.users[user.PublicID]; ok {
			return nil, fmt.Errorf("duplicate user public_id %d", user.PublicID)
		}
		s.AddUser(user)
	}
	return s, nil
}

// LoadFixtureFile reads and parses a fixture file.
func LoadFixtureFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return LoadFixture(data)
}

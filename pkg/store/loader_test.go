package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/cmdb/internal/testutil"
	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/store"
)

const fixtureYAML = `
types:
  - public_id: 1
    name: server
    label: Server
    active: true
    fields:
      - name: hostname
        type: text
      - name: owner
        type: ref
    render_meta:
      icon: fa-server
      sections:
        - type: section
          name: info
          fields: [hostname, owner]
      summary:
        fields: [hostname]
objects:
  - public_id: 10
    type_id: 1
    active: true
    version: 1.0.0
    fields:
      - name: hostname
        value: web01
users:
  - public_id: 5
    user_name: jdoe
    group_id: 1
    active: true
`

func TestLoadFixture(t *testing.T) {
	s, err := store.LoadFixture([]byte(fixtureYAML))
	require.NoError(t, err)

	typ, err := s.Type(1)
	require.NoError(t, err)
	assert.True(t, typ.HasSummary())
	require.Len(t, typ.RenderMeta.Sections, 1)

	sec, ok := typ.RenderMeta.Sections[0].(*model.FieldSection)
	require.True(t, ok)
	assert.Equal(t, []string{"hostname", "owner"}, sec.Fields)

	obj, err := s.Object(10, nil, store.PermissionRead)
	require.NoError(t, err)
	v, err := obj.Value("hostname")
	require.NoError(t, err)
	assert.Equal(t, "web01", v)

	_, err = s.User(5)
	assert.NoError(t, err)
}

func TestLoadFixture_DuplicateID(t *testing.T) {
	doc := `
objects:
  - public_id: 1
    type_id: 1
  - public_id: 1
    type_id: 2
`
	_, err := store.LoadFixture([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate object")
}

func TestLoadFixtureFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "fixture.yaml", fixtureYAML)

	s, err := store.LoadFixtureFile(path)
	require.NoError(t, err)
	_, err = s.Type(1)
	assert.NoError(t, err)

	_, err = store.LoadFixtureFile(dir + "/missing.yaml")
	assert.Error(t, err)
}

func TestLoadFixture_BadDocument(t *testing.T) {
	_, err := store.LoadFixture([]byte("types: {not: a list}"))
	assert.Error(t, err)
}

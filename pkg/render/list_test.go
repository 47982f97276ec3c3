package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/render"
	"github.com/opmodel/cmdb/pkg/store"
)

func listObjects(t *testing.T, s store.Store, ids ...int) []*model.Object {
	t.Helper()
	objects := make([]*model.Object, 0, len(ids))
	for _, id := range ids {
		obj, err := s.Object(id, nil, store.PermissionRead)
		require.NoError(t, err)
		objects = append(objects, obj)
	}
	return objects
}

func TestList_RendersInInputOrder(t *testing.T) {
	s := newTestStore()
	objects := listObjects(t, s, 44, 42, 43)

	results, err := render.RenderAll(s, objects, nil, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 44, results[0].ObjectInformation.ObjectID)
	assert.Equal(t, 42, results[1].ObjectInformation.ObjectID)
	assert.Equal(t, 43, results[2].ObjectInformation.ObjectID)
}

func TestList_RenderRaw(t *testing.T) {
	s := newTestStore()
	objects := listObjects(t, s, 42)

	raw, err := render.NewList(s, nil, false).RenderRaw(objects)
	require.NoError(t, err)
	require.Len(t, raw, 1)

	entry := raw[0]
	assert.Contains(t, entry, "object_information")
	assert.Contains(t, entry, "type_information")
	assert.Contains(t, entry, "fields")
	assert.Contains(t, entry, "summary_line")
	assert.Equal(t, "web01 | 10.0.0.1", entry["summary_line"])

	info, ok := entry["object_information"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), info["object_id"])
}

func TestList_UnknownType(t *testing.T) {
	s := newTestStore()
	stray := &model.Object{PublicID: 500, TypeID: 999}

	_, err := render.RenderAll(s, []*model.Object{stray}, nil, false)
	require.Error(t, err)
	var renderErr *render.InstanceRenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 500, renderErr.ObjectID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_TypeNotSet(t *testing.T) {
	s := newTestStore()
	stray := &model.Object{PublicID: 501}

	_, err := render.RenderAll(s, []*model.Object{stray}, nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTypeNotSet)
}

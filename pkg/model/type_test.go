package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/cmdb/pkg/model"
)

func serverType() *model.TypeModel {
	return &model.TypeModel{
		PublicID: 1,
		Name:     "server",
		Label:    "Server",
		Active:   true,
		Fields: []model.FieldTemplate{
			{Name: "hostname", Type: "text", Label: "Hostname"},
			{Name: "ip", Type: "text", Label: "IP"},
			{Name: "os", Type: "text", Value: "linux"},
			{Name: "broken"},
		},
		RenderMeta: model.RenderMeta{
			Icon: "fa-server",
			Sections: model.SectionList{
				&model.FieldSection{Name: "info", Label: "Info", Fields: []string{"hostname", "ip"}},
			},
			Externals: []model.ExternalLink{
				{Name: "monitor", Href: "https://mon.example.com/{}", Fields: []string{"hostname"}},
			},
			Summary: &model.Summary{Fields: []string{"hostname"}},
		},
	}
}

func TestTypeModel_Field(t *testing.T) {
	typ := serverType()

	t.Run("declared field is returned", func(t *testing.T) {
		f, err := typ.Field("hostname")
		require.NoError(t, err)
		assert.Equal(t, "text", f.Type)
		assert.Equal(t, "Hostname", f.Label)
	})

	t.Run("unknown field yields ErrFieldNotFound", func(t *testing.T) {
		_, err := typ.Field("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrFieldNotFound)
	})

	t.Run("untyped template yields FieldInitError", func(t *testing.T) {
		_, err := typ.Field("broken")
		require.Error(t, err)
		var initErr *model.FieldInitError
		require.ErrorAs(t, err, &initErr)
		assert.Equal(t, "broken", initErr.Name)
	})
}

func TestTypeModel_Section(t *testing.T) {
	typ := serverType()

	sec := typ.Section("info")
	require.NotNil(t, sec)
	assert.Equal(t, model.SectionTypeFields, sec.SectionType())

	assert.Nil(t, typ.Section("missing"))
}

func TestTypeModel_Summary(t *testing.T) {
	t.Run("declared summary resolves in order", func(t *testing.T) {
		typ := serverType()
		require.True(t, typ.HasSummary())
		fields, err := typ.SummaryFields()
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "hostname", fields[0].Name)
	})

	t.Run("summary over unknown fields fails", func(t *testing.T) {
		typ := serverType()
		typ.RenderMeta.Summary = &model.Summary{Fields: []string{"ghost"}}
		_, err := typ.SummaryFields()
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrFieldNotFound)
	})

	t.Run("no summary declared", func(t *testing.T) {
		typ := serverType()
		typ.RenderMeta.Summary = nil
		assert.False(t, typ.HasSummary())
		fields, err := typ.SummaryFields()
		require.NoError(t, err)
		assert.Empty(t, fields)
	})
}

func TestTypeModel_Externals(t *testing.T) {
	typ := serverType()
	require.True(t, typ.HasExternals())

	link, err := typ.External("monitor")
	require.NoError(t, err)
	assert.True(t, link.HasFields())

	_, err = typ.External("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFieldNotFound)
}

func TestTypeModel_NestedSummaries(t *testing.T) {
	typ := serverType()
	nested := []model.NestedSummary{
		{TypeID: 99, Line: "other {}", Fields: []string{"hostname"}},
		{TypeID: 1, Line: "srv {}", Prefix: true, Fields: []string{"hostname", "ghost", "ip"}},
	}

	fields := typ.NestedSummaryFields(nested)
	require.Len(t, fields, 2)
	assert.Equal(t, "hostname", fields[0].Name)
	assert.Equal(t, "ip", fields[1].Name)

	assert.Equal(t, "srv {}", typ.NestedSummaryLine(nested))
	assert.True(t, typ.HasNestedPrefix(nested))

	assert.Empty(t, typ.NestedSummaryFields(nil))
	assert.Empty(t, typ.NestedSummaryLine(nil))
	assert.False(t, typ.HasNestedPrefix(nil))
}

func TestACL_Grants(t *testing.T) {
	var acl *model.ACL
	assert.True(t, acl.Grants(1, "READ"), "nil ACL grants everything")

	acl = &model.ACL{Activated: false, Groups: map[string][]string{}}
	assert.True(t, acl.Grants(1, "READ"), "inactive ACL grants everything")

	acl = &model.ACL{Activated: true, Groups: map[string][]string{"1": {"READ"}}}
	assert.True(t, acl.Grants(1, "READ"))
	assert.False(t, acl.Grants(1, "UPDATE"))
	assert.False(t, acl.Grants(2, "READ"))
}

func TestFieldInitError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &model.FieldInitError{Name: "f", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"f"`)
}

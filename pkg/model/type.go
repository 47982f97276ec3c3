// Package model holds the CMDB data model: type schemas with their render
// metadata, and the typed object instances rendered against them. Everything
// here is pure data plus accessors; nothing performs I/O.
package model

import (
	"fmt"
	"time"
)

// ACL grants permissions on a type per user group. Keys of Groups are group
// ids in decimal string form, values the granted permission names.
type ACL struct {
	Activated bool                `json:"activated"`
	Groups    map[string][]string `json:"groups,omitempty"`
}

// Grants reports whether the group holds the permission. A nil or inactive
// ACL grants everything.
func (a *ACL) Grants(groupID int, permission string) bool {
	if a == nil || !a.Activated {
		return true
	}
	for _, p := range a.Groups[fmt.Sprint(groupID)] {
		if p == permission {
			return true
		}
	}
	return false
}

// RenderMeta is the display metadata of a type: icon, ordered sections,
// external links and the optional summary definition.
type RenderMeta struct {
	Icon      string         `json:"icon,omitempty"`
	Sections  SectionList    `json:"sections,omitempty"`
	Externals []ExternalLink `json:"externals,omitempty"`
	Summary   *Summary       `json:"summary,omitempty"`
}

// TypeModel is the schema of a CMDB type. PublicID is unique and immutable;
// field names are unique within Fields.
type TypeModel struct {
	PublicID     int             `json:"public_id"`
	Name         string          `json:"name"`
	Label        string          `json:"label,omitempty"`
	Active       bool            `json:"active"`
	AuthorID     int             `json:"author_id,omitempty"`
	CreationTime time.Time       `json:"creation_time,omitzero"`
	Version      string          `json:"version,omitempty"`
	Fields       []FieldTemplate `json:"fields,omitempty"`
	RenderMeta   RenderMeta      `json:"render_meta"`
	ACL          *ACL            `json:"acl,omitempty"`
}

// Field returns the template declared under the given name. It fails with
// ErrFieldNotFound for unknown names and with FieldInitError for templates
// that cannot be materialized.
func (t *TypeModel) Field(name string) (FieldTemplate, error) {
	for _, f := range t.Fields {
		if f.Name != name {
			continue
		}
		if f.Type == "" {
			return FieldTemplate{}, &FieldInitError{Name: name}
		}
		return f, nil
	}
	return FieldTemplate{}, fmt.Errorf("type %q has no field %q: %w", t.Name, name, ErrFieldNotFound)
}

// HasField reports whether the type declares a field under the given name.
func (t *TypeModel) HasField(name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Section returns the declared section with the given name, or nil.
func (t *TypeModel) Section(name string) Section {
	for _, s := range t.RenderMeta.Sections {
		if s.SectionName() == name {
			return s
		}
	}
	return nil
}

// HasSummary reports whether the type declares a summary.
func (t *TypeModel) HasSummary() bool {
	return t.RenderMeta.Summary.HasFields()
}

// SummaryFields resolves the summary's field names against the type's own
// templates, in declared summary order.
func (t *TypeModel) SummaryFields() ([]FieldTemplate, error) {
	if !t.HasSummary() {
		return nil, nil
	}
	fields := make([]FieldTemplate, 0, len(t.RenderMeta.Summary.Fields))
	for _, name := range t.RenderMeta.Summary.Fields {
		f, err := t.Field(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// HasExternals reports whether the type declares external links.
func (t *TypeModel) HasExternals() bool {
	return len(t.RenderMeta.Externals) > 0
}

// Externals returns the declared external links in declaration order.
func (t *TypeModel) Externals() []ExternalLink {
	return t.RenderMeta.Externals
}

// External returns the external link with the given name.
func (t *TypeModel) External(name string) (ExternalLink, error) {
	for _, e := range t.RenderMeta.Externals {
		if e.Name == name {
			return e, nil
		}
	}
	return ExternalLink{}, fmt.Errorf("type %q has no external link %q: %w", t.Name, name, ErrFieldNotFound)
}

// NestedSummaryFields resolves a caller-supplied nested-summary list against
// this type: entries for other type ids are ignored, field names unknown to
// this type are skipped.
func (t *TypeModel) NestedSummaryFields(nested []NestedSummary) []FieldTemplate {
	var fields []FieldTemplate
	for _, n := range nested {
		if n.TypeID != t.PublicID {
			continue
		}
		for _, name := range n.Fields {
			f, err := t.Field(name)
			if err != nil {
				continue
			}
			fields = append(fields, f)
		}
	}
	return fields
}

// NestedSummaryLine returns the line template of the matching nested-summary
// entry, or empty.
func (t *TypeModel) NestedSummaryLine(nested []NestedSummary) string {
	for _, n := range nested {
		if n.TypeID == t.PublicID {
			return n.Line
		}
	}
	return ""
}

// HasNestedPrefix reports whether the matching nested-summary entry requests
// a prefix.
func (t *TypeModel) HasNestedPrefix(nested []NestedSummary) bool {
	for _, n := range nested {
		if n.TypeID == t.PublicID {
			return n.Prefix
		}
	}
	return false
}

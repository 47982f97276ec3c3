package model

import (
	"fmt"
	"reflect"
	"time"
)

// Object is a typed asset instance. Render never mutates an object; updates
// happen in the (external) object manager, which bumps Version according to
// the size of the field diff.
type Object struct {
	PublicID     int        `json:"public_id"`
	TypeID       int        `json:"type_id"`
	AuthorID     int        `json:"author_id,omitempty"`
	EditorID     int        `json:"editor_id,omitempty"`
	CreationTime time.Time  `json:"creation_time,omitzero"`
	LastEditTime *time.Time `json:"last_edit_time,omitempty"`
	Active       bool       `json:"active"`
	Version      string     `json:"version,omitempty"`

	// Fields is the ordered list of stored values.
	Fields []FieldValue `json:"fields"`

	// MultiDataSections holds the row groups of multi-data sections. Render
	// passes them through unchanged.
	MultiDataSections []MultiDataEntry `json:"multi_data_sections,omitempty"`
}

// MultiDataEntry is the stored row group of one multi-data section.
type MultiDataEntry struct {
	SectionID string         `json:"section_id"`
	HighestID int            `json:"highest_id"`
	Values    []MultiDataRow `json:"values,omitempty"`
}

// MultiDataRow is a single row inside a multi-data section.
type MultiDataRow struct {
	MultiDataID int          `json:"multi_data_id"`
	Data        []FieldValue `json:"data,omitempty"`
}

// Value returns the stored value for a field name. Missing fields yield
// ErrValueNotFound; for sparsely populated objects that is a normal
// condition every caller has to absorb.
func (o *Object) Value(name string) (any, error) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, nil
		}
	}
	return nil, fmt.Errorf("object #%d stores no value for %q: %w", o.PublicID, name, ErrValueNotFound)
}

// HasValue reports whether the object stores a value for the field name.
func (o *Object) HasValue(name string) bool {
	for _, f := range o.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// RequireTypeID returns the object's type id, failing with ErrTypeNotSet
// when it was never assigned.
func (o *Object) RequireTypeID() (int, error) {
	if o.TypeID == 0 {
		return 0, fmt.Errorf("object #%d: %w", o.PublicID, ErrTypeNotSet)
	}
	return o.TypeID, nil
}

// AllFields returns the ordered stored fields.
func (o *Object) AllFields() []FieldValue {
	return o.Fields
}

// FieldDiff is the outcome of comparing two objects of the same type: Old
// holds (name, value) pairs present only on the receiver, New those present
// only on the other object.
type FieldDiff struct {
	Old []FieldValue `json:"old"`
	New []FieldValue `json:"new"`
}

// Changed returns the number of changed fields, used to classify the update
// magnitude for version bumping.
func (d FieldDiff) Changed() int {
	if len(d.New) > len(d.Old) {
		return len(d.New)
	}
	return len(d.Old)
}

// Diff compares the stored fields of two objects by list membership.
func (o *Object) Diff(other *Object) FieldDiff {
	var diff FieldDiff
	for _, f := range o.Fields {
		if !containsField(other.Fields, f) {
			diff.Old = append(diff.Old, f)
		}
	}
	for _, f := range other.Fields {
		if !containsField(o.Fields, f) {
			diff.New = append(diff.New, f)
		}
	}
	return diff
}

func containsField(fields []FieldValue, want FieldValue) bool {
	for _, f := range fields {
		// DeepEqual because stored values may be decoded JSON collections.
		if f.Name == want.Name && reflect.DeepEqual(f.Value, want.Value) {
			return true
		}
	}
	return false
}

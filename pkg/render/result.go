package render

import (
	"time"

	"github.com/opmodel/cmdb/pkg/model"
)

// Result is the rendered view of one object. It is built exclusively by the
// Engine, never persisted, and serialized by the caller. The JSON keys below
// are a stable contract for API consumers.
type Result struct {
	ObjectInformation ObjectInfo             `json:"object_information"`
	TypeInformation   TypeInfo               `json:"type_information"`
	Fields            []Field                `json:"fields"`
	Sections          model.SectionList      `json:"sections"`
	Summaries         []Field                `json:"summaries"`
	SummaryLine       string                 `json:"summary_line"`
	Externals         []model.ExternalLink   `json:"externals"`
	MultiDataSections []model.MultiDataEntry `json:"multi_data_sections"`
}

// ObjectInfo is the resolved object metadata block.
type ObjectInfo struct {
	ObjectID     int        `json:"object_id"`
	CreationTime time.Time  `json:"creation_time,omitzero"`
	LastEditTime *time.Time `json:"last_edit_time,omitempty"`
	AuthorID     int        `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	EditorID     int        `json:"editor_id,omitempty"`
	EditorName   string     `json:"editor_name,omitempty"`
	Active       bool       `json:"active"`
	Version      string     `json:"version,omitempty"`
}

// TypeInfo is the resolved type metadata block.
type TypeInfo struct {
	TypeID       int        `json:"type_id"`
	TypeName     string     `json:"type_name"`
	TypeLabel    string     `json:"type_label,omitempty"`
	CreationTime time.Time  `json:"creation_time,omitzero"`
	AuthorID     int        `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	Icon         string     `json:"icon"`
	Active       bool       `json:"active"`
	Version      string     `json:"version,omitempty"`
	ACL          *model.ACL `json:"acl,omitempty"`
}

// Field is one rendered field: the type's template overlaid with the
// object's stored value, plus resolved reference data where applicable.
// The keys name, value, default, reference and references are stable.
type Field struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Label   string `json:"label,omitempty"`
	Default any    `json:"default,omitempty"`
	Value   any    `json:"value"`

	// Reference is set for resolved ref/location fields.
	Reference *TypeReference `json:"reference,omitempty"`

	// References is set for resolved reference-section fields.
	References *ResolvedSection `json:"references,omitempty"`
}

// TypeReference is the compact descriptor of a referenced object.
type TypeReference struct {
	TypeID    int            `json:"type_id"`
	ObjectID  int            `json:"object_id"`
	TypeLabel string         `json:"type_label,omitempty"`
	Icon      string         `json:"icon,omitempty"`
	Prefix    bool           `json:"prefix,omitempty"`
	Summaries []SummaryEntry `json:"summaries"`
	Line      string         `json:"line,omitempty"`

	// AccessDenied carries the denial message when the requesting user may
	// not read the target, so the UI can show an indicator instead of data.
	AccessDenied string `json:"access_denied,omitempty"`
}

// SummaryEntry is one resolved summary value of a referenced object.
type SummaryEntry struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ResolvedSection is the rendered content of a reference section: selected
// fields of the target type's section overlaid with the target object's
// values.
type ResolvedSection struct {
	TypeID      int     `json:"type_id"`
	SectionName string  `json:"section_name"`
	Fields      []Field `json:"fields"`
}

func newTypeReference() *TypeReference {
	return &TypeReference{Summaries: []SummaryEntry{}}
}

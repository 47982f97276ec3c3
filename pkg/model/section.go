package model

import (
	"encoding/json"
	"fmt"
)

// SectionType tags the closed set of section variants.
type SectionType string

const (
	SectionTypeFields    SectionType = "section"
	SectionTypeMultiData SectionType = "multi-data-section"
	SectionTypeReference SectionType = "ref-section"
)

// Section is one entry of a type's render_meta.sections list. The set of
// implementations is closed: FieldSection, MultiDataSection and
// ReferenceSection. Consumers dispatch with a type switch; the JSON codec
// rejects unknown tags.
type Section interface {
	// SectionType returns the wire tag of the variant.
	SectionType() SectionType

	// SectionName returns the unique section name.
	SectionName() string
}

// FieldSection is a plain group of fields.
type FieldSection struct {
	Name   string   `json:"name"`
	Label  string   `json:"label,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

func (s *FieldSection) SectionType() SectionType { return SectionTypeFields }
func (s *FieldSection) SectionName() string      { return s.Name }

// MultiDataSection is a field group whose object values are row sets.
type MultiDataSection struct {
	Name         string   `json:"name"`
	Label        string   `json:"label,omitempty"`
	Fields       []string `json:"fields,omitempty"`
	HiddenFields []string `json:"hidden_fields,omitempty"`
}

func (s *MultiDataSection) SectionType() SectionType { return SectionTypeMultiData }
func (s *MultiDataSection) SectionName() string      { return s.Name }

// ReferenceSection embeds a named section of another type. The object stores
// the target object id in the synthetic field "<name>-field".
type ReferenceSection struct {
	Name      string           `json:"name"`
	Label     string           `json:"label,omitempty"`
	Reference SectionReference `json:"reference"`
}

func (s *ReferenceSection) SectionType() SectionType { return SectionTypeReference }
func (s *ReferenceSection) SectionName() string      { return s.Name }

// FieldName returns the name of the synthetic field holding the target
// object id.
func (s *ReferenceSection) FieldName() string { return s.Name + "-field" }

// SectionReference names the borrowed section of the target type.
type SectionReference struct {
	TypeID      int    `json:"type_id"`
	SectionName string `json:"section_name"`

	// SelectedFields limits which fields of the target section are rendered.
	// Empty means all fields of the target section.
	SelectedFields []string `json:"selected_fields,omitempty"`
}

// SectionList carries the tagged JSON codec for the Section sum type.
type SectionList []Section

func (s *FieldSection) MarshalJSON() ([]byte, error)     { return marshalSection(s) }
func (s *MultiDataSection) MarshalJSON() ([]byte, error) { return marshalSection(s) }
func (s *ReferenceSection) MarshalJSON() ([]byte, error) { return marshalSection(s) }

func marshalSection(s Section) ([]byte, error) {
	var body []byte
	var err error
	switch v := s.(type) {
	case *FieldSection:
		type alias FieldSection
		body, err = json.Marshal((*alias)(v))
	case *MultiDataSection:
		type alias MultiDataSection
		body, err = json.Marshal((*alias)(v))
	case *ReferenceSection:
		type alias ReferenceSection
		body, err = json.Marshal((*alias)(v))
	default:
		return nil, fmt.Errorf("unknown section variant %T", s)
	}
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(map[string]SectionType{"type": s.SectionType()})
	if err != nil {
		return nil, err
	}
	if len(body) == 2 { // "{}"
		return tag, nil
	}
	merged := append([]byte{'{'}, tag[1:len(tag)-1]...)
	merged = append(merged, ',')
	merged = append(merged, body[1:]...)
	return merged, nil
}

// UnmarshalJSON decodes a tagged section list, dispatching on the "type" key.
func (l *SectionList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SectionList, 0, len(raw))
	for _, entry := range raw {
		var head struct {
			Type SectionType `json:"type"`
		}
		if err := json.Unmarshal(entry, &head); err != nil {
			return err
		}
		var sec Section
		switch head.Type {
		case SectionTypeFields:
			sec = &FieldSection{}
		case SectionTypeMultiData:
			sec = &MultiDataSection{}
		case SectionTypeReference:
			sec = &ReferenceSection{}
		default:
			return fmt.Errorf("unknown section type %q", head.Type)
		}
		if err := json.Unmarshal(entry, sec); err != nil {
			return err
		}
		out = append(out, sec)
	}
	*l = out
	return nil
}

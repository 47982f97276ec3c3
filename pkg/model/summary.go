package model

// Summary declares which fields make up a type's summary line. The rendered
// line joins the resolved field values with " | ".
type Summary struct {
	Fields []string `json:"fields"`
}

// HasFields reports whether the summary names at least one field.
func (s *Summary) HasFields() bool {
	return s != nil && len(s.Fields) > 0
}

// NestedSummary overrides the summary of a referenced type when rendered
// through a ref field. An entry applies only to targets whose type matches
// TypeID.
type NestedSummary struct {
	TypeID int `json:"type_id"`

	// Line is a template filled positionally with the resolved field values.
	// A line without placeholders is shown literally.
	Line string `json:"line,omitempty"`

	Label string `json:"label,omitempty"`
	Icon  string `json:"icon,omitempty"`

	// Prefix requests a nested-summary prefix in front of the reference.
	Prefix bool `json:"prefix,omitempty"`

	// Fields are the target-type field names making up the summary.
	Fields []string `json:"fields,omitempty"`
}

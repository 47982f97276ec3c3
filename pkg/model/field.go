package model

// Well-known field type tags. Field templates carry free-form type strings
// (text, textarea, checkbox, ...); only these four change render behavior.
const (
	// FieldTypeRef marks a field whose value is the public id of another object.
	FieldTypeRef = "ref"

	// FieldTypeLocation marks a location field, resolved like a ref field.
	FieldTypeLocation = "location"

	// FieldTypeDate marks a field whose string value is parsed into a date.
	FieldTypeDate = "date"

	// FieldTypeRefSection marks the synthetic "<section>-field" backing a
	// reference section.
	FieldTypeRefSection = "ref-section-field"
)

// FieldTemplate is a single field declaration on a type.
type FieldTemplate struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`

	// Value is the declared default value, if any.
	Value any `json:"value,omitempty"`

	// Summaries configures nested summaries for ref fields: per target type,
	// which fields of the referenced object make up its summary and how the
	// summary line is templated.
	Summaries []NestedSummary `json:"summaries,omitempty"`
}

// IsReference reports whether the template points at another object.
func (f FieldTemplate) IsReference() bool {
	return f.Type == FieldTypeRef || f.Type == FieldTypeLocation
}

// FieldValue is a stored (name, value) pair on an object.
type FieldValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

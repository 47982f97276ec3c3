package model

import (
	"fmt"
	"strings"
)

// Placeholder is the positional marker used in href and summary-line
// templates.
const Placeholder = "{}"

// ExternalLink is a declared outgoing link on a type. The href may contain
// "{}" placeholders filled from object field values at render time.
type ExternalLink struct {
	Name   string   `json:"name"`
	Href   string   `json:"href"`
	Label  string   `json:"label,omitempty"`
	Icon   string   `json:"icon,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// HasFields reports whether the href needs placeholder data.
func (e ExternalLink) HasFields() bool {
	return PlaceholderCount(e.Href) > 0
}

// FillHref fills the href template positionally and returns the result.
func (e ExternalLink) FillHref(values []any) (string, error) {
	return FillPlaceholders(e.Href, values)
}

// PlaceholderCount returns the number of "{}" markers in a template.
func PlaceholderCount(template string) int {
	return strings.Count(template, Placeholder)
}

// FillPlaceholders substitutes values into a template in order. Surplus
// values are ignored; too few values is an error, mirroring positional
// format semantics.
func FillPlaceholders(template string, values []any) (string, error) {
	need := PlaceholderCount(template)
	if need > len(values) {
		return "", fmt.Errorf("template %q needs %d values, got %d", template, need, len(values))
	}
	out := template
	for i := 0; i < need; i++ {
		out = strings.Replace(out, Placeholder, fmt.Sprint(values[i]), 1)
	}
	return out, nil
}

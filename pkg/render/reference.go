package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/opmodel/cmdb/internal/output"
	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/store"
)

// selectionCacheSize bounds the per-resolver memo of default field
// selections.
const selectionCacheSize = 128

type sectionKey struct {
	typeID  int
	section string
}

// resolver turns reference-bearing field values into descriptors. Default
// field selections of reference sections are memoized per resolver keyed by
// (type id, section name); the shared TypeModel is never written to.
type resolver struct {
	st         store.Store
	user       *store.User
	selections *lru.Cache[sectionKey, []string]
}

func newResolver(st store.Store, user *store.User) *resolver {
	cache, _ := lru.New[sectionKey, []string](selectionCacheSize)
	return &resolver{st: st, user: user, selections: cache}
}

// fieldReference resolves a stored ref/location value into a TypeReference.
// Empty values and dangling ids yield the empty descriptor; only access
// denials propagate as errors.
func (r *resolver) fieldReference(value any, nested []model.NestedSummary) (*TypeReference, error) {
	id, ok := objectID(value)
	if !ok || id == 0 {
		return newTypeReference(), nil
	}
	obj, err := r.st.Object(id, r.user, store.PermissionRead)
	if err != nil {
		if errors.Is(err, store.ErrAccessDenied) {
			return nil, err
		}
		output.Debug("reference target not available", "object_id", id, "err", err)
		return newTypeReference(), nil
	}
	typ, err := r.st.Type(obj.TypeID)
	if err != nil {
		output.Debug("reference target type not available", "type_id", obj.TypeID, "err", err)
		return newTypeReference(), nil
	}

	ref := newTypeReference()
	ref.TypeID = typ.PublicID
	ref.ObjectID = obj.PublicID
	ref.TypeLabel = typ.Label
	ref.Icon = typ.RenderMeta.Icon
	ref.Prefix = typ.HasNestedPrefix(nested)

	summaryFields := typ.NestedSummaryFields(nested)
	line := typ.NestedSummaryLine(nested)
	if len(summaryFields) == 0 && typ.HasSummary() {
		if fields, err := typ.SummaryFields(); err == nil {
			summaryFields = fields
		}
	}

	values := make([]any, 0, len(summaryFields))
	for _, tpl := range summaryFields {
		v, err := obj.Value(tpl.Name)
		if err != nil {
			continue
		}
		s := stringify(v)
		ref.Summaries = append(ref.Summaries, SummaryEntry{Value: s, Type: tpl.Type})
		values = append(values, s)
	}

	if line != "" {
		if model.PlaceholderCount(line) == 0 {
			// A literal line needs no summary values; keeping both would
			// duplicate content.
			ref.Line = line
			ref.Summaries = []SummaryEntry{}
		} else if filled, err := model.FillPlaceholders(line, values); err == nil {
			ref.Line = filled
		} else {
			output.Debug("summary line not fillable", "line", line, "err", err)
		}
	}
	return ref, nil
}

// sectionReference renders a reference section into its synthetic
// "<section>-field" carrying the resolved sub-fields. The bool result
// reports whether the section could be rendered at all.
func (r *resolver) sectionReference(typ *model.TypeModel, obj *model.Object, sec *model.ReferenceSection, level int) (Field, bool) {
	tpl, err := typ.Field(sec.FieldName())
	if err != nil {
		output.Warn("reference section without backing field", "section", sec.Name, "type", typ.Name)
		return Field{}, false
	}

	field := Field{Name: tpl.Name, Type: tpl.Type, Label: tpl.Label}
	var target *model.Object
	if v, err := obj.Value(tpl.Name); err == nil {
		field.Value = v
		if id, ok := objectID(v); ok && id != 0 {
			if o, err := r.st.Object(id, r.user, store.PermissionRead); err == nil {
				target = o
			} else {
				output.Debug("reference section target not available", "object_id", id, "err", err)
			}
		}
	}

	targetType, err := r.st.Type(sec.Reference.TypeID)
	if err != nil {
		output.Warn("reference section target type not available", "type_id", sec.Reference.TypeID)
		return Field{}, false
	}
	targetSection := targetType.Section(sec.Reference.SectionName)
	if targetSection == nil {
		output.Warn("reference section target missing",
			"section", sec.Reference.SectionName, "type_id", sec.Reference.TypeID)
		return Field{}, false
	}

	resolved := &ResolvedSection{
		TypeID:      sec.Reference.TypeID,
		SectionName: sec.Reference.SectionName,
		Fields:      []Field{},
	}
	for _, name := range r.selection(sec, targetSection) {
		sub, err := targetType.Field(name)
		if err != nil {
			continue
		}
		sf := Field{Name: sub.Name, Type: sub.Type, Label: sub.Label}
		if sub.Value != nil {
			sf.Default = sub.Value
		}
		if target != nil {
			if v, err := target.Value(sub.Name); err == nil {
				sf.Value = v
			}
		}
		if sub.Type == model.FieldTypeRefSection && level > 0 {
			r.nestedSection(targetType, target, sub.Name, level, &sf)
		}
		resolved.Fields = append(resolved.Fields, sf)
	}
	field.References = resolved
	return field, true
}

// nestedSection resolves one nested reference-section hop, spending one
// level of the depth budget.
func (r *resolver) nestedSection(typ *model.TypeModel, obj *model.Object, fieldName string, level int, field *Field) {
	nested, ok := typ.Section(strings.TrimSuffix(fieldName, "-field")).(*model.ReferenceSection)
	if !ok {
		return
	}
	if obj == nil {
		obj = &model.Object{}
	}
	if nf, ok := r.sectionReference(typ, obj, nested, level-1); ok {
		field.References = nf.References
	}
}

// selection returns the effective field selection for a reference section.
// Sections without explicit selected fields default to every field of the
// target section; the default is memoized per resolver instead of being
// written back onto the shared type.
func (r *resolver) selection(sec *model.ReferenceSection, target model.Section) []string {
	available := sectionFieldNames(target)
	if len(sec.Reference.SelectedFields) == 0 {
		key := sectionKey{typeID: sec.Reference.TypeID, section: sec.Reference.SectionName}
		if cached, ok := r.selections.Get(key); ok {
			return cached
		}
		r.selections.Add(key, available)
		return available
	}
	selected := make([]string, 0, len(sec.Reference.SelectedFields))
	for _, name := range sec.Reference.SelectedFields {
		if containsName(available, name) {
			selected = append(selected, name)
		}
	}
	return selected
}

func sectionFieldNames(sec model.Section) []string {
	switch s := sec.(type) {
	case *model.FieldSection:
		return s.Fields
	case *model.MultiDataSection:
		return s.Fields
	default:
		return nil
	}
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

// objectID coerces a stored field value into an object id. Empty values are
// reported as absent, never as an error.
func objectID(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		if v == "" {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/opmodel/cmdb/internal/output"
	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/store"
)

// unknownUser is the display fallback when an author cannot be resolved.
const unknownUser = "unknown"

// Engine renders exactly one (object, type, user) triple into a Result and
// is then discarded. It never writes; the only I/O happens through the
// injected store.
type Engine struct {
	st        store.Store
	object    *model.Object
	typ       *model.TypeModel
	user      *store.User
	refRender bool
	refs      *resolver
}

// NewEngine validates the supplied instances and builds a single-use engine.
// A missing object or type is a structural failure and fails fast.
func NewEngine(st store.Store, obj *model.Object, typ *model.TypeModel, user *store.User, refRender bool) (*Engine, error) {
	if obj == nil {
		return nil, &InstanceRenderError{Cause: errors.New("object instance is not a valid object")}
	}
	if typ == nil {
		return nil, &InstanceRenderError{ObjectID: obj.PublicID, Cause: errors.New("type instance is not a valid type")}
	}
	return &Engine{
		st:        st,
		object:    obj,
		typ:       typ,
		user:      user,
		refRender: refRender,
		refs:      newResolver(st, user),
	}, nil
}

// Result runs the render phases in their fixed order. level bounds the
// reference recursion; level 0 renders no fields at all. Per-item failures
// degrade locally; anything escaping a phase surfaces as a single
// InstanceRenderError.
func (e *Engine) Result(level int) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = &InstanceRenderError{ObjectID: e.object.PublicID, Cause: fmt.Errorf("%v", rec)}
		}
	}()
	res = &Result{
		ObjectInformation: e.objectInformation(),
		TypeInformation:   e.typeInformation(),
		Fields:            e.mergeFields(level),
		Sections:          e.sections(),
		Externals:         e.externals(),
		MultiDataSections: e.multiDataSections(),
	}
	res.Summaries, res.SummaryLine = e.summaries()
	return res, nil
}

// MDSReference resolves a single value as if it were a ref field, for
// multi-data-section lookups.
func (e *Engine) MDSReference(value any) (*TypeReference, error) {
	return e.refs.fieldReference(value, nil)
}

// IsRefField reports whether the type declares the field as a ref field.
func (e *Engine) IsRefField(name string) bool {
	tpl, err := e.typ.Field(name)
	return err == nil && tpl.Type == model.FieldTypeRef
}

func (e *Engine) objectInformation() ObjectInfo {
	o := e.object
	info := ObjectInfo{
		ObjectID:     o.PublicID,
		CreationTime: o.CreationTime,
		LastEditTime: o.LastEditTime,
		AuthorID:     o.AuthorID,
		AuthorName:   e.displayName(o.AuthorID, unknownUser),
		Active:       o.Active,
		Version:      o.Version,
	}
	if o.EditorID != 0 {
		info.EditorID = o.EditorID
		info.EditorName = e.displayName(o.EditorID, "")
	}
	return info
}

func (e *Engine) typeInformation() TypeInfo {
	t := e.typ
	return TypeInfo{
		TypeID:       t.PublicID,
		TypeName:     t.Name,
		TypeLabel:    t.Label,
		CreationTime: t.CreationTime,
		AuthorID:     t.AuthorID,
		AuthorName:   e.displayName(t.AuthorID, unknownUser),
		Icon:         t.RenderMeta.Icon,
		Active:       t.Active,
		Version:      t.Version,
		ACL:          t.ACL,
	}
}

func (e *Engine) displayName(userID int, fallback string) string {
	user, err := e.st.User(userID)
	if err != nil {
		return fallback
	}
	return user.DisplayName()
}

// mergeFields walks the type's sections in declared order and overlays the
// object's stored values onto the field templates. level is the remaining
// recursion budget.
func (e *Engine) mergeFields(level int) []Field {
	fields := []Field{}
	if level <= 0 {
		return fields
	}
	for _, sec := range e.typ.RenderMeta.Sections {
		switch s := sec.(type) {
		case *model.FieldSection:
			e.mergeSectionFields(s.Fields, &fields)
		case *model.MultiDataSection:
			e.mergeSectionFields(s.Fields, &fields)
		case *model.ReferenceSection:
			if f, ok := e.refs.sectionReference(e.typ, e.object, s, level-1); ok {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

func (e *Engine) mergeSectionFields(names []string, out *[]Field) {
	for _, name := range names {
		tpl, err := e.typ.Field(name)
		if err != nil {
			output.Debug("field template not available", "field", name, "err", err)
			continue
		}
		*out = append(*out, e.mergeField(tpl))
	}
}

// mergeField overlays the object's stored value onto a template. A declared
// template default moves into the default slot before the stored value takes
// over; lookup failures downgrade the value to null.
func (e *Engine) mergeField(tpl model.FieldTemplate) Field {
	f := Field{Name: tpl.Name, Type: tpl.Type, Label: tpl.Label}
	if tpl.Value != nil {
		f.Default = tpl.Value
	}
	if v, err := e.object.Value(tpl.Name); err == nil {
		f.Value = v
	}
	if tpl.Type == model.FieldTypeDate {
		f.Value = parseDate(f.Value)
	}
	if tpl.IsReference() && (e.refRender || len(tpl.Summaries) == 0) {
		e.resolveFieldReference(tpl, &f)
	}
	return f
}

func (e *Engine) resolveFieldReference(tpl model.FieldTemplate, f *Field) {
	ref, err := e.refs.fieldReference(f.Value, tpl.Summaries)
	if err != nil {
		if errors.Is(err, store.ErrAccessDenied) {
			denial := newTypeReference()
			denial.AccessDenied = err.Error()
			var denied *store.AccessDeniedError
			if errors.As(err, &denied) {
				denial.ObjectID = denied.ObjectID
				denial.TypeID = denied.TypeID
			}
			f.Reference = denial
			return
		}
		f.Value = nil
		return
	}
	f.Reference = ref
}

// sections exposes the type's section metadata as-is. Metadata that cannot
// be serialized falls back to an empty list instead of failing the render.
func (e *Engine) sections() model.SectionList {
	secs := e.typ.RenderMeta.Sections
	if secs == nil {
		return model.SectionList{}
	}
	if _, err := json.Marshal(secs); err != nil {
		output.Warn("section metadata not serializable", "type", e.typ.Name, "err", err)
		return model.SectionList{}
	}
	return secs
}

// summaries resolves the type's summary definition against the object. The
// default line "<label> #<id>" applies when no summary is declared or its
// fields cannot be resolved.
func (e *Engine) summaries() ([]Field, string) {
	line := fmt.Sprintf("%s #%d", e.typ.Label, e.object.PublicID)
	summaries := []Field{}
	if !e.typ.HasSummary() {
		return summaries, line
	}
	tpls, err := e.typ.SummaryFields()
	if err != nil {
		output.Debug("summary fields not resolvable", "type", e.typ.Name, "err", err)
		return summaries, line
	}
	parts := make([]string, 0, len(tpls))
	for _, tpl := range tpls {
		f := Field{Name: tpl.Name, Type: tpl.Type, Label: tpl.Label}
		if v, err := e.object.Value(tpl.Name); err == nil {
			f.Value = v
		}
		summaries = append(summaries, f)
		parts = append(parts, stringify(f.Value))
	}
	if len(parts) == 0 {
		return summaries, line
	}
	return summaries, strings.Join(parts, " | ")
}

// externals fills the type's external links from object values. Links whose
// required values are missing or empty are skipped entirely; there are no
// partial links.
func (e *Engine) externals() []model.ExternalLink {
	externals := []model.ExternalLink{}
	for _, link := range e.typ.Externals() {
		if !link.HasFields() {
			externals = append(externals, link)
			continue
		}
		values, ok := e.externalValues(link.Fields)
		if !ok {
			continue
		}
		href, err := link.FillHref(values)
		if err != nil {
			output.Debug("external link not fillable", "link", link.Name, "err", err)
			continue
		}
		link.Href = href
		externals = append(externals, link)
	}
	return externals
}

// externalValues gathers placeholder data in field order. The name
// "object_id" resolves to the object's public id instead of a stored value.
func (e *Engine) externalValues(names []string) ([]any, bool) {
	values := make([]any, 0, len(names))
	for _, name := range names {
		if name == "object_id" {
			values = append(values, e.object.PublicID)
			continue
		}
		v, err := e.object.Value(name)
		if err != nil || v == nil || v == "" {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

func (e *Engine) multiDataSections() []model.MultiDataEntry {
	if e.object.MultiDataSections == nil {
		return []model.MultiDataEntry{}
	}
	return e.object.MultiDataSections
}

// parseDate fuzzily parses string date values. Anything unparseable is
// exposed unchanged.
func parseDate(value any) any {
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		output.Debug("date value not parseable", "value", s, "err", err)
		return value
	}
	return t
}

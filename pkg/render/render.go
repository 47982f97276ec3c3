// Package render produces the view of a CMDB object: stored field values
// merged onto the type's field templates, cross-object references resolved
// recursively up to a depth budget, plus summary line, external links and
// section metadata.
//
// Renders are read-only and reentrant. Every Engine handles one object and
// degrades per item: a partially populated Result always beats an error.
package render

import (
	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/store"
)

// DefaultLevel is the default reference recursion budget.
const DefaultLevel = 3

// Render renders one object against its type for the given user.
func Render(st store.Store, obj *model.Object, typ *model.TypeModel, user *store.User, refRender bool, level int) (*Result, error) {
	engine, err := NewEngine(st, obj, typ, user, refRender)
	if err != nil {
		return nil, err
	}
	return engine.Result(level)
}

// RenderAll renders a list of objects in input order, resolving each
// object's type through the store.
func RenderAll(st store.Store, objects []*model.Object, user *store.User, refRender bool) ([]*Result, error) {
	return NewList(st, user, refRender).Render(objects)
}

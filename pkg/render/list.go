package render

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/opmodel/cmdb/pkg/model"
	"github.com/opmodel/cmdb/pkg/store"
)

// typeCacheSize bounds the per-list LRU of type lookups.
const typeCacheSize = 256

// List renders batches of objects sequentially, reusing type lookups
// through a small LRU cache. Each object still gets its own single-use
// Engine, so renders stay independent.
type List struct {
	st        store.Store
	user      *store.User
	refRender bool
	types     *lru.Cache[int, *model.TypeModel]
}

// NewList builds a batch renderer for the given user.
func NewList(st store.Store, user *store.User, refRender bool) *List {
	cache, _ := lru.New[int, *model.TypeModel](typeCacheSize)
	return &List{st: st, user: user, refRender: refRender, types: cache}
}

// Render renders the objects in input order.
func (l *List) Render(objects []*model.Object) ([]*Result, error) {
	results := make([]*Result, 0, len(objects))
	for _, obj := range objects {
		typ, err := l.typeOf(obj)
		if err != nil {
			return nil, &InstanceRenderError{ObjectID: obj.PublicID, Cause: err}
		}
		res, err := Render(l.st, obj, typ, l.user, l.refRender, DefaultLevel)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RenderRaw renders the objects into plain structures for direct JSON
// serialization.
func (l *List) RenderRaw(objects []*model.Object) ([]map[string]any, error) {
	results, err := l.Render(objects)
	if err != nil {
		return nil, err
	}
	raw := make([]map[string]any, 0, len(results))
	for _, res := range results {
		data, err := json.Marshal(res)
		if err != nil {
			return nil, err
		}
		var entry map[string]any
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, err
		}
		raw = append(raw, entry)
	}
	return raw, nil
}

func (l *List) typeOf(obj *model.Object) (*model.TypeModel, error) {
	id, err := obj.RequireTypeID()
	if err != nil {
		return nil, err
	}
	if typ, ok := l.types.Get(id); ok {
		return typ, nil
	}
	typ, err := l.st.Type(id)
	if err != nil {
		return nil, err
	}
	l.types.Add(id, typ)
	return typ, nil
}

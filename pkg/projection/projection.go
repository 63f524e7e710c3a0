// Package projection keeps the per-category view of the live photo stream.
//
// A Projection is rebuilt wholesale from every snapshot the document store
// pushes. Item slices are never mutated after Apply returns, so a Projection
// may be shared freely between the pager, the viewer and renderers.
package projection

import (
	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/photo"
)

// Projection is an immutable snapshot of items grouped by category.
type Projection struct {
	model   category.Model
	policy  category.Policy
	lists   [][]photo.Item
	dropped int
}

// New returns an empty projection over model.
func New(model category.Model, policy category.Policy) Projection {
	if policy == "" {
		policy = category.DropUnresolved
	}
	return Projection{
		model:  model,
		policy: policy,
		lists:  make([][]photo.Item, model.Len()),
	}
}

// Apply replaces every category with the records of a new snapshot. Records
// are expected newest first and keep their relative order within a category.
// Records whose category cannot be resolved are dropped unless the policy
// says otherwise.
func (p Projection) Apply(records []photo.Record) Projection {
	next := Projection{
		model:  p.model,
		policy: p.policy,
		lists:  make([][]photo.Item, p.model.Len()),
	}
	for _, r := range records {
		cat, ok := p.model.ResolveWith(p.policy, r.Month, r.CreatedAt.Time)
		if !ok {
			next.dropped++
			continue
		}
		next.lists[cat] = append(next.lists[cat], photo.FromRecord(r, cat))
	}
	for _, list := range next.lists {
		for i := range list {
			list[i].Index = i
		}
	}
	return next
}

// Model returns the category model the projection was built with.
func (p Projection) Model() category.Model {
	return p.model
}

// Categories reports the number of categories.
func (p Projection) Categories() int {
	return len(p.lists)
}

// Len reports the number of items in cat.
func (p Projection) Len(cat int) int {
	if cat < 0 || cat >= len(p.lists) {
		return 0
	}
	return len(p.lists[cat])
}

// Items returns the items of cat, newest first. Callers must not modify the
// returned slice.
func (p Projection) Items(cat int) []photo.Item {
	if cat < 0 || cat >= len(p.lists) {
		return nil
	}
	return p.lists[cat]
}

// Item looks up the item at idx within cat.
func (p Projection) Item(cat, idx int) (photo.Item, bool) {
	list := p.Items(cat)
	if idx < 0 || idx >= len(list) {
		return photo.Item{}, false
	}
	return list[idx], true
}

// Total reports the number of placed items across all categories.
func (p Projection) Total() int {
	n := 0
	for _, list := range p.lists {
		n += len(list)
	}
	return n
}

// Dropped reports how many records of the last snapshot were unresolvable.
func (p Projection) Dropped() int {
	return p.dropped
}

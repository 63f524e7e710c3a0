// Package viewer implements the lightbox: a modal view of one photo
// addressed by category and position within that category.
package viewer

import (
	"fmt"

	"tableflip.dev/photobook/pkg/photo"
)

// Source is the read side of a projection.
type Source interface {
	Len(cat int) int
	Item(cat, idx int) (photo.Item, bool)
}

// Target addresses a photo by category and absolute index. It is a weak
// reference, re-resolved against the live projection on every use.
type Target struct {
	Category int
	Index    int
}

// Viewer is either closed or open on a Target. The zero value is closed.
type Viewer struct {
	open   bool
	target Target
}

// IsOpen reports whether the lightbox is showing.
func (v Viewer) IsOpen() bool {
	return v.open
}

// Target returns the addressed photo and whether the viewer is open.
func (v Viewer) Target() (Target, bool) {
	return v.target, v.open
}

// Open shows the photo at (cat, idx). It is a no-op when no such photo
// exists.
func (v Viewer) Open(src Source, cat, idx int) Viewer {
	if _, ok := src.Item(cat, idx); !ok {
		return v
	}
	return Viewer{open: true, target: Target{Category: cat, Index: idx}}
}

// Step moves within the target's category by delta, clamped to its bounds.
// A closed viewer is returned unchanged. If the category emptied, the viewer
// closes.
func (v Viewer) Step(src Source, delta int) Viewer {
	if !v.open {
		return v
	}
	total := src.Len(v.target.Category)
	if total == 0 {
		return Viewer{}
	}
	idx := v.target.Index + delta
	if idx < 0 {
		idx = 0
	}
	if idx > total-1 {
		idx = total - 1
	}
	v.target.Index = idx
	return v
}

// Close hides the lightbox.
func (v Viewer) Close() Viewer {
	return Viewer{}
}

// Refresh re-resolves the target after the projection was rebuilt and
// closes the viewer when the addressed photo no longer exists.
func (v Viewer) Refresh(src Source) Viewer {
	if !v.open {
		return v
	}
	if _, ok := src.Item(v.target.Category, v.target.Index); !ok {
		return Viewer{}
	}
	return v
}

// Frame is everything needed to draw the open lightbox.
type Frame struct {
	Target
	Item         photo.Item
	URL          string
	Alt          string
	Caption      string
	Note         string
	HasNote      bool
	Position     string
	PrevDisabled bool
	NextDisabled bool
}

// Frame resolves the render model for an open viewer. It reports false when
// the viewer is closed or its target is gone.
func (v Viewer) Frame(src Source, categoryName func(int) string) (Frame, bool) {
	if !v.open {
		return Frame{}, false
	}
	it, ok := src.Item(v.target.Category, v.target.Index)
	if !ok {
		return Frame{}, false
	}
	name := categoryName(v.target.Category)
	total := src.Len(v.target.Category)
	return Frame{
		Target:       v.target,
		Item:         it,
		URL:          it.URL,
		Alt:          it.AltText(name),
		Caption:      it.Caption(name),
		Note:         it.Note,
		HasNote:      it.HasNote(),
		Position:     fmt.Sprintf("%d of %d", v.target.Index+1, total),
		PrevDisabled: v.target.Index == 0,
		NextDisabled: v.target.Index >= total-1,
	}, true
}

// Package pager derives fixed-size pages over a category and keeps the
// reader's place while the underlying items change.
package pager

import (
	"errors"

	"tableflip.dev/photobook/pkg/photo"
)

// DefaultSize is the number of photos per page.
const DefaultSize = 4

// ErrSize is returned by New for non-positive page sizes.
var ErrSize = errors.New("pager: page size must be positive")

// Source is the read side of a projection.
type Source interface {
	Categories() int
	Len(cat int) int
	Items(cat int) []photo.Item
}

// Anchor identifies the page being looked at.
type Anchor struct {
	Category int
	Page     int
}

// Page is a derived view of one page of a category.
type Page struct {
	Category   int
	Number     int
	TotalPages int
	TotalItems int
	Items      []photo.Item
}

// Empty reports whether the page has no items.
func (p Page) Empty() bool {
	return len(p.Items) == 0
}

// PrevDisabled reports whether there is no earlier page.
func (p Page) PrevDisabled() bool {
	return p.Number <= 0
}

// NextDisabled reports whether there is no later page.
func (p Page) NextDisabled() bool {
	return p.Number >= p.TotalPages-1
}

// Indicator describes one page marker of the whole book.
type Indicator struct {
	Anchor
	Active bool
}

// Pager slices categories into pages of Size items.
type Pager struct {
	size int
}

// New returns a pager with the given page size.
func New(size int) (Pager, error) {
	if size <= 0 {
		return Pager{}, ErrSize
	}
	return Pager{size: size}, nil
}

// Must is New for sizes known to be valid. It panics on a bad size.
func Must(size int) Pager {
	p, err := New(size)
	if err != nil {
		panic(err)
	}
	return p
}

// Size reports the page size.
func (p Pager) Size() int {
	if p.size <= 0 {
		return DefaultSize
	}
	return p.size
}

// TotalPages is ceil(n/size) with a minimum of one page.
func (p Pager) TotalPages(src Source, cat int) int {
	n := src.Len(cat)
	size := p.Size()
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Page returns page desired of cat, clamping desired into range.
func (p Pager) Page(src Source, cat, desired int) Page {
	total := p.TotalPages(src, cat)
	number := clamp(desired, 0, total-1)
	items := src.Items(cat)
	start := number * p.Size()
	end := start + p.Size()
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page{
		Category:   cat,
		Number:     number,
		TotalPages: total,
		TotalItems: len(items),
		Items:      items[start:end:end],
	}
}

// Current returns the page an anchor points at.
func (p Pager) Current(src Source, a Anchor) Page {
	return p.Page(src, a.Category, a.Page)
}

// Navigate moves the anchor by delta pages within its category. It reports
// false, leaving the anchor untouched, when clamping lands on the current
// page.
func (p Pager) Navigate(src Source, a Anchor, delta int) (Anchor, bool) {
	total := p.TotalPages(src, a.Category)
	next := clamp(a.Page+delta, 0, total-1)
	if next == a.Page {
		return a, false
	}
	return Anchor{Category: a.Category, Page: next}, true
}

// Goto jumps to an explicit page, clamped into range.
func (p Pager) Goto(src Source, cat, page int) Anchor {
	cat = clamp(cat, 0, src.Categories()-1)
	return Anchor{Category: cat, Page: clamp(page, 0, p.TotalPages(src, cat)-1)}
}

// SelectCategory moves to the first page of the category delta steps away.
// It reports false when already at the first or last category.
func (p Pager) SelectCategory(src Source, a Anchor, delta int) (Anchor, bool) {
	next := clamp(a.Category+delta, 0, src.Categories()-1)
	if next == a.Category {
		return a, false
	}
	return Anchor{Category: next}, true
}

// Reanchor keeps the anchor on the same category and page after src was
// rebuilt, falling back to the last page of that category when it shrank.
func (p Pager) Reanchor(src Source, a Anchor) Anchor {
	if src.Categories() == 0 {
		return Anchor{}
	}
	a.Category = clamp(a.Category, 0, src.Categories()-1)
	a.Page = clamp(a.Page, 0, p.TotalPages(src, a.Category)-1)
	return a
}

// Indicators lists every page of every category in book order.
func (p Pager) Indicators(src Source, a Anchor) []Indicator {
	var out []Indicator
	for cat := 0; cat < src.Categories(); cat++ {
		total := p.TotalPages(src, cat)
		for page := 0; page < total; page++ {
			out = append(out, Indicator{
				Anchor: Anchor{Category: cat, Page: page},
				Active: cat == a.Category && page == a.Page,
			})
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

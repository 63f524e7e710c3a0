package gallery

import (
	"fmt"

	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/viewer"
)

// Card is one photo tile on the current page.
type Card struct {
	Slot    int
	Index   int
	URL     string
	Alt     string
	Caption string
	Note    string
	HasNote bool
}

// View is the render model derived from a State.
type View struct {
	Status Status

	// Label is the month name, or the failure/disabled headline.
	Label     string
	PageLabel string
	Message   string

	Page         pager.Page
	Cards        []Card
	Indicators   []pager.Indicator
	PrevDisabled bool
	NextDisabled bool

	Lightbox *viewer.Frame
}

// View derives what should be on screen for s.
func (s State) View() View {
	model := s.proj.Model()
	switch s.status {
	case StatusDisabled:
		return View{
			Status:       s.status,
			Label:        s.message,
			PrevDisabled: true,
			NextDisabled: true,
		}
	case StatusFailed:
		return View{
			Status:       s.status,
			Label:        failedLabel,
			Message:      s.message,
			PrevDisabled: true,
			NextDisabled: true,
		}
	}

	page := s.pager.Current(s.proj, s.anchor)
	name := model.Name(page.Category)
	v := View{
		Status:       s.status,
		Label:        name,
		PageLabel:    fmt.Sprintf("Page %d of %d", page.Number+1, page.TotalPages),
		Page:         page,
		Indicators:   s.pager.Indicators(s.proj, s.anchor),
		PrevDisabled: page.PrevDisabled(),
		NextDisabled: page.NextDisabled(),
	}
	if page.Empty() {
		v.Message = emptyMessage
	}
	for slot, it := range page.Items {
		v.Cards = append(v.Cards, Card{
			Slot:    slot,
			Index:   it.Index,
			URL:     it.URL,
			Alt:     it.AltText(name),
			Caption: it.Caption(name),
			Note:    it.Note,
			HasNote: it.HasNote(),
		})
	}
	if frame, ok := s.viewer.Frame(s.proj, model.Name); ok {
		v.Lightbox = &frame
	}
	return v
}

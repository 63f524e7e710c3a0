// Package gallery combines the projection, pager and viewer into one owned
// state value. Every operation takes a State and returns the next one; none
// of them perform I/O.
package gallery

import (
	"fmt"

	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/photo"
	"tableflip.dev/photobook/pkg/projection"
	"tableflip.dev/photobook/pkg/viewer"
)

// Status is the load state of the gallery.
type Status int

const (
	// StatusLoading means no snapshot has arrived yet.
	StatusLoading Status = iota
	// StatusReady means the projection reflects the latest snapshot.
	StatusReady
	// StatusFailed means the live query reported an error.
	StatusFailed
	// StatusDisabled means configuration is not ready; nothing is loaded.
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	case StatusDisabled:
		return "disabled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

const (
	failedLabel   = "Unable to load photos"
	failedMessage = "Could not load photos. Please try again later."
	emptyMessage  = "No photos yet for this month."
)

// Key is a navigation key the gallery reacts to.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyEscape
)

// State is the whole client-side gallery state.
type State struct {
	pager   pager.Pager
	proj    projection.Projection
	anchor  pager.Anchor
	viewer  viewer.Viewer
	status  Status
	message string
	err     error
}

// New returns a loading gallery over model.
func New(model category.Model, policy category.Policy, pageSize int) (State, error) {
	p, err := pager.New(pageSize)
	if err != nil {
		return State{}, err
	}
	return State{
		pager:  p,
		proj:   projection.New(model, policy),
		status: StatusLoading,
	}, nil
}

// Disabled returns a gallery that shows message and ignores input.
func Disabled(model category.Model, message string) State {
	return State{
		pager:   pager.Must(pager.DefaultSize),
		proj:    projection.New(model, category.DropUnresolved),
		status:  StatusDisabled,
		message: message,
	}
}

// Status reports the load state.
func (s State) Status() Status {
	return s.status
}

// Projection returns the current projection.
func (s State) Projection() projection.Projection {
	return s.proj
}

// Anchor returns the page being viewed.
func (s State) Anchor() pager.Anchor {
	return s.anchor
}

// Viewer returns the lightbox state.
func (s State) Viewer() viewer.Viewer {
	return s.viewer
}

// Apply rebuilds the projection from a snapshot, keeps the reader on the
// same category and page where possible, and re-validates the lightbox.
func (s State) Apply(records []photo.Record) State {
	if s.status == StatusDisabled {
		return s
	}
	s.proj = s.proj.Apply(records)
	s.anchor = s.pager.Reanchor(s.proj, s.anchor)
	s.viewer = s.viewer.Refresh(s.proj)
	s.status = StatusReady
	s.message = ""
	s.err = nil
	return s
}

// Fail records a live-query failure. Navigation state is kept so a later
// snapshot resumes where the reader was.
func (s State) Fail(err error) State {
	if s.status == StatusDisabled {
		return s
	}
	s.status = StatusFailed
	s.message = failedMessage
	s.err = err
	return s
}

// Err returns the last live-query failure, if the gallery is failed.
func (s State) Err() error {
	if s.status != StatusFailed {
		return nil
	}
	return s.err
}

func (s State) interactive() bool {
	return s.status == StatusReady || s.status == StatusLoading
}

// NavigatePage moves delta pages within the current category. It reports
// false when nothing changed.
func (s State) NavigatePage(delta int) (State, bool) {
	if !s.interactive() {
		return s, false
	}
	next, moved := s.pager.Navigate(s.proj, s.anchor, delta)
	if !moved {
		return s, false
	}
	s.anchor = next
	return s, true
}

// SelectCategory switches to the first page of the category delta away.
func (s State) SelectCategory(delta int) (State, bool) {
	if !s.interactive() {
		return s, false
	}
	next, moved := s.pager.SelectCategory(s.proj, s.anchor, delta)
	if !moved {
		return s, false
	}
	s.anchor = next
	return s, true
}

// Goto jumps to an explicit page, as a page indicator would.
func (s State) Goto(cat, page int) (State, bool) {
	if !s.interactive() {
		return s, false
	}
	next := s.pager.Goto(s.proj, cat, page)
	if next == s.anchor {
		return s, false
	}
	s.anchor = next
	return s, true
}

// OpenSlot opens the lightbox on the slot-th photo of the current page.
func (s State) OpenSlot(slot int) (State, bool) {
	page := s.pager.Current(s.proj, s.anchor)
	if slot < 0 || slot >= len(page.Items) {
		return s, false
	}
	return s.Open(page.Category, page.Items[slot].Index)
}

// Open opens the lightbox on (cat, idx) if such a photo exists.
func (s State) Open(cat, idx int) (State, bool) {
	if !s.interactive() {
		return s, false
	}
	next := s.viewer.Open(s.proj, cat, idx)
	if !next.IsOpen() {
		return s, false
	}
	s.viewer = next
	return s, true
}

// StepViewer moves the open lightbox by delta.
func (s State) StepViewer(delta int) (State, bool) {
	if !s.interactive() {
		return s, false
	}
	before, open := s.viewer.Target()
	if !open {
		return s, false
	}
	s.viewer = s.viewer.Step(s.proj, delta)
	after, open := s.viewer.Target()
	return s, !open || after != before
}

// CloseViewer hides the lightbox.
func (s State) CloseViewer() (State, bool) {
	if !s.viewer.IsOpen() {
		return s, false
	}
	s.viewer = s.viewer.Close()
	return s, true
}

// HandleKey applies the keyboard bindings: with the lightbox open, arrows
// step photos and Escape closes it; otherwise arrows turn pages.
func (s State) HandleKey(k Key) (State, bool) {
	if s.viewer.IsOpen() {
		switch k {
		case KeyEscape:
			return s.CloseViewer()
		case KeyRight:
			return s.StepViewer(1)
		case KeyLeft:
			return s.StepViewer(-1)
		}
		return s, false
	}
	switch k {
	case KeyRight:
		return s.NavigatePage(1)
	case KeyLeft:
		return s.NavigatePage(-1)
	}
	return s, false
}

// Package photo holds the stored photo record and the item derived from it
// for display.
package photo

import (
	"strings"
	"time"
)

// MaxNoteLength bounds the free-text note of a photo, in characters.
const MaxNoteLength = 500

// Record is a photo document as persisted by the document store. Month is
// kept raw because upstream writers have encoded it inconsistently.
type Record struct {
	ID           string    `json:"id"`
	Month        any       `json:"month"`
	Photographer *string   `json:"photographer"`
	Notes        *string   `json:"notes"`
	Filename     string    `json:"filename"`
	DownloadURL  string    `json:"downloadURL"`
	CreatedAt    Timestamp `json:"createdAt"`
}

// Item is a gallery entry placed into a category.
type Item struct {
	ID         string
	Category   int
	URL        string
	Author     string
	Note       string
	StoredName string
	Created    time.Time

	// Index is the position within the category, newest first.
	Index int
}

// FromRecord builds the display item for r in category cat. Index is left
// for the projection to assign.
func FromRecord(r Record, cat int) Item {
	return Item{
		ID:         r.ID,
		Category:   cat,
		URL:        r.DownloadURL,
		Author:     deref(r.Photographer),
		Note:       deref(r.Notes),
		StoredName: r.Filename,
		Created:    r.CreatedAt.Time,
	}
}

// HasNote reports whether the item carries a non-blank note.
func (i Item) HasNote() bool {
	return i.Note != ""
}

// Caption renders "<category>[ · author][ — date]".
func (i Item) Caption(categoryName string) string {
	var b strings.Builder
	b.WriteString(categoryName)
	if i.Author != "" {
		b.WriteString(" · ")
		b.WriteString(i.Author)
	}
	if !i.Created.IsZero() {
		b.WriteString(" — ")
		b.WriteString(FormatDate(i.Created))
	}
	return b.String()
}

// AltText is the note when present, otherwise a generic description.
func (i Item) AltText(categoryName string) string {
	if i.Note != "" {
		return i.Note
	}
	return "Photo from " + categoryName
}

// Optional returns nil for blank strings so stores persist null.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

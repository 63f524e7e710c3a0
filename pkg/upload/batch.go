// Package upload coordinates one multi-file photo submission: validation,
// concurrent blob upload and record commit per file, and aggregation of the
// per-file outcomes.
package upload

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"tableflip.dev/photobook/pkg/photo"
)

var (
	// ErrInFlight rejects a submission while another one is running.
	ErrInFlight = errors.New("upload: submission already in progress")
	// ErrNoCategory rejects a batch without a month.
	ErrNoCategory = errors.New("upload: no month selected")
	// ErrNoFiles rejects a batch without photos.
	ErrNoFiles = errors.New("upload: no photos selected")
	// ErrNoteTooLong rejects notes over photo.MaxNoteLength characters.
	ErrNoteTooLong = errors.New("upload: note too long")
)

// Message converts a submission error into the status line shown to the
// user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInFlight):
		return "Upload already in progress. Please wait."
	case errors.Is(err, ErrNoCategory):
		return "Pick a month."
	case errors.Is(err, ErrNoFiles):
		return "Please choose at least one photo."
	case errors.Is(err, ErrNoteTooLong):
		return fmt.Sprintf("Notes must be %d characters or fewer.", photo.MaxNoteLength)
	default:
		return "Upload failed. Please try again."
	}
}

// NoCategory marks a batch without a selected category.
const NoCategory = -1

// File is one raw payload of a batch.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Batch is a single submission.
type Batch struct {
	Category int
	Author   string
	Note     string
	Files    []File
}

// Validate checks the batch before any I/O is attempted.
func (b Batch) Validate() error {
	if b.Category < 0 {
		return ErrNoCategory
	}
	if len(b.Files) == 0 {
		return ErrNoFiles
	}
	if utf8.RuneCountInString(strings.TrimSpace(b.Note)) > photo.MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// StoredName derives a collision resistant name from the submission time,
// the file's ordinal within the batch and its sanitized original name.
func StoredName(at time.Time, ordinal int, original string) string {
	name := strings.TrimSpace(original)
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	name = whitespace.ReplaceAllString(name, "-")
	if name == "" {
		name = "photo"
	}
	return fmt.Sprintf("%d-%d-%s", at.UnixMilli(), ordinal, name)
}

// BlobPath is where a stored name lives in the blob store.
func BlobPath(cat int, stored string) string {
	return fmt.Sprintf("photos/%d/%s", cat, stored)
}

// Form is the editable state of the upload form.
type Form struct {
	Category int
	Author   string
	Note     string
	Files    []File
}

// NewForm returns a blank form with no category selected.
func NewForm() Form {
	return Form{Category: NoCategory}
}

// Batch snapshots the form into a submission.
func (f Form) Batch() Batch {
	files := make([]File, len(f.Files))
	copy(files, f.Files)
	return Batch{
		Category: f.Category,
		Author:   strings.TrimSpace(f.Author),
		Note:     strings.TrimSpace(f.Note),
		Files:    files,
	}
}

// Reset blanks the form but keeps the category selection.
func (f Form) Reset() Form {
	return Form{Category: f.Category}
}
